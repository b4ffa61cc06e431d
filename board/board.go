// Package board implements the 4×4 sliding-tile grid. A Board is a value
// type: callers copy it freely to explore hypothetical moves, and Slide
// and Rotate mutate the receiver in place. Merge eligibility and rewards
// are delegated to an external tiles.Rule.
package board

import (
	"github.com/averykuo/fib2584/tiles"
)

// Directions accepted by Slide.
const (
	DirUp = iota
	DirRight
	DirDown
	DirLeft
	NumDirections
)

// IllegalMove is the sentinel reward returned by Slide and Place when the
// action leaves the board unchanged. Every consumer tests legality with a
// single comparison against it.
const IllegalMove = -1

const (
	// Dim is the side length of the grid.
	Dim = 4
	// NumCells is the total cell count.
	NumCells = Dim * Dim
)

// A Board is a fixed 4×4 grid of tile indices; 0 means empty. The rule
// pointer is shared between copies, the cells are not.
type Board struct {
	cells [NumCells]uint8
	rule  tiles.Rule
}

// New returns an empty board governed by the given rule.
func New(rule tiles.Rule) Board {
	return Board{rule: rule}
}

// FromCells returns a board with the given row-major cell contents.
func FromCells(rule tiles.Rule, cells [NumCells]uint8) Board {
	return Board{cells: cells, rule: rule}
}

// Rule returns the tile rule this board consults for merges.
func (b Board) Rule() tiles.Rule { return b.rule }

// Cell returns the tile index at pos (0..15, row-major).
func (b Board) Cell(pos int) int { return int(b.cells[pos]) }

// Equal reports whether two boards hold identical cells.
func (b Board) Equal(o Board) bool { return b.cells == o.cells }

// Empties returns the number of empty cells.
func (b Board) Empties() int {
	n := 0
	for _, c := range b.cells {
		if c == 0 {
			n++
		}
	}
	return n
}

// MaxPos returns the position of the highest tile index, lowest position
// winning ties.
func (b Board) MaxPos() int {
	mv := 0
	for i := range b.cells {
		if b.cells[i] > b.cells[mv] {
			mv = i
		}
	}
	return mv
}

// Place puts a tile at pos. It returns 0 on success and IllegalMove if
// the cell is occupied or the arguments are out of range.
func (b *Board) Place(pos, tile int) int {
	if pos < 0 || pos >= NumCells {
		return IllegalMove
	}
	if tile <= 0 || tile >= b.rule.NumKinds() {
		return IllegalMove
	}
	if b.cells[pos] != 0 {
		return IllegalMove
	}
	b.cells[pos] = uint8(tile)
	return 0
}

// Slide compacts and merges all 4 lines toward the given direction. It
// returns the summed numeric value of every tile created by a merge, or
// IllegalMove if no cell moved or changed. Directions other than left are
// re-expressed through rotation around the canonical slide-left pass.
func (b *Board) Slide(dir int) int {
	switch dir & 3 {
	case DirUp:
		b.Rotate(3)
		reward := b.slideLeft()
		b.Rotate(1)
		return reward
	case DirRight:
		b.Rotate(2)
		reward := b.slideLeft()
		b.Rotate(2)
		return reward
	case DirDown:
		b.Rotate(1)
		reward := b.slideLeft()
		b.Rotate(3)
		return reward
	default:
		return b.slideLeft()
	}
}

// slideLeft processes each row with a single hold slot: a held tile either
// merges with the next nonempty tile per the rule, or settles and the next
// tile becomes the held one. A tile created by a merge cannot merge again
// within the same move.
func (b *Board) slideLeft() int {
	prev := b.cells
	reward := 0
	for row := 0; row < NumCells; row += Dim {
		top := row
		hold := 0
		for c := 0; c < Dim; c++ {
			t := int(b.cells[row+c])
			if t == 0 {
				continue
			}
			b.cells[row+c] = 0
			if hold != 0 {
				if next, ok := b.rule.Merge(hold, t); ok {
					b.cells[top] = uint8(next)
					top++
					reward += b.rule.Value(next)
					hold = 0
				} else {
					b.cells[top] = uint8(hold)
					top++
					hold = t
				}
			} else {
				hold = t
			}
		}
		if hold != 0 {
			b.cells[top] = uint8(hold)
		}
	}
	if b.cells == prev {
		return IllegalMove
	}
	return reward
}

// Rotate turns the grid steps × 90° clockwise, in place. Negative step
// counts rotate counterclockwise.
func (b *Board) Rotate(steps int) {
	for steps = ((steps % 4) + 4) % 4; steps > 0; steps-- {
		b.rotateClockwise()
	}
}

func (b *Board) rotateClockwise() {
	var out [NumCells]uint8
	for r := 0; r < Dim; r++ {
		for c := 0; c < Dim; c++ {
			out[c*Dim+(Dim-1-r)] = b.cells[r*Dim+c]
		}
	}
	b.cells = out
}
