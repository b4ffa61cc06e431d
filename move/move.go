// Package move defines the actions agents exchange with the board: a
// directional slide, a tile placement, or the none action that signals
// "no legal move".
package move

import (
	"fmt"

	"github.com/averykuo/fib2584/board"
)

// MoveType classifies a Move.
type MoveType int

const (
	// MoveTypeNone is the null action. Applying it always fails; the
	// episode driver treats it as termination.
	MoveTypeNone MoveType = iota
	MoveTypeSlide
	MoveTypePlace
)

// A Move is immutable once constructed; agents produce them and the
// board/driver consumes them.
type Move struct {
	mtype MoveType
	dir   int
	pos   int
	tile  int
}

// NewSlide returns a slide action for the given direction.
func NewSlide(dir int) Move {
	return Move{mtype: MoveTypeSlide, dir: dir}
}

// NewPlace returns a place action putting tile at pos.
func NewPlace(pos, tile int) Move {
	return Move{mtype: MoveTypePlace, pos: pos, tile: tile}
}

// None returns the null action. The zero Move is equivalent.
func None() Move { return Move{} }

func (m Move) Type() MoveType { return m.mtype }
func (m Move) Dir() int       { return m.dir }
func (m Move) Pos() int       { return m.pos }
func (m Move) Tile() int      { return m.tile }

// IsNone reports whether this is the null action.
func (m Move) IsNone() bool { return m.mtype == MoveTypeNone }

// Apply executes the move against b. It returns the slide reward (or 0
// for a successful placement), and board.IllegalMove when the move is
// null, out of range, or changes nothing.
func (m Move) Apply(b *board.Board) int {
	switch m.mtype {
	case MoveTypeSlide:
		if m.dir < 0 || m.dir >= board.NumDirections {
			return board.IllegalMove
		}
		return b.Slide(m.dir)
	case MoveTypePlace:
		return b.Place(m.pos, m.tile)
	}
	return board.IllegalMove
}

var dirNames = [board.NumDirections]string{"up", "right", "down", "left"}

// ShortDescription returns a compact human-readable form for logs.
func (m Move) ShortDescription() string {
	switch m.mtype {
	case MoveTypeSlide:
		if m.dir >= 0 && m.dir < board.NumDirections {
			return "slide " + dirNames[m.dir]
		}
		return fmt.Sprintf("slide #%d", m.dir)
	case MoveTypePlace:
		return fmt.Sprintf("place %d at %d", m.tile, m.pos)
	}
	return "(none)"
}

func (m Move) String() string {
	return fmt.Sprintf("<%s>", m.ShortDescription())
}
