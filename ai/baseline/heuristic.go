package baseline

import (
	"sort"

	"github.com/averykuo/fib2584/ai/agent"
	"github.com/averykuo/fib2584/board"
	"github.com/averykuo/fib2584/move"
	"github.com/averykuo/fib2584/tiles"
)

// Heuristic scores each candidate resulting board with a handcrafted mix
// of adjacency smoothness across all four orientations, empty-cell counts
// after a further hypothetical slide, and corner placement of the maximum
// tile. Scoring quirks (the empty count accumulating across orientations,
// the corner bonus in index units) are preserved for conformance; the
// final pick is a stable sort with the last highest winning ties.
type Heuristic struct {
	agent.Base
}

func NewHeuristic(args string) (*Heuristic, error) {
	base, err := agent.NewBase("name=heuristic role=player", args)
	if err != nil {
		return nil, err
	}
	return &Heuristic{Base: base}, nil
}

func (h *Heuristic) TakeAction(before board.Board) move.Move {
	type candidate struct {
		code  int
		after board.Board
		val   int
	}
	cands := make([]candidate, board.NumDirections)
	for op := range cands {
		after := before
		val := after.Slide(op)
		cands[op] = candidate{code: op, after: after, val: val}
	}

	maxBefore := before.MaxPos()

	for i := range cands {
		if cands[i].val == board.IllegalMove {
			continue
		}
		after := cands[i].after
		numSpace := 0
		for j := 0; j < 4; j++ {
			rotated := after
			rotated.Rotate(j)
			for row := 0; row < board.NumCells; row += board.Dim {
				for c := 0; c < board.Dim-1; c++ {
					a, b := rotated.Cell(row+c), rotated.Cell(row+c+1)
					if absDiff(a, b) == 1 || (a == 1 && b == 1) {
						cands[i].val += 3
					}
				}
			}
			origin := after
			if origin.Slide(j) == board.IllegalMove {
				continue
			}
			numSpace += origin.Empties()
			cands[i].val += numSpace * 2
		}
		maxLoc := after.MaxPos()
		switch maxLoc {
		case 0, 3, 12, 15:
			cands[i].val += after.Cell(maxLoc)
		}
		if maxLoc == maxBefore && after.Cell(maxLoc) > 6 {
			cands[i].val += tiles.Fib(after.Cell(maxLoc) - 2)
		}
	}

	sort.SliceStable(cands, func(a, b int) bool { return cands[a].val < cands[b].val })
	return move.NewSlide(cands[len(cands)-1].code)
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
