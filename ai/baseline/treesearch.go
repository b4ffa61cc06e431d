package baseline

import (
	"github.com/averykuo/fib2584/ai/agent"
	"github.com/averykuo/fib2584/board"
	"github.com/averykuo/fib2584/move"
)

// TreeSearch is the fixed 2-ply lookahead. For each legal first move it
// tries second moves on the same working copy in scan order, comparing
// reward1 + reward2 against the running best with a >= tie rule. The
// working copy accumulates the second slides; that quirk is preserved
// for conformance with the reference behavior.
type TreeSearch struct {
	agent.Seeded
	opcode [board.NumDirections]int
}

func NewTreeSearch(args string) (*TreeSearch, error) {
	seeded, err := agent.NewSeeded("name=treesearch role=player", args)
	if err != nil {
		return nil, err
	}
	t := &TreeSearch{Seeded: seeded}
	for i := range t.opcode {
		t.opcode[i] = i
	}
	return t, nil
}

func (t *TreeSearch) TakeAction(before board.Board) move.Move {
	t.Rng.Shuffle(len(t.opcode), func(i, j int) {
		t.opcode[i], t.opcode[j] = t.opcode[j], t.opcode[i]
	})
	best := 0
	idx := 0
	for _, op1 := range t.opcode {
		origin := before
		reward1 := origin.Slide(op1)
		if reward1 == board.IllegalMove {
			continue
		}
		for _, op2 := range t.opcode {
			reward2 := origin.Slide(op2)
			if reward2 == board.IllegalMove {
				continue
			}
			if reward1+reward2 >= best {
				best = reward2
				idx = op1
			}
		}
	}
	return move.NewSlide(idx)
}
