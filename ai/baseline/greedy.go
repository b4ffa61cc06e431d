package baseline

import (
	"github.com/averykuo/fib2584/ai/agent"
	"github.com/averykuo/fib2584/board"
	"github.com/averykuo/fib2584/move"
)

// Greedy picks the direction with the largest immediate reward. The
// running best starts at 0 and a candidate overwrites it when its reward
// is >= the best so far, so later equal-reward directions in the shuffled
// scan order win ties. With no legal direction it falls back to direction
// 0, whose application then fails and ends the episode.
type Greedy struct {
	agent.Seeded
	opcode [board.NumDirections]int
}

func NewGreedy(args string) (*Greedy, error) {
	seeded, err := agent.NewSeeded("name=greedy role=player", args)
	if err != nil {
		return nil, err
	}
	g := &Greedy{Seeded: seeded}
	for i := range g.opcode {
		g.opcode[i] = i
	}
	return g, nil
}

func (g *Greedy) TakeAction(before board.Board) move.Move {
	g.Rng.Shuffle(len(g.opcode), func(i, j int) {
		g.opcode[i], g.opcode[j] = g.opcode[j], g.opcode[i]
	})
	best := 0
	idx := 0
	for _, op := range g.opcode {
		after := before
		reward := after.Slide(op)
		if reward == board.IllegalMove {
			continue
		}
		if reward >= best {
			best = reward
			idx = op
		}
	}
	return move.NewSlide(idx)
}
