package baseline

import (
	"github.com/averykuo/fib2584/ai/agent"
	"github.com/averykuo/fib2584/board"
	"github.com/averykuo/fib2584/move"
)

// Random plays the first legal direction in a freshly shuffled order.
type Random struct {
	agent.Seeded
	opcode [board.NumDirections]int
}

func NewRandom(args string) (*Random, error) {
	seeded, err := agent.NewSeeded("name=random role=player", args)
	if err != nil {
		return nil, err
	}
	r := &Random{Seeded: seeded}
	for i := range r.opcode {
		r.opcode[i] = i
	}
	return r, nil
}

func (r *Random) TakeAction(before board.Board) move.Move {
	r.shuffle()
	for _, op := range r.opcode {
		after := before
		if after.Slide(op) != board.IllegalMove {
			return move.NewSlide(op)
		}
	}
	return move.None()
}

func (r *Random) shuffle() {
	r.Rng.Shuffle(len(r.opcode), func(i, j int) {
		r.opcode[i], r.opcode[j] = r.opcode[j], r.opcode[i]
	})
}
