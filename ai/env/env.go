// Package env implements the stochastic environment: after each player
// move it drops a new tile on a random empty cell.
package env

import (
	"github.com/averykuo/fib2584/ai/agent"
	"github.com/averykuo/fib2584/board"
	"github.com/averykuo/fib2584/move"
)

// Placer shuffles the 16 positions with its private engine and places a
// tile at the first empty one: the minimal tile with probability 9/10 and
// the next one up with probability 1/10.
type Placer struct {
	agent.Seeded
	space [board.NumCells]int
}

// NewPlacer constructs a Placer; args may carry a seed for reproducible
// placement sequences.
func NewPlacer(args string) (*Placer, error) {
	seeded, err := agent.NewSeeded("name=random role=environment", args)
	if err != nil {
		return nil, err
	}
	p := &Placer{Seeded: seeded}
	for i := range p.space {
		p.space[i] = i
	}
	return p, nil
}

// TakeAction returns a place action on a random empty cell, or the none
// action when the board is full.
func (p *Placer) TakeAction(after board.Board) move.Move {
	p.Rng.Shuffle(len(p.space), func(i, j int) {
		p.space[i], p.space[j] = p.space[j], p.space[i]
	})
	for _, pos := range p.space {
		if after.Cell(pos) != 0 {
			continue
		}
		tile := 1
		if p.Rng.IntN(10) == 0 {
			tile = 2
		}
		return move.NewPlace(pos, tile)
	}
	return move.None()
}
