package env

import (
	"testing"

	"github.com/matryer/is"

	"github.com/averykuo/fib2584/board"
	"github.com/averykuo/fib2584/move"
	"github.com/averykuo/fib2584/tiles"
)

func TestPlacesOnEmptyCell(t *testing.T) {
	is := is.New(t)

	p, err := NewPlacer("seed=1")
	is.NoErr(err)
	b := board.New(tiles.Fibonacci{})
	for i := 0; i < board.NumCells; i++ {
		m := p.TakeAction(b)
		is.Equal(m.Type(), move.MoveTypePlace)
		is.Equal(b.Cell(m.Pos()), 0)
		is.True(m.Tile() == 1 || m.Tile() == 2)
		is.Equal(m.Apply(&b), 0)
	}
	is.Equal(b.Empties(), 0)
	is.True(p.TakeAction(b).IsNone())
}

func TestSeedReproducible(t *testing.T) {
	is := is.New(t)

	run := func() []move.Move {
		p, err := NewPlacer("seed=99")
		is.NoErr(err)
		b := board.New(tiles.Fibonacci{})
		var moves []move.Move
		for i := 0; i < 10; i++ {
			m := p.TakeAction(b)
			m.Apply(&b)
			moves = append(moves, m)
		}
		return moves
	}
	a, b := run(), run()
	is.Equal(a, b)
}

func TestTileBias(t *testing.T) {
	is := is.New(t)

	p, err := NewPlacer("seed=5")
	is.NoErr(err)
	counts := map[int]int{}
	empty := board.New(tiles.Fibonacci{})
	for i := 0; i < 2000; i++ {
		m := p.TakeAction(empty)
		counts[m.Tile()]++
	}
	is.Equal(counts[1]+counts[2], 2000)
	// Roughly 9:1; allow generous slack.
	is.True(counts[1] > 1600)
	is.True(counts[2] > 100)
}
