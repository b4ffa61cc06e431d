package player

import (
	"path/filepath"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/averykuo/fib2584/ai/env"
	"github.com/averykuo/fib2584/board"
	"github.com/averykuo/fib2584/move"
	"github.com/averykuo/fib2584/ntuple"
	"github.com/averykuo/fib2584/tiles"
)

func TestTakeActionPicksBestSum(t *testing.T) {
	is := is.New(t)

	p, err := New("alpha=0")
	is.NoErr(err)

	// Two 1-tiles in the left column: sliding up or down merges them
	// (reward 2), left is a no-op, right moves without reward. All table
	// entries are zero, so the merge directions dominate and the
	// first-seen of them (up, direction 0) must win the tie.
	b := board.FromCells(tiles.Fibonacci{}, [board.NumCells]uint8{
		1, 0, 0, 0,
		1, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	})
	m := p.TakeAction(b)
	is.Equal(m.Type(), move.MoveTypeSlide)
	is.Equal(m.Dir(), board.DirUp)
	is.Equal(len(p.History()), 1)
	is.Equal(p.History()[0].Reward, 2)
}

func TestTakeActionPrefersValueOverReward(t *testing.T) {
	is := is.New(t)

	p, err := New("alpha=0")
	is.NoErr(err)

	b := board.FromCells(tiles.Fibonacci{}, [board.NumCells]uint8{
		1, 0, 0, 0,
		1, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	})
	// Make the slide-right outcome worth more than the merge reward.
	right := b
	right.Slide(board.DirRight)
	p.Network().Adjust(right, 10)

	m := p.TakeAction(b)
	is.Equal(m.Dir(), board.DirRight)
}

func TestTakeActionNoLegalMove(t *testing.T) {
	is := is.New(t)

	p, err := New("alpha=0.1")
	is.NoErr(err)
	b := board.FromCells(tiles.Classic{}, [board.NumCells]uint8{
		1, 3, 1, 3,
		5, 7, 5, 7,
		1, 3, 1, 3,
		5, 7, 5, 7,
	})
	m := p.TakeAction(b)
	is.True(m.IsNone())
	is.Equal(len(p.History()), 0)
}

func TestHistoryLifecycle(t *testing.T) {
	is := is.New(t)

	p, err := New("alpha=0.1")
	is.NoErr(err)
	p.OpenEpisode("~start")
	is.Equal(len(p.History()), 0)

	b := board.New(tiles.Fibonacci{})
	b.Place(0, 1)
	b.Place(1, 1)
	for i := 0; i < 3; i++ {
		m := p.TakeAction(b)
		if m.IsNone() {
			break
		}
		m.Apply(&b)
		b.Place(15, 1)
	}
	n := len(p.History())
	is.True(n > 0)

	hist := append([]Step(nil), p.History()...)
	p.CloseEpisode("~end")
	// Close mutates weights, not the history.
	is.Equal(len(p.History()), n)
	for i := range hist {
		is.Equal(p.History()[i].Reward, hist[i].Reward)
		is.True(p.History()[i].After.Equal(hist[i].After))
	}

	p.OpenEpisode("~start")
	is.Equal(len(p.History()), 0)
}

func TestCloseEpisodeUpdatesBackward(t *testing.T) {
	assert := assert.New(t)

	p, err := New("alpha=0.05")
	assert.NoError(err)

	// Dense boards with disjoint pattern entries, so the two updates
	// cannot alias through shared zero features.
	rule := tiles.Fibonacci{}
	after1 := board.FromCells(rule, [board.NumCells]uint8{
		1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16,
	})
	after2 := board.FromCells(rule, [board.NumCells]uint8{
		2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17,
	})
	p.OpenEpisode("")
	p.history = append(p.history, Step{Reward: 2, After: after1}, Step{Reward: 3, After: after2})
	p.CloseEpisode("")

	// Terminal first: V(after2) moves toward 0 (stays 0). Then V(after1)
	// moves toward 3 + V(after2) = 3: each of the 8 contributing entries
	// gains alpha×error, so the estimate gains 8 × 0.05 × 3 = 1.2.
	assert.InDelta(0.0, float64(p.net.Estimate(after2)), 1e-5)
	assert.InDelta(1.2, float64(p.net.Estimate(after1)), 1e-5)

	// A second pass keeps shrinking the remaining error.
	p.CloseEpisode("")
	assert.InDelta(0.0, float64(p.net.Estimate(after2)), 1e-5)
	assert.InDelta(1.92, float64(p.net.Estimate(after1)), 1e-5)
}

func TestCloseEpisodeNoOps(t *testing.T) {
	is := is.New(t)

	// Zero alpha: inference only.
	p, err := New("alpha=0")
	is.NoErr(err)
	after := board.FromCells(tiles.Fibonacci{}, [board.NumCells]uint8{2})
	p.history = append(p.history, Step{Reward: 2, After: after})
	p.CloseEpisode("")
	is.Equal(p.net.Estimate(after), float32(0))

	// Empty history.
	q, err := New("alpha=0.5")
	is.NoErr(err)
	q.CloseEpisode("")
	is.Equal(q.net.Estimate(after), float32(0))
}

func TestSaveAndReload(t *testing.T) {
	is := is.New(t)

	path := filepath.Join(t.TempDir(), "w.bin")
	p, err := New("alpha=0.5 save=" + path)
	is.NoErr(err)
	b := board.FromCells(tiles.Fibonacci{}, [board.NumCells]uint8{1, 2, 3, 4})
	p.Network().Adjust(b, 1.0)
	is.NoErr(p.Close())

	q, err := New("alpha=0 load=" + path)
	is.NoErr(err)
	is.Equal(q.Network().Estimate(b), float32(ntuple.NumPatterns))
}

func TestLoadFailureSurfaces(t *testing.T) {
	is := is.New(t)

	_, err := New("load=" + filepath.Join(t.TempDir(), "missing.bin"))
	is.True(err != nil)
}

func TestTDErrorShrinksOverSelfPlay(t *testing.T) {
	is := is.New(t)

	p, err := New("alpha=0.01")
	is.NoErr(err)
	e, err := env.NewPlacer("seed=7")
	is.NoErr(err)

	avgSqError := func() float64 {
		// Mean squared TD error over the recorded history.
		h := p.History()
		if len(h) < 2 {
			return 0
		}
		sum := 0.0
		for t := 0; t < len(h)-1; t++ {
			target := float64(h[t+1].Reward) + float64(p.Network().Estimate(h[t+1].After))
			d := target - float64(p.Network().Estimate(h[t].After))
			sum += d * d
		}
		return sum / float64(len(h)-1)
	}

	play := func() float64 {
		b := board.New(tiles.Fibonacci{})
		p.OpenEpisode("")
		e.TakeAction(b).Apply(&b)
		e.TakeAction(b).Apply(&b)
		for {
			m := p.TakeAction(b)
			if m.Apply(&b) == board.IllegalMove {
				break
			}
			if e.TakeAction(b).Apply(&b) == board.IllegalMove {
				break
			}
		}
		errBefore := avgSqError()
		p.CloseEpisode("")
		return errBefore
	}

	var early, late float64
	for i := 0; i < 100; i++ {
		e := play()
		if i < 20 {
			early += e
		}
		if i >= 80 {
			late += e
		}
	}
	// Statistical, not exact: after training passes the average squared
	// TD error on fresh episodes should come down from the cold start.
	is.True(late < early)
}
