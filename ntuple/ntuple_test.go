package ntuple

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/matryer/is"

	"github.com/averykuo/fib2584/board"
	"github.com/averykuo/fib2584/tiles"
)

func TestFeatureBound(t *testing.T) {
	is := is.New(t)

	boards := [][board.NumCells]uint8{
		{},
		{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		{24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24},
		{0, 5, 12, 24, 3, 0, 9, 1, 17, 2, 0, 8, 4, 23, 11, 6},
	}
	for _, cells := range boards {
		b := board.FromCells(tiles.Fibonacci{}, cells)
		for _, p := range Patterns {
			f := Feature(b, p[0], p[1], p[2], p[3])
			is.True(f >= 0)
			is.True(f < TableSize)
		}
	}
}

func TestEstimateAfterTopIndexSlide(t *testing.T) {
	is := is.New(t)

	// Two neighboring top-range tiles may not merge past the rule's
	// index range, so every post-slide board stays addressable.
	b := board.FromCells(tiles.Fibonacci{}, [board.NumCells]uint8{
		24, 23, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 1,
	})
	n := NewNetwork()
	for dir := 0; dir < board.NumDirections; dir++ {
		after := b
		if after.Slide(dir) == board.IllegalMove {
			continue
		}
		is.Equal(after.Cell(after.MaxPos()), 24)
		for _, p := range Patterns {
			f := Feature(after, p[0], p[1], p[2], p[3])
			is.True(f >= 0)
			is.True(f < TableSize)
		}
		is.Equal(n.Estimate(after), float32(0))
	}
}

func TestFeatureDigits(t *testing.T) {
	is := is.New(t)

	b := board.FromCells(tiles.Fibonacci{}, [board.NumCells]uint8{3, 1, 4, 2})
	is.Equal(Feature(b, 0, 1, 2, 3), 3*Base*Base*Base+1*Base*Base+4*Base+2)
}

func TestEstimateLinearity(t *testing.T) {
	is := is.New(t)

	n := NewNetwork()
	b := board.FromCells(tiles.Fibonacci{}, [board.NumCells]uint8{
		1, 2, 0, 3,
		0, 1, 4, 0,
		2, 0, 1, 0,
		0, 3, 0, 1,
	})
	is.Equal(n.Estimate(b), float32(0))

	// The estimate is exactly the sum of the 8 lookups.
	var sum float32
	for i, p := range Patterns {
		f := Feature(b, p[0], p[1], p[2], p[3])
		n.SetWeight(i, f, float32(i)+0.5)
		sum += n.Weight(i, f)
	}
	is.Equal(n.Estimate(b), sum)

	// Changing one contributing entry changes the estimate by that delta.
	f0 := Feature(b, Patterns[2][0], Patterns[2][1], Patterns[2][2], Patterns[2][3])
	n.SetWeight(2, f0, n.Weight(2, f0)+1.25)
	is.Equal(n.Estimate(b), sum+1.25)
}

func TestAdjustTouchesAllPatterns(t *testing.T) {
	is := is.New(t)

	n := NewNetwork()
	b := board.FromCells(tiles.Fibonacci{}, [board.NumCells]uint8{
		1, 0, 0, 0,
		0, 2, 0, 0,
		0, 0, 3, 0,
		0, 0, 0, 4,
	})
	n.Adjust(b, 0.5)
	for i, p := range Patterns {
		is.Equal(n.Weight(i, Feature(b, p[0], p[1], p[2], p[3])), float32(0.5))
	}
	is.Equal(n.Estimate(b), float32(4.0))
}

func TestPersistenceRoundTrip(t *testing.T) {
	is := is.New(t)

	n := NewNetwork()
	n.SetWeight(0, 0, 1.5)
	n.SetWeight(3, 12345, -2.25)
	n.SetWeight(7, TableSize-1, 0.125)

	path := filepath.Join(t.TempDir(), "weights.bin")
	is.NoErr(n.Save(path))

	loaded, err := Load(path)
	is.NoErr(err)
	is.Equal(loaded.Weight(0, 0), float32(1.5))
	is.Equal(loaded.Weight(3, 12345), float32(-2.25))
	is.Equal(loaded.Weight(7, TableSize-1), float32(0.125))
	is.Equal(loaded.Weight(5, 99), float32(0))
}

func TestLoadMissingFile(t *testing.T) {
	is := is.New(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.bin"))
	is.True(err != nil)
}

func TestReadBadTableCount(t *testing.T) {
	is := is.New(t)

	_, err := Read(bytes.NewReader([]byte{3, 0, 0, 0}))
	var tce *TableCountError
	is.True(errors.As(err, &tce))
	is.Equal(tce.Got, uint32(3))
}

func TestReadTruncated(t *testing.T) {
	is := is.New(t)

	var buf bytes.Buffer
	is.NoErr(NewNetwork().Write(&buf))
	short := buf.Bytes()[:buf.Len()/2]
	_, err := Read(bytes.NewReader(short))
	is.True(errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF))
}

func TestReadSizeMismatch(t *testing.T) {
	is := is.New(t)

	var buf bytes.Buffer
	// 8 tables claimed, but the first table header lies about its size.
	buf.Write([]byte{8, 0, 0, 0})
	buf.Write([]byte{1, 0, 0, 0, 0, 0, 0, 0})
	buf.Write([]byte{0, 0, 0, 0})
	_, err := Read(bytes.NewReader(buf.Bytes()))
	var sme *SizeMismatchError
	is.True(errors.As(err, &sme))
	is.Equal(sme.Table, 0)
	is.Equal(sme.Got, uint64(1))
}
