package ntuple

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
)

// Weight file layout, all little-endian: a uint32 table count, then per
// table a uint64 entry count followed by the raw float32 entries, tables
// in Patterns order.

// TableCountError reports a weight file whose table count does not match
// the fixed pattern set.
type TableCountError struct {
	Got uint32
}

func (e *TableCountError) Error() string {
	return fmt.Sprintf("weight file holds %d tables, want %d", e.Got, NumPatterns)
}

// SizeMismatchError reports a table whose entry count does not match the
// configured feature range.
type SizeMismatchError struct {
	Table int
	Got   uint64
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("weight table %d holds %d entries, want %d", e.Table, e.Got, TableSize)
}

// Read parses a network from r. Truncated input surfaces as a wrapped
// io.ErrUnexpectedEOF; callers decide whether that is fatal.
func Read(r io.Reader) (*Network, error) {
	digest := xxhash.New()
	tr := io.TeeReader(r, digest)

	var count uint32
	if err := binary.Read(tr, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("weight file header: %w", err)
	}
	if count != NumPatterns {
		return nil, &TableCountError{Got: count}
	}
	n := &Network{}
	for i := 0; i < NumPatterns; i++ {
		var size uint64
		if err := binary.Read(tr, binary.LittleEndian, &size); err != nil {
			return nil, fmt.Errorf("weight table %d header: %w", i, err)
		}
		if size != TableSize {
			return nil, &SizeMismatchError{Table: i, Got: size}
		}
		table := make([]float32, TableSize)
		if err := binary.Read(tr, binary.LittleEndian, table); err != nil {
			return nil, fmt.Errorf("weight table %d entries: %w", i, err)
		}
		n.tables[i] = table
	}
	log.Debug().Uint64("xxhash", digest.Sum64()).Msg("read-weights")
	return n, nil
}

// Write serializes the network to w in the weight file layout.
func (n *Network) Write(w io.Writer) error {
	digest := xxhash.New()
	mw := io.MultiWriter(w, digest)

	if err := binary.Write(mw, binary.LittleEndian, uint32(NumPatterns)); err != nil {
		return fmt.Errorf("weight file header: %w", err)
	}
	for i := range n.tables {
		if err := binary.Write(mw, binary.LittleEndian, uint64(TableSize)); err != nil {
			return fmt.Errorf("weight table %d header: %w", i, err)
		}
		if err := binary.Write(mw, binary.LittleEndian, n.tables[i]); err != nil {
			return fmt.Errorf("weight table %d entries: %w", i, err)
		}
	}
	log.Debug().Uint64("xxhash", digest.Sum64()).Msg("wrote-weights")
	return nil
}

// Load reads a network from the file at path.
func Load(path string) (*Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open weights: %w", err)
	}
	defer f.Close()
	n, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("weights %s: %w", path, err)
	}
	return n, nil
}

// Save writes the network to the file at path, truncating any previous
// contents.
func (n *Network) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create weights: %w", err)
	}
	if err := n.Write(f); err != nil {
		f.Close()
		return fmt.Errorf("weights %s: %w", path, err)
	}
	return f.Close()
}
