// Package ntuple implements the additive n-tuple value function: eight
// independently addressed weight tables, one per fixed 4-cell pattern of
// the grid, whose lookups sum to the value estimate for a board.
package ntuple

import (
	"github.com/averykuo/fib2584/board"
)

const (
	// Base is the number of distinct tile indices a feature digit can
	// take. It is fixed: together with Patterns it defines the weight
	// file geometry, so changing it breaks weight-file compatibility.
	Base = 25
	// PatternSize is the number of cells per pattern.
	PatternSize = 4
	// NumPatterns is the number of patterns (4 rows + 4 columns).
	NumPatterns = 8
	// TableSize is the number of entries per weight table.
	TableSize = Base * Base * Base * Base
)

// Patterns is the fixed n-tuple geometry: the four rows followed by the
// four columns, each as row-major cell positions. This table is the
// single source of truth for the pattern set.
var Patterns = [NumPatterns][PatternSize]int{
	{0, 1, 2, 3},
	{4, 5, 6, 7},
	{8, 9, 10, 11},
	{12, 13, 14, 15},
	{0, 4, 8, 12},
	{1, 5, 9, 13},
	{2, 6, 10, 14},
	{3, 7, 11, 15},
}

// Feature hashes the four cells a, b, c, d of the board into one bounded
// index: v(a)·Base³ + v(b)·Base² + v(c)·Base + v(d), always < Base⁴.
func Feature(b board.Board, a, bb, c, d int) int {
	return b.Cell(a)*Base*Base*Base + b.Cell(bb)*Base*Base + b.Cell(c)*Base + b.Cell(d)
}

// A Network holds the eight weight tables. Estimates and adjustments are
// plain table lookups; there is no search and no hidden state. A Network
// must not be shared by concurrent writers.
type Network struct {
	tables [NumPatterns][]float32
}

// NewNetwork returns a network with freshly zeroed tables.
func NewNetwork() *Network {
	n := &Network{}
	for i := range n.tables {
		n.tables[i] = make([]float32, TableSize)
	}
	return n
}

// Estimate returns the value of the board: the sum of the eight table
// lookups at the board's pattern features.
func (n *Network) Estimate(b board.Board) float32 {
	var value float32
	for i, p := range Patterns {
		value += n.tables[i][Feature(b, p[0], p[1], p[2], p[3])]
	}
	return value
}

// Adjust adds the same delta to every table at the board's respective
// feature index. Each pattern absorbs an equal share of a TD correction
// every time it is touched.
func (n *Network) Adjust(b board.Board, delta float32) {
	for i, p := range Patterns {
		n.tables[i][Feature(b, p[0], p[1], p[2], p[3])] += delta
	}
}

// Weight returns the entry of one table; pattern indexes Patterns.
func (n *Network) Weight(pattern, index int) float32 {
	return n.tables[pattern][index]
}

// SetWeight overwrites the entry of one table.
func (n *Network) SetWeight(pattern, index int, v float32) {
	n.tables[pattern][index] = v
}
