// Package tiles defines the merge/value rule that a board consults when
// sliding. The board mechanics are agnostic to which rule is plugged in;
// the rule decides which neighboring tile indices combine, what index the
// combination produces, and what numeric value a tile index displays as.
package tiles

// A Rule maps tile indices to their displayed numeric values and defines
// merge eligibility. Index 0 is always the empty cell and never merges.
type Rule interface {
	Name() string
	// NumKinds returns the number of distinct tile indices the rule
	// supports, including the empty index.
	NumKinds() int
	// Value returns the displayed numeric value for a tile index.
	Value(idx int) int
	// Merge reports whether tiles a and b combine, and if so the index
	// of the resulting tile.
	Merge(a, b int) (int, bool)
}

// Fib returns the n-th value of the Fibonacci-style merge sequence used
// by the 2584 variant: 1, 2, 3, 5, 8, 13, ... Fib(0) and below are 0.
func Fib(n int) int {
	if n <= 0 {
		return 0
	}
	a, b := 1, 2
	for ; n > 1; n-- {
		a, b = b, a+b
	}
	return a
}

// Fibonacci is the 2584-variant rule. Tile indices map onto the Fibonacci
// sequence (index 1 = 1, index 2 = 2, index 3 = 3, index 4 = 5, ...) and
// two tiles merge when their indices are consecutive, or when both are
// the minimal index 1.
type Fibonacci struct{}

func (Fibonacci) Name() string { return "fibonacci" }

func (Fibonacci) NumKinds() int { return 25 }

func (Fibonacci) Value(idx int) int { return Fib(idx) }

func (r Fibonacci) Merge(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, false
	}
	if a == 1 && b == 1 {
		return 2, true
	}
	if a-b == 1 || b-a == 1 {
		next := a + 1
		if b > a {
			next = b + 1
		}
		// The top index never merges further; indices stay in range.
		if next >= r.NumKinds() {
			return 0, false
		}
		return next, true
	}
	return 0, false
}

// Classic is the original powers-of-two rule: index n displays as 2^n and
// equal indices merge into the next index.
type Classic struct{}

func (Classic) Name() string { return "classic" }

func (Classic) NumKinds() int { return 25 }

func (Classic) Value(idx int) int {
	if idx <= 0 {
		return 0
	}
	return 1 << idx
}

func (r Classic) Merge(a, b int) (int, bool) {
	if a != 0 && a == b && a+1 < r.NumKinds() {
		return a + 1, true
	}
	return 0, false
}

// ForName returns the rule registered under the given name, defaulting to
// Fibonacci for an empty name.
func ForName(name string) (Rule, bool) {
	switch name {
	case "", "fibonacci", "2584":
		return Fibonacci{}, true
	case "classic", "2048":
		return Classic{}, true
	}
	return nil, false
}
