// Package baseline provides non-learning decision policies: a random
// legal mover, a greedy immediate-reward chooser, a fixed 2-ply search,
// and a handcrafted positional heuristic. They serve as weaker opponents
// and ablation baselines; their tie-break orders are part of the
// conformance surface and must not be "fixed".
package baseline

import (
	"fmt"

	"github.com/averykuo/fib2584/ai/agent"
)

// New selects a policy by name. Each policy is its own type chosen at
// construction; there is no runtime branching on a mode string.
func New(policy, args string) (agent.Agent, error) {
	switch policy {
	case "random":
		return NewRandom(args)
	case "greedy":
		return NewGreedy(args)
	case "treesearch":
		return NewTreeSearch(args)
	case "heuristic":
		return NewHeuristic(args)
	}
	return nil, fmt.Errorf("unknown baseline policy %q", policy)
}
