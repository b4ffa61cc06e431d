// Package agent defines the capability interface shared by every actor in
// an episode: learning players, baseline players, and the stochastic
// environment. Concrete variants are selected at construction time via
// their option strings, never by runtime type inspection.
package agent

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"lukechampine.com/frand"

	"github.com/averykuo/fib2584/board"
	"github.com/averykuo/fib2584/config"
	"github.com/averykuo/fib2584/move"
)

// An Agent produces actions against a shared board. OpenEpisode and
// CloseEpisode bracket one play-through; Notify carries key=value
// messages from the driver (for example the opponent's last action).
type Agent interface {
	TakeAction(b board.Board) move.Move
	OpenEpisode(flag string)
	CloseEpisode(flag string)
	CheckForWin(b board.Board) bool
	Notify(msg string) error
	Name() string
	Role() string
	// Close releases the agent; a learning player persists its weights
	// here when configured to.
	Close() error
}

// Base carries the parsed option store and default implementations of the
// non-acting methods. Concrete agents embed it.
type Base struct {
	opts *config.AgentOptions
}

// NewBase parses the option string on top of the given defaults.
func NewBase(defaults, args string) (Base, error) {
	opts, err := config.ParseAgentOptions(defaults, args)
	if err != nil {
		return Base{}, err
	}
	return Base{opts: opts}, nil
}

func (a *Base) OpenEpisode(flag string)        {}
func (a *Base) CloseEpisode(flag string)       {}
func (a *Base) CheckForWin(b board.Board) bool { return false }
func (a *Base) Close() error                   { return nil }
func (a *Base) Name() string                   { return a.opts.Name }
func (a *Base) Role() string                   { return a.opts.Role }
func (a *Base) Options() *config.AgentOptions  { return a.opts }
func (a *Base) Property(key string) (string, error) {
	return a.opts.Property(key)
}

// Notify merges a single key=value message into the option store.
func (a *Base) Notify(msg string) error {
	eq := strings.Index(msg, "=")
	if eq < 0 {
		return fmt.Errorf("notify message %q is not key=value", msg)
	}
	return a.opts.Set(msg[:eq], msg[eq+1:])
}

// Seeded is the base for agents with randomness. The engine is private to
// the agent: seeding it via the seed option yields reproducible action
// sequences regardless of what other agents do.
type Seeded struct {
	Base
	Rng *rand.Rand
}

// NewSeeded builds a Base plus a PCG engine, seeded from the seed option
// when present and from the system entropy pool otherwise.
func NewSeeded(defaults, args string) (Seeded, error) {
	base, err := NewBase(defaults, args)
	if err != nil {
		return Seeded{}, err
	}
	var s1, s2 uint64
	if base.opts.HasSeed() {
		s1, s2 = base.opts.Seed, base.opts.Seed^0x9e3779b97f4a7c15
	} else {
		s1, s2 = frand.Uint64n(1<<63-1), frand.Uint64n(1<<63-1)
	}
	return Seeded{Base: base, Rng: rand.New(rand.NewPCG(s1, s2))}, nil
}
