// Package player implements the TD-learning player: 1-ply action
// selection against the n-tuple value function, and a backward TD(0) pass
// over the episode history at episode close.
package player

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/averykuo/fib2584/ai/agent"
	"github.com/averykuo/fib2584/board"
	"github.com/averykuo/fib2584/move"
	"github.com/averykuo/fib2584/ntuple"
)

// A Step is one entry of the episode history: the reward the move earned
// and the board it produced, before the environment's response.
type Step struct {
	Reward int
	After  board.Board
}

// TDPlayer owns its weight tables and its episode history exclusively.
// It must not be shared across concurrently running episodes.
type TDPlayer struct {
	agent.Base
	net     *ntuple.Network
	alpha   float32
	history []Step
	winTile int
}

// New constructs a TDPlayer from its option string. Recognized options:
// alpha (learning rate; 0 means inference only), load/save (weight file
// paths), init (accepted; tables always start zeroed when not loading),
// wintile (tile index counting as a win).
func New(args string) (*TDPlayer, error) {
	base, err := agent.NewBase("name=learner role=player", args)
	if err != nil {
		return nil, err
	}
	p := &TDPlayer{Base: base, winTile: 17}
	opts := p.Options()
	if opts.HasAlpha() {
		p.alpha = float32(opts.Alpha)
	}
	if wt, err := opts.Property("wintile"); err == nil {
		n, err := strconv.Atoi(wt)
		if err != nil {
			return nil, fmt.Errorf("agent option wintile=%q: %w", wt, err)
		}
		p.winTile = n
	}
	if opts.Load != "" {
		net, err := ntuple.Load(opts.Load)
		if err != nil {
			return nil, err
		}
		p.net = net
		log.Debug().Str("path", opts.Load).Msg("loaded-weights")
	} else {
		p.net = ntuple.NewNetwork()
	}
	return p, nil
}

// Network exposes the value function, e.g. for evaluation tooling.
func (p *TDPlayer) Network() *ntuple.Network { return p.net }

// Alpha returns the learning rate.
func (p *TDPlayer) Alpha() float32 { return p.alpha }

// TakeAction tries all 4 directions on copies of the board and picks the
// one maximizing reward + Estimate(after). The comparison is strictly
// greater-than, so the first-seen direction wins ties; that ordering is
// part of the reproducibility contract. With no legal direction it
// returns the none action and records nothing.
func (p *TDPlayer) TakeAction(before board.Board) move.Move {
	bestOp := -1
	bestReward := -1
	bestValue := float32(-10000)
	var bestAfter board.Board
	for op := 0; op < board.NumDirections; op++ {
		after := before
		reward := after.Slide(op)
		if reward == board.IllegalMove {
			continue
		}
		value := p.net.Estimate(after)
		if float32(reward)+value > float32(bestReward)+bestValue {
			bestOp = op
			bestReward = reward
			bestValue = value
			bestAfter = after
		}
	}
	if bestOp == -1 {
		return move.None()
	}
	p.history = append(p.history, Step{Reward: bestReward, After: bestAfter})
	return move.NewSlide(bestOp)
}

// OpenEpisode clears the history.
func (p *TDPlayer) OpenEpisode(flag string) {
	p.history = p.history[:0]
}

// CloseEpisode runs the backward TD(0) pass: the final state is updated
// toward 0 (terminal), then each earlier state toward the bootstrapped
// target reward[t+1] + Estimate(after[t+1]), using the already-updated
// network. A zero learning rate or an empty history makes this a no-op.
func (p *TDPlayer) CloseEpisode(flag string) {
	if len(p.history) == 0 || p.alpha == 0 {
		return
	}
	p.adjust(p.history[len(p.history)-1].After, 0)
	for t := len(p.history) - 2; t >= 0; t-- {
		target := float32(p.history[t+1].Reward) + p.net.Estimate(p.history[t+1].After)
		p.adjust(p.history[t].After, target)
	}
}

func (p *TDPlayer) adjust(after board.Board, target float32) {
	err := target - p.net.Estimate(after)
	p.net.Adjust(after, p.alpha*err)
}

// CheckForWin reports whether the board carries a tile at or above the
// configured winning index.
func (p *TDPlayer) CheckForWin(b board.Board) bool {
	return b.Cell(b.MaxPos()) >= p.winTile
}

// History returns the recorded steps of the current episode.
func (p *TDPlayer) History() []Step { return p.history }

// Close persists the weights when a save path was configured.
func (p *TDPlayer) Close() error {
	if save := p.Options().Save; save != "" {
		if err := p.net.Save(save); err != nil {
			return err
		}
		log.Debug().Str("path", save).Msg("saved-weights")
	}
	return nil
}
