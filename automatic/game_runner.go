// Package automatic contains the episode driver: it alternates the
// player and the environment against a shared board, collects per-episode
// results, and can run large self-play batches for training and
// evaluation.
package automatic

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/averykuo/fib2584/ai/agent"
	"github.com/averykuo/fib2584/board"
	"github.com/averykuo/fib2584/tiles"
)

// GameRunner is the master struct for a single player/environment pair.
// It owns nothing concurrent: one runner plays one episode at a time.
type GameRunner struct {
	player  agent.Agent
	env     agent.Agent
	rule    tiles.Rule
	logchan chan string
	episode int
}

// EpisodeResult summarizes one finished episode.
type EpisodeResult struct {
	Episode int  `yaml:"episode"`
	Worker  int  `yaml:"worker,omitempty"`
	Score   int  `yaml:"score"`
	Moves   int  `yaml:"moves"`
	MaxTile int  `yaml:"max_tile"`
	Win     bool `yaml:"win,omitempty"`
}

// NewGameRunner instantiates a runner for the given agents. logchan, when
// non-nil, receives one CSV line per player move.
func NewGameRunner(player, env agent.Agent, rule tiles.Rule, logchan chan string) *GameRunner {
	return &GameRunner{player: player, env: env, rule: rule, logchan: logchan}
}

// PlayEpisode runs one full episode: the environment places the two
// opening tiles, then the player and environment alternate until either
// side has no action left. After each action the other agent is notified
// of it. Closing the episode triggers the player's learning pass.
func (r *GameRunner) PlayEpisode() EpisodeResult {
	r.episode++
	b := board.New(r.rule)
	r.player.OpenEpisode("~open")
	r.env.OpenEpisode("~open")

	for i := 0; i < 2; i++ {
		if r.env.TakeAction(b).Apply(&b) == board.IllegalMove {
			break
		}
	}

	score, moves := 0, 0
	win := false
	for {
		action := r.player.TakeAction(b)
		reward := action.Apply(&b)
		if reward == board.IllegalMove {
			break
		}
		score += reward
		moves++
		r.notify(r.env, "last="+action.ShortDescription())
		if r.logchan != nil {
			r.logchan <- fmt.Sprintf("%v,%v,%v,%v,%v,%v\n",
				r.player.Name(), r.episode, moves, action.ShortDescription(), reward, score)
		}
		if r.player.CheckForWin(b) {
			win = true
			break
		}
		placement := r.env.TakeAction(b)
		if placement.Apply(&b) == board.IllegalMove {
			break
		}
		r.notify(r.player, "last="+placement.ShortDescription())
	}

	maxIdx := b.Cell(b.MaxPos())
	r.player.CloseEpisode("~close")
	r.env.CloseEpisode("~close")

	return EpisodeResult{
		Episode: r.episode,
		Score:   score,
		Moves:   moves,
		MaxTile: r.rule.Value(maxIdx),
		Win:     win,
	}
}

func (r *GameRunner) notify(a agent.Agent, msg string) {
	if err := a.Notify(msg); err != nil {
		log.Warn().Err(err).Str("agent", a.Name()).Msg("notify-failed")
	}
}

// Close closes both agents; the player persists its weights here when
// configured to.
func (r *GameRunner) Close() error {
	if err := r.player.Close(); err != nil {
		return err
	}
	return r.env.Close()
}
