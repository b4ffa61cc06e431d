// Package shell implements the interactive controller: a readline REPL
// for playing the game by hand, watching the learning player, and running
// training batches.
package shell

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/averykuo/fib2584/ai/env"
	"github.com/averykuo/fib2584/ai/player"
	"github.com/averykuo/fib2584/automatic"
	"github.com/averykuo/fib2584/board"
	"github.com/averykuo/fib2584/config"
	"github.com/averykuo/fib2584/move"
	"github.com/averykuo/fib2584/tiles"
)

// ShellController drives one interactive session. It owns a board, the
// learning player, and the environment.
type ShellController struct {
	l   *readline.Instance
	out io.Writer
	cfg *config.Config

	rule   tiles.Rule
	b      board.Board
	score  int
	player *player.TDPlayer
	env    *env.Placer
}

var dirCodes = map[string]int{
	"u": board.DirUp, "up": board.DirUp,
	"r": board.DirRight, "right": board.DirRight,
	"d": board.DirDown, "down": board.DirDown,
	"l": board.DirLeft, "left": board.DirLeft,
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

// NewShellController builds the session from the app config.
func NewShellController(cfg *config.Config) (*ShellController, error) {
	rule, ok := tiles.ForName(cfg.Rule)
	if !ok {
		return nil, fmt.Errorf("unknown tile rule %q", cfg.Rule)
	}
	playerArgs := fmt.Sprintf("alpha=%v wintile=%d", cfg.Alpha, cfg.WinTile)
	if cfg.LoadPath != "" {
		playerArgs += " load=" + cfg.LoadPath
	}
	if cfg.SavePath != "" {
		playerArgs += " save=" + cfg.SavePath
	}
	p, err := player.New(playerArgs)
	if err != nil {
		return nil, err
	}
	e, err := env.NewPlacer(cfg.EnvArgs())
	if err != nil {
		return nil, err
	}
	l, err := readline.NewEx(&readline.Config{
		Prompt:              "\033[31mfib2584>\033[0m ",
		HistoryFile:         "/tmp/fib2584_readline.tmp",
		EOFPrompt:           "exit",
		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, err
	}
	sc := &ShellController{l: l, out: l.Stdout(), cfg: cfg, rule: rule, player: p, env: e}
	sc.newGame()
	return sc, nil
}

func (sc *ShellController) newGame() {
	sc.b = board.New(sc.rule)
	sc.score = 0
	sc.player.OpenEpisode("~open")
	sc.env.OpenEpisode("~open")
	for i := 0; i < 2; i++ {
		sc.env.TakeAction(sc.b).Apply(&sc.b)
	}
}

func (sc *ShellController) showMessage(msg string) {
	io.WriteString(sc.out, msg)
	io.WriteString(sc.out, "\n")
}

func (sc *ShellController) showBoard() {
	sc.showMessage(sc.b.ToDisplayText())
	sc.showMessage(fmt.Sprintf("score: %d", sc.score))
}

// step applies one player move and the environment's reply. It returns
// false when the move was illegal or the episode is over.
func (sc *ShellController) step(m move.Move) bool {
	reward := m.Apply(&sc.b)
	if reward == board.IllegalMove {
		return false
	}
	sc.score += reward
	sc.env.TakeAction(sc.b).Apply(&sc.b)
	return true
}

func (sc *ShellController) handleMove(arg string) {
	dir, ok := dirCodes[strings.ToLower(arg)]
	if !ok {
		sc.showMessage("direction must be one of u, r, d, l")
		return
	}
	if !sc.step(move.NewSlide(dir)) {
		sc.showMessage("illegal move")
		return
	}
	sc.showBoard()
}

func (sc *ShellController) handleAuto(args []string) {
	n := -1
	if len(args) > 0 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil || parsed < 1 {
			sc.showMessage("auto takes a positive move count")
			return
		}
		n = parsed
	}
	moves := 0
	for n < 0 || moves < n {
		m := sc.player.TakeAction(sc.b)
		if m.IsNone() || !sc.step(m) {
			sc.showMessage("no legal move left; use 'new' to start over")
			break
		}
		moves++
	}
	sc.showBoard()
}

func (sc *ShellController) handleTrain(args []string) {
	if len(args) != 1 {
		sc.showMessage("usage: train <episodes>")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		sc.showMessage("train takes a positive episode count")
		return
	}
	runner := automatic.NewGameRunner(sc.player, sc.env, sc.rule, nil)
	var best automatic.EpisodeResult
	for i := 0; i < n; i++ {
		res := runner.PlayEpisode()
		if res.Score > best.Score {
			best = res
		}
	}
	sc.showMessage(fmt.Sprintf("trained %d episodes; best score %d (max tile %d)",
		n, best.Score, best.MaxTile))
	sc.newGame()
}

func (sc *ShellController) handleSave(args []string) {
	if len(args) != 1 {
		sc.showMessage("usage: save <path>")
		return
	}
	if err := sc.player.Network().Save(args[0]); err != nil {
		sc.showMessage("save failed: " + err.Error())
		return
	}
	sc.showMessage("saved weights to " + args[0])
}

func (sc *ShellController) handleLoad(args []string) {
	if len(args) != 1 {
		sc.showMessage("usage: load <path>")
		return
	}
	playerArgs := fmt.Sprintf("alpha=%v wintile=%d load=%s", sc.cfg.Alpha, sc.cfg.WinTile, args[0])
	p, err := player.New(playerArgs)
	if err != nil {
		sc.showMessage("load failed: " + err.Error())
		return
	}
	// The outgoing player may hold an unsaved save= path.
	if err := sc.player.Close(); err != nil {
		sc.showMessage("closing previous player: " + err.Error())
	}
	sc.player = p
	sc.showMessage("loaded weights from " + args[0])
	sc.newGame()
}

func usage() string {
	return `commands:
new - start a new game
show - print the board
move <u|r|d|l> - slide in a direction (environment replies)
auto [n] - let the learning player move n times (default: to the end)
train <n> - run n self-play training episodes
save <path> - save weight tables
load <path> - load weight tables
help - this text
exit - leave the shell
`
}

// Loop reads and executes commands until exit/EOF.
func (sc *ShellController) Loop(ctx context.Context) error {
	defer sc.l.Close()
	sc.showBoard()
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			continue
		} else if err == io.EOF {
			break
		}
		fields, err := shellquote.Split(strings.TrimSpace(line))
		if err != nil {
			sc.showMessage("bad command line: " + err.Error())
			continue
		}
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]
		switch cmd {
		case "new":
			sc.newGame()
			sc.showBoard()
		case "show":
			sc.showBoard()
		case "move":
			if len(args) != 1 {
				sc.showMessage("usage: move <u|r|d|l>")
				continue
			}
			sc.handleMove(args[0])
		case "auto":
			sc.handleAuto(args)
		case "train":
			sc.handleTrain(args)
		case "save":
			sc.handleSave(args)
		case "load":
			sc.handleLoad(args)
		case "help":
			sc.showMessage(usage())
		case "exit", "quit":
			if err := sc.player.Close(); err != nil {
				log.Err(err).Msg("closing-player")
			}
			return nil
		default:
			sc.showMessage("unknown command " + cmd + "; try 'help'")
		}
	}
	return sc.player.Close()
}
