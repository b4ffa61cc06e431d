package automatic

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
	"lukechampine.com/frand"

	"github.com/averykuo/fib2584/ai/baseline"
	"github.com/averykuo/fib2584/ai/env"
	"github.com/averykuo/fib2584/ai/player"
	"github.com/averykuo/fib2584/config"
	"github.com/averykuo/fib2584/stats"
	"github.com/averykuo/fib2584/tiles"
)

// Summary aggregates a self-play batch.
type Summary struct {
	Episodes int             `yaml:"episodes"`
	Wins     int             `yaml:"wins"`
	Results  []EpisodeResult `yaml:"results"`

	ScoreStats stats.Statistic `yaml:"-"`
	MoveStats  stats.Statistic `yaml:"-"`
}

// WinRate returns the fraction of winning episodes.
func (s *Summary) WinRate() float64 {
	if s.Episodes == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Episodes)
}

// newRunner builds the agents for one worker from the configuration. The
// save path is only honored for worker 0 so parallel workers do not
// clobber each other's weight files.
func newRunner(cfg *config.Config, worker int, seed uint64, logchan chan string) (*GameRunner, error) {
	rule, ok := tiles.ForName(cfg.Rule)
	if !ok {
		return nil, fmt.Errorf("unknown tile rule %q", cfg.Rule)
	}

	playerArgs := fmt.Sprintf("alpha=%v wintile=%d", cfg.Alpha, cfg.WinTile)
	if cfg.LoadPath != "" {
		playerArgs += " load=" + cfg.LoadPath
	}
	if cfg.SavePath != "" && worker == 0 {
		playerArgs += " save=" + cfg.SavePath
	}
	p, err := player.New(playerArgs)
	if err != nil {
		return nil, err
	}
	e, err := env.NewPlacer(fmt.Sprintf("seed=%d", seed))
	if err != nil {
		return nil, err
	}
	return NewGameRunner(p, e, rule, logchan), nil
}

// NewBaselineRunner builds a runner pitting a named baseline policy
// against the environment, for ablation runs.
func NewBaselineRunner(policy string, rule tiles.Rule, seed uint64, logchan chan string) (*GameRunner, error) {
	p, err := baseline.New(policy, fmt.Sprintf("seed=%d", seed))
	if err != nil {
		return nil, err
	}
	e, err := env.NewPlacer(fmt.Sprintf("seed=%d", seed+1))
	if err != nil {
		return nil, err
	}
	return NewGameRunner(p, e, rule, logchan), nil
}

// StartSelfPlayGames plays numGames episodes across threads workers and
// aggregates the results. Each worker owns its agents outright: weight
// tables are never shared across goroutines, so learning runs with more
// than one thread train independent networks.
func StartSelfPlayGames(ctx context.Context, cfg *config.Config, numGames, threads int) (*Summary, error) {
	if threads < 1 {
		threads = 1
	}
	if cfg.Alpha > 0 && threads > 1 {
		log.Warn().Int("threads", threads).
			Msg("learning with multiple threads trains one independent network per worker")
	}

	seeds, err := workerSeeds(cfg, threads)
	if err != nil {
		return nil, err
	}

	var logfile *os.File
	var logchan chan string
	if cfg.MoveLog != "" {
		logfile, err = os.Create(cfg.MoveLog)
		if err != nil {
			return nil, fmt.Errorf("create move log: %w", err)
		}
		logchan = make(chan string, 100)
	}

	var gamelog *GameLog
	if cfg.EpisodeDB != "" {
		gamelog, err = OpenGameLog(cfg.EpisodeDB)
		if err != nil {
			return nil, err
		}
		defer gamelog.Close()
	}

	log.Debug().Int("games", numGames).Int("threads", threads).Msg("starting-selfplay")

	jobs := make(chan int, 100)
	results := make(chan EpisodeResult, 100)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < threads; w++ {
		g.Go(func() (reterr error) {
			runner, err := newRunner(cfg, w, seeds[w], logchan)
			if err != nil {
				return err
			}
			// A failed close means the weights were not persisted; that
			// must fail the whole run, not just log.
			defer func() {
				if err := runner.Close(); err != nil && reterr == nil {
					reterr = err
				}
			}()
			for range jobs {
				res := runner.PlayEpisode()
				res.Worker = w
				select {
				case results <- res:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}

	go func() {
	gameLoop:
		for i := 1; i <= numGames; i++ {
			select {
			case jobs <- i:
			case <-gctx.Done():
				log.Info().Msg("got stop signal, exiting soon...")
				break gameLoop
			}
			if i%1000 == 0 {
				log.Debug().Int("queued", i).Msg("queueing-jobs")
			}
		}
		close(jobs)
	}()

	var writerWg sync.WaitGroup
	if logchan != nil {
		writerWg.Add(1)
		go func() {
			defer writerWg.Done()
			logfile.WriteString("player,episode,move,action,reward,score\n")
			for msg := range logchan {
				logfile.WriteString(msg)
			}
			logfile.Close()
		}()
	}

	summary := &Summary{}
	var collectErr error
	var collectWg sync.WaitGroup
	collectWg.Add(1)
	go func() {
		defer collectWg.Done()
		for res := range results {
			summary.Episodes++
			summary.Results = append(summary.Results, res)
			summary.ScoreStats.Push(float64(res.Score))
			summary.MoveStats.Push(float64(res.Moves))
			if res.Win {
				summary.Wins++
			}
			if gamelog != nil {
				if err := gamelog.Record(res); err != nil && collectErr == nil {
					collectErr = err
				}
			}
			if summary.Episodes%1000 == 0 {
				log.Info().Int("episodes", summary.Episodes).
					Float64("mean-score", summary.ScoreStats.Mean()).
					Float64("max-score", summary.ScoreStats.Max()).
					Float64("win-rate", summary.WinRate()).
					Msg("selfplay-progress")
			}
		}
	}()

	err = g.Wait()
	close(results)
	if logchan != nil {
		close(logchan)
	}
	collectWg.Wait()
	writerWg.Wait()
	if err != nil {
		return nil, err
	}
	if collectErr != nil {
		return nil, collectErr
	}

	logSummary(summary)
	if cfg.ReportYAML != "" {
		if err := writeReport(summary, cfg.ReportYAML); err != nil {
			return nil, err
		}
	}
	return summary, nil
}

func workerSeeds(cfg *config.Config, threads int) ([]uint64, error) {
	if cfg.SeedFile != "" {
		raw, err := LoadSeeds(cfg.SeedFile)
		if err != nil {
			return nil, err
		}
		seeds := make([]uint64, threads)
		for w := range seeds {
			seeds[w] = WorkerSeed(raw, w)
		}
		return seeds, nil
	}
	seeds := make([]uint64, threads)
	for w := range seeds {
		if cfg.Seed != 0 {
			seeds[w] = cfg.Seed + uint64(w)
		} else {
			seeds[w] = frand.Uint64n(1<<63 - 1)
		}
	}
	return seeds, nil
}

func logSummary(s *Summary) {
	lo95, hi95 := stats.WinRateInterval(s.Wins, s.Episodes, 95)
	log.Info().
		Int("episodes", s.Episodes).
		Float64("mean-score", s.ScoreStats.Mean()).
		Float64("stdev-score", s.ScoreStats.Stdev()).
		Float64("max-score", s.ScoreStats.Max()).
		Float64("mean-moves", s.MoveStats.Mean()).
		Float64("win-rate", s.WinRate()).
		Float64("win-rate-lo95", lo95).
		Float64("win-rate-hi95", hi95).
		Msg("selfplay-finished")

	if len(s.Results) >= 10 {
		scores := lo.Map(s.Results, func(r EpisodeResult, _ int) float64 {
			return float64(r.Score)
		})
		hist := histogram.Hist(10, scores)
		if err := histogram.Fprint(os.Stdout, hist, histogram.Linear(40)); err != nil {
			log.Warn().Err(err).Msg("histogram-failed")
		}
	}
}

func writeReport(s *Summary, path string) error {
	out, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	log.Debug().Str("path", path).Msg("wrote-report")
	return nil
}
