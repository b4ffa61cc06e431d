package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/averykuo/fib2584/automatic"
	"github.com/averykuo/fib2584/config"
	"github.com/averykuo/fib2584/shell"
)

var configPath = flag.String("config", "", "path to an optional YAML config file")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	var logger zerolog.Logger
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
	log.Logger = logger

	ctx, cancel := context.WithCancel(context.Background())
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info().Msg("got quit signal...")
		cancel()
	}()

	if cfg.Shell {
		sc, err := shell.NewShellController(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("starting-shell")
		}
		if err := sc.Loop(ctx); err != nil {
			log.Fatal().Err(err).Msg("shell")
		}
		return
	}

	// Batch self-play. A weight load/save failure is fatal here: training
	// against a half-loaded value function would silently corrupt the run.
	if _, err := automatic.StartSelfPlayGames(ctx, cfg, cfg.Episodes, cfg.Threads); err != nil {
		log.Fatal().Err(err).Msg("selfplay")
	}
}
