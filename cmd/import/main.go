package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/leematt95/football-stats-app/internal/app"
	"github.com/leematt95/football-stats-app/internal/config"
	"github.com/leematt95/football-stats-app/internal/platform/logging"
	"github.com/leematt95/football-stats-app/internal/usecase"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}

	league := flag.String("league", cfg.League, "league identifier, e.g. epl")
	season := flag.String("season", cfg.Season, "season start year, e.g. 2024")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall run deadline")
	flag.Parse()

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	svcs, err := app.BuildServices(cfg, logger)
	if err != nil {
		logger.Error("build services", "error", err)
		return 1
	}
	defer func() {
		if err := svcs.Close(); err != nil {
			logger.Error("close services", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	summary, err := svcs.Import.Run(ctx, *league, *season)
	if err != nil {
		logger.ErrorContext(ctx, "import run failed",
			"league", *league,
			"season", *season,
			"error", err,
		)
		return exitCode(err)
	}

	logger.InfoContext(ctx, "import run finished",
		"league", summary.League,
		"season", summary.Season,
		"fetched", summary.Fetched,
		"inserted", summary.Inserted,
		"updated", summary.Updated,
		"skipped", summary.Skipped,
		"duration", summary.Duration,
	)

	fmt.Printf("imported %s/%s: fetched=%d inserted=%d updated=%d skipped=%d in %s\n",
		summary.League, summary.Season,
		summary.Fetched, summary.Inserted, summary.Updated, summary.Skipped,
		summary.Duration.Round(time.Millisecond),
	)
	if summary.Skipped > 0 {
		fmt.Printf("skip reasons:\n  %s\n", strings.Join(summary.SkipReasons, "\n  "))
	}

	return 0
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return 2
	case errors.Is(err, usecase.ErrFetchFailed), errors.Is(err, usecase.ErrDependencyUnavailable):
		return 3
	case errors.Is(err, usecase.ErrStorage):
		return 4
	default:
		return 1
	}
}
