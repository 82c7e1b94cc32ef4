package main

import (
	"fmt"
	"os"
	"time"

	"roteiro/internal/cli"
	"roteiro/internal/config"
	"roteiro/internal/report"
	"roteiro/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.EnsureStorageDir(); err != nil {
		return fmt.Errorf("creating storage dir: %w", err)
	}

	st, err := store.New(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer func() { _ = st.Close() }()

	agg := report.NewAggregator(st, st, st, st,
		report.WithCacheTTL(time.Duration(cfg.Report.CacheTTLSeconds)*time.Second))

	return cli.NewApp(st, agg, cfg).Execute()
}
