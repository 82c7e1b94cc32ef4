package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"roteiro/internal/api"
	"roteiro/internal/dateutil"
	"roteiro/internal/insight"
	"roteiro/internal/llm"
)

func (a *App) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API over the daily report and the CRM stores.

If a prewarm cron is configured, today's report is assembled for every
known rep on that schedule. With a long cache TTL this serves the
morning's first requests from cache; either way it surfaces store
failures in the log before reps hit them.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if addr != "" {
				a.config.Server.Addr = addr
			}
			return a.serve()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: config server.addr)")

	return cmd
}

func (a *App) serve() error {
	logger, err := newLogger(a.config.Server.Debug)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	var generator *insight.Generator
	if a.config.LLM.Provider != "" {
		client, err := llm.NewClient(a.config.LLM.Provider, a.config.LLM.Model, a.config.LLM.BaseURL)
		if err != nil {
			logger.Warn("insight generation disabled", zap.Error(err))
		} else {
			generator = insight.NewGenerator(client)
		}
	}

	server := api.NewServer(a.store, a.store, a.store, a.store, a.store, a.agg, generator, logger)

	httpServer := &http.Server{
		Addr:         a.config.Server.Addr,
		Handler:      server.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	var c *cron.Cron
	if spec := a.config.Server.PrewarmCron; spec != "" {
		c = cron.New()
		if _, err := c.AddFunc(spec, func() { a.prewarm(logger) }); err != nil {
			return fmt.Errorf("invalid prewarm cron %q: %w", spec, err)
		}
		c.Start()
		defer c.Stop()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", a.config.Server.Addr))
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-stop:
		logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(ctx)
	}
}

// prewarm assembles today's report for every known rep so it is cached
// before the morning traffic.
func (a *App) prewarm(logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	today := dateutil.TruncateToDay(time.Now())
	owners, err := a.store.ListOwners(ctx)
	if err != nil {
		logger.Error("prewarm: listing owners", zap.Error(err))
		return
	}

	for _, rep := range owners {
		if _, err := a.agg.DailyReport(ctx, rep, today); err != nil {
			logger.Warn("prewarm: report failed", zap.String("rep", rep), zap.Error(err))
		}
	}
	logger.Info("prewarmed daily reports", zap.Int("reps", len(owners)))
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
