// Package cli wires the cobra command tree for roteiro.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"roteiro/internal/config"
	"roteiro/internal/crm"
	"roteiro/internal/report"
	"roteiro/internal/store"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config *config.Config
	store  *store.SQLite
	agg    *report.Aggregator
	root   *cobra.Command
	rep    string // --rep flag, overrides config
}

// NewApp creates a new CLI application over an already-open store.
func NewApp(st *store.SQLite, agg *report.Aggregator, cfg *config.Config) *App {
	a := &App{config: cfg, store: st, agg: agg}

	a.root = &cobra.Command{
		Use:   "roteiro",
		Short: "Daily reports and visit routes for field sales reps",
		Long: `Roteiro is the CRM core for a distribution company's field team.

It merges a rep's visits, tasks and calendar entries into one daily
timeline, joins in AI prospect insights, and orders the day's visits
into a travel route.`,
		SilenceUsage: true,
	}

	a.root.PersistentFlags().StringVar(&a.rep, "rep", "", "Rep id to act as (default: config rep.id)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.reportCmd())
	a.root.AddCommand(a.routeCmd())
	a.root.AddCommand(a.visitCmd())
	a.root.AddCommand(a.taskCmd())
	a.root.AddCommand(a.agendaCmd())
	a.root.AddCommand(a.prospectCmd())
	a.root.AddCommand(a.serveCmd())
	a.root.AddCommand(a.seedCmd())

	return a
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// repID resolves the acting rep from the --rep flag or config.
func (a *App) repID() (string, error) {
	if a.rep != "" {
		return a.rep, nil
	}
	if id := strings.TrimSpace(a.config.Rep.ID); id != "" {
		return id, nil
	}
	return "", fmt.Errorf("%w: set rep.id in config or pass --rep", crm.ErrNotAuthenticated)
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("roteiro %s (commit: %s)\n", Version, Commit)
		},
	}
}

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("rep:          %s\n", a.config.Rep.ID)
			fmt.Printf("db:           %s\n", a.config.Storage.DBPath)
			fmt.Printf("server addr:  %s\n", a.config.Server.Addr)
			fmt.Printf("prewarm cron: %s\n", a.config.Server.PrewarmCron)
			fmt.Printf("llm provider: %s (%s)\n", a.config.LLM.Provider, a.config.LLM.Model)
			fmt.Printf("cache ttl:    %ds\n", a.config.Report.CacheTTLSeconds)
		},
	}
}
