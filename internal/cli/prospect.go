package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"roteiro/internal/crm"
	"roteiro/internal/insight"
	"roteiro/internal/llm"
)

func (a *App) prospectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prospect",
		Short: "Manage prospects",
	}
	cmd.AddCommand(a.prospectAddCmd())
	cmd.AddCommand(a.prospectInsightCmd())
	return cmd
}

func (a *App) prospectAddCmd() *cobra.Command {
	var (
		address string
		segment string
		city    string
	)

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Register a prospect",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			p := &crm.Prospect{
				Name:    args[0],
				Address: address,
				Segment: segment,
				City:    city,
			}
			if err := a.store.CreateProspect(context.Background(), p); err != nil {
				return fmt.Errorf("creating prospect: %w", err)
			}

			fmt.Printf("Created prospect %s: %s\n", p.ID, p.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "Street address")
	cmd.Flags().StringVar(&segment, "segment", "", "Market segment (grocery, pharmacy, ...)")
	cmd.Flags().StringVar(&city, "city", "", "City")

	return cmd
}

func (a *App) prospectInsightCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "insight [prospect-id]",
		Short: "Generate and store AI notes for a prospect",
		Long: `Generate advisory notes for a prospect using the configured LLM
provider and store them. The next daily report including a visit to
this prospect will carry the notes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			client, err := llm.NewClient(a.config.LLM.Provider, a.config.LLM.Model, a.config.LLM.BaseURL)
			if err != nil {
				return fmt.Errorf("configuring LLM client: %w", err)
			}

			ctx := context.Background()
			p, err := a.store.GetProspect(ctx, args[0])
			if err != nil {
				return err
			}

			in, err := insight.NewGenerator(client).Generate(ctx, p)
			if err != nil {
				return err
			}

			if err := a.store.UpsertInsight(ctx, in); err != nil {
				return fmt.Errorf("storing insight: %w", err)
			}

			fmt.Printf("Insight for %s:\n  %s\n", p.Name, in.Summary)
			for _, prod := range in.RecommendedProducts {
				fmt.Printf("  * %s\n", prod)
			}
			for _, tip := range in.ApproachTips {
				fmt.Printf("  - %s\n", tip)
			}
			return nil
		},
	}
}
