package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/jfmyers9/profiles/internal/config"
	"github.com/jfmyers9/profiles/internal/history"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent artist searches",
	Long: `Show recent searches and their outcome, newest first.

Outcomes: found, not_found, aggregation (catalog error), auth (missing or
rejected credentials).

Use --cleanup to delete searches older than the given age, e.g. 720h.`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntP("limit", "n", 20, "Number of searches to show (0 = all)")
	historyCmd.Flags().Duration("cleanup", 0, "Delete searches older than this age")
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if !cfg.History.Enabled {
		return fmt.Errorf("search history is disabled (history.enabled = false)")
	}

	store, err := openHistory(cfg.History.Path)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if maxAge, _ := cmd.Flags().GetDuration("cleanup"); maxAge > 0 {
		deleted, err := store.Cleanup(ctx, maxAge)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted %d searches older than %s\n", deleted, maxAge)
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := store.Recent(ctx, limit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No searches recorded yet")
		return nil
	}

	for _, e := range entries {
		fmt.Fprintln(out, formatEntry(e))
	}
	return nil
}

// formatEntry renders one history line with fixed-width columns
func formatEntry(e history.Entry) string {
	name := e.ArtistName
	if name == "" {
		name = "-"
	}
	return fmt.Sprintf("%s  %s  %s  %s",
		e.SearchedAt.Local().Format("2006-01-02 15:04"),
		runewidth.FillRight(runewidth.Truncate(e.Query, 24, "..."), 24),
		runewidth.FillRight(e.Outcome, 11),
		name,
	)
}
