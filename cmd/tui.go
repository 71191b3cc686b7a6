package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jfmyers9/profiles/internal/tui"
	"github.com/spf13/cobra"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui [artist]",
	Short: "Browse artist profiles in a terminal UI",
	Long: `Open an interactive terminal UI for searching artists.

Type an artist name and press Enter to search. Tab moves focus to the
album list; Enter on an album opens its track list and Esc closes it.

Logs are discarded unless --log-file is given.

Press 'q' outside the search field, or Ctrl-C, to quit.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := newServices(ctx, servicesOptions{defaultLevel: "warn", console: false})
	if err != nil {
		return err
	}
	defer svc.Close()

	app := tui.New(svc.store, svc.aggregator, svc.logger)

	if len(args) > 0 {
		app.Search(strings.Join(args, " "))
	}

	if err := app.Run(ctx); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	app.Stop()
	app.Wait()
	return nil
}
