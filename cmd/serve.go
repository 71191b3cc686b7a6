package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/jfmyers9/profiles/internal/server"
	"github.com/spf13/cobra"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve artist profiles as JSON over HTTP",
	Long: `Run an HTTP server that answers artist searches with JSON.

Endpoints:
  GET /health                  liveness check
  GET /api/v1/artists?q=NAME   aggregated profile for the first match
  GET /api/v1/history?limit=N  recent searches (when history is enabled)

Responses are never cached; every request searches the catalog again.
The server stops gracefully on SIGINT/SIGTERM.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := newServices(ctx, servicesOptions{defaultLevel: "info", console: true})
	if err != nil {
		return err
	}
	defer svc.Close()

	addr := svc.cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	gin.SetMode(gin.ReleaseMode)

	// A nil *history.Store must not become a non-nil interface
	var hist server.History
	if svc.history != nil {
		hist = svc.history
	}

	srv := server.New(svc.aggregator, hist, svc.logger)
	if err := srv.ListenAndServe(ctx, addr); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	svc.logger.Info().Msg("Server stopped")
	return nil
}
