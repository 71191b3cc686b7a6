// Package server exposes aggregated artist profiles over HTTP as JSON.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jfmyers9/profiles/internal/artist"
	"github.com/jfmyers9/profiles/internal/history"
	"github.com/rs/zerolog"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
	shutdownTimeout     = 5 * time.Second
)

// Runner runs one search end to end.
type Runner interface {
	Run(ctx context.Context, query string) artist.Result
}

// History lists recorded searches.
type History interface {
	Recent(ctx context.Context, limit int) ([]history.Entry, error)
}

// Server handles HTTP requests for artist profiles
type Server struct {
	router  *gin.Engine
	runner  Runner
	history History
	logger  zerolog.Logger
}

// New creates a new HTTP server. history may be nil, in which case the
// history endpoint reports 404.
func New(runner Runner, hist History, logger zerolog.Logger) *Server {
	s := &Server{
		router:  gin.New(),
		runner:  runner,
		history: hist,
		logger:  logger.With().Str("component", "server").Logger(),
	}

	s.router.Use(gin.Recovery(), s.requestLogger())
	s.setupRoutes()
	return s
}

// setupRoutes configures the HTTP routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthCheck)

	api := s.router.Group("/api/v1")
	{
		api.GET("/artists", s.searchArtist)
		api.GET("/history", s.listHistory)
	}
}

// Handler returns the router for use with httptest or a custom http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("Server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// requestLogger logs each request through zerolog
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("Request handled")
	}
}

// healthCheck handles health check requests
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// searchArtist runs a search for the q parameter and returns the view model
func (s *Server) searchArtist(c *gin.Context) {
	query := c.Query("q")
	if strings.TrimSpace(query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}

	result := s.runner.Run(c.Request.Context(), query)
	if result.OK() {
		c.JSON(http.StatusOK, result.View)
		return
	}

	status := http.StatusBadGateway
	if result.Err.Kind == artist.KindNotFound {
		status = http.StatusNotFound
	}

	c.JSON(status, gin.H{
		"error": errorMessage(result.Err.Kind),
		"kind":  result.Err.Kind.String(),
		"query": query,
	})
}

// listHistory returns recent searches, newest first
func (s *Server) listHistory(c *gin.Context) {
	if s.history == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "search history is disabled"})
		return
	}

	limit := defaultHistoryLimit
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= maxHistoryLimit {
			limit = parsed
		}
	}

	entries, err := s.history.Recent(c.Request.Context(), limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list history")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list history"})
		return
	}

	out := make([]gin.H, 0, len(entries))
	for _, e := range entries {
		out = append(out, gin.H{
			"query":       e.Query,
			"artist_id":   e.ArtistID,
			"artist_name": e.ArtistName,
			"outcome":     e.Outcome,
			"searched_at": e.SearchedAt.UTC(),
		})
	}

	c.JSON(http.StatusOK, gin.H{"searches": out})
}

func errorMessage(kind artist.Kind) string {
	switch kind {
	case artist.KindNotFound:
		return "artist not found"
	case artist.KindAuth:
		return "catalog authentication failed"
	default:
		return "failed to load artist"
	}
}
