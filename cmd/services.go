package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/jfmyers9/profiles/internal/aggregator"
	"github.com/jfmyers9/profiles/internal/biography"
	"github.com/jfmyers9/profiles/internal/catalog"
	"github.com/jfmyers9/profiles/internal/config"
	"github.com/jfmyers9/profiles/internal/history"
	"github.com/jfmyers9/profiles/internal/session"
	"github.com/jfmyers9/profiles/internal/viewmodel"
	"github.com/rs/zerolog"
)

// servicesOptions control how a command builds its services
type servicesOptions struct {
	defaultLevel string // log level when neither flag nor config set one
	console      bool   // log to stderr when no log file is given
}

// services is everything a search command needs, wired from configuration
type services struct {
	cfg        *config.Config
	logger     zerolog.Logger
	session    *session.Session
	aggregator *aggregator.Aggregator
	store      *viewmodel.Store
	history    *history.Store // nil when history is disabled or unavailable

	closers []func()
}

// newServices loads configuration, obtains the catalog credential and wires
// the catalog, biography, aggregator, history and view model store.
func newServices(ctx context.Context, opts servicesOptions) (*services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if market != "" {
		cfg.Market = market
	}
	if noDelay {
		cfg.SettleDelay = 0
	}

	logger, closeLog := setupLogger(logFile, resolveLevel(logLevel, cfg.LogLevel, opts.defaultLevel), opts.console)
	svc := &services{
		cfg:     cfg,
		logger:  logger,
		closers: []func(){closeLog},
	}

	if missing := cfg.Credentials.Missing(); len(missing) > 0 {
		logger.Warn().Strs("missing", missing).Msg("Credentials not set")
	}

	// A failed exchange leaves the session without a credential; every
	// search then reports an authorization failure.
	svc.session = session.New(cfg.RequestTimeout, logger)
	_ = svc.session.Authenticate(ctx, session.Credentials{
		ClientID:     cfg.Credentials.ClientID,
		ClientSecret: cfg.Credentials.ClientSecret,
		TokenURL:     cfg.Catalog.TokenURL,
	})

	catalogClient := catalog.New(svc.session.HTTPClient(), cfg.Catalog.BaseURL, cfg.Market)
	bios := biography.New(
		cfg.Credentials.LastFMAPIKey,
		cfg.LastFM.BaseURL,
		&http.Client{Timeout: cfg.RequestTimeout},
		logger,
	)

	svc.aggregator = aggregator.New(aggregator.Config{
		TopTracksLimit: cfg.TopTracksLimit,
		AlbumsLimit:    cfg.AlbumsLimit,
		AlbumWorkers:   cfg.AlbumWorkers,
	}, catalogClient, bios, logger)

	if cfg.History.Enabled {
		store, err := openHistory(cfg.History.Path)
		if err != nil {
			logger.Warn().Err(err).Str("path", cfg.History.Path).Msg("Search history unavailable")
		} else {
			svc.history = store
			svc.aggregator.SetRecorder(store)
			svc.closers = append(svc.closers, func() { _ = store.Close() })
		}
	}

	svc.store = viewmodel.New(cfg.SettleDelay)

	logger.Debug().
		Str("market", cfg.Market).
		Dur("settle_delay", cfg.SettleDelay).
		Int("album_workers", cfg.AlbumWorkers).
		Bool("history", svc.history != nil).
		Msg("Services ready")

	return svc, nil
}

// Close releases the history database and log file
func (s *services) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// openHistory opens the history database, creating its directory
func openHistory(path string) (*history.Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	return history.Open(path)
}
