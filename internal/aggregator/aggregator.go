// Package aggregator resolves a free-text query to one artist and merges
// the artist detail, top tracks, albums with their track listings, and the
// biography into a single view model.
package aggregator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jfmyers9/profiles/internal/artist"
	"github.com/jfmyers9/profiles/internal/catalog"
	"github.com/jfmyers9/profiles/internal/session"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrNotFound is returned by Search when no artist matched. Every search
// failure collapses to it.
var ErrNotFound = errors.New("artist not found")

// Catalog is the subset of the catalog API the aggregator needs.
type Catalog interface {
	SearchArtists(ctx context.Context, query string) ([]artist.Artist, error)
	Artist(ctx context.Context, id string) (*artist.Artist, error)
	TopTracks(ctx context.Context, id string) ([]artist.Track, error)
	Albums(ctx context.Context, id string) ([]artist.Album, error)
	AlbumTracks(ctx context.Context, albumID string) ([]artist.Track, error)
}

// Biographer looks up an artist biography. ok is false on any failure.
type Biographer interface {
	Lookup(ctx context.Context, name string) (bio string, ok bool)
}

// Recorder receives the outcome of every Run.
type Recorder interface {
	Record(ctx context.Context, query string, result artist.Result) error
}

// Config holds aggregation limits
type Config struct {
	TopTracksLimit int // top tracks kept, in provider order
	AlbumsLimit    int // albums kept, in provider order
	AlbumWorkers   int // concurrent album track fetches; 1 keeps them sequential
}

// DefaultConfig returns the fixed slices used by the catalog view.
func DefaultConfig() Config {
	return Config{
		TopTracksLimit: 5,
		AlbumsLimit:    4,
		AlbumWorkers:   1,
	}
}

// Aggregator runs searches against the catalog and biography services.
type Aggregator struct {
	config   Config
	catalog  Catalog
	bios     Biographer
	recorder Recorder
	logger   zerolog.Logger
}

// New creates a new Aggregator. Zero config values fall back to
// DefaultConfig.
func New(cfg Config, catalog Catalog, bios Biographer, logger zerolog.Logger) *Aggregator {
	def := DefaultConfig()
	if cfg.TopTracksLimit <= 0 {
		cfg.TopTracksLimit = def.TopTracksLimit
	}
	if cfg.AlbumsLimit <= 0 {
		cfg.AlbumsLimit = def.AlbumsLimit
	}
	if cfg.AlbumWorkers <= 0 {
		cfg.AlbumWorkers = def.AlbumWorkers
	}

	return &Aggregator{
		config:  cfg,
		catalog: catalog,
		bios:    bios,
		logger:  logger.With().Str("component", "aggregator").Logger(),
	}
}

// SetRecorder sets the recorder notified after each Run.
func (a *Aggregator) SetRecorder(r Recorder) {
	a.recorder = r
}

// Search returns the first artist the catalog ranks for query. The rest of
// the list is discarded. An empty list, transport error, non-2xx response or
// malformed payload all yield ErrNotFound; the cause stays in the chain for
// classification but callers should treat every case alike.
func (a *Aggregator) Search(ctx context.Context, query string) (*artist.Artist, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrNotFound
	}

	artists, err := a.catalog.SearchArtists(ctx, query)
	if err != nil {
		a.logger.Debug().Err(err).Str("query", query).Msg("Search failed")
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	if len(artists) == 0 {
		a.logger.Debug().Str("query", query).Msg("Search returned no artists")
		return nil, ErrNotFound
	}

	found := artists[0]
	return &found, nil
}

// Aggregate fetches, in order, the artist detail, top tracks, albums and
// each album's tracks, then the biography for the original query. Any
// failure before the biography aborts with a KindAggregation failure; a
// missing biography only leaves the Bio field empty.
func (a *Aggregator) Aggregate(ctx context.Context, query string, found *artist.Artist) artist.Result {
	logger := a.logger.With().Str("query", query).Str("artist_id", found.ID).Logger()

	fail := func(step string, err error) artist.Result {
		logger.Error().Err(err).Str("step", step).Msg("Aggregation failed")
		return artist.Result{Err: classify(fmt.Errorf("%s: %w", step, err), artist.KindAggregation)}
	}

	detail, err := a.catalog.Artist(ctx, found.ID)
	if err != nil {
		return fail("artist detail", err)
	}

	topTracks, err := a.catalog.TopTracks(ctx, found.ID)
	if err != nil {
		return fail("top tracks", err)
	}
	topTracks = firstN(topTracks, a.config.TopTracksLimit)

	albums, err := a.catalog.Albums(ctx, found.ID)
	if err != nil {
		return fail("albums", err)
	}
	albums = firstN(albums, a.config.AlbumsLimit)

	if err := a.attachTracks(ctx, albums); err != nil {
		return fail("album tracks", err)
	}

	merged := *detail
	merged.Bio = ""
	if bio, ok := a.bios.Lookup(ctx, query); ok {
		merged.Bio = bio
	}

	logger.Info().
		Str("artist", merged.Name).
		Int("top_tracks", len(topTracks)).
		Int("albums", len(albums)).
		Bool("bio", merged.Bio != "").
		Msg("Aggregation complete")

	return artist.Result{
		View: artist.ViewModel{
			Query:     query,
			Artist:    &merged,
			TopTracks: topTracks,
			Albums:    albums,
		},
	}
}

// attachTracks fetches each album's track listing. Results land by index,
// so album order never depends on completion order.
func (a *Aggregator) attachTracks(ctx context.Context, albums []artist.Album) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.config.AlbumWorkers)

	for i := range albums {
		g.Go(func() error {
			tracks, err := a.catalog.AlbumTracks(ctx, albums[i].ID)
			if err != nil {
				return fmt.Errorf("album %s: %w", albums[i].ID, err)
			}
			albums[i].Tracks = tracks
			return nil
		})
	}

	return g.Wait()
}

// Run searches for query and, when an artist matched, aggregates it.
func (a *Aggregator) Run(ctx context.Context, query string) artist.Result {
	var result artist.Result

	found, err := a.Search(ctx, query)
	if err != nil {
		result = artist.Result{Err: classify(err, artist.KindNotFound)}
	} else {
		result = a.Aggregate(ctx, query, found)
	}

	if a.recorder != nil {
		if err := a.recorder.Record(ctx, query, result); err != nil {
			a.logger.Warn().Err(err).Msg("Failed to record search")
		}
	}

	return result
}

// classify wraps err in a Failure of the given kind, unless the chain shows
// the credential was missing or rejected.
func classify(err error, kind artist.Kind) *artist.Failure {
	if errors.Is(err, session.ErrNoCredential) || errors.Is(err, catalog.ErrUnauthorized) {
		kind = artist.KindAuth
	}
	return &artist.Failure{Kind: kind, Err: err}
}

// firstN returns a copy of the first n elements of s.
func firstN[T any](s []T, n int) []T {
	if len(s) > n {
		s = s[:n]
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
