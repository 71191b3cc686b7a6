// Package biography looks up free-text artist biographies on Last.fm.
package biography

import (
	"context"
	"fmt"
	"net/http"
	"regexp"

	"github.com/jfmyers9/profiles/pkg/lastfm"
	"github.com/rs/zerolog"
)

// anchorPattern matches an anchor element together with its inner text.
var anchorPattern = regexp.MustCompile(`(?i)<a\b[^>]*>(.*?)</a>`)

// Sanitize removes every anchor element, tags and inner text alike.
// Surrounding whitespace is left untouched.
func Sanitize(text string) string {
	return anchorPattern.ReplaceAllString(text, "")
}

// Client wraps the Last.fm API client
type Client struct {
	client *lastfm.Client
	logger zerolog.Logger
}

// New creates a biography client. An empty API key yields a client whose
// lookups always come back absent.
func New(apiKey, baseURL string, httpClient *http.Client, logger zerolog.Logger) *Client {
	logger = logger.With().Str("component", "biography").Logger()

	c := &Client{logger: logger}
	if apiKey == "" {
		logger.Warn().Msg("No Last.fm API key configured, biographies disabled")
		return c
	}

	client, err := lastfm.NewClient(lastfm.Config{
		APIKey:     apiKey,
		BaseURL:    baseURL,
		HTTPClient: httpClient,
		Logger:     debugLogger{logger},
	})
	if err != nil {
		// This should never happen since we checked the key
		panic(fmt.Sprintf("failed to create lastfm client: %v", err))
	}
	c.client = client
	return c
}

// Lookup fetches the biography summary for name, exactly as given, and
// strips anchor markup. It returns false on any failure, including an
// empty summary.
func (c *Client) Lookup(ctx context.Context, name string) (string, bool) {
	if c.client == nil || name == "" {
		return "", false
	}

	info, err := c.client.Artist().GetInfo(ctx, name, nil)
	if err != nil {
		c.logger.Debug().Err(err).Str("artist", name).Msg("Biography lookup failed")
		return "", false
	}

	if info.Bio.Summary == "" {
		c.logger.Debug().Str("artist", name).Msg("Biography summary missing")
		return "", false
	}

	return Sanitize(info.Bio.Summary), true
}

// debugLogger adapts zerolog to lastfm.Logger.
type debugLogger struct {
	logger zerolog.Logger
}

func (l debugLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug().Msgf(format, args...)
}
