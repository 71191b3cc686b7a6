// Package catalog wraps the Spotify Web API client and maps its wire
// objects onto the artist view model.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jfmyers9/profiles/internal/artist"
	"github.com/zmb3/spotify/v2"
)

// ErrUnauthorized is wrapped into errors for responses rejected with 401,
// which is what an unset or expired credential produces.
var ErrUnauthorized = errors.New("catalog: unauthorized")

// Client wraps the Spotify API client
type Client struct {
	client *spotify.Client
	market string
}

// New creates a catalog client. httpClient must attach the bearer
// credential; baseURL is the API root including the version segment,
// e.g. "https://api.spotify.com/v1/".
func New(httpClient *http.Client, baseURL, market string) *Client {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{
		client: spotify.New(httpClient, spotify.WithBaseURL(baseURL)),
		market: market,
	}
}

// SearchArtists returns the artists matching query in provider ranking order.
func (c *Client) SearchArtists(ctx context.Context, query string) ([]artist.Artist, error) {
	result, err := c.client.Search(ctx, query, spotify.SearchTypeArtist)
	if err != nil {
		return nil, fmt.Errorf("failed to search artists: %w", wrap(err))
	}
	if result.Artists == nil {
		return nil, nil
	}

	artists := make([]artist.Artist, 0, len(result.Artists.Artists))
	for _, a := range result.Artists.Artists {
		artists = append(artists, toArtist(a))
	}
	return artists, nil
}

// Artist fetches the full artist object by ID.
func (c *Client) Artist(ctx context.Context, id string) (*artist.Artist, error) {
	full, err := c.client.GetArtist(ctx, spotify.ID(id))
	if err != nil {
		return nil, fmt.Errorf("failed to get artist %s: %w", id, wrap(err))
	}
	a := toArtist(*full)
	return &a, nil
}

// TopTracks fetches the artist's top tracks in the configured market.
func (c *Client) TopTracks(ctx context.Context, id string) ([]artist.Track, error) {
	tracks, err := c.client.GetArtistsTopTracks(ctx, spotify.ID(id), c.market)
	if err != nil {
		return nil, fmt.Errorf("failed to get top tracks for %s: %w", id, wrap(err))
	}

	out := make([]artist.Track, 0, len(tracks))
	for _, t := range tracks {
		out = append(out, toTrack(t.SimpleTrack))
	}
	return out, nil
}

// Albums fetches the first page of the artist's albums, without tracks.
func (c *Client) Albums(ctx context.Context, id string) ([]artist.Album, error) {
	page, err := c.client.GetArtistAlbums(ctx, spotify.ID(id), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get albums for %s: %w", id, wrap(err))
	}

	out := make([]artist.Album, 0, len(page.Albums))
	for _, a := range page.Albums {
		out = append(out, artist.Album{
			ID:     string(a.ID),
			Name:   a.Name,
			Images: toImages(a.Images),
		})
	}
	return out, nil
}

// AlbumTracks fetches the first page of an album's track listing.
func (c *Client) AlbumTracks(ctx context.Context, albumID string) ([]artist.Track, error) {
	page, err := c.client.GetAlbumTracks(ctx, spotify.ID(albumID))
	if err != nil {
		return nil, fmt.Errorf("failed to get tracks for album %s: %w", albumID, wrap(err))
	}

	out := make([]artist.Track, 0, len(page.Tracks))
	for _, t := range page.Tracks {
		out = append(out, toTrack(t))
	}
	return out, nil
}

// wrap tags 401 responses with ErrUnauthorized.
func wrap(err error) error {
	var apiErr spotify.Error
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	return err
}

func toArtist(a spotify.FullArtist) artist.Artist {
	return artist.Artist{
		ID:         string(a.ID),
		Name:       a.Name,
		Followers:  int(a.Followers.Count),
		Genres:     a.Genres,
		Type:       "artist",
		Images:     toImages(a.Images),
		Popularity: int(a.Popularity),
		URL:        a.ExternalURLs["spotify"],
	}
}

func toTrack(t spotify.SimpleTrack) artist.Track {
	return artist.Track{
		ID:         string(t.ID),
		Name:       t.Name,
		PreviewURL: t.PreviewURL,
		URL:        t.ExternalURLs["spotify"],
	}
}

func toImages(images []spotify.Image) []artist.Image {
	out := make([]artist.Image, 0, len(images))
	for _, img := range images {
		out = append(out, artist.Image{
			URL:    img.URL,
			Width:  int(img.Width),
			Height: int(img.Height),
		})
	}
	return out
}
