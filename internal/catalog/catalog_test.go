package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const queenJSON = `{
  "external_urls": {"spotify": "https://open.spotify.com/artist/queen-id"},
  "followers": {"href": null, "total": 250000},
  "genres": ["classic rock", "glam rock", "rock"],
  "href": "https://api.spotify.com/v1/artists/queen-id",
  "id": "queen-id",
  "images": [
    {"height": 640, "url": "https://i.scdn.co/image/big", "width": 640},
    {"height": 160, "url": "https://i.scdn.co/image/small", "width": 160}
  ],
  "name": "Queen",
  "popularity": 82,
  "type": "artist",
  "uri": "spotify:artist:queen-id"
}`

func trackJSON(id, name string) string {
	return fmt.Sprintf(`{"id": %q, "name": %q, "preview_url": "https://p.scdn.co/%s", "external_urls": {"spotify": "https://open.spotify.com/track/%s"}}`, id, name, id, id)
}

// newFakeAPI serves a minimal subset of the catalog API rooted at /v1/.
func newFakeAPI(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "artist", r.URL.Query().Get("type"))
		switch r.URL.Query().Get("q") {
		case "queen":
			fmt.Fprintf(w, `{"artists": {"href": "x", "items": [%s, {"id": "other", "name": "Queen Adreena", "followers": {"total": 10}}], "limit": 20, "offset": 0, "total": 2}}`, queenJSON)
		default:
			fmt.Fprint(w, `{"artists": {"href": "x", "items": [], "limit": 20, "offset": 0, "total": 0}}`)
		}
	})
	mux.HandleFunc("GET /v1/artists/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "queen-id" {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"error": {"status": 404, "message": "Resource not found"}}`)
			return
		}
		fmt.Fprint(w, queenJSON)
	})
	mux.HandleFunc("GET /v1/artists/{id}/top-tracks", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "AR", r.URL.Query().Get("country"))
		fmt.Fprintf(w, `{"tracks": [%s, %s]}`, trackJSON("t1", "Bohemian Rhapsody"), trackJSON("t2", "Don't Stop Me Now"))
	})
	mux.HandleFunc("GET /v1/artists/{id}/albums", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"href": "x", "items": [
			{"id": "a1", "name": "A Night at the Opera", "images": [{"url": "https://i.scdn.co/image/a1", "height": 300, "width": 300}]},
			{"id": "a2", "name": "News of the World", "images": []}
		], "limit": 20, "offset": 0, "total": 2}`)
	})
	mux.HandleFunc("GET /v1/albums/{id}/tracks", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		fmt.Fprintf(w, `{"href": "x", "items": [%s, %s], "limit": 50, "offset": 0, "total": 2}`,
			trackJSON(id+"-1", "First"), trackJSON(id+"-2", "Second"))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestClient(t *testing.T) *Client {
	t.Helper()
	server := newFakeAPI(t)
	return New(server.Client(), server.URL+"/v1", "AR")
}

func TestSearchArtists(t *testing.T) {
	client := newTestClient(t)

	artists, err := client.SearchArtists(context.Background(), "queen")
	require.NoError(t, err)
	require.Len(t, artists, 2)

	// Provider order is kept
	assert.Equal(t, "queen-id", artists[0].ID)
	assert.Equal(t, "Queen", artists[0].Name)
	assert.Equal(t, "other", artists[1].ID)
}

func TestSearchArtistsEmpty(t *testing.T) {
	client := newTestClient(t)

	artists, err := client.SearchArtists(context.Background(), "zzzznotanartist")
	require.NoError(t, err)
	assert.Empty(t, artists)
}

func TestArtist(t *testing.T) {
	client := newTestClient(t)

	a, err := client.Artist(context.Background(), "queen-id")
	require.NoError(t, err)

	assert.Equal(t, "Queen", a.Name)
	assert.Equal(t, 250000, a.Followers)
	assert.Equal(t, []string{"classic rock", "glam rock", "rock"}, a.Genres)
	assert.Equal(t, "artist", a.Type)
	assert.Equal(t, 82, a.Popularity)
	assert.Equal(t, "https://open.spotify.com/artist/queen-id", a.URL)
	require.Len(t, a.Images, 2)
	assert.Equal(t, "https://i.scdn.co/image/big", a.Images[0].URL)
	assert.Equal(t, 640, a.Images[0].Width)
	assert.Empty(t, a.Bio)
}

func TestArtistNotFound(t *testing.T) {
	client := newTestClient(t)

	_, err := client.Artist(context.Background(), "missing")
	assert.Error(t, err)
}

func TestTopTracks(t *testing.T) {
	client := newTestClient(t)

	tracks, err := client.TopTracks(context.Background(), "queen-id")
	require.NoError(t, err)
	require.Len(t, tracks, 2)

	assert.Equal(t, "t1", tracks[0].ID)
	assert.Equal(t, "Bohemian Rhapsody", tracks[0].Name)
	assert.Equal(t, "https://p.scdn.co/t1", tracks[0].PreviewURL)
	assert.Equal(t, "https://open.spotify.com/track/t1", tracks[0].URL)
}

func TestAlbumsAndTracks(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	albums, err := client.Albums(ctx, "queen-id")
	require.NoError(t, err)
	require.Len(t, albums, 2)

	assert.Equal(t, "a1", albums[0].ID)
	assert.Equal(t, "A Night at the Opera", albums[0].Name)
	require.Len(t, albums[0].Images, 1)
	assert.Empty(t, albums[0].Tracks, "albums are returned without tracks")
	assert.Empty(t, albums[1].Images)

	tracks, err := client.AlbumTracks(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, tracks, 2)
	assert.Equal(t, "a1-1", tracks[0].ID)
	assert.Equal(t, "a1-2", tracks[1].ID)
}

func TestServerErrorIsReturned(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error": {"status": 500, "message": "Server error"}}`)
	}))
	defer server.Close()

	client := New(server.Client(), server.URL+"/v1/", "AR")

	_, err := client.SearchArtists(context.Background(), "queen")
	assert.Error(t, err)

	_, err = client.TopTracks(context.Background(), "queen-id")
	assert.Error(t, err)
}

func TestMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"artists": `)
	}))
	defer server.Close()

	client := New(server.Client(), server.URL+"/v1/", "AR")

	_, err := client.SearchArtists(context.Background(), "queen")
	assert.Error(t, err)
}

func TestUnauthorizedIsTagged(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error": {"status": 401, "message": "No token provided"}}`)
	}))
	defer server.Close()

	client := New(server.Client(), server.URL+"/v1/", "AR")

	_, err := client.Artist(context.Background(), "queen-id")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
