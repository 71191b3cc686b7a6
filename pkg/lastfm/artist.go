package lastfm

import (
	"context"
	"fmt"
)

// ArtistService provides artist read operations for the Last.fm API.
type ArtistService struct {
	client *Client
}

// GetInfoOptions holds optional artist.getInfo parameters.
type GetInfoOptions struct {
	Lang        string // ISO 639 alpha-2 code for the biography language
	Autocorrect bool   // Let Last.fm correct misspelled artist names
}

// GetInfo fetches metadata and the biography for an artist by name.
//
// The name is sent as given; no normalization is applied.
//
// Example:
//
//	info, err := client.Artist().GetInfo(ctx, "Queen", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(info.Bio.Summary)
func (s *ArtistService) GetInfo(ctx context.Context, name string, opts *GetInfoOptions) (*ArtistInfo, error) {
	if name == "" {
		return nil, fmt.Errorf("lastfm: artist name required")
	}

	params := map[string]string{
		"artist": name,
	}
	if opts != nil {
		if opts.Lang != "" {
			params["lang"] = opts.Lang
		}
		if opts.Autocorrect {
			params["autocorrect"] = "1"
		}
	}

	var resp artistInfoResponse
	if err := s.client.call(ctx, "artist.getinfo", params, &resp); err != nil {
		return nil, err
	}

	if resp.Artist == nil {
		return nil, fmt.Errorf("lastfm: response missing artist object")
	}

	return resp.Artist, nil
}
