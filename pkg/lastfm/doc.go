// Package lastfm provides a client library for the read side of the
// Last.fm API 2.0.
//
// # Overview
//
// This package implements a small Go client for the Last.fm API, focused
// on artist metadata lookups. Read methods only need an API key; no
// request signing or session is involved. Responses are requested in
// JSON format.
//
// # Quick Start
//
// Create a client with your API key:
//
//	import "github.com/jfmyers9/profiles/pkg/lastfm"
//
//	client, err := lastfm.NewClient(lastfm.Config{
//	    APIKey: "your-api-key",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Artist Info
//
//	info, err := client.Artist().GetInfo(ctx, "Queen", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(info.Name, info.Bio.Summary)
//
// The biography summary contains HTML anchors linking back to Last.fm;
// callers that display plain text are expected to strip them.
//
// # Error Handling
//
// API failures are returned as *Error carrying the Last.fm error code:
//
//	info, err := client.Artist().GetInfo(ctx, name, nil)
//	if err != nil {
//	    var lastfmErr *lastfm.Error
//	    if errors.As(err, &lastfmErr) && lastfmErr.NotFound() {
//	        // Unknown artist
//	    }
//	}
//
// The client does not retry failed calls.
//
// # Configuration
//
// The client can be configured with custom HTTP clients, base URLs (for
// testing), and optional loggers:
//
//	client, err := lastfm.NewClient(lastfm.Config{
//	    APIKey:     "your-api-key",
//	    HTTPClient: &http.Client{Timeout: 10 * time.Second},
//	    Logger:     myLogger, // Implements lastfm.Logger interface
//	})
//
// # API Coverage
//
// Currently implemented:
//   - artist.getInfo
//
// # Last.fm API Documentation
//
// https://www.last.fm/api/show/artist.getInfo
package lastfm
