// Package artist holds the view model shared by the aggregator and the
// presentation layers. Values are snapshots of catalog data and are never
// mutated after they are published.
package artist

// VerifiedFollowerThreshold is the follower count an artist must exceed
// to be shown as verified.
const VerifiedFollowerThreshold = 100000

// Image is an image reference. Catalog image lists are ordered largest
// first; the first entry is the preferred one.
type Image struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Artist is a catalog artist merged with its optional biography.
type Artist struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Followers  int      `json:"followers"`
	Genres     []string `json:"genres"`
	Type       string   `json:"type"`
	Images     []Image  `json:"images"`
	Popularity int      `json:"popularity"`
	URL        string   `json:"url,omitempty"`
	Bio        string   `json:"bio,omitempty"` // empty until the biography lookup succeeds
}

// Verified reports whether the artist crosses the verified badge threshold.
func (a Artist) Verified() bool {
	return a.Followers > VerifiedFollowerThreshold
}

// PrimaryImage returns the preferred image, or false if there is none.
func (a Artist) PrimaryImage() (Image, bool) {
	if len(a.Images) == 0 {
		return Image{}, false
	}
	return a.Images[0], true
}

// Track is a single track. PreviewURL may be empty.
type Track struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PreviewURL string `json:"preview_url,omitempty"`
	URL        string `json:"url"`
}

// Album is an album with its track listing attached in provider order.
type Album struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Images []Image `json:"images"`
	Tracks []Track `json:"tracks"`
}

// Cover returns the preferred album image, or false if there is none.
func (a Album) Cover() (Image, bool) {
	if len(a.Images) == 0 {
		return Image{}, false
	}
	return a.Images[0], true
}
