package lastfm

// Image is a sized image reference. Last.fm encodes the URL under "#text".
type Image struct {
	URL  string `json:"#text"`
	Size string `json:"size"`
}

// Tag is a user-applied genre tag.
type Tag struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Bio holds the biography excerpts for an artist. Summary and Content
// contain HTML anchor markup linking back to Last.fm.
type Bio struct {
	Published string `json:"published"`
	Summary   string `json:"summary"`
	Content   string `json:"content"`
}

// Stats holds listener statistics. Last.fm encodes the counts as strings.
type Stats struct {
	Listeners string `json:"listeners"`
	Playcount string `json:"playcount"`
}

// ArtistInfo represents the response from artist.getInfo.
type ArtistInfo struct {
	Name  string  `json:"name"`
	MBID  string  `json:"mbid"`
	URL   string  `json:"url"`
	Image []Image `json:"image"`
	Stats Stats   `json:"stats"`
	Tags  struct {
		Tag []Tag `json:"tag"`
	} `json:"tags"`
	Bio Bio `json:"bio"`
}

// artistInfoResponse is the envelope around artist.getInfo.
type artistInfoResponse struct {
	Artist *ArtistInfo `json:"artist"`
}
