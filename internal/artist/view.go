package artist

import (
	"errors"
	"fmt"
)

// Kind classifies a failed search.
type Kind int

const (
	KindAuth        Kind = iota + 1 // credential exchange failed or credential unset
	KindNotFound                    // search returned no match
	KindAggregation                 // a mandatory fetch failed
)

// String returns a human-readable representation of the Kind
func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindAggregation:
		return "aggregation"
	default:
		return "unknown"
	}
}

// Failure is the error half of a search result.
type Failure struct {
	Kind Kind
	Err  error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return f.Kind.String()
	}
	return fmt.Sprintf("%s: %v", f.Kind, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// FailureKind returns the Kind of the first *Failure in err's chain, or 0.
func FailureKind(err error) Kind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return 0
}

// ViewModel is everything the presentation layer renders from. It is
// replaced as a whole, never patched.
type ViewModel struct {
	Query      string   `json:"query"`
	Generation uint64   `json:"generation"`
	Loading    bool     `json:"loading"`
	Artist     *Artist  `json:"artist,omitempty"`
	TopTracks  []Track  `json:"top_tracks"`
	Albums     []Album  `json:"albums"`
	Err        *Failure `json:"-"`
}

// Album returns the album with the given ID.
func (vm ViewModel) Album(id string) (Album, bool) {
	for _, a := range vm.Albums {
		if a.ID == id {
			return a, true
		}
	}
	return Album{}, false
}

// Result is the outcome of one search: either a populated view or a
// failure, never both.
type Result struct {
	View ViewModel
	Err  *Failure
}

// OK reports whether the result carries a view.
func (r Result) OK() bool {
	return r.Err == nil
}
