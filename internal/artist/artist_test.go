package artist

import (
	"errors"
	"fmt"
	"testing"
)

func TestArtistVerified(t *testing.T) {
	tests := []struct {
		name      string
		followers int
		want      bool
	}{
		{"well above threshold", 250000, true},
		{"just above threshold", 100001, true},
		{"at threshold", 100000, false},
		{"below threshold", 99999, false},
		{"no followers", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Artist{Followers: tt.followers}
			if got := a.Verified(); got != tt.want {
				t.Errorf("Verified() with %d followers = %v, want %v", tt.followers, got, tt.want)
			}
		})
	}
}

func TestArtistPrimaryImage(t *testing.T) {
	a := Artist{Images: []Image{{URL: "big"}, {URL: "small"}}}
	img, ok := a.PrimaryImage()
	if !ok || img.URL != "big" {
		t.Errorf("PrimaryImage() = %+v, %v; want big, true", img, ok)
	}

	if _, ok := (Artist{}).PrimaryImage(); ok {
		t.Error("expected no primary image for artist without images")
	}
}

func TestViewModelAlbum(t *testing.T) {
	vm := ViewModel{Albums: []Album{{ID: "a1", Name: "One"}, {ID: "a2", Name: "Two"}}}

	album, ok := vm.Album("a2")
	if !ok || album.Name != "Two" {
		t.Errorf("Album(a2) = %+v, %v", album, ok)
	}
	if _, ok := vm.Album("missing"); ok {
		t.Error("expected missing album lookup to fail")
	}
}

func TestFailure(t *testing.T) {
	cause := errors.New("boom")
	f := &Failure{Kind: KindAggregation, Err: cause}

	if !errors.Is(f, cause) {
		t.Error("expected failure to unwrap to its cause")
	}
	if got := f.Error(); got != "aggregation: boom" {
		t.Errorf("Error() = %q", got)
	}

	wrapped := fmt.Errorf("search: %w", f)
	if kind := FailureKind(wrapped); kind != KindAggregation {
		t.Errorf("FailureKind() = %v, want %v", kind, KindAggregation)
	}
	if kind := FailureKind(cause); kind != 0 {
		t.Errorf("FailureKind() of plain error = %v, want 0", kind)
	}
	if (&Failure{Kind: KindNotFound}).Error() != "not_found" {
		t.Error("expected bare kind string when cause is nil")
	}
}

func TestResultOK(t *testing.T) {
	if !(Result{}).OK() {
		t.Error("expected zero result to be OK")
	}
	if (Result{Err: &Failure{Kind: KindAuth}}).OK() {
		t.Error("expected failed result not to be OK")
	}
}
