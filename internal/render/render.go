// Package render turns a view model into text for the terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jfmyers9/profiles/internal/artist"
	"github.com/mattn/go-runewidth"
)

// State is the presentation state derived from a view model
type State int

const (
	StateLoading State = iota
	StateEmpty
	StatePopulated
	StateError
)

// String returns a human-readable representation of the State
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateEmpty:
		return "empty"
	case StatePopulated:
		return "populated"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

const (
	// EmptyText is shown when no artist is loaded.
	EmptyText = "Search for your favorite artist or group"
	// VerifiedBadge is shown for artists above the follower threshold.
	VerifiedBadge = "✔ Verified Artist"
	// LoadingText is shown while a search is in flight.
	LoadingText = "Loading..."

	genreSeparator = " - "
	maxGenres      = 2
	nameColumn     = 40
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	badgeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	faintStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// StateOf derives the presentation state. Loading wins over everything,
// then an error, then the presence of an artist.
func StateOf(vm artist.ViewModel) State {
	switch {
	case vm.Loading:
		return StateLoading
	case vm.Err != nil:
		return StateError
	case vm.Artist == nil:
		return StateEmpty
	default:
		return StatePopulated
	}
}

// GenreSummary joins the first two genres with " - ".
func GenreSummary(genres []string) string {
	if len(genres) > maxGenres {
		genres = genres[:maxGenres]
	}
	return strings.Join(genres, genreSeparator)
}

// Render writes the sub-view for the view model's state to w.
func Render(w io.Writer, vm artist.ViewModel) error {
	var b strings.Builder

	switch StateOf(vm) {
	case StateLoading:
		b.WriteString(faintStyle.Render(LoadingText))
		b.WriteString("\n")
	case StateError:
		b.WriteString(errorStyle.Render(ErrorText(vm.Err)))
		b.WriteString("\n")
	case StateEmpty:
		b.WriteString(EmptyText)
		b.WriteString("\n")
	case StatePopulated:
		writeArtist(&b, vm)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// ErrorText is the message shown for a failed search.
func ErrorText(f *artist.Failure) string {
	if f == nil {
		return ""
	}
	switch f.Kind {
	case artist.KindAuth:
		return "Could not authenticate with the catalog. Check SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET."
	case artist.KindNotFound:
		return "No artist found."
	default:
		return "Something went wrong while loading the artist. Try searching again."
	}
}

func writeArtist(b *strings.Builder, vm artist.ViewModel) {
	a := vm.Artist

	if a.Verified() {
		b.WriteString(badgeStyle.Render(VerifiedBadge))
		b.WriteString("\n")
	}

	fmt.Fprintf(b, "%s %s\n",
		faintStyle.Render(strings.ToUpper(a.Type)),
		titleStyle.Render(strings.ToUpper(a.Name)))

	if img, ok := a.PrimaryImage(); ok {
		fmt.Fprintf(b, "%s\n", faintStyle.Render(img.URL))
	}

	fmt.Fprintf(b, "Popularity: %d  Followers: %d\n", a.Popularity, a.Followers)
	if genres := GenreSummary(a.Genres); genres != "" {
		fmt.Fprintf(b, "%s\n", genres)
	}

	if len(vm.Albums) > 0 {
		b.WriteString("\n")
		b.WriteString(headingStyle.Render("Albums"))
		b.WriteString("\n")
		for i, album := range vm.Albums {
			fmt.Fprintf(b, "%2d. %s %s\n", i+1,
				padToWidth(album.Name, nameColumn),
				faintStyle.Render(trackCount(len(album.Tracks))))
		}
	}

	if len(vm.TopTracks) > 0 {
		b.WriteString("\n")
		b.WriteString(headingStyle.Render("Top tracks"))
		b.WriteString("\n")
		for i, track := range vm.TopTracks {
			fmt.Fprintf(b, "%2d. %s %s\n", i+1,
				padToWidth(track.Name, nameColumn),
				faintStyle.Render(track.URL))
		}
	}

	if a.Bio != "" {
		b.WriteString("\n")
		b.WriteString(headingStyle.Render("Biography"))
		b.WriteString("\n")
		b.WriteString(a.Bio)
		b.WriteString("\n")
	}
}

// RenderAlbum writes the album drill-down panel: the upper-cased album name
// followed by its numbered track list.
func RenderAlbum(w io.Writer, album artist.Album) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render(strings.ToUpper(album.Name)))
	b.WriteString("\n")
	for i, track := range album.Tracks {
		fmt.Fprintf(&b, "%2d. %s\n", i+1, track.Name)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func trackCount(n int) string {
	if n == 1 {
		return "1 track"
	}
	return fmt.Sprintf("%d tracks", n)
}

// padToWidth pads or truncates text to a fixed display width.
// Width is measured in display columns, accounting for Unicode characters.
// Text longer than width is truncated with a "..." suffix.
func padToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}

	currentWidth := runewidth.StringWidth(text)

	if currentWidth > width {
		ellipsis := "..."
		ellipsisWidth := runewidth.StringWidth(ellipsis)

		if width <= ellipsisWidth {
			return runewidth.Truncate(ellipsis, width, "")
		}

		// Wide runes can leave the truncated text one column short
		result := runewidth.Truncate(text, width-ellipsisWidth, "") + ellipsis
		return runewidth.FillRight(result, width)
	}

	return runewidth.FillRight(text, width)
}
