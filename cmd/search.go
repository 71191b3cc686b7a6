/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jfmyers9/profiles/internal/artist"
	"github.com/jfmyers9/profiles/internal/render"
	"github.com/jfmyers9/profiles/internal/viewmodel"
	"github.com/spf13/cobra"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <artist>",
	Short: "Search for an artist and print their profile",
	Long: `Search the catalog for an artist and print the first match: verified
badge, genres, popularity, albums, top tracks and biography.

All arguments are joined into one query and sent as typed.

Exit codes:
  0 - Artist found, or no artist matched
  1 - Search failed (authorization or catalog error)`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().Bool("json", false, "Print the view model as JSON")
	searchCmd.Flags().StringP("album", "a", "", "Also print the track list of the album with this name")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := newServices(ctx, servicesOptions{defaultLevel: "warn", console: true})
	if err != nil {
		return err
	}
	defer svc.Close()

	query := strings.Join(args, " ")

	vm, err := searchOnce(ctx, svc.store, svc.aggregator, query)
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	albumName, _ := cmd.Flags().GetString("album")

	out := cmd.OutOrStdout()
	if asJSON {
		if err := writeJSON(out, vm); err != nil {
			return err
		}
	} else if err := writeProfile(out, vm, albumName); err != nil {
		return err
	}

	if vm.Err != nil {
		return fmt.Errorf("search for %q failed: %w", query, vm.Err)
	}
	return nil
}

// searcher runs one search end to end
type searcher interface {
	Run(ctx context.Context, query string) artist.Result
}

// searchOnce publishes one search through the store and returns the view
// that was shown.
func searchOnce(ctx context.Context, store *viewmodel.Store, s searcher, query string) (artist.ViewModel, error) {
	ticket := store.Begin(query)
	result := s.Run(ctx, query)

	if !store.Complete(ctx, ticket, result) {
		if err := ctx.Err(); err != nil {
			return artist.ViewModel{}, fmt.Errorf("search cancelled: %w", err)
		}
		return artist.ViewModel{}, fmt.Errorf("search for %q was superseded", query)
	}

	return store.Current(), nil
}

// writeProfile renders the profile, and the named album if requested
func writeProfile(w io.Writer, vm artist.ViewModel, albumName string) error {
	if err := render.Render(w, vm); err != nil {
		return fmt.Errorf("failed to render profile: %w", err)
	}

	if albumName == "" || render.StateOf(vm) != render.StatePopulated {
		return nil
	}

	for _, album := range vm.Albums {
		if strings.EqualFold(album.Name, albumName) {
			fmt.Fprintln(w)
			return render.RenderAlbum(w, album)
		}
	}

	return fmt.Errorf("album %q is not among the artist's first %d albums", albumName, len(vm.Albums))
}

func writeJSON(w io.Writer, vm artist.ViewModel) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(vm); err != nil {
		return fmt.Errorf("failed to encode view model: %w", err)
	}
	return nil
}
