/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// Global flags
var (
	logFile  string
	logLevel string
	market   string
	noDelay  bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Look up artist profiles from Spotify and Last.fm",
	Long: `profiles searches the Spotify catalog for an artist and shows their
profile: follower count, genres, top tracks, albums with track listings,
and a biography from Last.fm.

Credentials are read from the environment:
  SPOTIFY_CLIENT_ID, SPOTIFY_CLIENT_SECRET  catalog client credentials
  LASTFM_API_KEY                            biography lookups (optional)

Other settings live in ~/.config/profiles/config.yaml or PROFILES_*
environment variables.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file path (default: stderr, discarded for tui)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&market, "market", "", "Market used for top tracks (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&noDelay, "no-delay", false, "Show results as soon as they arrive")
}
