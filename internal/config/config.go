package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Market is the region code used for top tracks
	// Default: "AR"
	Market string

	// SettleDelay is how long a finished search waits before it is shown.
	// Zero disables the delay.
	SettleDelay time.Duration

	// RequestTimeout bounds every outbound HTTP call
	RequestTimeout time.Duration

	// AlbumWorkers caps concurrent album track fetches (1 = sequential)
	AlbumWorkers int

	TopTracksLimit int
	AlbumsLimit    int

	// LogLevel overrides the per-command default level when set
	LogLevel string

	Catalog CatalogConfig
	LastFM  LastFMConfig
	History HistoryConfig
	Server  ServerConfig

	// Secrets are only ever read from the environment
	Credentials Credentials
}

// CatalogConfig holds catalog API endpoints
type CatalogConfig struct {
	BaseURL  string
	TokenURL string
}

// LastFMConfig holds Last.fm specific configuration
type LastFMConfig struct {
	BaseURL string
}

// HistoryConfig holds search history settings
type HistoryConfig struct {
	Enabled bool
	Path    string
}

// ServerConfig holds settings for the serve command
type ServerConfig struct {
	Addr string
}

// Credentials are the client identifiers and API key supplied through the
// process environment.
type Credentials struct {
	ClientID     string `env:"SPOTIFY_CLIENT_ID"`
	ClientSecret string `env:"SPOTIFY_CLIENT_SECRET"`
	LastFMAPIKey string `env:"LASTFM_API_KEY"`
}

// Missing returns the names of unset credential variables.
func (c Credentials) Missing() []string {
	var missing []string
	if c.ClientID == "" {
		missing = append(missing, "SPOTIFY_CLIENT_ID")
	}
	if c.ClientSecret == "" {
		missing = append(missing, "SPOTIFY_CLIENT_SECRET")
	}
	if c.LastFMAPIKey == "" {
		missing = append(missing, "LASTFM_API_KEY")
	}
	return missing
}

const (
	DefaultCatalogBaseURL = "https://api.spotify.com/v1/"
	DefaultTokenURL       = "https://accounts.spotify.com/api/token"
	DefaultLastFMBaseURL  = "https://ws.audioscrobbler.com/2.0/"
)

// Load reads configuration from file and environment
func Load() (*Config, error) {
	return load(getConfigDir(), ".")
}

func load(dirs ...string) (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Config file locations (in order of precedence)
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	// Set defaults
	v.SetDefault("market", "AR")
	v.SetDefault("settle_delay", 1500*time.Millisecond)
	v.SetDefault("request_timeout", 10*time.Second)
	v.SetDefault("album_workers", 1)
	v.SetDefault("top_tracks_limit", 5)
	v.SetDefault("albums_limit", 4)
	v.SetDefault("catalog.base_url", DefaultCatalogBaseURL)
	v.SetDefault("catalog.token_url", DefaultTokenURL)
	v.SetDefault("lastfm.base_url", DefaultLastFMBaseURL)
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", filepath.Join(getDataDir(), "history.db"))
	v.SetDefault("server.addr", ":8080")

	// Read config file (optional - don't fail if missing)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Read from environment variables, e.g. PROFILES_CATALOG_BASE_URL
	v.SetEnvPrefix("PROFILES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Map config to struct
	cfg := &Config{
		Market:         v.GetString("market"),
		SettleDelay:    v.GetDuration("settle_delay"),
		RequestTimeout: v.GetDuration("request_timeout"),
		AlbumWorkers:   v.GetInt("album_workers"),
		TopTracksLimit: v.GetInt("top_tracks_limit"),
		AlbumsLimit:    v.GetInt("albums_limit"),
		LogLevel:       v.GetString("log.level"),
		Catalog: CatalogConfig{
			BaseURL:  v.GetString("catalog.base_url"),
			TokenURL: v.GetString("catalog.token_url"),
		},
		LastFM: LastFMConfig{
			BaseURL: v.GetString("lastfm.base_url"),
		},
		History: HistoryConfig{
			Enabled: v.GetBool("history.enabled"),
			Path:    v.GetString("history.path"),
		},
		Server: ServerConfig{
			Addr: v.GetString("server.addr"),
		},
	}

	if err := env.Parse(&cfg.Credentials); err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks value ranges. Missing credentials are not an error here:
// they surface later as authorization failures.
func (c *Config) Validate() error {
	if c.Market == "" {
		return fmt.Errorf("market must not be empty")
	}
	if c.SettleDelay < 0 {
		return fmt.Errorf("settle_delay must not be negative")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative")
	}
	if c.AlbumWorkers < 1 || c.AlbumWorkers > 4 {
		return fmt.Errorf("album_workers must be between 1 and 4, got %d", c.AlbumWorkers)
	}
	if c.TopTracksLimit < 1 || c.TopTracksLimit > 5 {
		return fmt.Errorf("top_tracks_limit must be between 1 and 5, got %d", c.TopTracksLimit)
	}
	if c.AlbumsLimit < 1 || c.AlbumsLimit > 4 {
		return fmt.Errorf("albums_limit must be between 1 and 4, got %d", c.AlbumsLimit)
	}
	return nil
}

// getConfigDir returns the configuration directory path
// Creates the directory if it doesn't exist
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	configDir := filepath.Join(homeDir, ".config", "profiles")

	// Create config directory if it doesn't exist
	_ = os.MkdirAll(configDir, 0755)

	return configDir
}

// getDataDir returns the directory for the history database
func getDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(homeDir, ".local", "share", "profiles")
}

// GetConfigDir returns the configuration directory path (public helper)
func GetConfigDir() string {
	return getConfigDir()
}
