package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	defaultServerPort     = "3000"
	defaultNowPlayingURL  = "https://api-spotifyx.notcoderguy.com/"
	defaultPlaceholderURL = "https://picsum.photos/300/300"
	defaultTemplatesFile  = "templates/templates.json"
	defaultTemplatesDir   = "templates"
)

// Config holds the application configuration.
type Config struct {
	ServerPort     string
	AllowedOrigins []string
	LogLevel       logrus.Level
	NowPlayingURL  string
	PlaceholderURL string
	TemplatesFile  string
	TemplatesDir   string
	Spotify        struct {
		ClientID     string
		ClientSecret string
		RefreshToken string
	}
}

// Load loads the configuration from environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found, using environment variables")
	}

	cfg := &Config{}

	cfg.Spotify.ClientID = os.Getenv("SPOTIFY_CLIENT_ID")
	cfg.Spotify.ClientSecret = os.Getenv("SPOTIFY_CLIENT_SECRET")
	cfg.Spotify.RefreshToken = os.Getenv("SPOTIFY_REFRESH_TOKEN")

	// Spotify credentials are optional (the proxy endpoint needs none), but a
	// partial set is a misconfiguration worth failing on.
	set := 0
	for _, v := range []string{cfg.Spotify.ClientID, cfg.Spotify.ClientSecret, cfg.Spotify.RefreshToken} {
		if v != "" {
			set++
		}
	}
	if set != 0 && set != 3 {
		return nil, fmt.Errorf("partial spotify credentials: set all of SPOTIFY_CLIENT_ID, SPOTIFY_CLIENT_SECRET, SPOTIFY_REFRESH_TOKEN or none")
	}

	cfg.ServerPort = envOrDefault("SERVER_PORT", defaultServerPort)
	cfg.NowPlayingURL = envOrDefault("NOW_PLAYING_URL", defaultNowPlayingURL)
	cfg.PlaceholderURL = envOrDefault("PLACEHOLDER_IMAGE_URL", defaultPlaceholderURL)
	cfg.TemplatesFile = envOrDefault("TEMPLATES_FILE", defaultTemplatesFile)
	cfg.TemplatesDir = envOrDefault("TEMPLATES_DIR", defaultTemplatesDir)

	if allowedOrigins := os.Getenv("ALLOWED_ORIGINS"); allowedOrigins != "" {
		cfg.AllowedOrigins = strings.Split(allowedOrigins, ",")
	}

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	cfg.LogLevel = level

	return cfg, nil
}

// DirectAPI reports whether the upstream should be the Spotify Web API
// itself rather than the public now-playing proxy.
func (c *Config) DirectAPI() bool {
	return c.Spotify.ClientID != "" && c.Spotify.ClientSecret != "" && c.Spotify.RefreshToken != ""
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
