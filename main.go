package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"notcoderguy/spotify-svg/internal/artwork"
	"notcoderguy/spotify-svg/internal/config"
	"notcoderguy/spotify-svg/internal/server"
	"notcoderguy/spotify-svg/internal/spotify"
	"notcoderguy/spotify-svg/internal/svg"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}
	logrus.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var client *spotify.Client
	if cfg.DirectAPI() {
		client = spotify.NewAuthClient(ctx, cfg.Spotify.ClientID, cfg.Spotify.ClientSecret, cfg.Spotify.RefreshToken)
		logrus.Info("using spotify web api upstream")
	} else {
		client = spotify.NewClient(cfg.NowPlayingURL)
		logrus.WithField("url", cfg.NowPlayingURL).Info("using now-playing proxy upstream")
	}

	renderer, err := svg.NewRenderer(cfg.TemplatesDir)
	if err != nil {
		logrus.WithError(err).Fatal("failed to parse svg templates")
	}

	handler := server.NewSVGHandler(
		client,
		artwork.NewFetcher(cfg.PlaceholderURL),
		svg.NewRegistry(cfg.TemplatesFile),
		renderer,
	)

	srv := server.New(":"+cfg.ServerPort, cfg.AllowedOrigins, client, handler)
	if err := srv.Run(ctx); err != nil {
		logrus.WithError(err).Fatal("server exited with error")
	}
}
