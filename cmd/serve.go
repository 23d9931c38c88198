package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotify-proxy/internal/server"
	"github.com/desertthunder/spotify-proxy/internal/services"
	"github.com/desertthunder/spotify-proxy/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve starts the playlist proxy and blocks until SIGINT/SIGTERM or ctx cancellation.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	if config.Server.Debug {
		shared.SetLogLevel(r.logger, log.DebugLevel)
		r.logger.Warn("diagnostics mode enabled; do not use in production")
	}

	creds := config.Credentials.Spotify
	if creds.HasCredentials() {
		r.logger.Info("spotify credentials loaded", "client_id", shared.Mask(creds.ClientID))
	} else {
		r.logger.Warnf("%v: set %s and %s; requests will fail with 502", shared.ErrMissingCredentials, shared.EnvClientID, shared.EnvClientSecret)
	}

	client := r.client(config)
	tokens := services.NewTokenProvider(creds, config.Spotify.TokenURL, client)
	spotify := services.NewSpotifyService(config.Spotify.APIURL, client)
	router := server.NewRouter(tokens, spotify, r.logger, config.Server.Debug)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(config.Server, router, r.logger).Run(ctx)
}
