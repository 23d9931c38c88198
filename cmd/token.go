package main

import (
	"context"

	"github.com/desertthunder/spotify-proxy/internal/services"
	"github.com/urfave/cli/v3"
)

// Token performs a single client-credentials exchange with the configured credentials.
//
// The token itself is only printed with --show.
func (r *Runner) Token(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	provider := services.NewTokenProvider(config.Credentials.Spotify, config.Spotify.TokenURL, r.client(config))

	r.logger.Info("requesting token", "url", config.Spotify.TokenURL)

	token, err := provider.AccessToken(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("show") {
		return r.writePlain("%s\n", token)
	}
	return r.writePlain("✓ Token exchange succeeded\n")
}
