package main

import (
	"context"

	"github.com/desertthunder/spotify-proxy/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes the embedded example configuration to --config.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if err := shared.CreateConfigFile(configPath); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", configPath)
	return r.writePlain("✓ Config written to %s\nSet credentials there or via %s / %s\n", configPath, shared.EnvClientID, shared.EnvClientSecret)
}
