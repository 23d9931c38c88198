// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

const version = "0.1.0"

// newApp returns the root command. Running it without a subcommand starts the proxy.
func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:           "spotify-proxy",
		Usage:          "Relay Spotify user playlists over HTTP using client-credentials auth",
		Version:        version,
		DefaultCommand: "serve",
		Commands:       r.register(),
	}
}

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
		Sources: cli.EnvVars("SPOTIFY_PROXY_CONFIG"),
	}
}

func serveFlags() []cli.Flag {
	return []cli.Flag{
		configFlag(),
		&cli.StringFlag{
			Name:    "host",
			Usage:   "Address to bind (overrides config)",
			Sources: cli.EnvVars("SPOTIFY_PROXY_HOST"),
		},
		&cli.IntFlag{
			Name:    "port",
			Aliases: []string{"p"},
			Usage:   "Port to listen on (overrides config)",
			Sources: cli.EnvVars("SPOTIFY_PROXY_PORT"),
		},
		&cli.BoolFlag{
			Name:    "debug",
			Usage:   "Enable diagnostics: debug logging and stack traces for panics",
			Sources: cli.EnvVars("SPOTIFY_PROXY_DEBUG"),
		},
	}
}

// serveCommand starts the HTTP proxy
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Start the playlist proxy",
		Flags:  serveFlags(),
		Action: r.Serve,
	}
}

// tokenCommand checks the configured credentials against the token endpoint
func tokenCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "Perform one client-credentials exchange and report the result",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "show",
				Usage: "Print the access token",
			},
		},
		Action: r.Token,
	}
}

// setupCommand handles configuration scaffolding.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write an example configuration file",
				Flags: []cli.Flag{
					configFlag(),
				},
				Action: r.SetupConfig,
			},
		},
	}
}
