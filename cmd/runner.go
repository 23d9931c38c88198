package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotify-proxy/internal/services"
	"github.com/desertthunder/spotify-proxy/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
//
// A nil Config means commands load it from --config; a nil HTTPClient means one is built from the config timeout.
type RunnerOpts struct {
	Config     *shared.Config
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:     opts.Config,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, tokenCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig resolves configuration: embedded defaults, then the config file, then the
// environment, then any flags present on cmd.
//
// A missing file is only an error when --config was given explicitly.
func (r *Runner) loadConfig(cmd *cli.Command) (*shared.Config, error) {
	var config *shared.Config
	if r.config != nil {
		c := *r.config
		config = &c
	} else {
		path := cmd.String("config")

		loaded, err := shared.LoadConfig(path)
		switch {
		case err == nil:
			r.logger.Debug("loaded config", "path", path)
			config = loaded
		case errors.Is(err, shared.ErrMissingConfig) && !cmd.IsSet("config"):
			config = shared.DefaultConfig()
		default:
			return nil, err
		}
	}

	config.ApplyEnv()

	if cmd.IsSet("host") {
		config.Server.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		config.Server.Port = cmd.Int("port")
	}
	if cmd.IsSet("debug") {
		config.Server.Debug = cmd.Bool("debug")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// client returns the injected HTTP client or one bounded by the configured timeout.
func (r *Runner) client(config *shared.Config) *http.Client {
	if r.httpClient != nil {
		return r.httpClient
	}
	return services.NewHTTPClient(config.Spotify.Timeout())
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
