package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/spotify-proxy/internal/shared"
	tu "github.com/desertthunder/spotify-proxy/internal/testing"
)

// writeConfig writes a config file pointing the proxy at stub.
func writeConfig(t *testing.T, stub *tu.SpotifyStub) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	content := fmt.Sprintf(`[spotify]
token_url = %q
api_url = %q
`, stub.TokenURL(), stub.APIURL())

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func setCreds(t *testing.T, id, secret string) {
	t.Helper()
	t.Setenv(shared.EnvClientID, id)
	t.Setenv(shared.EnvClientSecret, secret)
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.client(config) != httpClient {
				t.Error("expected injected httpClient to be used")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil httpClient builds one from the config timeout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			client := runner.client(shared.DefaultConfig())

			if client == http.DefaultClient {
				t.Error("expected a dedicated client")
			}
			if client.Timeout != 10*time.Second {
				t.Errorf("expected 10s timeout, got %v", client.Timeout)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		names := []string{}
		for _, c := range NewRunner(RunnerOpts{}).register() {
			names = append(names, c.Name)
		}

		if got := strings.Join(names, ","); got != "serve,token,setup" {
			t.Errorf("unexpected commands: %s", got)
		}
	})

	t.Run("writePlain", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})
		if err := runner.writePlain("hello"); err == nil {
			t.Error("expected write error")
		}
	})
}

func TestTokenCommand(t *testing.T) {
	t.Run("prints token with --show", func(t *testing.T) {
		stub := tu.NewSpotifyStub(t)
		stub.TokenBody = `{"access_token":"abc123"}`
		setCreds(t, "id", "secret")

		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output, Logger: shared.NewLogger(&bytes.Buffer{})})

		err := newApp(runner).Run(context.Background(), []string{"spotify-proxy", "token", "--config", writeConfig(t, stub), "--show"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if output.String() != "abc123\n" {
			t.Errorf("expected token output, got %q", output.String())
		}
		if form := stub.LastForm(); form.Get("client_id") != "id" {
			t.Errorf("expected env credentials to be used, got %v", form)
		}
	})

	t.Run("hides token by default", func(t *testing.T) {
		stub := tu.NewSpotifyStub(t)
		setCreds(t, "id", "secret")

		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output, Logger: shared.NewLogger(&bytes.Buffer{})})

		err := newApp(runner).Run(context.Background(), []string{"spotify-proxy", "token", "-c", writeConfig(t, stub)})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if strings.Contains(output.String(), "tok\n") {
			t.Errorf("expected token to be hidden, got %q", output.String())
		}
		if !strings.Contains(output.String(), "succeeded") {
			t.Errorf("expected success message, got %q", output.String())
		}
	})

	t.Run("missing credentials", func(t *testing.T) {
		stub := tu.NewSpotifyStub(t)
		setCreds(t, "", "")

		runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}, Logger: shared.NewLogger(&bytes.Buffer{})})

		err := newApp(runner).Run(context.Background(), []string{"spotify-proxy", "token", "-c", writeConfig(t, stub)})
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
		if stub.TokenCalls() != 0 {
			t.Errorf("expected no token requests, got %d", stub.TokenCalls())
		}
	})

	t.Run("explicit config path must exist", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}, Logger: shared.NewLogger(&bytes.Buffer{})})

		missing := filepath.Join(t.TempDir(), "missing.toml")
		err := newApp(runner).Run(context.Background(), []string{"spotify-proxy", "token", "-c", missing})
		if !errors.Is(err, shared.ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})
}

func TestServeCommand(t *testing.T) {
	t.Run("starts and stops with the context", func(t *testing.T) {
		setCreds(t, "", "")

		logs := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{
			Config: shared.DefaultConfig(),
			Output: &bytes.Buffer{},
			Logger: shared.NewLogger(logs),
		})

		ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
		defer cancel()

		err := newApp(runner).Run(ctx, []string{"spotify-proxy", "serve", "--port", "0", "--debug"})
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}

		out := logs.String()
		for _, want := range []string{"listening", "diagnostics mode enabled", "missing credentials", "shutting down"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in logs, got %q", want, out)
			}
		}
	})

	t.Run("is the default command", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{
			Config: shared.DefaultConfig(),
			Output: &bytes.Buffer{},
			Logger: shared.NewLogger(&bytes.Buffer{}),
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		t.Setenv("SPOTIFY_PROXY_PORT", "0")
		if err := newApp(runner).Run(ctx, []string{"spotify-proxy"}); err != nil {
			t.Errorf("expected clean shutdown, got %v", err)
		}
	})

	t.Run("rejects invalid port", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{
			Config: shared.DefaultConfig(),
			Output: &bytes.Buffer{},
			Logger: shared.NewLogger(&bytes.Buffer{}),
		})

		err := newApp(runner).Run(context.Background(), []string{"spotify-proxy", "serve", "--port", "70000"})
		if !errors.Is(err, shared.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("flags do not mutate the injected config", func(t *testing.T) {
		config := shared.DefaultConfig()
		runner := NewRunner(RunnerOpts{
			Config: config,
			Output: &bytes.Buffer{},
			Logger: shared.NewLogger(&bytes.Buffer{}),
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if err := newApp(runner).Run(ctx, []string{"spotify-proxy", "serve", "--port", "0"}); err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
		if config.Server.Port != 8080 {
			t.Errorf("expected injected config to keep port 8080, got %d", config.Server.Port)
		}
	})
}

func TestSetupConfigCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{Output: output, Logger: shared.NewLogger(&bytes.Buffer{})})

	if err := newApp(runner).Run(context.Background(), []string{"spotify-proxy", "setup", "config", "-c", path}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	tu.AssertFileExists(t, path)
	if !strings.Contains(tu.MustReadFile(t, path), "[credentials.spotify]") {
		t.Error("expected example config contents")
	}
	if !strings.Contains(output.String(), path) {
		t.Errorf("expected path in output, got %q", output.String())
	}

	runner = NewRunner(RunnerOpts{Output: &bytes.Buffer{}, Logger: shared.NewLogger(&bytes.Buffer{})})
	if err := newApp(runner).Run(context.Background(), []string{"spotify-proxy", "setup", "config", "-c", path}); err == nil {
		t.Error("expected error when config already exists")
	}
}
