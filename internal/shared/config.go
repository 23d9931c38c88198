package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Environment variables read at startup. Values found here override the config file.
const (
	EnvClientID     = "SPOTIFY_CLIENT_ID"
	EnvClientSecret = "SPOTIFY_CLIENT_SECRET"
	EnvRedirectURI  = "SPOTIFY_REDIRECT_URI"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Spotify     SpotifyAPIConfig  `toml:"spotify"`
	Server      ServerConfig      `toml:"server"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
}

// SpotifyConfig contains Spotify API credentials.
//
// RedirectURI is carried for completeness; the client-credentials grant never sends it.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURI  string `toml:"redirect_uri"`
}

// SpotifyAPIConfig contains the upstream endpoints and the outbound request timeout.
type SpotifyAPIConfig struct {
	TokenURL       string `toml:"token_url"`
	APIURL         string `toml:"api_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host                string `toml:"host"`
	Port                int    `toml:"port"`
	Debug               bool   `toml:"debug"`
	ReadTimeoutSeconds  int    `toml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `toml:"write_timeout_seconds"`
}

// HasCredentials reports whether both the client id and secret are set.
func (s SpotifyConfig) HasCredentials() bool {
	return s.ClientID != "" && s.ClientSecret != ""
}

// Timeout returns the outbound request timeout. Zero means no timeout.
func (s SpotifyAPIConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSeconds) * time.Second
}

func (s ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSeconds) * time.Second
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys absent from the file keep their embedded default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingConfig, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadDotEnv loads variables from a .env file into the process environment.
//
// Variables already present in the environment are left untouched. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides Spotify credentials with any values set in the environment.
func (c *Config) ApplyEnv() {
	if v, ok := os.LookupEnv(EnvClientID); ok {
		c.Credentials.Spotify.ClientID = v
	}
	if v, ok := os.LookupEnv(EnvClientSecret); ok {
		c.Credentials.Spotify.ClientSecret = v
	}
	if v, ok := os.LookupEnv(EnvRedirectURI); ok {
		c.Credentials.Spotify.RedirectURI = v
	}
}

// Validate checks the values the server cannot start without.
//
// Missing credentials are not a validation failure: requests fail individually instead.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server port %d out of range", ErrInvalidConfig, c.Server.Port)
	}
	if c.Spotify.TimeoutSeconds < 0 {
		return fmt.Errorf("%w: negative spotify timeout", ErrInvalidConfig)
	}

	urls := []struct{ name, raw string }{
		{"token_url", c.Spotify.TokenURL},
		{"api_url", c.Spotify.APIURL},
	}
	for _, v := range urls {
		u, err := url.Parse(v.raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: spotify %s %q is not an absolute URL", ErrInvalidConfig, v.name, v.raw)
		}
	}

	return nil
}
