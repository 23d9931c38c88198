// Client-credentials token exchange against the Spotify accounts service
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/desertthunder/spotify-proxy/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// TokenProvider exchanges the application's client id and secret for an access token.
//
// Every call to [TokenProvider.AccessToken] performs a fresh exchange; tokens are never cached.
type TokenProvider struct {
	config     *clientcredentials.Config
	httpClient *http.Client
}

// NewTokenProvider creates a provider for the given credentials.
//
// tokenURL defaults to the Spotify accounts endpoint and client to [http.DefaultClient].
func NewTokenProvider(creds shared.SpotifyConfig, tokenURL string, client *http.Client) *TokenProvider {
	if tokenURL == "" {
		tokenURL = spotifyTokenURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &TokenProvider{
		config: &clientcredentials.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			TokenURL:     tokenURL,
			AuthStyle:    oauth2.AuthStyleInParams,
		},
		httpClient: client,
	}
}

// AccessToken performs one form-encoded client-credentials POST and returns the access token.
//
// All failures wrap [shared.ErrAuthFailed]. Missing credentials fail without a network call.
func (p *TokenProvider) AccessToken(ctx context.Context) (string, error) {
	if p.config.ClientID == "" || p.config.ClientSecret == "" {
		return "", fmt.Errorf("%w: %w", shared.ErrAuthFailed, shared.ErrMissingCredentials)
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)

	token, err := p.config.Token(ctx)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && re.Response != nil {
			return "", fmt.Errorf("%w: token endpoint returned status %d", shared.ErrAuthFailed, re.Response.StatusCode)
		}
		return "", fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	return token.AccessToken, nil
}
