// Spotify Web API playlists client
//
// Responses are relayed as-is; see https://developer.spotify.com/documentation/web-api/reference/get-list-users-playlists
package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/desertthunder/spotify-proxy/internal/shared"
)

// SpotifyService performs bearer-authenticated requests against the Spotify Web API.
type SpotifyService struct {
	baseURL    string
	httpClient *http.Client
}

// NewSpotifyService creates a client rooted at baseURL (default https://api.spotify.com/v1).
func NewSpotifyService(baseURL string, client *http.Client) *SpotifyService {
	if baseURL == "" {
		baseURL = spotifyBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &SpotifyService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
	}
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// UserPlaylists fetches the first page of a user's public playlists.
//
// Non-200 statuses are not errors; the caller inspects [APIResponse.StatusCode].
func (s *SpotifyService) UserPlaylists(ctx context.Context, accessToken, userID string) (*APIResponse, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("%w: empty access token", shared.ErrMissingArgument)
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: user id", shared.ErrMissingArgument)
	}

	endpoint := fmt.Sprintf("/users/%s/playlists", url.PathEscape(userID))
	return s.get(ctx, accessToken, endpoint)
}

func (s *SpotifyService) get(ctx context.Context, accessToken, endpoint string) (*APIResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", shared.ErrAPIRequest, err)
	}

	apiResp, err := readAPIResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	return apiResp, nil
}
