// package services defines clients for the Spotify accounts service and Web API
//
// Token acquisition (client-credentials grant) lives in token.go, playlist
// retrieval in spotify.go. Both return raw upstream data; neither caches.
package services

import (
	"net/http"
	"time"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"
)

// NewHTTPClient returns the outbound client shared by the token provider and the playlists client.
//
// A zero timeout leaves requests bounded only by their context.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
