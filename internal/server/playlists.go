package server

import (
	"context"
	"net/http"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotify-proxy/internal/services"
	"github.com/desertthunder/spotify-proxy/internal/shared"
)

const (
	msgInvalidUserID = "missing or invalid user_id query parameter"
	msgAuthFailed    = "Unable to authenticate with Spotify"
	msgFetchFailed   = "Unable to fetch playlists"

	maxUserIDLength = 256
)

// TokenSource issues bearer tokens for upstream requests.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// PlaylistSource fetches a user's playlists from the upstream API.
type PlaylistSource interface {
	UserPlaylists(ctx context.Context, accessToken, userID string) (*services.APIResponse, error)
}

// PlaylistHandler relays GET /playlists?user_id=... to the Spotify Web API.
type PlaylistHandler struct {
	tokens    TokenSource
	playlists PlaylistSource
	logger    *log.Logger
}

// NewPlaylistHandler creates a handler that authenticates through tokens and fetches through playlists.
func NewPlaylistHandler(tokens TokenSource, playlists PlaylistSource, logger *log.Logger) *PlaylistHandler {
	return &PlaylistHandler{
		tokens:    tokens,
		playlists: playlists,
		logger:    logger,
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *PlaylistHandler) Routes() []string {
	return []string{"/playlists"}
}

// ServeHTTP validates user_id, acquires a fresh token, and relays the upstream response.
//
// Upstream 200 JSON bodies are written verbatim. Any other upstream status is forwarded with a
// fixed error body. Token or transport failures and non-JSON 200 bodies answer 502.
func (h *PlaylistHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := shared.WithLogger(h.logger, "request_id", RequestIDFromContext(ctx))

	userID := r.URL.Query().Get("user_id")
	if !validUserID(userID) {
		writeError(w, http.StatusBadRequest, msgInvalidUserID)
		return
	}

	token, err := h.tokens.AccessToken(ctx)
	if err != nil {
		logger.Warn("token exchange failed", "err", err)
		writeError(w, http.StatusBadGateway, msgAuthFailed)
		return
	}

	resp, err := h.playlists.UserPlaylists(ctx, token, userID)
	if err != nil {
		logger.Warn("playlist request failed", "err", err)
		writeError(w, http.StatusBadGateway, msgFetchFailed)
		return
	}

	if !resp.OK() {
		logger.Debug("upstream rejected playlist request", "status", resp.StatusCode, "body", string(resp.Body))
		writeError(w, resp.StatusCode, msgFetchFailed)
		return
	}

	if !resp.IsJSON {
		logger.Warn("upstream returned a non-JSON playlist body", "content_type", resp.Headers.Get("Content-Type"))
		writeError(w, http.StatusBadGateway, msgFetchFailed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(resp.Body); err != nil {
		logger.Debug("client went away during relay", "err", err)
	}
}

// validUserID rejects ids that are empty, oversized, or could alter the upstream path.
func validUserID(id string) bool {
	if id == "" || len(id) > maxUserIDLength {
		return false
	}
	for _, r := range id {
		if r == '/' || r == '\\' || unicode.IsSpace(r) || unicode.IsControl(r) {
			return false
		}
	}
	return id != "." && id != ".."
}
