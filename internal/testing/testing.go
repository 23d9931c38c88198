// package testing contains shared testing utilities
package testing

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"
)

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

// SpotifyStub fakes the Spotify accounts token endpoint and the user playlists endpoint.
//
// Zero values answer a successful exchange with token "tok" and an empty playlist page.
type SpotifyStub struct {
	Server *httptest.Server

	// TokenBody overrides the token endpoint JSON when set.
	TokenBody       string
	TokenStatus     int
	PlaylistsStatus int
	PlaylistsBody   string

	mu            sync.Mutex
	tokenCalls    int
	playlistCalls int
	lastForm      url.Values
	lastAuth      string
	lastUser      string
}

// NewSpotifyStub starts the fake and closes it when the test ends.
func NewSpotifyStub(t *testing.T) *SpotifyStub {
	t.Helper()

	s := &SpotifyStub{}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/token", s.handleToken)
	mux.HandleFunc("/v1/users/", s.handlePlaylists)
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Server.Close)

	return s
}

// TokenURL is the fake accounts token endpoint.
func (s *SpotifyStub) TokenURL() string { return s.Server.URL + "/api/token" }

// APIURL is the fake Web API base.
func (s *SpotifyStub) APIURL() string { return s.Server.URL + "/v1" }

func (s *SpotifyStub) handleToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	_ = r.ParseForm()

	s.mu.Lock()
	s.tokenCalls++
	s.lastForm = r.PostForm
	body, status := s.TokenBody, s.TokenStatus
	s.mu.Unlock()

	if body == "" {
		body = `{"access_token":"tok","token_type":"Bearer","expires_in":3600}`
	}
	if status == 0 {
		status = http.StatusOK
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

func (s *SpotifyStub) handlePlaylists(w http.ResponseWriter, r *http.Request) {
	user, ok := strings.CutSuffix(strings.TrimPrefix(r.URL.EscapedPath(), "/v1/users/"), "/playlists")
	if !ok {
		http.NotFound(w, r)
		return
	}
	user, _ = url.PathUnescape(user)

	s.mu.Lock()
	s.playlistCalls++
	s.lastAuth = r.Header.Get("Authorization")
	s.lastUser = user
	body, status := s.PlaylistsBody, s.PlaylistsStatus
	s.mu.Unlock()

	if body == "" {
		body = `{"items":[]}`
	}
	if status == 0 {
		status = http.StatusOK
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

// TokenCalls returns how many token exchanges the fake has served.
func (s *SpotifyStub) TokenCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokenCalls
}

// PlaylistCalls returns how many playlist requests the fake has served.
func (s *SpotifyStub) PlaylistCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playlistCalls
}

// LastForm returns the form body of the most recent token request.
func (s *SpotifyStub) LastForm() url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastForm
}

// LastAuthorization returns the Authorization header of the most recent playlist request.
func (s *SpotifyStub) LastAuthorization() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAuth
}

// LastUser returns the unescaped user id of the most recent playlist request.
func (s *SpotifyStub) LastUser() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUser
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
