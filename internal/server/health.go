package server

import "net/http"

// HealthHandler answers liveness probes without contacting Spotify.
type HealthHandler struct{}

func (HealthHandler) Routes() []string {
	return []string{"/health"}
}

func (HealthHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
