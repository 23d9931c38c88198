// Package server provides HTTP routing, middleware, and the proxy's request handlers.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers so that the first middleware added is the outermost.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Handlers
//
// [PlaylistHandler] serves GET /playlists. It validates the user_id query parameter,
// performs a client-credentials token exchange, and relays the Spotify Web API response.
// A failed exchange short-circuits with 502 before any playlist request is made.
//
// [HealthHandler] serves GET /health without touching the upstream.
//
// # Middleware
//
// [RequestID] tags each request with an X-Request-ID, [Logger] writes one log entry per
// request, and [Recover] turns panics into JSON 500 responses.
//
// # Lifecycle
//
// [Server] owns the [http.Server] and shuts it down gracefully when its context ends.
package server
