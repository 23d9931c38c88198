package server

import (
	"net/http"
	"strings"
)

// BasicRouter is a simple HTTP router implementing the [Router] interface.
//
// Uses [http.ServeMux] internally for routing. Requests with a method other than the one
// registered for a path receive a JSON 405.
type BasicRouter struct {
	mux         *http.ServeMux
	middlewares []Middleware
}

// NewBasicRouter creates a new [BasicRouter] instance.
func NewBasicRouter() *BasicRouter {
	return &BasicRouter{
		mux:         http.NewServeMux(),
		middlewares: []Middleware{},
	}
}

// Use adds [Middleware] to the [Router] instance's middleware stack, applied in the order it's added.
//
// Middleware must be added before handlers are registered.
func (r *BasicRouter) Use(middleware ...Middleware) {
	r.middlewares = append(r.middlewares, middleware...)
}

// Handle registers a handler for the specified HTTP method and path.
//
// The handler is wrapped with all registered middleware, including the method check.
func (r *BasicRouter) Handle(method, path string, handler http.Handler) {
	methodHandler := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if !strings.EqualFold(req.Method, method) {
			w.Header().Set("Allow", strings.ToUpper(method))
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		handler.ServeHTTP(w, req)
	})

	r.mux.Handle(path, r.Apply(methodHandler))
}

// Handler registers a custom [Handler] implementation for a single method.
//
// All routes returned by [Handler.Routes] are registered with this handler.
func (r *BasicRouter) Handler(method string, handler Handler) {
	for _, route := range handler.Routes() {
		r.Handle(method, route, handler)
	}
}

// ServeHTTP implements [http.Handler] for the entire router.
//
// Unknown paths are answered with a JSON 404 that still passes through the middleware stack.
func (r *BasicRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if _, pattern := r.mux.Handler(req); pattern == "" {
		r.Apply(http.HandlerFunc(notFound)).ServeHTTP(w, req)
		return
	}
	r.mux.ServeHTTP(w, req)
}

// Apply wraps a handler with all registered middleware.
//
// Middleware is applied in reverse order so the first added runs first.
func (r *BasicRouter) Apply(handler http.Handler) http.Handler {
	wrapped := handler

	for i := len(r.middlewares) - 1; i >= 0; i-- {
		wrapped = r.middlewares[i](wrapped)
	}

	return wrapped
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "not found")
}
