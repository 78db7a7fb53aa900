package server

import (
	"net/http"
)

// Middleware decorates every request the web front end serves.
type Middleware func(http.Handler) http.Handler

// Handler is a group of endpoints mounted as one unit, such as the JSON API.
//
// Routes are mounted for every method, so the group checks methods itself.
type Handler interface {
	http.Handler
	Routes() []string
}

// Router mounts pages and endpoint groups behind a shared middleware chain.
type Router interface {
	// Use appends middleware; the first one added sees the request first.
	Use(middleware ...Middleware)
	// Handle mounts handler at path for a single method.
	Handle(method, path string, handler http.Handler)
	// Handler mounts every route of an endpoint group.
	Handler(handler Handler)
	// Apply wraps handler in the middleware chain without mounting it.
	Apply(handler http.Handler) http.Handler
	ServeHTTP(w http.ResponseWriter, r *http.Request)
}
