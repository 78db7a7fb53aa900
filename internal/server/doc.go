// Package server provides HTTP routing, middleware and a graceful HTTP server for the web front end.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses gorilla/mux internally with method matching.
//
// # Middleware
//
//   - [RequestID] : propagates or generates X-Request-ID
//   - [Logging] : one structured log line per request
//   - [Recover] : converts panics into 500 responses
//   - [CORS] : read-only cross-origin access for the JSON API (rs/cors)
//   - [Metrics.Middleware] : Prometheus request counters and latency histograms
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
//
// # Server
//
// [Server] serves until its context is canceled, then shuts down with a bounded grace period.
package server
