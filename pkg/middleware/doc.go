// Package middleware provides net/http middleware for the domkit preview
// server.
//
// This package includes:
//   - OpenTelemetry tracing middleware
//   - Prometheus metrics middleware
//   - A status-recording response writer shared by both
//
// # OpenTelemetry Middleware
//
// The OpenTelemetry middleware starts a server span for every request and
// stores it in the request context, so handlers and outgoing xhr requests
// inherit the trace:
//
//	r := chi.NewRouter()
//	r.Use(middleware.OpenTelemetry(
//	    middleware.WithTracerName("domkit-preview"),
//	    middleware.WithRequestFilter(func(r *http.Request) bool {
//	        return r.URL.Path != "/healthz"
//	    }),
//	))
//
// # Prometheus Metrics
//
// The Prometheus middleware collects:
//   - domkit_http_requests_total: Requests by path and status
//   - domkit_http_request_duration_seconds: Request duration histogram
//   - domkit_http_requests_in_flight: Requests currently being served
//   - domkit_http_websocket_connections: Open websocket connections
//   - domkit_http_websocket_errors_total: Websocket errors by type
//
//	r.Use(middleware.Prometheus(
//	    middleware.WithPathLabel(func(r *http.Request) string {
//	        return chi.RouteContext(r.Context()).RoutePattern()
//	    }),
//	))
//	r.Handle("/metrics", promhttp.Handler())
package middleware
