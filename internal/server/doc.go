// Package server implements the domkit preview server.
//
// Routes:
//
//	POST /render   render a template; body {"template", "data", "selector", "pretty"}
//	GET  /ws       websocket; each text message is a render request
//	GET  /healthz  liveness probe
//	GET  /metrics  Prometheus metrics (when enabled)
//
// The data field of a render request is either a JSON object, used as the
// render map directly, or a string holding a YAML render map.
package server
