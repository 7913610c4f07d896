// Package httpserver serves the redislite admin HTTP endpoint.
//
// Routes:
//
//   - GET /metrics: Prometheus exposition
//   - GET /health: liveness plus a status document (keys, connections, snapshot)
//   - GET /ready: 200 while the Redis listener accepts connections, else 503
//   - GET /version: build information
//
// Every request passes through RequestID, AccessLog and Recover.
package httpserver
