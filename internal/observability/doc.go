// Package observability provides structured logging and metrics for the
// Casting Agency API.
//
// This package implements:
//   - Request-scoped zap loggers carrying the chi request ID
//   - Prometheus collectors for guard decisions, key set refreshes and HTTP latency
//   - HTTP middleware that records request duration per route pattern
package observability
