// Package metric provides Prometheus metrics for tunevault.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: Prometheus registry, recording helpers and HTTP handler
//   - collector.go: Custom collectors sampling live state (key cache size)
//
// Metrics include:
//
//   - Session refresh counters
//   - Pipeline request counters and latency histogram, by stage
//   - Decrypted byte counter
//   - Transport request counters, by request kind
//
// All recording methods are safe on a nil *Registry, so components can be
// built without metrics.
package metric
