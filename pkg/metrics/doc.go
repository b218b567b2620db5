// Package metrics exposes Prometheus metrics for a sensor node.
//
// All collectors live in a private registry so several nodes (or tests)
// can run in one process. Every method is safe to call on a nil *Metrics,
// which disables collection.
package metrics
