// Package metrics exposes Prometheus counters for proxied operations and a
// standalone metrics HTTP server, kept off the main API listener.
package metrics
