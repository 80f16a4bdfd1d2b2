// Package metric provides Prometheus metrics for FreteHub.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: per-process registry with form, HTTP and session
//     metrics, exposed through an HTTP handler or as text
//   - collector.go: custom collector that reports session and build state
//     at scrape time
//
// Metrics include:
//
//   - Form submission outcomes and latency
//   - Field validation error counters
//   - API request counters and latency
//   - Session login/logout events and current authentication state
//
// The CLI prints them with `fretehub-cli system metrics`; the storage engine
// registers its own size and GC metrics on the same registry.
package metric
