// Package metrics exposes Prometheus collectors for scans and cleanups.
//
// Collectors are package level and can be recorded at any time; Register
// attaches them to a registry once, typically from the start command which
// then serves them on /metrics.
package metrics
