// Package storage provides the embedded key-value engine used to persist
// client state (the signed-in session) between CLI invocations.
//
// Files:
//
//   - kv.go: KVEngine interface and configuration
//   - badger.go: Badger v3 implementation with background value-log GC
//     and Prometheus size metrics
//
// The session layer uses Get/Set/Delete and prefix scans over a
// namespaced key space.
package storage
