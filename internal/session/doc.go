// Package session provides the Session Store: the single source of truth
// for whether this client is authenticated.
//
// A Store holds the token and the opaque user and company records returned
// by the API, and mirrors them to a Storage medium so a later process (or
// a later line in the shell) picks the session up again:
//
//   - store.go: Store with lazy Initialize, Login, Logout and subscriptions
//   - context.go: provisioning of one Store per application through context
//   - storage.go: Storage interface and the in-memory implementation
//   - kvstorage.go: Storage over the embedded KV engine, namespaced per API
//     origin and optionally encrypted
//   - keyfile.go: local key file for at-rest encryption
//
// Storage failures never reach callers. A login that cannot be persisted
// still authenticates the running process; unreadable persisted data is
// treated as no session at all.
package session
