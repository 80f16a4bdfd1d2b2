// Package token provides helpers for handling opaque session tokens and
// local secrets on the client side.
//
// The API issues opaque bearer tokens; this package never parses them. It
// only:
//
//   - generates random secrets (the local session key file)
//   - derives stable, non-reversible namespaces from API origins, so one
//     session directory can hold sessions for several servers
//   - masks and fingerprints tokens for display and logs
//
// Security:
//
//   - Uses crypto/rand for CSPRNG
//   - SHA-256 for namespaces and fingerprints
package token
