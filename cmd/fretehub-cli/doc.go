// Package main provides the entry point for fretehub-cli.
//
// The CLI gives command-line access to a FreteHub account:
//
//   - Sign in, sign out and show the current session
//   - Account registration and free-trial signup
//   - Company details registration
//   - Notifications
//   - Local configuration and client diagnostics
//
// Usage:
//
//	fretehub-cli [global flags] command [flags]
//	fretehub-cli login --email ana@example.com
//	fretehub-cli -o json notifications
//	fretehub-cli shell
//
// The session is kept between runs in an encrypted store under
// ~/.fretehub unless --session-backend memory is given.
package main
