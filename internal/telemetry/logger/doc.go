// Package logger provides structured logging for FreteHub.
//
// This package wraps the standard library log/slog:
//
//   - logger.go: Logger interface, configuration and the process default
//   - context.go: context-aware logging with request IDs (ULID) and
//     operation names
//   - redact.go: masking of credentials and personal data
//
// The CLI logs to stderr in text format at warn level by default, so that
// stdout stays reserved for command output; --verbose lowers the level to
// debug.
package logger
