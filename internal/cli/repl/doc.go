// Package repl provides the interactive shell of fretehub-cli.
//
// The shell keeps one client runtime (session store, HTTP client, config)
// alive across lines, so a login in one line authenticates the next:
//
//   - repl.go: Main loop, line splitting and command dispatch
//   - completer.go: Prefix completion for command names
//   - history.go: Command history persistence
//
// Lines that carry secrets (for example --password) are never written to
// the history file.
package repl
