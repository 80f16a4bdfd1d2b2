// Package output provides output formatting for fretehub-cli.
//
// This package handles all CLI output formatting:
//
//   - formatter.go: Formatter interface, factory and Printer
//   - table.go: Table rendering for structs, slices and maps
//   - json.go: JSON output formatting
//   - yaml.go: YAML output formatting
//   - spinner.go: Progress animation while a request is in flight
//
// Status lines (✓, !, ✗) go to stdout in table mode and to stderr in the
// machine-readable modes, so json and yaml output stays parseable.
package output
