// Package config provides CLI configuration for fretehub-cli.
//
// This package defines CLI-specific configuration:
//
//   - spec.go: CLIConfig struct (~/.fretehub/cli.yaml)
//   - loader.go: loading, merging, saving and editing
//
// Sources are merged by internal/infra/confloader with the priority
// flag > environment (FRETEHUB_*, .env) > file > default.
package config
