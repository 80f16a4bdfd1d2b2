// Package confloader provides configuration loading mechanism.
//
// This package layers configuration sources on top of koanf:
//
//   - Defaults: a map supplied by the caller (LoadMap)
//   - Files: YAML, with an optional fsnotify Watcher for hot reload
//   - .env files: loaded into the process environment with godotenv
//   - Environment variables: FRETEHUB_ prefixed, resolved against known keys
//   - Flags: a map of explicitly set flags (LoadMap)
//
// Priority (highest to lowest):
//
//  1. Command-line flags
//  2. Environment variables (including .env files)
//  3. Configuration files
//  4. Default values
package confloader
