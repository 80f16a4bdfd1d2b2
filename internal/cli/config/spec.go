package config

import (
	"os"
	"path/filepath"
	"time"
)

// HomeEnv overrides the directory holding the CLI's files.
const HomeEnv = "FRETEHUB_HOME"

// Session backends.
const (
	BackendMemory = "memory"
	BackendBadger = "badger"
)

// Output formats.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// CLIConfig is the configuration for fretehub-cli.
type CLIConfig struct {
	// Server is the API base URL.
	Server string `koanf:"server" yaml:"server"`
	Output string `koanf:"output" yaml:"output"` // table, json, yaml

	// Timeout is a Go duration string, e.g. "30s".
	Timeout string `koanf:"timeout" yaml:"timeout"`

	// RateLimit caps requests per second; 0 disables limiting.
	RateLimit float64 `koanf:"rate_limit" yaml:"rate_limit"`
	RateBurst int     `koanf:"rate_burst" yaml:"rate_burst"`

	HistoryFile string `koanf:"history_file" yaml:"history_file"`

	Log     LogConfig     `koanf:"log" yaml:"log"`
	Session SessionConfig `koanf:"session" yaml:"session"`
	TLS     TLSConfig     `koanf:"tls" yaml:"tls"`
}

// LogConfig controls diagnostic logging on stderr.
type LogConfig struct {
	Level  string `koanf:"level" yaml:"level"`
	Format string `koanf:"format" yaml:"format"`
}

// SessionConfig controls where the session is kept between runs.
type SessionConfig struct {
	Backend string `koanf:"backend" yaml:"backend"` // memory, badger
	Dir     string `koanf:"dir" yaml:"dir"`
	Encrypt bool   `koanf:"encrypt" yaml:"encrypt"`
	KeyFile string `koanf:"key_file" yaml:"key_file"`
}

// TLSConfig adds trust roots or a client certificate for https servers.
type TLSConfig struct {
	CAFile     string `koanf:"ca_file" yaml:"ca_file"`
	CertFile   string `koanf:"cert_file" yaml:"cert_file"`
	KeyFile    string `koanf:"key_file" yaml:"key_file"`
	ServerName string `koanf:"server_name" yaml:"server_name"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	home := DefaultDir()
	return &CLIConfig{
		Server:      "http://localhost:3000",
		Output:      OutputTable,
		Timeout:     "30s",
		RateLimit:   10,
		RateBurst:   5,
		HistoryFile: filepath.Join(home, "history"),
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Session: SessionConfig{
			Backend: BackendBadger,
			Dir:     filepath.Join(home, "session"),
			Encrypt: true,
			KeyFile: filepath.Join(home, "session.key"),
		},
	}
}

// DefaultDir returns $FRETEHUB_HOME, or ~/.fretehub.
func DefaultDir() string {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".fretehub")
}

// RequestTimeout returns Timeout parsed, or 0 when unset.
func (c *CLIConfig) RequestTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}
