package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fretehub/fretehub-go/internal/core/domain"
	"github.com/fretehub/fretehub-go/internal/infra/confloader"
)

// DefaultConfigPath returns the default CLI config file path.
func DefaultConfigPath() string {
	return filepath.Join(DefaultDir(), "cli.yaml")
}

// Load loads CLI configuration from file, .env and FRETEHUB_* variables
// on top of the defaults, then applies flags. A missing file is not an
// error. Flag keys are dotted, e.g. "log.level".
func Load(path string, flags map[string]any) (*CLIConfig, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	l := confloader.NewLoader(
		confloader.WithOptionalConfigFile(path),
		confloader.WithDotEnv(".env"),
	)

	defaults, err := toMap(Default())
	if err != nil {
		return nil, err
	}
	if err := l.LoadMap(defaults); err != nil {
		return nil, err
	}

	cfg := &CLIConfig{}
	if err := l.Load(cfg); err != nil {
		return nil, err
	}

	if len(flags) > 0 {
		if err := l.LoadMap(flags); err != nil {
			return nil, err
		}
		if err := l.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("apply flags: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads the defaults overlaid with the file at path only, with
// no environment or flags. Editing commands use it so that overrides are
// not written back to the file.
func LoadFile(path string) (*CLIConfig, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	l := confloader.NewLoader()
	defaults, err := toMap(Default())
	if err != nil {
		return nil, err
	}
	if err := l.LoadMap(defaults); err != nil {
		return nil, err
	}
	if err := l.LoadFile(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg := &CLIConfig{}
	if err := l.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// Save saves CLI configuration to file with owner-only permissions.
func Save(cfg *CLIConfig, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".cli-*.yaml")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Set returns a copy of cfg with the dotted key set to value. The value
// is parsed as YAML, so "true", "5" and "2.5" keep their types.
func Set(cfg *CLIConfig, key, value string) (*CLIConfig, error) {
	l := confloader.NewLoader()
	current, err := toMap(cfg)
	if err != nil {
		return nil, err
	}
	if err := l.LoadMap(current); err != nil {
		return nil, err
	}

	key = strings.ToLower(strings.TrimSpace(key))
	if !slices.Contains(l.Keys(), key) {
		return nil, domain.ErrUnknownConfigKey.WithDetails(key)
	}

	var parsed any
	if err := yaml.Unmarshal([]byte(value), &parsed); err != nil || parsed == nil {
		parsed = value
	}
	if err := l.Set(key, parsed); err != nil {
		return nil, fmt.Errorf("set %s: %w", key, err)
	}

	out := &CLIConfig{}
	if err := l.Unmarshal(out); err != nil {
		return nil, domain.ErrInvalidConfig.WithDetails(key).WithCause(err)
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// Keys lists every settable dotted key in sorted order.
func Keys() []string {
	l := confloader.NewLoader()
	m, err := toMap(Default())
	if err != nil {
		return nil
	}
	if err := l.LoadMap(m); err != nil {
		return nil
	}
	keys := l.Keys()
	slices.Sort(keys)
	return keys
}

// Validate checks enumerations and formats.
func (c *CLIConfig) Validate() error {
	invalid := func(format string, args ...any) error {
		return domain.ErrInvalidConfig.WithDetails(fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(c.Server) == "" {
		return invalid("server is required")
	}
	switch c.Output {
	case OutputTable, OutputJSON, OutputYAML:
	default:
		return invalid("output %q: want table, json or yaml", c.Output)
	}
	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil || d < 0 {
			return invalid("timeout %q: want a duration such as 30s", c.Timeout)
		}
	}
	if c.RateLimit < 0 {
		return invalid("rate_limit must not be negative")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return invalid("log.level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return invalid("log.format %q: want text or json", c.Log.Format)
	}
	switch c.Session.Backend {
	case BackendMemory:
	case BackendBadger:
		if c.Session.Dir == "" {
			return invalid("session.dir is required for the badger backend")
		}
		if c.Session.Encrypt && c.Session.KeyFile == "" {
			return invalid("session.key_file is required when session.encrypt is on")
		}
	default:
		return invalid("session.backend %q: want memory or badger", c.Session.Backend)
	}
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		return invalid("tls.cert_file and tls.key_file must be set together")
	}
	return nil
}

// Watch reloads the configuration whenever the file at path changes and
// passes the result to onReload. The caller stops the returned watcher.
func Watch(path string, flags map[string]any, onReload func(*CLIConfig, error)) (*confloader.Watcher, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	w, err := confloader.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Watch(path); err != nil {
		w.Stop()
		return nil, err
	}
	w.OnChange(func(string) {
		onReload(Load(path, flags))
	})
	w.StartAsync()
	return w, nil
}

// toMap converts cfg to a nested map keyed like the YAML file.
func toMap(cfg *CLIConfig) (map[string]any, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return m, nil
}
