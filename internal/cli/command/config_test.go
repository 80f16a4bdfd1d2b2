package command

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/fretehub/fretehub-go/internal/core/domain"
)

func TestConfigCommand(t *testing.T) {
	cmd := ConfigCommand()
	subNames := make(map[string]bool)
	for _, sub := range cmd.Subcommands {
		subNames[sub.Name] = true
	}
	for _, name := range []string{"show", "path", "set", "keys"} {
		if !subNames[name] {
			t.Errorf("missing subcommand: %s", name)
		}
	}
}

func TestConfigPath(t *testing.T) {
	env := newTestEnv(t)

	res := env.run("", "config", "path")
	if res.err != nil {
		t.Fatalf("err = %v", res.err)
	}
	if strings.TrimSpace(res.stdout) != env.configPath {
		t.Errorf("stdout = %q, want %q", res.stdout, env.configPath)
	}
}

func TestConfigSetAndShow(t *testing.T) {
	env := newTestEnv(t)

	res := env.run("", "config", "set", "output", "yaml")
	if res.err != nil {
		t.Fatalf("set err = %v", res.err)
	}

	info, err := os.Stat(env.configPath)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("mode = %o, want 600", info.Mode().Perm())
	}

	data, _ := os.ReadFile(env.configPath)
	if strings.Contains(string(data), env.server.URL) {
		t.Error("flag override was written to the file")
	}

	res = env.run("", "config", "show")
	if res.err != nil {
		t.Fatalf("show err = %v", res.err)
	}
	if !strings.Contains(res.stdout, "output: yaml") {
		t.Errorf("config show = %q", res.stdout)
	}
	if !strings.Contains(res.stdout, "server: "+env.server.URL) {
		t.Errorf("config show should include the flag override:\n%s", res.stdout)
	}
}

func TestConfigSet_Errors(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"unknown key", []string{"config", "set", "colour", "blue"}, domain.ErrUnknownConfigKey},
		{"invalid value", []string{"config", "set", "output", "xml"}, domain.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := env.run("", tt.args...)
			if !errors.Is(res.err, tt.want) {
				t.Errorf("err = %v, want %v", res.err, tt.want)
			}
		})
	}

	if res := env.run("", "config", "set", "output"); res.err == nil {
		t.Error("missing value should fail")
	}
	if _, err := os.Stat(env.configPath); !os.IsNotExist(err) {
		t.Error("failed set must not write the file")
	}
}

func TestConfigKeys(t *testing.T) {
	env := newTestEnv(t)

	res := env.run("", "config", "keys")
	if res.err != nil {
		t.Fatalf("err = %v", res.err)
	}
	for _, key := range []string{"server", "session.backend", "tls.ca_file"} {
		if !strings.Contains(res.stdout, key+"\n") {
			t.Errorf("keys missing %q", key)
		}
	}
}
