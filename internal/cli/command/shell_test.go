package command

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestShell(t *testing.T) {
	env := newTestEnv(t)
	env.server.handle("/api/login", respond(http.StatusOK, loginSuccess("tok-0123456789abcdef", "ana@fretehub.com")))
	env.server.handle("/api/notifications", respond(http.StatusOK, map[string]any{
		"success": true,
		"data": []map[string]any{
			{"id": "n1", "title": "Carga entregue", "message": "Pedido 42", "timestamp": "2026-10-01T10:00:00Z"},
		},
	}))

	stdin := strings.Join([]string{
		"login --email ana@fretehub.com --password secret1",
		"whoami",
		"notifications",
		"system metrics",
		"logout",
		"whoami",
		"shell",
		"exit",
	}, "\n") + "\n"

	res := env.run(stdin, "shell", "--no-watch")
	if res.err != nil {
		t.Fatalf("err = %v\nstderr: %s", res.err, res.stderr)
	}

	for _, want := range []string{
		"fretehub> ",
		"fretehub(ana@fretehub.com)> ",
		"✓ Signed in",
		"Carga entregue",
		`fretehub_form_submissions_total{form="login",outcome="succeeded"} 1`,
		"fretehub_session_authenticated 1",
		"✓ Signed out",
		"Error: " + errNestedShell.Error(),
	} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("shell output missing %q:\n%s", want, res.stdout)
		}
	}
	if !strings.Contains(res.stdout, "not authenticated") {
		t.Errorf("whoami after logout should fail:\n%s", res.stdout)
	}
	if n := len(env.server.calls("/api/login")); n != 1 {
		t.Errorf("login calls = %d, want 1", n)
	}

	history, err := os.ReadFile(filepath.Join(env.home, "history"))
	if err != nil {
		t.Fatalf("history not saved: %v", err)
	}
	if !strings.Contains(string(history), "whoami\n") {
		t.Errorf("history = %q", history)
	}
	if strings.Contains(string(history), "secret1") {
		t.Error("history must not keep passwords")
	}
}

func TestShellPrompt(t *testing.T) {
	env := newTestEnv(t)
	env.server.handle("/api/login", respond(http.StatusOK, map[string]any{
		"success": true,
		"data":    map[string]any{"token": "T"},
	}))

	res := env.run("login --email ana@fretehub.com --password secret1\nexit\n", "shell", "--no-watch")
	if res.err != nil {
		t.Fatalf("err = %v", res.err)
	}
	if !strings.Contains(res.stdout, "fretehub*> ") {
		t.Errorf("prompt for a user without email:\n%s", res.stdout)
	}
}

func TestCommandPaths(t *testing.T) {
	paths := commandPaths(App().Commands, "")

	want := map[string]bool{
		"login":            false,
		"company register": false,
		"config set":       false,
		"system metrics":   false,
	}
	for _, p := range paths {
		if _, ok := want[p]; ok {
			want[p] = true
		}
	}
	for p, found := range want {
		if !found {
			t.Errorf("commandPaths missing %q", p)
		}
	}
}
