package command

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/fretehub/fretehub-go/internal/cli/config"
)

// mockServer creates a test HTTP server with custom handlers.
type mockServer struct {
	*httptest.Server

	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	requests []recordedRequest
}

type recordedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   map[string]any
}

// newMockServer creates a new mock server closed when the test ends.
func newMockServer(t *testing.T) *mockServer {
	t.Helper()
	m := &mockServer{
		handlers: make(map[string]http.HandlerFunc),
	}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)

		m.mu.Lock()
		m.requests = append(m.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Header: r.Header.Clone(),
			Body:   body,
		})
		handler, ok := m.handlers[r.URL.Path]
		m.mu.Unlock()

		if !ok {
			http.NotFound(w, r)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(m.Close)
	return m
}

// handle registers a handler for an exact path.
func (m *mockServer) handle(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// calls returns the requests received for path.
func (m *mockServer) calls(path string) []recordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []recordedRequest
	for _, r := range m.requests {
		if r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// jsonResponse writes a JSON response.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respond returns a handler writing a fixed JSON response.
func respond(status int, data any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		jsonResponse(w, status, data)
	}
}

func loginSuccess(token, email string) map[string]any {
	return map[string]any{
		"success": true,
		"data": map[string]any{
			"token":   token,
			"user":    map[string]any{"id": 7, "email": email},
			"company": map[string]any{"name": "Frete Rápido"},
		},
	}
}

// testEnv isolates the CLI's files in a temporary home.
type testEnv struct {
	home       string
	configPath string
	server     *mockServer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.HomeEnv, home)
	for _, name := range []string{"FRETEHUB_PASSWORD", "FRETEHUB_CONFIRM_PASSWORD", "FRETEHUB_SERVER", "FRETEHUB_OUTPUT"} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	return &testEnv{
		home:       home,
		configPath: filepath.Join(home, "cli.yaml"),
		server:     newMockServer(t),
	}
}

type runResult struct {
	stdout string
	stderr string
	err    error
}

// run executes the CLI with an in-memory session unless args choose
// another backend.
func (e *testEnv) run(stdin string, args ...string) runResult {
	var stdout, stderr bytes.Buffer

	app := App()
	app.Reader = strings.NewReader(stdin)
	app.Writer = &stdout
	app.ErrWriter = &stderr

	full := []string{"fretehub-cli",
		"--config", e.configPath,
		"--server", e.server.URL,
	}
	if !containsArg(args, "--session-backend") {
		full = append(full, "--session-backend", config.BackendMemory)
	}
	full = append(full, args...)

	err := app.RunContext(context.Background(), full)
	return runResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func containsArg(args []string, name string) bool {
	for _, a := range args {
		if a == name {
			return true
		}
	}
	return false
}
