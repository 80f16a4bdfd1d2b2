package account

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fretehub/fretehub-go/internal/cli/connection"
	"github.com/fretehub/fretehub-go/internal/core/domain"
)

func TestNotifications(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    int
		wantErr error
	}{
		{"array", 200, `[{"id":"1","title":"Frete","message":"Entregue","timestamp":"2024-05-01T10:00:00Z"}]`, 1, nil},
		{"envelope", 200, `{"success":true,"data":[{"id":"1"},{"id":"2"}]}`, 2, nil},
		{"empty envelope", 200, `{"success":true}`, 0, nil},
		{"null", 200, `null`, 0, nil},
		{"unauthorized", 401, `{"message":"expired"}`, 0, domain.ErrUnauthorized},
		{"server error", 500, ``, 0, domain.ErrRequestFailed},
		{"not json", 200, `<html>`, 0, domain.ErrUnexpectedResponse},
		{"wrong shape", 200, `{"data":{"id":"1"}}`, 0, domain.ErrUnexpectedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet || r.URL.Path != NotificationsPath {
					t.Errorf("request = %s %s", r.Method, r.URL.Path)
				}
				if r.Header.Get("Authorization") != "Bearer T" {
					t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			got, err := Notifications(context.Background(), connection.NewHTTPClient(server.URL), domain.Session{Token: "T"})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Notifications() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d notifications, want %d", len(got), tt.want)
			}
		})
	}
}

func TestNotifications_FieldsVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"n1","title":"Coleta","message":"Motorista a caminho","timestamp":"2024-05-01 10:00"}]`))
	}))
	defer server.Close()

	got, err := Notifications(context.Background(), connection.NewHTTPClient(server.URL), domain.Session{Token: "T"})
	if err != nil {
		t.Fatalf("Notifications() error = %v", err)
	}
	want := domain.Notification{ID: "n1", Title: "Coleta", Message: "Motorista a caminho", Timestamp: "2024-05-01 10:00"}
	if len(got) != 1 || got[0] != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestNotifications_RequiresSession(t *testing.T) {
	client := connection.NewHTTPClient("http://127.0.0.1:1")
	if _, err := Notifications(context.Background(), client, domain.Session{}); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Errorf("error = %v, want ErrNotAuthenticated", err)
	}
}
