package account

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/fretehub/fretehub-go/internal/cli/connection"
	"github.com/fretehub/fretehub-go/internal/core/domain"
)

// Getter performs authenticated GET requests. *connection.HTTPClient
// satisfies it.
type Getter interface {
	Get(ctx context.Context, path string, opts ...connection.RequestOption) (*http.Response, error)
}

// Notifications fetches the notification feed for the signed-in user.
// The server may answer with a bare array or with {success, data: [...]}.
func Notifications(ctx context.Context, client Getter, sess domain.Session) ([]domain.Notification, error) {
	if !sess.IsAuthenticated() {
		return nil, domain.ErrNotAuthenticated
	}

	resp, err := client.Get(ctx, NotificationsPath, connection.WithBearer(sess.Token))
	if err != nil {
		return nil, domain.ErrRequestFailed.WithCause(err)
	}

	var raw json.RawMessage
	if err := connection.ParseResponse(resp, &raw); err != nil {
		return nil, err
	}
	return decodeNotifications(raw)
}

func decodeNotifications(raw json.RawMessage) ([]domain.Notification, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '{' {
		var env struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, domain.ErrUnexpectedResponse.WithCause(err)
		}
		raw = bytes.TrimSpace(env.Data)
	}
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []domain.Notification{}, nil
	}

	var out []domain.Notification
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, domain.ErrUnexpectedResponse.WithCause(err)
	}
	return out, nil
}
