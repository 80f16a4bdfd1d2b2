package form

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fretehub/fretehub-go/internal/core/domain"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

// ResponseMode selects how a response is interpreted.
type ResponseMode int

const (
	// ResponseEnvelope decodes {success, data, error, message} regardless of
	// the HTTP status.
	ResponseEnvelope ResponseMode = iota
	// ResponseStatus treats any 2xx as success and anything else as a
	// generic business failure.
	ResponseStatus
)

// envelope is the API response body shared by the account endpoints.
type envelope struct {
	Success bool            `json:"success"`
	Data    *envelopeData   `json:"data"`
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
}

type envelopeData struct {
	Token   string          `json:"token"`
	User    json.RawMessage `json:"user"`
	Company json.RawMessage `json:"company"`
	Meta    struct {
		RedirectTo string `json:"redirectTo"`
	} `json:"meta"`
}

// reply is a decoded response.
type reply struct {
	status  int
	success bool

	token    string
	user     json.RawMessage
	company  json.RawMessage
	redirect string

	fields  map[string]string
	message string
}

// readReply interprets resp according to mode. The returned error wraps
// domain.ErrUnexpectedResponse when the body cannot be understood.
func readReply(resp *http.Response, mode ResponseMode) (reply, error) {
	r := reply{status: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return r, domain.ErrRequestFailed.WithCause(err)
	}

	if mode == ResponseStatus {
		r.success = resp.StatusCode >= 200 && resp.StatusCode < 300
		return r, nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return r, domain.ErrUnexpectedResponse.
			WithDetails(fmt.Sprintf("status %d", resp.StatusCode)).
			WithCause(err)
	}

	r.success = env.Success
	r.message = strings.TrimSpace(env.Message)
	if env.Data != nil {
		r.token = env.Data.Token
		r.user = env.Data.User
		r.company = env.Data.Company
		r.redirect = strings.TrimSpace(env.Data.Meta.RedirectTo)
	}
	if !r.success {
		r.fields, r.message = decodeFieldErrors(env.Error, r.message)
	}
	return r, nil
}

// decodeFieldErrors reads the error member. An object maps field names to
// messages; non-string members are ignored. A bare string is used as the
// general message when the envelope carries none.
func decodeFieldErrors(raw json.RawMessage, message string) (map[string]string, string) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, message
	}

	switch raw[0] {
	case '{':
		var members map[string]json.RawMessage
		if err := json.Unmarshal(raw, &members); err != nil {
			return nil, message
		}
		out := make(map[string]string, len(members))
		for name, v := range members {
			var s string
			if err := json.Unmarshal(v, &s); err == nil {
				out[name] = strings.TrimSpace(s)
			}
		}
		return out, message
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && message == "" {
			message = strings.TrimSpace(s)
		}
	}
	return nil, message
}
