package form

import (
	"fmt"
	"strings"
)

// User-facing messages set by the controller itself.
const (
	ConnectivityMessage       = "Could not reach the server. Check your connection and try again."
	UnexpectedResponseMessage = "Unexpected response from server. Please try again."
	DefaultRejectedMessage    = "The request could not be completed. Please review the form and try again."
)

// SuccessStrategy is what happens when the server accepts a submission.
type SuccessStrategy int

const (
	// SuccessRedirect only reports the navigation target.
	SuccessRedirect SuccessStrategy = iota
	// SuccessLogin establishes a session from the response data first.
	SuccessLogin
)

// Encoder builds the request body from the current values.
type Encoder func(Values) any

// Definition describes one form.
type Definition struct {
	// Name identifies the form in logs and metrics.
	Name string

	// Endpoint is the API path the form posts to.
	Endpoint string

	Fields []Field

	// Encode builds the request body. When nil the body is a JSON object
	// of every field not marked Omit.
	Encode Encoder

	Response ResponseMode
	Success  SuccessStrategy

	// DefaultRedirect is used when the server names no destination.
	DefaultRedirect string

	// RewriteGeneral replaces exact server messages before they are shown.
	RewriteGeneral map[string]string

	// RejectedMessage is the general message for failures that carry no
	// message of their own. DefaultRejectedMessage when empty.
	RejectedMessage string
}

// Validate checks the definition for programmer errors.
func (d Definition) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("form definition: name is required")
	}
	if !strings.HasPrefix(d.Endpoint, "/") {
		return fmt.Errorf("form %s: endpoint %q must be an absolute path", d.Name, d.Endpoint)
	}
	if len(d.Fields) == 0 {
		return fmt.Errorf("form %s: no fields", d.Name)
	}
	seen := make(map[string]bool, len(d.Fields))
	for _, f := range d.Fields {
		switch {
		case f.Name == "":
			return fmt.Errorf("form %s: field without name", d.Name)
		case f.Name == General:
			return fmt.Errorf("form %s: field name %q is reserved", d.Name, General)
		case seen[f.Name]:
			return fmt.Errorf("form %s: duplicate field %q", d.Name, f.Name)
		}
		seen[f.Name] = true
	}
	return nil
}

// Field returns the field named name.
func (d Definition) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Body encodes values with Encode, or the default encoding. The default
// encoding sends text values trimmed, as the rules checked them; secret
// values are sent as typed.
func (d Definition) Body(v Values) any {
	if d.Encode != nil {
		return d.Encode(v)
	}
	body := make(map[string]any, len(d.Fields))
	for _, f := range d.Fields {
		if f.Omit {
			continue
		}
		if f.Kind == KindText && !f.Secret {
			body[f.Name] = v.TrimmedText(f.Name)
			continue
		}
		body[f.Name] = v[f.Name]
	}
	return body
}

// rewrite applies RewriteGeneral to a server message.
func (d Definition) rewrite(msg string) string {
	if r, ok := d.RewriteGeneral[msg]; ok {
		return r
	}
	return msg
}

func (d Definition) rejectedMessage() string {
	if d.RejectedMessage != "" {
		return d.RejectedMessage
	}
	return DefaultRejectedMessage
}
