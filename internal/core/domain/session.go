// Package domain defines the core domain models for FreteHub.
package domain

import (
	"bytes"
	"encoding/json"
)

// Persisted session keys. The layout is shared by every storage backend.
const (
	KeyToken   = "token"
	KeyUser    = "user"
	KeyCompany = "company"
)

// SessionKeys lists every key written by a login, in write order.
var SessionKeys = []string{KeyToken, KeyUser, KeyCompany}

// Session is the authenticated identity of the current client.
//
// User and Company are opaque server-defined records kept as raw JSON.
// A nil record means absent.
type Session struct {
	Token   string          `json:"token,omitempty"`
	User    json.RawMessage `json:"user,omitempty"`
	Company json.RawMessage `json:"company,omitempty"`
}

// NewSession builds a session, normalizing JSON null records to absent.
func NewSession(token string, user, company json.RawMessage) Session {
	return Session{
		Token:   token,
		User:    normalizeRecord(user),
		Company: normalizeRecord(company),
	}
}

// IsAuthenticated reports whether a credential is present.
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}

// Clone returns a deep copy so callers can never alias store-owned buffers.
func (s Session) Clone() Session {
	return Session{
		Token:   s.Token,
		User:    cloneRaw(s.User),
		Company: cloneRaw(s.Company),
	}
}

// Equal reports whether two sessions carry the same credential and records.
func (s Session) Equal(o Session) bool {
	return s.Token == o.Token &&
		bytes.Equal(s.User, o.User) &&
		bytes.Equal(s.Company, o.Company)
}

// DecodeUser unmarshals the opaque user record into v.
// It is a no-op when the record is absent.
func (s Session) DecodeUser(v any) error {
	if len(s.User) == 0 {
		return nil
	}
	return json.Unmarshal(s.User, v)
}

// DecodeCompany unmarshals the opaque company record into v.
func (s Session) DecodeCompany(v any) error {
	if len(s.Company) == 0 {
		return nil
	}
	return json.Unmarshal(s.Company, v)
}

func normalizeRecord(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	return cloneRaw(trimmed)
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	out := make(json.RawMessage, len(raw))
	copy(out, raw)
	return out
}
