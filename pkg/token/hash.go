// Package token provides token generation and hashing utilities.
package token

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
)

// Hash computes the hex encoded SHA-256 hash of s.
func Hash(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

// Namespace returns a short stable identifier for an API origin.
//
// Scheme and host are lower-cased and a trailing slash or path is ignored,
// so "https://API.example.com/" and "https://api.example.com" share a
// namespace.
func Namespace(origin string) string {
	return Hash(normalizeOrigin(origin))[:16]
}

func normalizeOrigin(origin string) string {
	origin = strings.TrimSpace(origin)
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return strings.ToLower(strings.TrimRight(origin, "/"))
	}
	return strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host)
}

// Fingerprint returns a short hash of a token, safe to print or log.
// The empty token has the empty fingerprint.
func Fingerprint(tok string) string {
	if tok == "" {
		return ""
	}
	return Hash(tok)[:12]
}

// Mask hides all but the first and last four characters of a token.
// Tokens of twelve characters or fewer are fully masked.
func Mask(tok string) string {
	if tok == "" {
		return ""
	}
	if len(tok) <= 12 {
		return strings.Repeat("*", len(tok))
	}
	return tok[:4] + strings.Repeat("*", len(tok)-8) + tok[len(tok)-4:]
}
