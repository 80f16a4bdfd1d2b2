// Package token provides token generation and hashing utilities.
package token

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
)

// SecretLength is the default secret length in bytes.
const SecretLength = 32

// GenerateBytes generates random bytes.
func GenerateBytes(length int) ([]byte, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// GenerateSecret returns a SecretLength random secret, Base64 RawURL encoded
// so it can be written to a text file.
func GenerateSecret() (string, error) {
	b, err := GenerateBytes(SecretLength)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// DecodeSecret parses a secret produced by GenerateSecret. Surrounding
// whitespace is ignored.
func DecodeSecret(encoded string) ([]byte, error) {
	b, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, fmt.Errorf("decode secret: %w", err)
	}
	if len(b) < SecretLength {
		return nil, fmt.Errorf("decode secret: got %d bytes, want at least %d", len(b), SecretLength)
	}
	return b, nil
}
