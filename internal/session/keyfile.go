package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fretehub/fretehub-go/pkg/crypto/adaptive"
	"github.com/fretehub/fretehub-go/pkg/token"
)

// keyInfo binds derived keys to their use.
var keyInfo = []byte("fretehub/session/v1")

// LoadOrCreateKey reads the secret in path, creating the file with a fresh
// random secret (mode 0600) if it does not exist, and returns the derived
// encryption key.
func LoadOrCreateKey(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return createKey(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}

	secret, err := token.DecodeSecret(string(data))
	if err != nil {
		return nil, fmt.Errorf("key file %s: %w", path, err)
	}
	return adaptive.DeriveKey(secret, nil, keyInfo)
}

func createKey(path string) ([]byte, error) {
	encoded, err := token.GenerateSecret()
	if err != nil {
		return nil, fmt.Errorf("generate secret: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create key dir: %w", err)
	}
	// O_EXCL: if another process created the file first, use theirs.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if errors.Is(err, fs.ErrExist) {
		return LoadOrCreateKey(path)
	}
	if err != nil {
		return nil, fmt.Errorf("create key file: %w", err)
	}
	if _, err := f.WriteString(encoded + "\n"); err != nil {
		f.Close()
		return nil, fmt.Errorf("write key file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close key file: %w", err)
	}

	secret, err := token.DecodeSecret(encoded)
	if err != nil {
		return nil, err
	}
	return adaptive.DeriveKey(secret, nil, keyInfo)
}

// NewCipherFromKeyFile returns the at-rest cipher keyed by the file at path.
func NewCipherFromKeyFile(path string) (adaptive.Cipher, error) {
	key, err := LoadOrCreateKey(path)
	if err != nil {
		return nil, err
	}
	return adaptive.New(key)
}
