// Package adaptive provides adaptive encryption with automatic algorithm selection.
package adaptive

import (
	"errors"
	"runtime"
)

// KeySize is the required key length in bytes for every cipher.
const KeySize = 32

// CipherType identifies the cipher algorithm.
type CipherType string

const (
	CipherAESGCM   CipherType = "aes-gcm"
	CipherChaCha20 CipherType = "chacha20-poly1305"
)

// Errors returned by ciphers.
var (
	ErrInvalidKeySize     = errors.New("adaptive: key must be 32 bytes")
	ErrUnknownCipher      = errors.New("adaptive: unknown cipher type")
	ErrCiphertextTooShort = errors.New("adaptive: ciphertext too short")
	ErrAuthFailed         = errors.New("adaptive: message authentication failed")
)

// Cipher provides authenticated encryption.
type Cipher interface {
	// Type returns the algorithm used by Encrypt.
	Type() CipherType

	// Encrypt seals plaintext bound to additionalData.
	Encrypt(plaintext, additionalData []byte) ([]byte, error)

	// Decrypt opens a value produced by Encrypt of any Cipher sharing the key.
	Decrypt(ciphertext, additionalData []byte) ([]byte, error)

	// Overhead returns the number of bytes Encrypt adds to a plaintext.
	Overhead() int
}

// New creates a cipher with the given key, choosing the algorithm from
// the host architecture.
func New(key []byte) (Cipher, error) {
	if hasAESNI() {
		return NewWithType(key, CipherAESGCM)
	}
	return NewWithType(key, CipherChaCha20)
}

// NewWithType creates a cipher that seals with the given algorithm.
func NewWithType(key []byte, cipherType CipherType) (Cipher, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeySize
	}
	if _, ok := algorithmTags[cipherType]; !ok {
		return nil, ErrUnknownCipher
	}
	return newAEADCipher(key, cipherType)
}

// hasAESNI reports whether the Go runtime uses hardware AES on this
// architecture (AES-NI on amd64, crypto extensions on arm64).
func hasAESNI() bool {
	switch runtime.GOARCH {
	case "amd64", "arm64":
		return true
	default:
		return false
	}
}
