package adaptive

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// Sealed layout: tag(1) | nonce | ciphertext+auth tag.
var algorithmTags = map[CipherType]byte{
	CipherAESGCM:   0x01,
	CipherChaCha20: 0x02,
}

type aeadCipher struct {
	sealWith CipherType
	aeads    map[byte]cipher.AEAD
}

func newAEADCipher(key []byte, sealWith CipherType) (*aeadCipher, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("adaptive: aes: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("adaptive: gcm: %w", err)
	}
	chacha, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("adaptive: chacha20: %w", err)
	}

	return &aeadCipher{
		sealWith: sealWith,
		aeads: map[byte]cipher.AEAD{
			algorithmTags[CipherAESGCM]:   gcm,
			algorithmTags[CipherChaCha20]: chacha,
		},
	}, nil
}

func (c *aeadCipher) Type() CipherType {
	return c.sealWith
}

func (c *aeadCipher) Overhead() int {
	aead := c.aeads[algorithmTags[c.sealWith]]
	return 1 + aead.NonceSize() + aead.Overhead()
}

func (c *aeadCipher) Encrypt(plaintext, additionalData []byte) ([]byte, error) {
	tag := algorithmTags[c.sealWith]
	aead := c.aeads[tag]

	out := make([]byte, 1+aead.NonceSize(), 1+aead.NonceSize()+len(plaintext)+aead.Overhead())
	out[0] = tag
	nonce := out[1:]
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("adaptive: nonce: %w", err)
	}

	return aead.Seal(out, nonce, plaintext, additionalData), nil
}

func (c *aeadCipher) Decrypt(ciphertext, additionalData []byte) ([]byte, error) {
	if len(ciphertext) < 1 {
		return nil, ErrCiphertextTooShort
	}
	aead, ok := c.aeads[ciphertext[0]]
	if !ok {
		return nil, ErrUnknownCipher
	}
	body := ciphertext[1:]
	if len(body) < aead.NonceSize()+aead.Overhead() {
		return nil, ErrCiphertextTooShort
	}

	nonce, sealed := body[:aead.NonceSize()], body[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, sealed, additionalData)
	if err != nil {
		return nil, ErrAuthFailed
	}
	return plaintext, nil
}
