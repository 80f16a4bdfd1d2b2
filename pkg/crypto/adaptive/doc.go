// Package adaptive provides at-rest encryption for locally persisted client
// state.
//
// A Cipher is created from a 32-byte key and picks its sealing algorithm
// from the host hardware:
//
//   - AES-256-GCM on amd64 and arm64 (hardware AES available)
//   - ChaCha20-Poly1305 everywhere else
//
// Every sealed value starts with a one-byte algorithm tag, so a value sealed
// with one algorithm can still be opened by a Cipher that prefers the other
// (for example after copying a session directory between machines).
//
// Keys are usually derived rather than used raw:
//
//	key, err := adaptive.DeriveKey(secret, salt, []byte("session"))
//	c, err := adaptive.New(key)
//	sealed, err := c.Encrypt(plaintext, []byte("token"))
//	plaintext, err := c.Decrypt(sealed, []byte("token"))
package adaptive
