package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/fretehub/fretehub-go/internal/core/domain"
	"github.com/fretehub/fretehub-go/internal/storage"
	"github.com/fretehub/fretehub-go/pkg/crypto/adaptive"
	"github.com/fretehub/fretehub-go/pkg/token"
)

// keyPrefix namespaces session keys inside the shared KV engine.
const keyPrefix = "session/"

// KVStorage stores session keys in the embedded KV engine.
//
// Keys live under session/<namespace>/<key>, where the namespace is derived
// from the API origin, so switching --server never leaks one server's
// session to another. With a cipher, every value is sealed with the key
// name as associated data; a value moved to another key fails to open.
type KVStorage struct {
	engine    storage.KVEngine
	namespace string
	cipher    adaptive.Cipher
}

var _ Storage = (*KVStorage)(nil)

// KVOption configures a KVStorage.
type KVOption func(*KVStorage)

// WithCipher encrypts values at rest.
func WithCipher(c adaptive.Cipher) KVOption {
	return func(s *KVStorage) {
		s.cipher = c
	}
}

// NewKVStorage creates a KVStorage for the given API origin.
func NewKVStorage(engine storage.KVEngine, origin string, opts ...KVOption) *KVStorage {
	s := &KVStorage{
		engine:    engine,
		namespace: token.Namespace(origin),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Namespace returns the origin namespace keys are stored under.
func (s *KVStorage) Namespace() string {
	return s.namespace
}

func (s *KVStorage) prefix() []byte {
	return []byte(keyPrefix + s.namespace + "/")
}

func (s *KVStorage) fullKey(key string) []byte {
	return append(s.prefix(), key...)
}

// Get implements Storage. A value that cannot be decrypted is reported as
// domain.ErrSessionMalformed.
func (s *KVStorage) Get(ctx context.Context, key string) (string, bool, error) {
	raw, err := s.engine.Get(ctx, s.fullKey(key))
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return "", false, nil
		}
		return "", false, domain.ErrStorageUnavailable.WithCause(err)
	}

	if s.cipher == nil {
		return string(raw), true, nil
	}

	plain, err := s.cipher.Decrypt(raw, []byte(key))
	if err != nil {
		return "", false, domain.ErrSessionMalformed.WithDetails(key).WithCause(err)
	}
	return string(plain), true, nil
}

// Set implements Storage.
func (s *KVStorage) Set(ctx context.Context, key, value string) error {
	data := []byte(value)
	if s.cipher != nil {
		sealed, err := s.cipher.Encrypt(data, []byte(key))
		if err != nil {
			return fmt.Errorf("encrypt %s: %w", key, err)
		}
		data = sealed
	}

	if err := s.engine.Set(ctx, s.fullKey(key), data); err != nil {
		return domain.ErrStorageUnavailable.WithCause(err)
	}
	return nil
}

// Remove implements Storage.
func (s *KVStorage) Remove(ctx context.Context, key string) error {
	if err := s.engine.Delete(ctx, s.fullKey(key)); err != nil {
		return domain.ErrStorageUnavailable.WithCause(err)
	}
	return nil
}

// Keys lists the session keys currently stored for this origin.
func (s *KVStorage) Keys(ctx context.Context) ([]string, error) {
	prefix := s.prefix()
	var keys []string
	err := s.engine.Scan(ctx, prefix, func(key, _ []byte) bool {
		keys = append(keys, string(key[len(prefix):]))
		return true
	})
	if err != nil {
		return nil, domain.ErrStorageUnavailable.WithCause(err)
	}
	return keys, nil
}
