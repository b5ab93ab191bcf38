package oidc

import (
	"fmt"
	"sync"
)

// Storage is the narrow key-value interface the token store persists through.
// Implementations are scoped to one browsing session: values live for the
// life of one tab-equivalent and are never shared or durable. MemoryStorage
// is the in-process implementation; hosts embedding this library provide
// their own when a real session-scoped store exists.
type Storage interface {
	Set(key string, value string)
	Get(key string) (string, bool)
	Delete(key string)
}

// MemoryStorage is an in-process Storage. The zero value is not usable; use
// NewMemoryStorage.
type MemoryStorage struct {
	mu sync.Mutex
	m  map[string]string
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		m: map[string]string{},
	}
}

func (s *MemoryStorage) Set(key string, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
}

func (s *MemoryStorage) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	return v, ok
}

func (s *MemoryStorage) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
}

// TokenStore owns the single token for the session's lifetime, kept under one
// configured key of a Storage. It holds at most one token at a time: Save
// overwrites any existing value and Clear is idempotent. There are no
// transactional semantics; the last writer wins.
type TokenStore struct {
	key     string
	storage Storage
}

// NewTokenStore creates a TokenStore persisting through storage under key.
func NewTokenStore(storage Storage, key string) (*TokenStore, error) {
	const op = "oidc.NewTokenStore"
	if storage == nil {
		return nil, fmt.Errorf("%s: storage is nil: %w", op, ErrNilParameter)
	}
	if key == "" {
		return nil, fmt.Errorf("%s: storage key is empty: %w", op, ErrInvalidParameter)
	}
	return &TokenStore{
		key:     key,
		storage: storage,
	}, nil
}

// Save persists t, overwriting any existing token.
func (s *TokenStore) Save(t Token) {
	s.storage.Set(s.key, string(t))
}

// Load returns the stored token, or false when none (or an empty one) is
// present.
func (s *TokenStore) Load() (Token, bool) {
	v, ok := s.storage.Get(s.key)
	if !ok || v == "" {
		return "", false
	}
	return Token(v), true
}

// Clear removes the stored token. Clearing an empty store is a no-op.
func (s *TokenStore) Clear() {
	s.storage.Delete(s.key)
}
