package keystore

import (
	"errors"
	"sync"
)

// ErrNotFound is returned by a SecretStore when no secret exists under the
// requested slot. Callers treat it as "absent", not as a storage failure.
var ErrNotFound = errors.New("secret not found")

// Slot identifies the single durable secret held by a SecretStore. It is
// constant for the process lifetime.
type Slot struct {
	Service string
	Account string
}

// SecretStore is the external secure-storage collaborator. Implementations
// wrap a platform keystore (keychain, TPM, HSM) or an in-memory substitute for
// tests. A store holds at most one secret per slot; Put replaces any existing
// secret under the same slot.
type SecretStore interface {
	Put(slot Slot, secret []byte) error
	Get(slot Slot) ([]byte, error)
	Delete(slot Slot) error
}

// MemoryStore is an in-memory SecretStore for tests and development. It is
// safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	secrets map[Slot][]byte
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		secrets: make(map[Slot][]byte),
	}
}

// Put stores a secret under the slot, replacing any existing one.
func (s *MemoryStore) Put(slot Slot, secret []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]byte, len(secret))
	copy(cp, secret)
	s.secrets[slot] = cp
	return nil
}

// Get fetches the secret stored under the slot, or ErrNotFound.
func (s *MemoryStore) Get(slot Slot) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	secret, ok := s.secrets[slot]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(secret))
	copy(cp, secret)
	return cp, nil
}

// Delete removes the secret stored under the slot. Deleting an empty slot
// returns ErrNotFound.
func (s *MemoryStore) Delete(slot Slot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.secrets[slot]; !ok {
		return ErrNotFound
	}
	delete(s.secrets, slot)
	return nil
}
