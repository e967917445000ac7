package polynomial

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrNotFound is returned by a [Store] which does not hold the requested polynomial.
var ErrNotFound = errors.New("polynomial not found")

// Store persists built polynomials beyond the lifetime of a [Cache].
type Store interface {
	// Load returns the polynomial stored under key, or an error wrapping [ErrNotFound].
	Load(ctx context.Context, key Key) (*Polynomial, error)
	// Save stores the polynomial under key.
	Save(ctx context.Context, key Key, poly *Polynomial) error
	// Close releases the resources of the store.
	Close() error
}

// StoreKey returns the string under which a polynomial is stored.
func StoreKey(key Key) string {
	return fmt.Sprintf("liphe:poly:%d:%d:%d", key.RingSize, int(key.Relation), key.Threshold)
}

// MemoryStore implements an in-memory [Store] holding serialized polynomials.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Load(ctx context.Context, key Key) (*Polynomial, error) {
	s.mu.RLock()
	data, exists := s.data[StoreKey(key)]
	s.mu.RUnlock()

	if !exists {
		return nil, ErrNotFound
	}

	poly := new(Polynomial)
	if err := poly.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("unmarshal polynomial: %w", err)
	}

	return poly, nil
}

func (s *MemoryStore) Save(ctx context.Context, key Key, poly *Polynomial) error {
	data, err := poly.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshal polynomial: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return errors.New("store is closed")
	}

	s.data[StoreKey(key)] = data
	return nil
}

// Len returns the number of stored polynomials.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	return nil
}
