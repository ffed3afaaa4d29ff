// Package store keeps named strings between runs, like a browser's local
// storage. A missing key is a normal condition, not an error.
package store

import (
	"errors"
	"sync"
)

// ErrInvalidKey is returned for keys a store cannot hold.
var ErrInvalidKey = errors.New("invalid store key")

// Store is a key-value store of strings.
type Store interface {
	// Load returns the value saved under key. ok is false if nothing was saved.
	Load(key string) (value string, ok bool, err error)
	// Save replaces the value under key.
	Save(key, value string) error
}

// Compile-time checks that both stores satisfy Store.
var (
	_ Store = (*Memory)(nil)
	_ Store = (*Dir)(nil)
)

// Memory is a Store kept in process memory.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Load(key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrInvalidKey
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *Memory) Save(key, value string) error {
	if key == "" {
		return ErrInvalidKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
