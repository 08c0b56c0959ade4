// Package kv provides key-value substrates for persisted records besides
// the sqlite database.
package kv

import (
	"context"
	"sort"
)

// Memory is a process-local store. Nothing survives a restart.
type Memory struct {
	data map[string]string
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// Get retrieves a value by key
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

// Set stores a value
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.data[key] = value
	return nil
}

// Delete removes a key
func (m *Memory) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

// Keys lists stored keys in sorted order
func (m *Memory) Keys(_ context.Context) ([]string, error) {
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close is a no-op
func (m *Memory) Close() error {
	return nil
}
