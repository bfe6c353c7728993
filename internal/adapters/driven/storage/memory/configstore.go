// Package memory provides in-process implementations of driven ports,
// used by tests and by commands that run without a config directory.
package memory

import (
	"maps"
	"sync"

	"github.com/kmikayilov/permeability-measurement-app/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore is an in-memory implementation of driven.ConfigStore.
// Values keep the dynamic types a decoded TOML document would produce
// (int64, float64, []any), so settings code sees the same shapes as in
// production.
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewConfigStore creates a new in-memory config store.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{
		values: make(map[string]any),
	}
}

// NewConfigStoreWith creates a store seeded with dot-notation values.
func NewConfigStoreWith(values map[string]any) *ConfigStore {
	s := NewConfigStore()
	maps.Copy(s.values, values)
	return s
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) string {
	str, _ := lookup[string](s, key)
	return str
}

// GetInt retrieves an integer configuration value. Floats are truncated.
func (s *ConfigStore) GetInt(key string) int {
	n, _ := s.number(key)
	return int(n)
}

// GetFloat retrieves a floating-point configuration value.
func (s *ConfigStore) GetFloat(key string) float64 {
	n, _ := s.number(key)
	return n
}

// GetBool retrieves a boolean configuration value.
func (s *ConfigStore) GetBool(key string) bool {
	b, _ := lookup[bool](s, key)
	return b
}

// GetStringSlice retrieves a string slice configuration value.
// Non-string elements of a decoded array are skipped.
func (s *ConfigStore) GetStringSlice(key string) []string {
	if list, ok := lookup[[]string](s, key); ok {
		return list
	}
	raw, ok := lookup[[]any](s, key)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if str, ok := item.(string); ok {
			out = append(out, str)
		}
	}
	return out
}

// Set stores a configuration value.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Save is a no-op for the memory store.
func (s *ConfigStore) Save() error {
	return nil
}

// Load is a no-op for the memory store.
func (s *ConfigStore) Load() error {
	return nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return ":memory:"
}

// Snapshot returns a copy of every stored value.
func (s *ConfigStore) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.values)
}

func (s *ConfigStore) number(key string) (float64, bool) {
	val, ok := s.Get(key)
	if !ok {
		return 0, false
	}
	switch v := val.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

func lookup[T any](s *ConfigStore, key string) (T, bool) {
	val, ok := s.Get(key)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := val.(T)
	return t, ok
}
