package state

import (
	"strings"
	"sync"
	"time"
)

// Persisted state keys.
const (
	KeySessionToken = "session_token"
	KeyLegacyToken  = "token"
	KeyFingerprint  = "fingerprint"
)

// PersistedState is the key/value store that outlives one request. In the
// browser it is backed by cookies.
type PersistedState interface {
	Get(key string) (string, bool)
	Set(key string, value string, maxAge time.Duration)
	Clear(key string)
}

// Memory is an in-process PersistedState.
type Memory struct {
	mu      sync.Mutex
	values  map[string]string
	maxAges map[string]time.Duration
}

// NewMemory returns an empty in-process state seeded with values.
func NewMemory(values map[string]string) *Memory {
	m := &Memory{values: make(map[string]string), maxAges: make(map[string]time.Duration)}
	for key, value := range values {
		m.values[key] = value
	}
	return m
}

// Get returns a stored value.
func (m *Memory) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.values[key]
	return value, ok
}

// Set stores a value; a blank value clears the key.
func (m *Memory) Set(key string, value string, maxAge time.Duration) {
	if strings.TrimSpace(value) == "" {
		m.Clear(key)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = strings.TrimSpace(value)
	m.maxAges[key] = maxAge
}

// Clear removes a key.
func (m *Memory) Clear(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	delete(m.maxAges, key)
}

// MaxAge reports the lifetime the key was last stored with.
func (m *Memory) MaxAge(key string) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxAges[key]
}
