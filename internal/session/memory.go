package session

import (
	"context"
	"sync"

	"github.com/maidacontrol/internal/constants"
)

// MemoryStore is a thread-safe in-memory key/value store
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates a new empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string]string),
	}
}

// Read returns the stored session fields.
func (m *MemoryStore) Read(_ context.Context) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return sessionFromValues(m.values), nil
}

// Write stores every non-empty field of s.
func (m *MemoryStore) Write(_ context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range s.values() {
		m.values[k] = v
	}
	return nil
}

// Get returns a raw stored value
func (m *MemoryStore) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

// Set stores a raw value
func (m *MemoryStore) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// Len returns the number of stored keys
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}

// values returns the non-empty fields keyed by their storage key
func (s Session) values() map[string]string {
	out := make(map[string]string, 3)
	if s.UserID != "" {
		out[constants.KeyUserID] = s.UserID
	}
	if s.OpenGameID != "" {
		out[constants.KeyOpenGameID] = s.OpenGameID
	}
	if s.SessionID != "" {
		out[constants.KeySessionID] = s.SessionID
	}
	return out
}

// sessionFromValues builds a session from raw storage, honouring the open_user_id alias
func sessionFromValues(values map[string]string) *Session {
	s := &Session{
		UserID:     values[constants.KeyUserID],
		OpenGameID: values[constants.KeyOpenGameID],
		SessionID:  values[constants.KeySessionID],
	}
	if s.OpenGameID == "" {
		s.OpenGameID = values[constants.KeyOpenUserID]
	}
	return s
}
