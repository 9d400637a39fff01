package profilestore

import (
	"context"
	"sync"

	"github.com/NovaPlay-Games/social_bridge/internal/social"
)

// MemoryStore keeps profiles in process memory. It backs tests and
// deployments that accept losing the cache on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[social.ProviderID]social.UserProfile
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[social.ProviderID]social.UserProfile)}
}

// Save persists the profile under its provider id.
func (m *MemoryStore) Save(_ context.Context, profile social.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[profile.Provider] = profile
	return nil
}

// Load returns the cached profile for a provider.
func (m *MemoryStore) Load(_ context.Context, id social.ProviderID) (social.UserProfile, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[id]
	return p, ok, nil
}

// Delete removes the cached profile for a provider.
func (m *MemoryStore) Delete(_ context.Context, id social.ProviderID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.profiles, id)
	return nil
}
