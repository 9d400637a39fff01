package provider

import (
	"sort"
	"sync"

	"github.com/NovaPlay-Games/social_bridge/internal/social"
)

// Registry binds provider identities to implementations. It is
// populated once at process initialization and read-only afterward;
// the lock exists for the registration phase and for callers that
// probe it concurrently.
type Registry struct {
	mu       sync.RWMutex
	bindings map[social.ProviderID]Provider
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{bindings: make(map[social.ProviderID]Provider)}
}

// Register inserts a binding. Re-registration for an already-bound id
// is rejected: bindings live for the process lifetime and a silent
// overwrite would hide a wiring mistake.
func (r *Registry) Register(p Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := p.ID()
	if _, exists := r.bindings[id]; exists {
		return social.NewConfigurationError(id, "already registered")
	}
	r.bindings[id] = p
	return nil
}

// Resolve returns the provider bound to id, or a ConfigurationError
// when no implementation is bound.
func (r *Registry) Resolve(id social.ProviderID) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.bindings[id]
	if !ok {
		return nil, social.NewConfigurationError(id, "no such provider registered")
	}
	return p, nil
}

// List returns the bound identities in sorted order.
func (r *Registry) List() []social.ProviderID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]social.ProviderID, 0, len(r.bindings))
	for id := range r.bindings {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Count returns the number of bound providers.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bindings)
}
