// Package profilestore persists the cached user profile per provider.
// The orchestrator saves a profile before publishing the login
// finished event, so every handler of that event observes an already
// durable profile, and deletes it when a logout completes.
package profilestore

import (
	"context"

	"github.com/NovaPlay-Games/social_bridge/internal/social"
)

// Store is the profile persistence contract. One profile is kept per
// provider; the core never inspects the storage format.
type Store interface {
	// Save persists the profile under its provider id, replacing any
	// previous one.
	Save(ctx context.Context, profile social.UserProfile) error

	// Load returns the cached profile for a provider. The boolean
	// reports whether one was found.
	Load(ctx context.Context, id social.ProviderID) (social.UserProfile, bool, error)

	// Delete removes the cached profile for a provider. Deleting an
	// absent profile is not an error.
	Delete(ctx context.Context, id social.ProviderID) error
}
