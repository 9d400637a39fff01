package social

import (
	"errors"
	"fmt"
)

// ErrNotInitialized is returned by any orchestrator operation invoked
// before Initialize has run. It is a programmer error and fails the
// call synchronously; no event is published.
var ErrNotInitialized = errors.New("social: not initialized")

// ErrAlreadyInitialized is returned when Initialize runs twice.
// Re-initialization is a guarded no-op at the daemon level; the error
// exists so tests can assert the guard.
var ErrAlreadyInitialized = errors.New("social: already initialized")

// ErrEndOfResults is returned when a next-page query is issued after a
// page with hasMore=false. Restart with fromStart to query again.
var ErrEndOfResults = errors.New("social: end of results")

// ConfigurationError reports an operation requested for a provider
// with no bound implementation, or an invalid registry mutation. It is
// surfaced synchronously; no event is published.
type ConfigurationError struct {
	Provider ProviderID
	Reason   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("social: provider %s: %s", e.Provider, e.Reason)
}

// NewConfigurationError builds a ConfigurationError.
func NewConfigurationError(provider ProviderID, reason string) *ConfigurationError {
	return &ConfigurationError{Provider: provider, Reason: reason}
}

// IsConfigurationError reports whether err is a ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// DecodeError reports a malformed inbound boundary message. The single
// affected event is dropped; the bridge keeps processing.
type DecodeError struct {
	Kind  string // boundary event kind
	Field string // missing or malformed field
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("social: decode %s: missing or invalid field %q", e.Kind, e.Field)
}

// NewDecodeError builds a DecodeError for one bad field.
func NewDecodeError(kind, field string) *DecodeError {
	return &DecodeError{Kind: kind, Field: field}
}

// IsDecodeError reports whether err is a DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}
