// Package bus provides the internal multicast bus that domain events
// are published on. Subscribers register handlers and receive every
// event published after registration; publish takes a snapshot of the
// current subscriber set, so subscription and unsubscription are safe
// while an event is mid-publish.
//
// The bus also keeps a bounded ring of recent events for the admin
// API's observability surface.
package bus

import (
	"sync"
	"time"

	"github.com/NovaPlay-Games/social_bridge/internal/social"
)

// Handler processes one published event.
type Handler func(social.Event)

// Filter decides whether a handler sees an event.
type Filter func(social.Event) bool

// Record is one retained event with its publish time, for the
// recent-events view.
type Record struct {
	Event social.Event     `json:"event"`
	Kind  social.EventKind `json:"kind"`
	At    time.Time        `json:"at"`
}

type handlerEntry struct {
	id      int64
	filter  Filter
	handler Handler
}

// Bus is a thread-safe multicast event bus with a bounded ring of
// recent events.
type Bus struct {
	mu       sync.RWMutex
	records  []Record
	size     int
	head     int
	count    int
	handlers []handlerEntry
	nextID   int64
}

// New creates a bus retaining up to size recent events.
func New(size int) *Bus {
	if size <= 0 {
		size = 256
	}
	return &Bus{
		records: make([]Record, size),
		size:    size,
	}
}

// Publish delivers an event to every matching subscriber and retains
// it in the recent ring. Handlers run synchronously in publish order,
// outside the bus lock.
func (b *Bus) Publish(e social.Event) {
	b.mu.Lock()
	b.records[b.head] = Record{Event: e, Kind: e.Kind(), At: time.Now().UTC()}
	b.head = (b.head + 1) % b.size
	if b.count < b.size {
		b.count++
	}

	handlers := make([]handlerEntry, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.Unlock()

	for _, h := range handlers {
		if h.filter == nil || h.filter(e) {
			h.handler(e)
		}
	}
}

// Subscribe registers a handler for all events. The returned closure
// removes the registration.
func (b *Bus) Subscribe(handler Handler) func() {
	return b.SubscribeFiltered(nil, handler)
}

// SubscribeKind registers a handler for one event kind.
func (b *Bus) SubscribeKind(kind social.EventKind, handler Handler) func() {
	return b.SubscribeFiltered(func(e social.Event) bool {
		return e.Kind() == kind
	}, handler)
}

// SubscribeProvider registers a handler for one provider's events.
func (b *Bus) SubscribeProvider(id social.ProviderID, handler Handler) func() {
	return b.SubscribeFiltered(func(e social.Event) bool {
		return e.Meta().Provider == id
	}, handler)
}

// SubscribeFiltered registers a handler behind a filter.
func (b *Bus) SubscribeFiltered(filter Filter, handler Handler) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.handlers = append(b.handlers, handlerEntry{id: id, filter: filter, handler: handler})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, h := range b.handlers {
			if h.id == id {
				b.handlers = append(b.handlers[:i], b.handlers[i+1:]...)
				return
			}
		}
	}
}

// Recent returns up to n retained events, most recent first.
func (b *Bus) Recent(n int) []Record {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if n <= 0 || b.count == 0 {
		return nil
	}
	if n > b.count {
		n = b.count
	}

	out := make([]Record, n)
	for i := 0; i < n; i++ {
		idx := (b.head - 1 - i + b.size) % b.size
		out[i] = b.records[idx]
	}
	return out
}

// RecentByProvider returns up to n retained events for one provider,
// most recent first.
func (b *Bus) RecentByProvider(id social.ProviderID, n int) []Record {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if n <= 0 || b.count == 0 {
		return nil
	}

	var out []Record
	for i := 0; i < b.count && len(out) < n; i++ {
		idx := (b.head - 1 - i + b.size) % b.size
		if b.records[idx].Event.Meta().Provider == id {
			out = append(out, b.records[idx])
		}
	}
	return out
}

// Count returns the number of retained events.
func (b *Bus) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.count
}

// Subscribers returns the current number of registrations.
func (b *Bus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers)
}
