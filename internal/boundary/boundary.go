// Package boundary carries messages between the core and the native
// runtime that actually talks to the social backends.
//
// Traffic flows in two shapes. Commands originate here: a command
// frame carries a correlation id, and the runtime answers with a
// reply frame bearing the same id. Broadcast events originate on the
// runtime side with no correlation id and are handed to an EventSink,
// normally the bridge. All inbound frames are dispatched from a single
// goroutine, so sink invocations and reply continuations never run
// concurrently with each other.
package boundary

import (
	"encoding/json"
	"errors"
)

// Message is the wire frame. Frames with an ID are command replies;
// frames without one are broadcast events.
type Message struct {
	Kind string          `json:"kind"`
	ID   string          `json:"id,omitempty"`
	Body json.RawMessage `json:"body,omitempty"`
}

// ReplyFunc receives the body of a command reply, or an error when the
// command could not complete.
type ReplyFunc func(body []byte, err error)

// EventSink consumes broadcast event frames.
type EventSink interface {
	HandleMessage(kind string, body []byte) error
}

// Caller sends commands to the native runtime.
type Caller interface {
	// Call sends a command and registers reply to receive the
	// correlated response. Reply runs on the dispatch goroutine.
	Call(kind string, body any, reply ReplyFunc) error

	// Notify sends a fire-and-forget command with no reply.
	Notify(kind string, body any) error
}

// ErrNotConnected is returned by Call and Notify when no runtime
// session is attached.
var ErrNotConnected = errors.New("boundary: no runtime session connected")

// ErrClosed is delivered to pending replies when the transport shuts
// down before their responses arrive.
var ErrClosed = errors.New("boundary: transport closed")

func encodeBody(body any) (json.RawMessage, error) {
	if body == nil {
		return nil, nil
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	return raw, nil
}
