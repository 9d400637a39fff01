// Package payload encodes the opaque caller payload and an optional
// embedded reward identifier into the single transport string carried
// across the native boundary, and decodes it back.
//
// The daemon only decodes in production: envelopes are composed by the
// client SDK embedded in the native runtime, travel inside the
// boundary messages the runtime broadcasts, and are unwrapped by the
// bridge. Encode is the codec's outbound half, used by that SDK and by
// anything that fabricates boundary traffic, such as the loopback
// transport in tests. Operations invoked through the daemon's own
// HTTP surface carry payload and reward id as separate fields and
// never need the envelope.
//
// The envelope is best-effort metadata, never load-bearing: a
// malformed envelope decodes to an empty user payload and no reward id
// rather than failing the event that carries it.
package payload

import "encoding/json"

// Envelope is the wire form of the payload field on boundary messages.
type Envelope struct {
	UserPayload string `json:"userPayload"`
	RewardID    string `json:"rewardId,omitempty"`
}

// Encode packs a caller payload and optional reward id into one
// transport string.
func Encode(userPayload, rewardID string) string {
	data, err := json.Marshal(Envelope{UserPayload: userPayload, RewardID: rewardID})
	if err != nil {
		return "{}"
	}
	return string(data)
}

// Decode unpacks a transport string. Malformed input yields an empty
// payload and no reward id.
func Decode(s string) (userPayload, rewardID string) {
	var env Envelope
	if err := json.Unmarshal([]byte(s), &env); err != nil {
		return "", ""
	}
	return env.UserPayload, env.RewardID
}
