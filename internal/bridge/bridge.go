// Package bridge decodes serialized event messages arriving from the
// native boundary into typed domain events and republishes them on the
// internal bus.
//
// Decoding is table-driven: each boundary event kind maps to a decode
// function that extracts required fields from the body and constructs
// the corresponding event. Decoding is fail-fast per message: a body
// missing a required field drops that one event and leaves the bridge
// able to process the next message. Unknown kinds are ignored for
// forward compatibility.
package bridge

import (
	"context"

	"github.com/tidwall/gjson"

	"github.com/NovaPlay-Games/social_bridge/internal/bus"
	"github.com/NovaPlay-Games/social_bridge/internal/metrics"
	"github.com/NovaPlay-Games/social_bridge/internal/payload"
	"github.com/NovaPlay-Games/social_bridge/internal/profilestore"
	"github.com/NovaPlay-Games/social_bridge/internal/reward"
	"github.com/NovaPlay-Games/social_bridge/internal/social"
	"github.com/NovaPlay-Games/social_bridge/pkg/logger"
)

// Pages supplies the page number of the caller's current query for one
// list family. The bridge itself never tracks cursor state.
type Pages interface {
	Current(id social.ProviderID, kind social.ListKind) int
}

// Config wires a Bridge.
type Config struct {
	Bus      *bus.Bus
	Rewards  *reward.Service // optional
	Profiles profilestore.Store
	Pages    Pages // optional
	Log      *logger.Logger
}

// Bridge receives boundary messages and republishes typed events.
type Bridge struct {
	bus      *bus.Bus
	rewards  *reward.Service
	profiles profilestore.Store
	pages    Pages
	log      *logger.Logger
}

// New creates a bridge. Bus is required.
func New(cfg Config) *Bridge {
	log := cfg.Log
	if log == nil {
		log = logger.NewDefault("bridge")
	}
	return &Bridge{
		bus:      cfg.Bus,
		rewards:  cfg.Rewards,
		profiles: cfg.Profiles,
		pages:    cfg.Pages,
		log:      log,
	}
}

// HandleMessage processes one boundary message. The returned error is
// a DecodeError when the message was dropped; unknown kinds return
// nil. Callers serialize invocations; the bridge never runs two
// decode/publish steps concurrently.
func (b *Bridge) HandleMessage(kind string, body []byte) error {
	entry, ok := decodeTable[social.EventKind(kind)]
	if !ok {
		b.log.Debug("ignoring unknown boundary event kind", "kind", kind)
		metrics.RecordBoundaryMessage("ignored")
		return nil
	}

	doc := gjson.ParseBytes(body)

	providerRaw, err := requireString(doc, kind, "provider")
	if err != nil {
		return b.drop(kind, err)
	}
	providerID, perr := social.ParseProviderID(providerRaw)
	if perr != nil {
		return b.drop(kind, social.NewDecodeError(kind, "provider"))
	}

	userPayload, rewardID := payload.Decode(doc.Get("payload").String())
	meta := social.EventMeta{Provider: providerID, Payload: userPayload}

	event, err := entry.decode(b, meta, doc)
	if err != nil {
		return b.drop(kind, err)
	}

	// Persistence side effects run before publish, so subscribers of
	// the published event observe an already-durable profile.
	b.applyProfileEffects(event)

	b.bus.Publish(event)
	metrics.RecordBoundaryMessage("decoded")
	metrics.RecordPublished(kind)

	if entry.finished && rewardID != "" && b.rewards != nil {
		if b.rewards.GrantByID(rewardID) {
			metrics.RecordRewardGranted()
		}
	}
	return nil
}

func (b *Bridge) drop(kind string, err error) error {
	b.log.Warn("dropping boundary message", "kind", kind, "error", err)
	metrics.RecordDecodeFailure(kind)
	return err
}

// applyProfileEffects keeps the profile cache in step with login
// lifecycle events that arrive over the boundary.
func (b *Bridge) applyProfileEffects(event social.Event) {
	if b.profiles == nil {
		return
	}

	switch e := event.(type) {
	case social.LoginFinished:
		if err := b.profiles.Save(context.Background(), e.Profile); err != nil {
			b.log.Error("persisting profile failed", "provider", e.Meta().Provider, "error", err)
		}
	case social.ProfileUpdated:
		if err := b.profiles.Save(context.Background(), e.Profile); err != nil {
			b.log.Error("persisting profile failed", "provider", e.Meta().Provider, "error", err)
		}
	case social.LogoutFinished:
		if err := b.profiles.Delete(context.Background(), e.Meta().Provider); err != nil {
			b.log.Error("deleting cached profile failed", "provider", e.Meta().Provider, "error", err)
		}
	}
}

// pageFor asks the caller-side pager for the current page of a list
// family; without one the page number is zero.
func (b *Bridge) pageFor(id social.ProviderID, kind social.ListKind) int {
	if b.pages == nil {
		return 0
	}
	return b.pages.Current(id, kind)
}
