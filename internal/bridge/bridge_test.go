package bridge

import (
	"context"
	"fmt"
	"testing"

	"github.com/NovaPlay-Games/social_bridge/internal/bus"
	"github.com/NovaPlay-Games/social_bridge/internal/payload"
	"github.com/NovaPlay-Games/social_bridge/internal/profilestore"
	"github.com/NovaPlay-Games/social_bridge/internal/reward"
	"github.com/NovaPlay-Games/social_bridge/internal/social"
)

type granted struct {
	rewards []reward.Reward
}

func (g *granted) Grant(r reward.Reward) { g.rewards = append(g.rewards, r) }

type fixture struct {
	bridge   *Bridge
	bus      *bus.Bus
	profiles *profilestore.MemoryStore
	granted  *granted
	events   *[]social.Event
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	b := bus.New(64)
	profiles := profilestore.NewMemoryStore()
	g := &granted{}
	rewards := reward.NewService(
		reward.NewStaticResolver(reward.Reward{ID: "r1", Name: "coins", Amount: 10}),
		g, nil)

	var events []social.Event
	b.Subscribe(func(e social.Event) { events = append(events, e) })

	return &fixture{
		bridge: New(Config{
			Bus:      b,
			Rewards:  rewards,
			Profiles: profiles,
		}),
		bus:      b,
		profiles: profiles,
		granted:  g,
		events:   &events,
	}
}

func TestHandleMessage_LoginFinished(t *testing.T) {
	f := newFixture(t)

	env := payload.Encode("p1", "")
	body := fmt.Sprintf(`{
		"provider": "facebook",
		"userProfile": {"profileId": "u1", "username": "ada", "firstName": "Ada"},
		"payload": %q
	}`, env)

	if err := f.bridge.HandleMessage("onLoginFinished", []byte(body)); err != nil {
		t.Fatalf("HandleMessage() err = %v", err)
	}

	if len(*f.events) != 1 {
		t.Fatalf("published %d events, want 1", len(*f.events))
	}
	finished, ok := (*f.events)[0].(social.LoginFinished)
	if !ok {
		t.Fatalf("event type = %T, want LoginFinished", (*f.events)[0])
	}
	// Round-trip law: the payload equals the caller's, byte for byte.
	if finished.Meta().Payload != "p1" {
		t.Errorf("payload = %q, want \"p1\"", finished.Meta().Payload)
	}
	if finished.Profile.ProfileID != "u1" {
		t.Errorf("profile id = %q, want \"u1\"", finished.Profile.ProfileID)
	}

	// Profile is durable before any handler ran on the event.
	stored, ok, _ := f.profiles.Load(context.Background(), social.ProviderFacebook)
	if !ok || stored.ProfileID != "u1" {
		t.Errorf("stored profile = (%+v, %v), want u1", stored, ok)
	}
}

func TestHandleMessage_MissingRequiredFieldDropsOnlyThatEvent(t *testing.T) {
	f := newFixture(t)

	// onLoginFinished without userProfile is malformed.
	err := f.bridge.HandleMessage("onLoginFinished", []byte(`{"provider": "facebook"}`))
	if err == nil {
		t.Fatal("HandleMessage() err = nil, want DecodeError")
	}
	if !social.IsDecodeError(err) {
		t.Errorf("err = %T, want DecodeError", err)
	}
	if len(*f.events) != 0 {
		t.Fatalf("published %d events for dropped message, want 0", len(*f.events))
	}

	// The bridge processes the next well-formed message.
	good := `{"provider": "facebook", "userProfile": {"profileId": "u2"}}`
	if err := f.bridge.HandleMessage("onLoginFinished", []byte(good)); err != nil {
		t.Fatalf("HandleMessage() after drop err = %v", err)
	}
	if len(*f.events) != 1 {
		t.Errorf("published %d events, want 1", len(*f.events))
	}
}

func TestHandleMessage_UnknownKindIgnored(t *testing.T) {
	f := newFixture(t)

	if err := f.bridge.HandleMessage("onSomethingNew", []byte(`{}`)); err != nil {
		t.Errorf("unknown kind err = %v, want nil", err)
	}
	if len(*f.events) != 0 {
		t.Errorf("published %d events, want 0", len(*f.events))
	}
}

func TestHandleMessage_MissingProvider(t *testing.T) {
	f := newFixture(t)

	err := f.bridge.HandleMessage("onLoginStarted", []byte(`{}`))
	if !social.IsDecodeError(err) {
		t.Errorf("err = %v, want DecodeError", err)
	}

	err = f.bridge.HandleMessage("onLoginStarted", []byte(`{"provider": "friendster"}`))
	if !social.IsDecodeError(err) {
		t.Errorf("unknown provider err = %v, want DecodeError", err)
	}
}

func TestHandleMessage_RewardOnFinishedOnly(t *testing.T) {
	f := newFixture(t)
	env := payload.Encode("p1", "r1")

	// Failed event carries the reward id but must not grant.
	failed := fmt.Sprintf(`{"provider": "facebook", "message": "declined", "payload": %q}`, env)
	if err := f.bridge.HandleMessage("onLoginFailed", []byte(failed)); err != nil {
		t.Fatalf("HandleMessage(onLoginFailed) err = %v", err)
	}
	if len(f.granted.rewards) != 0 {
		t.Fatalf("reward granted on failed event")
	}

	// Cancelled must not grant either.
	cancelled := fmt.Sprintf(`{"provider": "facebook", "socialActionType": "UPDATE_STORY", "payload": %q}`, env)
	if err := f.bridge.HandleMessage("onSocialActionCancelled", []byte(cancelled)); err != nil {
		t.Fatalf("HandleMessage(onSocialActionCancelled) err = %v", err)
	}
	if len(f.granted.rewards) != 0 {
		t.Fatalf("reward granted on cancelled event")
	}

	// Finished grants exactly once.
	finished := fmt.Sprintf(`{"provider": "facebook", "socialActionType": "UPDATE_STORY", "payload": %q}`, env)
	if err := f.bridge.HandleMessage("onSocialActionFinished", []byte(finished)); err != nil {
		t.Fatalf("HandleMessage(onSocialActionFinished) err = %v", err)
	}
	if len(f.granted.rewards) != 1 {
		t.Errorf("granted %d rewards, want 1", len(f.granted.rewards))
	}
}

func TestHandleMessage_ScoresFinished(t *testing.T) {
	f := newFixture(t)

	scores := ""
	for i := 0; i < 20; i++ {
		if i > 0 {
			scores += ","
		}
		scores += fmt.Sprintf(`{"rank": %d, "value": %d}`, i+1, 1000-i)
	}
	body := fmt.Sprintf(`{
		"provider": "gamecenter",
		"leaderboard": {"id": "lb1", "name": "High Scores"},
		"scores": [%s],
		"hasMore": true
	}`, scores)

	if err := f.bridge.HandleMessage("onGetScoresFinished", []byte(body)); err != nil {
		t.Fatalf("HandleMessage() err = %v", err)
	}

	finished, ok := (*f.events)[0].(social.ScoresFinished)
	if !ok {
		t.Fatalf("event type = %T, want ScoresFinished", (*f.events)[0])
	}
	if len(finished.Page.Items) != 20 {
		t.Errorf("items = %d, want 20", len(finished.Page.Items))
	}
	if !finished.Page.HasMore {
		t.Error("HasMore = false, want true")
	}
	// Item order is preserved verbatim.
	if finished.Page.Items[0].Rank != 1 || finished.Page.Items[19].Rank != 20 {
		t.Errorf("rank order first/last = %d/%d, want 1/20",
			finished.Page.Items[0].Rank, finished.Page.Items[19].Rank)
	}
}

func TestHandleMessage_ContactsFinished_RequiresHasMore(t *testing.T) {
	f := newFixture(t)

	body := `{"provider": "facebook", "contacts": []}`
	err := f.bridge.HandleMessage("onGetContactsFinished", []byte(body))
	if !social.IsDecodeError(err) {
		t.Errorf("err = %v, want DecodeError for missing hasMore", err)
	}
}

func TestHandleMessage_EmptyPageMidSequence(t *testing.T) {
	f := newFixture(t)

	body := `{"provider": "facebook", "contacts": [], "hasMore": true}`
	if err := f.bridge.HandleMessage("onGetContactsFinished", []byte(body)); err != nil {
		t.Fatalf("HandleMessage() err = %v", err)
	}

	finished := (*f.events)[0].(social.ContactsFinished)
	if len(finished.Page.Items) != 0 || !finished.Page.HasMore {
		t.Errorf("page = %+v, want empty items with hasMore=true", finished.Page)
	}
}

func TestHandleMessage_LogoutFinishedClearsProfile(t *testing.T) {
	f := newFixture(t)

	_ = f.profiles.Save(context.Background(), social.UserProfile{
		Provider: social.ProviderFacebook, ProfileID: "u1",
	})

	body := `{"provider": "facebook"}`
	if err := f.bridge.HandleMessage("onLogoutFinished", []byte(body)); err != nil {
		t.Fatalf("HandleMessage() err = %v", err)
	}

	if _, ok, _ := f.profiles.Load(context.Background(), social.ProviderFacebook); ok {
		t.Error("profile survived logout")
	}
}

func TestHandleMessage_ProfileUpdated(t *testing.T) {
	f := newFixture(t)

	body := `{"provider": "google", "userProfile": {"profileId": "g9", "email": "g@example.com"}}`
	if err := f.bridge.HandleMessage("onUserProfileUpdated", []byte(body)); err != nil {
		t.Fatalf("HandleMessage() err = %v", err)
	}

	stored, ok, _ := f.profiles.Load(context.Background(), social.ProviderGoogle)
	if !ok || stored.Email != "g@example.com" {
		t.Errorf("stored = (%+v, %v)", stored, ok)
	}
}

type fixedPages struct{ page int }

func (p fixedPages) Current(social.ProviderID, social.ListKind) int { return p.page }

func TestHandleMessage_PageNumberFromQueryContext(t *testing.T) {
	b := bus.New(16)
	var events []social.Event
	b.Subscribe(func(e social.Event) { events = append(events, e) })

	br := New(Config{Bus: b, Pages: fixedPages{page: 3}})

	body := `{"provider": "facebook", "contacts": [{"profileId": "c1"}], "hasMore": false}`
	if err := br.HandleMessage("onGetContactsFinished", []byte(body)); err != nil {
		t.Fatalf("HandleMessage() err = %v", err)
	}

	finished := events[0].(social.ContactsFinished)
	if finished.Page.Page != 3 {
		t.Errorf("page = %d, want 3", finished.Page.Page)
	}
}

func TestHandleMessage_MalformedEnvelopeIsBestEffort(t *testing.T) {
	f := newFixture(t)

	// A garbage payload envelope must not fail the event.
	body := `{"provider": "facebook", "userProfile": {"profileId": "u1"}, "payload": "not json"}`
	if err := f.bridge.HandleMessage("onLoginFinished", []byte(body)); err != nil {
		t.Fatalf("HandleMessage() err = %v", err)
	}

	finished := (*f.events)[0].(social.LoginFinished)
	if finished.Meta().Payload != "" {
		t.Errorf("payload = %q, want empty default", finished.Meta().Payload)
	}
}
