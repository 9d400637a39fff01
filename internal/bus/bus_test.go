package bus

import (
	"sync"
	"testing"

	"github.com/NovaPlay-Games/social_bridge/internal/social"
)

func meta(p social.ProviderID, payload string) social.EventMeta {
	return social.EventMeta{Provider: p, Payload: payload}
}

func TestPublish_DeliversToAllSubscribers(t *testing.T) {
	b := New(16)

	var got1, got2 []social.Event
	b.Subscribe(func(e social.Event) { got1 = append(got1, e) })
	b.Subscribe(func(e social.Event) { got2 = append(got2, e) })

	b.Publish(social.LoginStarted{EventMeta: meta(social.ProviderFacebook, "p1")})

	if len(got1) != 1 || len(got2) != 1 {
		t.Fatalf("deliveries = (%d, %d), want (1, 1)", len(got1), len(got2))
	}
	if got1[0].Meta().Payload != "p1" {
		t.Errorf("payload = %q, want \"p1\"", got1[0].Meta().Payload)
	}
}

func TestUnsubscribe(t *testing.T) {
	b := New(16)

	var got int
	unsubscribe := b.Subscribe(func(social.Event) { got++ })

	b.Publish(social.LoginStarted{EventMeta: meta(social.ProviderFacebook, "")})
	unsubscribe()
	b.Publish(social.LoginFinished{EventMeta: meta(social.ProviderFacebook, "")})

	if got != 1 {
		t.Errorf("deliveries = %d, want 1", got)
	}
	if b.Subscribers() != 0 {
		t.Errorf("Subscribers() = %d, want 0", b.Subscribers())
	}
}

func TestSubscribeKind(t *testing.T) {
	b := New(16)

	var got []social.Event
	b.SubscribeKind(social.KindLoginFinished, func(e social.Event) { got = append(got, e) })

	b.Publish(social.LoginStarted{EventMeta: meta(social.ProviderFacebook, "")})
	b.Publish(social.LoginFinished{EventMeta: meta(social.ProviderFacebook, "")})
	b.Publish(social.LogoutFinished{EventMeta: meta(social.ProviderFacebook, "")})

	if len(got) != 1 {
		t.Fatalf("deliveries = %d, want 1", len(got))
	}
	if got[0].Kind() != social.KindLoginFinished {
		t.Errorf("kind = %q, want %q", got[0].Kind(), social.KindLoginFinished)
	}
}

func TestSubscribeProvider(t *testing.T) {
	b := New(16)

	var got int
	b.SubscribeProvider(social.ProviderGoogle, func(social.Event) { got++ })

	b.Publish(social.LoginStarted{EventMeta: meta(social.ProviderFacebook, "")})
	b.Publish(social.LoginStarted{EventMeta: meta(social.ProviderGoogle, "")})

	if got != 1 {
		t.Errorf("deliveries = %d, want 1", got)
	}
}

func TestUnsubscribeDuringPublish(t *testing.T) {
	// A handler may unsubscribe itself (or others) while a publish is
	// in flight; publish works on a snapshot.
	b := New(16)

	var unsubscribe func()
	var calls int
	unsubscribe = b.Subscribe(func(social.Event) {
		calls++
		unsubscribe()
	})

	b.Publish(social.LoginStarted{EventMeta: meta(social.ProviderFacebook, "")})
	b.Publish(social.LoginStarted{EventMeta: meta(social.ProviderFacebook, "")})

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRecent(t *testing.T) {
	b := New(4)

	b.Publish(social.LoginStarted{EventMeta: meta(social.ProviderFacebook, "a")})
	b.Publish(social.LoginFinished{EventMeta: meta(social.ProviderFacebook, "b")})

	recent := b.Recent(10)
	if len(recent) != 2 {
		t.Fatalf("len = %d, want 2", len(recent))
	}
	// Most recent first.
	if recent[0].Kind != social.KindLoginFinished {
		t.Errorf("recent[0].Kind = %q, want %q", recent[0].Kind, social.KindLoginFinished)
	}
	if recent[0].At.IsZero() {
		t.Error("At should be set")
	}
}

func TestRecent_Overflow(t *testing.T) {
	b := New(3)

	payloads := []string{"a", "b", "c", "d", "e"}
	for _, p := range payloads {
		b.Publish(social.LoginStarted{EventMeta: meta(social.ProviderFacebook, p)})
	}

	if b.Count() != 3 {
		t.Errorf("Count() = %d, want 3 (capped)", b.Count())
	}

	recent := b.Recent(3)
	if recent[0].Event.Meta().Payload != "e" {
		t.Errorf("most recent payload = %q, want \"e\"", recent[0].Event.Meta().Payload)
	}
	if recent[2].Event.Meta().Payload != "c" {
		t.Errorf("oldest retained payload = %q, want \"c\"", recent[2].Event.Meta().Payload)
	}
}

func TestRecentByProvider(t *testing.T) {
	b := New(16)

	b.Publish(social.LoginStarted{EventMeta: meta(social.ProviderFacebook, "")})
	b.Publish(social.LoginStarted{EventMeta: meta(social.ProviderGoogle, "")})
	b.Publish(social.LogoutStarted{EventMeta: meta(social.ProviderFacebook, "")})

	recent := b.RecentByProvider(social.ProviderFacebook, 10)
	if len(recent) != 2 {
		t.Fatalf("len = %d, want 2", len(recent))
	}
	for _, r := range recent {
		if r.Event.Meta().Provider != social.ProviderFacebook {
			t.Errorf("provider = %q, want facebook", r.Event.Meta().Provider)
		}
	}
}

func TestConcurrentPublishSubscribe(t *testing.T) {
	b := New(1024)

	var wg sync.WaitGroup
	var mu sync.Mutex
	received := 0

	b.Subscribe(func(social.Event) {
		mu.Lock()
		received++
		mu.Unlock()
	})

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				b.Publish(social.LoginStarted{EventMeta: meta(social.ProviderFacebook, "")})
			}
		}()
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				unsub := b.Subscribe(func(social.Event) {})
				_ = b.Recent(5)
				unsub()
			}
		}()
	}

	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if received != 800 {
		t.Errorf("received = %d, want 800", received)
	}
}
