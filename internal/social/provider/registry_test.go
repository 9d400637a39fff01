package provider

import (
	"testing"

	"github.com/NovaPlay-Games/social_bridge/internal/social"
)

// stubProvider is the minimal Provider for registry tests.
type stubProvider struct {
	id social.ProviderID
}

func (s *stubProvider) ID() social.ProviderID { return s.id }
func (s *stubProvider) IsLoggedIn() bool      { return false }

func (s *stubProvider) Login(LoginCallbacks)                            {}
func (s *stubProvider) Logout(ResultCallbacks)                          {}
func (s *stubProvider) UpdateStatus(string, ResultCallbacks)            {}
func (s *stubProvider) UpdateStory(social.Story, CancelableCallbacks)   {}
func (s *stubProvider) UploadImage(social.Image, CancelableCallbacks)   {}
func (s *stubProvider) GetContacts(int, ContactsCallbacks)              {}
func (s *stubProvider) GetFeed(int, FeedCallbacks)                      {}
func (s *stubProvider) Invite(social.Invite, InviteCallbacks)           {}
func (s *stubProvider) Like(string)                                     {}
func (s *stubProvider) GetLeaderboards(int, LeaderboardsCallbacks)      {}
func (s *stubProvider) GetScores(string, int, ScoresCallbacks)          {}
func (s *stubProvider) ReportScore(string, int64, ReportScoreCallbacks) {}

func TestRegistry_RegisterResolve(t *testing.T) {
	r := NewRegistry()
	fb := &stubProvider{id: social.ProviderFacebook}

	if err := r.Register(fb); err != nil {
		t.Fatalf("Register() err = %v", err)
	}

	got, err := r.Resolve(social.ProviderFacebook)
	if err != nil {
		t.Fatalf("Resolve() err = %v", err)
	}
	if got != fb {
		t.Error("Resolve() returned a different provider")
	}
}

func TestRegistry_ResolveUnbound(t *testing.T) {
	r := NewRegistry()

	_, err := r.Resolve(social.ProviderGoogle)
	if err == nil {
		t.Fatal("Resolve() of unbound id should fail")
	}
	if !social.IsConfigurationError(err) {
		t.Errorf("err = %T, want ConfigurationError", err)
	}
}

func TestRegistry_DuplicateRejected(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(&stubProvider{id: social.ProviderFacebook}); err != nil {
		t.Fatalf("first Register() err = %v", err)
	}

	err := r.Register(&stubProvider{id: social.ProviderFacebook})
	if err == nil {
		t.Fatal("duplicate Register() should fail")
	}
	if !social.IsConfigurationError(err) {
		t.Errorf("err = %T, want ConfigurationError", err)
	}

	// The original binding survives.
	if r.Count() != 1 {
		t.Errorf("Count() = %d, want 1", r.Count())
	}
}

func TestRegistry_List(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(&stubProvider{id: social.ProviderGoogle})
	_ = r.Register(&stubProvider{id: social.ProviderFacebook})

	ids := r.List()
	if len(ids) != 2 {
		t.Fatalf("len = %d, want 2", len(ids))
	}
	if ids[0] != social.ProviderFacebook || ids[1] != social.ProviderGoogle {
		t.Errorf("List() = %v, want sorted [facebook google]", ids)
	}
}
