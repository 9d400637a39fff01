package social

import "testing"

func TestParseProviderID(t *testing.T) {
	tests := []struct {
		in      string
		want    ProviderID
		wantErr bool
	}{
		{"facebook", ProviderFacebook, false},
		{"FACEBOOK", ProviderFacebook, false},
		{" gamecenter ", ProviderGameCenter, false},
		{"google", ProviderGoogle, false},
		{"twitter", ProviderTwitter, false},
		{"myspace", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseProviderID(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseProviderID(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseProviderID(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseSocialActionType(t *testing.T) {
	if _, err := ParseSocialActionType("UPDATE_STATUS"); err != nil {
		t.Errorf("UPDATE_STATUS rejected: %v", err)
	}
	if _, err := ParseSocialActionType("update_story"); err != nil {
		t.Errorf("lowercase form rejected: %v", err)
	}
	if _, err := ParseSocialActionType("DELETE_STATUS"); err == nil {
		t.Error("unknown action accepted")
	}
}

func TestUserProfile_DisplayName(t *testing.T) {
	tests := []struct {
		name    string
		profile UserProfile
		want    string
	}{
		{"full name", UserProfile{FirstName: "Ada", LastName: "Lovelace"}, "Ada Lovelace"},
		{"first only", UserProfile{FirstName: "Ada"}, "Ada"},
		{"username fallback", UserProfile{Username: "ada42"}, "ada42"},
		{"id fallback", UserProfile{ProfileID: "u1"}, "u1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.profile.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEventKinds(t *testing.T) {
	// Spot-check that variants report the kind the bridge decode table
	// is keyed by.
	var e Event = LoginFinished{
		EventMeta: EventMeta{Provider: ProviderFacebook, Payload: "p1"},
		Profile:   UserProfile{ProfileID: "u1"},
	}
	if e.Kind() != KindLoginFinished {
		t.Errorf("Kind() = %q, want %q", e.Kind(), KindLoginFinished)
	}
	if e.Meta().Payload != "p1" {
		t.Errorf("Meta().Payload = %q, want \"p1\"", e.Meta().Payload)
	}

	var a Event = SocialActionCancelled{
		EventMeta: EventMeta{Provider: ProviderFacebook},
		Action:    ActionUpdateStory,
	}
	if a.Kind() != KindSocialActionCancelled {
		t.Errorf("Kind() = %q, want %q", a.Kind(), KindSocialActionCancelled)
	}
}
