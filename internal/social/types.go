// Package social defines the domain model shared by the provider
// registry, the operation orchestrator, and the event bridge: provider
// identities, user profiles, leaderboards, scores, paged results, and
// the typed domain events published on the bus.
package social

import (
	"fmt"
	"strings"
)

// ProviderID identifies one social-network backend. One implementation
// is bound per identity for the process lifetime.
type ProviderID string

const (
	ProviderFacebook   ProviderID = "facebook"
	ProviderGoogle     ProviderID = "google"
	ProviderGameCenter ProviderID = "gamecenter"
	ProviderTwitter    ProviderID = "twitter"
)

// ParseProviderID parses a provider identity from its wire form.
func ParseProviderID(s string) (ProviderID, error) {
	id := ProviderID(strings.ToLower(strings.TrimSpace(s)))
	switch id {
	case ProviderFacebook, ProviderGoogle, ProviderGameCenter, ProviderTwitter:
		return id, nil
	}
	return "", fmt.Errorf("unknown provider %q", s)
}

// String returns the wire form of the identity.
func (p ProviderID) String() string { return string(p) }

// TargetPlatform selects which provider backends are built for a
// deployment. Selection is explicit at wiring time; there is no
// compile-time platform branching.
type TargetPlatform string

const (
	PlatformIOS     TargetPlatform = "ios"
	PlatformAndroid TargetPlatform = "android"
	PlatformEditor  TargetPlatform = "editor"
)

// SocialActionType classifies the share-style social actions. It is
// carried on every started/finished/failed/cancelled event of that
// action family.
type SocialActionType string

const (
	ActionUpdateStatus SocialActionType = "UPDATE_STATUS"
	ActionUpdateStory  SocialActionType = "UPDATE_STORY"
	ActionUploadImage  SocialActionType = "UPLOAD_IMAGE"
)

// ParseSocialActionType parses an action type from its wire form.
func ParseSocialActionType(s string) (SocialActionType, error) {
	a := SocialActionType(strings.ToUpper(strings.TrimSpace(s)))
	switch a {
	case ActionUpdateStatus, ActionUpdateStory, ActionUploadImage:
		return a, nil
	}
	return "", fmt.Errorf("unknown social action type %q", s)
}

// UserProfile is the identity returned by a successful login. It is
// immutable once constructed; the core never mutates a profile after
// publishing it.
type UserProfile struct {
	Provider   ProviderID `json:"provider"`
	ProfileID  string     `json:"profileId"`
	Username   string     `json:"username,omitempty"`
	Email      string     `json:"email,omitempty"`
	FirstName  string     `json:"firstName,omitempty"`
	LastName   string     `json:"lastName,omitempty"`
	AvatarLink string     `json:"avatarLink,omitempty"`
}

// DisplayName returns the best human-readable name for the profile.
func (p UserProfile) DisplayName() string {
	if p.FirstName != "" || p.LastName != "" {
		return strings.TrimSpace(p.FirstName + " " + p.LastName)
	}
	if p.Username != "" {
		return p.Username
	}
	return p.ProfileID
}

// Leaderboard identifies one ranked board on a provider.
type Leaderboard struct {
	Provider ProviderID `json:"provider"`
	ID       string     `json:"id"`
	Name     string     `json:"name,omitempty"`
	IconURL  string     `json:"iconUrl,omitempty"`
}

// Score is one entry on a leaderboard.
type Score struct {
	Leaderboard Leaderboard `json:"leaderboard"`
	Player      UserProfile `json:"player"`
	Rank        int         `json:"rank"`
	Value       int64       `json:"value"`
}

// FeedEntry is one post retrieved from a provider feed.
type FeedEntry struct {
	Provider ProviderID `json:"provider"`
	ID       string     `json:"id"`
	Text     string     `json:"text"`
}

// Story bundles the arguments of a story post.
type Story struct {
	Message  string
	Title    string
	Caption  string
	Link     string
	ImageURL string
}

// Image bundles the arguments of an image upload. Bytes cross the
// native boundary as a raw buffer; everything else is text.
type Image struct {
	Bytes    []byte
	FileName string
	Message  string
}

// Invite bundles the arguments of a contact invitation.
type Invite struct {
	Message string
	Title   string
}
