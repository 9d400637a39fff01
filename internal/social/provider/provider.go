// Package provider defines the capability contract every social
// backend implements, and the registry binding provider identities to
// implementations.
//
// Every network-touching method is fire-and-forget: it accepts
// continuations and returns immediately; the native call completes
// asynchronously and invokes exactly one of the supplied continuations
// exactly once. Precondition failures (operation while logged out,
// unsupported capability) surface through the failure continuation
// with a descriptive message, never as a panic or error return.
package provider

import (
	"github.com/NovaPlay-Games/social_bridge/internal/social"
)

// ResultCallbacks are the continuations of an operation with a plain
// success/failure outcome.
type ResultCallbacks struct {
	OnSuccess func()
	OnFailure func(message string)
}

// CancelableCallbacks extend ResultCallbacks with a cancellation path.
// Cancellation is reported by the native layer (user-initiated abort),
// never initiated by the core.
type CancelableCallbacks struct {
	OnSuccess func()
	OnFailure func(message string)
	OnCancel  func()
}

// LoginCallbacks are the continuations of a login attempt.
type LoginCallbacks struct {
	OnSuccess func(profile social.UserProfile)
	OnFailure func(message string)
	OnCancel  func()
}

// ContactsCallbacks deliver one page of contacts.
type ContactsCallbacks struct {
	OnSuccess func(contacts []social.UserProfile, hasMore bool)
	OnFailure func(message string)
}

// FeedCallbacks deliver one page of feed entries.
type FeedCallbacks struct {
	OnSuccess func(entries []social.FeedEntry, hasMore bool)
	OnFailure func(message string)
}

// InviteCallbacks deliver the outcome of a contact invitation.
type InviteCallbacks struct {
	OnSuccess func(requestID string, invited []string)
	OnFailure func(message string)
	OnCancel  func()
}

// LeaderboardsCallbacks deliver one page of leaderboards.
type LeaderboardsCallbacks struct {
	OnSuccess func(boards []social.Leaderboard, hasMore bool)
	OnFailure func(message string)
}

// ScoresCallbacks deliver one page of scores for a leaderboard.
type ScoresCallbacks struct {
	OnSuccess func(board social.Leaderboard, scores []social.Score, hasMore bool)
	OnFailure func(message string)
}

// ReportScoreCallbacks deliver the recorded score entry.
type ReportScoreCallbacks struct {
	OnSuccess func(score social.Score)
	OnFailure func(message string)
}

// Provider is the capability contract for one social-network backend.
type Provider interface {
	// ID returns the identity this implementation is bound to.
	ID() social.ProviderID

	// IsLoggedIn reports the cached login state synchronously, with
	// no network call and no side effects.
	IsLoggedIn() bool

	Login(cb LoginCallbacks)
	Logout(cb ResultCallbacks)

	UpdateStatus(status string, cb ResultCallbacks)
	UpdateStory(story social.Story, cb CancelableCallbacks)
	UploadImage(image social.Image, cb CancelableCallbacks)

	GetContacts(page int, cb ContactsCallbacks)
	GetFeed(page int, cb FeedCallbacks)
	Invite(invite social.Invite, cb InviteCallbacks)

	// Like is fire-and-forget with no outcome reported.
	Like(pageName string)

	GetLeaderboards(page int, cb LeaderboardsCallbacks)
	GetScores(leaderboardID string, page int, cb ScoresCallbacks)
	ReportScore(leaderboardID string, value int64, cb ReportScoreCallbacks)
}
