// Package orchestrator drives social operations end to end: it
// resolves the target provider, publishes the started event, invokes
// the provider with continuations, and publishes exactly one terminal
// event per operation. It also owns the page cursors for the list
// operations and the reward grant that follows a finished outcome.
package orchestrator

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/time/rate"

	"github.com/NovaPlay-Games/social_bridge/internal/bus"
	"github.com/NovaPlay-Games/social_bridge/internal/metrics"
	"github.com/NovaPlay-Games/social_bridge/internal/profilestore"
	"github.com/NovaPlay-Games/social_bridge/internal/reward"
	"github.com/NovaPlay-Games/social_bridge/internal/social"
	"github.com/NovaPlay-Games/social_bridge/internal/social/provider"
	"github.com/NovaPlay-Games/social_bridge/pkg/logger"
)

// ErrLikeThrottled is returned when page likes exceed the configured
// rate.
var ErrLikeThrottled = errors.New("like rate limit exceeded")

// Config wires an Orchestrator.
type Config struct {
	Bus      *bus.Bus
	Profiles profilestore.Store
	Rewards  *reward.Service // optional
	Log      *logger.Logger

	// LikeLimit caps fire-and-forget page likes. Zero means the
	// default of 5 per second with a burst of 5.
	LikeLimit rate.Limit
	LikeBurst int
}

type pagerKey struct {
	id   social.ProviderID
	kind social.ListKind
}

// Orchestrator runs operations against registered providers.
type Orchestrator struct {
	bus      *bus.Bus
	profiles profilestore.Store
	rewards  *reward.Service
	log      *logger.Logger
	likes    *rate.Limiter

	mu          sync.Mutex
	initialized bool
	registry    *provider.Registry
	pagers      map[pagerKey]*social.Pager
}

// New creates an uninitialized orchestrator. Operations return
// ErrNotInitialized until Initialize succeeds.
func New(cfg Config) *Orchestrator {
	log := cfg.Log
	if log == nil {
		log = logger.NewDefault("orchestrator")
	}
	limit := cfg.LikeLimit
	burst := cfg.LikeBurst
	if limit == 0 {
		limit = rate.Limit(5)
	}
	if burst == 0 {
		burst = 5
	}
	return &Orchestrator{
		bus:      cfg.Bus,
		profiles: cfg.Profiles,
		rewards:  cfg.Rewards,
		log:      log,
		likes:    rate.NewLimiter(limit, burst),
		registry: provider.NewRegistry(),
		pagers:   make(map[pagerKey]*social.Pager),
	}
}

// Initialize binds the given providers and arms the orchestrator. It
// succeeds at most once; a second call returns ErrAlreadyInitialized
// and changes nothing.
func (o *Orchestrator) Initialize(providers ...provider.Provider) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.initialized {
		return social.ErrAlreadyInitialized
	}
	for _, p := range providers {
		if err := o.registry.Register(p); err != nil {
			return err
		}
	}
	o.initialized = true
	o.log.Info("orchestrator initialized", "providers", o.registry.Count())
	return nil
}

// Providers lists the registered provider identities.
func (o *Orchestrator) Providers() []social.ProviderID {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.initialized {
		return nil
	}
	return o.registry.List()
}

// resolve returns the provider bound to id, guarded by the
// initialization state. Resolution failures publish nothing.
func (o *Orchestrator) resolve(id social.ProviderID) (provider.Provider, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.initialized {
		return nil, social.ErrNotInitialized
	}
	return o.registry.Resolve(id)
}

// IsLoggedIn reports the cached login state for id. No events are
// published and nothing crosses the boundary.
func (o *Orchestrator) IsLoggedIn(id social.ProviderID) (bool, error) {
	p, err := o.resolve(id)
	if err != nil {
		return false, err
	}
	return p.IsLoggedIn(), nil
}

// StoredProfile loads the persisted profile for id, if any.
func (o *Orchestrator) StoredProfile(ctx context.Context, id social.ProviderID) (social.UserProfile, bool, error) {
	o.mu.Lock()
	initialized := o.initialized
	o.mu.Unlock()
	if !initialized {
		return social.UserProfile{}, false, social.ErrNotInitialized
	}
	return o.profiles.Load(ctx, id)
}

// terminal builds the exactly-once guard for one operation's terminal
// event. Whichever continuation fires first wins; later calls are
// ignored.
func (o *Orchestrator) terminal(id social.ProviderID, operation string) func(outcome string, event social.Event) {
	var once sync.Once
	return func(outcome string, event social.Event) {
		once.Do(func() {
			o.bus.Publish(event)
			metrics.RecordTerminal(id.String(), operation, outcome)
			metrics.RecordPublished(string(event.Kind()))
		})
	}
}

func (o *Orchestrator) start(id social.ProviderID, operation string, event social.Event) {
	o.bus.Publish(event)
	metrics.RecordStarted(id.String(), operation)
	metrics.RecordPublished(string(event.Kind()))
}

// grant returns the reward hook for one operation instance. The hook
// grants at most once no matter how many times the provider fires the
// success continuation.
func (o *Orchestrator) grant(rewardID string) func() {
	if rewardID == "" || o.rewards == nil {
		return func() {}
	}
	var once sync.Once
	return func() {
		once.Do(func() {
			if o.rewards.GrantByID(rewardID) {
				metrics.RecordRewardGranted()
			}
		})
	}
}

// Login starts a login flow against id. The payload is round-tripped
// on every event of the flow; rewardID, when set, is granted once if
// the flow finishes.
func (o *Orchestrator) Login(id social.ProviderID, payload, rewardID string) error {
	p, err := o.resolve(id)
	if err != nil {
		return err
	}
	meta := social.EventMeta{Provider: id, Payload: payload}
	done := o.terminal(id, "login")
	grant := o.grant(rewardID)

	o.start(id, "login", social.LoginStarted{EventMeta: meta})
	p.Login(provider.LoginCallbacks{
		OnSuccess: func(profile social.UserProfile) {
			// The profile is durable before anyone observes the event.
			if err := o.profiles.Save(context.Background(), profile); err != nil {
				o.log.Error("profile save failed", "provider", id, "error", err)
			}
			done(metrics.OutcomeFinished, social.LoginFinished{EventMeta: meta, Profile: profile})
			grant()
		},
		OnFailure: func(msg string) {
			done(metrics.OutcomeFailed, social.LoginFailed{EventMeta: meta, Message: msg})
		},
		OnCancel: func() {
			done(metrics.OutcomeCancelled, social.LoginCancelled{EventMeta: meta})
		},
	})
	return nil
}

// Logout starts a logout flow against id.
func (o *Orchestrator) Logout(id social.ProviderID, payload string) error {
	p, err := o.resolve(id)
	if err != nil {
		return err
	}
	meta := social.EventMeta{Provider: id, Payload: payload}
	done := o.terminal(id, "logout")

	o.start(id, "logout", social.LogoutStarted{EventMeta: meta})
	p.Logout(provider.ResultCallbacks{
		OnSuccess: func() {
			if err := o.profiles.Delete(context.Background(), id); err != nil {
				o.log.Error("profile delete failed", "provider", id, "error", err)
			}
			done(metrics.OutcomeFinished, social.LogoutFinished{EventMeta: meta})
		},
		OnFailure: func(msg string) {
			done(metrics.OutcomeFailed, social.LogoutFailed{EventMeta: meta, Message: msg})
		},
	})
	return nil
}

// socialAction runs the shared started/terminal choreography of the
// share-style actions.
func (o *Orchestrator) socialAction(id social.ProviderID, action social.SocialActionType, payload, rewardID string, invoke func(p provider.Provider, cb provider.CancelableCallbacks)) error {
	p, err := o.resolve(id)
	if err != nil {
		return err
	}
	meta := social.EventMeta{Provider: id, Payload: payload}
	operation := "socialAction:" + string(action)
	done := o.terminal(id, operation)
	grant := o.grant(rewardID)

	o.start(id, operation, social.SocialActionStarted{EventMeta: meta, Action: action})

	if !p.IsLoggedIn() {
		done(metrics.OutcomeFailed, social.SocialActionFailed{
			EventMeta: meta, Action: action, Message: "not logged in",
		})
		return nil
	}

	invoke(p, provider.CancelableCallbacks{
		OnSuccess: func() {
			done(metrics.OutcomeFinished, social.SocialActionFinished{EventMeta: meta, Action: action})
			grant()
		},
		OnFailure: func(msg string) {
			done(metrics.OutcomeFailed, social.SocialActionFailed{EventMeta: meta, Action: action, Message: msg})
		},
		OnCancel: func() {
			done(metrics.OutcomeCancelled, social.SocialActionCancelled{EventMeta: meta, Action: action})
		},
	})
	return nil
}

// UpdateStatus posts a status message.
func (o *Orchestrator) UpdateStatus(id social.ProviderID, status, payload, rewardID string) error {
	return o.socialAction(id, social.ActionUpdateStatus, payload, rewardID,
		func(p provider.Provider, cb provider.CancelableCallbacks) {
			p.UpdateStatus(status, provider.ResultCallbacks{
				OnSuccess: cb.OnSuccess,
				OnFailure: cb.OnFailure,
			})
		})
}

// UpdateStory posts a story.
func (o *Orchestrator) UpdateStory(id social.ProviderID, story social.Story, payload, rewardID string) error {
	return o.socialAction(id, social.ActionUpdateStory, payload, rewardID,
		func(p provider.Provider, cb provider.CancelableCallbacks) {
			p.UpdateStory(story, cb)
		})
}

// UploadImage uploads an image.
func (o *Orchestrator) UploadImage(id social.ProviderID, image social.Image, payload, rewardID string) error {
	return o.socialAction(id, social.ActionUploadImage, payload, rewardID,
		func(p provider.Provider, cb provider.CancelableCallbacks) {
			p.UploadImage(image, cb)
		})
}

// pager returns the cursor for one provider and list family.
func (o *Orchestrator) pager(id social.ProviderID, kind social.ListKind) *social.Pager {
	o.mu.Lock()
	defer o.mu.Unlock()
	key := pagerKey{id: id, kind: kind}
	p, ok := o.pagers[key]
	if !ok {
		p = &social.Pager{}
		o.pagers[key] = p
	}
	return p
}

// Current implements the page lookup consulted when list results
// arrive over the boundary instead of through a continuation.
func (o *Orchestrator) Current(id social.ProviderID, kind social.ListKind) int {
	return o.pager(id, kind).Current()
}

// GetContacts requests the next page of contacts, or the first page
// when fromStart is set. Requesting past the last page returns
// ErrEndOfResults with no events published.
func (o *Orchestrator) GetContacts(id social.ProviderID, fromStart bool, payload string) error {
	p, err := o.resolve(id)
	if err != nil {
		return err
	}
	pager := o.pager(id, social.ListContacts)
	page, err := pager.Advance(fromStart)
	if err != nil {
		return err
	}
	meta := social.EventMeta{Provider: id, Payload: payload}
	done := o.terminal(id, "getContacts")

	o.start(id, "getContacts", social.ContactsStarted{EventMeta: meta, FromStart: fromStart})
	p.GetContacts(page, provider.ContactsCallbacks{
		OnSuccess: func(contacts []social.UserProfile, hasMore bool) {
			pager.Observe(hasMore)
			done(metrics.OutcomeFinished, social.ContactsFinished{
				EventMeta: meta,
				Page:      social.NewPage(contacts, hasMore, page),
			})
		},
		OnFailure: func(msg string) {
			done(metrics.OutcomeFailed, social.ContactsFailed{EventMeta: meta, Message: msg})
		},
	})
	return nil
}

// GetFeed requests the next page of the user's feed.
func (o *Orchestrator) GetFeed(id social.ProviderID, fromStart bool, payload string) error {
	p, err := o.resolve(id)
	if err != nil {
		return err
	}
	pager := o.pager(id, social.ListFeed)
	page, err := pager.Advance(fromStart)
	if err != nil {
		return err
	}
	meta := social.EventMeta{Provider: id, Payload: payload}
	done := o.terminal(id, "getFeed")

	o.start(id, "getFeed", social.FeedStarted{EventMeta: meta, FromStart: fromStart})
	p.GetFeed(page, provider.FeedCallbacks{
		OnSuccess: func(entries []social.FeedEntry, hasMore bool) {
			pager.Observe(hasMore)
			done(metrics.OutcomeFinished, social.FeedFinished{
				EventMeta: meta,
				Page:      social.NewPage(entries, hasMore, page),
			})
		},
		OnFailure: func(msg string) {
			done(metrics.OutcomeFailed, social.FeedFailed{EventMeta: meta, Message: msg})
		},
	})
	return nil
}

// Invite invites contacts.
func (o *Orchestrator) Invite(id social.ProviderID, invite social.Invite, payload, rewardID string) error {
	p, err := o.resolve(id)
	if err != nil {
		return err
	}
	meta := social.EventMeta{Provider: id, Payload: payload}
	done := o.terminal(id, "invite")
	grant := o.grant(rewardID)

	o.start(id, "invite", social.InviteStarted{EventMeta: meta})
	p.Invite(invite, provider.InviteCallbacks{
		OnSuccess: func(requestID string, invited []string) {
			done(metrics.OutcomeFinished, social.InviteFinished{
				EventMeta: meta, RequestID: requestID, Invited: invited,
			})
			grant()
		},
		OnFailure: func(msg string) {
			done(metrics.OutcomeFailed, social.InviteFailed{EventMeta: meta, Message: msg})
		},
		OnCancel: func() {
			done(metrics.OutcomeCancelled, social.InviteCancelled{EventMeta: meta})
		},
	})
	return nil
}

// Like fires a page like with no outcome events. Likes are rate
// limited to keep a stuck caller from flooding the boundary.
func (o *Orchestrator) Like(id social.ProviderID, pageName string) error {
	p, err := o.resolve(id)
	if err != nil {
		return err
	}
	if !o.likes.Allow() {
		o.log.Warn("like throttled", "provider", id, "page", pageName)
		return ErrLikeThrottled
	}
	p.Like(pageName)
	return nil
}

// GetLeaderboards requests the next page of leaderboards.
func (o *Orchestrator) GetLeaderboards(id social.ProviderID, fromStart bool, payload string) error {
	p, err := o.resolve(id)
	if err != nil {
		return err
	}
	pager := o.pager(id, social.ListLeaderboards)
	page, err := pager.Advance(fromStart)
	if err != nil {
		return err
	}
	meta := social.EventMeta{Provider: id, Payload: payload}
	done := o.terminal(id, "getLeaderboards")

	o.start(id, "getLeaderboards", social.LeaderboardsStarted{EventMeta: meta, FromStart: fromStart})
	p.GetLeaderboards(page, provider.LeaderboardsCallbacks{
		OnSuccess: func(boards []social.Leaderboard, hasMore bool) {
			pager.Observe(hasMore)
			done(metrics.OutcomeFinished, social.LeaderboardsFinished{
				EventMeta: meta,
				Page:      social.NewPage(boards, hasMore, page),
			})
		},
		OnFailure: func(msg string) {
			done(metrics.OutcomeFailed, social.LeaderboardsFailed{EventMeta: meta, Message: msg})
		},
	})
	return nil
}

// GetScores requests the next page of scores on one leaderboard.
func (o *Orchestrator) GetScores(id social.ProviderID, leaderboardID string, fromStart bool, payload string) error {
	p, err := o.resolve(id)
	if err != nil {
		return err
	}
	pager := o.pager(id, social.ListScores)
	page, err := pager.Advance(fromStart)
	if err != nil {
		return err
	}
	meta := social.EventMeta{Provider: id, Payload: payload}
	requested := social.Leaderboard{Provider: id, ID: leaderboardID}
	done := o.terminal(id, "getScores")

	o.start(id, "getScores", social.ScoresStarted{EventMeta: meta, Leaderboard: requested, FromStart: fromStart})
	p.GetScores(leaderboardID, page, provider.ScoresCallbacks{
		OnSuccess: func(board social.Leaderboard, scores []social.Score, hasMore bool) {
			pager.Observe(hasMore)
			done(metrics.OutcomeFinished, social.ScoresFinished{
				EventMeta:   meta,
				Leaderboard: board,
				Page:        social.NewPage(scores, hasMore, page),
			})
		},
		OnFailure: func(msg string) {
			done(metrics.OutcomeFailed, social.ScoresFailed{
				EventMeta: meta, Leaderboard: requested, Message: msg,
			})
		},
	})
	return nil
}

// ReportScore submits a score to one leaderboard.
func (o *Orchestrator) ReportScore(id social.ProviderID, leaderboardID string, value int64, payload, rewardID string) error {
	p, err := o.resolve(id)
	if err != nil {
		return err
	}
	meta := social.EventMeta{Provider: id, Payload: payload}
	requested := social.Leaderboard{Provider: id, ID: leaderboardID}
	done := o.terminal(id, "reportScore")
	grant := o.grant(rewardID)

	o.start(id, "reportScore", social.ReportScoreStarted{EventMeta: meta, Leaderboard: requested})
	p.ReportScore(leaderboardID, value, provider.ReportScoreCallbacks{
		OnSuccess: func(score social.Score) {
			done(metrics.OutcomeFinished, social.ReportScoreFinished{
				EventMeta: meta, Leaderboard: score.Leaderboard, Score: score,
			})
			grant()
		},
		OnFailure: func(msg string) {
			done(metrics.OutcomeFailed, social.ReportScoreFailed{
				EventMeta: meta, Leaderboard: requested, Message: msg,
			})
		},
	})
	return nil
}
