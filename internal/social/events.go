package social

// EventKind tags a domain event variant. The values double as the
// boundary message kinds, so the bridge decode table and the bus share
// one vocabulary.
type EventKind string

const (
	KindLoginStarted   EventKind = "onLoginStarted"
	KindLoginFinished  EventKind = "onLoginFinished"
	KindLoginFailed    EventKind = "onLoginFailed"
	KindLoginCancelled EventKind = "onLoginCancelled"

	KindLogoutStarted  EventKind = "onLogoutStarted"
	KindLogoutFinished EventKind = "onLogoutFinished"
	KindLogoutFailed   EventKind = "onLogoutFailed"

	KindSocialActionStarted   EventKind = "onSocialActionStarted"
	KindSocialActionFinished  EventKind = "onSocialActionFinished"
	KindSocialActionFailed    EventKind = "onSocialActionFailed"
	KindSocialActionCancelled EventKind = "onSocialActionCancelled"

	KindContactsStarted  EventKind = "onGetContactsStarted"
	KindContactsFinished EventKind = "onGetContactsFinished"
	KindContactsFailed   EventKind = "onGetContactsFailed"

	KindFeedStarted  EventKind = "onGetFeedStarted"
	KindFeedFinished EventKind = "onGetFeedFinished"
	KindFeedFailed   EventKind = "onGetFeedFailed"

	KindInviteStarted   EventKind = "onInviteStarted"
	KindInviteFinished  EventKind = "onInviteFinished"
	KindInviteFailed    EventKind = "onInviteFailed"
	KindInviteCancelled EventKind = "onInviteCancelled"

	KindLeaderboardsStarted  EventKind = "onGetLeaderboardsStarted"
	KindLeaderboardsFinished EventKind = "onGetLeaderboardsFinished"
	KindLeaderboardsFailed   EventKind = "onGetLeaderboardsFailed"

	KindScoresStarted  EventKind = "onGetScoresStarted"
	KindScoresFinished EventKind = "onGetScoresFinished"
	KindScoresFailed   EventKind = "onGetScoresFailed"

	KindReportScoreStarted  EventKind = "onReportScoreStarted"
	KindReportScoreFinished EventKind = "onReportScoreFinished"
	KindReportScoreFailed   EventKind = "onReportScoreFailed"

	KindProfileUpdated EventKind = "onUserProfileUpdated"
)

// EventMeta carries the fields every event shares: the provider the
// operation ran against and the caller's opaque correlation payload,
// round-tripped unchanged through the operation lifecycle.
type EventMeta struct {
	Provider ProviderID `json:"provider"`
	Payload  string     `json:"payload,omitempty"`
}

// Meta returns the shared event fields.
func (m EventMeta) Meta() EventMeta { return m }

// Event is the tagged union over all started/finished/failed/cancelled
// notifications. Events are immutable once constructed and have no
// identity beyond their field values.
type Event interface {
	Kind() EventKind
	Meta() EventMeta
}

// --- Login ---

type LoginStarted struct{ EventMeta }

func (LoginStarted) Kind() EventKind { return KindLoginStarted }

type LoginFinished struct {
	EventMeta
	Profile UserProfile `json:"userProfile"`
}

func (LoginFinished) Kind() EventKind { return KindLoginFinished }

type LoginFailed struct {
	EventMeta
	Message string `json:"message"`
}

func (LoginFailed) Kind() EventKind { return KindLoginFailed }

type LoginCancelled struct{ EventMeta }

func (LoginCancelled) Kind() EventKind { return KindLoginCancelled }

// --- Logout ---

type LogoutStarted struct{ EventMeta }

func (LogoutStarted) Kind() EventKind { return KindLogoutStarted }

type LogoutFinished struct{ EventMeta }

func (LogoutFinished) Kind() EventKind { return KindLogoutFinished }

type LogoutFailed struct {
	EventMeta
	Message string `json:"message"`
}

func (LogoutFailed) Kind() EventKind { return KindLogoutFailed }

// --- Social actions (status, story, image) ---

type SocialActionStarted struct {
	EventMeta
	Action SocialActionType `json:"socialActionType"`
}

func (SocialActionStarted) Kind() EventKind { return KindSocialActionStarted }

type SocialActionFinished struct {
	EventMeta
	Action SocialActionType `json:"socialActionType"`
}

func (SocialActionFinished) Kind() EventKind { return KindSocialActionFinished }

type SocialActionFailed struct {
	EventMeta
	Action  SocialActionType `json:"socialActionType"`
	Message string           `json:"message"`
}

func (SocialActionFailed) Kind() EventKind { return KindSocialActionFailed }

type SocialActionCancelled struct {
	EventMeta
	Action SocialActionType `json:"socialActionType"`
}

func (SocialActionCancelled) Kind() EventKind { return KindSocialActionCancelled }

// --- Contacts ---

type ContactsStarted struct {
	EventMeta
	FromStart bool `json:"fromStart"`
}

func (ContactsStarted) Kind() EventKind { return KindContactsStarted }

type ContactsFinished struct {
	EventMeta
	Page PagedResult[UserProfile] `json:"page"`
}

func (ContactsFinished) Kind() EventKind { return KindContactsFinished }

type ContactsFailed struct {
	EventMeta
	Message string `json:"message"`
}

func (ContactsFailed) Kind() EventKind { return KindContactsFailed }

// --- Feed ---

type FeedStarted struct {
	EventMeta
	FromStart bool `json:"fromStart"`
}

func (FeedStarted) Kind() EventKind { return KindFeedStarted }

type FeedFinished struct {
	EventMeta
	Page PagedResult[FeedEntry] `json:"page"`
}

func (FeedFinished) Kind() EventKind { return KindFeedFinished }

type FeedFailed struct {
	EventMeta
	Message string `json:"message"`
}

func (FeedFailed) Kind() EventKind { return KindFeedFailed }

// --- Invite ---

type InviteStarted struct{ EventMeta }

func (InviteStarted) Kind() EventKind { return KindInviteStarted }

type InviteFinished struct {
	EventMeta
	RequestID string   `json:"requestId"`
	Invited   []string `json:"invitedIds"`
}

func (InviteFinished) Kind() EventKind { return KindInviteFinished }

type InviteFailed struct {
	EventMeta
	Message string `json:"message"`
}

func (InviteFailed) Kind() EventKind { return KindInviteFailed }

type InviteCancelled struct{ EventMeta }

func (InviteCancelled) Kind() EventKind { return KindInviteCancelled }

// --- Leaderboards ---

type LeaderboardsStarted struct {
	EventMeta
	FromStart bool `json:"fromStart"`
}

func (LeaderboardsStarted) Kind() EventKind { return KindLeaderboardsStarted }

type LeaderboardsFinished struct {
	EventMeta
	Page PagedResult[Leaderboard] `json:"page"`
}

func (LeaderboardsFinished) Kind() EventKind { return KindLeaderboardsFinished }

type LeaderboardsFailed struct {
	EventMeta
	Message string `json:"message"`
}

func (LeaderboardsFailed) Kind() EventKind { return KindLeaderboardsFailed }

// --- Scores ---

type ScoresStarted struct {
	EventMeta
	Leaderboard Leaderboard `json:"leaderboard"`
	FromStart   bool        `json:"fromStart"`
}

func (ScoresStarted) Kind() EventKind { return KindScoresStarted }

type ScoresFinished struct {
	EventMeta
	Leaderboard Leaderboard        `json:"leaderboard"`
	Page        PagedResult[Score] `json:"page"`
}

func (ScoresFinished) Kind() EventKind { return KindScoresFinished }

type ScoresFailed struct {
	EventMeta
	Leaderboard Leaderboard `json:"leaderboard"`
	Message     string      `json:"message"`
}

func (ScoresFailed) Kind() EventKind { return KindScoresFailed }

// --- Report score ---

type ReportScoreStarted struct {
	EventMeta
	Leaderboard Leaderboard `json:"leaderboard"`
}

func (ReportScoreStarted) Kind() EventKind { return KindReportScoreStarted }

type ReportScoreFinished struct {
	EventMeta
	Leaderboard Leaderboard `json:"leaderboard"`
	Score       Score       `json:"score"`
}

func (ReportScoreFinished) Kind() EventKind { return KindReportScoreFinished }

type ReportScoreFailed struct {
	EventMeta
	Leaderboard Leaderboard `json:"leaderboard"`
	Message     string      `json:"message"`
}

func (ReportScoreFailed) Kind() EventKind { return KindReportScoreFailed }

// --- Profile ---

// ProfileUpdated is published when the native layer refreshes a cached
// user profile outside a login flow.
type ProfileUpdated struct {
	EventMeta
	Profile UserProfile `json:"userProfile"`
}

func (ProfileUpdated) Kind() EventKind { return KindProfileUpdated }
