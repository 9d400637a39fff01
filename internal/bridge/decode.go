package bridge

import (
	"github.com/tidwall/gjson"

	"github.com/NovaPlay-Games/social_bridge/internal/social"
)

// decodeFunc builds one typed event from a boundary message body. The
// shared meta (provider, unwrapped payload) is already extracted.
type decodeFunc func(b *Bridge, meta social.EventMeta, doc gjson.Result) (social.Event, error)

// tableEntry pairs a decode function with whether the kind is a
// finished-class event, which is the only class that triggers reward
// extraction.
type tableEntry struct {
	decode   decodeFunc
	finished bool
}

var decodeTable = map[social.EventKind]tableEntry{
	social.KindLoginStarted:   {decode: decodeLoginStarted},
	social.KindLoginFinished:  {decode: decodeLoginFinished, finished: true},
	social.KindLoginFailed:    {decode: decodeLoginFailed},
	social.KindLoginCancelled: {decode: decodeLoginCancelled},

	social.KindLogoutStarted:  {decode: decodeLogoutStarted},
	social.KindLogoutFinished: {decode: decodeLogoutFinished, finished: true},
	social.KindLogoutFailed:   {decode: decodeLogoutFailed},

	social.KindSocialActionStarted:   {decode: decodeSocialActionStarted},
	social.KindSocialActionFinished:  {decode: decodeSocialActionFinished, finished: true},
	social.KindSocialActionFailed:    {decode: decodeSocialActionFailed},
	social.KindSocialActionCancelled: {decode: decodeSocialActionCancelled},

	social.KindContactsStarted:  {decode: decodeContactsStarted},
	social.KindContactsFinished: {decode: decodeContactsFinished, finished: true},
	social.KindContactsFailed:   {decode: decodeContactsFailed},

	social.KindFeedStarted:  {decode: decodeFeedStarted},
	social.KindFeedFinished: {decode: decodeFeedFinished, finished: true},
	social.KindFeedFailed:   {decode: decodeFeedFailed},

	social.KindInviteStarted:   {decode: decodeInviteStarted},
	social.KindInviteFinished:  {decode: decodeInviteFinished, finished: true},
	social.KindInviteFailed:    {decode: decodeInviteFailed},
	social.KindInviteCancelled: {decode: decodeInviteCancelled},

	social.KindLeaderboardsStarted:  {decode: decodeLeaderboardsStarted},
	social.KindLeaderboardsFinished: {decode: decodeLeaderboardsFinished, finished: true},
	social.KindLeaderboardsFailed:   {decode: decodeLeaderboardsFailed},

	social.KindScoresStarted:  {decode: decodeScoresStarted},
	social.KindScoresFinished: {decode: decodeScoresFinished, finished: true},
	social.KindScoresFailed:   {decode: decodeScoresFailed},

	social.KindReportScoreStarted:  {decode: decodeReportScoreStarted},
	social.KindReportScoreFinished: {decode: decodeReportScoreFinished, finished: true},
	social.KindReportScoreFailed:   {decode: decodeReportScoreFailed},

	social.KindProfileUpdated: {decode: decodeProfileUpdated},
}

// --- field helpers ---

func requireString(doc gjson.Result, kind, path string) (string, error) {
	v := doc.Get(path)
	if !v.Exists() || v.Type != gjson.String || v.String() == "" {
		return "", social.NewDecodeError(kind, path)
	}
	return v.String(), nil
}

func requireBool(doc gjson.Result, kind, path string) (bool, error) {
	v := doc.Get(path)
	if !v.Exists() || !v.IsBool() {
		return false, social.NewDecodeError(kind, path)
	}
	return v.Bool(), nil
}

func requireArray(doc gjson.Result, kind, path string) ([]gjson.Result, error) {
	v := doc.Get(path)
	if !v.Exists() || !v.IsArray() {
		return nil, social.NewDecodeError(kind, path)
	}
	return v.Array(), nil
}

// decodeProfile extracts a user profile object. profileId is required;
// a missing provider field falls back to the event's provider.
func decodeProfile(v gjson.Result, kind string, fallback social.ProviderID) (social.UserProfile, error) {
	if !v.Exists() || !v.IsObject() {
		return social.UserProfile{}, social.NewDecodeError(kind, "userProfile")
	}

	id := v.Get("profileId")
	if !id.Exists() || id.String() == "" {
		return social.UserProfile{}, social.NewDecodeError(kind, "userProfile.profileId")
	}

	providerID := fallback
	if raw := v.Get("provider"); raw.Exists() {
		parsed, err := social.ParseProviderID(raw.String())
		if err != nil {
			return social.UserProfile{}, social.NewDecodeError(kind, "userProfile.provider")
		}
		providerID = parsed
	}

	return social.UserProfile{
		Provider:   providerID,
		ProfileID:  id.String(),
		Username:   v.Get("username").String(),
		Email:      v.Get("email").String(),
		FirstName:  v.Get("firstName").String(),
		LastName:   v.Get("lastName").String(),
		AvatarLink: v.Get("avatarLink").String(),
	}, nil
}

// decodeLeaderboard extracts a leaderboard object; id is required.
func decodeLeaderboard(v gjson.Result, kind string, fallback social.ProviderID) (social.Leaderboard, error) {
	if !v.Exists() || !v.IsObject() {
		return social.Leaderboard{}, social.NewDecodeError(kind, "leaderboard")
	}

	id := v.Get("id")
	if !id.Exists() || id.String() == "" {
		return social.Leaderboard{}, social.NewDecodeError(kind, "leaderboard.id")
	}

	return social.Leaderboard{
		Provider: fallback,
		ID:       id.String(),
		Name:     v.Get("name").String(),
		IconURL:  v.Get("iconUrl").String(),
	}, nil
}

func decodeAction(doc gjson.Result, kind string) (social.SocialActionType, error) {
	raw, err := requireString(doc, kind, "socialActionType")
	if err != nil {
		return "", err
	}
	action, perr := social.ParseSocialActionType(raw)
	if perr != nil {
		return "", social.NewDecodeError(kind, "socialActionType")
	}
	return action, nil
}

// --- login ---

func decodeLoginStarted(_ *Bridge, meta social.EventMeta, _ gjson.Result) (social.Event, error) {
	return social.LoginStarted{EventMeta: meta}, nil
}

func decodeLoginFinished(_ *Bridge, meta social.EventMeta, doc gjson.Result) (social.Event, error) {
	profile, err := decodeProfile(doc.Get("userProfile"), string(social.KindLoginFinished), meta.Provider)
	if err != nil {
		return nil, err
	}
	return social.LoginFinished{EventMeta: meta, Profile: profile}, nil
}

func decodeLoginFailed(_ *Bridge, meta social.EventMeta, doc gjson.Result) (social.Event, error) {
	msg, err := requireString(doc, string(social.KindLoginFailed), "message")
	if err != nil {
		return nil, err
	}
	return social.LoginFailed{EventMeta: meta, Message: msg}, nil
}

func decodeLoginCancelled(_ *Bridge, meta social.EventMeta, _ gjson.Result) (social.Event, error) {
	return social.LoginCancelled{EventMeta: meta}, nil
}

// --- logout ---

func decodeLogoutStarted(_ *Bridge, meta social.EventMeta, _ gjson.Result) (social.Event, error) {
	return social.LogoutStarted{EventMeta: meta}, nil
}

func decodeLogoutFinished(_ *Bridge, meta social.EventMeta, _ gjson.Result) (social.Event, error) {
	return social.LogoutFinished{EventMeta: meta}, nil
}

func decodeLogoutFailed(_ *Bridge, meta social.EventMeta, doc gjson.Result) (social.Event, error) {
	msg, err := requireString(doc, string(social.KindLogoutFailed), "message")
	if err != nil {
		return nil, err
	}
	return social.LogoutFailed{EventMeta: meta, Message: msg}, nil
}

// --- social actions ---

func decodeSocialActionStarted(_ *Bridge, meta social.EventMeta, doc gjson.Result) (social.Event, error) {
	action, err := decodeAction(doc, string(social.KindSocialActionStarted))
	if err != nil {
		return nil, err
	}
	return social.SocialActionStarted{EventMeta: meta, Action: action}, nil
}

func decodeSocialActionFinished(_ *Bridge, meta social.EventMeta, doc gjson.Result) (social.Event, error) {
	action, err := decodeAction(doc, string(social.KindSocialActionFinished))
	if err != nil {
		return nil, err
	}
	return social.SocialActionFinished{EventMeta: meta, Action: action}, nil
}

func decodeSocialActionFailed(_ *Bridge, meta social.EventMeta, doc gjson.Result) (social.Event, error) {
	kind := string(social.KindSocialActionFailed)
	action, err := decodeAction(doc, kind)
	if err != nil {
		return nil, err
	}
	msg, err := requireString(doc, kind, "message")
	if err != nil {
		return nil, err
	}
	return social.SocialActionFailed{EventMeta: meta, Action: action, Message: msg}, nil
}

func decodeSocialActionCancelled(_ *Bridge, meta social.EventMeta, doc gjson.Result) (social.Event, error) {
	action, err := decodeAction(doc, string(social.KindSocialActionCancelled))
	if err != nil {
		return nil, err
	}
	return social.SocialActionCancelled{EventMeta: meta, Action: action}, nil
}

// --- contacts ---

func decodeContactsStarted(_ *Bridge, meta social.EventMeta, doc gjson.Result) (social.Event, error) {
	return social.ContactsStarted{EventMeta: meta, FromStart: doc.Get("fromStart").Bool()}, nil
}

func decodeContactsFinished(b *Bridge, meta social.EventMeta, doc gjson.Result) (social.Event, error) {
	kind := string(social.KindContactsFinished)

	hasMore, err := requireBool(doc, kind, "hasMore")
	if err != nil {
		return nil, err
	}
	raw, err := requireArray(doc, kind, "contacts")
	if err != nil {
		return nil, err
	}

	contacts := make([]social.UserProfile, 0, len(raw))
	for _, item := range raw {
		profile, err := decodeProfile(item, kind, meta.Provider)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, profile)
	}

	page := social.NewPage(contacts, hasMore, b.pageFor(meta.Provider, social.ListContacts))
	return social.ContactsFinished{EventMeta: meta, Page: page}, nil
}

func decodeContactsFailed(_ *Bridge, meta social.EventMeta, doc gjson.Result) (social.Event, error) {
	msg, err := requireString(doc, string(social.KindContactsFailed), "message")
	if err != nil {
		return nil, err
	}
	return social.ContactsFailed{EventMeta: meta, Message: msg}, nil
}

// --- feed ---

func decodeFeedStarted(_ *Bridge, meta social.EventMeta, doc gjson.Result) (social.Event, error) {
	return social.FeedStarted{EventMeta: meta, FromStart: doc.Get("fromStart").Bool()}, nil
}

func decodeFeedFinished(b *Bridge, meta social.EventMeta, doc gjson.Result) (social.Event, error) {
	kind := string(social.KindFeedFinished)

	hasMore, err := requireBool(doc, kind, "hasMore")
	if err != nil {
		return nil, err
	}
	raw, err := requireArray(doc, kind, "feed")
	if err != nil {
		return nil, err
	}

	entries := make([]social.FeedEntry, 0, len(raw))
	for _, item := range raw {
		id := item.Get("id")
		if !id.Exists() || id.String() == "" {
			return nil, social.NewDecodeError(kind, "feed.id")
		}
		entries = append(entries, social.FeedEntry{
			Provider: meta.Provider,
			ID:       id.String(),
			Text:     item.Get("text").String(),
		})
	}

	page := social.NewPage(entries, hasMore, b.pageFor(meta.Provider, social.ListFeed))
	return social.FeedFinished{EventMeta: meta, Page: page}, nil
}

func decodeFeedFailed(_ *Bridge, meta social.EventMeta, doc gjson.Result) (social.Event, error) {
	msg, err := requireString(doc, string(social.KindFeedFailed), "message")
	if err != nil {
		return nil, err
	}
	return social.FeedFailed{EventMeta: meta, Message: msg}, nil
}

// --- invite ---

func decodeInviteStarted(_ *Bridge, meta social.EventMeta, _ gjson.Result) (social.Event, error) {
	return social.InviteStarted{EventMeta: meta}, nil
}

func decodeInviteFinished(_ *Bridge, meta social.EventMeta, doc gjson.Result) (social.Event, error) {
	kind := string(social.KindInviteFinished)

	requestID, err := requireString(doc, kind, "requestId")
	if err != nil {
		return nil, err
	}

	var invited []string
	for _, item := range doc.Get("invitedIds").Array() {
		invited = append(invited, item.String())
	}

	return social.InviteFinished{EventMeta: meta, RequestID: requestID, Invited: invited}, nil
}

func decodeInviteFailed(_ *Bridge, meta social.EventMeta, doc gjson.Result) (social.Event, error) {
	msg, err := requireString(doc, string(social.KindInviteFailed), "message")
	if err != nil {
		return nil, err
	}
	return social.InviteFailed{EventMeta: meta, Message: msg}, nil
}

func decodeInviteCancelled(_ *Bridge, meta social.EventMeta, _ gjson.Result) (social.Event, error) {
	return social.InviteCancelled{EventMeta: meta}, nil
}

// --- leaderboards ---

func decodeLeaderboardsStarted(_ *Bridge, meta social.EventMeta, doc gjson.Result) (social.Event, error) {
	return social.LeaderboardsStarted{EventMeta: meta, FromStart: doc.Get("fromStart").Bool()}, nil
}

func decodeLeaderboardsFinished(b *Bridge, meta social.EventMeta, doc gjson.Result) (social.Event, error) {
	kind := string(social.KindLeaderboardsFinished)

	hasMore, err := requireBool(doc, kind, "hasMore")
	if err != nil {
		return nil, err
	}
	raw, err := requireArray(doc, kind, "leaderboards")
	if err != nil {
		return nil, err
	}

	boards := make([]social.Leaderboard, 0, len(raw))
	for _, item := range raw {
		board, err := decodeLeaderboard(item, kind, meta.Provider)
		if err != nil {
			return nil, err
		}
		boards = append(boards, board)
	}

	page := social.NewPage(boards, hasMore, b.pageFor(meta.Provider, social.ListLeaderboards))
	return social.LeaderboardsFinished{EventMeta: meta, Page: page}, nil
}

func decodeLeaderboardsFailed(_ *Bridge, meta social.EventMeta, doc gjson.Result) (social.Event, error) {
	msg, err := requireString(doc, string(social.KindLeaderboardsFailed), "message")
	if err != nil {
		return nil, err
	}
	return social.LeaderboardsFailed{EventMeta: meta, Message: msg}, nil
}

// --- scores ---

func decodeScoresStarted(_ *Bridge, meta social.EventMeta, doc gjson.Result) (social.Event, error) {
	kind := string(social.KindScoresStarted)
	board, err := decodeLeaderboard(doc.Get("leaderboard"), kind, meta.Provider)
	if err != nil {
		return nil, err
	}
	return social.ScoresStarted{EventMeta: meta, Leaderboard: board, FromStart: doc.Get("fromStart").Bool()}, nil
}

func decodeScoresFinished(b *Bridge, meta social.EventMeta, doc gjson.Result) (social.Event, error) {
	kind := string(social.KindScoresFinished)

	board, err := decodeLeaderboard(doc.Get("leaderboard"), kind, meta.Provider)
	if err != nil {
		return nil, err
	}
	hasMore, err := requireBool(doc, kind, "hasMore")
	if err != nil {
		return nil, err
	}
	raw, err := requireArray(doc, kind, "scores")
	if err != nil {
		return nil, err
	}

	scores := make([]social.Score, 0, len(raw))
	for _, item := range raw {
		score, err := decodeScore(item, kind, board, meta.Provider)
		if err != nil {
			return nil, err
		}
		scores = append(scores, score)
	}

	page := social.NewPage(scores, hasMore, b.pageFor(meta.Provider, social.ListScores))
	return social.ScoresFinished{EventMeta: meta, Leaderboard: board, Page: page}, nil
}

func decodeScore(v gjson.Result, kind string, board social.Leaderboard, fallback social.ProviderID) (social.Score, error) {
	value := v.Get("value")
	if !value.Exists() {
		return social.Score{}, social.NewDecodeError(kind, "scores.value")
	}

	score := social.Score{
		Leaderboard: board,
		Rank:        int(v.Get("rank").Int()),
		Value:       value.Int(),
	}

	if player := v.Get("player"); player.Exists() {
		profile, err := decodeProfile(player, kind, fallback)
		if err != nil {
			return social.Score{}, err
		}
		score.Player = profile
	}
	return score, nil
}

func decodeScoresFailed(_ *Bridge, meta social.EventMeta, doc gjson.Result) (social.Event, error) {
	kind := string(social.KindScoresFailed)
	board, err := decodeLeaderboard(doc.Get("leaderboard"), kind, meta.Provider)
	if err != nil {
		return nil, err
	}
	msg, err := requireString(doc, kind, "message")
	if err != nil {
		return nil, err
	}
	return social.ScoresFailed{EventMeta: meta, Leaderboard: board, Message: msg}, nil
}

// --- report score ---

func decodeReportScoreStarted(_ *Bridge, meta social.EventMeta, doc gjson.Result) (social.Event, error) {
	board, err := decodeLeaderboard(doc.Get("leaderboard"), string(social.KindReportScoreStarted), meta.Provider)
	if err != nil {
		return nil, err
	}
	return social.ReportScoreStarted{EventMeta: meta, Leaderboard: board}, nil
}

func decodeReportScoreFinished(_ *Bridge, meta social.EventMeta, doc gjson.Result) (social.Event, error) {
	kind := string(social.KindReportScoreFinished)

	board, err := decodeLeaderboard(doc.Get("leaderboard"), kind, meta.Provider)
	if err != nil {
		return nil, err
	}
	score, err := decodeScore(doc.Get("score"), kind, board, meta.Provider)
	if err != nil {
		return nil, err
	}
	return social.ReportScoreFinished{EventMeta: meta, Leaderboard: board, Score: score}, nil
}

func decodeReportScoreFailed(_ *Bridge, meta social.EventMeta, doc gjson.Result) (social.Event, error) {
	kind := string(social.KindReportScoreFailed)
	board, err := decodeLeaderboard(doc.Get("leaderboard"), kind, meta.Provider)
	if err != nil {
		return nil, err
	}
	msg, err := requireString(doc, kind, "message")
	if err != nil {
		return nil, err
	}
	return social.ReportScoreFailed{EventMeta: meta, Leaderboard: board, Message: msg}, nil
}

// --- profile ---

func decodeProfileUpdated(_ *Bridge, meta social.EventMeta, doc gjson.Result) (social.Event, error) {
	profile, err := decodeProfile(doc.Get("userProfile"), string(social.KindProfileUpdated), meta.Provider)
	if err != nil {
		return nil, err
	}
	return social.ProfileUpdated{EventMeta: meta, Profile: profile}, nil
}
