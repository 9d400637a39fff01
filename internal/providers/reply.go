package providers

import (
	"github.com/tidwall/gjson"

	"github.com/NovaPlay-Games/social_bridge/internal/social"
)

const (
	statusSuccess   = "success"
	statusFailed    = "failed"
	statusCancelled = "cancelled"
)

// reply wraps a parsed command reply body. Decoding is lenient:
// replies come from our own runtime, so absent optional fields fall
// back to zero values rather than failing the whole operation.
type reply struct {
	doc gjson.Result
}

func parseReply(raw []byte) reply {
	return reply{doc: gjson.ParseBytes(raw)}
}

func (r reply) status() string { return r.doc.Get("status").String() }

func (r reply) message() string {
	if msg := r.doc.Get("message").String(); msg != "" {
		return msg
	}
	return "operation failed"
}

func (r reply) hasMore() bool { return r.doc.Get("hasMore").Bool() }

func (r reply) profile(fallback social.ProviderID) (social.UserProfile, bool) {
	node := r.doc.Get("userProfile")
	if !node.Exists() {
		return social.UserProfile{}, false
	}
	return profileFrom(node, fallback), true
}

func profileFrom(node gjson.Result, fallback social.ProviderID) social.UserProfile {
	p := social.UserProfile{
		Provider:   fallback,
		ProfileID:  node.Get("profileId").String(),
		Username:   node.Get("username").String(),
		Email:      node.Get("email").String(),
		FirstName:  node.Get("firstName").String(),
		LastName:   node.Get("lastName").String(),
		AvatarLink: node.Get("avatarLink").String(),
	}
	if raw := node.Get("provider").String(); raw != "" {
		if id, err := social.ParseProviderID(raw); err == nil {
			p.Provider = id
		}
	}
	return p
}

func (r reply) profiles(field string, fallback social.ProviderID) []social.UserProfile {
	items := r.doc.Get(field).Array()
	out := make([]social.UserProfile, 0, len(items))
	for _, node := range items {
		out = append(out, profileFrom(node, fallback))
	}
	return out
}

func (r reply) feed(id social.ProviderID) []social.FeedEntry {
	items := r.doc.Get("feed").Array()
	out := make([]social.FeedEntry, 0, len(items))
	for _, node := range items {
		out = append(out, social.FeedEntry{
			Provider: id,
			ID:       node.Get("id").String(),
			Text:     node.Get("text").String(),
		})
	}
	return out
}

func (r reply) inviteResult() (string, []string) {
	invited := []string{}
	for _, node := range r.doc.Get("invited").Array() {
		invited = append(invited, node.String())
	}
	return r.doc.Get("requestId").String(), invited
}

func leaderboardFrom(node gjson.Result, id social.ProviderID) social.Leaderboard {
	return social.Leaderboard{
		Provider: id,
		ID:       node.Get("id").String(),
		Name:     node.Get("name").String(),
		IconURL:  node.Get("iconUrl").String(),
	}
}

func (r reply) leaderboards(id social.ProviderID) []social.Leaderboard {
	items := r.doc.Get("leaderboards").Array()
	out := make([]social.Leaderboard, 0, len(items))
	for _, node := range items {
		out = append(out, leaderboardFrom(node, id))
	}
	return out
}

// leaderboard returns the board echoed in the reply, or a stub built
// from the requested id when the runtime omitted it.
func (r reply) leaderboard(id social.ProviderID, requestedID string) social.Leaderboard {
	if node := r.doc.Get("leaderboard"); node.Exists() {
		return leaderboardFrom(node, id)
	}
	return social.Leaderboard{Provider: id, ID: requestedID}
}

func scoreFrom(node gjson.Result, id social.ProviderID, board social.Leaderboard) social.Score {
	s := social.Score{
		Leaderboard: board,
		Rank:        int(node.Get("rank").Int()),
		Value:       node.Get("value").Int(),
	}
	if player := node.Get("player"); player.Exists() {
		s.Player = profileFrom(player, id)
	}
	return s
}

func (r reply) scores(id social.ProviderID, board social.Leaderboard) []social.Score {
	items := r.doc.Get("scores").Array()
	out := make([]social.Score, 0, len(items))
	for _, node := range items {
		out = append(out, scoreFrom(node, id, board))
	}
	return out
}

func (r reply) score(id social.ProviderID, board social.Leaderboard) social.Score {
	if node := r.doc.Get("score"); node.Exists() {
		return scoreFrom(node, id, board)
	}
	return social.Score{Leaderboard: board}
}
