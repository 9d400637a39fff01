package providers

import (
	"github.com/NovaPlay-Games/social_bridge/internal/social"
	"github.com/NovaPlay-Games/social_bridge/internal/social/provider"
)

// facebookProvider exposes the full capability surface.
type facebookProvider struct {
	*backend
}

// googleProvider lacks a feed API and page likes.
type googleProvider struct {
	*backend
}

func (g *googleProvider) GetFeed(page int, cb provider.FeedCallbacks) {
	g.unsupported("getFeed", cb.OnFailure)
}

func (g *googleProvider) Like(pageName string) {
	g.unsupported("like", nil)
}

// gameCenterProvider covers login and the leaderboard family. Game
// Center has no share surface, feed, invitations, or page likes.
type gameCenterProvider struct {
	*backend
}

func (gc *gameCenterProvider) UpdateStatus(status string, cb provider.ResultCallbacks) {
	gc.unsupported("updateStatus", cb.OnFailure)
}

func (gc *gameCenterProvider) UpdateStory(story social.Story, cb provider.CancelableCallbacks) {
	gc.unsupported("updateStory", cb.OnFailure)
}

func (gc *gameCenterProvider) UploadImage(image social.Image, cb provider.CancelableCallbacks) {
	gc.unsupported("uploadImage", cb.OnFailure)
}

func (gc *gameCenterProvider) GetFeed(page int, cb provider.FeedCallbacks) {
	gc.unsupported("getFeed", cb.OnFailure)
}

func (gc *gameCenterProvider) Invite(invite social.Invite, cb provider.InviteCallbacks) {
	gc.unsupported("invite", cb.OnFailure)
}

func (gc *gameCenterProvider) Like(pageName string) {
	gc.unsupported("like", nil)
}
