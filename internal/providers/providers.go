// Package providers implements the provider capability contract on
// top of the native boundary. Each backend marshals an operation into
// a command frame, and decodes the correlated reply into exactly one
// continuation call.
//
// The concrete networks differ only in which capabilities they
// support; everything else lives in the shared backend.
package providers

import (
	"sync/atomic"

	"github.com/NovaPlay-Games/social_bridge/internal/boundary"
	"github.com/NovaPlay-Games/social_bridge/internal/social"
	"github.com/NovaPlay-Games/social_bridge/internal/social/provider"
	"github.com/NovaPlay-Games/social_bridge/pkg/logger"
)

// New builds the provider backend for one network on one platform.
// Identities with no backend for the platform return a
// ConfigurationError.
func New(id social.ProviderID, platform social.TargetPlatform, caller boundary.Caller, log *logger.Logger) (provider.Provider, error) {
	if log == nil {
		log = logger.NewDefault("providers")
	}
	base := &backend{id: id, caller: caller, log: log}

	switch id {
	case social.ProviderFacebook:
		return &facebookProvider{backend: base}, nil
	case social.ProviderGoogle:
		return &googleProvider{backend: base}, nil
	case social.ProviderGameCenter:
		if platform != social.PlatformIOS && platform != social.PlatformEditor {
			return nil, social.NewConfigurationError(id, "game center requires the ios platform")
		}
		return &gameCenterProvider{backend: base}, nil
	}
	return nil, social.NewConfigurationError(id, "no backend available")
}

// backend is the shared boundary-marshaling implementation. Concrete
// providers embed it and mask the capabilities their network lacks.
type backend struct {
	id       social.ProviderID
	caller   boundary.Caller
	log      *logger.Logger
	loggedIn atomic.Bool
}

func (b *backend) ID() social.ProviderID { return b.id }

func (b *backend) IsLoggedIn() bool { return b.loggedIn.Load() }

type commandBody struct {
	Provider      social.ProviderID `json:"provider"`
	Status        string            `json:"status,omitempty"`
	Story         *storyBody        `json:"story,omitempty"`
	Image         *imageBody        `json:"image,omitempty"`
	Page          int               `json:"page,omitempty"`
	Invite        *inviteBody       `json:"invite,omitempty"`
	PageName      string            `json:"pageName,omitempty"`
	LeaderboardID string            `json:"leaderboardId,omitempty"`
	Value         int64             `json:"value,omitempty"`
}

type storyBody struct {
	Message  string `json:"message,omitempty"`
	Title    string `json:"title,omitempty"`
	Caption  string `json:"caption,omitempty"`
	Link     string `json:"link,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type imageBody struct {
	Bytes    []byte `json:"bytes"`
	FileName string `json:"fileName,omitempty"`
	Message  string `json:"message,omitempty"`
}

type inviteBody struct {
	Message string `json:"message,omitempty"`
	Title   string `json:"title,omitempty"`
}

func (b *backend) Login(cb provider.LoginCallbacks) {
	b.call("login", commandBody{Provider: b.id}, func(doc reply) {
		switch doc.status() {
		case statusSuccess:
			profile, ok := doc.profile(b.id)
			if !ok {
				cb.OnFailure("malformed login reply: missing userProfile")
				return
			}
			b.loggedIn.Store(true)
			cb.OnSuccess(profile)
		case statusCancelled:
			cb.OnCancel()
		default:
			cb.OnFailure(doc.message())
		}
	}, cb.OnFailure)
}

func (b *backend) Logout(cb provider.ResultCallbacks) {
	b.call("logout", commandBody{Provider: b.id}, func(doc reply) {
		if doc.status() == statusSuccess {
			b.loggedIn.Store(false)
			cb.OnSuccess()
			return
		}
		cb.OnFailure(doc.message())
	}, cb.OnFailure)
}

func (b *backend) UpdateStatus(status string, cb provider.ResultCallbacks) {
	b.call("updateStatus", commandBody{Provider: b.id, Status: status}, func(doc reply) {
		if doc.status() == statusSuccess {
			cb.OnSuccess()
			return
		}
		cb.OnFailure(doc.message())
	}, cb.OnFailure)
}

func (b *backend) UpdateStory(story social.Story, cb provider.CancelableCallbacks) {
	body := commandBody{Provider: b.id, Story: &storyBody{
		Message:  story.Message,
		Title:    story.Title,
		Caption:  story.Caption,
		Link:     story.Link,
		ImageURL: story.ImageURL,
	}}
	b.call("updateStory", body, func(doc reply) {
		switch doc.status() {
		case statusSuccess:
			cb.OnSuccess()
		case statusCancelled:
			cb.OnCancel()
		default:
			cb.OnFailure(doc.message())
		}
	}, cb.OnFailure)
}

func (b *backend) UploadImage(image social.Image, cb provider.CancelableCallbacks) {
	body := commandBody{Provider: b.id, Image: &imageBody{
		Bytes:    image.Bytes,
		FileName: image.FileName,
		Message:  image.Message,
	}}
	b.call("uploadImage", body, func(doc reply) {
		switch doc.status() {
		case statusSuccess:
			cb.OnSuccess()
		case statusCancelled:
			cb.OnCancel()
		default:
			cb.OnFailure(doc.message())
		}
	}, cb.OnFailure)
}

func (b *backend) GetContacts(page int, cb provider.ContactsCallbacks) {
	b.call("getContacts", commandBody{Provider: b.id, Page: page}, func(doc reply) {
		if doc.status() != statusSuccess {
			cb.OnFailure(doc.message())
			return
		}
		cb.OnSuccess(doc.profiles("contacts", b.id), doc.hasMore())
	}, cb.OnFailure)
}

func (b *backend) GetFeed(page int, cb provider.FeedCallbacks) {
	b.call("getFeed", commandBody{Provider: b.id, Page: page}, func(doc reply) {
		if doc.status() != statusSuccess {
			cb.OnFailure(doc.message())
			return
		}
		cb.OnSuccess(doc.feed(b.id), doc.hasMore())
	}, cb.OnFailure)
}

func (b *backend) Invite(invite social.Invite, cb provider.InviteCallbacks) {
	body := commandBody{Provider: b.id, Invite: &inviteBody{
		Message: invite.Message,
		Title:   invite.Title,
	}}
	b.call("invite", body, func(doc reply) {
		switch doc.status() {
		case statusSuccess:
			requestID, invited := doc.inviteResult()
			cb.OnSuccess(requestID, invited)
		case statusCancelled:
			cb.OnCancel()
		default:
			cb.OnFailure(doc.message())
		}
	}, cb.OnFailure)
}

func (b *backend) Like(pageName string) {
	if err := b.caller.Notify("like", commandBody{Provider: b.id, PageName: pageName}); err != nil {
		b.log.Warn("like not delivered", "provider", b.id, "error", err)
	}
}

func (b *backend) GetLeaderboards(page int, cb provider.LeaderboardsCallbacks) {
	b.call("getLeaderboards", commandBody{Provider: b.id, Page: page}, func(doc reply) {
		if doc.status() != statusSuccess {
			cb.OnFailure(doc.message())
			return
		}
		cb.OnSuccess(doc.leaderboards(b.id), doc.hasMore())
	}, cb.OnFailure)
}

func (b *backend) GetScores(leaderboardID string, page int, cb provider.ScoresCallbacks) {
	body := commandBody{Provider: b.id, LeaderboardID: leaderboardID, Page: page}
	b.call("getScores", body, func(doc reply) {
		if doc.status() != statusSuccess {
			cb.OnFailure(doc.message())
			return
		}
		board := doc.leaderboard(b.id, leaderboardID)
		cb.OnSuccess(board, doc.scores(b.id, board), doc.hasMore())
	}, cb.OnFailure)
}

func (b *backend) ReportScore(leaderboardID string, value int64, cb provider.ReportScoreCallbacks) {
	body := commandBody{Provider: b.id, LeaderboardID: leaderboardID, Value: value}
	b.call("reportScore", body, func(doc reply) {
		if doc.status() != statusSuccess {
			cb.OnFailure(doc.message())
			return
		}
		board := doc.leaderboard(b.id, leaderboardID)
		cb.OnSuccess(doc.score(b.id, board))
	}, cb.OnFailure)
}

// call sends one command and funnels the reply into onReply, or the
// transport error into onFailure.
func (b *backend) call(kind string, body commandBody, onReply func(reply), onFailure func(string)) {
	err := b.caller.Call(kind, body, func(raw []byte, err error) {
		if err != nil {
			onFailure(err.Error())
			return
		}
		onReply(parseReply(raw))
	})
	if err != nil {
		onFailure(err.Error())
	}
}

// unsupported reports a capability the network does not offer through
// the failure continuation.
func (b *backend) unsupported(op string, onFailure func(string)) {
	msg := string(b.id) + " does not support " + op
	b.log.Debug("unsupported capability invoked", "provider", b.id, "operation", op)
	if onFailure != nil {
		onFailure(msg)
	}
}
