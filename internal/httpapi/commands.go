package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/NovaPlay-Games/social_bridge/internal/orchestrator"
	"github.com/NovaPlay-Games/social_bridge/internal/social"
)

// Command requests. Operations complete asynchronously: a 202 means
// the started event is on the bus and exactly one terminal event will
// follow; the outcome is observed by subscribing, or via
// /v1/events/recent.

type loginRequest struct {
	Payload  string `json:"payload"`
	RewardID string `json:"rewardId"`
}

type logoutRequest struct {
	Payload string `json:"payload"`
}

type statusUpdateRequest struct {
	Status   string `json:"status"`
	Payload  string `json:"payload"`
	RewardID string `json:"rewardId"`
}

type storyRequest struct {
	Message  string `json:"message"`
	Title    string `json:"title"`
	Caption  string `json:"caption"`
	Link     string `json:"link"`
	ImageURL string `json:"imageUrl"`
	Payload  string `json:"payload"`
	RewardID string `json:"rewardId"`
}

type imageRequest struct {
	Bytes    []byte `json:"bytes"`
	FileName string `json:"fileName"`
	Message  string `json:"message"`
	Payload  string `json:"payload"`
	RewardID string `json:"rewardId"`
}

type listRequest struct {
	FromStart bool   `json:"fromStart"`
	Payload   string `json:"payload"`
}

type inviteRequest struct {
	Message  string `json:"message"`
	Title    string `json:"title"`
	Payload  string `json:"payload"`
	RewardID string `json:"rewardId"`
}

type likeRequest struct {
	PageName string `json:"pageName"`
}

type reportScoreRequest struct {
	Value    int64  `json:"value"`
	Payload  string `json:"payload"`
	RewardID string `json:"rewardId"`
}

// commandRoutes registers the operation surface on the provider
// subrouter.
func (h *Handler) commandRoutes(r *mux.Router) {
	cmd := r.PathPrefix("/v1/providers/{id}").Subrouter()
	cmd.HandleFunc("/login", h.login).Methods(http.MethodPost)
	cmd.HandleFunc("/logout", h.logout).Methods(http.MethodPost)
	cmd.HandleFunc("/share/status", h.updateStatus).Methods(http.MethodPost)
	cmd.HandleFunc("/share/story", h.updateStory).Methods(http.MethodPost)
	cmd.HandleFunc("/share/image", h.uploadImage).Methods(http.MethodPost)
	cmd.HandleFunc("/contacts", h.getContacts).Methods(http.MethodPost)
	cmd.HandleFunc("/feed", h.getFeed).Methods(http.MethodPost)
	cmd.HandleFunc("/invite", h.invite).Methods(http.MethodPost)
	cmd.HandleFunc("/like", h.like).Methods(http.MethodPost)
	cmd.HandleFunc("/leaderboards", h.getLeaderboards).Methods(http.MethodPost)
	cmd.HandleFunc("/leaderboards/{board}/scores", h.getScores).Methods(http.MethodPost)
	cmd.HandleFunc("/leaderboards/{board}/scores/report", h.reportScore).Methods(http.MethodPost)
}

// readJSON decodes an optional JSON request body. An empty body
// leaves dst zero-valued.
func (h *Handler) readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return false
	}
	return true
}

// command parses the provider path variable, runs the operation, and
// maps its synchronous error to a status code. A nil error means the
// operation was accepted and its events will follow on the bus.
func (h *Handler) command(w http.ResponseWriter, r *http.Request, run func(id social.ProviderID) error) {
	raw := mux.Vars(r)["id"]
	id, err := social.ParseProviderID(raw)
	if err != nil {
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}

	if err := run(id); err != nil {
		h.writeJSON(w, commandStatus(err), map[string]string{"error": err.Error()})
		return
	}
	h.writeJSON(w, http.StatusAccepted, map[string]any{
		"status":   "accepted",
		"provider": id,
	})
}

func commandStatus(err error) int {
	switch {
	case social.IsConfigurationError(err):
		return http.StatusNotFound
	case errors.Is(err, social.ErrNotInitialized):
		return http.StatusServiceUnavailable
	case errors.Is(err, social.ErrEndOfResults):
		return http.StatusConflict
	case errors.Is(err, orchestrator.ErrLikeThrottled):
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.readJSON(w, r, &req) {
		return
	}
	h.command(w, r, func(id social.ProviderID) error {
		return h.orch.Login(id, req.Payload, req.RewardID)
	})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	var req logoutRequest
	if !h.readJSON(w, r, &req) {
		return
	}
	h.command(w, r, func(id social.ProviderID) error {
		return h.orch.Logout(id, req.Payload)
	})
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusUpdateRequest
	if !h.readJSON(w, r, &req) {
		return
	}
	h.command(w, r, func(id social.ProviderID) error {
		return h.orch.UpdateStatus(id, req.Status, req.Payload, req.RewardID)
	})
}

func (h *Handler) updateStory(w http.ResponseWriter, r *http.Request) {
	var req storyRequest
	if !h.readJSON(w, r, &req) {
		return
	}
	story := social.Story{
		Message:  req.Message,
		Title:    req.Title,
		Caption:  req.Caption,
		Link:     req.Link,
		ImageURL: req.ImageURL,
	}
	h.command(w, r, func(id social.ProviderID) error {
		return h.orch.UpdateStory(id, story, req.Payload, req.RewardID)
	})
}

func (h *Handler) uploadImage(w http.ResponseWriter, r *http.Request) {
	var req imageRequest
	if !h.readJSON(w, r, &req) {
		return
	}
	image := social.Image{
		Bytes:    req.Bytes,
		FileName: req.FileName,
		Message:  req.Message,
	}
	h.command(w, r, func(id social.ProviderID) error {
		return h.orch.UploadImage(id, image, req.Payload, req.RewardID)
	})
}

func (h *Handler) getContacts(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if !h.readJSON(w, r, &req) {
		return
	}
	h.command(w, r, func(id social.ProviderID) error {
		return h.orch.GetContacts(id, req.FromStart, req.Payload)
	})
}

func (h *Handler) getFeed(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if !h.readJSON(w, r, &req) {
		return
	}
	h.command(w, r, func(id social.ProviderID) error {
		return h.orch.GetFeed(id, req.FromStart, req.Payload)
	})
}

func (h *Handler) invite(w http.ResponseWriter, r *http.Request) {
	var req inviteRequest
	if !h.readJSON(w, r, &req) {
		return
	}
	invite := social.Invite{Message: req.Message, Title: req.Title}
	h.command(w, r, func(id social.ProviderID) error {
		return h.orch.Invite(id, invite, req.Payload, req.RewardID)
	})
}

func (h *Handler) like(w http.ResponseWriter, r *http.Request) {
	var req likeRequest
	if !h.readJSON(w, r, &req) {
		return
	}
	h.command(w, r, func(id social.ProviderID) error {
		return h.orch.Like(id, req.PageName)
	})
}

func (h *Handler) getLeaderboards(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if !h.readJSON(w, r, &req) {
		return
	}
	h.command(w, r, func(id social.ProviderID) error {
		return h.orch.GetLeaderboards(id, req.FromStart, req.Payload)
	})
}

func (h *Handler) getScores(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if !h.readJSON(w, r, &req) {
		return
	}
	board := mux.Vars(r)["board"]
	h.command(w, r, func(id social.ProviderID) error {
		return h.orch.GetScores(id, board, req.FromStart, req.Payload)
	})
}

func (h *Handler) reportScore(w http.ResponseWriter, r *http.Request) {
	var req reportScoreRequest
	if !h.readJSON(w, r, &req) {
		return
	}
	board := mux.Vars(r)["board"]
	h.command(w, r, func(id social.ProviderID) error {
		return h.orch.ReportScore(id, board, req.Value, req.Payload, req.RewardID)
	})
}
