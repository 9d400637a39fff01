// Package httpapi exposes the daemon's HTTP surface: health,
// registered providers, recent events, and metrics, plus the
// application-facing command routes that drive provider operations.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/NovaPlay-Games/social_bridge/internal/bus"
	"github.com/NovaPlay-Games/social_bridge/internal/metrics"
	"github.com/NovaPlay-Games/social_bridge/internal/orchestrator"
	"github.com/NovaPlay-Games/social_bridge/internal/social"
	"github.com/NovaPlay-Games/social_bridge/pkg/logger"
)

// Handler serves the admin API.
type Handler struct {
	orch *orchestrator.Orchestrator
	bus  *bus.Bus
	log  *logger.Logger
}

// NewHandler creates the admin handler.
func NewHandler(orch *orchestrator.Orchestrator, b *bus.Bus, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.NewDefault("httpapi")
	}
	return &Handler{orch: orch, bus: b, log: log}
}

// Router builds the route table.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)
	r.HandleFunc("/v1/providers", h.providers).Methods(http.MethodGet)
	r.HandleFunc("/v1/providers/{id}/status", h.providerStatus).Methods(http.MethodGet)
	r.HandleFunc("/v1/events/recent", h.recentEvents).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	h.commandRoutes(r)
	return r
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Warn("response encode failed", "error", err)
	}
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"events": h.bus.Count(),
	})
}

func (h *Handler) providers(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"providers": h.orch.Providers(),
	})
}

func (h *Handler) providerStatus(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["id"]
	id, err := social.ParseProviderID(raw)
	if err != nil {
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}

	loggedIn, err := h.orch.IsLoggedIn(id)
	if err != nil {
		status := http.StatusInternalServerError
		if social.IsConfigurationError(err) {
			status = http.StatusNotFound
		}
		h.writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	body := map[string]any{
		"provider": id,
		"loggedIn": loggedIn,
	}
	if profile, ok, err := h.orch.StoredProfile(r.Context(), id); err == nil && ok {
		body["profile"] = profile
	}
	h.writeJSON(w, http.StatusOK, body)
}

func (h *Handler) recentEvents(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	var records []bus.Record
	if raw := r.URL.Query().Get("provider"); raw != "" {
		id, err := social.ParseProviderID(raw)
		if err != nil {
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		records = h.bus.RecentByProvider(id, limit)
	} else {
		records = h.bus.Recent(limit)
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"events": records,
		"count":  len(records),
	})
}
