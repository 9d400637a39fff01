package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/NovaPlay-Games/social_bridge/internal/bus"
	"github.com/NovaPlay-Games/social_bridge/internal/orchestrator"
	"github.com/NovaPlay-Games/social_bridge/internal/profilestore"
	"github.com/NovaPlay-Games/social_bridge/internal/social"
)

func newTestHandler(t *testing.T) (*Handler, *bus.Bus) {
	t.Helper()
	b := bus.New(16)
	orch := orchestrator.New(orchestrator.Config{
		Bus:      b,
		Profiles: profilestore.NewMemoryStore(),
	})
	if err := orch.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return NewHandler(orch, b, nil), b
}

func get(t *testing.T, h *Handler, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	var body map[string]any
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") == "application/json" {
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("bad json body %q: %v", rec.Body.String(), err)
		}
	}
	return rec, body
}

func TestHealth(t *testing.T) {
	h, _ := newTestHandler(t)
	rec, body := get(t, h, "/healthz")
	if rec.Code != http.StatusOK || body["status"] != "ok" {
		t.Errorf("code = %d, body = %v", rec.Code, body)
	}
}

func TestProvidersEmpty(t *testing.T) {
	h, _ := newTestHandler(t)
	rec, body := get(t, h, "/v1/providers")
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
	if body["providers"] != nil {
		if list, ok := body["providers"].([]any); ok && len(list) != 0 {
			t.Errorf("providers = %v", list)
		}
	}
}

func TestProviderStatusUnknownID(t *testing.T) {
	h, _ := newTestHandler(t)
	rec, _ := get(t, h, "/v1/providers/myspace/status")
	if rec.Code != http.StatusNotFound {
		t.Errorf("code = %d, want 404", rec.Code)
	}
}

func TestProviderStatusUnregistered(t *testing.T) {
	h, _ := newTestHandler(t)
	rec, _ := get(t, h, "/v1/providers/facebook/status")
	if rec.Code != http.StatusNotFound {
		t.Errorf("code = %d, want 404 for unregistered provider", rec.Code)
	}
}

func TestRecentEvents(t *testing.T) {
	h, b := newTestHandler(t)
	b.Publish(social.LoginStarted{EventMeta: social.EventMeta{Provider: social.ProviderFacebook}})
	b.Publish(social.LoginFinished{
		EventMeta: social.EventMeta{Provider: social.ProviderFacebook},
		Profile:   social.UserProfile{ProfileID: "u1"},
	})

	rec, body := get(t, h, "/v1/events/recent?limit=10")
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
	if body["count"].(float64) != 2 {
		t.Errorf("count = %v", body["count"])
	}

	rec, _ = get(t, h, "/v1/events/recent?limit=zero")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad limit code = %d", rec.Code)
	}

	rec, body = get(t, h, "/v1/events/recent?provider=google")
	if rec.Code != http.StatusOK || body["count"].(float64) != 0 {
		t.Errorf("google events code = %d, count = %v", rec.Code, body["count"])
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("code = %d", rec.Code)
	}
}
