package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/NovaPlay-Games/social_bridge/internal/social"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "socialbridge.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
platform: ios
providers:
  - facebook
  - gamecenter
boundary:
  listen_addr: ":9000"
  path: /runtime
store:
  backend: redis
  redis:
    addr: localhost:6379
rewards:
  - id: r1
    name: coins
    amount: 25
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Platform != "ios" || cfg.Boundary.ListenAddr != ":9000" {
		t.Errorf("cfg = %+v", cfg)
	}
	ids := cfg.ProviderIDs()
	if len(ids) != 2 || ids[1] != social.ProviderGameCenter {
		t.Errorf("providers = %v", ids)
	}
	if len(cfg.Rewards) != 1 || cfg.Rewards[0].Amount != 25 {
		t.Errorf("rewards = %+v", cfg.Rewards)
	}
}

func TestLoadRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"unknown platform", "platform: windows\nboundary:\n  listen_addr: \":1\"\n"},
		{"unknown provider", "platform: ios\nproviders: [myspace]\nboundary:\n  listen_addr: \":1\"\n"},
		{"redis without addr", "platform: ios\nstore:\n  backend: redis\nboundary:\n  listen_addr: \":1\"\n"},
		{"missing boundary addr", "platform: ios\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tc.body)); err == nil {
				t.Error("Load accepted invalid config")
			}
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if cfg.Store.Backend != "memory" || cfg.Boundary.ListenAddr == "" {
		t.Errorf("default = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}
