package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Component: "test", Level: "warn", Output: &buf})

	log.Info("should be suppressed")
	log.Warn("should appear")

	out := buf.String()
	if strings.Contains(out, "should be suppressed") {
		t.Error("info line logged at warn level")
	}
	if !strings.Contains(out, "should appear") {
		t.Error("warn line missing")
	}
}

func TestNew_InvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "nonsense", Output: &buf})

	log.Debug("debug line")
	log.Info("info line")

	out := buf.String()
	if strings.Contains(out, "debug line") {
		t.Error("debug should be suppressed at default level")
	}
	if !strings.Contains(out, "info line") {
		t.Error("info line missing")
	}
}

func TestComponentField(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Component: "bridge", Output: &buf, JSON: true})

	log.Info("hello")

	if !strings.Contains(buf.String(), `"component":"bridge"`) {
		t.Errorf("component field missing: %s", buf.String())
	}
}

func TestKeyValuePairs(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Output: &buf, JSON: true})

	log.Info("login finished", "provider", "facebook", "user_id", "u1")

	out := buf.String()
	if !strings.Contains(out, `"provider":"facebook"`) {
		t.Errorf("provider field missing: %s", out)
	}
	if !strings.Contains(out, `"user_id":"u1"`) {
		t.Errorf("user_id field missing: %s", out)
	}
}

func TestOddKeyValuePairs(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Output: &buf, JSON: true})

	log.Info("msg", "dangling")

	if !strings.Contains(buf.String(), "EXTRA_VALUE") {
		t.Errorf("dangling value not captured: %s", buf.String())
	}
}

func TestWithFields_Nil(t *testing.T) {
	log := NewDefault("test")
	if log.WithFields(nil) == nil {
		t.Fatal("WithFields(nil) returned nil entry")
	}
}
