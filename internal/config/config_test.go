package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "AIza-test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BindAddr != ":8080" {
		t.Fatalf("BindAddr = %q, want :8080", cfg.BindAddr)
	}
	if cfg.BrainProvider != "gemini" {
		t.Fatalf("BrainProvider = %q, want gemini", cfg.BrainProvider)
	}
	if cfg.BrainModel != "gemini-2.5-flash" {
		t.Fatalf("BrainModel = %q", cfg.BrainModel)
	}
	if cfg.ListenStartTimeout != 5*time.Second || cfg.ListenPhraseLimit != 6*time.Second {
		t.Fatalf("listen window = %v/%v, want 5s/6s", cfg.ListenStartTimeout, cfg.ListenPhraseLimit)
	}
	if cfg.SpeechStopTimeout != 2*time.Second {
		t.Fatalf("SpeechStopTimeout = %v, want 2s", cfg.SpeechStopTimeout)
	}
	if cfg.ScheduleDBPath != "schedule.db" {
		t.Fatalf("ScheduleDBPath = %q", cfg.ScheduleDBPath)
	}
	if cfg.BrainContextWindow != 0 {
		t.Fatalf("BrainContextWindow = %d, want 0 (unbounded)", cfg.BrainContextWindow)
	}
}

func TestLoadMissingGeminiKeyIsFatal(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("BRAIN_PROVIDER", "gemini")

	_, err := Load()
	if err == nil {
		t.Fatalf("Load() should fail without GEMINI_API_KEY")
	}
	if !strings.Contains(err.Error(), "GEMINI_API_KEY") {
		t.Fatalf("error should mention the missing key, got %v", err)
	}
}

func TestLoadMockProviderNeedsNoKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("BRAIN_PROVIDER", "mock")

	if _, err := Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	t.Setenv("BRAIN_PROVIDER", "mock")

	cases := map[string]string{
		"LISTEN_START_TIMEOUT": "soon",
		"BRAIN_CONTEXT_WINDOW": "-3",
		"TELEGRAM_CHAT_ID":     "not-a-number",
		"APP_ALLOW_ANY_ORIGIN": "maybe",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			if _, err := Load(); err == nil {
				t.Fatalf("Load() should reject %s=%q", key, val)
			}
		})
	}
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	t.Setenv("BRAIN_PROVIDER", "gpt-9")
	if _, err := Load(); err == nil {
		t.Fatalf("Load() should reject unknown brain provider")
	}
}
