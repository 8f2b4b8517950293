package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %s, want 8080", cfg.Port)
	}
	if cfg.SettleMinDelay != time.Second {
		t.Errorf("SettleMinDelay = %s, want 1s", cfg.SettleMinDelay)
	}
	if cfg.SettleMaxDelay != 2*time.Second {
		t.Errorf("SettleMaxDelay = %s, want 2s", cfg.SettleMaxDelay)
	}
	if cfg.GeminiModel == "" {
		t.Error("Expected a default model name")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SETTLE_MIN_DELAY", "5ms")
	t.Setenv("SETTLE_MAX_DELAY", "10ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port = %s, want 9090", cfg.Port)
	}
	if cfg.SettleMinDelay != 5*time.Millisecond || cfg.SettleMaxDelay != 10*time.Millisecond {
		t.Errorf("Delays = %s/%s, want 5ms/10ms", cfg.SettleMinDelay, cfg.SettleMaxDelay)
	}
}

func TestLoad_RejectsInvertedDelays(t *testing.T) {
	t.Setenv("SETTLE_MIN_DELAY", "2s")
	t.Setenv("SETTLE_MAX_DELAY", "1s")

	if _, err := Load(); err == nil {
		t.Fatal("Expected error for max delay below min delay, got nil")
	}
}
