package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigFileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"ghost_mode": false, "engine": {"depth": 1, "seed": 42}}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.GhostMode {
		t.Fatalf("expected ghost mode to be disabled")
	}
	if cfg.Engine.Depth != 1 || cfg.Engine.Seed != 42 {
		t.Fatalf("expected engine overrides, got %+v", cfg.Engine)
	}
	if cfg.Engine.Radius != 2 || cfg.Engine.Weights.FourOpen != 100.0 {
		t.Fatalf("expected untouched engine fields to keep defaults, got %+v", cfg.Engine)
	}
	if cfg.AiGhostThrottleMs != DefaultConfig().AiGhostThrottleMs {
		t.Fatalf("expected throttle default to survive, got %d", cfg.AiGhostThrottleMs)
	}
}

func TestLoadConfigFileErrors(t *testing.T) {
	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected missing file to fail")
	}
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfigFile(path); err == nil {
		t.Fatalf("expected malformed file to fail")
	}
}

func TestSearchConfigHonorsStatsFlag(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AiLogSearchStats = true
	if !cfg.searchConfig().LogSearchStats {
		t.Fatalf("expected backend stats flag to enable engine stats logging")
	}
}
