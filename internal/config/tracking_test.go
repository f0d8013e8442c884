package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadTrackingWritesDefaultsOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracking.yml")

	cfg, err := LoadTracking(path)
	if err != nil {
		t.Fatalf("LoadTracking returned error: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file to be written: %v", err)
	}

	if len(cfg.StudyApps) == 0 || len(cfg.ProcrastinationWebsites) == 0 {
		t.Fatal("expected non-empty default lists")
	}
	if len(cfg.Browsers) == 0 {
		t.Fatal("expected default browser list")
	}
	if len(cfg.Quotes) == 0 {
		t.Fatal("expected default quotes")
	}

	found := false
	for _, app := range cfg.StudyApps {
		if app == "Obsidian" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected Obsidian in default study apps")
	}
}

func TestLoadTrackingReadsUserConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracking.yml")

	content := []byte("study_apps:\n  - OnlyApp\nbrowsers:\n  - OnlyApp\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadTracking(path)
	if err != nil {
		t.Fatalf("LoadTracking returned error: %v", err)
	}

	if len(cfg.StudyApps) != 1 || cfg.StudyApps[0] != "OnlyApp" {
		t.Fatalf("expected user list to win, got %v", cfg.StudyApps)
	}
	// 用户没写的键仍然取默认值
	if len(cfg.ProcrastinationWebsites) == 0 {
		t.Fatal("expected defaults for missing keys")
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "LISTEN_ADDR", "DATABASE_PATH", "GIN_MODE", "LOG_DIR",
		"TRACKING_CONFIG", "TRACKING_INTERVAL", "IDLE_TIMEOUT",
		"BREAK_THRESHOLD", "STATS_EVERY",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "5000" {
		t.Fatalf("unexpected default port: %s", cfg.Port)
	}
	if cfg.ListenAddr != "127.0.0.1:5000" {
		t.Fatalf("unexpected default listen addr: %s", cfg.ListenAddr)
	}
	if cfg.TrackingInterval.Seconds() != 5 {
		t.Fatalf("unexpected default interval: %s", cfg.TrackingInterval)
	}
	if cfg.IdleTimeout.Seconds() != 300 {
		t.Fatalf("unexpected default idle timeout: %s", cfg.IdleTimeout)
	}
	if cfg.BreakThreshold.Seconds() != 900 {
		t.Fatalf("unexpected default break threshold: %s", cfg.BreakThreshold)
	}
	if cfg.StatsEvery != 10 {
		t.Fatalf("unexpected default stats interval: %d", cfg.StatsEvery)
	}
	if cfg.DatabasePath == "" || cfg.LogDir == "" || cfg.TrackingConfigPath == "" {
		t.Fatal("expected path defaults to be filled in")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("TRACKING_INTERVAL", "30")
	t.Setenv("STATS_EVERY", "not-a-number")

	cfg := Load()

	if cfg.ListenAddr != "127.0.0.1:8080" {
		t.Fatalf("expected listen addr to follow port, got %s", cfg.ListenAddr)
	}
	if cfg.TrackingInterval.Seconds() != 30 {
		t.Fatalf("unexpected interval: %s", cfg.TrackingInterval)
	}
	// 非法数值回退默认
	if cfg.StatsEvery != 10 {
		t.Fatalf("expected fallback for invalid value, got %d", cfg.StatsEvery)
	}
}
