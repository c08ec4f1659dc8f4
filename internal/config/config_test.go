package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("default port: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Scraper.DefaultNumImages != 10 {
		t.Errorf("default num images: got %d, want 10", cfg.Scraper.DefaultNumImages)
	}
	if cfg.Scraper.MinWidth != 100 || cfg.Scraper.MinHeight != 100 {
		t.Errorf("default min dimensions: got %dx%d, want 100x100", cfg.Scraper.MinWidth, cfg.Scraper.MinHeight)
	}
	if cfg.Scraper.SettleDelay != 5*time.Second {
		t.Errorf("default settle delay: got %v, want 5s", cfg.Scraper.SettleDelay)
	}
	if cfg.Scraper.RetryAttempts != 3 {
		t.Errorf("default retry attempts: got %d, want 3", cfg.Scraper.RetryAttempts)
	}
	if !cfg.Browser.Headless {
		t.Error("browser should default to headless")
	}
	if cfg.Search.Endpoint != "https://www.google.com/search" {
		t.Errorf("default search endpoint: got %q", cfg.Search.Endpoint)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("SCRAPER_BASE_DIR", "/tmp/images")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("env port override: got %d, want 9090", cfg.Server.Port)
	}
	if cfg.Scraper.BaseDir != "/tmp/images" {
		t.Errorf("env base dir override: got %q", cfg.Scraper.BaseDir)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 5000
  mode: release
scraper:
  scroll_pause: 100ms
  max_concurrent_jobs: 2
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 5000 {
		t.Errorf("file port: got %d, want 5000", cfg.Server.Port)
	}
	if cfg.Server.Mode != "release" {
		t.Errorf("file mode: got %q, want release", cfg.Server.Mode)
	}
	if cfg.Scraper.ScrollPause != 100*time.Millisecond {
		t.Errorf("file scroll pause: got %v, want 100ms", cfg.Scraper.ScrollPause)
	}
	if cfg.Scraper.MaxConcurrentJobs != 2 {
		t.Errorf("file max concurrent jobs: got %d, want 2", cfg.Scraper.MaxConcurrentJobs)
	}
	// Untouched keys keep their defaults.
	if cfg.Scraper.RetryWait != 2*time.Second {
		t.Errorf("default retry wait: got %v, want 2s", cfg.Scraper.RetryWait)
	}
}
