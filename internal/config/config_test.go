package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Cache.MaxCacheBytes != 104857600 {
		t.Errorf("default budget = %d, want 104857600", cfg.Cache.MaxCacheBytes)
	}
	if cfg.Cache.PreloadWindow != 5 {
		t.Errorf("default preload window = %d, want 5", cfg.Cache.PreloadWindow)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[cache]
directory = "` + dir + `/audio"
max_cache_bytes = 1024
preload_window = 3

[logging]
format = "json"
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be reported as found")
	}
	if resolved != path {
		t.Errorf("resolved path = %q, want %q", resolved, path)
	}
	if cfg.Cache.MaxCacheBytes != 1024 {
		t.Errorf("max_cache_bytes = %d, want 1024", cfg.Cache.MaxCacheBytes)
	}
	if cfg.Cache.PreloadWindow != 3 {
		t.Errorf("preload_window = %d, want 3", cfg.Cache.PreloadWindow)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("logging format = %q, want json", cfg.Logging.Format)
	}
	if !filepath.IsAbs(cfg.Cache.Directory) {
		t.Errorf("cache directory should be absolute, got %q", cfg.Cache.Directory)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")

	cfg, _, exists, err := Load(missing)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("missing file should not be reported as found")
	}
	if cfg.Cache.MaxCacheBytes != defaultMaxCacheBytes {
		t.Errorf("expected default budget, got %d", cfg.Cache.MaxCacheBytes)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[cache]\nmax_gib = 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero budget", func(c *Config) { c.Cache.MaxCacheBytes = 0 }},
		{"negative budget", func(c *Config) { c.Cache.MaxCacheBytes = -1 }},
		{"zero window", func(c *Config) { c.Cache.PreloadWindow = 0 }},
		{"negative timeout", func(c *Config) { c.Cache.DownloadTimeoutSeconds = -5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}

func TestExpandPathHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	expanded, err := ExpandPath("~/cache")
	if err != nil {
		t.Fatalf("ExpandPath failed: %v", err)
	}
	if !strings.HasPrefix(expanded, home) {
		t.Errorf("expanded path %q should start with home %q", expanded, home)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	if err := CreateSample(target); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	cfg, _, exists, err := Load(target)
	if err != nil {
		t.Fatalf("sample config should load cleanly: %v", err)
	}
	if !exists {
		t.Fatal("sample config file should exist")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("sample config should validate: %v", err)
	}
}
