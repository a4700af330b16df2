package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("WAZI_API_URL", "")
	t.Setenv("WAZI_STORAGE_PATH", "")
	t.Setenv("WAZI_STORAGE_SECRET", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:3000/api" {
		t.Fatalf("base url = %q", cfg.API.BaseURL)
	}
	if cfg.API.TimeoutSeconds != 15 {
		t.Fatalf("timeout = %d", cfg.API.TimeoutSeconds)
	}
	if !cfg.Notifications.Enabled {
		t.Fatal("notifications should default on")
	}
	if cfg.Storage.Path == "" {
		t.Fatal("storage path should have a default")
	}
}

func TestLoadParsesTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	raw := `
[api]
base_url = "https://api.wazihub.example"
timeout_seconds = 30

[storage]
path = "/var/lib/wazi/wazi.db"
secret = "s3cret"

[notifications]
enabled = false
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "https://api.wazihub.example" || cfg.API.TimeoutSeconds != 30 {
		t.Fatalf("api = %+v", cfg.API)
	}
	if cfg.Storage.Path != "/var/lib/wazi/wazi.db" || cfg.Storage.Secret != "s3cret" {
		t.Fatalf("storage = %+v", cfg.Storage)
	}
	if cfg.Notifications.Enabled {
		t.Fatal("notifications should be disabled")
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[api]\nbase_url = \"http://from-file\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("WAZI_API_URL", "http://from-env:8080")
	t.Setenv("WAZI_STORAGE_SECRET", "env-secret")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "http://from-env:8080" {
		t.Fatalf("base url = %q, want the env value", cfg.API.BaseURL)
	}
	if cfg.Storage.Secret != "env-secret" {
		t.Fatalf("secret = %q", cfg.Storage.Secret)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"bad url", "[api]\nbase_url = \"not a url\"\n"},
		{"zero timeout", "[api]\ntimeout_seconds = 0\n"},
		{"empty storage path", "[storage]\npath = \"\"\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.raw), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
