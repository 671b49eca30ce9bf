package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadCreatesDefaultConfig(t *testing.T) {
	cfgHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", cfgHome)
	t.Setenv(EnvPath, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Tool.Binary != "nvm" {
		t.Fatalf("unexpected tool binary: %q", cfg.Tool.Binary)
	}
	if cfg.MessageDuration() != 5*time.Second {
		t.Fatalf("unexpected message duration: %v", cfg.MessageDuration())
	}
	if cfg.ToolTimeout() != 0 {
		t.Fatalf("tool commands should be unbounded by default")
	}
	p := filepath.Join(cfgHome, "nvm-manager", "config.json")
	if _, err := os.Stat(p); err != nil {
		t.Fatalf("expected config file: %v", err)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "custom", "config.json")
	t.Setenv(EnvPath, p)

	cfg := Default()
	cfg.Tool.Binary = "nvm-windows"
	cfg.Catalog.URL = "https://mirror.example/dist/index.json"
	cfg.Theme.Colors = map[string]string{"status_installed": "#00ff00"}
	if err := Save(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Tool.Binary != "nvm-windows" || loaded.Catalog.URL != cfg.Catalog.URL {
		t.Fatalf("round trip mismatch: %#v", loaded)
	}
	if loaded.Theme.Colors["status_installed"] != "#00ff00" {
		t.Fatalf("theme colors lost: %#v", loaded.Theme.Colors)
	}
}

func TestEnsureDefaultsFillsMissingFields(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	t.Setenv(EnvPath, p)
	if err := os.WriteFile(p, []byte(`{"tool":{"timeout_seconds":-4}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Version != CurrentVersion || cfg.Tool.Binary != "nvm" || cfg.Tool.TimeoutSeconds != 0 {
		t.Fatalf("defaults not applied: %#v", cfg)
	}
	if cfg.Catalog.URL == "" || cfg.Catalog.TimeoutSeconds != 15 || cfg.Log.Level != "info" {
		t.Fatalf("defaults not applied: %#v", cfg)
	}
}
