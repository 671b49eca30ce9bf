package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"nvm-manager/internal/app"
	"nvm-manager/internal/catalog"
	"nvm-manager/internal/nvm"
)

const CurrentVersion = 1

// EnvPath overrides the config file location.
const EnvPath = "NVM_MANAGER_CONFIG"

type Config struct {
	Version int           `json:"version" yaml:"version"`
	Tool    ToolConfig    `json:"tool" yaml:"tool"`
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`
	UI      UIConfig      `json:"ui" yaml:"ui"`
	Theme   ThemeConfig   `json:"theme" yaml:"theme"`
	Log     LogConfig     `json:"log" yaml:"log"`
}

type ToolConfig struct {
	Binary string `json:"binary" yaml:"binary"`
	// TimeoutSeconds bounds each tool command; 0 means no limit.
	TimeoutSeconds int `json:"timeout_seconds" yaml:"timeout_seconds"`
}

type CatalogConfig struct {
	URL            string `json:"url" yaml:"url"`
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds"`
}

type UIConfig struct {
	MessageSeconds int `json:"message_seconds" yaml:"message_seconds"`
}

type ThemeConfig struct {
	// Colors overrides palette entries by key, e.g. "status_installed": "#5fd787".
	Colors map[string]string `json:"colors,omitempty" yaml:"colors,omitempty"`
}

type LogConfig struct {
	Level string `json:"level" yaml:"level"`
}

func Default() Config {
	return Config{
		Version: CurrentVersion,
		Tool: ToolConfig{
			Binary: nvm.DefaultBinary,
		},
		Catalog: CatalogConfig{
			URL:            catalog.DefaultURL,
			TimeoutSeconds: 15,
		},
		UI: UIConfig{
			MessageSeconds: 5,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func EnsureDefaults(cfg *Config) {
	d := Default()
	if cfg.Version <= 0 {
		cfg.Version = CurrentVersion
	}
	if strings.TrimSpace(cfg.Tool.Binary) == "" {
		cfg.Tool.Binary = d.Tool.Binary
	}
	if cfg.Tool.TimeoutSeconds < 0 {
		cfg.Tool.TimeoutSeconds = 0
	}
	if strings.TrimSpace(cfg.Catalog.URL) == "" {
		cfg.Catalog.URL = d.Catalog.URL
	}
	if cfg.Catalog.TimeoutSeconds <= 0 {
		cfg.Catalog.TimeoutSeconds = d.Catalog.TimeoutSeconds
	}
	if cfg.UI.MessageSeconds <= 0 {
		cfg.UI.MessageSeconds = d.UI.MessageSeconds
	}
	if strings.TrimSpace(cfg.Log.Level) == "" {
		cfg.Log.Level = d.Log.Level
	}
}

func (c Config) ToolTimeout() time.Duration {
	return time.Duration(c.Tool.TimeoutSeconds) * time.Second
}

func (c Config) CatalogTimeout() time.Duration {
	return time.Duration(c.Catalog.TimeoutSeconds) * time.Second
}

func (c Config) MessageDuration() time.Duration {
	return time.Duration(c.UI.MessageSeconds) * time.Second
}

func Dir() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvPath)); p != "" {
		return filepath.Dir(p), nil
	}
	return app.ConfigDir()
}

func Path() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvPath)); p != "" {
		return p, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func Load() (Config, error) {
	cfgPath, err := Path()
	if err != nil {
		return Config{}, err
	}
	if _, err := os.Stat(cfgPath); errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		if err := Save(cfg); err != nil {
			return Config{}, err
		}
		return cfg, nil
	}
	b, err := os.ReadFile(cfgPath)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}
	EnsureDefaults(&cfg)
	return cfg, nil
}

func Save(cfg Config) error {
	EnsureDefaults(&cfg)
	cfgPath, err := Path()
	if err != nil {
		return err
	}
	dir := filepath.Dir(cfgPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	tmp := cfgPath + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, cfgPath)
}
