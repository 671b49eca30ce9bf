package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

const Name = "nvm-manager"

func ConfigDir() (string, error) {
	xdg.Reload()
	if xdg.ConfigHome != "" {
		return filepath.Join(xdg.ConfigHome, Name), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", Name), nil
}

func LogsDir() (string, error) {
	xdg.Reload()
	if xdg.StateHome != "" {
		return filepath.Join(xdg.StateHome, Name, "logs"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state", Name, "logs"), nil
}

func LogFileName(now time.Time) string {
	return now.Format("20060102-150405") + ".log"
}
