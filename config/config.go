package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/railscope/stationboard/model"
)

// Config holds user-configurable defaults for the dashboard.
type Config struct {
	Endpoint       string `json:"endpoint"`
	IntervalSec    int    `json:"interval_sec"`
	DefaultStation string `json:"default_station"`
	ListenAddr     string `json:"listen_addr"`
}

// Default returns a config with sensible defaults.
func Default() Config {
	return Config{
		Endpoint:       "http://127.0.0.1:8000",
		IntervalSec:    30,
		DefaultStation: string(model.DefaultStation),
		ListenAddr:     ":8090",
	}
}

// Path returns ~/.config/stationboard/config.json (or XDG_CONFIG_HOME).
// Returns empty string if the home directory cannot be determined.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "stationboard", "config.json")
}

// Load loads config from disk; returns defaults on error.
func Load() Config {
	cfg := Default()
	p := Path()
	if p == "" {
		return cfg
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return cfg
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Printf("stationboard: warning: config parse error: %v", err)
	}
	return cfg
}

// Save writes the config to disk.
func Save(cfg Config) error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
