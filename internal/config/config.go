// Package config loads the engine-wide settings file: which archives to
// mount and in what order, which packet-set version to speak, keep-alive
// intervals, and audio cache bounds. Settings are YAML, matching the
// teacher's declared (if unused in its retrieved files) gopkg.in/yaml.v3
// dependency rather than inventing a bespoke format.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ArchiveMount is one entry in the archive load order; Path is either a
// native-archive file or a folder, distinguished by Kind.
type ArchiveMount struct {
	Kind string `yaml:"kind"` // "native" or "folder"
	Path string `yaml:"path"`
}

// KeepAlive holds per-connection keep-alive intervals as parsed from the
// settings file. The session orchestrator does not read them; it always
// uses its own built-in intervals.
type KeepAlive struct {
	Login     time.Duration `yaml:"login"`
	Character time.Duration `yaml:"character"`
	Map       time.Duration `yaml:"map"`
}

// AudioCache holds sample-cache bounds as parsed from the settings file.
// The audio sample cache does not read them; its bounds are fixed
// constants.
type AudioCache struct {
	MaxEntries int `yaml:"maxEntries"`
	MaxBytes   int `yaml:"maxBytes"`
}

// Config is the whole engine settings file.
type Config struct {
	PacketVersion string         `yaml:"packetVersion"` // e.g. "20120307" or "20220406"
	Archives      []ArchiveMount `yaml:"archives"`
	KeepAlive     KeepAlive      `yaml:"keepAlive"`
	Audio         AudioCache     `yaml:"audio"`
	DebugRelay    DebugRelay     `yaml:"debugRelay"`
}

// DebugRelay configures the opt-in websocket event mirror.
type DebugRelay struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// Load reads and parses a YAML settings file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Default returns the baseline settings a fresh install would use:
// nothing mounted, the newer packet version, engine-default intervals.
func Default() *Config {
	return &Config{
		PacketVersion: "20220406",
	}
}
