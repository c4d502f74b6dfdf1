// Package config loads Skein configuration from TOML files.
//
// Configuration is optional: every field has a working default, so both
// the CLI and the API server run with no config file at all. When present,
// the file is looked up at the path given on the command line, then at
// $XDG_CONFIG_HOME/skein/config.toml, then ~/.config/skein/config.toml.
//
// Example:
//
//	[server]
//	addr = ":8080"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[layout]
//	strategy = "hierarchical"
//	direction = "TB"
//	seed = 42
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/skein-dev/skein/pkg/layout"
)

// appName is used for the XDG config directory.
const appName = "skein"

// Cache backend names accepted in [CacheConfig].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the root configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
	Layout LayoutConfig `toml:"layout"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `toml:"addr"`
}

// CacheConfig configures the layout-result cache.
type CacheConfig struct {
	// Backend is one of "file", "redis", or "none".
	Backend string `toml:"backend"`

	// Dir overrides the file cache directory.
	Dir string `toml:"dir"`

	// RedisAddr is the host:port of the Redis server.
	RedisAddr string `toml:"redis_addr"`

	// RedisPassword is optional.
	RedisPassword string `toml:"redis_password"`

	// RedisDB selects the logical Redis database.
	RedisDB int `toml:"redis_db"`
}

// LayoutConfig carries default layout options, overridable per request.
type LayoutConfig struct {
	Strategy   string  `toml:"strategy"`
	Direction  string  `toml:"direction"`
	NodeWidth  float64 `toml:"node_width"`
	NodeHeight float64 `toml:"node_height"`
	NodeSep    float64 `toml:"nodesep"`
	RankSep    float64 `toml:"ranksep"`
	MarginX    float64 `toml:"marginx"`
	MarginY    float64 `toml:"marginy"`
	Seed       uint64  `toml:"seed"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Cache:  CacheConfig{Backend: BackendFile},
	}
}

// Load reads configuration from path. An empty path falls back to the
// XDG lookup; a missing file at any location yields [Default] without
// error. A file that exists but fails to parse is an error.
func Load(path string) (Config, error) {
	if path == "" {
		var err error
		path, err = defaultPath()
		if err != nil {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// defaultPath returns the XDG config file location.
func defaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// LayoutOptions converts the configured layout defaults into engine
// options. Zero fields stay zero and pick up the engine defaults.
func (c LayoutConfig) LayoutOptions() layout.Options {
	return layout.Options{
		Strategy:   layout.Strategy(c.Strategy),
		Direction:  layout.Direction(c.Direction),
		NodeWidth:  c.NodeWidth,
		NodeHeight: c.NodeHeight,
		NodeSep:    c.NodeSep,
		RankSep:    c.RankSep,
		MarginX:    c.MarginX,
		MarginY:    c.MarginY,
		Seed:       c.Seed,
	}
}
