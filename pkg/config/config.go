// Package config loads the plotplan tool configuration.
//
// Configuration lives in a TOML file at $XDG_CONFIG_HOME/plotplan/config.toml
// (falling back to ~/.config/plotplan/config.toml). A missing file is not an
// error: the defaults apply. The file holds tool preferences only - render
// defaults and cache backend selection - never plot inputs.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// appName is the directory name under the XDG config and cache homes.
const appName = "plotplan"

// Config is the root of the TOML configuration file.
type Config struct {
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
}

// RenderConfig holds default render settings; CLI flags override them.
type RenderConfig struct {
	Style    string   `toml:"style"`
	Formats  []string `toml:"formats"`
	MaxSize  float64  `toml:"max_size"`
	Padding  float64  `toml:"padding"`
	PNGScale float64  `toml:"png_scale"`
}

// CacheConfig selects and configures the artifact cache backend.
type CacheConfig struct {
	// Backend is one of "file", "redis", or "none".
	Backend  string      `toml:"backend"`
	TTLHours int         `toml:"ttl_hours"`
	Redis    RedisConfig `toml:"redis"`
}

// RedisConfig holds connection settings for the redis backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Render: RenderConfig{
			Style:    "simple",
			Formats:  []string{"svg"},
			MaxSize:  500,
			Padding:  40,
			PNGScale: 2,
		},
		Cache: CacheConfig{
			Backend:  "file",
			TTLHours: 24,
			Redis: RedisConfig{
				Addr: "localhost:6379",
			},
		},
	}
}

// Path returns the config file location using the XDG standard.
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns the cache directory using the XDG standard
// (~/.cache/plotplan/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load reads the configuration file at path. Unset values fall back to the
// defaults; a missing file yields the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg.normalized(), nil
}

// normalized fills zero values left by a partial file with defaults.
func (c Config) normalized() Config {
	d := Default()
	if c.Render.Style == "" {
		c.Render.Style = d.Render.Style
	}
	if len(c.Render.Formats) == 0 {
		c.Render.Formats = d.Render.Formats
	}
	if c.Render.MaxSize <= 0 {
		c.Render.MaxSize = d.Render.MaxSize
	}
	if c.Render.Padding <= 0 {
		c.Render.Padding = d.Render.Padding
	}
	if c.Render.PNGScale <= 0 {
		c.Render.PNGScale = d.Render.PNGScale
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = d.Cache.Backend
	}
	if c.Cache.TTLHours <= 0 {
		c.Cache.TTLHours = d.Cache.TTLHours
	}
	if c.Cache.Redis.Addr == "" {
		c.Cache.Redis.Addr = d.Cache.Redis.Addr
	}
	return c
}
