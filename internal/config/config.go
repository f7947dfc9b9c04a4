// Package config loads flowview configuration from a TOML file.
//
// All fields have working defaults; a missing config file is not an error.
// The CLI looks for flowview.toml in the working directory unless an
// explicit path is given with --config.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultPath is where Load looks when no explicit path is given.
const DefaultPath = "flowview.toml"

// Duration wraps time.Duration so TOML values can be written as strings
// like "24h" or "90s".
type Duration struct{ time.Duration }

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Config is the root configuration.
type Config struct {
	Server   Server   `toml:"server"`
	Render   Render   `toml:"render"`
	Sessions Sessions `toml:"sessions"`
	Diagrams Diagrams `toml:"diagrams"`
	Preview  Preview  `toml:"preview"`
}

// Server configures the HTTP surface.
type Server struct {
	Addr string `toml:"addr"`
}

// Render configures diagram text regeneration.
type Render struct {
	// Directive is substituted when a diagram carries no directive line.
	Directive string `toml:"directive"`
	// Callback is the click hook callback name emitted for the external
	// renderer.
	Callback string `toml:"callback"`
}

// Sessions selects and configures the session store backend.
type Sessions struct {
	// Backend is "memory" or "redis".
	Backend string `toml:"backend"`

	Redis struct {
		Addr     string   `toml:"addr"`
		Password string   `toml:"password"`
		DB       int      `toml:"db"`
		TTL      Duration `toml:"ttl"`
	} `toml:"redis"`
}

// Diagrams selects and configures the diagram store backend.
type Diagrams struct {
	// Backend is "memory" or "mongo".
	Backend string `toml:"backend"`

	Mongo struct {
		URI      string `toml:"uri"`
		Database string `toml:"database"`
	} `toml:"mongo"`
}

// Preview configures SVG preview rendering.
type Preview struct {
	// CacheDir is the file cache directory for CLI previews.
	// Empty disables the file cache.
	CacheDir string `toml:"cache_dir"`
	// CacheTTL bounds how long cached previews are reused.
	CacheTTL Duration `toml:"cache_ttl"`
}

// Default returns the built-in configuration.
func Default() Config {
	var c Config
	c.Server.Addr = ":8373"
	c.Render.Directive = "flowchart TD"
	c.Render.Callback = "nodeClick"
	c.Sessions.Backend = "memory"
	c.Sessions.Redis.Addr = "localhost:6379"
	c.Sessions.Redis.TTL = Duration{24 * time.Hour}
	c.Diagrams.Backend = "memory"
	c.Diagrams.Mongo.URI = "mongodb://localhost:27017"
	c.Diagrams.Mongo.Database = "flowview"
	c.Preview.CacheTTL = Duration{time.Hour}
	return c
}

// Load reads configuration from path, layered over the defaults. An empty
// path falls back to [DefaultPath] if it exists, else the defaults alone.
func Load(path string) (Config, error) {
	c := Default()

	if path == "" {
		if _, err := os.Stat(DefaultPath); err != nil {
			return c, nil
		}
		path = DefaultPath
	}

	if _, err := toml.DecodeFile(path, &c); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return c, nil
}
