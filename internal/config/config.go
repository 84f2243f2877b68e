package config

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/philipparndt/gopreview/pkg/document"
)

// Config holds the viewer settings read from config.toml
type Config struct {
	LogLevel string       `toml:"log_level"`
	Window   WindowConfig `toml:"window"`
	Render   RenderConfig `toml:"render"`
	Watch    WatchConfig  `toml:"watch"`
	Mesh     MeshConfig   `toml:"mesh"`
}

// WindowConfig is the initial size of GUI windows
type WindowConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// RenderConfig controls software rendering
type RenderConfig struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Background string `toml:"background"`
	Wireframe  bool   `toml:"wireframe"`
}

// WatchConfig controls automatic reloading
type WatchConfig struct {
	Enabled    bool `toml:"enabled"`
	DebounceMS int  `toml:"debounce_ms"`
}

// MeshConfig controls tessellation of brep faces
type MeshConfig struct {
	Cells int `toml:"cells"`
}

// Flags holds CLI flag values that override config file settings
type Flags struct {
	Verbose bool
	Width   int
	Height  int
	NoWatch bool
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		LogLevel: "info",
		Window:   WindowConfig{Width: 1200, Height: 800},
		Render: RenderConfig{
			Width:      1024,
			Height:     768,
			Background: "#28282e",
		},
		Watch: WatchConfig{Enabled: true, DebounceMS: 300},
		Mesh:  MeshConfig{Cells: document.DefaultOptions().Cells},
	}
}

// DefaultPath returns config.toml in the user's configuration directory
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: %w", err)
	}
	return filepath.Join(dir, "gopreview", "config.toml"), nil
}

// Load reads a TOML config file. Fields not set in the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields the defaults
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes the config as TOML
func (c Config) Save(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Marshal encodes the config as TOML
func (c Config) Marshal() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: encode: %w", err)
	}
	return data, nil
}

// Resolve applies CLI flags and fills invalid values with defaults.
// CLI flags take priority when non-zero.
func (c *Config) Resolve(flags Flags) {
	def := Default()

	if flags.Verbose {
		c.LogLevel = "debug"
	}
	if flags.Width > 0 {
		c.Render.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Render.Height = flags.Height
	}
	if flags.NoWatch {
		c.Watch.Enabled = false
	}

	if c.Window.Width <= 0 {
		c.Window.Width = def.Window.Width
	}
	if c.Window.Height <= 0 {
		c.Window.Height = def.Window.Height
	}
	if c.Render.Width <= 0 {
		c.Render.Width = def.Render.Width
	}
	if c.Render.Height <= 0 {
		c.Render.Height = def.Render.Height
	}
	if _, err := document.ParseColor(c.Render.Background); err != nil {
		slog.Warn("invalid background colour, using default", "value", c.Render.Background)
		c.Render.Background = def.Render.Background
	}
	if c.Watch.DebounceMS <= 0 {
		c.Watch.DebounceMS = def.Watch.DebounceMS
	}
	if c.Mesh.Cells <= 0 {
		c.Mesh.Cells = def.Mesh.Cells
	}
	if _, err := c.Level(); err != nil {
		c.LogLevel = def.LogLevel
	}
}

// Level returns the slog level named by LogLevel
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Background returns the parsed render background
func (c Config) Background() color.RGBA {
	bg, err := document.ParseColor(c.Render.Background)
	if err != nil {
		bg, _ = document.ParseColor(Default().Render.Background)
	}
	return bg
}

// Debounce returns the reload debounce interval
func (c Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}

// DocumentOptions returns the options for reading YAML documents
func (c Config) DocumentOptions() document.Options {
	return document.Options{Cells: c.Mesh.Cells}
}
