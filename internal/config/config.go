// Package config loads the trainviz runtime configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate and Load for out-of-range values.
var ErrInvalidConfig = errors.New("invalid config")

const defaultConfigYAML = `# trainviz configuration

# Frames per second. The stage clock and the animator advance once per frame.
fps: 30

# debug, info, warn or error. Logs go to log_file; leave it empty to disable.
log_level: info
log_file: ""

# SQLite DSN for the train journal, e.g. "file:trainviz.db". Empty disables it.
journal: ""

# Path to a YAML train program. Empty runs the built-in demo.
program: ""

stage:
  width: 60
  height: 16
`

// StageConfig is the initial size of the drawing area, in cells.
type StageConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Config models trainviz.yaml.
type Config struct {
	FPS      int         `yaml:"fps"`
	LogLevel string      `yaml:"log_level"`
	LogFile  string      `yaml:"log_file"`
	Journal  string      `yaml:"journal"`
	Program  string      `yaml:"program"`
	Stage    StageConfig `yaml:"stage"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	var c Config
	// The embedded document is static; a decode failure is a programming error.
	if err := yaml.Unmarshal([]byte(defaultConfigYAML), &c); err != nil {
		panic(fmt.Sprintf("config: decode defaults: %v", err))
	}
	return c
}

// DefaultYAML returns the commented default configuration document.
func DefaultYAML() string {
	return defaultConfigYAML
}

// EnsureFile writes the default configuration to path unless a file is
// already there. It reports whether it wrote one.
func EnsureFile(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("config: stat %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("config: create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(defaultConfigYAML), 0o644); err != nil {
		return false, fmt.Errorf("config: write %s: %w", path, err)
	}
	return true, nil
}

// Load reads path over the defaults. A missing file yields Default().
func Load(path string) (Config, error) {
	c := Default()
	if strings.TrimSpace(path) == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c, nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return c, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.FPS < 1 || c.FPS > 240 {
		return fmt.Errorf("%w: fps must be between 1 and 240, got %d", ErrInvalidConfig, c.FPS)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Stage.Width < 1 || c.Stage.Height < 1 {
		return fmt.Errorf("%w: stage size must be positive, got %dx%d", ErrInvalidConfig, c.Stage.Width, c.Stage.Height)
	}
	return nil
}

// FrameInterval is the duration of one frame at FPS.
func (c Config) FrameInterval() time.Duration {
	if c.FPS <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(c.FPS)
}

// SlogLevel returns LogLevel as a slog.Level, defaulting to Info.
func (c Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, s)
}
