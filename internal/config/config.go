// internal/config/config.go
//
// This package handles configuration and the weekprogress state directory.
// The directory defaults to $XDG_CONFIG_HOME/weekprogress and can be moved
// with WEEKPROGRESS_HOME.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const (
	// HomeEnv overrides the state directory location.
	HomeEnv = "WEEKPROGRESS_HOME"

	// AppDir is the directory name created under the user config dir.
	AppDir = "weekprogress"

	defaultRefresh       = "@every 1m"
	defaultProgressWidth = 28
	minProgressWidth     = 10
	maxProgressWidth     = 200
)

const defaultConfigYAML = `# weekprogress configuration
version: 1

# How often the progress bar re-samples the clock. Any robfig/cron spec works,
# e.g. "@every 30s" or "* * * * *".
refresh: "@every 1m"

# Width of the progress bar in terminal cells.
progress_width: 28

theme:
  accent: "#166534"
  muted: "#15803D"
  highlight: "#DCFCE7"
`

// ThemeConfig holds the widget colors. Any lipgloss color string is accepted.
type ThemeConfig struct {
	Accent    string `yaml:"accent"`
	Muted     string `yaml:"muted"`
	Highlight string `yaml:"highlight"`
}

// Settings models config.yaml.
type Settings struct {
	Version       int         `yaml:"version"`
	Refresh       string      `yaml:"refresh"`
	ProgressWidth int         `yaml:"progress_width"`
	Theme         ThemeConfig `yaml:"theme"`
}

// Config holds the runtime configuration for weekprogress.
type Config struct {
	// HomeDir is the state directory holding config.yaml and logs/.
	HomeDir string

	Settings Settings

	schedule cron.Schedule
}

// ResolveHome returns the state directory: WEEKPROGRESS_HOME when set,
// otherwise AppDir under the user config directory.
func ResolveHome() (string, error) {
	if home := strings.TrimSpace(os.Getenv(HomeEnv)); home != "" {
		return filepath.Clean(home), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: locate user config dir: %w", err)
	}
	return filepath.Join(base, AppDir), nil
}

// InitDir creates the state directory structure and writes a default
// config.yaml on first run.
//
// Structure created:
// <home>/
// ├── config.yaml
// └── logs/         <- journal.log
func InitDir(homeDir string) error {
	if err := os.MkdirAll(filepath.Join(homeDir, "logs"), 0o755); err != nil {
		return fmt.Errorf("config: ensure state dir: %w", err)
	}
	return ensureConfigFile(filepath.Join(homeDir, "config.yaml"))
}

// NewConfig loads config.yaml from homeDir. A missing file yields defaults.
func NewConfig(homeDir string) (*Config, error) {
	cfg := &Config{
		HomeDir:  homeDir,
		Settings: defaultSettings(),
	}
	if err := cfg.load(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns an in-memory configuration that is never written to disk.
func Default() *Config {
	cfg := &Config{Settings: defaultSettings()}
	cfg.schedule, _ = cron.ParseStandard(defaultRefresh)
	return cfg
}

// ConfigPath returns the on-disk location of the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.HomeDir, "config.yaml")
}

// LogsDir returns the path to the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.HomeDir, "logs")
}

// JournalPath returns the file backing the session journal.
func (c *Config) JournalPath() string {
	return filepath.Join(c.LogsDir(), "journal.log")
}

// RefreshSchedule returns the parsed refresh schedule.
func (c *Config) RefreshSchedule() cron.Schedule {
	if c == nil || c.schedule == nil {
		return Default().schedule
	}
	return c.schedule
}

// Theme returns the configured colors.
func (c *Config) Theme() ThemeConfig {
	return c.Settings.Theme
}

// ProgressWidth returns the configured bar width.
func (c *Config) ProgressWidth() int {
	return c.Settings.ProgressWidth
}

// Save writes the current settings back to config.yaml.
func (c *Config) Save() error {
	if c == nil {
		return fmt.Errorf("config: nil receiver")
	}
	c.Settings.applyDefaults()
	c.Settings.normalize()
	schedule, err := c.Settings.validate()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	c.schedule = schedule
	if err := os.MkdirAll(c.HomeDir, 0o755); err != nil {
		return fmt.Errorf("config: ensure state dir: %w", err)
	}
	data, err := yaml.Marshal(c.Settings)
	if err != nil {
		return fmt.Errorf("config: encode config: %w", err)
	}
	if err := os.WriteFile(c.ConfigPath(), data, 0o644); err != nil {
		return fmt.Errorf("config: write config: %w", err)
	}
	return nil
}

func (c *Config) load() error {
	path := c.ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: read %s: %w", path, err)
		}
		data = nil
	}

	parsed := c.Settings
	if len(data) > 0 {
		parsed = Settings{}
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	parsed.applyDefaults()
	parsed.normalize()
	schedule, err := parsed.validate()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Settings = parsed
	c.schedule = schedule
	return nil
}

func defaultSettings() Settings {
	return Settings{
		Version:       1,
		Refresh:       defaultRefresh,
		ProgressWidth: defaultProgressWidth,
		Theme:         defaultTheme(),
	}
}

func defaultTheme() ThemeConfig {
	return ThemeConfig{
		Accent:    "#166534",
		Muted:     "#15803D",
		Highlight: "#DCFCE7",
	}
}

func (s *Settings) applyDefaults() {
	if s.Version == 0 {
		s.Version = 1
	}
	if strings.TrimSpace(s.Refresh) == "" {
		s.Refresh = defaultRefresh
	}
	if s.ProgressWidth == 0 {
		s.ProgressWidth = defaultProgressWidth
	}
	theme := defaultTheme()
	if strings.TrimSpace(s.Theme.Accent) == "" {
		s.Theme.Accent = theme.Accent
	}
	if strings.TrimSpace(s.Theme.Muted) == "" {
		s.Theme.Muted = theme.Muted
	}
	if strings.TrimSpace(s.Theme.Highlight) == "" {
		s.Theme.Highlight = theme.Highlight
	}
}

func (s *Settings) normalize() {
	s.Refresh = strings.TrimSpace(s.Refresh)
	s.Theme.Accent = strings.TrimSpace(s.Theme.Accent)
	s.Theme.Muted = strings.TrimSpace(s.Theme.Muted)
	s.Theme.Highlight = strings.TrimSpace(s.Theme.Highlight)
}

func (s Settings) validate() (cron.Schedule, error) {
	if s.Version < 1 {
		return nil, fmt.Errorf("config version must be >= 1")
	}
	if s.ProgressWidth < minProgressWidth || s.ProgressWidth > maxProgressWidth {
		return nil, fmt.Errorf("progress_width must be between %d and %d", minProgressWidth, maxProgressWidth)
	}
	schedule, err := cron.ParseStandard(s.Refresh)
	if err != nil {
		return nil, fmt.Errorf("refresh %q: %w", s.Refresh, err)
	}
	return schedule, nil
}

func ensureConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := os.WriteFile(path, []byte(defaultConfigYAML), 0o644); err != nil {
		return fmt.Errorf("config: write default config: %w", err)
	}
	return nil
}
