// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/rota/internal/schedule"
	"github.com/javiermolinar/rota/internal/timeaxis"
)

// Config holds the application configuration.
type Config struct {
	Timeline TimelineConfig `toml:"timeline"`
	Notify   NotifyConfig   `toml:"notify"`
	Clock    ClockConfig    `toml:"clock"`
	Storage  StorageConfig  `toml:"storage"`
	UI       UIConfig       `toml:"ui"`
	Log      LogConfig      `toml:"log"`
}

// TimelineConfig holds the pixel geometry of the timeline.
type TimelineConfig struct {
	PixelsPerHour float64 `toml:"pixels_per_hour"`
	RowHeight     float64 `toml:"row_height"`
	DragThreshold float64 `toml:"drag_threshold"` // pointer travel before a press becomes a drag
	MinBlockWidth float64 `toml:"min_block_width"`
	ViewStart     string  `toml:"view_start"` // e.g., "06:00"
	ViewEnd       string  `toml:"view_end"`   // e.g., "22:00"
}

// NotifyConfig holds toast settings.
type NotifyConfig struct {
	DurationMS int `toml:"duration_ms"`
}

// ClockConfig holds current-time indicator settings.
type ClockConfig struct {
	RefreshSeconds int `toml:"refresh_seconds"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme        string `toml:"theme"`          // "mocha", "latte"
	CellsPerHour int    `toml:"cells_per_hour"` // terminal columns per hour
	RowLines     int    `toml:"row_lines"`      // terminal lines per staff row
	Filter       string `toml:"filter"`         // "all", "unallocated", "assigned"
}

// LogConfig holds logging settings.
type LogConfig struct {
	Debug bool   `toml:"debug"`
	Dir   string `toml:"dir"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Timeline: TimelineConfig{
			PixelsPerHour: timeaxis.DefaultPixelsPerHour,
			RowHeight:     80,
			DragThreshold: 5,
			MinBlockWidth: 20,
			ViewStart:     "06:00",
			ViewEnd:       "22:00",
		},
		Notify: NotifyConfig{DurationMS: 2000},
		Clock:  ClockConfig{RefreshSeconds: 60},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme:        "mocha",
			CellsPerHour: 4,
			RowLines:     2,
			Filter:       "all",
		},
		Log: LogConfig{
			Dir: defaultLogDir(),
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "rota.db"
	}
	return filepath.Join(home, ".local", "share", "rota", "rota.db")
}

func defaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "state", "rota")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "rota", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Log.Dir = expandPath(cfg.Log.Dir)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	// Timeline overrides
	if err := envFloat("ROTA_PIXELS_PER_HOUR", &cfg.Timeline.PixelsPerHour); err != nil {
		return err
	}
	if err := envFloat("ROTA_ROW_HEIGHT", &cfg.Timeline.RowHeight); err != nil {
		return err
	}
	if err := envFloat("ROTA_DRAG_THRESHOLD", &cfg.Timeline.DragThreshold); err != nil {
		return err
	}
	if v := os.Getenv("ROTA_VIEW_START"); v != "" {
		cfg.Timeline.ViewStart = v
	}
	if v := os.Getenv("ROTA_VIEW_END"); v != "" {
		cfg.Timeline.ViewEnd = v
	}

	if err := envInt("ROTA_NOTIFY_MS", &cfg.Notify.DurationMS); err != nil {
		return err
	}
	if err := envInt("ROTA_CLOCK_REFRESH", &cfg.Clock.RefreshSeconds); err != nil {
		return err
	}

	// Storage overrides
	if v := os.Getenv("ROTA_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	// UI overrides
	if v := os.Getenv("ROTA_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("ROTA_UI_FILTER"); v != "" {
		cfg.UI.Filter = v
	}

	// Log overrides
	if v := os.Getenv("ROTA_DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("ROTA_DEBUG: %w", err)
		}
		cfg.Log.Debug = debug
	}
	if v := os.Getenv("ROTA_LOG_DIR"); v != "" {
		cfg.Log.Dir = v
	}
	return nil
}

func envFloat(key string, dst *float64) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = f
	return nil
}

func envInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

var validThemes = map[string]bool{
	"mocha": true,
	"latte": true,
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	t := c.Timeline
	if t.PixelsPerHour <= 0 {
		return errors.New("pixels_per_hour must be positive")
	}
	if t.RowHeight <= 0 {
		return errors.New("row_height must be positive")
	}
	if t.DragThreshold < 0 {
		return errors.New("drag_threshold must not be negative")
	}
	if t.MinBlockWidth < 0 {
		return errors.New("min_block_width must not be negative")
	}

	start, err := parseField(t.ViewStart, "view_start")
	if err != nil {
		return err
	}
	end, err := parseField(t.ViewEnd, "view_end")
	if err != nil {
		return err
	}
	if start >= end {
		return errors.New("view_start must be before view_end")
	}

	if c.Notify.DurationMS <= 0 {
		return errors.New("notify duration_ms must be positive")
	}
	if c.Clock.RefreshSeconds <= 0 {
		return errors.New("clock refresh_seconds must be positive")
	}
	if c.UI.CellsPerHour <= 0 {
		return errors.New("cells_per_hour must be positive")
	}
	if c.UI.RowLines <= 0 {
		return errors.New("row_lines must be positive")
	}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		return fmt.Errorf("unknown theme: %s", c.UI.Theme)
	}
	if _, err := schedule.ParseFilter(c.UI.Filter); err != nil {
		return err
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

func parseField(s, field string) (float64, error) {
	h, err := timeaxis.ParseHour(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be in HH:MM format, got %q", field, s)
	}
	return h, nil
}

// ViewHours returns the configured visible window as fractional hours.
// It assumes the config has been validated.
func (c *Config) ViewHours() (start, end float64) {
	start, _ = timeaxis.ParseHour(c.Timeline.ViewStart)
	end, _ = timeaxis.ParseHour(c.Timeline.ViewEnd)
	return start, end
}

// NotifyDuration returns how long a commit message stays visible.
func (c *Config) NotifyDuration() time.Duration {
	return time.Duration(c.Notify.DurationMS) * time.Millisecond
}

// ClockInterval returns how often the current-time marker is refreshed.
func (c *Config) ClockInterval() time.Duration {
	return time.Duration(c.Clock.RefreshSeconds) * time.Second
}

// FilterValue returns the configured display filter.
func (c *Config) FilterValue() schedule.Filter {
	f, err := schedule.ParseFilter(c.UI.Filter)
	if err != nil {
		return schedule.FilterAll
	}
	return f
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
