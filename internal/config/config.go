// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/timetable/internal/schedule"
)

// Config holds the application configuration.
type Config struct {
	Grid    GridConfig    `toml:"grid"`
	UI      UIConfig      `toml:"ui"`
	Storage StorageConfig `toml:"storage"`
	Catalog CatalogConfig `toml:"catalog"`
}

// GridConfig holds the drag geometry, in grid units.
type GridConfig struct {
	CellWidth          int `toml:"cell_width"`          // width of one day column
	CellHeight         int `toml:"cell_height"`         // height of one slot row
	HeaderWidth        int `toml:"header_width"`        // width of the time column
	HeaderHeight       int `toml:"header_height"`       // height of the day header
	ActivationDistance int `toml:"activation_distance"` // travel before a press becomes a drag
}

// Geometry returns the grid geometry described by the config.
func (g GridConfig) Geometry() schedule.Geometry {
	return schedule.Geometry{
		CellWidth:    g.CellWidth,
		CellHeight:   g.CellHeight,
		HeaderWidth:  g.HeaderWidth,
		HeaderHeight: g.HeaderHeight,
	}
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme       string `toml:"theme"`        // "mocha", "latte"
	ColumnWidth int    `toml:"column_width"` // terminal columns per day
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// CatalogConfig points at an extra lecture catalog merged over the built-in one.
type CatalogConfig struct {
	Path string `toml:"path"`
}

// Default returns the default configuration.
func Default() *Config {
	g := schedule.DefaultGeometry
	return &Config{
		Grid: GridConfig{
			CellWidth:          g.CellWidth,
			CellHeight:         g.CellHeight,
			HeaderWidth:        g.HeaderWidth,
			HeaderHeight:       g.HeaderHeight,
			ActivationDistance: 8,
		},
		UI: UIConfig{
			Theme:       "mocha",
			ColumnWidth: 10,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "timetable.db"
	}
	return filepath.Join(home, ".local", "share", "timetable", "timetable.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "timetable", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Catalog.Path = expandPath(cfg.Catalog.Path)

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
	if v := os.Getenv("TIMETABLE_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("TIMETABLE_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("TIMETABLE_CATALOG_PATH"); v != "" {
		cfg.Catalog.Path = v
	}
	if err := envInt("TIMETABLE_COLUMN_WIDTH", &cfg.UI.ColumnWidth); err != nil {
		return err
	}
	return envInt("TIMETABLE_ACTIVATION_DISTANCE", &cfg.Grid.ActivationDistance)
}

func envInt(name string, dst *int) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s must be an integer, got %q", name, v)
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

// MinColumnWidth is the narrowest day column that still fits a block title.
const MinColumnWidth = 6

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !c.Grid.Geometry().Valid() {
		return errors.New("grid cell sizes must be positive and header sizes non-negative")
	}
	if c.Grid.ActivationDistance < 0 {
		return errors.New("activation_distance must not be negative")
	}
	if c.UI.ColumnWidth < MinColumnWidth {
		return fmt.Errorf("column_width must be at least %d, got %d", MinColumnWidth, c.UI.ColumnWidth)
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
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
