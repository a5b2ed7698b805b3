// Package config handles loading ordoflow.toml configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/amonks/ordoflow/internal/paths"
	"github.com/amonks/ordoflow/internal/validation"
)

// DatabaseEnvVar overrides the configured database path.
const DatabaseEnvVar = "ORDOFLOW_DB"

// Theme values accepted by [ui] theme.
const (
	ThemeAuto  = "auto"
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Log levels accepted by [log] level.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

var (
	validThemes = []string{ThemeAuto, ThemeLight, ThemeDark}
	validLevels = []string{LevelDebug, LevelInfo, LevelWarn, LevelError}
)

// ErrInvalidValue is returned when a config value is outside its allowed set.
var ErrInvalidValue = errors.New("invalid config value")

// Config represents the ordoflow.toml configuration file.
type Config struct {
	Store Store `toml:"store"`
	UI    UI    `toml:"ui"`
	Log   Log   `toml:"log"`
}

// Store contains task database configuration.
type Store struct {
	// Path is the SQLite database file. Empty means the default under
	// ~/.local/share/ordoflow.
	Path string `toml:"path"`
}

// UI contains terminal presentation settings.
type UI struct {
	// Theme selects the palette: auto, light or dark.
	Theme string `toml:"theme"`
}

// Log contains diagnostics settings.
type Log struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
	// File receives log output instead of stderr when set.
	File string `toml:"file"`
}

// Load loads configuration from the global config file and the
// ordoflow.toml in dir, the latter taking precedence per key.
// Unset keys get their defaults.
func Load(dir string) (*Config, error) {
	globalPath, err := paths.GlobalConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(dir, paths.ProjectConfigFileName))
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(globalCfg, projectCfg, globalMeta, projectMeta)
	merged.applyDefaults()
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: unknown key %q", path, undecoded[0].String())
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.Store.Path = mergeString(projectMeta.IsDefined("store", "path"), projectCfg.Store.Path, globalCfg.Store.Path)
	merged.UI.Theme = mergeString(projectMeta.IsDefined("ui", "theme"), projectCfg.UI.Theme, globalCfg.UI.Theme)
	merged.Log.Level = mergeString(projectMeta.IsDefined("log", "level"), projectCfg.Log.Level, globalCfg.Log.Level)
	merged.Log.File = mergeString(projectMeta.IsDefined("log", "file"), projectCfg.Log.File, globalCfg.Log.File)

	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	value := globalValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}

func (c *Config) applyDefaults() {
	if c.UI.Theme == "" {
		c.UI.Theme = ThemeAuto
	}
	if c.Log.Level == "" {
		c.Log.Level = LevelWarn
	}
	c.UI.Theme = strings.ToLower(c.UI.Theme)
	c.Log.Level = strings.ToLower(c.Log.Level)
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	if !slices.Contains(validThemes, c.UI.Theme) {
		return validation.FormatInvalidValueError(fmt.Errorf("%w: ui.theme", ErrInvalidValue), c.UI.Theme, validThemes)
	}
	if !slices.Contains(validLevels, c.Log.Level) {
		return validation.FormatInvalidValueError(fmt.Errorf("%w: log.level", ErrInvalidValue), c.Log.Level, validLevels)
	}
	return nil
}

// DatabasePath resolves the database file: override (a flag) wins, then
// the environment, then the config file, then the default location.
// A leading "~/" is expanded.
func (c *Config) DatabasePath(override string, getenv func(string) string) (string, error) {
	candidate := strings.TrimSpace(override)
	if candidate == "" && getenv != nil {
		candidate = strings.TrimSpace(getenv(DatabaseEnvVar))
	}
	if candidate == "" {
		candidate = c.Store.Path
	}

	path, err := paths.ResolveWithDefault(candidate, paths.DefaultDatabasePath)
	if err != nil {
		return "", err
	}
	return expandHome(path)
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := paths.HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
