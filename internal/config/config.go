// Package config loads todos settings. Sources, lowest priority first:
// built-in defaults, the TOML config file, TODOS_* environment variables.
// Command-line flags are applied on top by the cli package.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todos/internal/store"
)

const (
	StorageJSON   = "json"
	StorageSQLite = "sqlite"

	DefaultDataDir        = "~/.todos"
	DefaultTheme          = "classic"
	DefaultLogLevel       = "info"
	DefaultMaxTitleLength = 200

	envPrefix = "TODOS_"
)

// Config is the decoded config.toml.
type Config struct {
	Storage        string `toml:"storage"`
	DataDir        string `toml:"data_dir"`
	Namespace      string `toml:"namespace"`
	Theme          string `toml:"theme"`
	LogLevel       string `toml:"log_level"`
	LogFile        string `toml:"log_file"`
	MaxTitleLength int    `toml:"max_title_length"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Storage:        StorageJSON,
		DataDir:        DefaultDataDir,
		Namespace:      store.DefaultNamespace,
		Theme:          DefaultTheme,
		LogLevel:       DefaultLogLevel,
		MaxTitleLength: DefaultMaxTitleLength,
	}
}

// DefaultPath is $XDG_CONFIG_HOME/todos/config.toml (or the OS equivalent).
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "todos", "config.toml")
}

// Load builds the config from defaults, the file at path and the environment.
// An empty path means TODOS_CONFIG, then DefaultPath. A missing default file is
// not an error; a missing explicit file is.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if p := os.Getenv(envPrefix + "CONFIG"); p != "" {
			path, explicit = p, true
		} else {
			path = DefaultPath()
		}
	}
	if path != "" {
		path = expandPath(path)
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			if !errors.Is(err, os.ErrNotExist) || explicit {
				return nil, fmt.Errorf("loading config file %s: %w", path, err)
			}
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFromEnv(cfg *Config) error {
	str := func(name string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(envPrefix + name)); v != "" {
			*dst = v
		}
	}
	str("STORAGE", &cfg.Storage)
	str("DATA_DIR", &cfg.DataDir)
	str("NAMESPACE", &cfg.Namespace)
	str("THEME", &cfg.Theme)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("LOG_FILE", &cfg.LogFile)
	if v := strings.TrimSpace(os.Getenv(envPrefix + "MAX_TITLE_LENGTH")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sMAX_TITLE_LENGTH: %w", envPrefix, err)
		}
		cfg.MaxTitleLength = n
	}
	return nil
}

// Validate checks the values that other packages switch on.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageJSON, StorageSQLite:
	default:
		return fmt.Errorf("storage: unknown backend %q (want json|sqlite)", c.Storage)
	}
	switch strings.ToLower(c.Theme) {
	case "classic", "neon", "mono":
	default:
		return fmt.Errorf("theme: unknown theme %q (want classic|neon|mono)", c.Theme)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.MaxTitleLength <= 0 {
		return fmt.Errorf("max_title_length: must be positive, got %d", c.MaxTitleLength)
	}
	if strings.TrimSpace(c.Namespace) == "" {
		return errors.New("namespace: must not be empty")
	}
	return nil
}

// DataPath returns the data directory with ~ expanded.
func (c *Config) DataPath() string { return expandPath(c.DataDir) }

// LogPath is where the TUI writes its log.
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return expandPath(c.LogFile)
	}
	return filepath.Join(c.DataPath(), "todos.log")
}

// SQLitePath is the database file used by the sqlite backend.
func (c *Config) SQLitePath() string { return filepath.Join(c.DataPath(), "todos.sqlite") }

// expandPath expands ~ and environment variables.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	expanded := os.ExpandEnv(p)
	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return expanded
		}
		return filepath.Join(home, strings.TrimPrefix(expanded[1:], "/"))
	}
	return expanded
}
