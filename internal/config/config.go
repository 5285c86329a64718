// Package config loads dye settings from the environment and an optional
// config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/dyeshell/dye/internal/logging"
	"github.com/dyeshell/dye/internal/shell"
)

// EnvPrefix prefixes every dye environment variable.
const EnvPrefix = "DYE"

// FileName is the optional config file inside the dye directory.
const FileName = "config.toml"

// DefaultShellTimeout bounds enabled_if checks and capture commands.
const DefaultShellTimeout = 30 * time.Second

var logger = logging.Component("config")

// ErrNoThemesDir is returned when named themes are needed but the dye
// directory is not configured.
var ErrNoThemesDir = errors.New("the DYE_DIR environment variable must be set and that directory must contain a 'themes' directory")

// Config holds dye settings.
type Config struct {
	// Dir is the dye directory, holding config.toml and themes/.
	Dir         string `mapstructure:"dir"`
	ThemeFile   string `mapstructure:"theme_file"`
	PatternFile string `mapstructure:"pattern_file"`

	// Colors is the help color spec. ColorsSet distinguishes an empty
	// spec, which disables help colors, from no spec at all.
	Colors    string `mapstructure:"colors"`
	ColorsSet bool   `mapstructure:"-"`

	Shell        string        `mapstructure:"shell"`
	ShellTimeout time.Duration `mapstructure:"shell_timeout"`
	LogLevel     string        `mapstructure:"log_level"`

	// NoColor follows the NO_COLOR convention: any non-empty value.
	NoColor bool `mapstructure:"-"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		Shell:        shell.DefaultShell,
		ShellTimeout: DefaultShellTimeout,
		LogLevel:     "warn",
	}
}

// Load reads settings from the environment, then from config.toml in the
// dye directory for keys the environment leaves unset.
func Load() (*Config, error) {
	v := viper.New()
	defaults := DefaultConfig()
	v.SetDefault("shell", defaults.Shell)
	v.SetDefault("shell_timeout", defaults.ShellTimeout)
	v.SetDefault("log_level", defaults.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	for _, key := range []string{"dir", "theme_file", "pattern_file", "colors", "shell", "shell_timeout", "log_level"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}
	if err := v.BindEnv("no_color", "NO_COLOR"); err != nil {
		return nil, fmt.Errorf("bind no_color: %w", err)
	}

	cfg := DefaultConfig()
	if dir := strings.TrimSpace(v.GetString("dir")); dir != "" {
		path := filepath.Join(expandHome(dir), FileName)
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("toml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
			cfg.File = path
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Dir = expandHome(strings.TrimSpace(cfg.Dir))
	cfg.ThemeFile = expandHome(strings.TrimSpace(cfg.ThemeFile))
	cfg.PatternFile = expandHome(strings.TrimSpace(cfg.PatternFile))
	// An empty DYE_COLORS still counts as set.
	if colors, ok := os.LookupEnv(EnvPrefix + "_COLORS"); ok {
		cfg.Colors = colors
		cfg.ColorsSet = true
	} else {
		cfg.ColorsSet = v.IsSet("colors")
	}
	cfg.NoColor = v.GetString("no_color") != ""

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().Str("dir", cfg.Dir).Str("file", cfg.File).Msg("configuration loaded")
	return cfg, nil
}

// Validate checks settings that would otherwise fail later.
func (c *Config) Validate() error {
	if c.ShellTimeout < 0 {
		return fmt.Errorf("shell_timeout must not be negative")
	}
	if strings.TrimSpace(c.Shell) == "" {
		return fmt.Errorf("shell must not be empty")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return nil
}

// ThemesDir returns the named-theme directory, or "" when Dir is unset.
func (c *Config) ThemesDir() string {
	if c.Dir == "" {
		return ""
	}
	return filepath.Join(c.Dir, "themes")
}

// RequireThemesDir returns the named-theme directory and checks that it
// exists.
func (c *Config) RequireThemesDir() (string, error) {
	dir := c.ThemesDir()
	if dir == "" {
		return "", ErrNoThemesDir
	}
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoThemesDir
		}
		return "", fmt.Errorf("%s: %w", dir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s: is not a directory", dir)
	}
	return dir, nil
}

// Executor returns a shell executor using the configured shell and timeout.
func (c *Config) Executor() *shell.LocalExecutor {
	return shell.NewLocalExecutor(c.Shell, c.ShellTimeout)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	return filepath.Join(home, path[2:])
}
