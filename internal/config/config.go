// Package config handles TOML-based configuration loading and validation.
// Values are read from defaults, then config.toml, then a .env file and
// STARSTREAM_* environment variables, then command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "STARSTREAM_"

// Duration is a time.Duration written as "1s" or "500ms" in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Config holds all application configuration.
type Config struct {
	Storage        string   `toml:"storage"`
	DataDir        string   `toml:"data_dir"`
	RedisAddr      string   `toml:"redis_addr"`
	RedisPassword  string   `toml:"redis_password"`
	AuthDelay      Duration `toml:"auth_delay"`
	TickInterval   Duration `toml:"tick_interval"`
	FavoritesScope string   `toml:"favorites_scope"`
	Player         string   `toml:"player"`
	Listen         string   `toml:"listen"`
	Debug          bool     `toml:"debug"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Storage:        "file",
		RedisAddr:      "localhost:6379",
		AuthDelay:      Duration{time.Second},
		TickInterval:   Duration{3 * time.Second},
		FavoritesScope: "identity",
		Player:         "builtin",
		Listen:         ":8080",
		Debug:          false,
	}
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "starstream"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "starstream"), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file and environment and merges them with defaults.
// A missing config file or .env file is not an error.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	str := func(name string, dst *string) {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			*dst = v
		}
	}
	dur := func(name string, dst *Duration) error {
		v, ok := os.LookupEnv(EnvPrefix + name)
		if !ok {
			return nil
		}
		if err := dst.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		return nil
	}

	str("STORAGE", &c.Storage)
	str("DATA_DIR", &c.DataDir)
	str("REDIS_ADDR", &c.RedisAddr)
	str("REDIS_PASSWORD", &c.RedisPassword)
	str("FAVORITES_SCOPE", &c.FavoritesScope)
	str("PLAYER", &c.Player)
	str("LISTEN", &c.Listen)

	if err := dur("AUTH_DELAY", &c.AuthDelay); err != nil {
		return err
	}
	if err := dur("TICK_INTERVAL", &c.TickInterval); err != nil {
		return err
	}

	if v, ok := os.LookupEnv(EnvPrefix + "DEBUG"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sDEBUG: %w", EnvPrefix, err)
		}
		c.Debug = b
	}
	return nil
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	validStorage := map[string]bool{
		"file": true, "sqlite": true, "redis": true, "memory": true,
	}
	if !validStorage[strings.ToLower(c.Storage)] {
		return fmt.Errorf("unsupported storage %q (valid: file, sqlite, redis, memory)", c.Storage)
	}

	validPlayers := map[string]bool{
		"builtin": true, "mpv": true, "vlc": true, "iina": true, "celluloid": true,
	}
	if !validPlayers[strings.ToLower(c.Player)] {
		return fmt.Errorf("unsupported player %q (valid: builtin, mpv, vlc, iina, celluloid)", c.Player)
	}

	validScopes := map[string]bool{
		"identity": true, "profile": true,
	}
	if !validScopes[strings.ToLower(c.FavoritesScope)] {
		return fmt.Errorf("unsupported favorites_scope %q (valid: identity, profile)", c.FavoritesScope)
	}

	if strings.EqualFold(c.Storage, "redis") && c.RedisAddr == "" {
		return fmt.Errorf("redis_addr cannot be empty with redis storage")
	}
	if c.AuthDelay.Duration < 0 {
		return fmt.Errorf("auth_delay cannot be negative")
	}
	if c.TickInterval.Duration < time.Second {
		return fmt.Errorf("tick_interval must be at least 1s, got %s", c.TickInterval)
	}
	if c.Listen == "" {
		return fmt.Errorf("listen address cannot be empty")
	}

	return nil
}

// ExpandDataDir resolves the data directory. An empty DataDir means
// $XDG_DATA_HOME/starstream; ~ is expanded.
func (c *Config) ExpandDataDir() (string, error) {
	dir := c.DataDir
	if dir == "" {
		return DefaultDataDir()
	}
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding home dir: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}
	return filepath.Abs(dir)
}

// DefaultDataDir returns the XDG data directory for starstream.
func DefaultDataDir() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "starstream"), nil
}
