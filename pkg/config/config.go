// Package config loads FretMaster configuration from a TOML file.
//
// The file is optional: when absent, defaults apply. CLI flags override file
// values; the file itself supplies the global sharps/flats preference, the
// visible fret window, an optional tuning override, the artifact output
// directory, and cache settings.
//
// Example:
//
//	prefer_sharps = true
//	fret_range = [0, 12]
//	tuning = "E2,A2,D3,G3,B3,E4"
//	output_dir = "diagrams"
//
//	[cache]
//	backend = "file"        # file | redis | none
//	ttl_hours = 720
//
//	[cache.redis]
//	addr = "localhost:6379"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/fretmaster/fretmaster/pkg/errors"
	"github.com/fretmaster/fretmaster/pkg/fretboard"
)

// Cache backend names accepted in the config file.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config holds the application configuration.
type Config struct {
	PreferSharps bool        `toml:"prefer_sharps"`
	FretRange    []int       `toml:"fret_range"` // inclusive [lower, upper]
	Tuning       string      `toml:"tuning"`     // comma-separated note names, empty = standard
	OutputDir    string      `toml:"output_dir"`
	Cache        CacheConfig `toml:"cache"`
}

// CacheConfig selects and configures the artifact cache backend.
type CacheConfig struct {
	Backend  string      `toml:"backend"`
	Dir      string      `toml:"dir"` // file backend; empty = user cache dir
	TTLHours int         `toml:"ttl_hours"`
	Redis    RedisConfig `toml:"redis"`
}

// RedisConfig configures the redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// Default returns the built-in configuration: sharp spellings, the [0,12]
// window, standard tuning, a ./diagrams output directory, and a file cache
// with a 30-day TTL.
func Default() Config {
	return Config{
		PreferSharps: true,
		FretRange:    []int{0, 12},
		OutputDir:    "diagrams",
		Cache: CacheConfig{
			Backend:  BackendFile,
			TTLHours: 720,
		},
	}
}

// DefaultPath returns the conventional config location,
// ~/.config/fretmaster/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "fretmaster", "config.toml"), nil
}

// Load reads the config file at path, layering it over Default. Fails when
// the file is missing or malformed; use LoadDefault when the file is
// optional.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDefault loads the config from the conventional location, returning
// Default when no file exists.
func LoadDefault() (Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks structural constraints on the loaded values.
func (c Config) Validate() error {
	if len(c.FretRange) != 0 && len(c.FretRange) != 2 {
		return errors.New(errors.ErrCodeInvalidFretRange, "fret_range must be [lower, upper], got %v", c.FretRange)
	}
	if err := c.Window().Validate(); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case "", BackendFile, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidBackend, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Tuning != "" {
		if _, err := fretboard.ParseTuning(c.Tuning); err != nil {
			return err
		}
	}
	return nil
}

// Window returns the configured fret window, defaulting to [0,12].
func (c Config) Window() fretboard.FretRange {
	if len(c.FretRange) != 2 {
		return fretboard.DefaultFretRange()
	}
	return fretboard.FretRange{Lower: c.FretRange[0], Upper: c.FretRange[1]}
}

// TuningModel returns the configured tuning, defaulting to standard.
func (c Config) TuningModel() (fretboard.Tuning, error) {
	if c.Tuning == "" {
		return fretboard.StandardTuning(), nil
	}
	return fretboard.ParseTuning(c.Tuning)
}

// CacheTTL returns the configured cache TTL.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLHours) * time.Hour
}

// CacheDir returns the file-cache directory, defaulting to the user cache
// directory.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("get cache dir: %w", err)
	}
	return filepath.Join(base, "fretmaster"), nil
}
