// Package config loads alphabound settings from a TOML file, with
// sane defaults for running without one.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/graphcert/alphabound/pkg/errors"
)

// Config is the full application configuration.
type Config struct {
	Evaluation EvaluationConfig `toml:"evaluation"`
	Solver     SolverConfig     `toml:"solver"`
	Cache      CacheConfig      `toml:"cache"`
	Server     ServerConfig     `toml:"server"`
}

// EvaluationConfig tunes the classifier.
type EvaluationConfig struct {
	// Parallelism caps concurrent bound evaluations. Zero means one
	// worker per CPU.
	Parallelism int `toml:"parallelism"`

	// EntryTimeout bounds each registry entry, e.g. "30s". Empty means
	// no per-entry limit.
	EntryTimeout duration `toml:"entry_timeout"`

	// Disabled lists registry entries to leave out by name.
	Disabled []string `toml:"disabled"`
}

// SolverConfig tunes the LP and SDP solvers.
type SolverConfig struct {
	// LPTolerance is the simplex pivot tolerance. Zero keeps the
	// solver default.
	LPTolerance float64 `toml:"lp_tolerance"`

	// SDPTolerance is the ADMM convergence tolerance. Zero keeps the
	// solver default.
	SDPTolerance float64 `toml:"sdp_tolerance"`

	// SDPMaxIterations caps ADMM iterations. Zero keeps the solver
	// default.
	SDPMaxIterations int `toml:"sdp_max_iterations"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is one of "file", "redis", "mongo", or "none".
	Backend string `toml:"backend"`

	// Dir is the file backend's directory. Empty means a default
	// under the user cache dir.
	Dir string `toml:"dir"`

	// TTL expires cached reports, e.g. "168h". Empty means no expiry.
	TTL duration `toml:"ttl"`

	Redis RedisConfig `toml:"redis"`
	Mongo MongoConfig `toml:"mongo"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MongoConfig configures the mongo backend.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	// Addr is the listen address, defaulting to ":8080".
	Addr string `toml:"addr"`
}

// duration wraps time.Duration for TOML decoding from strings.
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(parsed)
	return nil
}

// Duration returns the wrapped value.
func (d duration) Duration() time.Duration { return time.Duration(d) }

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Cache:  CacheConfig{Backend: "file"},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Load reads a TOML config file. A missing path returns defaults; a
// malformed file is an INVALID_CONFIG error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	return cfg, nil
}

// DefaultPath returns the conventional config location, or empty when
// the user config dir cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "alphabound", "config.toml")
}
