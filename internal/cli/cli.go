// Package cli implements the alphabound command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/graphcert/alphabound/pkg/bounds"
	"github.com/graphcert/alphabound/pkg/buildinfo"
	"github.com/graphcert/alphabound/pkg/cache"
	"github.com/graphcert/alphabound/pkg/classify"
	"github.com/graphcert/alphabound/pkg/config"
	"github.com/graphcert/alphabound/pkg/errors"
	"github.com/graphcert/alphabound/pkg/pipeline"
	"github.com/graphcert/alphabound/pkg/solver"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "alphabound"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath overrides the default config file location. Set by the
	// --config persistent flag.
	ConfigPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Alphabound bounds the independence number and hunts difficult graphs",
		Long:         `Alphabound evaluates lower bounds, upper bounds, and structural properties of the graph independence number, and classifies a graph as difficult when none of them pin the value down.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default: "+config.DefaultPath()+")")

	// Register all subcommands
	root.AddCommand(c.classifyCommand())
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner configured from the user's config file.
// With noCache the configured backend is replaced by a null cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}

	store, err := newCache(ctx, cfg, noCache)
	if err != nil {
		c.Logger.Warn("cache backend unavailable, continuing without cache", "err", err)
		store = cache.NewNullCache()
	}

	return pipeline.NewRunner(store, nil, c.Logger, newClassifier(cfg)), nil
}

// loadConfig reads the config file, falling back to defaults when absent.
func (c *CLI) loadConfig() (config.Config, error) {
	path := c.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(path)
}

// newClassifier builds a classifier from the config's evaluation and
// solver sections.
func newClassifier(cfg config.Config) *classify.Classifier {
	relax := &bounds.Relaxations{
		LP:  &solver.Simplex{Tol: cfg.Solver.LPTolerance},
		SDP: &solver.ADMM{Tol: cfg.Solver.SDPTolerance, MaxIter: cfg.Solver.SDPMaxIterations},
	}
	registry := classify.NewRegistry(
		classify.WithRelaxations(relax),
		classify.WithoutEntries(cfg.Evaluation.Disabled...),
	)
	return classify.New(registry, classify.Options{
		Parallelism:  cfg.Evaluation.Parallelism,
		EntryTimeout: cfg.Evaluation.EntryTimeout.Duration(),
	})
}

// newCache builds the configured cache backend.
func newCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}

	var store cache.Cache
	var err error
	switch cfg.Cache.Backend {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		store, err = cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	case "mongo":
		store, err = cache.NewMongoCache(ctx, cache.MongoOptions{
			URI:        cfg.Cache.Mongo.URI,
			Database:   cfg.Cache.Mongo.Database,
			Collection: cfg.Cache.Mongo.Collection,
		})
	case "", "file":
		dir := cfg.Cache.Dir
		if dir == "" {
			dir, err = cacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
		}
		store, err = cache.NewFileCache(dir)
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", cfg.Cache.Backend)
	}
	if err != nil {
		return nil, err
	}
	if ttl := cfg.Cache.TTL.Duration(); ttl > 0 {
		store = cache.WithTTL(store, ttl)
	}
	return store, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/alphabound/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatText}
	}
	return strings.Split(s, ",")
}
