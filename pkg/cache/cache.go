// Package cache provides pluggable storage for classification reports
// and rendered certificates.
//
// Classifying a graph is expensive (matching on the double cover, an
// SDP solve), while graphs arrive content-addressed: the same graph6
// string always produces the same report for a given registry. The
// cache exploits that. Keys are derived by a Keyer from the graph hash
// plus everything that can change the answer; values are opaque bytes.
//
// Backends: FileCache for CLI usage, RedisCache and MongoCache for
// shared deployments, NullCache to disable caching.
package cache

import (
	"context"
	"time"
)

// Default retention for the two cached stages. Reports are pure
// functions of graph and registry, so these are generous.
const (
	TTLReport   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the minimal storage contract shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ReportKeyOpts captures everything besides the graph itself that can
// change a classification report.
type ReportKeyOpts struct {
	// Registry is the registry fingerprint, covering the entry set and
	// the solver settings; changing either must invalidate cached
	// reports.
	Registry string

	// EntryTimeout changes which entries get skipped, so it is part of
	// the key.
	EntryTimeout time.Duration
}

// ArtifactKeyOpts captures the parameters of a rendered certificate.
type ArtifactKeyOpts struct {
	// Format is the output format: json, text, dot, svg, or png.
	Format string
}

// Keyer derives cache keys for the two cached stages.
type Keyer interface {
	// ReportKey generates a key for a classification report.
	ReportKey(graphHash string, opts ReportKeyOpts) string

	// ArtifactKey generates a key for a rendered certificate.
	ArtifactKey(reportHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ReportKey generates a key for a classification report.
func (k *DefaultKeyer) ReportKey(graphHash string, opts ReportKeyOpts) string {
	return hashKey("report", graphHash, opts.Registry, opts.EntryTimeout)
}

// ArtifactKey generates a key for a rendered certificate.
func (k *DefaultKeyer) ArtifactKey(reportHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", reportHash, opts.Format)
}
