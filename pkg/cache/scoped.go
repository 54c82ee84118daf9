package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// Useful when several corpora or users share one cache backend and
// their entries must not collide.
//
// Example usage:
//
//	// Per-corpus keys for a batch run
//	corpusKeyer := NewScopedKeyer(NewDefaultKeyer(), "corpus:order9:")
//
//	// Global keys for ad-hoc classification
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ReportKey generates a prefixed key for report caching.
func (k *ScopedKeyer) ReportKey(graphHash string, opts ReportKeyOpts) string {
	return k.prefix + k.inner.ReportKey(graphHash, opts)
}

// ArtifactKey generates a prefixed key for certificate caching.
func (k *ScopedKeyer) ArtifactKey(reportHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(reportHash, opts)
}
