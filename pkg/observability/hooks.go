// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about bound evaluation, cache operations, and API calls.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetEvaluationHooks(&myEvaluationHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Evaluation().OnEntryStart(ctx, name, kind)
//	// ... evaluate the bound ...
//	observability.Evaluation().OnEntryComplete(ctx, name, kind, value, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Evaluation Hooks
// =============================================================================

// EvaluationHooks receives events from the classification pipeline.
type EvaluationHooks interface {
	// Classification events
	OnClassifyStart(ctx context.Context, order, size int)
	OnClassifyComplete(ctx context.Context, difficult bool, duration time.Duration, err error)

	// Registry entry events, one pair per bound or property evaluated
	OnEntryStart(ctx context.Context, name, kind string)
	OnEntryComplete(ctx context.Context, name, kind string, value float64, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// API Hooks
// =============================================================================

// APIHooks receives events from the HTTP API server.
type APIHooks interface {
	// OnRequest records an incoming HTTP request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records a completed HTTP response.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEvaluationHooks is a no-op implementation of EvaluationHooks.
type NoopEvaluationHooks struct{}

func (NoopEvaluationHooks) OnClassifyStart(context.Context, int, int)                      {}
func (NoopEvaluationHooks) OnClassifyComplete(context.Context, bool, time.Duration, error) {}
func (NoopEvaluationHooks) OnEntryStart(context.Context, string, string)                   {}
func (NoopEvaluationHooks) OnEntryComplete(context.Context, string, string, float64, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopAPIHooks is a no-op implementation of APIHooks.
type NoopAPIHooks struct{}

func (NoopAPIHooks) OnRequest(context.Context, string, string)                      {}
func (NoopAPIHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	evaluationHooks EvaluationHooks = NoopEvaluationHooks{}
	cacheHooks      CacheHooks      = NoopCacheHooks{}
	apiHooks        APIHooks        = NoopAPIHooks{}
	hooksMu         sync.RWMutex
)

// SetEvaluationHooks registers custom evaluation hooks.
// This should be called once at application startup before any classification.
func SetEvaluationHooks(h EvaluationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		evaluationHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetAPIHooks registers custom API hooks.
// This should be called once at application startup before serving requests.
func SetAPIHooks(h APIHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		apiHooks = h
	}
}

// Evaluation returns the registered evaluation hooks.
func Evaluation() EvaluationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return evaluationHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// API returns the registered API hooks.
func API() APIHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return apiHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	evaluationHooks = NoopEvaluationHooks{}
	cacheHooks = NoopCacheHooks{}
	apiHooks = NoopAPIHooks{}
}
