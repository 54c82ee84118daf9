package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/graphcert/alphabound/pkg/cache"
	"github.com/graphcert/alphabound/pkg/classify"
	"github.com/graphcert/alphabound/pkg/graph"
	"github.com/graphcert/alphabound/pkg/observability"
	"github.com/graphcert/alphabound/pkg/report"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache      cache.Cache
	Keyer      cache.Keyer
	Logger     *log.Logger
	Classifier *classify.Classifier
}

// NewRunner creates a runner with the given cache, keyer, and classifier.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// If classifier is nil, the full default registry is used.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger, classifier *classify.Classifier) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	if classifier == nil {
		classifier = classify.New(classify.NewRegistry(), classify.Options{})
	}
	return &Runner{
		Cache:      c,
		Keyer:      keyer,
		Logger:     logger,
		Classifier: classifier,
	}
}

// Execute runs the complete decode → classify → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := r.logger(opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Decode
	decodeStart := time.Now()
	g, err := r.Decode(opts)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	result.Graph = g
	result.Stats.DecodeTime = time.Since(decodeStart)

	// Graphs are content-addressed for cache keys and API responses.
	graphData, err := graph.MarshalGraph(g)
	if err != nil {
		return nil, fmt.Errorf("serialize graph: %w", err)
	}
	result.GraphHash = cache.Hash(graphData)

	logger.Info("decoded graph",
		"order", g.Order(),
		"size", g.Size(),
		"duration", result.Stats.DecodeTime)

	// Stage 2: Classify
	classifyStart := time.Now()
	classification, reportHit, err := r.ClassifyWithCacheInfo(ctx, g, result.GraphHash, opts)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}
	result.Classification = classification
	result.Stats.ClassifyTime = time.Since(classifyStart)
	result.CacheInfo.ReportHit = reportHit

	logger.Info("classified graph",
		"difficult", classification.Verdict.IsDifficult,
		"cached", reportHit,
		"duration", result.Stats.ClassifyTime)

	result.Certificate = report.New(g, classification)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result.Certificate, g, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered certificate",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Decode parses the graph from whichever input form the options carry.
func (r *Runner) Decode(opts Options) (*graph.Graph, error) {
	if opts.Graph6 != "" {
		return graph.ParseGraph6(opts.Graph6)
	}
	return graph.UnmarshalGraph(opts.Graph)
}

// ClassifyWithCacheInfo classifies with caching and returns cache hit info.
func (r *Runner) ClassifyWithCacheInfo(ctx context.Context, g *graph.Graph, graphHash string, opts Options) (*classify.Result, bool, error) {
	cacheKey := r.Keyer.ReportKey(graphHash, cache.ReportKeyOpts{
		Registry:     r.Classifier.Registry().Fingerprint(),
		EntryTimeout: r.Classifier.Options().EntryTimeout,
	})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached classify.Result
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "report")
				return &cached, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "report")
	}

	result, err := r.Classifier.Classify(ctx, g)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(result); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLReport); err == nil {
			observability.Cache().OnCacheSet(ctx, "report", len(data))
		}
	}
	return result, false, nil
}

// Classify is a convenience wrapper that discards the cache hit info.
func (r *Runner) Classify(ctx context.Context, g *graph.Graph, opts Options) (*classify.Result, error) {
	graphData, err := graph.MarshalGraph(g)
	if err != nil {
		return nil, err
	}
	result, _, err := r.ClassifyWithCacheInfo(ctx, g, cache.Hash(graphData), opts)
	return result, err
}

// RenderWithCacheInfo renders certificate artifacts with caching and
// returns cache hit info. The report identity, not the certificate id,
// keys the cache, so re-running the same graph reuses rendered output.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, cert *report.Certificate, g *graph.Graph, opts Options) (map[string][]byte, bool, error) {
	reportData, err := json.Marshal(cert.Result)
	if err != nil {
		return nil, false, fmt.Errorf("serialize report for cache key: %w", err)
	}
	reportHash := cache.Hash(reportData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(reportHash, cache.ArtifactKeyOpts{Format: format})
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	rendered, err := r.renderFormats(ctx, cert, g, opts.Formats)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(reportHash, cache.ArtifactKeyOpts{Format: format})
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
	}
	return rendered, false, nil
}

func (r *Runner) renderFormats(ctx context.Context, cert *report.Certificate, g *graph.Graph, formats []string) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))
	var dot string
	for _, format := range formats {
		switch format {
		case FormatJSON:
			data, err := cert.JSON()
			if err != nil {
				return nil, err
			}
			artifacts[format] = data
		case FormatText:
			artifacts[format] = []byte(cert.Text())
		case FormatDOT, FormatSVG, FormatPNG:
			if dot == "" {
				dot = report.ToDOT(g, report.DOTOptions{Highlight: cert.Result.UMCIS})
			}
			switch format {
			case FormatDOT:
				artifacts[format] = []byte(dot)
			case FormatSVG:
				data, err := report.RenderSVG(ctx, dot)
				if err != nil {
					return nil, err
				}
				artifacts[format] = data
			case FormatPNG:
				data, err := report.RenderPNG(ctx, dot)
				if err != nil {
					return nil, err
				}
				artifacts[format] = data
			}
		}
	}
	return artifacts, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
