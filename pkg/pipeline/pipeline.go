// Package pipeline provides the core classification pipeline for
// alphabound.
//
// This package implements the complete decode → classify → render
// pipeline used by the CLI, the HTTP API, and the batch driver. By
// centralizing this logic, all entry points share caching and
// consistent behavior.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Decode: Parse a graph from graph6 or the JSON document format
//  2. Classify: Run the bound and property registries to a verdict
//  3. Render: Produce certificate artifacts (JSON, text, DOT, SVG, PNG)
//
// Classification and rendering results are cached; graphs are
// content-addressed, so the same input never pays for the SDP twice.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger, classifier)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Graph6:  "Cx",
//	    Formats: []string{"text", "svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(string(result.Artifacts["text"]))
package pipeline

import (
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/graphcert/alphabound/pkg/classify"
	"github.com/graphcert/alphabound/pkg/errors"
	"github.com/graphcert/alphabound/pkg/graph"
	"github.com/graphcert/alphabound/pkg/report"
)

// Format constants for certificate artifacts.
const (
	FormatJSON = "json"
	FormatText = "text"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported artifact formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatText: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// Options configures one pipeline execution.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Graph6 is the graph in graph6 notation. Exactly one of Graph6
	// and Graph must be set.
	Graph6 string `json:"graph6,omitempty"`

	// Graph is the graph as a JSON document (order plus edge list).
	Graph json.RawMessage `json:"graph,omitempty"`

	// Formats lists the artifacts to render. Defaults to ["text"].
	Formats []string `json:"formats,omitempty"`

	// Refresh bypasses the report cache and recomputes.
	Refresh bool `json:"refresh,omitempty"`

	// Logger overrides the runner's logger for this execution.
	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults checks the options and fills defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Graph6 == "" && len(o.Graph) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "either graph6 or graph must be provided")
	}
	if o.Graph6 != "" && len(o.Graph) > 0 {
		return errors.New(errors.ErrCodeInvalidInput, "graph6 and graph are mutually exclusive")
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatText}
	}
	for _, f := range o.Formats {
		if !ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", f)
		}
	}
	return nil
}

// Stats records per-stage timings.
type Stats struct {
	DecodeTime   time.Duration `json:"decode_time"`
	ClassifyTime time.Duration `json:"classify_time"`
	RenderTime   time.Duration `json:"render_time"`
}

// CacheInfo reports which stages were served from cache.
type CacheInfo struct {
	ReportHit bool `json:"report_hit"`
	RenderHit bool `json:"render_hit"`
}

// Result is the output of a pipeline execution.
type Result struct {
	Graph          *graph.Graph        `json:"-"`
	GraphHash      string              `json:"graph_hash"`
	Classification *classify.Result    `json:"classification"`
	Certificate    *report.Certificate `json:"certificate,omitempty"`
	Artifacts      map[string][]byte   `json:"-"`
	Stats          Stats               `json:"stats"`
	CacheInfo      CacheInfo           `json:"cache_info"`
}
