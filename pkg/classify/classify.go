// Package classify orchestrates the bound and property registries into
// a difficulty verdict: a graph is difficult when no alpha property
// holds and the aggregated lower and upper bounds leave a gap around
// its independence number.
//
// Properties are checked first, in order, and short-circuit the whole
// evaluation on the first hit. Bounds are evaluated concurrently; a
// bound that is undefined for the graph, times out, or loses its
// solver is skipped, never fatal. The verdict is a pure function of
// the graph and the registry, recomputed fresh per call.
package classify

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/graphcert/alphabound/pkg/critical"
	"github.com/graphcert/alphabound/pkg/errors"
	"github.com/graphcert/alphabound/pkg/graph"
	"github.com/graphcert/alphabound/pkg/observability"
)

// roundTol absorbs solver noise before the final ceil/floor so a bound
// like 2.9999999991 still floors to 3.
const roundTol = 1e-9

// Options tunes how a Classifier evaluates its registry.
type Options struct {
	// Parallelism caps concurrent bound evaluations. Zero or negative
	// means GOMAXPROCS.
	Parallelism int

	// EntryTimeout bounds each individual registry entry. Zero means
	// no per-entry limit; the caller's context still applies.
	EntryTimeout time.Duration
}

// Classifier evaluates a fixed Registry against graphs. Safe for
// concurrent use.
type Classifier struct {
	registry *Registry
	opts     Options
}

// New returns a Classifier over the given registry.
func New(registry *Registry, opts Options) *Classifier {
	return &Classifier{registry: registry, opts: opts}
}

// Registry returns the classifier's registry.
func (c *Classifier) Registry() *Registry { return c.registry }

// Options returns the classifier's evaluation options.
func (c *Classifier) Options() Options { return c.opts }

// EntryResult records one registry entry's outcome, kept for
// certificate rendering.
type EntryResult struct {
	Name    string        `json:"name"`
	Kind    Kind          `json:"kind"`
	Value   float64       `json:"value,omitempty"`
	Holds   bool          `json:"holds,omitempty"`
	Skipped bool          `json:"skipped,omitempty"`
	Reason  string        `json:"reason,omitempty"`
	Elapsed time.Duration `json:"elapsed"`
}

// BoundReport is the aggregated integer sandwich around alpha.
type BoundReport struct {
	Lower int `json:"lower"`
	Upper int `json:"upper"`
}

// Verdict is the difficulty decision. Property names the witness
// predicate when one short-circuited the evaluation.
type Verdict struct {
	IsDifficult bool   `json:"is_difficult"`
	Reason      string `json:"reason"`
	Property    string `json:"property,omitempty"`
}

// Result bundles everything a certificate needs: the verdict, the
// bound sandwich when bounds were evaluated, the critical-set witness,
// and the per-entry trace.
type Result struct {
	Order   int           `json:"order"`
	Size    int           `json:"size"`
	Report  *BoundReport  `json:"report,omitempty"`
	Verdict Verdict       `json:"verdict"`
	UMCIS   []int         `json:"umcis,omitempty"`
	Trace   []EntryResult `json:"trace,omitempty"`
}

// Classify evaluates the full registry against g and returns the
// verdict with its supporting trace. The order-0 graph is a fixed
// point: bounds are 0/0, nothing is evaluated, not difficult.
func (c *Classifier) Classify(ctx context.Context, g *graph.Graph) (*Result, error) {
	hooks := observability.Evaluation()
	hooks.OnClassifyStart(ctx, g.Order(), g.Size())
	start := time.Now()

	res, err := c.classify(ctx, g)
	difficult := res != nil && res.Verdict.IsDifficult
	hooks.OnClassifyComplete(ctx, difficult, time.Since(start), err)
	return res, err
}

func (c *Classifier) classify(ctx context.Context, g *graph.Graph) (*Result, error) {
	res := &Result{Order: g.Order(), Size: g.Size()}
	if g.Order() == 0 {
		res.Report = &BoundReport{Lower: 0, Upper: 0}
		res.Verdict = Verdict{Reason: "the empty graph has independence number 0"}
		return res, nil
	}

	union, err := critical.UnionMCIS(ctx, g)
	if err != nil {
		if !errors.Skippable(err) {
			return nil, err
		}
		union = nil
	}
	res.UMCIS = union

	holds, witness, propTrace, err := c.hasAlphaProperty(ctx, g)
	res.Trace = propTrace
	if err != nil {
		return nil, err
	}
	if holds {
		res.Verdict = Verdict{
			Reason:   fmt.Sprintf("alpha property %s holds", witness),
			Property: witness,
		}
		return res, nil
	}

	entries := make([]BoundEntry, 0, len(c.registry.Lower())+len(c.registry.Upper()))
	entries = append(entries, c.registry.Lower()...)
	entries = append(entries, c.registry.Upper()...)
	boundTrace, err := c.evalBounds(ctx, g, entries)
	res.Trace = append(res.Trace, boundTrace...)
	if err != nil {
		return nil, err
	}

	lower := reduceLower(boundTrace)
	upper := reduceUpper(g.Order(), boundTrace)
	res.Report = &BoundReport{
		Lower: int(math.Ceil(lower - roundTol)),
		Upper: int(math.Floor(upper + roundTol)),
	}
	if res.Report.Lower < res.Report.Upper {
		res.Verdict = Verdict{
			IsDifficult: true,
			Reason:      fmt.Sprintf("no alpha property holds and bounds leave the gap [%d, %d]", res.Report.Lower, res.Report.Upper),
		}
	} else {
		res.Verdict = Verdict{
			Reason: fmt.Sprintf("bounds pin the independence number at %d", res.Report.Lower),
		}
	}
	return res, nil
}

// IsDifficult is the bare decision without the trace.
func (c *Classifier) IsDifficult(ctx context.Context, g *graph.Graph) (bool, error) {
	res, err := c.Classify(ctx, g)
	if err != nil {
		return false, err
	}
	return res.Verdict.IsDifficult, nil
}

// BestLowerBound aggregates the lower-bound entries: start at 1, adopt
// any strictly greater value, skip undefined entries.
func (c *Classifier) BestLowerBound(ctx context.Context, g *graph.Graph) (float64, []EntryResult, error) {
	trace, err := c.evalBounds(ctx, g, c.registry.Lower())
	if err != nil {
		return 0, nil, err
	}
	return reduceLower(trace), trace, nil
}

// BestUpperBound aggregates the upper-bound entries: start at the
// order, adopt any strictly smaller value, skip undefined entries.
func (c *Classifier) BestUpperBound(ctx context.Context, g *graph.Graph) (float64, []EntryResult, error) {
	trace, err := c.evalBounds(ctx, g, c.registry.Upper())
	if err != nil {
		return 0, nil, err
	}
	return reduceUpper(g.Order(), trace), trace, nil
}

// HasAlphaProperty checks the property entries in order and returns
// the first witness.
func (c *Classifier) HasAlphaProperty(ctx context.Context, g *graph.Graph) (bool, string, error) {
	holds, witness, _, err := c.hasAlphaProperty(ctx, g)
	return holds, witness, err
}

func reduceLower(trace []EntryResult) float64 {
	best := 1.0
	for _, r := range trace {
		if r.Kind == KindLower && !r.Skipped && r.Value > best {
			best = r.Value
		}
	}
	return best
}

func reduceUpper(order int, trace []EntryResult) float64 {
	best := float64(order)
	for _, r := range trace {
		if r.Kind == KindUpper && !r.Skipped && r.Value < best {
			best = r.Value
		}
	}
	return best
}

// evalBounds runs the entries concurrently. Results keep registration
// order regardless of completion order.
func (c *Classifier) evalBounds(ctx context.Context, g *graph.Graph, entries []BoundEntry) ([]EntryResult, error) {
	results := make([]EntryResult, len(entries))
	eg, egCtx := errgroup.WithContext(ctx)
	limit := c.opts.Parallelism
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	eg.SetLimit(limit)
	for i, entry := range entries {
		eg.Go(func() error {
			res, err := c.evalBound(egCtx, g, entry)
			results[i] = res
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *Classifier) evalBound(parent context.Context, g *graph.Graph, e BoundEntry) (EntryResult, error) {
	ctx, cancel := c.entryContext(parent)
	defer cancel()

	hooks := observability.Evaluation()
	hooks.OnEntryStart(ctx, e.Name, string(e.Kind))
	start := time.Now()
	val, err := e.Eval(ctx, g)
	elapsed := time.Since(start)
	hooks.OnEntryComplete(ctx, e.Name, string(e.Kind), val, elapsed, err)

	res := EntryResult{Name: e.Name, Kind: e.Kind, Value: val, Elapsed: elapsed}
	if err != nil {
		res.Value = 0
		if errors.Skippable(err) && parent.Err() == nil {
			res.Skipped = true
			res.Reason = err.Error()
			return res, nil
		}
		return res, err
	}
	return res, nil
}

func (c *Classifier) hasAlphaProperty(ctx context.Context, g *graph.Graph) (bool, string, []EntryResult, error) {
	hooks := observability.Evaluation()
	var trace []EntryResult
	for _, p := range c.registry.Properties() {
		entryCtx, cancel := c.entryContext(ctx)
		hooks.OnEntryStart(entryCtx, p.Name, string(KindProperty))
		start := time.Now()
		holds, err := p.Eval(entryCtx, g)
		elapsed := time.Since(start)
		hooks.OnEntryComplete(entryCtx, p.Name, string(KindProperty), boolValue(holds), elapsed, err)
		cancel()

		res := EntryResult{Name: p.Name, Kind: KindProperty, Holds: holds, Elapsed: elapsed}
		if err != nil {
			if errors.Skippable(err) && ctx.Err() == nil {
				res.Skipped = true
				res.Reason = err.Error()
				trace = append(trace, res)
				continue
			}
			return false, "", trace, err
		}
		trace = append(trace, res)
		if holds {
			return true, p.Name, trace, nil
		}
	}
	return false, "", trace, nil
}

func (c *Classifier) entryContext(parent context.Context) (context.Context, context.CancelFunc) {
	if c.opts.EntryTimeout <= 0 {
		return parent, func() {}
	}
	return context.WithTimeout(parent, c.opts.EntryTimeout)
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
