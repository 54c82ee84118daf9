package classify

import (
	"context"
	"testing"
	"time"

	"github.com/graphcert/alphabound/pkg/bounds"
	"github.com/graphcert/alphabound/pkg/errors"
	"github.com/graphcert/alphabound/pkg/graph"
	"github.com/graphcert/alphabound/pkg/solver"
)

func testClassifier() *Classifier {
	return New(NewRegistry(), Options{Parallelism: 2})
}

func TestClassifyOrderZero(t *testing.T) {
	res, err := testClassifier().Classify(context.Background(), graph.New(0))
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if res.Report == nil || res.Report.Lower != 0 || res.Report.Upper != 0 {
		t.Errorf("report = %+v, want lower 0 upper 0", res.Report)
	}
	if res.Verdict.IsDifficult {
		t.Error("empty graph must not be difficult")
	}
	if len(res.Trace) != 0 {
		t.Errorf("no entries should run on the empty graph, got %d", len(res.Trace))
	}
}

func TestClassifyPropertyShortCircuit(t *testing.T) {
	// K3 has a dominating vertex, the first property in the registry,
	// so no bound is ever evaluated.
	res, err := testClassifier().Classify(context.Background(), graph.Complete(3))
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if res.Verdict.IsDifficult {
		t.Error("K3 must not be difficult")
	}
	if res.Verdict.Property != "has_max_degree_order_minus_one" {
		t.Errorf("witness = %q, want has_max_degree_order_minus_one", res.Verdict.Property)
	}
	if res.Report != nil {
		t.Errorf("bounds must not run after a property hit, got %+v", res.Report)
	}
	for _, e := range res.Trace {
		if e.Kind != KindProperty {
			t.Errorf("unexpected %s entry %s in trace", e.Kind, e.Name)
		}
	}
}

func TestClassifyPetersen(t *testing.T) {
	res, err := testClassifier().Classify(context.Background(), graph.Petersen())
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if res.Verdict.Property != "" {
		t.Fatalf("no alpha property holds for the Petersen graph, got %q", res.Verdict.Property)
	}
	if res.Report == nil {
		t.Fatal("want a bound report")
	}
	if res.Report.Lower != 4 || res.Report.Upper != 4 {
		t.Errorf("report = %+v, want bounds pinned at 4", res.Report)
	}
	if res.Verdict.IsDifficult {
		t.Error("Petersen bounds converge, must not be difficult")
	}
	if len(res.UMCIS) != 0 {
		t.Errorf("Petersen has an empty critical union, got %v", res.UMCIS)
	}
}

func TestBoundsSandwichAlpha(t *testing.T) {
	ctx := context.Background()
	c := testClassifier()
	fixtures := map[string]*graph.Graph{
		"P4":       graph.Path(4),
		"P5":       graph.Path(5),
		"C4":       graph.Cycle(4),
		"C5":       graph.Cycle(5),
		"C6":       graph.Cycle(6),
		"K4":       graph.Complete(4),
		"star":     graph.Star(4),
		"petersen": graph.Petersen(),
		"edgeless": graph.Empty(5),
	}
	for name, g := range fixtures {
		t.Run(name, func(t *testing.T) {
			alpha := float64(g.IndependenceNumber())
			lower, _, err := c.BestLowerBound(ctx, g)
			if err != nil {
				t.Fatalf("lower: %v", err)
			}
			upper, _, err := c.BestUpperBound(ctx, g)
			if err != nil {
				t.Fatalf("upper: %v", err)
			}
			if lower > alpha+1e-6 {
				t.Errorf("lower bound %v exceeds alpha %v", lower, alpha)
			}
			if upper < alpha-1e-6 {
				t.Errorf("upper bound %v undercuts alpha %v", upper, alpha)
			}
		})
	}
}

func TestBoundsMonotonicUnderMoreEntries(t *testing.T) {
	ctx := context.Background()
	g := graph.Cycle(6)

	full := testClassifier()
	reduced := New(NewRegistry(WithoutEntries(
		"caro_wei", "wilf", "greedy_min", "lovasz_theta", "fractional_alpha", "cvetkovic",
	)), Options{Parallelism: 2})

	fullLower, _, err := full.BestLowerBound(ctx, g)
	if err != nil {
		t.Fatalf("lower: %v", err)
	}
	reducedLower, _, err := reduced.BestLowerBound(ctx, g)
	if err != nil {
		t.Fatalf("lower: %v", err)
	}
	if fullLower < reducedLower {
		t.Errorf("more lower bounds gave a weaker value: %v < %v", fullLower, reducedLower)
	}

	fullUpper, _, err := full.BestUpperBound(ctx, g)
	if err != nil {
		t.Fatalf("upper: %v", err)
	}
	reducedUpper, _, err := reduced.BestUpperBound(ctx, g)
	if err != nil {
		t.Fatalf("upper: %v", err)
	}
	if fullUpper > reducedUpper {
		t.Errorf("more upper bounds gave a weaker value: %v > %v", fullUpper, reducedUpper)
	}
}

func TestClassifyIdempotent(t *testing.T) {
	ctx := context.Background()
	c := testClassifier()
	g := graph.Cycle(6)

	first, err := c.Classify(ctx, g)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	second, err := c.Classify(ctx, g)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if first.Verdict.IsDifficult != second.Verdict.IsDifficult {
		t.Error("verdict changed between identical evaluations")
	}
	if first.Report != nil && second.Report != nil && *first.Report != *second.Report {
		t.Errorf("report changed: %+v then %+v", first.Report, second.Report)
	}
}

// stubRegistry builds a registry from hand-rolled entries so the
// aggregation logic can be pinned down deterministically.
func stubRegistry(lower, upper []BoundEntry, properties []PropertyEntry) *Registry {
	return &Registry{lower: lower, upper: upper, properties: properties}
}

func constBound(v float64) func(context.Context, *graph.Graph) (float64, error) {
	return func(context.Context, *graph.Graph) (float64, error) { return v, nil }
}

func undefinedBound(context.Context, *graph.Graph) (float64, error) {
	return 0, errors.New(errors.ErrCodeDomainUndefined, "not defined here")
}

func falseProperty(context.Context, *graph.Graph) (bool, error) { return false, nil }

func TestDifficultVerdict(t *testing.T) {
	reg := stubRegistry(
		[]BoundEntry{
			{Name: "two", Kind: KindLower, Eval: constBound(2)},
			{Name: "undefined_lower", Kind: KindLower, Eval: undefinedBound},
		},
		[]BoundEntry{
			{Name: "three", Kind: KindUpper, Eval: constBound(3)},
			{Name: "undefined_upper", Kind: KindUpper, Eval: undefinedBound},
		},
		[]PropertyEntry{{Name: "never", Eval: falseProperty}},
	)
	c := New(reg, Options{})

	res, err := c.Classify(context.Background(), graph.Cycle(5))
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if !res.Verdict.IsDifficult {
		t.Error("gap between 2 and 3 with no property must be difficult")
	}
	if res.Report.Lower != 2 || res.Report.Upper != 3 {
		t.Errorf("report = %+v, want lower 2 upper 3", res.Report)
	}

	var skipped int
	for _, e := range res.Trace {
		if e.Skipped {
			skipped++
			if e.Reason == "" {
				t.Errorf("skipped entry %s carries no reason", e.Name)
			}
		}
	}
	if skipped != 2 {
		t.Errorf("got %d skipped entries, want 2", skipped)
	}
}

func TestFatalEntryAbortsClassification(t *testing.T) {
	reg := stubRegistry(
		[]BoundEntry{{
			Name: "broken",
			Kind: KindLower,
			Eval: func(context.Context, *graph.Graph) (float64, error) {
				return 0, errors.New(errors.ErrCodeInternal, "solver crashed")
			},
		}},
		nil,
		nil,
	)
	c := New(reg, Options{})

	_, err := c.Classify(context.Background(), graph.Cycle(5))
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("got %v, want INTERNAL to propagate", err)
	}
}

func TestEntryTimeoutIsSkipped(t *testing.T) {
	slow := func(ctx context.Context, _ *graph.Graph) (float64, error) {
		select {
		case <-ctx.Done():
			return 0, errors.Wrap(errors.ErrCodeTimeout, ctx.Err(), "bound timed out")
		case <-time.After(5 * time.Second):
			return 99, nil
		}
	}
	reg := stubRegistry(
		[]BoundEntry{
			{Name: "slow", Kind: KindLower, Eval: slow},
			{Name: "two", Kind: KindLower, Eval: constBound(2)},
		},
		[]BoundEntry{{Name: "three", Kind: KindUpper, Eval: constBound(3)}},
		nil,
	)
	c := New(reg, Options{EntryTimeout: 20 * time.Millisecond})

	res, err := c.Classify(context.Background(), graph.Cycle(5))
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	var sawSkip bool
	for _, e := range res.Trace {
		if e.Name == "slow" {
			sawSkip = e.Skipped
		}
	}
	if !sawSkip {
		t.Error("slow entry should be skipped after its timeout")
	}
	if res.Report.Lower != 2 {
		t.Errorf("lower = %d, want 2 from the surviving entry", res.Report.Lower)
	}
}

func TestRegistryFingerprint(t *testing.T) {
	a := NewRegistry()
	b := NewRegistry()
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("identical registries must share a fingerprint")
	}
	c := NewRegistry(WithoutEntries("lovasz_theta"))
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("dropping an entry must change the fingerprint")
	}
}

func TestRegistryFingerprintCoversSolverSettings(t *testing.T) {
	loose := NewRegistry(WithRelaxations(&bounds.Relaxations{
		LP:  solver.NewSimplex(),
		SDP: &solver.ADMM{Tol: 1e-6},
	}))
	tight := NewRegistry(WithRelaxations(&bounds.Relaxations{
		LP:  solver.NewSimplex(),
		SDP: &solver.ADMM{Tol: 1e-12},
	}))
	if loose.Fingerprint() == tight.Fingerprint() {
		t.Error("changing the sdp tolerance must change the fingerprint")
	}

	same := NewRegistry(WithRelaxations(&bounds.Relaxations{
		LP:  solver.NewSimplex(),
		SDP: &solver.ADMM{Tol: 1e-6},
	}))
	if loose.Fingerprint() != same.Fingerprint() {
		t.Error("equal solver settings must share a fingerprint")
	}
}
