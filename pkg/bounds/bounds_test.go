package bounds

import (
	"context"
	"math"
	"testing"

	"github.com/graphcert/alphabound/pkg/errors"
	"github.com/graphcert/alphabound/pkg/graph"
)

func TestLowerBounds(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name  string
		bound Func
		graph *graph.Graph
		want  float64
	}{
		{"matching K3", MatchingLower, graph.Complete(3), 1},
		{"matching P3", MatchingLower, graph.Path(3), 1},
		{"matching empty", MatchingLower, graph.Empty(4), 4},
		{"residue K3", Residue, graph.Complete(3), 1},
		{"residue P3", Residue, graph.Path(3), 2},
		{"residue star", Residue, graph.Star(3), 3},
		{"average degree K3", AverageDegree, graph.Complete(3), 1},
		{"caro-wei K3", CaroWei, graph.Complete(3), 1},
		{"caro-wei P3", CaroWei, graph.Path(3), 4.0 / 3},
		{"wilf K3", Wilf, graph.Complete(3), 1},
		{"hansen-zheng K3", HansenZhengLower, graph.Complete(3), 1},
		{"harant K3", Harant, graph.Complete(3), 1},
		{"harant P3", Harant, graph.Path(3), (8 - math.Sqrt(28)) / 2},
		{"greedy K3", GreedyMIN, graph.Complete(3), 1},
		{"greedy P3", GreedyMIN, graph.Path(3), 2},
		{"greedy star", GreedyMIN, graph.Star(3), 3},
		{"greedy C5", GreedyMIN, graph.Cycle(5), 2},
		{"greedy petersen", GreedyMIN, graph.Petersen(), 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.bound(ctx, tt.graph)
			if err != nil {
				t.Fatalf("bound: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUpperBounds(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name  string
		bound Func
		graph *graph.Graph
		want  float64
	}{
		{"matching K3", MatchingUpper, graph.Complete(3), 2},
		{"matching petersen", MatchingUpper, graph.Petersen(), 5},
		{"min degree K3", MinDegreeUpper, graph.Complete(3), 1},
		{"min degree petersen", MinDegreeUpper, graph.Petersen(), 7},
		{"cvetkovic K3", Cvetkovic, graph.Complete(3), 1},
		{"cvetkovic petersen", Cvetkovic, graph.Petersen(), 4},
		{"annihilation K3", Annihilation, graph.Complete(3), 2},
		{"annihilation star", Annihilation, graph.Star(3), 4},
		{"kwok K3", Kwok, graph.Complete(3), 1.5},
		{"kwok petersen", Kwok, graph.Petersen(), 5},
		{"borg K3", Borg, graph.Complete(3), 2},
		{"borg petersen", Borg, graph.Petersen(), 7},
		{"hansen-zheng K3", HansenZhengUpper, graph.Complete(3), 1},
		{"hansen-zheng petersen", HansenZhengUpper, graph.Petersen(), 8},
		{"cut vertices P5", CutVertices, graph.Path(5), 3},
		{"cut vertices K3", CutVertices, graph.Complete(3), 2.5},
		{"cut vertices star", CutVertices, graph.Star(3), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.bound(ctx, tt.graph)
			if err != nil {
				t.Fatalf("bound: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDegreeBoundsUndefinedOnEdgeless(t *testing.T) {
	ctx := context.Background()
	for _, bound := range []Func{Kwok, Borg} {
		_, err := bound(ctx, graph.Empty(2))
		if !errors.Is(err, errors.ErrCodeDomainUndefined) {
			t.Errorf("got %v, want DOMAIN_UNDEFINED", err)
		}
	}
}

func TestHarantUndefinedOnSparseGraphs(t *testing.T) {
	ctx := context.Background()
	// 2e < n-1 makes the discriminant negative.
	for _, g := range []*graph.Graph{graph.Empty(3), graph.Empty(10)} {
		got, err := Harant(ctx, g)
		if !errors.Is(err, errors.ErrCodeDomainUndefined) {
			t.Errorf("order %d: got %v, want DOMAIN_UNDEFINED", g.Order(), err)
		}
		if math.IsNaN(got) {
			t.Errorf("order %d: bound value is NaN", g.Order())
		}
	}
}

func TestFractionalAlpha(t *testing.T) {
	ctx := context.Background()
	r := NewRelaxations()
	tests := []struct {
		name  string
		graph *graph.Graph
		want  float64
	}{
		{"K3", graph.Complete(3), 1.5},
		{"C5", graph.Cycle(5), 2.5},
		{"star", graph.Star(3), 3},
		{"edgeless", graph.Empty(4), 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.FractionalAlpha(ctx, tt.graph)
			if err != nil {
				t.Fatalf("fractional alpha: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLovaszTheta(t *testing.T) {
	ctx := context.Background()
	r := NewRelaxations()
	tests := []struct {
		name  string
		graph *graph.Graph
		want  float64
	}{
		{"single vertex", graph.Empty(1), 1},
		{"K3", graph.Complete(3), 1},
		{"C5", graph.Cycle(5), 2.236},
		{"petersen", graph.Petersen(), 4},
		{"edgeless", graph.Empty(3), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.LovaszTheta(ctx, tt.graph)
			if err != nil {
				t.Fatalf("theta: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-3 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRelaxationsUndefinedOnOrderZero(t *testing.T) {
	ctx := context.Background()
	r := NewRelaxations()
	if _, err := r.FractionalAlpha(ctx, graph.New(0)); !errors.Is(err, errors.ErrCodeDomainUndefined) {
		t.Errorf("fractional alpha: got %v, want DOMAIN_UNDEFINED", err)
	}
	if _, err := r.LovaszTheta(ctx, graph.New(0)); !errors.Is(err, errors.ErrCodeDomainUndefined) {
		t.Errorf("theta: got %v, want DOMAIN_UNDEFINED", err)
	}
}
