// Package props implements the alpha properties: structural predicates
// that certify the independence number of a graph is already determined
// by a cheaper specialized method, so bound search is unnecessary.
//
// Predicates share one shape, func(ctx, g) (bool, error). A true result
// is a certificate; errors follow the pkg/errors taxonomy and skippable
// codes are dropped by the aggregation in pkg/classify.
package props

import (
	"context"
	"sort"

	"github.com/graphcert/alphabound/pkg/critical"
	"github.com/graphcert/alphabound/pkg/errors"
	"github.com/graphcert/alphabound/pkg/graph"
)

// Predicate is the common shape of every alpha property.
type Predicate func(ctx context.Context, g *graph.Graph) (bool, error)

// HasDominatingVertex reports whether some vertex is adjacent to every
// other vertex, that is, the maximum degree equals order minus one.
func HasDominatingVertex(_ context.Context, g *graph.Graph) (bool, error) {
	return g.Order() > 0 && g.MaxDegree() == g.Order()-1, nil
}

// IsClawFree reports whether no 4-vertex induced subgraph is a claw
// (degree sequence 3,1,1,1). Enumerates all 4-subsets, so it is only
// suitable for small and moderate graphs.
func IsClawFree(ctx context.Context, g *graph.Graph) (bool, error) {
	n := g.Order()
	for a := 0; a < n; a++ {
		if err := ctx.Err(); err != nil {
			return false, errors.Wrap(errors.ErrCodeTimeout, err, "claw enumeration cancelled")
		}
		for b := a + 1; b < n; b++ {
			for c := b + 1; c < n; c++ {
				for d := c + 1; d < n; d++ {
					if isClaw(g, [4]int{a, b, c, d}) {
						return false, nil
					}
				}
			}
		}
	}
	return true, nil
}

func isClaw(g *graph.Graph, vs [4]int) bool {
	var degs [4]int
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			if g.HasEdge(vs[i], vs[j]) {
				degs[i]++
				degs[j]++
			}
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(degs[:])))
	return degs == [4]int{3, 1, 1, 1}
}

// HasPendantVertex reports whether some vertex has degree exactly one.
func HasPendantVertex(_ context.Context, g *graph.Graph) (bool, error) {
	for v := 0; v < g.Order(); v++ {
		if g.Degree(v) == 1 {
			return true, nil
		}
	}
	return false, nil
}

// HasSimplicialVertex reports whether some vertex's neighborhood
// induces a clique. Isolated vertices qualify vacuously.
func HasSimplicialVertex(_ context.Context, g *graph.Graph) (bool, error) {
	for v := 0; v < g.Order(); v++ {
		if g.InducesClique(g.Neighbors(v)) {
			return true, nil
		}
	}
	return false, nil
}

// IsKoenigEgervary reports whether the union of maximum critical
// independent sets together with its neighborhood covers every vertex.
// By Larson's characterization this holds exactly when alpha + mu = n.
func IsKoenigEgervary(ctx context.Context, g *graph.Graph) (bool, error) {
	union, err := critical.UnionMCIS(ctx, g)
	if err != nil {
		return false, err
	}
	covered := make(map[int]bool, g.Order())
	for _, v := range union {
		covered[v] = true
		for _, w := range g.Neighbors(v) {
			covered[w] = true
		}
	}
	return len(covered) == g.Order(), nil
}

// IsAlmostKoenigEgervary reports whether deleting some single vertex
// leaves a Koenig-Egervary graph.
func IsAlmostKoenigEgervary(ctx context.Context, g *graph.Graph) (bool, error) {
	for v := 0; v < g.Order(); v++ {
		ke, err := IsKoenigEgervary(ctx, g.DeleteVertices([]int{v}))
		if err != nil {
			return false, err
		}
		if ke {
			return true, nil
		}
	}
	return false, nil
}

// HasNonemptyCriticalPart reports whether the union of maximum critical
// independent sets is non-empty.
func HasNonemptyCriticalPart(ctx context.Context, g *graph.Graph) (bool, error) {
	union, err := critical.UnionMCIS(ctx, g)
	if err != nil {
		return false, err
	}
	return len(union) > 0, nil
}
