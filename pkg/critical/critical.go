// Package critical computes the union of maximum critical independent
// sets (UMCIS) of a graph.
//
// A critical independent set maximizes |S| - |N(S)| over independent
// sets S. The union of the maximum ones can be found in polynomial time
// through the bipartite double cover: by König's theorem the cover's
// independence number is its order minus its matching number, and a
// vertex belongs to the union exactly when removing the closed
// neighborhood of both its cover copies costs the cover nothing beyond
// those two copies.
//
// Several alpha properties (König–Egerváry and its relatives) reduce to
// this structure, which is why it is worth a package of its own.
package critical

import (
	"context"

	"github.com/graphcert/alphabound/pkg/errors"
	"github.com/graphcert/alphabound/pkg/graph"
)

// UnionMCIS returns the union of all maximum critical independent sets
// of g, in increasing vertex order. The graph on zero vertices has an
// empty union. The computation works on disposable copies of the double
// cover; g is never mutated.
//
// Each vertex costs one maximum-matching computation on a graph of
// order at most 2n, so the whole union costs O(n^4); the context is
// checked between vertices so long runs stay cancellable.
func UnionMCIS(ctx context.Context, g *graph.Graph) ([]int, error) {
	if g.Order() == 0 {
		return nil, nil
	}

	cover := g.BipartiteDoubleCover()
	coverAlpha := cover.Order() - cover.MatchingNumber()

	var union []int
	for _, v := range g.Vertices() {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, err, "union_MCIS cancelled at vertex %d", v)
		}

		dropped := cover.ClosedNeighborhood([]int{
			g.CoverVertex(v, 0),
			g.CoverVertex(v, 1),
		})
		rest := cover.DeleteVertices(dropped)

		// Both copies of v go back into any maximum independent set of
		// the reduced cover, hence the +2.
		if rest.Order()-rest.MatchingNumber()+2 == coverAlpha {
			union = append(union, v)
		}
	}
	return union, nil
}
