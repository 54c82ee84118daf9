package graph

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/graphcert/alphabound/pkg/errors"
)

// AdjacencyEigenvalues returns the eigenvalues of the adjacency matrix
// in increasing order. The matrix is symmetric, so all eigenvalues are
// real. The graph on zero vertices has no eigenvalues.
//
// A factorization failure is a fault in the primitive provider and is
// reported as a fatal internal error, never as a skippable condition.
func (g *Graph) AdjacencyEigenvalues() ([]float64, error) {
	if g.n == 0 {
		return nil, nil
	}

	data := make([]float64, g.n*g.n)
	for u := 0; u < g.n; u++ {
		for v := 0; v < g.n; v++ {
			if g.adj[u][v] {
				data[u*g.n+v] = 1
			}
		}
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(mat.NewSymDense(g.n, data), false); !ok {
		return nil, errors.New(errors.ErrCodeInternal,
			"adjacency eigendecomposition failed for order %d", g.n)
	}

	vals := eig.Values(nil)
	sort.Float64s(vals)
	return vals, nil
}
