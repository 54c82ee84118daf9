package bounds

import (
	"context"
	"math"
	"sort"

	"github.com/graphcert/alphabound/pkg/errors"
	"github.com/graphcert/alphabound/pkg/graph"
)

// Func is the common shape of every bound: a pure function of the graph
// that yields a numeric bound on the independence number or an error.
type Func func(ctx context.Context, g *graph.Graph) (float64, error)

// ==== Lower bounds ====

// MatchingLower returns n - 2*mu(G). Every maximum matching covers at
// most 2*mu vertices, so the uncovered remainder is independent.
func MatchingLower(_ context.Context, g *graph.Graph) (float64, error) {
	return float64(g.Order() - 2*g.MatchingNumber()), nil
}

// Residue returns the Havel-Hakimi residue: the number of zeros left
// after repeatedly laying off the largest remaining degree. Favaron,
// Maheo and Sacle showed the residue is a lower bound on alpha.
func Residue(_ context.Context, g *graph.Graph) (float64, error) {
	seq := g.DegreeSequence()
	for len(seq) > 0 && seq[0] > 0 {
		d := seq[0]
		seq = seq[1:]
		for i := 0; i < d && i < len(seq); i++ {
			seq[i]--
		}
		sort.Sort(sort.Reverse(sort.IntSlice(seq)))
	}
	return float64(len(seq)), nil
}

// AverageDegree returns n / (1 + dbar) where dbar is the average degree.
func AverageDegree(_ context.Context, g *graph.Graph) (float64, error) {
	if g.Order() == 0 {
		return 0, errors.New(errors.ErrCodeDomainUndefined, "average-degree bound undefined for the empty vertex set")
	}
	return float64(g.Order()) / (1 + g.AverageDegree()), nil
}

// CaroWei returns the Caro-Wei bound, the sum over all vertices of
// 1/(1+deg(v)). It dominates the average-degree bound by convexity.
func CaroWei(_ context.Context, g *graph.Graph) (float64, error) {
	var total float64
	for v := 0; v < g.Order(); v++ {
		total += 1 / float64(1+g.Degree(v))
	}
	return total, nil
}

// Wilf returns n / (1 + lambda_max) where lambda_max is the largest
// adjacency eigenvalue.
func Wilf(_ context.Context, g *graph.Graph) (float64, error) {
	if g.Order() == 0 {
		return 0, errors.New(errors.ErrCodeDomainUndefined, "spectral bound undefined for the empty vertex set")
	}
	eigs, err := g.AdjacencyEigenvalues()
	if err != nil {
		return 0, err
	}
	return float64(g.Order()) / (1 + eigs[len(eigs)-1]), nil
}

// HansenZhengLower returns ceil(n - 2e / (1 + floor(2e/n))).
func HansenZhengLower(_ context.Context, g *graph.Graph) (float64, error) {
	n, e := g.Order(), g.Size()
	if n == 0 {
		return 0, errors.New(errors.ErrCodeDomainUndefined, "Hansen-Zheng bound undefined for the empty vertex set")
	}
	k := 1 + (2*e)/n
	return math.Ceil(float64(n) - float64(2*e)/float64(k)), nil
}

// Harant returns (t - sqrt(t*t - 4*n*n)) / 2 with t = 2e + n + 1.
// Sparse graphs with 2e < n-1 make the discriminant negative; the
// formula is undefined there.
func Harant(_ context.Context, g *graph.Graph) (float64, error) {
	n, e := g.Order(), g.Size()
	t := float64(2*e + n + 1)
	disc := t*t - 4*float64(n)*float64(n)
	if disc < 0 {
		return 0, errors.New(errors.ErrCodeDomainUndefined,
			"harant bound undefined for order %d with %d edges", n, e)
	}
	return (t - math.Sqrt(disc)) / 2, nil
}

// GreedyMIN returns the size of the independent set grown by the MIN
// algorithm: repeatedly take a vertex of minimum remaining degree and
// delete its closed neighborhood. The witness set certifies the bound,
// which always matches or beats Caro-Wei.
func GreedyMIN(ctx context.Context, g *graph.Graph) (float64, error) {
	h := g
	count := 0
	for h.Order() > 0 {
		if err := ctx.Err(); err != nil {
			return 0, errors.Wrap(errors.ErrCodeTimeout, err, "greedy search cancelled")
		}
		pick := 0
		for v := 1; v < h.Order(); v++ {
			if h.Degree(v) < h.Degree(pick) {
				pick = v
			}
		}
		count++
		h = h.DeleteVertices(h.ClosedNeighborhood([]int{pick}))
	}
	return float64(count), nil
}
