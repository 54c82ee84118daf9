package bounds

import (
	"context"
	"math"
	"sort"

	"github.com/graphcert/alphabound/pkg/errors"
	"github.com/graphcert/alphabound/pkg/graph"
)

// eigZeroTol decides whether a computed adjacency eigenvalue counts as
// zero. Adjacency matrices are integral, so anything this small is
// floating-point noise from the factorization.
const eigZeroTol = 1e-8

// ==== Upper bounds ====

// MatchingUpper returns n - mu(G). An independent set meets each
// matching edge at most once, so alpha <= n - mu.
func MatchingUpper(_ context.Context, g *graph.Graph) (float64, error) {
	return float64(g.Order() - g.MatchingNumber()), nil
}

// MinDegreeUpper returns n - delta(G) where delta is the minimum degree.
func MinDegreeUpper(_ context.Context, g *graph.Graph) (float64, error) {
	return float64(g.Order() - g.MinDegree()), nil
}

// Cvetkovic returns the inertia bound: the number of zero adjacency
// eigenvalues plus the smaller of the positive and negative counts.
func Cvetkovic(_ context.Context, g *graph.Graph) (float64, error) {
	eigs, err := g.AdjacencyEigenvalues()
	if err != nil {
		return 0, err
	}
	var zero, pos, neg int
	for _, lam := range eigs {
		switch {
		case math.Abs(lam) < eigZeroTol:
			zero++
		case lam > 0:
			pos++
		default:
			neg++
		}
	}
	return float64(zero + min(pos, neg)), nil
}

// Annihilation returns the annihilation number: scanning the ascending
// degree sequence, the first prefix length whose degree sum exceeds the
// sum of the remaining degrees.
func Annihilation(_ context.Context, g *graph.Graph) (float64, error) {
	seq := g.DegreeSequence()
	sort.Ints(seq)
	total := 0
	for _, d := range seq {
		total += d
	}
	a, prefix := 1, 0
	for a <= len(seq) && prefix+seq[a-1] <= total-(prefix+seq[a-1]) {
		prefix += seq[a-1]
		a++
	}
	return float64(a), nil
}

// Kwok returns n - e/Delta. Undefined when the maximum degree is zero.
func Kwok(_ context.Context, g *graph.Graph) (float64, error) {
	d := g.MaxDegree()
	if d == 0 {
		return 0, errors.New(errors.ErrCodeDomainUndefined, "Kwok bound undefined for edgeless graphs")
	}
	return float64(g.Order()) - float64(g.Size())/float64(d), nil
}

// Borg returns n - ceil((n-1)/Delta). Undefined when the maximum degree
// is zero.
func Borg(_ context.Context, g *graph.Graph) (float64, error) {
	d := g.MaxDegree()
	if d == 0 {
		return 0, errors.New(errors.ErrCodeDomainUndefined, "Borg bound undefined for edgeless graphs")
	}
	n := g.Order()
	return float64(n) - math.Ceil(float64(n-1)/float64(d)), nil
}

// HansenZhengUpper returns floor(1/2 + sqrt(1/4 + n*n - n - 2e)).
func HansenZhengUpper(_ context.Context, g *graph.Graph) (float64, error) {
	n, e := g.Order(), g.Size()
	return math.Floor(0.5 + math.Sqrt(0.25+float64(n*n-n-2*e))), nil
}

// CutVertices returns n - C/2 - 1/2 where C is the number of cut
// vertices.
func CutVertices(_ context.Context, g *graph.Graph) (float64, error) {
	_, cuts := g.BlocksAndCutVertices()
	return float64(g.Order()) - float64(len(cuts))/2 - 0.5, nil
}
