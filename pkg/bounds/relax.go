package bounds

import (
	"context"
	"fmt"
	"math"

	"github.com/graphcert/alphabound/pkg/errors"
	"github.com/graphcert/alphabound/pkg/graph"
	"github.com/graphcert/alphabound/pkg/solver"
)

// Relaxations bundles the two optimizer-backed bounds with the solvers
// they submit to. Construct one with NewRelaxations for the default
// solvers, or inject alternatives for testing.
type Relaxations struct {
	LP  solver.LPSolver
	SDP solver.SDPSolver
}

// NewRelaxations returns adapters backed by the default simplex and
// ADMM solvers.
func NewRelaxations() *Relaxations {
	return &Relaxations{
		LP:  solver.NewSimplex(),
		SDP: solver.NewADMM(),
	}
}

// fingerprinter is implemented by solvers that can describe their
// settings for cache invalidation.
type fingerprinter interface {
	Fingerprint() string
}

// Fingerprint describes both solvers and their settings. Solvers that
// do not self-describe fall back to their type name.
func (r *Relaxations) Fingerprint() string {
	return "lp=" + solverFingerprint(r.LP) + ";sdp=" + solverFingerprint(r.SDP)
}

func solverFingerprint(v any) string {
	if v == nil {
		return "none"
	}
	if f, ok := v.(fingerprinter); ok {
		return f.Fingerprint()
	}
	return fmt.Sprintf("%T", v)
}

// FractionalAlpha returns the fractional relaxation of the independence
// number: maximize the sum of per-vertex weights in [0,1] subject to
// x_u + x_v <= 1 on every edge. The optimum is always an upper bound
// on alpha and is half-integral.
func (r *Relaxations) FractionalAlpha(ctx context.Context, g *graph.Graph) (float64, error) {
	n := g.Order()
	if n == 0 {
		return 0, errors.New(errors.ErrCodeDomainUndefined, "fractional relaxation undefined for the empty vertex set")
	}
	prog := solver.LinearProgram{
		NumVars:   n,
		Objective: ones(n),
		Upper:     ones(n),
	}
	for _, e := range g.Edges() {
		prog.Constraints = append(prog.Constraints, solver.LinearConstraint{
			Vars:   []int{e[0], e[1]},
			Coeffs: []float64{1, 1},
			Bound:  1,
		})
	}
	return r.LP.Solve(ctx, prog)
}

// LovaszTheta returns the Lovasz theta number of the graph, computed as
// the maximum of <J,X> over unit-trace positive semidefinite matrices
// with X_uv = 0 on every edge. Theta is sandwiched between alpha and
// the fractional chromatic number of the complement, so it is an upper
// bound on alpha. The value is rounded to three decimals.
func (r *Relaxations) LovaszTheta(ctx context.Context, g *graph.Graph) (float64, error) {
	n := g.Order()
	if n == 0 {
		return 0, errors.New(errors.ErrCodeDomainUndefined, "theta undefined for the empty vertex set")
	}
	if n == 1 {
		return 1, nil
	}
	prog := solver.SemidefiniteProgram{Dim: n}
	for _, e := range g.Edges() {
		prog.Zeros = append(prog.Zeros, [2]int{e[0], e[1]})
	}
	val, err := r.SDP.Solve(ctx, prog)
	if err != nil {
		return 0, err
	}
	return math.Round(val*1000) / 1000, nil
}

func ones(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = 1
	}
	return s
}
