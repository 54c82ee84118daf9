package solver

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/graphcert/alphabound/pkg/errors"
)

// LinearProgram is a maximization over box-bounded real variables:
//
//	maximize  Objective · x
//	subject   0 <= x_j <= Upper[j]
//	          sum_j Coeffs[j] * x_j <= Bound   for every constraint
type LinearProgram struct {
	NumVars     int
	Objective   []float64
	Upper       []float64
	Constraints []LinearConstraint
}

// LinearConstraint is a single inequality sum_j Coeffs[j]*x_j <= Bound.
// Coeffs is sparse: Vars[i] carries coefficient Coeffs[i].
type LinearConstraint struct {
	Vars   []int
	Coeffs []float64
	Bound  float64
}

// LPSolver solves a LinearProgram and returns its optimal value.
type LPSolver interface {
	Solve(ctx context.Context, p LinearProgram) (float64, error)
}

// DefaultLPTol is the simplex pivot tolerance.
const DefaultLPTol = 1e-10

// Simplex solves linear programs with gonum's dense simplex method.
// The zero value is ready to use.
type Simplex struct {
	// Tol is the pivot tolerance; DefaultLPTol when zero.
	Tol float64
}

// NewSimplex returns a Simplex solver with the default tolerance.
func NewSimplex() *Simplex { return &Simplex{} }

// Fingerprint identifies the solver and its effective settings. Cached
// bound reports embed it so that re-tuning the tolerance invalidates them.
func (s *Simplex) Fingerprint() string {
	tol := s.Tol
	if tol == 0 {
		tol = DefaultLPTol
	}
	return fmt.Sprintf("simplex(tol=%g)", tol)
}

// Solve converts p to standard equality form (one slack variable per
// inequality and per variable upper bound) and runs the simplex method.
// Infeasible, unbounded, or singular programs are SOLVER_UNAVAILABLE.
func (s *Simplex) Solve(ctx context.Context, p LinearProgram) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, errors.Wrap(errors.ErrCodeTimeout, err, "lp solve cancelled")
	}
	if p.NumVars == 0 {
		return 0, errors.New(errors.ErrCodeSolverUnavailable, "linear program has no variables")
	}

	tol := s.Tol
	if tol == 0 {
		tol = DefaultLPTol
	}

	nv := p.NumVars
	nc := len(p.Constraints)
	cols := nv + nc + nv // variables, inequality slacks, box slacks
	rows := nc + nv

	// minimize -Objective, so the simplex maximizes the original.
	c := make([]float64, cols)
	for j := 0; j < nv; j++ {
		c[j] = -p.Objective[j]
	}

	a := mat.NewDense(rows, cols, nil)
	b := make([]float64, rows)

	for i, con := range p.Constraints {
		for k, j := range con.Vars {
			a.Set(i, j, con.Coeffs[k])
		}
		a.Set(i, nv+i, 1)
		b[i] = con.Bound
	}
	for j := 0; j < nv; j++ {
		a.Set(nc+j, j, 1)
		a.Set(nc+j, nv+nc+j, 1)
		b[nc+j] = p.Upper[j]
	}

	opt, _, err := lp.Simplex(c, a, b, tol, nil)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeSolverUnavailable, err, "simplex failed")
	}
	return -opt, nil
}

var _ LPSolver = (*Simplex)(nil)
