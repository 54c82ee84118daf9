package solver

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/graphcert/alphabound/pkg/errors"
)

// SemidefiniteProgram is a trace-constrained maximization over the
// positive-semidefinite cone:
//
//	maximize  <C, X>
//	subject   trace(X) = 1
//	          X[i][j] = X[j][i] = 0   for every (i, j) in Zeros
//	          X positive semidefinite
//
// Zeros must name off-diagonal positions only. Objective entries are
// row-major; a nil Objective means the all-ones matrix.
type SemidefiniteProgram struct {
	Dim       int
	Objective []float64
	Zeros     [][2]int
}

// SDPSolver solves a SemidefiniteProgram and returns its optimal value.
type SDPSolver interface {
	Solve(ctx context.Context, p SemidefiniteProgram) (float64, error)
}

// Defaults for the ADMM iteration. The tolerance is tight because the
// consumers compare the optimum against integer bounds.
const (
	DefaultSDPTol     = 1e-9
	DefaultSDPMaxIter = 500000
	defaultRho        = 1.0
)

// ADMM solves trace-constrained SDPs by operator splitting: one iterate
// stays on the affine subspace (trace one, fixed zeros), the other on
// the PSD cone via eigenvalue clipping, with a scaled dual driving them
// together. Convergence is declared when both the primal residual
// ||X-Z|| and the dual residual rho*||Z-Z'|| drop below Tol.
type ADMM struct {
	Tol     float64 // convergence tolerance; DefaultSDPTol when zero
	MaxIter int     // iteration cap; DefaultSDPMaxIter when zero
	Rho     float64 // penalty parameter; 1 when zero
}

// NewADMM returns an ADMM solver with default parameters.
func NewADMM() *ADMM { return &ADMM{} }

// Fingerprint identifies the solver and its effective settings. Cached
// bound reports embed it so that re-tuning the iteration invalidates them.
func (a *ADMM) Fingerprint() string {
	tol := a.Tol
	if tol == 0 {
		tol = DefaultSDPTol
	}
	maxIter := a.MaxIter
	if maxIter == 0 {
		maxIter = DefaultSDPMaxIter
	}
	rho := a.Rho
	if rho == 0 {
		rho = defaultRho
	}
	return fmt.Sprintf("admm(tol=%g,maxiter=%d,rho=%g)", tol, maxIter, rho)
}

// Solve runs the splitting iteration. Failure to converge within the
// iteration cap, and cancellation, are SOLVER_UNAVAILABLE/TIMEOUT; the
// caller is expected to skip the bound, not abort.
func (a *ADMM) Solve(ctx context.Context, p SemidefiniteProgram) (float64, error) {
	n := p.Dim
	if n <= 0 {
		return 0, errors.New(errors.ErrCodeSolverUnavailable, "sdp has empty dimension")
	}
	for _, z := range p.Zeros {
		if z[0] == z[1] || z[0] < 0 || z[1] < 0 || z[0] >= n || z[1] >= n {
			return 0, errors.New(errors.ErrCodeInvalidInput,
				"sdp zero position (%d,%d) invalid for dimension %d", z[0], z[1], n)
		}
	}

	tol := a.Tol
	if tol == 0 {
		tol = DefaultSDPTol
	}
	maxIter := a.MaxIter
	if maxIter == 0 {
		maxIter = DefaultSDPMaxIter
	}
	rho := a.Rho
	if rho == 0 {
		rho = defaultRho
	}

	obj := p.Objective
	if obj == nil {
		obj = make([]float64, n*n)
		for i := range obj {
			obj[i] = 1
		}
	}

	zero := make([]bool, n*n)
	for _, z := range p.Zeros {
		zero[z[0]*n+z[1]] = true
		zero[z[1]*n+z[0]] = true
	}

	x := make([]float64, n*n)
	z := make([]float64, n*n)
	zPrev := make([]float64, n*n)
	u := make([]float64, n*n)
	scratch := make([]float64, n*n)

	// Start from the centered feasible point X = I/n.
	for i := 0; i < n; i++ {
		z[i*n+i] = 1 / float64(n)
	}

	for iter := 0; iter < maxIter; iter++ {
		if iter%512 == 0 {
			if err := ctx.Err(); err != nil {
				return 0, errors.Wrap(errors.ErrCodeTimeout, err, "sdp solve cancelled")
			}
		}

		// X-update: project Z - U + C/rho onto the affine subspace.
		for i := range x {
			x[i] = z[i] - u[i] + obj[i]/rho
		}
		projectAffine(x, zero, n)

		// Z-update: project X + U onto the PSD cone.
		copy(zPrev, z)
		for i := range scratch {
			scratch[i] = x[i] + u[i]
		}
		if err := projectPSD(scratch, z, n); err != nil {
			return 0, err
		}

		// Dual update and residuals.
		var primal, dual float64
		for i := range u {
			d := x[i] - z[i]
			u[i] += d
			primal += d * d
			dd := z[i] - zPrev[i]
			dual += dd * dd
		}
		if math.Sqrt(primal) < tol && rho*math.Sqrt(dual) < tol {
			return dot(obj, x), nil
		}
	}

	return 0, errors.New(errors.ErrCodeSolverUnavailable,
		"sdp did not converge within %d iterations", maxIter)
}

// projectAffine symmetrizes m in place, zeroes the fixed positions, and
// shifts the diagonal so the trace is exactly one. The zero positions
// are off-diagonal, so the two corrections do not interact.
func projectAffine(m []float64, zero []bool, n int) {
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			avg := (m[i*n+j] + m[j*n+i]) / 2
			m[i*n+j] = avg
			m[j*n+i] = avg
		}
	}
	for i := range m {
		if zero[i] {
			m[i] = 0
		}
	}
	var tr float64
	for i := 0; i < n; i++ {
		tr += m[i*n+i]
	}
	shift := (tr - 1) / float64(n)
	for i := 0; i < n; i++ {
		m[i*n+i] -= shift
	}
}

// projectPSD writes the nearest positive-semidefinite matrix to src
// (in Frobenius norm) into dst via eigenvalue clipping.
func projectPSD(src, dst []float64, n int) error {
	// SymDense reads the upper triangle; src is symmetric by now.
	var eig mat.EigenSym
	if ok := eig.Factorize(mat.NewSymDense(n, src), true); !ok {
		return errors.New(errors.ErrCodeSolverUnavailable, "psd projection: eigendecomposition failed")
	}
	vals := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	for i := range dst {
		dst[i] = 0
	}
	for k := 0; k < n; k++ {
		lam := vals[k]
		if lam <= 0 {
			continue
		}
		for i := 0; i < n; i++ {
			qi := vecs.At(i, k)
			if qi == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				dst[i*n+j] += lam * qi * vecs.At(j, k)
			}
		}
	}
	return nil
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

var _ SDPSolver = (*ADMM)(nil)
