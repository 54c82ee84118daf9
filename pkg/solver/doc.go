// Package solver supplies the numerical optimizers consumed by the
// relaxation bounds: a linear-program solver backed by gonum's simplex
// implementation and a semidefinite-program solver implemented as an
// alternating-projection (ADMM) iteration over the PSD cone.
//
// Both solvers are exposed behind small interfaces so the bound
// adapters never depend on a concrete backend. A solver that fails to
// converge, or reports an infeasible or unbounded program, returns a
// SOLVER_UNAVAILABLE error; callers treat that as "bound unavailable",
// never as a fatal fault.
package solver
