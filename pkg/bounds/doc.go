// Package bounds implements the independence-number bounds alphabound
// aggregates: closed-form arithmetic bounds over basic graph statistics
// and two relaxation bounds that delegate to external optimizers.
//
// Every bound has the same shape, a pure function
//
//	func(ctx context.Context, g *graph.Graph) (float64, error)
//
// returning either a numeric bound or an error. Two error codes matter
// to callers: DOMAIN_UNDEFINED means the bound's precondition fails for
// this graph (the Kwok and Borg bounds need a positive maximum degree),
// and SOLVER_UNAVAILABLE means a relaxation's optimizer did not
// converge. Both are skippable; the aggregation in pkg/classify drops
// the bound and carries on. Anything else is a real fault.
//
// The closed-form bounds cost no more than a degree-sequence sort or an
// eigendecomposition. The relaxations ([Relaxations.FractionalAlpha],
// [Relaxations.LovaszTheta]) build a fresh problem instance per call
// and submit it to the solvers they were constructed with.
package bounds
