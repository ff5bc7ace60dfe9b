// Package solver is a small constraint-optimization engine for interval
// scheduling models: bounded integer variables, fixed-size intervals,
// precedence inequalities with offsets, cumulative resource constraints,
// and a minimize-the-maximum objective.
//
// The search is a chronological branch-and-bound over interval start times.
// Every feasible assignment that improves the objective is reported through
// a synchronous callback before the search continues, and the solve call is
// always bounded by a wall-clock time limit. Callers interact only with the
// Model, Solver, and Solution types; the search internals are private.
package solver
