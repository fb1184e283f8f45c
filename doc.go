// Package linesearch implements safeguarded one-dimensional step selection
// for globalized unconstrained optimization, centered on the classical
// Moré–Thuente algorithm: a safeguarded cubic/quadratic interpolation step
// (SafeguardedStep, MINPACK's dcstep) and a reverse-communication driver
// that maintains an interval of uncertainty across caller-supplied function
// and directional-derivative evaluations (SearchState.Step, MINPACK's
// dcsrch) until a step satisfying the strong Wolfe conditions is found.
//
// The package owns none of the objective evaluation: StrongWolfeSearch and
// ArmijoSearch drive an Evaluator the caller supplies, and never allocate a
// goroutine, lock, or do I/O. Outer solvers (quasi-Newton, L-BFGS, and other
// descent-direction methods) are expected to call StrongWolfeSearch once per
// outer iteration; see the solvers subpackage for a worked example.
package linesearch
