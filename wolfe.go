package linesearch

import "math"

// Result is the outcome of a frontend search.
type Result struct {
	Alpha  float64
	F      float64
	G      float64
	Status TerminationStatus
	Nfev   int
}

// StrongWolfeSearch drives a SearchState through its reverse-communication
// protocol (SearchState.Step), invoking eval each time the driver returns
// NeedEval, until a terminal status is reached or cfg.Maxfev evaluations have
// been spent. f0, g0 are f(0) and f'(0) at the start of the ray; alpha0 is
// the caller's initial trial step.
//
// SearchState itself does not count evaluations; the evaluation budget is
// enforced here instead.
func StrongWolfeSearch(f0, g0 float64, eval Evaluator, alpha0 float64, cfg Config) Result {
	var state SearchState
	f, g := f0, g0

	alpha, status := state.Step(alpha0, f0, g0, cfg)
	nfev := 0
	for status == NeedEval {
		if nfev >= cfg.Maxfev {
			status = WarnMaxfev
			break
		}
		f, g = eval.Evaluate(alpha)
		nfev++
		alpha, status = state.Step(alpha, f, g, cfg)
	}

	return Result{Alpha: alpha, F: f, G: g, Status: status, Nfev: nfev}
}

// ArmijoSearch is a simpler backtracking frontend, independent of
// SafeguardedStep/SearchState: it only enforces sufficient decrease, not the
// curvature condition. Starting from alpha0 (or 1, if alpha0 <= 0), it
// scales the step by rho (default 0.5 when rho is outside (0, 1)) until the
// Armijo condition holds or the step floor cfg.Stpmin is reached.
func ArmijoSearch(f0, g0 float64, eval Evaluator, alpha0, rho float64, cfg Config) Result {
	if rho <= 0 || rho >= 1 {
		rho = 0.5
	}
	alpha := alpha0
	if alpha <= 0 {
		alpha = 1
	}

	nfev := 0
	var f, g float64
	for {
		if nfev >= cfg.Maxfev {
			return Result{Alpha: alpha, F: f, G: g, Status: WarnMaxfev, Nfev: nfev}
		}

		f, g = eval.Evaluate(alpha)
		nfev++

		if f <= f0+cfg.Ftol*alpha*g0 {
			return Result{Alpha: alpha, F: f, G: g, Status: Converged, Nfev: nfev}
		}
		if alpha <= cfg.Stpmin {
			return Result{Alpha: alpha, F: f, G: g, Status: WarnStpmin, Nfev: nfev}
		}
		alpha = math.Max(rho*alpha, cfg.Stpmin)
	}
}
