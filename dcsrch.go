package linesearch

import "math"

// SearchState is the persistent, exclusively-owned state of one line search
// across reverse-communication calls to Step. The zero value is ready to
// start a new search: the first call to Step treats it as the initial step.
//
// A SearchState must never be shared between concurrent searches, but
// independent states may be stepped concurrently from different goroutines.
type SearchState struct {
	status TerminationStatus
	err    error

	bracketed bool
	stage     int // 1 or 2

	finit, ginit float64
	gtest        float64

	stx, fx, dx float64
	sty, fy, dy float64
	stp, fp, dp float64

	stmin, stmax  float64
	width, width1 float64
	cfg           Config
}

// Status returns the most recently computed termination status.
func (s *SearchState) Status() TerminationStatus { return s.status }

// Err returns the sentinel error associated with an ErrorInput status, or
// nil otherwise.
func (s *SearchState) Err() error { return s.err }

// Step implements the reverse-communication contract: given the current
// state, a trial step, and its evaluation, it returns the next step to try
// and the search's status.
//
// On the first call for a SearchState (status == Start), alpha is the
// caller's chosen initial step and f, g are f(0) and f'(0) at the start of
// the ray; cfg configures the search. On every subsequent call, alpha must be the value
// this function most recently returned, and f, g its evaluation. Step
// returns NeedEval until the search reaches a terminal status, after which
// the returned alpha is the final answer and further calls are idempotent
// (they return the same alpha and status without re-examining f, g).
func (s *SearchState) Step(alpha, f, g float64, cfg Config) (float64, TerminationStatus) {
	if s.status.Terminal() {
		// Re-stepping a finished search returns the same answer without
		// re-examining f, g.
		return s.stp, s.status
	}

	if s.status == Start {
		if err := cfg.validate(); err != nil {
			return s.fail(alpha, err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) || math.IsNaN(g) || math.IsInf(g, 0) {
			return s.fail(alpha, ErrNonFinite)
		}
		if alpha < cfg.Stpmin || alpha > cfg.Stpmax {
			return s.fail(alpha, ErrStepOutOfBounds)
		}
		if g >= 0 {
			return s.fail(alpha, ErrNotDescent)
		}

		s.cfg = cfg
		s.bracketed = false
		s.stage = 1
		s.finit = f
		s.ginit = g
		s.gtest = cfg.Ftol * g
		s.stx, s.fx, s.dx = 0, f, g
		s.sty, s.fy, s.dy = 0, f, g
		s.stp = alpha
		s.stmin = 0
		s.stmax = alpha + 4*alpha
		s.width = cfg.Stpmax - cfg.Stpmin
		s.width1 = 2 * s.width
		s.status = NeedEval
		return s.stp, s.status
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || math.IsNaN(g) || math.IsInf(g, 0) {
		return s.fail(alpha, ErrNonFinite)
	}

	cfg = s.cfg
	s.stp, s.fp, s.dp = alpha, f, g

	ftest := s.finit + s.stp*s.gtest

	if s.stage == 1 && s.fp <= ftest && s.dp >= 0 {
		s.stage = 2
	}

	status := NeedEval
	switch {
	case s.bracketed && (s.stp <= s.stmin || s.stp >= s.stmax):
		status = WarnRounding
	case s.bracketed && (s.stmax-s.stmin <= cfg.Xtol*s.stmax):
		status = WarnXtol
	case s.stp == cfg.Stpmax && s.fp <= ftest && s.dp <= s.gtest:
		status = WarnStpmax
	case s.stp == cfg.Stpmin && (s.fp > ftest || s.dp >= s.gtest):
		status = WarnStpmin
	}

	if s.fp <= ftest && math.Abs(s.dp) <= cfg.Gtol*(-s.ginit) {
		status = Converged
	}

	if status.Terminal() {
		s.status = status
		return s.stp, s.status
	}

	// Two-stage modified-function trick: stage 1 searches on a shifted
	// function until the step first satisfies the Armijo condition and the
	// derivative sign flips, then stage 2 switches back to the true
	// function for the remaining safeguarded steps.
	var stx, fx, dx, sty, fy, dy, stp float64
	var bracketed bool
	var stepErr error
	if s.stage == 1 && s.fp <= s.fx && s.fp > ftest {
		fm := s.fp - s.stp*s.gtest
		fxm := s.fx - s.stx*s.gtest
		fym := s.fy - s.sty*s.gtest
		gm := s.dp - s.gtest
		gxm := s.dx - s.gtest
		gym := s.dy - s.gtest

		var stxm, stym float64
		stxm, fxm, gxm, stym, fym, gym, stp, bracketed, stepErr = SafeguardedStep(
			s.stx, fxm, gxm, s.sty, fym, gym, s.stp, fm, gm,
			s.bracketed, s.stmin, s.stmax)

		stx, sty = stxm, stym
		fx = fxm + stx*s.gtest
		fy = fym + sty*s.gtest
		dx = gxm + s.gtest
		dy = gym + s.gtest
	} else {
		stx, fx, dx, sty, fy, dy, stp, bracketed, stepErr = SafeguardedStep(
			s.stx, s.fx, s.dx, s.sty, s.fy, s.dy, s.stp, s.fp, s.dp,
			s.bracketed, s.stmin, s.stmax)
	}
	if stepErr != nil {
		return s.fail(stp, stepErr)
	}
	s.stx, s.fx, s.dx = stx, fx, dx
	s.sty, s.fy, s.dy = sty, fy, dy
	s.bracketed = bracketed

	// Bisection guard: force a bisection when the interval is not shrinking
	// fast enough.
	if s.bracketed {
		if math.Abs(s.sty-s.stx) >= 0.66*s.width1 {
			stp = s.stx + 0.5*(s.sty-s.stx)
		}
		s.width1 = s.width
		s.width = math.Abs(s.sty - s.stx)
	}

	// Dynamic inner bounds on the next trial.
	if s.bracketed {
		s.stmin = math.Min(s.stx, s.sty)
		s.stmax = math.Max(s.stx, s.sty)
	} else {
		s.stmin = stp + 1.1*(stp-s.stx)
		s.stmax = stp + 4*(stp-s.stx)
	}

	stp = math.Max(cfg.Stpmin, math.Min(cfg.Stpmax, stp))
	if (s.bracketed && (stp <= s.stmin || stp >= s.stmax)) ||
		(s.bracketed && s.stmax-s.stmin <= cfg.Xtol*s.stmax) {
		stp = s.stx
	}

	s.stp = stp
	s.status = NeedEval
	return s.stp, s.status
}

func (s *SearchState) fail(alpha float64, err error) (float64, TerminationStatus) {
	s.stp = alpha
	s.status = ErrorInput
	s.err = err
	return s.stp, s.status
}
