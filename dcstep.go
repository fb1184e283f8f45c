package linesearch

import "math"

// SafeguardedStep computes a single safeguarded cubic/quadratic interpolation
// step over the interval of uncertainty [stx, sty] (or the ray from stx, if
// not yet bracketed), following the MINPACK dcstep algorithm.
//
// Given the best point so far (stx, fx, dx), the other interval endpoint
// (sty, fy, dy), and the newest trial (stp, fp, dp), it returns the updated
// interval and the next trial step. On a precondition violation it returns
// the inputs unchanged together with ErrBadInterval.
func SafeguardedStep(
	stx, fx, dx, sty, fy, dy, stp, fp, dp float64,
	bracketed bool, stmin, stmax float64,
) (stxOut, fxOut, dxOut, styOut, fyOut, dyOut, stpOut float64, bracketedOut bool, err error) {
	if bracketed {
		lo, hi := stx, sty
		if lo > hi {
			lo, hi = hi, lo
		}
		if !(lo < stp && stp < hi) {
			return stx, fx, dx, sty, fy, dy, stp, bracketed, ErrBadInterval
		}
	}
	if dx*(stp-stx) >= 0 {
		return stx, fx, dx, sty, fy, dy, stp, bracketed, ErrBadInterval
	}
	if stmax < stmin {
		return stx, fx, dx, sty, fy, dy, stp, bracketed, ErrBadInterval
	}

	sgnd := dp * math.Copysign(1, dx)

	var stpf float64
	switch {
	case fp > fx:
		// Case 1: higher function value. The minimum is bracketed. The
		// cubic step is preferred, unless it is too far from stx, in
		// which case the quadratic step is used as well.
		theta := 3*(fx-fp)/(stp-stx) + dx + dp
		s := maxabs3(theta, dx, dp)
		gamma := s * math.Sqrt((theta/s)*(theta/s)-(dx/s)*(dp/s))
		if stp < stx {
			gamma = -gamma
		}
		p := (gamma - dx) + theta
		q := ((gamma - dx) + gamma) + dp
		r := p / q
		stpc := stx + r*(stp-stx)
		stpq := stx + ((dx/((fx-fp)/(stp-stx)+dx))/2)*(stp-stx)
		if math.Abs(stpc-stx) < math.Abs(stpq-stx) {
			stpf = stpc
		} else {
			stpf = stpc + (stpq-stpc)/2
		}
		bracketed = true

	case sgnd < 0:
		// Case 2: lower function value, derivatives of opposite sign. The
		// minimum is bracketed. The cubic step is taken if it is farther
		// from stp than the secant step; otherwise the secant step is taken.
		theta := 3*(fx-fp)/(stp-stx) + dx + dp
		s := maxabs3(theta, dx, dp)
		gamma := s * math.Sqrt((theta/s)*(theta/s)-(dx/s)*(dp/s))
		if stp > stx {
			gamma = -gamma
		}
		p := (gamma - dp) + theta
		q := ((gamma - dp) + gamma) + dx
		r := p / q
		stpc := stp + r*(stx-stp)
		stpq := stp + (dp/(dp-dx))*(stx-stp)
		if math.Abs(stpc-stp) > math.Abs(stpq-stp) {
			stpf = stpc
		} else {
			stpf = stpq
		}
		bracketed = true

	case math.Abs(dp) < math.Abs(dx):
		// Case 3: lower function value, derivatives of the same sign, the
		// magnitude of the derivative decreases. The cubic step is only
		// used if it tends to infinity in the direction of the step, or if
		// the minimum of the cubic is beyond stp; otherwise it is defined
		// to be stpmin or stpmax. The quadratic (secant) step is also
		// computed and the step is safeguarded based on whether bracketed.
		theta := 3*(fx-fp)/(stp-stx) + dx + dp
		s := maxabs3(theta, dx, dp)
		gamma := s * math.Sqrt(math.Max(0, (theta/s)*(theta/s)-(dx/s)*(dp/s)))
		if stp > stx {
			gamma = -gamma
		}
		p := (gamma - dp) + theta
		q := (gamma + (dx - dp)) + gamma
		r := p / q
		var stpc float64
		switch {
		case r < 0 && gamma != 0:
			stpc = stp + r*(stx-stp)
		case stp > stx:
			stpc = stmax
		default:
			stpc = stmin
		}
		stpq := stp + (dp/(dp-dx))*(stx-stp)
		if bracketed {
			if math.Abs(stpc-stp) < math.Abs(stpq-stp) {
				stpf = stpc
			} else {
				stpf = stpq
			}
			if stp > stx {
				stpf = math.Min(stp+0.66*(sty-stp), stpf)
			} else {
				stpf = math.Max(stp+0.66*(sty-stp), stpf)
			}
		} else {
			if math.Abs(stpc-stp) > math.Abs(stpq-stp) {
				stpf = stpc
			} else {
				stpf = stpq
			}
			stpf = math.Min(stmax, stpf)
			stpf = math.Max(stmin, stpf)
		}

	default:
		// Case 4: lower function value, derivatives of the same sign, and
		// the magnitude of the derivative does not decrease. The cubic step
		// is used only if bracketed; otherwise the step jumps to one of the
		// hard bounds.
		theta := 3*(fp-fy)/(sty-stp) + dy + dp
		s := maxabs3(theta, dy, dp)
		gamma := s * math.Sqrt((theta/s)*(theta/s)-(dy/s)*(dp/s))
		if stp > sty {
			gamma = -gamma
		}
		p := (gamma - dp) + theta
		q := ((gamma - dp) + gamma) + dy
		r := p / q
		switch {
		case bracketed:
			stpf = stp + r*(sty-stp)
		case stp > stx:
			stpf = stmax
		default:
			stpf = stmin
		}
	}

	// Interval update, independent of which case chose stpf.
	if fp > fx {
		sty, fy, dy = stp, fp, dp
	} else {
		if sgnd < 0 {
			sty, fy, dy = stx, fx, dx
		}
		stx, fx, dx = stp, fp, dp
	}

	return stx, fx, dx, sty, fy, dy, stpf, bracketed, nil
}

// maxabs3 returns the largest of |a|, |b|, |c|, used to scale the cubic
// discriminant before squaring so it does not overflow.
func maxabs3(a, b, c float64) float64 {
	m := math.Abs(a)
	if v := math.Abs(b); v > m {
		m = v
	}
	if v := math.Abs(c); v > m {
		m = v
	}
	return m
}
