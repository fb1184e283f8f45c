// Package testfunc provides synthetic test functions and independent
// root-finding oracles used only by the property-based test harness in the
// linesearch package (see dcsrch_property_test.go). It is not part of the
// public API.
package testfunc

import (
	"errors"
	"math"
)

// BrentRoot finds a zero of f in [a, b] using Brent's method, requiring
// f(a) and f(b) to have opposite signs.
func BrentRoot(a, b, tol float64, f func(float64) float64) (float64, error) {
	fa, fb := f(a), f(b)
	if fa*fb >= 0 {
		return math.NaN(), errors.New("testfunc: f(a) and f(b) must have opposite signs")
	}
	if math.Abs(fa) < math.Abs(fb) {
		a, fa, b, fb = b, fb, a, fa
	}
	c, fc := a, fa
	var d, s, fs float64
	mflag := true

	for it := 0; fb != 0 && math.Abs(b-a) > tol; it++ {
		if it == 1000 {
			return math.NaN(), errors.New("testfunc: brent root exceeded iteration limit")
		}
		if fa != fc && fb != fc {
			s = a*fb*fc/((fa-fb)*(fa-fc)) +
				b*fa*fc/((fb-fa)*(fb-fc)) +
				c*fa*fb/((fc-fa)*(fc-fb))
		} else {
			s = b - fb*(b-a)/(fb-fa)
		}

		lo := (3*a + b) / 4
		between := (lo <= s && s <= b) || (lo >= s && s >= b)
		useBisection := !between
		if between {
			if mflag {
				useBisection = math.Abs(s-b) >= math.Abs(b-c)/2
			} else {
				useBisection = math.Abs(s-b) >= math.Abs(c-d)/2
			}
		}

		if useBisection {
			s = (a + b) / 2
			mflag = true
		} else {
			mflag = false
		}

		fs = f(s)
		d = c
		c, fc = b, fb
		if fa*fs < 0 {
			b, fb = s, fs
		} else {
			a, fa = s, fs
		}
		if math.Abs(fa) < math.Abs(fb) {
			a, fa, b, fb = b, fb, a, fa
		}
	}
	return b, nil
}

// BisectionRoot finds a zero of f in [a, b] by plain bisection, requiring
// f(a) and f(b) to have opposite signs.
func BisectionRoot(a, b, tol float64, f func(float64) float64) (float64, error) {
	fa, fb := f(a), f(b)
	if fa*fb >= 0 {
		return math.NaN(), errors.New("testfunc: f(a) and f(b) must have opposite signs")
	}
	for math.Abs(b-a) > tol {
		m := (a + b) / 2
		fm := f(m)
		if fm == 0 {
			return m, nil
		}
		if fa*fm < 0 {
			b, fb = m, fm
		} else {
			a, fa = m, fm
		}
	}
	return (a + b) / 2, nil
}
