package testfunc

import (
	"math"
	"math/rand"
)

// Cubic is f(alpha) = A*alpha^3 + B*alpha^2 + C*alpha + D, a function on
// which the Moré–Thuente cubic interpolation step (linesearch.SafeguardedStep)
// is exact. Used by the property-based harness to generate random
// descent functions with a known minimizer.
type Cubic struct {
	A, B, C, D float64
}

// F evaluates the cubic.
func (c Cubic) F(alpha float64) float64 {
	return ((c.A*alpha+c.B)*alpha+c.C)*alpha + c.D
}

// G evaluates the cubic's derivative, the directional derivative the line
// search kernel consumes.
func (c Cubic) G(alpha float64) float64 {
	return (3*c.A*alpha+2*c.B)*alpha + c.C
}

// Minimizer returns the local minimizer of the cubic nearest to, and to the
// right of, 0 (the root of G with positive second derivative), and whether
// one exists in (0, upper].
func (c Cubic) Minimizer(upper float64) (float64, bool) {
	if c.A == 0 {
		if c.B <= 0 {
			return 0, false
		}
		root := -c.C / (2 * c.B)
		return root, root > 0 && root <= upper
	}
	disc := 4*c.B*c.B - 12*c.A*c.C
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	r1 := (-2*c.B + sq) / (6 * c.A)
	r2 := (-2*c.B - sq) / (6 * c.A)
	for _, r := range []float64{r1, r2} {
		if r > 0 && r <= upper && c.secondDerivative(r) > 0 {
			return r, true
		}
	}
	return 0, false
}

func (c Cubic) secondDerivative(alpha float64) float64 {
	return 6*c.A*alpha + 2*c.B
}

// RandomDescentCubic generates a Cubic with G(0) < 0 (a descent direction at
// the origin) and a genuine local minimizer in (0, upper], suitable for
// fuzzing the line search driver with a known ground truth.
//
// G(alpha) = 3A*alpha^2 + 2B*alpha + C is built to have one root at a
// negative value (a local max of the cubic, outside the search ray) and one
// root at `star` (the local min we want), so that 0 lies strictly between
// the roots and G(0) is negative: G(alpha) = 3a(alpha-neg)(alpha-star).
func RandomDescentCubic(rng *rand.Rand, upper float64) Cubic {
	star := 0.1 + rng.Float64()*upper*0.8
	neg := -(0.5 + rng.Float64()*upper)
	a := 0.1 + rng.Float64()*2
	b := -1.5 * a * (star + neg)
	c := 3 * a * star * neg
	return Cubic{A: a, B: b, C: c, D: rng.Float64()*10 - 5}
}
