package solvers

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinimizeConvergesOnQuadraticBowl(t *testing.T) {
	// f(x) = (x0-1)^2 + 4*(x1+2)^2, minimized at (1, -2).
	fn := func(x []float64) float64 {
		a := x[0] - 1
		b := x[1] + 2
		return a*a + 4*b*b
	}
	grad := func(dst, x []float64) {
		dst[0] = 2 * (x[0] - 1)
		dst[1] = 8 * (x[1] + 2)
	}

	x, f, iter := Minimize(fn, grad, []float64{10, 10}, BFGS{})

	assert.InDelta(t, 1.0, x[0], 1e-3)
	assert.InDelta(t, -2.0, x[1], 1e-3)
	assert.Less(t, f, 1e-4)
	assert.Greater(t, iter, 0)
	assert.Less(t, iter, 100)
}

func TestMinimizeConvergesOnRosenbrock(t *testing.T) {
	// The Rosenbrock banana function, minimized at (1, 1).
	fn := func(x []float64) float64 {
		a := 1 - x[0]
		b := x[1] - x[0]*x[0]
		return a*a + 100*b*b
	}
	grad := func(dst, x []float64) {
		a := 1 - x[0]
		b := x[1] - x[0]*x[0]
		dst[0] = -2*a - 400*x[0]*b
		dst[1] = 200 * b
	}

	b := BFGS{MaxIter: 500, GradTol: 1e-8}
	x, f, _ := Minimize(fn, grad, []float64{-1.2, 1}, b)

	assert.InDelta(t, 1.0, x[0], 1e-2)
	assert.InDelta(t, 1.0, x[1], 1e-2)
	assert.Less(t, f, 1e-3)
}

func TestBFGSNeedsGradient(t *testing.T) {
	var b BFGS
	needs := b.Needs()
	assert.True(t, needs.Gradient)
	assert.False(t, needs.Hessian)
}

func TestIdentitySymIsIdentity(t *testing.T) {
	h := identitySym(3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			assert.InDelta(t, want, h.At(i, j), 1e-12)
		}
	}
}

func TestNegHgIsMinusGradientAtIdentity(t *testing.T) {
	h := identitySym(2)
	g := []float64{3, -4}
	d := make([]float64, 2)
	negHg(d, h, g)
	assert.InDelta(t, -3.0, d[0], 1e-12)
	assert.InDelta(t, 4.0, d[1], 1e-12)
}

func TestBFGSUpdateKeepsMatrixSymmetric(t *testing.T) {
	h := identitySym(2)
	s := []float64{1, 0.5}
	y := []float64{0.8, 0.3}
	hy := make([]float64, 2)
	bfgsUpdate(h, s, y, hy)
	assert.InDelta(t, h.At(0, 1), h.At(1, 0), 1e-12)
	assert.False(t, math.IsNaN(h.At(0, 0)))
}
