package solvers

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/optimize"
)

func TestCMAESPolishInitPanicsOnBadDimension(t *testing.T) {
	assert.Panics(t, func() {
		var cma CMAESPolish
		cma.Init(0, 1)
	})
}

func TestCMAESPolishInitSeedsBestTracking(t *testing.T) {
	var cma CMAESPolish
	n := cma.Init(3, 10)
	assert.Greater(t, n, 0)
	assert.True(t, math.IsInf(cma.bestF, 1))
	assert.False(t, cma.polished)
	assert.Len(t, cma.bestX, 3)
}

func TestCMAESPolishClampClampsWithinLimits(t *testing.T) {
	cma := CMAESPolish{Xmin: []float64{-1, -1}, Xmax: []float64{1, 1}}
	x := []float64{5, -5}
	cma.clamp(x)
	assert.Equal(t, 1.0, x[0])
	assert.Equal(t, -1.0, x[1])
}

func TestCMAESPolishClampLeavesInRangeUntouched(t *testing.T) {
	cma := CMAESPolish{Xmin: []float64{-1, -1}, Xmax: []float64{1, 1}}
	x := []float64{0.3, -0.2}
	cma.clamp(x)
	assert.Equal(t, 0.3, x[0])
	assert.Equal(t, -0.2, x[1])
}

func TestCMAESPolishClampWithoutBoundsIsNoop(t *testing.T) {
	cma := CMAESPolish{}
	x := []float64{5, -5}
	cma.clamp(x)
	assert.Equal(t, 5.0, x[0])
	assert.Equal(t, -5.0, x[1])
}

func TestCMAESPolishPolishBestImprovesBestPoint(t *testing.T) {
	// f(x) = (x0-3)^2 + (x1+1)^2, minimized at (3, -1). Start the
	// "population" best somewhere else entirely and let the polish phase
	// walk it to the minimizer.
	cma := CMAESPolish{
		Func: func(x []float64) float64 {
			a, b := x[0]-3, x[1]+1
			return a*a + b*b
		},
		GradFunc: func(dst, x []float64) {
			dst[0] = 2 * (x[0] - 3)
			dst[1] = 2 * (x[1] + 1)
		},
	}
	cma.dim = 2
	cma.bestX = []float64{0, 0}
	cma.bestF = cma.Func(cma.bestX)

	initialF := cma.bestF
	cma.polishBest()

	assert.True(t, cma.polished)
	assert.Less(t, cma.bestF, initialF)
	assert.InDelta(t, 3.0, cma.bestX[0], 1e-2)
	assert.InDelta(t, -1.0, cma.bestX[1], 1e-2)
}

func TestCMAESPolishPolishBestClampsResultIntoBounds(t *testing.T) {
	cma := CMAESPolish{
		Xmin: []float64{-10, -10},
		Xmax: []float64{10, 1},
		Func: func(x []float64) float64 {
			a, b := x[0]-3, x[1]-5
			return a*a + b*b
		},
		GradFunc: func(dst, x []float64) {
			dst[0] = 2 * (x[0] - 3)
			dst[1] = 2 * (x[1] - 5)
		},
	}
	cma.dim = 2
	cma.bestX = []float64{0, 0}
	cma.bestF = cma.Func(cma.bestX)

	cma.polishBest()

	assert.True(t, cma.polished)
	assert.LessOrEqual(t, cma.bestX[1], 1.0)
}

func TestCMAESPolishPolishBestNoopWithoutGradFunc(t *testing.T) {
	cma := CMAESPolish{}
	cma.dim = 2
	cma.bestX = []float64{0, 0}
	cma.bestF = 5
	cma.polishBest()
	assert.False(t, cma.polished)
	assert.Equal(t, 5.0, cma.bestF)
}

func TestCMAESPolishPolishBestNoopWhenNoIncumbent(t *testing.T) {
	cma := CMAESPolish{
		Func:     func(x []float64) float64 { return 0 },
		GradFunc: func(dst, x []float64) {},
	}
	cma.dim = 2
	cma.bestF = math.Inf(1)
	cma.polishBest()
	assert.False(t, cma.polished)
}

func TestCMAESPolishImplementsOptimizeInterfaces(t *testing.T) {
	var cma CMAESPolish
	var _ optimize.Method = &cma
	var _ optimize.Statuser = &cma
	needs := cma.Needs()
	assert.False(t, needs.Gradient)
	assert.False(t, needs.Hessian)
}
