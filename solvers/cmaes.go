// CMAESPolish wraps gonum's CMA-ES method (optimize.CmaEsChol) with box
// constraints and a strong-Wolfe local polish of the best point found, once
// the population has converged. The evolution strategy itself is gonum's
// unmodified CmaEsChol, embedded directly; this file only intercepts the
// stream of evaluation requests to clamp samples into [Xmin, Xmax], tracks
// the best point the embedded method reports, and appends the polish pass
// before the operation stream closes.

package solvers

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"

	"github.com/pa-m/linesearch"
)

// CMAESPolish is bounded CMA-ES: gonum's CmaEsChol constrained to a box and
// finished off with a gradient-based polish, when the caller supplies both
// Func and GradFunc.
type CMAESPolish struct {
	optimize.CmaEsChol

	// Xmin, Xmax are optional per-component box constraints, applied to
	// every sampled point before it is evaluated.
	Xmin, Xmax []float64

	// Func and GradFunc, when both non-nil, are used for a strong-Wolfe
	// local polish of the best point once the population has converged.
	// Func is not otherwise needed: the population loop receives function
	// values through the optimize.Task channel protocol instead.
	Func     func(x []float64) float64
	GradFunc func(dst, x []float64)
	// PolishConfig configures the polish line search. The zero value
	// selects linesearch.DefaultConfig().
	PolishConfig linesearch.Config

	dim      int
	bestX    []float64
	bestF    float64
	polished bool
}

var (
	_ optimize.Statuser = (*CMAESPolish)(nil)
	_ optimize.Method   = (*CMAESPolish)(nil)
)

// Init allocates the embedded CMA-ES state plus this wrapper's own
// best-point tracking. Needs, Uses, and Status are the embedded
// CmaEsChol's, promoted unchanged.
func (cma *CMAESPolish) Init(dim, tasks int) int {
	n := cma.CmaEsChol.Init(dim, tasks)
	cma.dim = dim
	cma.bestX = resize(cma.bestX, dim)
	cma.bestF = math.Inf(1)
	cma.polished = false
	return n
}

// clamp projects x into [Xmin, Xmax] component-wise; components without a
// configured bound are left untouched.
func (cma *CMAESPolish) clamp(x []float64) {
	for i := range x {
		if i < len(cma.Xmin) && x[i] < cma.Xmin[i] {
			x[i] = cma.Xmin[i]
		}
		if i < len(cma.Xmax) && x[i] > cma.Xmax[i] {
			x[i] = cma.Xmax[i]
		}
	}
}

// Run delegates the population loop to the embedded CmaEsChol over a proxy
// channel pair: every FuncEvaluation request is clamped into bounds before
// it reaches the caller, and every MajorIteration report is checked against
// the best point seen so far. Once CmaEsChol closes its side, Run appends
// the optional polish pass and closes the real operations channel itself.
func (cma *CMAESPolish) Run(operations chan<- optimize.Task, results <-chan optimize.Task, tasks []optimize.Task) {
	inner := make(chan optimize.Task)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for t := range inner {
			if t.Op&optimize.FuncEvaluation != 0 {
				cma.clamp(t.X)
			}
			if t.Op&optimize.MajorIteration != 0 && len(t.X) == cma.dim && t.F < cma.bestF {
				cma.bestF = t.F
				copy(cma.bestX, t.X)
			}
			operations <- t
		}
	}()

	cma.CmaEsChol.Run(inner, results, tasks)
	<-done

	cma.polishBest()
	if cma.polished {
		operations <- optimize.Task{
			ID: -1,
			Op: optimize.MajorIteration,
			X:  append([]float64{}, cma.bestX...),
			F:  cma.bestF,
		}
	}
	close(operations)
}

// polishBest runs one strong-Wolfe search along the steepest-descent
// direction from the incumbent best point, accepting the result only if it
// improves on bestF. A no-op unless both Func and GradFunc are set.
func (cma *CMAESPolish) polishBest() {
	if cma.Func == nil || cma.GradFunc == nil || math.IsInf(cma.bestF, 1) {
		return
	}

	x := make([]float64, cma.dim)
	copy(x, cma.bestX)
	g := make([]float64, cma.dim)
	cma.GradFunc(g, x)
	d := make([]float64, cma.dim)
	floats.AddScaled(d, -1, g)
	gd := floats.Dot(g, d)
	if gd >= 0 {
		return
	}

	cfg := cma.PolishConfig
	if cfg == (linesearch.Config{}) {
		cfg = linesearch.DefaultConfig()
	}
	proj := linesearch.NewSliceGradientProjector(x, d, cma.Func, cma.GradFunc)
	result := linesearch.StrongWolfeSearch(cma.bestF, gd, proj, 1.0, cfg)
	if result.Status == linesearch.ErrorInput || result.F >= cma.bestF {
		return
	}

	cand := make([]float64, cma.dim)
	floats.AddScaledTo(cand, x, result.Alpha, d)
	cma.clamp(cand)
	fc := cma.Func(cand)
	if fc >= cma.bestF {
		return
	}
	cma.bestF = fc
	copy(cma.bestX, cand)
	cma.polished = true
}
