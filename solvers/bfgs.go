// BFGS is a quasi-Newton outer solver implementing
// gonum.org/v1/gonum/optimize's channel-based Method protocol: Init allocates
// state for a dimension, Run drives the operations/results channels to
// completion. Unlike a derivative-free method, BFGS needs a gradient at
// every point, which it gets from the same channel protocol, and it drives
// its one-dimensional step choice through linesearch.StrongWolfeSearch once
// per outer iteration.

package solvers

import (
	"errors"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"

	"github.com/pa-m/linesearch"
)

const (
	nonpositiveDimension = "solvers: non-positive input dimension"
	negativeTasks        = "solvers: negative input number of tasks"
)

// resize returns a slice of length n, reusing x's backing array when it has
// enough capacity.
func resize(x []float64, n int) []float64 {
	if cap(x) >= n {
		return x[:n]
	}
	return make([]float64, n)
}

// BFGS is a BFGS quasi-Newton minimizer with an explicit inverse Hessian
// approximation (mat.SymDense), implementing optimize.Method. The update is
// skipped on iterations where s'y is not above 1e-10.
type BFGS struct {
	// GradTol stops the iteration once the gradient's 2-norm falls below
	// it. Zero selects 1e-6.
	GradTol float64
	// MaxIter bounds the number of outer (line-search) iterations. Zero
	// selects 100.
	MaxIter int
	// LineSearch configures the strong-Wolfe frontend. The zero value
	// selects linesearch.DefaultStrongWolfeConfig().
	LineSearch linesearch.Config

	dim int
	x   []float64
	g   []float64
	h   *mat.SymDense

	iter      int
	status    optimize.Status
	err       error
	converged bool
}

var (
	_ optimize.Statuser = (*BFGS)(nil)
	_ optimize.Method   = (*BFGS)(nil)
)

// Needs reports that BFGS requires a gradient at every evaluated point.
func (b *BFGS) Needs() struct{ Gradient, Hessian bool } {
	return struct{ Gradient, Hessian bool }{true, false}
}

// Uses implements optimize.Method.
func (b *BFGS) Uses(has optimize.Available) (optimize.Available, error) {
	return optimize.Available{Grad: true}, nil
}

// Status returns the status of the method.
func (b *BFGS) Status() (optimize.Status, error) {
	if b.err != nil {
		return optimize.Failure, b.err
	}
	if b.converged {
		return optimize.MethodConverge, nil
	}
	return optimize.NotTerminated, nil
}

// Init allocates the inverse Hessian approximation (initialized to I) and
// the solver's scratch buffers.
func (b *BFGS) Init(dim, tasks int) int {
	if dim <= 0 {
		panic(nonpositiveDimension)
	}
	if tasks < 0 {
		panic(negativeTasks)
	}
	b.dim = dim
	b.x = resize(b.x, dim)
	b.g = resize(b.g, dim)
	b.h = identitySym(dim)
	b.iter = 0
	b.status = optimize.NotTerminated
	b.err = nil
	b.converged = false
	return 1
}

func identitySym(dim int) *mat.SymDense {
	h := mat.NewSymDense(dim, nil)
	for i := 0; i < dim; i++ {
		h.SetSym(i, i, 1)
	}
	return h
}

func (b *BFGS) gradTol() float64 {
	if b.GradTol == 0 {
		return 1e-6
	}
	return b.GradTol
}

func (b *BFGS) maxIter() int {
	if b.MaxIter == 0 {
		return 100
	}
	return b.MaxIter
}

func (b *BFGS) lineSearchConfig() linesearch.Config {
	if b.LineSearch == (linesearch.Config{}) {
		return linesearch.DefaultStrongWolfeConfig()
	}
	return b.LineSearch
}

// evalEvaluator turns the channel protocol into a linesearch.Evaluator: each
// probe sends one combined func+grad task and blocks for its result. It also
// remembers the full gradient of the most recent probe, which the BFGS
// update needs but the Evaluator interface's scalar return does not carry.
type evalEvaluator struct {
	operations chan<- optimize.Task
	results    <-chan optimize.Task

	x, d     []float64
	xt       []float64
	lastGrad []float64
}

func (e *evalEvaluator) Evaluate(alpha float64) (float64, float64) {
	floats.AddScaledTo(e.xt, e.x, alpha, e.d)
	probe := make([]float64, len(e.xt))
	copy(probe, e.xt)
	e.operations <- optimize.Task{
		Op: optimize.FuncEvaluation | optimize.GradEvaluation,
		X:  probe,
	}
	result := <-e.results
	copy(e.lastGrad, result.Gradient)
	g := floats.Dot(e.lastGrad, e.d)
	return result.F, g
}

// Run drives the outer BFGS loop: evaluate the gradient, pick a descent
// direction with the inverse Hessian, hand the ray to the strong-Wolfe line
// search, update the inverse Hessian (Sherman-Morrison/BFGS formula), and
// repeat until GradTol, MaxIter, or a line-search failure.
func (b *BFGS) Run(operations chan<- optimize.Task, results <-chan optimize.Task, tasks []optimize.Task) {
	copy(b.x, tasks[0].X)

	operations <- optimize.Task{Op: optimize.FuncEvaluation | optimize.GradEvaluation, X: append([]float64{}, b.x...)}
	result := <-results
	f := result.F
	copy(b.g, result.Gradient)

	d := make([]float64, b.dim)
	xNew := make([]float64, b.dim)
	s := make([]float64, b.dim)
	y := make([]float64, b.dim)
	hy := make([]float64, b.dim)

	ev := &evalEvaluator{
		operations: operations,
		results:    results,
		x:          b.x,
		d:          d,
		xt:         make([]float64, b.dim),
		lastGrad:   make([]float64, b.dim),
	}

	cfg := b.lineSearchConfig()
	tol := b.gradTol()

	for b.iter = 0; b.iter < b.maxIter(); b.iter++ {
		if floats.Norm(b.g, 2) < tol {
			b.converged = true
			break
		}

		negHg(d, b.h, b.g)
		gd := floats.Dot(b.g, d)
		if gd >= 0 {
			// Curvature information has gone bad; restart from steepest
			// descent instead of compounding the error.
			b.h = identitySym(b.dim)
			for i := range d {
				d[i] = -b.g[i]
			}
			gd = floats.Dot(b.g, d)
		}

		ev.d = d
		lr := linesearch.StrongWolfeSearch(f, gd, ev, 1.0, cfg)
		if lr.Status == linesearch.ErrorInput {
			b.err = errors.New("solvers: line search rejected its input")
			break
		}
		if lr.Status == linesearch.WarnRounding {
			// Reset the curvature model and retry from the current iterate
			// rather than accepting a possibly-degenerate step.
			b.h = identitySym(b.dim)
			continue
		}

		floats.ScaleTo(s, lr.Alpha, d)
		floats.AddTo(xNew, b.x, s)
		copy(y, ev.lastGrad)
		floats.Sub(y, b.g)

		sy := floats.Dot(s, y)
		if sy > 1e-10 {
			bfgsUpdate(b.h, s, y, hy)
		}

		copy(b.x, xNew)
		copy(b.g, ev.lastGrad)
		f = lr.F

		operations <- optimize.Task{Op: optimize.MajorIteration, X: append([]float64{}, b.x...), F: f}
	}

	operations <- optimize.Task{Op: optimize.MethodDone}
	close(operations)
}

// negHg sets dst = -H*g.
func negHg(dst []float64, h *mat.SymDense, g []float64) {
	gv := mat.NewVecDense(len(g), g)
	dv := mat.NewVecDense(len(dst), dst)
	dv.MulVec(h, gv)
	floats.Scale(-1, dst)
}

// bfgsUpdate applies the inverse-Hessian BFGS update
//
//	H = (I - rho*s*y') H (I - rho*y*s') + rho*s*s'
//
// in place, with rho = 1/(y's). s and y are the step and gradient
// difference of the iteration just completed; hy is scratch of len(s).
func bfgsUpdate(h *mat.SymDense, s, y, hy []float64) {
	n := len(s)
	rho := 1 / floats.Dot(s, y)

	hv := mat.NewVecDense(n, hy)
	yv := mat.NewVecDense(n, y)
	hv.MulVec(h, yv)

	yHy := floats.Dot(y, hy)

	// H_new = H - rho*(hy*s' + s*hy') + rho^2*(yHy)*s*s' + rho*s*s'
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := h.At(i, j)
			v -= rho * (hy[i]*s[j] + s[i]*hy[j])
			v += rho * rho * yHy * s[i] * s[j]
			v += rho * s[i] * s[j]
			h.SetSym(i, j, v)
		}
	}
}

// Minimize is a convenience entry point that drives BFGS directly against a
// plain Go function and gradient, without going through the
// optimize.Problem/optimize.Minimize channel machinery. It returns the
// final point, its function value, and the number of outer iterations.
func Minimize(fn func(x []float64) float64, grad func(dst, x []float64), x0 []float64, b BFGS) ([]float64, float64, int) {
	dim := len(x0)
	b.dim = dim
	b.x = append([]float64(nil), x0...)
	b.g = resize(b.g, dim)
	b.h = identitySym(dim)
	b.converged = false
	b.err = nil

	grad(b.g, b.x)
	f := fn(b.x)

	d := make([]float64, dim)
	xNew := make([]float64, dim)
	s := make([]float64, dim)
	y := make([]float64, dim)
	hy := make([]float64, dim)
	gNew := make([]float64, dim)

	cfg := b.lineSearchConfig()
	tol := b.gradTol()

	iter := 0
	for ; iter < b.maxIter(); iter++ {
		if floats.Norm(b.g, 2) < tol {
			break
		}

		negHg(d, b.h, b.g)
		gd := floats.Dot(b.g, d)
		if gd >= 0 {
			b.h = identitySym(dim)
			for i := range d {
				d[i] = -b.g[i]
			}
			gd = floats.Dot(b.g, d)
		}

		proj := linesearch.NewSliceGradientProjector(b.x, d, fn, grad)
		lr := linesearch.StrongWolfeSearch(f, gd, proj, 1.0, cfg)
		if lr.Status == linesearch.ErrorInput {
			break
		}
		if lr.Status == linesearch.WarnRounding {
			b.h = identitySym(dim)
			continue
		}

		floats.ScaleTo(s, lr.Alpha, d)
		floats.AddTo(xNew, b.x, s)
		grad(gNew, xNew)
		copy(y, gNew)
		floats.Sub(y, b.g)

		sy := floats.Dot(s, y)
		if sy > 1e-10 {
			bfgsUpdate(b.h, s, y, hy)
		}

		copy(b.x, xNew)
		copy(b.g, gNew)
		f = lr.F
	}

	return b.x, f, iter
}
