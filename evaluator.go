package linesearch

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Evaluator is C4, the caller contract: evaluate f(x+alpha*d) and the
// directional derivative f'(x+alpha*d) = grad f(x+alpha*d)*d along the
// fixed direction d chosen by the caller, on demand. Implementations must
// produce finite doubles; NaN/Inf is treated by Step as ErrNonFinite.
type Evaluator interface {
	Evaluate(alpha float64) (f, g float64)
}

// EvaluatorFunc adapts a plain function to the Evaluator interface.
type EvaluatorFunc func(alpha float64) (f, g float64)

// Evaluate calls fn.
func (fn EvaluatorFunc) Evaluate(alpha float64) (float64, float64) {
	return fn(alpha)
}

// GradientProjector is an Evaluator built from a full-gradient objective
// (the common case for an outer quasi-Newton or steepest-descent solver,
// which already has grad f(x) and only needs the scalar restriction along
// one direction). It projects the gradient onto the search direction with
// mat.Dot, the way cmaesbounded.go's update step uses gonum/mat throughout
// for vector and matrix arithmetic.
type GradientProjector struct {
	x, d *mat.VecDense
	fn   func(x *mat.VecDense) float64
	grad func(dst, x *mat.VecDense)

	xt   *mat.VecDense
	gbuf *mat.VecDense
}

// NewGradientProjector builds a GradientProjector evaluating fn and grad at
// x + alpha*d. x and d are not mutated.
func NewGradientProjector(x, d *mat.VecDense, fn func(x *mat.VecDense) float64, grad func(dst, x *mat.VecDense)) *GradientProjector {
	n := x.Len()
	return &GradientProjector{
		x: x, d: d, fn: fn, grad: grad,
		xt:   mat.NewVecDense(n, nil),
		gbuf: mat.NewVecDense(n, nil),
	}
}

// Evaluate implements Evaluator.
func (p *GradientProjector) Evaluate(alpha float64) (float64, float64) {
	p.xt.AddScaledVec(p.x, alpha, p.d)
	f := p.fn(p.xt)
	p.grad(p.gbuf, p.xt)
	g := mat.Dot(p.gbuf, p.d)
	return f, g
}

// SliceGradientProjector is the plain-[]float64 counterpart of
// GradientProjector, for callers whose objective and gradient operate on
// slices (as gonum/floats does throughout) rather than mat.VecDense.
type SliceGradientProjector struct {
	x, d []float64
	fn   func(x []float64) float64
	grad func(dst, x []float64)

	xt, gbuf []float64
}

// NewSliceGradientProjector builds a SliceGradientProjector evaluating fn
// and grad at x + alpha*d. x and d are not mutated.
func NewSliceGradientProjector(x, d []float64, fn func(x []float64) float64, grad func(dst, x []float64)) *SliceGradientProjector {
	n := len(x)
	return &SliceGradientProjector{
		x: x, d: d, fn: fn, grad: grad,
		xt:   resize(nil, n),
		gbuf: resize(nil, n),
	}
}

// Evaluate implements Evaluator.
func (p *SliceGradientProjector) Evaluate(alpha float64) (float64, float64) {
	floats.AddScaledTo(p.xt, p.x, alpha, p.d)
	f := p.fn(p.xt)
	p.grad(p.gbuf, p.xt)
	g := floats.Dot(p.gbuf, p.d)
	return f, g
}
