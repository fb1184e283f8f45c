package linesearch

import "errors"

// Sentinel errors returned when a search terminates with ErrorInput. Callers
// should compare with errors.Is; these are never wrapped internally.
var (
	// ErrNotDescent is returned at START when the directional derivative at
	// alpha=0 is not strictly negative.
	ErrNotDescent = errors.New("linesearch: initial directional derivative is not negative")

	// ErrStepOutOfBounds is returned at START when the initial step lies
	// outside [stpmin, stpmax].
	ErrStepOutOfBounds = errors.New("linesearch: initial step outside [stpmin, stpmax]")

	// ErrBadFtol, ErrBadGtol, ErrBadXtol signal a negative tolerance.
	ErrBadFtol = errors.New("linesearch: ftol must be nonnegative")
	ErrBadGtol = errors.New("linesearch: gtol must be nonnegative")
	ErrBadXtol = errors.New("linesearch: xtol must be nonnegative")

	// ErrBadStpmin, ErrBadStpmax signal an invalid step bound.
	ErrBadStpmin = errors.New("linesearch: stpmin must be nonnegative")
	ErrBadStpmax = errors.New("linesearch: stpmax must be >= stpmin")

	// ErrNonFinite is returned when the caller's evaluator produces a NaN or
	// infinite function value or directional derivative.
	ErrNonFinite = errors.New("linesearch: evaluator returned a non-finite value")

	// ErrBadInterval is returned by SafeguardedStep when its preconditions
	// are violated: a bracketed interval that does not contain stp, a
	// derivative at stx that does not point toward stp, or stmax < stmin.
	// SearchState.Step treats this as ErrorInput.
	ErrBadInterval = errors.New("linesearch: safeguarded step preconditions violated")
)
