package linesearch

// Config collects a line search's tunable tolerances and bounds.
// DefaultConfig and DefaultStrongWolfeConfig return fully populated values;
// the searches themselves use every field as given and do not substitute
// defaults for zero-valued fields.
type Config struct {
	// Ftol is the Armijo sufficient-decrease constant, in (0, 1).
	Ftol float64
	// Gtol is the curvature constant, in (Ftol, 1).
	Gtol float64
	// Xtol is the minimum relative interval width before WarnXtol fires.
	Xtol float64
	// Stpmin is the hard lower bound on the step.
	Stpmin float64
	// Stpmax is the hard upper bound on the step.
	Stpmax float64
	// Maxfev bounds evaluations per search; enforced by the frontend only.
	Maxfev int
}

// DefaultConfig returns the recommended defaults for a standard Wolfe line
// search (gtol=0.9), suitable for most descent-direction outer solvers.
func DefaultConfig() Config {
	return Config{
		Ftol:   1e-4,
		Gtol:   0.9,
		Xtol:   1e-16,
		Stpmin: 1e-20,
		Stpmax: 1e20,
		Maxfev: 20,
	}
}

// DefaultStrongWolfeConfig returns the recommended defaults for a strong
// Wolfe line search tuned for Newton-like directions (gtol=0.1), where a
// tighter curvature condition matters more than in a plain gradient method.
func DefaultStrongWolfeConfig() Config {
	cfg := DefaultConfig()
	cfg.Gtol = 0.1
	return cfg
}

// validate checks the configuration-dependent preconditions of the initial
// step that do not depend on the trial step itself.
func (c Config) validate() error {
	switch {
	case c.Ftol < 0:
		return ErrBadFtol
	case c.Gtol < 0:
		return ErrBadGtol
	case c.Xtol < 0:
		return ErrBadXtol
	case c.Stpmin < 0:
		return ErrBadStpmin
	case c.Stpmax < c.Stpmin:
		return ErrBadStpmax
	}
	return nil
}
