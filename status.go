package linesearch

import "strconv"

// TerminationStatus is the tagged outcome of a SearchState: a start/in-progress
// pair plus a set of converged/warning/error terminal values. Modeled on
// gonum.org/v1/gonum/optimize.Status's enum-with-String() shape.
type TerminationStatus int

const (
	// Start is the zero value: the state has not been stepped yet.
	Start TerminationStatus = iota
	// NeedEval means the caller must evaluate at the returned step and call
	// Step again with the result.
	NeedEval
	// Converged means both the sufficient-decrease and curvature conditions
	// hold; the returned step is the answer.
	Converged
	// WarnRounding means the bracketed interval has collapsed under
	// round-off; the returned step is the best found.
	WarnRounding
	// WarnXtol means the interval width fell below xtol*stmax.
	WarnXtol
	// WarnStpmax means the caller-imposed upper bound was reached without
	// satisfying both Wolfe conditions.
	WarnStpmax
	// WarnStpmin means the caller-imposed lower bound was reached without
	// satisfying both Wolfe conditions.
	WarnStpmin
	// WarnMaxfev means the evaluation budget was exhausted. Only ever
	// produced by the frontend (C3); dcsrch itself does not count
	// evaluations.
	WarnMaxfev
	// ErrorInput means the inputs violated a precondition; SearchState.Err
	// returns the sentinel error for the kind. The search is non-recoverable.
	ErrorInput
)

// Terminal reports whether status ends the search (everything except Start
// and NeedEval).
func (s TerminationStatus) Terminal() bool {
	return s != Start && s != NeedEval
}

// Warning reports whether status is one of the WARN_* outcomes.
func (s TerminationStatus) Warning() bool {
	switch s {
	case WarnRounding, WarnXtol, WarnStpmax, WarnStpmin, WarnMaxfev:
		return true
	default:
		return false
	}
}

func (s TerminationStatus) String() string {
	switch s {
	case Start:
		return "Start"
	case NeedEval:
		return "NeedEval"
	case Converged:
		return "Converged"
	case WarnRounding:
		return "WarnRounding"
	case WarnXtol:
		return "WarnXtol"
	case WarnStpmax:
		return "WarnStpmax"
	case WarnStpmin:
		return "WarnStpmin"
	case WarnMaxfev:
		return "WarnMaxfev"
	case ErrorInput:
		return "ErrorInput"
	default:
		return "TerminationStatus(" + strconv.Itoa(int(s)) + ")"
	}
}
