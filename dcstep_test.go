package linesearch

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeguardedStepCase1HigherValue(t *testing.T) {
	stx, fx, dx, sty, fy, dy, stp, bracketed, err := SafeguardedStep(
		0, 0, -2,
		0, 0, -2,
		1, 5, 3,
		false, 0, 4,
	)
	assert.NoError(t, err)
	assert.True(t, bracketed)
	assert.InDelta(t, 0.0, stx, 1e-9)
	assert.InDelta(t, 0.0, fx, 1e-9)
	assert.InDelta(t, -2.0, dx, 1e-9)
	assert.InDelta(t, 1.0, sty, 1e-9)
	assert.InDelta(t, 5.0, fy, 1e-9)
	assert.InDelta(t, 3.0, dy, 1e-9)
	assert.InDelta(t, 0.066186, stp, 1e-4)
}

func TestSafeguardedStepCase2OppositeSignDerivative(t *testing.T) {
	stx, fx, dx, sty, fy, dy, stp, bracketed, err := SafeguardedStep(
		0, 0, -2,
		0, 0, -2,
		1, -1, 1,
		false, 0, 4,
	)
	assert.NoError(t, err)
	assert.True(t, bracketed)
	assert.InDelta(t, 1.0, stx, 1e-9)
	assert.InDelta(t, -1.0, fx, 1e-9)
	assert.InDelta(t, 1.0, dx, 1e-9)
	assert.InDelta(t, 0.0, sty, 1e-9)
	assert.InDelta(t, 0.0, fy, 1e-9)
	assert.InDelta(t, -2.0, dy, 1e-9)
	assert.InDelta(t, 0.66667, stp, 1e-4)
}

func TestSafeguardedStepCase3DerivativeShrinking(t *testing.T) {
	// fp <= fx, same-sign derivatives, |dp| < |dx|: the step should move
	// further out along the descent ray and remain unbracketed.
	_, _, _, _, _, _, stp, bracketed, err := SafeguardedStep(
		0, 0, -2,
		0, 0, -2,
		1, -1, -0.5,
		false, 0, 10,
	)
	assert.NoError(t, err)
	assert.False(t, bracketed)
	assert.Greater(t, stp, 1.0)
}

func TestSafeguardedStepCase4NotBracketedJumpsToStpmax(t *testing.T) {
	// fp <= fx, same-sign derivatives, |dp| >= |dx|, not bracketed: the step
	// jumps straight to stpmax (stp > stx) rather than interpolating.
	stx, fx, dx, sty, fy, dy, stp, bracketed, err := SafeguardedStep(
		-1, 4, -1,
		2, 0, -1,
		0, 10.0/3.0, -2,
		false, -1, 5,
	)
	assert.NoError(t, err)
	assert.False(t, bracketed)
	assert.InDelta(t, 5.0, stp, 1e-9)
	assert.InDelta(t, 0.0, stx, 1e-9)
	assert.InDelta(t, 10.0/3.0, fx, 1e-9)
	assert.InDelta(t, -2.0, dx, 1e-9)
	assert.InDelta(t, 2.0, sty, 1e-9)
	assert.InDelta(t, 0.0, fy, 1e-9)
	assert.InDelta(t, -1.0, dy, 1e-9)
}

func TestSafeguardedStepCase4BracketedInterpolates(t *testing.T) {
	// Same family of data, but already bracketed: the cubic step through
	// (sty, fy, dy) is used directly.
	stx, fx, dx, sty, fy, dy, stp, bracketed, err := SafeguardedStep(
		-1, 4, -1,
		2, 0, -1,
		0, 10.0/3.0, -2,
		true, -1, 2,
	)
	assert.NoError(t, err)
	assert.True(t, bracketed)
	assert.InDelta(t, math.Sqrt2*2, stp, 1e-4)
	assert.InDelta(t, 0.0, stx, 1e-9)
	assert.InDelta(t, 10.0/3.0, fx, 1e-9)
	assert.InDelta(t, -2.0, dx, 1e-9)
	assert.InDelta(t, 2.0, sty, 1e-9)
	assert.InDelta(t, 0.0, fy, 1e-9)
	assert.InDelta(t, -1.0, dy, 1e-9)
}

func TestSafeguardedStepRejectsNonContainedBracket(t *testing.T) {
	stx, fx, dx, sty, fy, dy, stp, bracketed, err := SafeguardedStep(
		0, 0, -1,
		2, 3, 1,
		5, 1, 1, // stp=5 is outside [0, 2]
		true, 0, 10,
	)
	assert.True(t, errors.Is(err, ErrBadInterval))
	assert.Equal(t, 0.0, stx)
	assert.Equal(t, 0.0, fx)
	assert.Equal(t, -1.0, dx)
	assert.Equal(t, 2.0, sty)
	assert.Equal(t, 3.0, fy)
	assert.Equal(t, 1.0, dy)
	assert.Equal(t, 5.0, stp)
	assert.True(t, bracketed)
}

func TestSafeguardedStepRejectsWrongSignedDerivative(t *testing.T) {
	// dx must point toward stp: dx*(stp-stx) < 0.
	_, _, _, _, _, _, _, _, err := SafeguardedStep(
		0, 0, 1, // dx=1 > 0, but stp > stx, so dx doesn't point toward stp
		2, 3, 1,
		1, 1, 1,
		false, 0, 10,
	)
	assert.True(t, errors.Is(err, ErrBadInterval))
}

func TestSafeguardedStepRejectsBadBounds(t *testing.T) {
	_, _, _, _, _, _, _, _, err := SafeguardedStep(
		0, 0, -1,
		0, 0, -1,
		1, 1, 1,
		false, 5, 1, // stmax < stmin
	)
	assert.True(t, errors.Is(err, ErrBadInterval))
}
