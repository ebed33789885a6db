// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"
	"fmt"

	"github.com/SolidMechanicsCoupledTheories/SolidMechanicsCoupledTheories.github.io/mdl/gel"
)

// errors returned by the nonlinear solver
var (
	// ErrDiverged indicates that Newton iterations failed to converge
	ErrDiverged = errors.New("fem: iterations diverged")

	// ErrLinSol indicates that the factorisation or solution of the linear system failed
	ErrLinSol = errors.New("fem: linear solver failed")

	// ErrInvalidState indicates a state outside the domain of the constitutive functions
	ErrInvalidState = gel.ErrInvalidState
)

// reasons of divergence
const (
	ReasonMaxIt        = "maximum number of iterations reached"
	ReasonLinSol       = "linear solver failed"
	ReasonInvalidState = "invalid physical state"
	ReasonNonFinite    = "non-finite residual or correction"
	ReasonNoDecrease   = "norm of corrections did not decrease"
)

// StepError wraps the error that stopped the time loop together with the step context
type StepError struct {
	Step    int     // index of the failed step (1 => first step)
	Time    float64 // time of the failed step
	LastT   float64 // time of the last converged state
	Reason  string  // reason of divergence
	Wrapped error   // ErrDiverged, ErrLinSol or ErrInvalidState
}

// Error implements error
func (e *StepError) Error() string {
	return fmt.Sprintf("step %d @ t=%g failed (last converged t=%g): %s: %v", e.Step, e.Time, e.LastT, e.Reason, e.Wrapped)
}

// Unwrap returns the wrapped error
func (e *StepError) Unwrap() error {
	return e.Wrapped
}
