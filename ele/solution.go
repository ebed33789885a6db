// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

// Solution holds the solution data @ nodes.
//
//        / u  \
//        | p  |         / y \
//  yb =  | mu |   =>    |   |
//        | c  |         \ λ / (nyb x 1)
//        \ λ  /
//
// Y is the current state (mutated by the nonlinear solver only) and Yold is the
// converged state of the previous time step
type Solution struct {

	// state
	T    float64   // current time
	Dt   float64   // current time increment
	Y    []float64 // DOFs (solution variables); e.g. y = {u, p, mu, c}
	Yold []float64 // DOFs at the end of the previous step

	// auxiliary
	ΔY []float64 // total increment within step (for nonlinear solver)
	L  []float64 // Lagrange multipliers
}

// NewSolution allocates a new solution with ny DOFs and nlam Lagrange multipliers
func NewSolution(ny, nlam int) *Solution {
	return &Solution{
		Y:    make([]float64, ny),
		Yold: make([]float64, ny),
		ΔY:   make([]float64, ny),
		L:    make([]float64, nlam),
	}
}

// Reset clear values
func (o *Solution) Reset() {
	o.T = 0
	for i := 0; i < len(o.Y); i++ {
		o.Y[i] = 0
		o.Yold[i] = 0
		o.ΔY[i] = 0
	}
	for i := 0; i < len(o.L); i++ {
		o.L[i] = 0
	}
}

// Commit copies the current state into the previous-step state and clears the step increment
func (o *Solution) Commit() {
	copy(o.Yold, o.Y)
	for i := 0; i < len(o.ΔY); i++ {
		o.ΔY[i] = 0
	}
}
