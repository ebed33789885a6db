// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ele implements finite elements
package ele

import "github.com/cpmech/gosl/la"

// Element defines what all elements must implement
type Element interface {

	// information and initialisation
	Id() int                        // returns the cell Id
	SetEqs(eqs [][]int) (err error) // set equations; eqs[vertex][dof]

	// called for each iteration
	AddToRhs(fb []float64, sol *Solution) (err error)  // adds -R to global residual vector fb
	AddToKb(Kb *la.Triplet, sol *Solution) (err error) // adds element K to global Jacobian matrix Kb
}

// CanOutputNodes defines elements that can compute derived values at their vertices
type CanOutputNodes interface {
	OutNodeKeys() []string                              // nodal keys; e.g. "phi", "J", "vm"
	OutNodeVals(N *NodeVals, sol *Solution) (err error) // adds values at vertices to N
}

// CanIntegrate defines elements that can integrate state quantities over their volume
type CanIntegrate interface {
	Integrate(res map[string]float64, sol *Solution) (err error) // adds ∫(·)dV to res; e.g. "vol", "c", "J"
}

// WithClamp defines elements whose constitutive model has a stability clamp
type WithClamp interface {
	NumClamped() int // number of integration points on the plateau during the last AddToKb/AddToRhs
}
