// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package gel implements the constitutive model of polymer gels swollen by a solvent:
// non-Gaussian (locking) elasticity, Flory-Huggins mixing and concentration-dependent
// solvent transport
package gel

import (
	"errors"
	"math"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// ErrInvalidState indicates a state outside the domain of the constitutive functions;
// e.g. c ≤ -1 (Je undefined), J ≤ 0 or non-finite values
var ErrInvalidState = errors.New("gel: invalid physical state")

// Locking defines the chain-locking function ζ(λ̄) of the non-Gaussian elasticity
type Locking interface {
	Init(lamL float64) error                 // Init initialises this structure
	Zeta(lbar float64) (zeta, dzeta float64) // Zeta computes ζ and dζ/dλ̄
	Clamped(lbar float64) bool               // Clamped tells whether the stability clamp is active
}

// Model holds the material parameters of a gel; immutable after Init
//  Note: stresses are normalised by G and chemical potentials by R·θ
type Model struct {

	// parameters
	G     float64 // shear modulus
	LamL  float64 // locking stretch
	K     float64 // bulk modulus
	Omega float64 // molar volume of the solvent
	D     float64 // diffusivity
	Chi   float64 // Flory-Huggins interaction parameter
	Theta float64 // reference temperature
	R     float64 // gas constant
	Phi0  float64 // initial polymer volume fraction

	// derived
	RT    float64 // R·θ
	C0    float64 // initial (normalised) concentration: 1/φ0 - 1
	Mu0   float64 // initial (normalised) chemical potential: ln(1-φ0) + φ0 + χ φ0²
	Zeta0 float64 // ζ at the reference (undeformed) stretch
	Knorm float64 // normalised bulk modulus: Ω·K/(R·θ)

	// locking function
	Lck     Locking
	LckName string
}

// New allocates and initialises a gel model
//  lockName -- name of locking function; e.g. "pade" or "nh" (empty => "pade")
func New(lockName string, prms dbf.Params) (o *Model, err error) {
	if lockName == "" {
		lockName = "pade"
	}
	allocator, ok := allocators[lockName]
	if !ok {
		return nil, chk.Err("locking function %q is not available in 'gel' database", lockName)
	}
	o = &Model{Lck: allocator(), LckName: lockName}
	err = o.Init(prms)
	if err != nil {
		return nil, err
	}
	return
}

// Init initialises this structure
func (o *Model) Init(prms dbf.Params) (err error) {

	// defaults
	o.Theta = 298
	o.R = 8.3145e6
	var kbyg float64

	// parameters
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "g":
			o.G = p.V
		case "laml":
			o.LamL = p.V
		case "k":
			o.K = p.V
		case "kbyg":
			kbyg = p.V
		case "omega":
			o.Omega = p.V
		case "d":
			o.D = p.V
		case "chi":
			o.Chi = p.V
		case "theta":
			o.Theta = p.V
		case "r":
			o.R = p.V
		case "phi0":
			o.Phi0 = p.V
		default:
			return chk.Err("gel: parameter named %q is invalid", p.N)
		}
	}
	if kbyg > 0 {
		if o.K > 0 {
			return chk.Err("gel: either K or KbyG must be given, not both")
		}
		o.K = kbyg * o.G
	}

	// check
	for _, p := range []struct {
		name string
		v    float64
	}{
		{"G", o.G}, {"lamL", o.LamL}, {"K", o.K}, {"Omega", o.Omega}, {"D", o.D},
		{"chi", o.Chi}, {"theta", o.Theta}, {"R", o.R}, {"phi0", o.Phi0},
	} {
		if !(p.v > 0) || math.IsInf(p.v, 0) {
			return chk.Err("gel: parameter %q must be strictly positive and finite. %g is invalid", p.name, p.v)
		}
	}
	if o.Phi0 >= 1 {
		return chk.Err("gel: initial polymer volume fraction must be smaller than 1. phi0 = %g is invalid", o.Phi0)
	}

	// derived
	o.RT = o.R * o.Theta
	o.Knorm = o.Omega * o.K / o.RT
	if math.IsInf(o.Knorm, 0) || math.IsNaN(o.Knorm) {
		return chk.Err("gel: normalised bulk modulus Ω·K/(R·θ) = %g is not finite", o.Knorm)
	}
	o.C0 = 1.0/o.Phi0 - 1.0
	o.Mu0, _ = o.MixChemPot(o.C0)

	// locking function
	err = o.Lck.Init(o.LamL)
	if err != nil {
		return
	}
	o.Zeta0, _ = o.Lck.Zeta(1.0)
	return
}

// String returns a summary of parameters
func (o *Model) String() string {
	return io.Sf("G=%g lamL=%g K=%g Omega=%g D=%g chi=%g theta=%g R=%g phi0=%g => c0=%g mu0=%g zeta0=%g",
		o.G, o.LamL, o.K, o.Omega, o.D, o.Chi, o.Theta, o.R, o.Phi0, o.C0, o.Mu0, o.Zeta0)
}

// allocators holds all available locking functions
var allocators = map[string]func() Locking{}
