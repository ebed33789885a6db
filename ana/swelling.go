// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical solutions
package ana

import (
	"math"
	"testing"

	"github.com/SolidMechanicsCoupledTheories/SolidMechanicsCoupledTheories.github.io/mdl/gel"
	"github.com/cpmech/gosl/chk"
)

// FreeSwelling computes the homogeneous equilibrium of a traction-free gel block in contact
// with a solvent at (normalised) chemical potential μ
//
//            λ L
//     o-----------o
//     |           |        F = λ I      P = 0
//     |   μ, c    |   λ L  J = λ³       pJe/K + ln(Je) = 0
//     |           |        c = J/Je - 1
//     o-----------o        μ = fmix(c) + (Ω/Rθ) Je p + (Ω/(2KRθ)) Je² p²
//
//  P = 0 gives p = G (ζ λ² - ζ0) / λ³. The stretch λ is found by bisection
type FreeSwelling struct {

	// input
	Mdl *gel.Model // gel model

	// output
	Lambda float64 // stretch
	J      float64 // volumetric Jacobian
	Je     float64 // elastic volumetric Jacobian
	C      float64 // concentration
	P      float64 // pressure
	Phi    float64 // polymer volume fraction
	Mu     float64 // chemical potential used in the last Calc

	// auxiliary
	cp gel.ChemPotState
}

// Init initialises this structure
func (o *FreeSwelling) Init(mdl *gel.Model) {
	o.Mdl = mdl
}

// Calc computes the swollen state at μ
//  Note: there is no solution if μ is greater than the largest chemical potential of the
//        fully swollen network (about zero) or smaller than the chemical potential of the
//        dry network
func (o *FreeSwelling) Calc(mu float64) (err error) {

	// lower bound: nearly dry network
	lo, hi := 1.0+1e-8, 2.0
	hlo, err := o.residual(lo, mu)
	if err != nil {
		return
	}
	if !(hlo > 0) {
		return chk.Err("free swelling: μ = %g is below the chemical potential of the dry network", mu)
	}

	// upper bound
	var hhi float64
	for {
		hhi, err = o.residual(hi, mu)
		if err != nil {
			return
		}
		if hhi < 0 {
			break
		}
		lo = hi
		hi *= 2
		if hi > lamMax {
			return chk.Err("free swelling: cannot find equilibrium stretch for μ = %g", mu)
		}
	}

	// bisection
	var h float64
	for it := 0; it < nmaxBisec; it++ {
		mid := (lo + hi) / 2.0
		h, err = o.residual(mid, mu)
		if err != nil {
			return
		}
		if h > 0 {
			lo = mid
		} else {
			hi = mid
		}
		if hi-lo < 1e-15*hi {
			break
		}
	}
	_, err = o.residual((lo+hi)/2.0, mu)
	o.Mu = mu
	return
}

// CheckDispl checks displacements of points x in a block with corner at the origin
func (o FreeSwelling) CheckDispl(tst *testing.T, x, u []float64, tol float64) {
	for i := 0; i < len(x); i++ {
		chk.AnaNum(tst, "u", tol, u[i], (o.Lambda-1.0)*x[i], chk.Verbose)
	}
}

// CheckState checks the values of p, μ and c at any point
func (o FreeSwelling) CheckState(tst *testing.T, p, mu, c, tol float64) {
	chk.AnaNum(tst, "p", tol, p, o.P, chk.Verbose)
	chk.AnaNum(tst, "mu", tol, mu, o.Mu, chk.Verbose)
	chk.AnaNum(tst, "c", tol, c, o.C, chk.Verbose)
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

const (
	lamMax    = 1e3 // largest stretch searched for
	nmaxBisec = 200 // max number of bisections
	nmaxJe    = 50  // max number of iterations when solving the pressure closure
)

// residual sets the state for stretch lam and returns the chemical potential closure G
func (o *FreeSwelling) residual(lam, mu float64) (h float64, err error) {
	o.Lambda = lam
	o.J = lam * lam * lam
	zeta, _ := o.Mdl.Lck.Zeta(lam)
	o.P = o.Mdl.G * (zeta*lam*lam - o.Mdl.Zeta0) / o.J
	o.Je, err = o.elastJac(o.P)
	if err != nil {
		return
	}
	o.C = o.J/o.Je - 1.0
	o.Phi = 1.0 / (1.0 + o.C)
	err = o.Mdl.ChemPot(&o.cp, mu, o.C, o.P, o.Je)
	return o.cp.G, err
}

// elastJac solves p Je/K + ln(Je) = 0 for Je using Newton's method on x = ln(Je)
func (o *FreeSwelling) elastJac(p float64) (Je float64, err error) {
	x := 0.0
	for it := 0; it < nmaxJe; it++ {
		g, _, _ := o.Mdl.Pclosure(p, math.Exp(x))
		dg := p*math.Exp(x)/o.Mdl.K + 1.0
		if !(dg > 0) {
			break
		}
		dx := g / dg
		x -= dx
		if math.Abs(dx) < 1e-15 {
			return math.Exp(x), nil
		}
	}
	return 0, chk.Err("free swelling: cannot solve pressure closure with p = %g", p)
}
