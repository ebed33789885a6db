// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gel

import "math"

// MixChemPot computes the Flory-Huggins mixing part of the normalised chemical potential
//
//   f = ln(1 - φ) + φ + χ φ²    with    φ = 1/(1 + c)
//
//  Output: f and df/dc
func (o *Model) MixChemPot(c float64) (f, dfdc float64) {
	phi := 1.0 / (1.0 + c)
	f = math.Log(1.0-phi) + phi + o.Chi*phi*phi
	dfdc = phi * phi * phi * ((1.0+c)/c - 2.0*o.Chi)
	return
}

// ChemPotState holds the closure relating μ, c and p together with its derivatives
type ChemPotState struct {
	G     float64 // μ - fmix(c) - (Ω/Rθ) Je p - (Ω/(2KRθ)) Je² p²
	DGdc  float64 // ∂G/∂c (including ∂Je/∂c)
	DGdp  float64 // ∂G/∂p
	DGdJe float64 // ∂G/∂Je
}

// ChemPot computes the chemical potential closure. Three corrections are subtracted from μ,
// in this order: mixing (Flory-Huggins), hydrostatic (linear in p) and elastic-osmotic
// (quadratic in p). The latter two follow from the volumetric energy Js (K/2) (ln Je)²
// with the pressure p = -K ln(Je)/Je.
//  Input:
//   mu -- normalised chemical potential
//   c  -- normalised concentration
//   p  -- pressure
//   Je -- elastic volumetric Jacobian
//  Note: returns ErrInvalidState if c ≤ 0 because ln(1 - φ) is undefined
func (o *Model) ChemPot(res *ChemPotState, mu, c, p, Je float64) (err error) {
	if !(c > 0) {
		return invalid("c = %g ≤ 0 in mixing chemical potential", c)
	}
	a := o.Omega / o.RT
	b := o.Omega / (2.0 * o.K * o.RT)
	fmix, dfmix := o.MixChemPot(c)
	res.G = mu
	res.G -= fmix
	res.G -= a * Je * p
	res.G -= b * Je * Je * p * p
	res.DGdJe = -(a*p + 2.0*b*Je*p*p)
	res.DGdp = -(a*Je + 2.0*b*Je*Je*p)
	res.DGdc = -dfmix + res.DGdJe*(-Je/(1.0+c))
	return
}

// Pclosure computes the pressure closure g = p Je / K + ln(Je) and its derivatives
//  Output: g, ∂g/∂p, ∂g/∂Je
func (o *Model) Pclosure(p, Je float64) (g, dgdp, dgdJe float64) {
	g = p*Je/o.K + math.Log(Je)
	dgdp = Je / o.K
	dgdJe = p/o.K + 1.0/Je
	return
}
