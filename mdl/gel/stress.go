// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gel

import (
	"fmt"
	"math"

	"github.com/cpmech/gosl/chk"
)

// Zmax is the upper bound of z = λ̄/λL used in the inverse Langevin approximation
const Zmax = 0.95

// Pade implements ζ(λ̄) using the Padé approximation of the inverse Langevin function
//
//   β(z) = z (3 - z²) / (1 - z²)      z = min(λ̄/λL, Zmax)
//
//   ζ = β(z) / (3 z) = (3 - z²) / (3 (1 - z²))
//
type Pade struct {
	LamL float64
}

// Nh implements ζ = 1; i.e. the neo-Hookean limit λL → ∞
type Nh struct{}

// add functions to factory
func init() {
	allocators["pade"] = func() Locking { return new(Pade) }
	allocators["nh"] = func() Locking { return new(Nh) }
}

// Init initialises this structure
func (o *Pade) Init(lamL float64) error {
	if !(lamL > 1) {
		return chk.Err("pade: locking stretch must be greater than 1. lamL = %g is invalid", lamL)
	}
	o.LamL = lamL
	return nil
}

// Clamped tells whether z = λ̄/λL is beyond Zmax
func (o *Pade) Clamped(lbar float64) bool {
	return lbar/o.LamL > Zmax
}

// Zeta computes ζ and dζ/dλ̄. The derivative is zero on the clamp plateau
func (o *Pade) Zeta(lbar float64) (zeta, dzeta float64) {
	z := lbar / o.LamL
	clamped := z > Zmax
	if clamped {
		z = Zmax
	}
	den := 1.0 - z*z
	zeta = (3.0 - z*z) / (3.0 * den)
	if !clamped {
		dzeta = 4.0 * z / (3.0 * den * den) / o.LamL
	}
	return
}

// Init initialises this structure
func (o *Nh) Init(lamL float64) error { return nil }

// Clamped returns false
func (o *Nh) Clamped(lbar float64) bool { return false }

// Zeta returns 1 and 0
func (o *Nh) Zeta(lbar float64) (zeta, dzeta float64) { return 1, 0 }

// ElastJac computes the elastic volumetric Jacobian Je = J/(1+c)
//  Note: returns ErrInvalidState if 1 + c ≤ 0
func ElastJac(J, c float64) (Je float64, err error) {
	if !(1.0+c > 0) {
		return 0, invalid("1 + c = %g ≤ 0", 1.0+c)
	}
	return J / (1.0 + c), nil
}

// Piola computes the Piola stress normalised by G
//
//   P/G = ζ F - ζ0 F⁻ᵀ - J p F⁻ᵀ / G
//
//  Output:
//   P    -- normalised first Piola-Kirchhoff stress
//   zeta -- ζ(λ̄)
//   dzeta -- dζ/dλ̄
func (o *Model) Piola(P *Ten, kin *Kinematics, p float64) (zeta, dzeta float64) {
	zeta, dzeta = o.Lck.Zeta(kin.Lbar)
	a := o.Zeta0 + kin.J*p/o.G
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			P[i][j] = zeta*kin.F[i][j] - a*kin.Fit[i][j]
		}
	}
	return
}

// PiolaDeriv computes A = dP/dF (normalised by G) and B = dP/dp
//
//   A_ijkl = ζ δik δjl + ζ'/(3λ̄) F_ij F_kl + (ζ0 + J p/G) F⁻ᵀ_il F⁻ᵀ_kj - (J p/G) F⁻ᵀ_ij F⁻ᵀ_kl
//
//   B_ij = -(J/G) F⁻ᵀ_ij
//
func (o *Model) PiolaDeriv(A *[3][3][3][3]float64, B *Ten, kin *Kinematics, p, zeta, dzeta float64) {
	a := o.Zeta0 + kin.J*p/o.G
	b := kin.J * p / o.G
	var d float64
	if kin.Lbar > 0 {
		d = dzeta / (3.0 * kin.Lbar)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			B[i][j] = -kin.J * kin.Fit[i][j] / o.G
			for k := 0; k < 3; k++ {
				for l := 0; l < 3; l++ {
					A[i][j][k][l] = d*kin.F[i][j]*kin.F[k][l] + a*kin.Fit[i][l]*kin.Fit[k][j] - b*kin.Fit[i][j]*kin.Fit[k][l]
				}
			}
			A[i][j][i][j] += zeta
		}
	}
}

// CauchyVm returns the von Mises equivalent of the Cauchy stress σ = G P Fᵀ / J
//  Pn -- normalised Piola stress
func (o *Model) CauchyVm(Pn *Ten, kin *Kinematics) (vm float64) {
	var sig Ten
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				sig[i][j] += o.G * Pn[i][k] * kin.F[j][k] / kin.J
			}
		}
	}
	pm := (sig[0][0] + sig[1][1] + sig[2][2]) / 3.0
	var ss float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			s := sig[i][j]
			if i == j {
				s -= pm
			}
			ss += s * s
		}
	}
	return math.Sqrt(1.5 * ss)
}

// invalid returns a new error wrapping ErrInvalidState
func invalid(msg string, prm ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, fmt.Sprintf(msg, prm...))
}
