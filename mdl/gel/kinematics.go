// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gel

import "math"

// Ten is a second order tensor in 3D, stored as a plain matrix
type Ten [3][3]float64

// Ident returns the identity tensor
func Ident() (I Ten) {
	I[0][0], I[1][1], I[2][2] = 1, 1, 1
	return
}

// DefGrad computes the deformation gradient F = I + ∇u
//  gradu[i][j] = ∂u_i/∂X_j
func DefGrad(F *Ten, gradu [][]float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			F[i][j] = gradu[i][j]
		}
		F[i][i] += 1.0
	}
}

// EffStretch computes the effective stretch λ̄ = sqrt(tr(FᵀF)/3)
func EffStretch(F *Ten) float64 {
	var trC float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			trC += F[i][j] * F[i][j]
		}
	}
	return math.Sqrt(trC / 3.0)
}

// Det returns the determinant of a
func Det(a *Ten) float64 {
	return a[0][0]*(a[1][1]*a[2][2]-a[1][2]*a[2][1]) -
		a[0][1]*(a[1][0]*a[2][2]-a[1][2]*a[2][0]) +
		a[0][2]*(a[1][0]*a[2][1]-a[1][1]*a[2][0])
}

// Inv computes ai = inverse(a) and returns det(a). ai is not modified if det(a) == 0
func Inv(ai, a *Ten) (det float64) {
	det = Det(a)
	if det == 0 {
		return
	}
	ai[0][0] = (a[1][1]*a[2][2] - a[1][2]*a[2][1]) / det
	ai[0][1] = (a[0][2]*a[2][1] - a[0][1]*a[2][2]) / det
	ai[0][2] = (a[0][1]*a[1][2] - a[0][2]*a[1][1]) / det
	ai[1][0] = (a[1][2]*a[2][0] - a[1][0]*a[2][2]) / det
	ai[1][1] = (a[0][0]*a[2][2] - a[0][2]*a[2][0]) / det
	ai[1][2] = (a[0][2]*a[1][0] - a[0][0]*a[1][2]) / det
	ai[2][0] = (a[1][0]*a[2][1] - a[1][1]*a[2][0]) / det
	ai[2][1] = (a[0][1]*a[2][0] - a[0][0]*a[2][1]) / det
	ai[2][2] = (a[0][0]*a[1][1] - a[0][1]*a[1][0]) / det
	return
}

// Kinematics holds the kinematic quantities at a point
type Kinematics struct {
	F    Ten     // deformation gradient
	Fi   Ten     // F⁻¹
	Fit  Ten     // F⁻ᵀ
	Ci   Ten     // C⁻¹ = F⁻¹·F⁻ᵀ
	J    float64 // det(F)
	Lbar float64 // effective stretch
}

// Calc computes all kinematic quantities from the displacement gradient
//  Note: returns ErrInvalidState if det(F) ≤ 0
func (o *Kinematics) Calc(gradu [][]float64) (err error) {
	DefGrad(&o.F, gradu)
	o.Lbar = EffStretch(&o.F)
	o.J = Inv(&o.Fi, &o.F)
	if !(o.J > 0) || math.IsInf(o.J, 0) {
		return invalid("det(F) = %g", o.J)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			o.Fit[i][j] = o.Fi[j][i]
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			o.Ci[i][j] = 0
			for k := 0; k < 3; k++ {
				o.Ci[i][j] += o.Fi[i][k] * o.Fi[j][k]
			}
		}
	}
	return
}
