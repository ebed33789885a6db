// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gel

// Flux computes the solvent molar flux
//
//   j = -R·θ · M · ∇μ    with    M = (D c)/(Ω R θ) · C⁻¹
//
// Since μ is normalised by R·θ, this reduces to j = -(D c / Ω) · C⁻¹ · ∇μ
func (o *Model) Flux(j []float64, kin *Kinematics, c float64, gradmu []float64) {
	m := o.D * c / o.Omega
	for i := 0; i < 3; i++ {
		j[i] = 0
		for k := 0; k < 3; k++ {
			j[i] -= m * kin.Ci[i][k] * gradmu[k]
		}
	}
}

// FluxDeriv computes the derivatives of the flux
//
//   djdc_i      = -(D/Ω) (C⁻¹·∇μ)_i
//   djdF_ikl    = (D c / Ω) (F⁻¹_ik w_l + C⁻¹_il v_k)
//
//  where w = C⁻¹·∇μ and v = F⁻ᵀ·∇μ.
//  Note: dj/d(∇μ) = -(D c/Ω) C⁻¹ is obtained directly from kin.Ci
func (o *Model) FluxDeriv(djdc []float64, djdF *[3][3][3]float64, kin *Kinematics, c float64, gradmu []float64) {
	var w, v [3]float64
	for i := 0; i < 3; i++ {
		for k := 0; k < 3; k++ {
			w[i] += kin.Ci[i][k] * gradmu[k]
			v[i] += kin.Fit[i][k] * gradmu[k]
		}
	}
	m := o.D * c / o.Omega
	for i := 0; i < 3; i++ {
		djdc[i] = -o.D * w[i] / o.Omega
		for k := 0; k < 3; k++ {
			for l := 0; l < 3; l++ {
				djdF[i][k][l] = m * (kin.Fi[i][k]*w[l] + kin.Ci[i][l]*v[k])
			}
		}
	}
}
