// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gel

import (
	"errors"
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// cubePrms returns the parameters of the swelling cube example
func cubePrms() dbf.Params {
	return dbf.Params{
		&dbf.P{N: "G", V: 1000},
		&dbf.P{N: "lamL", V: 100},
		&dbf.P{N: "KbyG", V: 1000},
		&dbf.P{N: "Omega", V: 1e5},
		&dbf.P{N: "D", V: 5e-3},
		&dbf.P{N: "chi", V: 0.1},
		&dbf.P{N: "theta", V: 298},
		&dbf.P{N: "R", V: 8.3145e6},
		&dbf.P{N: "phi0", V: 0.999},
	}
}

func Test_gel01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("gel01. parameters and derived values")

	mdl, err := New("", cubePrms())
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	io.Pforan("%v\n", mdl)

	chk.Float64(tst, "K", 1e-15, mdl.K, 1e6)
	chk.Float64(tst, "RT", 1e-15, mdl.RT, 8.3145e6*298)
	chk.Float64(tst, "c0", 1e-15, mdl.C0, 1.0/0.999-1.0)
	chk.Float64(tst, "mu0", 1e-10, mdl.Mu0, math.Log(1-0.999)+0.999+0.1*0.999*0.999)
	chk.Float64(tst, "zeta0", 1e-14, mdl.Zeta0, 1.000066673334)
	chk.Float64(tst, "Knorm", 1e-10, mdl.Knorm, 40.35966922829487)
	if mdl.Mu0 >= 0 {
		tst.Errorf("mu0 must be negative for phi0 close to 1\n")
	}

	// errors
	bad := []dbf.Params{
		{&dbf.P{N: "G", V: -1}},
		append(cubePrms(), &dbf.P{N: "K", V: 10}),
		append(cubePrms(), &dbf.P{N: "phi0", V: 1.0}),
		append(cubePrms(), &dbf.P{N: "unknown", V: 1}),
		append(cubePrms(), &dbf.P{N: "theta", V: math.Inf(1)}),
	}
	for i, prms := range bad {
		_, err = New("pade", prms)
		if err == nil {
			tst.Errorf("case %d should have failed\n", i)
		}
		io.Pf("case %d: %v\n", i, err)
	}
	_, err = New("langevin", cubePrms())
	if err == nil {
		tst.Errorf("unknown locking function should have failed\n")
	}
}

func Test_gel02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("gel02. reference state")

	mdl, err := New("pade", cubePrms())
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}

	// u = 0 => F = I
	gradu := utl.Alloc(3, 3)
	var kin Kinematics
	err = kin.Calc(gradu)
	if err != nil {
		tst.Errorf("Calc failed: %v\n", err)
		return
	}
	chk.Float64(tst, "J", 1e-15, kin.J, 1)
	chk.Float64(tst, "λ̄", 1e-15, kin.Lbar, 1)

	// P = 0
	var P Ten
	mdl.Piola(&P, &kin, 0)
	chk.Deep2(tst, "P", 1e-15, tenSlice(&P), utl.Alloc(3, 3))

	// Je = 1 when c = 0
	Je, err := ElastJac(kin.J, 0)
	if err != nil {
		tst.Errorf("ElastJac failed: %v\n", err)
		return
	}
	chk.Float64(tst, "Je", 1e-15, Je, 1)

	// pressure closure vanishes
	g, _, _ := mdl.Pclosure(0, Je)
	chk.Float64(tst, "g", 1e-15, g, 0)

	// chemical potential closure at the initial state
	var res ChemPotState
	Je0, _ := ElastJac(1, mdl.C0)
	err = mdl.ChemPot(&res, mdl.Mu0, mdl.C0, 0, Je0)
	if err != nil {
		tst.Errorf("ChemPot failed: %v\n", err)
		return
	}
	chk.Float64(tst, "G(mu0,c0,p=0)", 1e-12, res.G, 0)

	// invalid states
	for _, c := range []float64{-1, -1.5} {
		_, err = ElastJac(1, c)
		if !errors.Is(err, ErrInvalidState) {
			tst.Errorf("ElastJac with c=%g should have returned ErrInvalidState. err = %v\n", c, err)
		}
	}
	err = mdl.ChemPot(&res, 0, 0, 0, 1)
	if !errors.Is(err, ErrInvalidState) {
		tst.Errorf("ChemPot with c=0 should have returned ErrInvalidState. err = %v\n", err)
	}
	gradu[0][0] = -1
	err = kin.Calc(gradu)
	if !errors.Is(err, ErrInvalidState) {
		tst.Errorf("Calc with det(F)=0 should have returned ErrInvalidState. err = %v\n", err)
	}
}

func Test_gel03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("gel03. locking function and clamp plateau")

	mdl, err := New("pade", cubePrms())
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	lamL := mdl.LamL

	// plateau
	zref, _ := mdl.Lck.Zeta(Zmax * lamL)
	for _, lbar := range []float64{Zmax * lamL, 0.96 * lamL, lamL, 2 * lamL, 1e6} {
		zeta, dzeta := mdl.Lck.Zeta(lbar)
		io.Pf("λ̄ = %12g  ζ = %23.15e  dζ/dλ̄ = %g\n", lbar, zeta, dzeta)
		chk.Float64(tst, "ζ on plateau", 1e-15, zeta, zref)
		if lbar > Zmax*lamL {
			chk.Float64(tst, "dζ/dλ̄ on plateau", 1e-15, dzeta, 0)
			if !mdl.Lck.Clamped(lbar) {
				tst.Errorf("clamp should be active at λ̄ = %g\n", lbar)
			}
		}
	}
	if mdl.Lck.Clamped(1.0) {
		tst.Errorf("clamp should not be active at λ̄ = 1\n")
	}

	// derivative below threshold
	h := 1e-4
	for _, lbar := range utl.LinSpace(0.5, 0.9*lamL, 7) {
		_, ana := mdl.Lck.Zeta(lbar)
		zp, _ := mdl.Lck.Zeta(lbar + h)
		zm, _ := mdl.Lck.Zeta(lbar - h)
		chk.Float64(tst, "dζ/dλ̄", 1e-8, ana, (zp-zm)/(2*h))
	}

	// neo-Hookean limit
	nh, err := New("nh", cubePrms())
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	zeta, dzeta := nh.Lck.Zeta(3.0)
	chk.Float64(tst, "ζ(nh)", 1e-15, zeta, 1)
	chk.Float64(tst, "dζ(nh)", 1e-15, dzeta, 0)
	chk.Float64(tst, "ζ0(nh)", 1e-15, nh.Zeta0, 1)
}

func Test_gel04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("gel04. dP/dF and dP/dp")

	// small locking stretch to exercise ζ'
	prms := cubePrms()
	prms[1].V = 2.0
	mdl, err := New("pade", prms)
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}

	gradu := [][]float64{
		{0.10, 0.02, -0.03},
		{0.01, -0.05, 0.04},
		{-0.02, 0.03, 0.20},
	}
	p := 350.0

	var kin Kinematics
	err = kin.Calc(gradu)
	if err != nil {
		tst.Errorf("Calc failed: %v\n", err)
		return
	}
	var P Ten
	var A [3][3][3][3]float64
	var B Ten
	zeta, dzeta := mdl.Piola(&P, &kin, p)
	mdl.PiolaDeriv(&A, &B, &kin, p, zeta, dzeta)

	// numerical dP/dF
	h := 1e-6
	var Pp, Pm Ten
	var kp, km Kinematics
	gp := utl.Alloc(3, 3)
	gm := utl.Alloc(3, 3)
	for k := 0; k < 3; k++ {
		for l := 0; l < 3; l++ {
			for i := 0; i < 3; i++ {
				copy(gp[i], gradu[i])
				copy(gm[i], gradu[i])
			}
			gp[k][l] += h
			gm[k][l] -= h
			kp.Calc(gp)
			km.Calc(gm)
			mdl.Piola(&Pp, &kp, p)
			mdl.Piola(&Pm, &km, p)
			for i := 0; i < 3; i++ {
				for j := 0; j < 3; j++ {
					num := (Pp[i][j] - Pm[i][j]) / (2 * h)
					chk.AnaNum(tst, io.Sf("A[%d][%d][%d][%d]", i, j, k, l), 1e-6, A[i][j][k][l], num, chk.Verbose)
				}
			}
		}
	}

	// numerical dP/dp
	hp := 1e-3
	mdl.Piola(&Pp, &kin, p+hp)
	mdl.Piola(&Pm, &kin, p-hp)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			chk.AnaNum(tst, io.Sf("B[%d][%d]", i, j), 1e-9, B[i][j], (Pp[i][j]-Pm[i][j])/(2*hp), chk.Verbose)
		}
	}
}

func Test_gel05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("gel05. flux and closures derivatives")

	mdl, err := New("pade", cubePrms())
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}

	gradu := [][]float64{
		{0.05, 0.01, 0.00},
		{-0.02, 0.10, 0.03},
		{0.01, 0.00, -0.04},
	}
	gradmu := []float64{1.5, -0.3, 0.7}
	c := 0.8

	var kin Kinematics
	kin.Calc(gradu)

	// flux
	j := make([]float64, 3)
	djdc := make([]float64, 3)
	var djdF [3][3][3]float64
	mdl.Flux(j, &kin, c, gradmu)
	mdl.FluxDeriv(djdc, &djdF, &kin, c, gradmu)

	// reference value: j = -(D c / Ω) C⁻¹ ∇μ with C⁻¹ = F⁻¹ F⁻ᵀ
	jref := make([]float64, 3)
	for i := 0; i < 3; i++ {
		for k := 0; k < 3; k++ {
			jref[i] -= mdl.D * c / mdl.Omega * kin.Ci[i][k] * gradmu[k]
		}
	}
	chk.Array(tst, "j", 1e-20, j, jref)

	// dj/dc
	h := 1e-6
	jp := make([]float64, 3)
	jm := make([]float64, 3)
	mdl.Flux(jp, &kin, c+h, gradmu)
	mdl.Flux(jm, &kin, c-h, gradmu)
	for i := 0; i < 3; i++ {
		chk.AnaNum(tst, io.Sf("dj%d/dc", i), 1e-13, djdc[i], (jp[i]-jm[i])/(2*h), chk.Verbose)
	}

	// dj/dF
	var kp, km Kinematics
	gp := utl.Alloc(3, 3)
	gm := utl.Alloc(3, 3)
	for k := 0; k < 3; k++ {
		for l := 0; l < 3; l++ {
			for i := 0; i < 3; i++ {
				copy(gp[i], gradu[i])
				copy(gm[i], gradu[i])
			}
			gp[k][l] += h
			gm[k][l] -= h
			kp.Calc(gp)
			km.Calc(gm)
			mdl.Flux(jp, &kp, c, gradmu)
			mdl.Flux(jm, &km, c, gradmu)
			for i := 0; i < 3; i++ {
				chk.AnaNum(tst, io.Sf("dj%d/dF%d%d", i, k, l), 1e-13, djdF[i][k][l], (jp[i]-jm[i])/(2*h), chk.Verbose)
			}
		}
	}

	// chemical potential closure
	mu, p := -2.0, 500.0
	J := kin.J
	Je, _ := ElastJac(J, c)
	var res, rp, rm ChemPotState
	err = mdl.ChemPot(&res, mu, c, p, Je)
	if err != nil {
		tst.Errorf("ChemPot failed: %v\n", err)
		return
	}
	Jep, _ := ElastJac(J, c+h)
	Jem, _ := ElastJac(J, c-h)
	mdl.ChemPot(&rp, mu, c+h, p, Jep)
	mdl.ChemPot(&rm, mu, c-h, p, Jem)
	chk.AnaNum(tst, "dG/dc", 1e-7, res.DGdc, (rp.G-rm.G)/(2*h), chk.Verbose)
	hp := 1e-3
	mdl.ChemPot(&rp, mu, c, p+hp, Je)
	mdl.ChemPot(&rm, mu, c, p-hp, Je)
	chk.AnaNum(tst, "dG/dp", 1e-10, res.DGdp, (rp.G-rm.G)/(2*hp), chk.Verbose)
	mdl.ChemPot(&rp, mu, c, p, Je+h)
	mdl.ChemPot(&rm, mu, c, p, Je-h)
	chk.AnaNum(tst, "dG/dJe", 1e-8, res.DGdJe, (rp.G-rm.G)/(2*h), chk.Verbose)

	// mixing part
	_, dfdc := mdl.MixChemPot(c)
	fp, _ := mdl.MixChemPot(c + h)
	fm, _ := mdl.MixChemPot(c - h)
	chk.AnaNum(tst, "dfmix/dc", 1e-8, dfdc, (fp-fm)/(2*h), chk.Verbose)

	// pressure closure
	_, dgdp, dgdJe := mdl.Pclosure(p, Je)
	gp1, _, _ := mdl.Pclosure(p+hp, Je)
	gm1, _, _ := mdl.Pclosure(p-hp, Je)
	chk.AnaNum(tst, "dg/dp", 1e-12, dgdp, (gp1-gm1)/(2*hp), chk.Verbose)
	gp1, _, _ = mdl.Pclosure(p, Je+h)
	gm1, _, _ = mdl.Pclosure(p, Je-h)
	chk.AnaNum(tst, "dg/dJe", 1e-8, dgdJe, (gp1-gm1)/(2*h), chk.Verbose)
}

func Test_gel06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("gel06. von Mises stress")

	mdl, err := New("nh", cubePrms())
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}

	// isotropic stretch => hydrostatic Cauchy stress => vm = 0
	var kin Kinematics
	kin.Calc([][]float64{{0.1, 0, 0}, {0, 0.1, 0}, {0, 0, 0.1}})
	var P Ten
	mdl.Piola(&P, &kin, 10)
	chk.Float64(tst, "vm(iso)", 1e-10, mdl.CauchyVm(&P, &kin), 0)

	// simple shear
	kin.Calc([][]float64{{0, 0.2, 0}, {0, 0, 0}, {0, 0, 0}})
	mdl.Piola(&P, &kin, 0)
	vm := mdl.CauchyVm(&P, &kin)
	io.Pforan("vm(shear) = %v\n", vm)
	if !(vm > 0) {
		tst.Errorf("vm must be positive under shear. vm = %g\n", vm)
	}
}

// tenSlice converts a tensor to a nested slice
func tenSlice(a *Ten) [][]float64 {
	return [][]float64{a[0][:], a[1][:], a[2][:]}
}
