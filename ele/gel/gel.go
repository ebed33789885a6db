// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package gel implements the mixed element for coupled gel swelling: displacements u,
// pressure p, chemical potential μ and concentration c
package gel

import (
	"fmt"

	"github.com/SolidMechanicsCoupledTheories/SolidMechanicsCoupledTheories.github.io/ele"
	"github.com/SolidMechanicsCoupledTheories/SolidMechanicsCoupledTheories.github.io/inp"
	"github.com/SolidMechanicsCoupledTheories/SolidMechanicsCoupledTheories.github.io/mdl/gel"
	"github.com/SolidMechanicsCoupledTheories/SolidMechanicsCoupledTheories.github.io/shp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
)

// Gel implements an element for the coupled equations (in the reference configuration)
//
//   ∫ P : ∇δu dV = 0
//
//   ∫ (p Je / K + ln Je) δp dV = 0
//
//   ∫ (c - cold)/Δt δμ dV - ∫ Ω j · ∇δμ dV = 0      with      Ω j = - D c C⁻¹ · ∇μ
//
//   ∫ (μ - fmix(c) - (Ω/Rθ) Je p - (Ω/(2KRθ)) Je² p²) δc dV = 0
//
// The stress P is normalised by G and μ by R·θ. Local equations are ordered as [u | p | μ | c]
type Gel struct {

	// basic data
	Cell *inp.Cell   // the cell structure
	X    [][]float64 // matrix of nodal coordinates [ndim][nverts]
	Xs   [][]float64 // coordinates of the vertices of the scalar fields [ndim][nverts_s]
	Mdl  *gel.Model  // model

	// shapes
	Ushp *shp.Shape // shape of displacements
	Sshp *shp.Shape // shape of scalar fields p, μ and c; == Ushp if not LBB
	Lbb  bool       // Ladyženskaja-Babuška-Brezzi element; e.g. hex20/hex8
	Nu   int        // number of vertices of u
	Ns   int        // number of vertices of scalar fields
	Nloc int        // number of local equations == 3 Nu + 3 Ns

	// integration points
	IpsElem []shp.Ipoint

	// assembly map (location array/element equations)
	Umap []int // [3 Nu]
	Pmap []int // [Ns]
	Mmap []int // [Ns]
	Cmap []int // [Ns]

	// scratchpad
	Gradu  [][]float64         // [3][3] ∇u
	Gradmu []float64           // [3] ∇μ
	Jflux  []float64           // [3] solvent flux
	Djdc   []float64           // [3] ∂j/∂c
	DjdF   [3][3][3]float64    // ∂j/∂F
	Kin    gel.Kinematics      // kinematics @ ip
	P      gel.Ten             // normalised Piola stress @ ip
	A      [3][3][3][3]float64 // ∂P/∂F @ ip
	B      gel.Ten             // ∂P/∂p @ ip
	Chem   gel.ChemPotState    // chemical potential closure @ ip
	R      []float64           // [nloc] local residual
	K      [][]float64         // [nloc][nloc] local Jacobian
	nclamp int                 // number of ips on the plateau during the last evaluation
	ipvals ipValues            // p, μ, c and cold @ ip
}

// ipValues holds the scalar fields interpolated @ ip
type ipValues struct {
	p, mu, c, cold float64
}

// initialisation ///////////////////////////////////////////////////////////////////////////////////

// register element
func init() {

	// information allocator
	ele.SetInfoFunc("gel", func(sim *inp.Simulation, cell *inp.Cell, edat *inp.ElemData) *ele.Info {
		var info ele.Info
		nverts := cell.Shp.Nverts
		ns := nverts
		if edat.Lbb {
			ns = shp.Get(cell.Shp.BasicType).Nverts
		}
		info.Dofs = make([][]string, nverts)
		for m := 0; m < nverts; m++ {
			if m < ns {
				info.Dofs[m] = []string{"ux", "uy", "uz", "p", "mu", "c"}
			} else {
				info.Dofs[m] = []string{"ux", "uy", "uz"}
			}
		}
		info.Y2F = map[string]string{"ux": "fx", "uy": "fy", "uz": "fz", "p": "fp", "mu": "jmu", "c": "fc"}
		return &info
	})

	// element allocator
	ele.SetAllocator("gel", func(sim *inp.Simulation, cell *inp.Cell, edat *inp.ElemData, x [][]float64) (ele.Element, error) {

		// basic data
		var o Gel
		o.Cell = cell
		o.X = x
		o.Ushp = cell.Shp
		o.Sshp = cell.Shp
		o.Lbb = edat.Lbb && cell.Shp.BasicType != cell.Shp.Type
		if o.Lbb {
			o.Sshp = shp.Get(cell.Shp.BasicType)
		}
		o.Nu = o.Ushp.Nverts
		o.Ns = o.Sshp.Nverts
		o.Nloc = 3*o.Nu + 3*o.Ns
		o.Xs = utl.Alloc(3, o.Ns)
		for i := 0; i < 3; i++ {
			copy(o.Xs[i], x[i][:o.Ns])
		}

		// model
		mat := sim.MatModels.Get(edat.Mat)
		if mat == nil || mat.Gel == nil {
			return nil, chk.Err("cannot get gel model for element {tag=%d id=%d material=%q}", cell.Tag, cell.Id, edat.Mat)
		}
		o.Mdl = mat.Gel

		// integration points
		var err error
		o.IpsElem, err = shp.GetIps(cell.Type, edat.Nip)
		if err != nil {
			return nil, err
		}

		// scratchpad
		o.Gradu = utl.Alloc(3, 3)
		o.Gradmu = make([]float64, 3)
		o.Jflux = make([]float64, 3)
		o.Djdc = make([]float64, 3)
		o.R = make([]float64, o.Nloc)
		o.K = utl.Alloc(o.Nloc, o.Nloc)
		return &o, nil
	})
}

// implementation ///////////////////////////////////////////////////////////////////////////////////

// Id returns the cell Id
func (o *Gel) Id() int { return o.Cell.Id }

// SetEqs sets equations
func (o *Gel) SetEqs(eqs [][]int) (err error) {
	if len(eqs) != o.Nu {
		return chk.Err("gel element %d: number of vertices in eqs (%d) is incorrect. %d expected", o.Id(), len(eqs), o.Nu)
	}
	o.Umap = make([]int, 3*o.Nu)
	o.Pmap = make([]int, o.Ns)
	o.Mmap = make([]int, o.Ns)
	o.Cmap = make([]int, o.Ns)
	for m := 0; m < o.Nu; m++ {
		for i := 0; i < 3; i++ {
			o.Umap[3*m+i] = eqs[m][i]
		}
		if m < o.Ns {
			o.Pmap[m] = eqs[m][3]
			o.Mmap[m] = eqs[m][4]
			o.Cmap[m] = eqs[m][5]
		}
	}
	return
}

// NumClamped returns the number of ips on the plateau of the locking function during the last evaluation
func (o *Gel) NumClamped() int { return o.nclamp }

// AddToRhs adds -R to global residual vector fb
func (o *Gel) AddToRhs(fb []float64, sol *ele.Solution) (err error) {
	err = o.calc(sol, false)
	if err != nil {
		return
	}
	for i, I := range o.allmap() {
		fb[I] -= o.R[i]
	}
	return
}

// AddToKb adds element K to global Jacobian matrix Kb
func (o *Gel) AddToKb(Kb *la.Triplet, sol *ele.Solution) (err error) {
	err = o.calc(sol, true)
	if err != nil {
		return
	}
	amap := o.allmap()
	for i, I := range amap {
		for j, J := range amap {
			Kb.Put(I, J, o.K[i][j])
		}
	}
	return
}

// local indices
func (o *Gel) iu(m, i int) int { return 3*m + i }
func (o *Gel) ip(n int) int    { return 3*o.Nu + n }
func (o *Gel) imu(n int) int   { return 3*o.Nu + o.Ns + n }
func (o *Gel) ic(n int) int    { return 3*o.Nu + 2*o.Ns + n }

// allmap returns the location array ordered as [u | p | μ | c]
func (o *Gel) allmap() (amap []int) {
	amap = make([]int, 0, o.Nloc)
	amap = append(amap, o.Umap...)
	amap = append(amap, o.Pmap...)
	amap = append(amap, o.Mmap...)
	return append(amap, o.Cmap...)
}

// calc computes the local residual R and, if withK, the local Jacobian K
func (o *Gel) calc(sol *ele.Solution, withK bool) (err error) {

	// check
	if !(sol.Dt > 0) {
		return chk.Err("gel element %d: time increment must be positive. Δt = %g is invalid", o.Id(), sol.Dt)
	}

	// clear
	for i := 0; i < o.Nloc; i++ {
		o.R[i] = 0
		if withK {
			for j := 0; j < o.Nloc; j++ {
				o.K[i][j] = 0
			}
		}
	}
	o.nclamp = 0

	// constants
	dt := sol.Dt
	Ω := o.Mdl.Omega

	// for each integration point
	for _, ip := range o.IpsElem {

		// interpolation functions, gradients and variables @ ip
		err = o.ipvars(ip, sol)
		if err != nil {
			return
		}
		coef := o.Ushp.J * ip[3]
		Gu := o.Ushp.G
		S := o.Sshp.S
		Gs := o.Sshp.G
		p, mu, c, cold := o.ipvals.p, o.ipvals.mu, o.ipvals.c, o.ipvals.cold
		kin := &o.Kin

		// constitutive quantities
		zeta, dzeta := o.Mdl.Piola(&o.P, kin, p)
		if o.Mdl.Lck.Clamped(kin.Lbar) {
			o.nclamp++
		}
		Je, e := gel.ElastJac(kin.J, c)
		if e != nil {
			return o.wrap(e)
		}
		g, dgdp, dgdJe := o.Mdl.Pclosure(p, Je)
		e = o.Mdl.ChemPot(&o.Chem, mu, c, p, Je)
		if e != nil {
			return o.wrap(e)
		}
		o.Mdl.Flux(o.Jflux, kin, c, o.Gradmu)

		// residual: mechanical equilibrium
		for m := 0; m < o.Nu; m++ {
			for i := 0; i < 3; i++ {
				for j := 0; j < 3; j++ {
					o.R[o.iu(m, i)] += coef * o.P[i][j] * Gu[m][j]
				}
			}
		}

		// residual: pressure closure, mass balance and chemical potential closure
		for n := 0; n < o.Ns; n++ {
			o.R[o.ip(n)] += coef * g * S[n]
			o.R[o.imu(n)] += coef * (c - cold) / dt * S[n]
			for i := 0; i < 3; i++ {
				o.R[o.imu(n)] -= coef * Ω * o.Jflux[i] * Gs[n][i]
			}
			o.R[o.ic(n)] += coef * o.Chem.G * S[n]
		}
		if !withK {
			continue
		}

		// derivatives
		o.Mdl.PiolaDeriv(&o.A, &o.B, kin, p, zeta, dzeta)
		o.Mdl.FluxDeriv(o.Djdc, &o.DjdF, kin, c, o.Gradmu)
		dJedc := -Je / (1.0 + c)
		dc := o.Mdl.D * c // -Ω ∂j/∂(C⁻¹∇μ)

		// Kuu and Kup
		for a := 0; a < o.Nu; a++ {
			for i := 0; i < 3; i++ {
				r := o.iu(a, i)
				for b := 0; b < o.Nu; b++ {
					for k := 0; k < 3; k++ {
						var sum float64
						for j := 0; j < 3; j++ {
							for l := 0; l < 3; l++ {
								sum += o.A[i][j][k][l] * Gu[a][j] * Gu[b][l]
							}
						}
						o.K[r][o.iu(b, k)] += coef * sum
					}
				}
				var bg float64
				for j := 0; j < 3; j++ {
					bg += o.B[i][j] * Gu[a][j]
				}
				for q := 0; q < o.Ns; q++ {
					o.K[r][o.ip(q)] += coef * bg * S[q]
				}
			}
		}

		// rows of scalar equations
		for n := 0; n < o.Ns; n++ {

			// derivatives w.r.t u: dJe/dF = Je F⁻ᵀ ; flux: ∂j/∂F
			for b := 0; b < o.Nu; b++ {
				for k := 0; k < 3; k++ {
					var fitg, jfg float64
					for l := 0; l < 3; l++ {
						fitg += kin.Fit[k][l] * Gu[b][l]
						for i := 0; i < 3; i++ {
							jfg += o.DjdF[i][k][l] * Gu[b][l] * Gs[n][i]
						}
					}
					col := o.iu(b, k)
					o.K[o.ip(n)][col] += coef * dgdJe * Je * fitg * S[n]
					o.K[o.imu(n)][col] -= coef * Ω * jfg
					o.K[o.ic(n)][col] += coef * o.Chem.DGdJe * Je * fitg * S[n]
				}
			}

			// derivatives w.r.t scalar fields
			var djg float64
			for i := 0; i < 3; i++ {
				djg += o.Djdc[i] * Gs[n][i]
			}
			for q := 0; q < o.Ns; q++ {
				ss := S[n] * S[q]
				var cgg float64
				for i := 0; i < 3; i++ {
					for k := 0; k < 3; k++ {
						cgg += kin.Ci[i][k] * Gs[q][k] * Gs[n][i]
					}
				}

				// pressure closure
				o.K[o.ip(n)][o.ip(q)] += coef * dgdp * ss
				o.K[o.ip(n)][o.ic(q)] += coef * dgdJe * dJedc * ss

				// mass balance
				o.K[o.imu(n)][o.imu(q)] += coef * dc * cgg
				o.K[o.imu(n)][o.ic(q)] += coef * (ss/dt - Ω*djg*S[q])

				// chemical potential closure
				o.K[o.ic(n)][o.imu(q)] += coef * ss
				o.K[o.ic(n)][o.ip(q)] += coef * o.Chem.DGdp * ss
				o.K[o.ic(n)][o.ic(q)] += coef * o.Chem.DGdc * ss
			}
		}
	}
	return
}

// ipvars computes shape functions, gradients and the field variables @ ip
func (o *Gel) ipvars(ip shp.Ipoint, sol *ele.Solution) (err error) {

	// shape functions and gradients
	err = o.Ushp.CalcAtIp(o.X, ip, true)
	if err != nil {
		return
	}
	if o.Lbb {
		err = o.Sshp.CalcAtIp(o.Xs, ip, true)
		if err != nil {
			return
		}
	}

	// displacement gradient
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			o.Gradu[i][j] = 0
			for m := 0; m < o.Nu; m++ {
				o.Gradu[i][j] += sol.Y[o.Umap[3*m+i]] * o.Ushp.G[m][j]
			}
		}
	}

	// scalar fields
	o.ipvals.p, o.ipvals.mu, o.ipvals.c, o.ipvals.cold = 0, 0, 0, 0
	for i := 0; i < 3; i++ {
		o.Gradmu[i] = 0
	}
	for n := 0; n < o.Ns; n++ {
		s := o.Sshp.S[n]
		o.ipvals.p += s * sol.Y[o.Pmap[n]]
		o.ipvals.mu += s * sol.Y[o.Mmap[n]]
		o.ipvals.c += s * sol.Y[o.Cmap[n]]
		o.ipvals.cold += s * sol.Yold[o.Cmap[n]]
		for i := 0; i < 3; i++ {
			o.Gradmu[i] += sol.Y[o.Mmap[n]] * o.Sshp.G[n][i]
		}
	}

	// kinematics
	err = o.Kin.Calc(o.Gradu)
	if err != nil {
		return o.wrap(err)
	}
	return
}

// wrap adds the element id to err keeping it comparable with errors.Is
func (o *Gel) wrap(err error) error {
	return fmt.Errorf("gel element %d: %w", o.Id(), err)
}
