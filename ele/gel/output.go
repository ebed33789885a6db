// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gel

import (
	"github.com/SolidMechanicsCoupledTheories/SolidMechanicsCoupledTheories.github.io/ele"
	"github.com/SolidMechanicsCoupledTheories/SolidMechanicsCoupledTheories.github.io/mdl/gel"
	"github.com/SolidMechanicsCoupledTheories/SolidMechanicsCoupledTheories.github.io/shp"
)

// nodal keys
var outKeys = []string{"p", "mu", "c", "phi", "J", "P11", "P22", "P33", "lbar", "vm"}

// OutNodeKeys returns the keys of derived values at vertices
func (o *Gel) OutNodeKeys() []string { return outKeys }

// OutNodeVals adds the derived values at vertices to N. Quantities are evaluated at the
// natural coordinates of each vertex
//  Note: Piola stresses are multiplied by G; vm is the von Mises stress of σ = G P Fᵀ / J
func (o *Gel) OutNodeVals(N *ele.NodeVals, sol *ele.Solution) (err error) {
	ip := make(shp.Ipoint, 4)
	for m := 0; m < o.Nu; m++ {
		for i := 0; i < 3; i++ {
			ip[i] = o.Ushp.NatCoords[i][m]
		}
		err = o.ipvars(ip, sol)
		if err != nil {
			return
		}
		c := o.ipvals.c
		if !(1.0+c > 0) {
			_, err = gel.ElastJac(o.Kin.J, c)
			return o.wrap(err)
		}
		o.Mdl.Piola(&o.P, &o.Kin, o.ipvals.p)
		vid := o.Cell.Verts[m]
		N.Add("p", vid, o.ipvals.p)
		N.Add("mu", vid, o.ipvals.mu)
		N.Add("c", vid, c)
		N.Add("phi", vid, 1.0/(1.0+c))
		N.Add("J", vid, o.Kin.J)
		N.Add("P11", vid, o.Mdl.G*o.P[0][0])
		N.Add("P22", vid, o.Mdl.G*o.P[1][1])
		N.Add("P33", vid, o.Mdl.G*o.P[2][2])
		N.Add("lbar", vid, o.Kin.Lbar)
		N.Add("vm", vid, o.Mdl.CauchyVm(&o.P, &o.Kin))
	}
	return
}

// Integrate adds volume integrals over the reference configuration to res:
//  "vol" -- ∫ dV
//  "c"   -- ∫ c dV
//  "J"   -- ∫ J dV
//  "phi" -- ∫ φ dV
func (o *Gel) Integrate(res map[string]float64, sol *ele.Solution) (err error) {
	for _, ip := range o.IpsElem {
		err = o.ipvars(ip, sol)
		if err != nil {
			return
		}
		coef := o.Ushp.J * ip[3]
		c := o.ipvals.c
		res["vol"] += coef
		res["c"] += c * coef
		res["J"] += o.Kin.J * coef
		if 1.0+c > 0 {
			res["phi"] += coef / (1.0 + c)
		}
	}
	return
}
