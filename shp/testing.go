// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/io"
)

// CheckShape checks that shape functions evaluate to 1.0 @ nodes
func CheckShape(tst *testing.T, shape *Shape, tol float64, verbose bool) {

	// loop over all vertices
	errS := 0.0
	r := []float64{0, 0, 0}
	for n := 0; n < shape.Nverts; n++ {

		// natural coordinates @ vertex
		for i := 0; i < shape.Gndim; i++ {
			r[i] = shape.NatCoords[i][n]
		}

		// compute function
		shape.Func(shape.S, shape.DSdR, r, false)

		// check
		if verbose {
			io.Pf("S = %v\n", shape.S)
		}
		for m := 0; m < shape.Nverts; m++ {
			if n == m {
				errS += math.Abs(shape.S[m] - 1.0)
			} else {
				errS += math.Abs(shape.S[m])
			}
		}
	}

	// error
	if errS > tol {
		tst.Errorf("%s failed with err = %g\n", shape.Type, errS)
		return
	}
}

// CheckShapeFace checks that shape functions of vertices not on a face vanish on that face
func CheckShapeFace(tst *testing.T, shape *Shape, tol float64, verbose bool) {
	errS := 0.0
	r := []float64{0, 0, 0}
	for k, fverts := range shape.FaceLocalVerts {
		onface := make(map[int]bool)
		for _, n := range fverts {
			onface[n] = true
		}
		for _, n := range fverts {
			for i := 0; i < shape.Gndim; i++ {
				r[i] = shape.NatCoords[i][n]
			}
			shape.Func(shape.S, shape.DSdR, r, false)
			for m := 0; m < shape.Nverts; m++ {
				if !onface[m] {
					errS += math.Abs(shape.S[m])
				}
			}
		}
		if verbose {
			io.Pforan("face %d: err = %g\n", k, errS)
		}
	}
	if errS > tol {
		tst.Errorf("%s failed with err = %g\n", shape.Type, errS)
	}
}

// CheckDSdR checks dSdR derivatives of shape structures using central differences
func CheckDSdR(tst *testing.T, shape *Shape, r []float64, tol float64, verbose bool) {

	// analytical
	shape.Func(shape.S, shape.DSdR, r, true)
	ana := make([][]float64, shape.Nverts)
	for m := 0; m < shape.Nverts; m++ {
		ana[m] = append([]float64{}, shape.DSdR[m]...)
	}

	// numerical
	h := 1e-5
	rr := make([]float64, len(r))
	Sp := make([]float64, shape.Nverts)
	Sm := make([]float64, shape.Nverts)
	for j := 0; j < shape.Gndim; j++ {
		copy(rr, r)
		rr[j] = r[j] + h
		shape.Func(Sp, nil, rr, false)
		rr[j] = r[j] - h
		shape.Func(Sm, nil, rr, false)
		for m := 0; m < shape.Nverts; m++ {
			num := (Sp[m] - Sm[m]) / (2.0 * h)
			if verbose {
				io.Pf("dS%d/dR%d: ana = %23.15e  num = %23.15e\n", m, j, ana[m][j], num)
			}
			if math.Abs(ana[m][j]-num) > tol {
				tst.Errorf("%s: dS%d/dR%d failed: |%g - %g| = %g > %g\n", shape.Type, m, j, ana[m][j], num, math.Abs(ana[m][j]-num), tol)
			}
		}
	}
}
