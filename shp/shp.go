// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements shape structures/routines
package shp

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// constants
const MINDET = 1.0e-14 // minimum determinant allowed for dxdR

// ShpFunc is the shape functions callback function
type ShpFunc func(S []float64, dSdR [][]float64, r []float64, derivs bool)

// Ipoint holds the natural coordinates and weight of an integration point: {r, s, t, w}
type Ipoint []float64

// Shape holds geometry data
type Shape struct {

	// geometry
	Type           string      // name; e.g. "hex8"
	Func           ShpFunc     // shape/derivs function callback function
	BasicType      string      // geometry of basic element; e.g. "hex20" => "hex8"
	FaceType       string      // geometry of face; e.g. "hex20" => "qua8"
	Gndim          int         // geometry of shape
	Nverts         int         // number of vertices in cell; e.g. "hex20" => 20
	VtkCode        int         // VTK code
	FaceNvertsMax  int         // max number of vertices on face
	FaceLocalVerts [][]int     // face local vertices [nfaces][...]
	NatCoords      [][]float64 // natural coordinates [gndim][nverts]

	// scratchpad: volume
	S    []float64   // [nverts] shape functions
	G    [][]float64 // [nverts][gndim] G == dSdx. derivative of shape function
	J    float64     // Jacobian: determinant of dxdr
	DSdR [][]float64 // [nverts][gndim] derivatives of S w.r.t natural coordinates
	DxdR [][]float64 // [gndim][gndim] derivatives of real coordinates w.r.t natural coordinates
	DRdx [][]float64 // [gndim][gndim] dRdx == inverse(dxdR)
}

// factory holds the prototypes of all available shapes
var factory = make(map[string]*Shape)

// Get returns a new Shape structure with its own scratchpad
//  Note: returns nil if geoType is not available
func Get(geoType string) *Shape {
	p, ok := factory[geoType]
	if !ok {
		return nil
	}
	o := &Shape{
		Type:           p.Type,
		Func:           p.Func,
		BasicType:      p.BasicType,
		FaceType:       p.FaceType,
		Gndim:          p.Gndim,
		Nverts:         p.Nverts,
		VtkCode:        p.VtkCode,
		FaceNvertsMax:  p.FaceNvertsMax,
		FaceLocalVerts: p.FaceLocalVerts,
		NatCoords:      p.NatCoords,
	}
	o.init_scratchpad()
	return o
}

// GetFaceLocalVerts returns the local vertices ids of face idxface
func GetFaceLocalVerts(geoType string, idxface int) []int {
	if p, ok := factory[geoType]; ok {
		return p.FaceLocalVerts[idxface]
	}
	return nil
}

// IpRealCoords returns the real coordinates (y) of an integration point
func (o *Shape) IpRealCoords(x [][]float64, ip Ipoint) (y []float64) {
	ndim := len(x)
	y = make([]float64, ndim)
	o.Func(o.S, o.DSdR, ip, false)
	for i := 0; i < ndim; i++ {
		for m := 0; m < o.Nverts; m++ {
			y[i] += o.S[m] * x[i][m]
		}
	}
	return
}

// CalcAtIp calculates volume data such as S and G at natural coordinate r
//  Input:
//   x[ndim][nverts+?] -- coordinates matrix of solid element
//   ip                -- integration point
//  Output:
//   S, DSdR, DxdR, DRdx, G, and J
func (o *Shape) CalcAtIp(x [][]float64, ip Ipoint, derivs bool) (err error) {

	// S and dSdR
	o.Func(o.S, o.DSdR, ip, derivs)
	if !derivs {
		return
	}

	// dxdR := sum_n x * dSdR   =>  dx_i/dR_j := sum_n x^n_i * dS^n/dR_j
	for i := 0; i < o.Gndim; i++ {
		for j := 0; j < o.Gndim; j++ {
			o.DxdR[i][j] = 0.0
			for n := 0; n < o.Nverts; n++ {
				o.DxdR[i][j] += x[i][n] * o.DSdR[n][j]
			}
		}
	}

	// dRdx := inv(dxdR)
	o.J, err = inv3(o.DRdx, o.DxdR)
	if err != nil {
		return
	}

	// G == dSdx := dSdR * dRdx  =>  dS^m/dx_j := sum_i dS^m/dR_i * dR_i/dx_j
	for m := 0; m < o.Nverts; m++ {
		for j := 0; j < o.Gndim; j++ {
			o.G[m][j] = 0
			for i := 0; i < o.Gndim; i++ {
				o.G[m][j] += o.DSdR[m][i] * o.DRdx[i][j]
			}
		}
	}
	return
}

// init_scratchpad initialise volume data (scratchpad)
func (o *Shape) init_scratchpad() {
	o.S = make([]float64, o.Nverts)
	o.DSdR = utl.Alloc(o.Nverts, o.Gndim)
	o.DxdR = utl.Alloc(o.Gndim, o.Gndim)
	o.DRdx = utl.Alloc(o.Gndim, o.Gndim)
	o.G = utl.Alloc(o.Nverts, o.Gndim)
}

// inv3 computes the inverse of a 3x3 matrix and returns its determinant
func inv3(ai, a [][]float64) (det float64, err error) {
	det = a[0][0]*(a[1][1]*a[2][2]-a[1][2]*a[2][1]) -
		a[0][1]*(a[1][0]*a[2][2]-a[1][2]*a[2][0]) +
		a[0][2]*(a[1][0]*a[2][1]-a[1][1]*a[2][0])
	if math.Abs(det) < MINDET {
		return det, chk.Err("inverse of dxdR failed: determinant is too small (%g)", det)
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
