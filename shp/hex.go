// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

// VTK codes
const (
	VTK_HEXAHEDRON           = 12
	VTK_QUADRATIC_HEXAHEDRON = 25
)

func init() {

	// hex8
	factory["hex8"] = &Shape{
		Type:          "hex8",
		Func:          Hex8,
		BasicType:     "hex8",
		FaceType:      "qua4",
		Gndim:         3,
		Nverts:        8,
		VtkCode:       VTK_HEXAHEDRON,
		FaceNvertsMax: 4,
		FaceLocalVerts: [][]int{
			{0, 4, 7, 3},
			{1, 2, 6, 5},
			{0, 1, 5, 4},
			{2, 3, 7, 6},
			{0, 3, 2, 1},
			{4, 5, 6, 7},
		},
		NatCoords: [][]float64{
			{-1, 1, 1, -1, -1, 1, 1, -1},
			{-1, -1, 1, 1, -1, -1, 1, 1},
			{-1, -1, -1, -1, 1, 1, 1, 1},
		},
	}

	// hex20
	factory["hex20"] = &Shape{
		Type:          "hex20",
		Func:          Hex20,
		BasicType:     "hex8",
		FaceType:      "qua8",
		Gndim:         3,
		Nverts:        20,
		VtkCode:       VTK_QUADRATIC_HEXAHEDRON,
		FaceNvertsMax: 8,
		FaceLocalVerts: [][]int{
			{0, 4, 7, 3, 16, 15, 19, 11},
			{1, 2, 6, 5, 9, 18, 13, 17},
			{0, 1, 5, 4, 8, 17, 12, 16},
			{2, 3, 7, 6, 10, 19, 14, 18},
			{0, 3, 2, 1, 11, 10, 9, 8},
			{4, 5, 6, 7, 12, 13, 14, 15},
		},
		NatCoords: [][]float64{
			{-1, 1, 1, -1, -1, 1, 1, -1, 0, 1, 0, -1, 0, 1, 0, -1, -1, 1, 1, -1},
			{-1, -1, 1, 1, -1, -1, 1, 1, -1, 0, 1, 0, -1, 0, 1, 0, -1, -1, 1, 1},
			{-1, -1, -1, -1, 1, 1, 1, 1, -1, -1, -1, -1, 1, 1, 1, 1, 0, 0, 0, 0},
		},
	}
}

// Hex8 calculates the shape functions (S) and derivatives of shape functions (dSdR) of hex8
// elements at {r,s,t} natural coordinates. The derivatives are calculated only if derivs==true.
//
//              4________________7
//            ,'|              ,'|
//          ,'  |            ,'  |
//        ,'    |          ,'    |
//      ,'      |        ,'      |
//    5'===============6'        |
//    |         |      |         |
//    |         |      |         |
//    |         0_____ | ________3
//    |       ,'       |       ,'
//    |     ,'         |     ,'
//    |   ,'           |   ,'
//    | ,'             | ,'
//    1________________2'
//
func Hex8(S []float64, dSdR [][]float64, R []float64, derivs bool) {
	r, s, t := R[0], R[1], R[2]
	nat := factory["hex8"].NatCoords
	for m := 0; m < 8; m++ {
		rm, sm, tm := nat[0][m], nat[1][m], nat[2][m]
		S[m] = (1.0 + rm*r) * (1.0 + sm*s) * (1.0 + tm*t) / 8.0
		if derivs {
			dSdR[m][0] = rm * (1.0 + sm*s) * (1.0 + tm*t) / 8.0
			dSdR[m][1] = (1.0 + rm*r) * sm * (1.0 + tm*t) / 8.0
			dSdR[m][2] = (1.0 + rm*r) * (1.0 + sm*s) * tm / 8.0
		}
	}
}

// Hex20 calculates the shape functions (S) and derivatives of shape functions (dSdR) of hex20
// (serendipity) elements at {r,s,t} natural coordinates.
//  Note: nodes 8..19 are the mid-edge nodes numbered as in VTK_QUADRATIC_HEXAHEDRON
func Hex20(S []float64, dSdR [][]float64, R []float64, derivs bool) {
	r, s, t := R[0], R[1], R[2]
	nat := factory["hex20"].NatCoords
	for m := 0; m < 20; m++ {
		rm, sm, tm := nat[0][m], nat[1][m], nat[2][m]
		a, b, c := 1.0+rm*r, 1.0+sm*s, 1.0+tm*t
		switch {
		case m < 8:
			S[m] = a * b * c * (rm*r + sm*s + tm*t - 2.0) / 8.0
			if derivs {
				dSdR[m][0] = rm * b * c * (2.0*rm*r + sm*s + tm*t - 1.0) / 8.0
				dSdR[m][1] = sm * a * c * (rm*r + 2.0*sm*s + tm*t - 1.0) / 8.0
				dSdR[m][2] = tm * a * b * (rm*r + sm*s + 2.0*tm*t - 1.0) / 8.0
			}
		case rm == 0:
			S[m] = (1.0 - r*r) * b * c / 4.0
			if derivs {
				dSdR[m][0] = -2.0 * r * b * c / 4.0
				dSdR[m][1] = (1.0 - r*r) * sm * c / 4.0
				dSdR[m][2] = (1.0 - r*r) * b * tm / 4.0
			}
		case sm == 0:
			S[m] = (1.0 - s*s) * a * c / 4.0
			if derivs {
				dSdR[m][0] = (1.0 - s*s) * rm * c / 4.0
				dSdR[m][1] = -2.0 * s * a * c / 4.0
				dSdR[m][2] = (1.0 - s*s) * a * tm / 4.0
			}
		default: // tm == 0
			S[m] = (1.0 - t*t) * a * b / 4.0
			if derivs {
				dSdR[m][0] = (1.0 - t*t) * rm * b / 4.0
				dSdR[m][1] = (1.0 - t*t) * a * sm / 4.0
				dSdR[m][2] = -2.0 * t * a * b / 4.0
			}
		}
	}
}
