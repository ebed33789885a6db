// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// gauss1d holds Gauss-Legendre abscissae and weights: npts => {x, w}
var gauss1d = map[int][2][]float64{
	1: {{0}, {2}},
	2: {{-1.0 / math.Sqrt(3.0), 1.0 / math.Sqrt(3.0)}, {1, 1}},
	3: {{-math.Sqrt(0.6), 0, math.Sqrt(0.6)}, {5.0 / 9.0, 8.0 / 9.0, 5.0 / 9.0}},
}

// GetIps returns the integration points of a hexahedron with nip points
//  Input:
//   geoType -- geometry type; e.g. "hex8"
//   nip     -- number of integration points; 0 => default (hex8 => 8, hex20 => 27)
func GetIps(geoType string, nip int) (ips []Ipoint, err error) {
	if nip == 0 {
		switch geoType {
		case "hex8":
			nip = 8
		case "hex20":
			nip = 27
		}
	}
	var n int
	switch nip {
	case 1:
		n = 1
	case 8:
		n = 2
	case 27:
		n = 3
	default:
		err = chk.Err("number of integration points %d for %q is not available. use 1, 8 or 27", nip, geoType)
		return
	}
	rule := gauss1d[n]
	ips = make([]Ipoint, 0, nip)
	for k := 0; k < n; k++ {
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				ips = append(ips, Ipoint{rule[0][i], rule[0][j], rule[0][k], rule[1][i] * rule[1][j] * rule[1][k]})
			}
		}
	}
	return
}
