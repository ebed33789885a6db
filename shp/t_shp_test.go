// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_shape01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shape01. hex8 and hex20")

	r := []float64{0.1, -0.2, 0.3}
	for _, name := range []string{"hex8", "hex20"} {
		io.Pfyel("--------------------------------- %-6s---------------------------------\n", name)
		shape := Get(name)
		CheckShape(tst, shape, 1e-15, chk.Verbose)
		CheckShapeFace(tst, shape, 1e-15, chk.Verbose)
		CheckDSdR(tst, shape, r, 1e-9, chk.Verbose)

		// partition of unity
		shape.Func(shape.S, shape.DSdR, r, true)
		sum := 0.0
		dsum := []float64{0, 0, 0}
		for m := 0; m < shape.Nverts; m++ {
			sum += shape.S[m]
			for j := 0; j < 3; j++ {
				dsum[j] += shape.DSdR[m][j]
			}
		}
		chk.Float64(tst, "ΣS", 1e-15, sum, 1)
		chk.Array(tst, "ΣdSdR", 1e-15, dsum, []float64{0, 0, 0})
		io.PfGreen("OK\n")
	}
}

func Test_shape02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shape02. CalcAtIp and volume")

	// box [0,2]x[0,3]x[0,4]
	lx, ly, lz := 2.0, 3.0, 4.0
	for _, name := range []string{"hex8", "hex20"} {
		shape := Get(name)
		x := make([][]float64, 3)
		ll := []float64{lx, ly, lz}
		for i := 0; i < 3; i++ {
			x[i] = make([]float64, shape.Nverts)
			for m := 0; m < shape.Nverts; m++ {
				x[i][m] = ll[i] * (1.0 + shape.NatCoords[i][m]) / 2.0
			}
		}
		ips, err := GetIps(name, 0)
		if err != nil {
			tst.Errorf("GetIps failed: %v\n", err)
			return
		}
		vol := 0.0
		for _, ip := range ips {
			err = shape.CalcAtIp(x, ip, true)
			if err != nil {
				tst.Errorf("CalcAtIp failed: %v\n", err)
				return
			}
			vol += shape.J * ip[3]
		}
		chk.Float64(tst, name+": J", 1e-15, shape.J, lx*ly*lz/8.0)
		chk.Float64(tst, name+": volume", 1e-13, vol, lx*ly*lz)

		// G reproduces the gradient of a linear field f = x + 2y + 3z
		grad := []float64{0, 0, 0}
		for m := 0; m < shape.Nverts; m++ {
			f := x[0][m] + 2*x[1][m] + 3*x[2][m]
			for j := 0; j < 3; j++ {
				grad[j] += f * shape.G[m][j]
			}
		}
		chk.Array(tst, name+": grad", 1e-13, grad, []float64{1, 2, 3})
	}
}

func Test_shape03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shape03. integration points")

	for _, nip := range []int{1, 8, 27} {
		ips, err := GetIps("hex8", nip)
		if err != nil {
			tst.Errorf("%v\n", err)
			return
		}
		chk.Int(tst, "nip", len(ips), nip)
		sumw := 0.0
		for _, ip := range ips {
			sumw += ip[3]
		}
		chk.Float64(tst, "Σw", 1e-14, sumw, 8)
	}
	_, err := GetIps("hex8", 5)
	if err == nil {
		tst.Errorf("nip=5 should have failed\n")
	}
	if Get("tri3") != nil {
		tst.Errorf("tri3 is not available\n")
	}
}
