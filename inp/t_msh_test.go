// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
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

func Test_msh01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("msh01. read mesh")

	msh, err := ReadMsh("data", "twohex.msh")
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	io.Pforan("%v\n", msh)
	chk.Float64(tst, "xmin", 1e-17, msh.Xmin, 0)
	chk.Float64(tst, "xmax", 1e-17, msh.Xmax, 2)
	chk.Float64(tst, "ymax", 1e-17, msh.Ymax, 1)
	chk.Float64(tst, "zmax", 1e-17, msh.Zmax, 1)
	chk.Int(tst, "ndim", msh.Ndim, 3)
	chk.Int(tst, "nparts", msh.Nparts, 2)
	chk.Int(tst, "ncells with tag -1", len(msh.CellTag2cells[-1]), 1)
	chk.Int(tst, "ncells with tag -2", len(msh.CellTag2cells[-2]), 1)
	chk.Int(tst, "nverts with tag -1", len(msh.VertTag2verts[-1]), 1)
	chk.Int(tst, "ncells on face -20", len(msh.FaceTag2cells[-20]), 2)
	chk.Ints(tst, "verts on face -10", msh.FaceTag2verts[-10], []int{0, 3, 4, 7})
	chk.Ints(tst, "verts on face -11", msh.FaceTag2verts[-11], []int{8, 9, 10, 11})
	chk.Ints(tst, "verts on face -20", msh.FaceTag2verts[-20], []int{0, 1, 4, 5, 8, 10})
	chk.Int(tst, "face id of cell 1 on -11", msh.FaceTag2cells[-11][0].Fid, 1)

	// errors
	_, err = ReadMsh("data", "badcell.msh")
	if err == nil {
		tst.Errorf("unknown shape should have failed\n")
	}
	_, err = ReadMsh("data", "nonexistent.msh")
	if err == nil {
		tst.Errorf("missing file should have failed\n")
	}
}

func Test_msh02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("msh02. cube generator: hex8")

	msh, err := GenCube(2.5, 2, "hex8", 2)
	if err != nil {
		tst.Errorf("GenCube failed:\n%v", err)
		return
	}
	chk.Int(tst, "nverts", len(msh.Verts), 27)
	chk.Int(tst, "ncells", len(msh.Cells), 8)
	chk.Int(tst, "nparts", msh.Nparts, 2)
	chk.Int(tst, "cells in part 0", len(msh.Part2cells[0]), 4)
	chk.Int(tst, "cells in part 1", len(msh.Part2cells[1]), 4)
	chk.Float64(tst, "xmax", 1e-15, msh.Xmax, 2.5)
	chk.Float64(tst, "zmax", 1e-15, msh.Zmax, 2.5)

	// all six faces
	for _, tag := range []int{TagXmin, TagXmax, TagYmin, TagYmax, TagZmin, TagZmax} {
		chk.Int(tst, io.Sf("ncells on %d", tag), len(msh.FaceTag2cells[tag]), 4)
		chk.Int(tst, io.Sf("nverts on %d", tag), len(msh.FaceTag2verts[tag]), 9)
	}

	// coordinates of vertices on faces
	for _, v := range msh.FaceTag2verts[TagXmin] {
		chk.Float64(tst, "x @ xmin", 1e-17, msh.Verts[v].C[0], 0)
	}
	for _, v := range msh.FaceTag2verts[TagYmax] {
		chk.Float64(tst, "y @ ymax", 1e-15, msh.Verts[v].C[1], 2.5)
	}
	for _, v := range msh.FaceTag2verts[TagZmax] {
		chk.Float64(tst, "z @ zmax", 1e-15, msh.Verts[v].C[2], 2.5)
	}

	// positive volume: first cell
	c := msh.Cells[0]
	chk.Ints(tst, "verts of cell 0", c.Verts, []int{0, 1, 4, 3, 9, 10, 13, 12})

	// JSON round trip through String
	var other Mesh
	err = json.Unmarshal([]byte(msh.String()), &other)
	if err != nil {
		tst.Errorf("cannot decode mesh string:\n%v", err)
		return
	}
	err = other.Init()
	if err != nil {
		tst.Errorf("decoded mesh is invalid:\n%v", err)
		return
	}
	chk.Ints(tst, "decoded verts on -31", other.FaceTag2verts[TagZmax], msh.FaceTag2verts[TagZmax])
}

func Test_msh03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("msh03. cube generator: hex20")

	msh, err := GenCube(1, 1, "hex20", 1)
	if err != nil {
		tst.Errorf("GenCube failed:\n%v", err)
		return
	}
	chk.Int(tst, "nverts", len(msh.Verts), 20)
	c := msh.Cells[0]
	for m := 0; m < 20; m++ {
		for i := 0; i < 3; i++ {
			x := (1.0 + c.Shp.NatCoords[i][m]) / 2.0
			chk.Float64(tst, io.Sf("x%d of node %d", i, m), 1e-15, msh.Verts[c.Verts[m]].C[i], x)
		}
	}

	msh, err = GenCube(1, 2, "hex20", 1)
	if err != nil {
		tst.Errorf("GenCube failed:\n%v", err)
		return
	}
	chk.Int(tst, "nverts", len(msh.Verts), 81)
	chk.Int(tst, "nverts on -10", len(msh.FaceTag2verts[TagXmin]), 21)

	// errors
	_, err = GenCube(0, 2, "hex8", 1)
	if err == nil {
		tst.Errorf("L=0 should have failed\n")
	}
	_, err = GenCube(1, 0, "hex8", 1)
	if err == nil {
		tst.Errorf("ndiv=0 should have failed\n")
	}
	_, err = GenCube(1, 2, "tri3", 1)
	if err == nil {
		tst.Errorf("tri3 should have failed\n")
	}
	_, err = GenCube(1, 2, "hex8", 3)
	if err == nil {
		tst.Errorf("nparts > ndiv should have failed\n")
	}
}
