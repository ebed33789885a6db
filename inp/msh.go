// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"path/filepath"
	"sort"

	"github.com/SolidMechanicsCoupledTheories/SolidMechanicsCoupledTheories.github.io/shp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// face tags of the cube generated by GenCube
const (
	TagXmin = -10 // x = 0
	TagXmax = -11 // x = L
	TagYmin = -20 // y = 0
	TagYmax = -21 // y = L
	TagZmin = -30 // z = 0
	TagZmax = -31 // z = L
)

// Vert holds vertex data
type Vert struct {
	Id  int       // id
	Tag int       // tag
	C   []float64 // coordinates (size==3)
}

// Cell holds cell data
type Cell struct {

	// input data
	Id    int    // id
	Tag   int    // tag
	Type  string // geometry type (string); e.g. "hex8" or "hex20"
	Part  int    // partition id
	Verts []int  // vertices
	FTags []int  // face tags

	// derived
	Shp *shp.Shape // shape structure
}

// CellFaceId structure
type CellFaceId struct {
	C   *Cell // cell
	Fid int   // face id
}

// Mesh holds a mesh for FE analyses
type Mesh struct {

	// from JSON
	Verts []*Vert // vertices
	Cells []*Cell // cells

	// derived
	FnamePath  string  // complete filename path
	Ndim       int     // space dimension
	Nparts     int     // number of partitions
	Xmin, Xmax float64 // min and max x-coordinate
	Ymin, Ymax float64 // min and max y-coordinate
	Zmin, Zmax float64 // min and max z-coordinate

	// derived: maps
	VertTag2verts map[int][]*Vert      // vertex tag => set of vertices
	CellTag2cells map[int][]*Cell      // cell tag => set of cells
	FaceTag2cells map[int][]CellFaceId // face tag => set of cells
	FaceTag2verts map[int][]int        // face tag => vertices on tagged face
	Ctype2cells   map[string][]*Cell   // cell type => set of cells
	Part2cells    map[int][]*Cell      // partition number => set of cells
}

// ReadMsh reads a mesh for FE analyses
func ReadMsh(dir, fn string) (o *Mesh, err error) {

	// new mesh
	o = new(Mesh)

	// read file
	o.FnamePath = filepath.Join(dir, fn)
	b, err := readFile(o.FnamePath)
	if err != nil {
		return nil, err
	}

	// decode
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot unmarshal mesh file %q:\n%v", o.FnamePath, err)
	}

	// derived data
	err = o.Init()
	if err != nil {
		return nil, chk.Err("mesh file %q is invalid:\n%v", o.FnamePath, err)
	}
	return
}

// Init checks the mesh and computes derived data
func (o *Mesh) Init() (err error) {

	// check
	if len(o.Verts) < 2 {
		return chk.Err("at least 2 vertices are required in mesh")
	}
	if len(o.Cells) < 1 {
		return chk.Err("at least 1 cell is required in mesh")
	}

	// vertex related derived data
	o.Ndim = 3
	o.Xmin, o.Xmax = o.Verts[0].C[0], o.Verts[0].C[0]
	o.Ymin, o.Ymax = o.Verts[0].C[1], o.Verts[0].C[1]
	o.Zmin, o.Zmax = o.Verts[0].C[2], o.Verts[0].C[2]
	o.VertTag2verts = make(map[int][]*Vert)
	for i, v := range o.Verts {
		if v.Id != i {
			return chk.Err("vertices ids must coincide with order in \"verts\" list. %d != %d", v.Id, i)
		}
		if len(v.C) != 3 {
			return chk.Err("vertex %d must have 3 coordinates", v.Id)
		}
		if v.Tag < 0 {
			o.VertTag2verts[v.Tag] = append(o.VertTag2verts[v.Tag], v)
		}
		o.Xmin, o.Xmax = utl.Min(o.Xmin, v.C[0]), utl.Max(o.Xmax, v.C[0])
		o.Ymin, o.Ymax = utl.Min(o.Ymin, v.C[1]), utl.Max(o.Ymax, v.C[1])
		o.Zmin, o.Zmax = utl.Min(o.Zmin, v.C[2]), utl.Max(o.Zmax, v.C[2])
	}

	// cells related derived data
	o.CellTag2cells = make(map[int][]*Cell)
	o.FaceTag2cells = make(map[int][]CellFaceId)
	o.FaceTag2verts = make(map[int][]int)
	o.Ctype2cells = make(map[string][]*Cell)
	o.Part2cells = make(map[int][]*Cell)
	faceverts := make(map[int]map[int]bool)
	for i, c := range o.Cells {

		// check id, tag and shape
		if c.Id != i {
			return chk.Err("cells ids must coincide with order in \"cells\" list. %d != %d", c.Id, i)
		}
		if c.Tag >= 0 {
			return chk.Err("cells tags must be negative. %d is invalid", c.Tag)
		}
		c.Shp = shp.Get(c.Type)
		if c.Shp == nil {
			return chk.Err("cannot find shape type == %q", c.Type)
		}
		if len(c.Verts) != c.Shp.Nverts {
			return chk.Err("cell %d of type %q must have %d vertices", c.Id, c.Type, c.Shp.Nverts)
		}
		for _, v := range c.Verts {
			if v < 0 || v >= len(o.Verts) {
				return chk.Err("cell %d has invalid vertex id %d", c.Id, v)
			}
		}

		// tags
		o.CellTag2cells[c.Tag] = append(o.CellTag2cells[c.Tag], c)
		for j, ftag := range c.FTags {
			if ftag < 0 {
				o.FaceTag2cells[ftag] = append(o.FaceTag2cells[ftag], CellFaceId{c, j})
				if faceverts[ftag] == nil {
					faceverts[ftag] = make(map[int]bool)
				}
				for _, l := range c.Shp.FaceLocalVerts[j] {
					faceverts[ftag][c.Verts[l]] = true
				}
			}
		}

		// cell type => cells
		o.Ctype2cells[c.Type] = append(o.Ctype2cells[c.Type], c)

		// partition => cells
		o.Part2cells[c.Part] = append(o.Part2cells[c.Part], c)
		if c.Part+1 > o.Nparts {
			o.Nparts = c.Part + 1
		}
	}

	// vertices on faces
	for ftag, set := range faceverts {
		verts := make([]int, 0, len(set))
		for v := range set {
			verts = append(verts, v)
		}
		sort.Ints(verts)
		o.FaceTag2verts[ftag] = verts
	}
	return
}

// GenCube generates a structured mesh of the cube [0,L]³
//  Input:
//   L      -- edge length
//   ndiv   -- number of divisions along each direction
//   ctype  -- cell type: "hex8" or "hex20"
//   nparts -- number of partitions (slabs along x)
//  Note: faces are tagged with TagXmin, TagXmax, TagYmin, ...
func GenCube(L float64, ndiv int, ctype string, nparts int) (o *Mesh, err error) {

	// check
	if !(L > 0) {
		return nil, chk.Err("edge length must be positive. L = %g is invalid", L)
	}
	if ndiv < 1 {
		return nil, chk.Err("number of divisions must be at least 1. ndiv = %d is invalid", ndiv)
	}
	if nparts < 1 {
		nparts = 1
	}
	if nparts > ndiv {
		return nil, chk.Err("number of partitions (%d) must not exceed the number of divisions (%d)", nparts, ndiv)
	}
	proto := shp.Get(ctype)
	if proto == nil || proto.Gndim != 3 {
		return nil, chk.Err("cell type %q is not available for cube meshes", ctype)
	}
	quadratic := proto.Nverts > 8

	// vertices on the half-step lattice: corners have even indices; mid-edge nodes exactly one odd
	o = new(Mesh)
	n := 2*ndiv + 1
	X := utl.LinSpace(0, L, n)
	vid := make(map[[3]int]int)
	for k := 0; k < n; k++ {
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				nodd := i%2 + j%2 + k%2
				if nodd > 1 || (nodd == 1 && !quadratic) {
					continue
				}
				vid[[3]int{i, j, k}] = len(o.Verts)
				o.Verts = append(o.Verts, &Vert{Id: len(o.Verts), C: []float64{X[i], X[j], X[k]}})
			}
		}
	}

	// cells
	for kz := 0; kz < ndiv; kz++ {
		for jy := 0; jy < ndiv; jy++ {
			for ix := 0; ix < ndiv; ix++ {
				c := &Cell{Id: len(o.Cells), Tag: -1, Type: ctype, Part: ix * nparts / ndiv}
				c.Verts = make([]int, proto.Nverts)
				for m := 0; m < proto.Nverts; m++ {
					key := [3]int{
						2*ix + 1 + int(proto.NatCoords[0][m]),
						2*jy + 1 + int(proto.NatCoords[1][m]),
						2*kz + 1 + int(proto.NatCoords[2][m]),
					}
					c.Verts[m] = vid[key]
				}
				c.FTags = []int{
					faceTag(ix == 0, TagXmin), faceTag(ix == ndiv-1, TagXmax),
					faceTag(jy == 0, TagYmin), faceTag(jy == ndiv-1, TagYmax),
					faceTag(kz == 0, TagZmin), faceTag(kz == ndiv-1, TagZmax),
				}
				o.Cells = append(o.Cells, c)
			}
		}
	}
	o.FnamePath = io.Sf("cube-%s-%d", ctype, ndiv)
	err = o.Init()
	return
}

// faceTag returns tag if onBoundary or 0 otherwise
func faceTag(onBoundary bool, tag int) int {
	if onBoundary {
		return tag
	}
	return 0
}

// String returns a JSON representation of *Vert
func (o *Vert) String() string {
	l := io.Sf("{\"id\":%4d, \"tag\":%6d, \"c\":[", o.Id, o.Tag)
	for i, x := range o.C {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("%23.15e", x)
	}
	l += "] }"
	return l
}

// String returns a JSON representation of *Cell
func (o *Cell) String() string {
	l := io.Sf("{\"id\":%d, \"tag\":%d, \"type\":%q, \"part\":%d, \"verts\":[", o.Id, o.Tag, o.Type, o.Part)
	for i, x := range o.Verts {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("%d", x)
	}
	l += "], \"ftags\":["
	for i, x := range o.FTags {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("%d", x)
	}
	l += "] }"
	return l
}

// String returns a JSON representation of *Mesh
func (o Mesh) String() string {
	l := "{\n  \"verts\" : [\n"
	for i, x := range o.Verts {
		if i > 0 {
			l += ",\n"
		}
		l += io.Sf("    %v", x)
	}
	l += "\n  ],\n  \"cells\" : [\n"
	for i, x := range o.Cells {
		if i > 0 {
			l += ",\n"
		}
		l += io.Sf("    %v", x)
	}
	l += "\n  ]\n}"
	return l
}
