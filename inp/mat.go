// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"path/filepath"

	"github.com/SolidMechanicsCoupledTheories/SolidMechanicsCoupledTheories.github.io/mdl/gel"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// Material holds material data
type Material struct {

	// input
	Name  string     `json:"name"`  // name of material
	Type  string     `json:"type"`  // type of material; e.g. "gel"
	Model string     `json:"model"` // name of model; e.g. "pade" or "nh"
	Extra string     `json:"extra"` // extra information about this material
	Prms  dbf.Params `json:"prms"`  // prms holds all model parameters for this material

	// derived
	Gel *gel.Model // pointer to actual gel model
}

// Mats holds materials
type MatsData []*Material

// MatDb implements a database of materials
type MatDb struct {
	Materials MatsData `json:"materials"` // all materials
}

// ReadMat reads all materials data from a .mat JSON file
func ReadMat(dir, fn string) (mdb *MatDb, err error) {

	// new database
	mdb = new(MatDb)

	// read file
	b, err := readFile(filepath.Join(dir, fn))
	if err != nil {
		return nil, err
	}

	// decode
	err = json.Unmarshal(b, mdb)
	if err != nil {
		return nil, chk.Err("cannot unmarshal materials file %q:\n%v", fn, err)
	}

	// models
	err = mdb.Init()
	return
}

// Init allocates and initialises all models
func (o *MatDb) Init() (err error) {
	names := make(map[string]bool)
	for _, m := range o.Materials {
		if names[m.Name] {
			return chk.Err("material named %q is duplicated", m.Name)
		}
		names[m.Name] = true
		switch m.Type {
		case "gel":
			m.Gel, err = gel.New(m.Model, m.Prms)
			if err != nil {
				return chk.Err("cannot initialise model of material %q:\n%v", m.Name, err)
			}
		default:
			return chk.Err("material type %q is incorrect; options are \"gel\"", m.Type)
		}
	}
	return
}

// Get returns a material
//  Note: returns nil if not found
func (o MatDb) Get(name string) *Material {
	for _, mat := range o.Materials {
		if mat.Name == name {
			return mat
		}
	}
	return nil
}

// String prints materials
func (o MatDb) String() string {
	l := "{\n  \"materials\" : [\n"
	for i, m := range o.Materials {
		if i > 0 {
			l += ",\n"
		}
		l += io.Sf("    {\n      \"name\":%q, \"type\":%q, \"model\":%q, \"prms\" : [", m.Name, m.Type, m.Model)
		for j, p := range m.Prms {
			if j > 0 {
				l += ","
			}
			l += io.Sf("\n        {\"n\":%q, \"v\":%g}", p.N, p.V)
		}
		l += "\n      ]\n    }"
	}
	return l + "\n  ]\n}"
}
