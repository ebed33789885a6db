// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON file
package inp

import (
	"encoding/json"
	goio "io"
	"math"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// Data holds global data for simulations
type Data struct {

	// global information
	Desc    string `json:"desc"`    // description of simulation
	Matfile string `json:"matfile"` // materials file path; optional if materials are given in .sim file
	DirOut  string `json:"dirout"`  // directory for output; e.g. /tmp/gel
	Encoder string `json:"encoder"` // encoder name; e.g. "gob" "json"

	// problem definition and options
	NoLBB   bool `json:"nolbb"`   // do not satisfy Ladyženskaja-Babuška-Brezzi condition; i.e. use hex8 for u too
	ListBcs bool `json:"listbcs"` // list boundary conditions
	Summary bool `json:"summary"` // write summary file at the end
}

// LinSolData holds data for linear solvers
type LinSolData struct {
	Name      string `json:"name"`      // "umfpack", "mumps" or "dense"
	Symmetric bool   `json:"symmetric"` // use symmetric solver
	Verbose   bool   `json:"verbose"`   // verbose?
	Ordering  string `json:"ordering"`  // ordering scheme
	Scaling   string `json:"scaling"`   // scaling scheme
}

// SolverData holds FEM solver data
type SolverData struct {
	Type    string  `json:"type"`    // nonlinear solver type: {imp} => implicit
	NmaxIt  int     `json:"nmaxit"`  // number of max iterations
	Atol    float64 `json:"atol"`    // absolute tolerance
	Rtol    float64 `json:"rtol"`    // relative tolerance
	Itol    float64 `json:"itol"`    // tolerance on the scaled RMS norm of corrections
	DvgCtrl bool    `json:"dvgctrl"` // stop if the norm of corrections does not decrease
	ShowR   bool    `json:"showr"`   // show residual
}

// ElemData holds element data
type ElemData struct {

	// input data
	Tag   int    `json:"tag"`   // tag of element
	Mat   string `json:"mat"`   // material name
	Type  string `json:"type"`  // type of element. ex: gel
	Nip   int    `json:"nip"`   // number of integration points; 0 => use default
	Extra string `json:"extra"` // extra flags (in keycode format)

	// auxiliary/internal
	Lbb bool // LBB element
}

// CubeData holds the data to generate a structured mesh of a cube
type CubeData struct {
	L      float64 `json:"l"`      // edge length
	Ndiv   int     `json:"ndiv"`   // number of divisions along each direction
	Ctype  string  `json:"ctype"`  // cell type; "hex20" or "hex8"
	Nparts int     `json:"nparts"` // number of partitions
}

// Region holds region data
type Region struct {

	// input data
	Desc      string      `json:"desc"`      // description of region. ex: gel cube
	Mshfile   string      `json:"mshfile"`   // file path of file with mesh data
	Cube      *CubeData   `json:"cube"`      // generate cube mesh instead of reading mshfile
	ElemsData []*ElemData `json:"elemsdata"` // list of elements data
	AbsPath   bool        `json:"abspath"`   // mesh filename is given in absolute path

	// derived
	Msh *Mesh `json:"-"` // the mesh
}

// FaceBc holds face boundary condition
type FaceBc struct {
	Tag   int      `json:"tag"`   // tag of face
	Keys  []string `json:"keys"`  // key indicating type of bcs. ex: ux, uy, uz, p, mu, c
	Funcs []string `json:"funcs"` // name of function. ex: zero, muramp, myfunction1, etc.
	Extra string   `json:"extra"` // extra information
}

// TimeControl holds data for defining the simulation time stepping
type TimeControl struct {
	Tf     float64 `json:"tf"`     // duration of stage
	Dt     float64 `json:"dt"`     // time step size
	Tdecay float64 `json:"tdecay"` // default decay constant of exponential ramps

	// derived
	Nsteps int // number of steps = Tf / Dt
}

// Stage holds stage data
type Stage struct {
	Desc    string      `json:"desc"`    // description of simulation stage. ex: free swelling
	Skip    bool        `json:"skip"`    // do not run stage
	FaceBcs []*FaceBc   `json:"facebcs"` // face boundary conditions
	Control TimeControl `json:"control"` // time control
}

// Simulation holds all simulation data
type Simulation struct {

	// input
	Data      Data       `json:"data"`      // stores global simulation data
	Functions FuncsData  `json:"functions"` // stores all boundary condition functions
	Materials MatsData   `json:"materials"` // materials given directly in .sim file
	Regions   []*Region  `json:"regions"`   // stores all regions
	LinSol    LinSolData `json:"linsol"`    // linear solver data
	Solver    SolverData `json:"solver"`    // FEM solver data
	Stages    []*Stage   `json:"stages"`    // stores all stages

	// derived
	DirOut    string // directory to save results
	Key       string // simulation key; e.g. mysim01.sim => mysim01 or mysim01-alias
	EncType   string // encoder type
	Ndim      int    // space dimension
	MatModels *MatDb // materials and models
}

// ReadSim reads all simulation data from a .sim JSON file
func ReadSim(simfilepath, alias string, erasePrev, createDirOut bool) (o *Simulation, err error) {

	// new sim
	o = new(Simulation)

	// read file
	b, err := readFile(simfilepath)
	if err != nil {
		return nil, chk.Err("ReadSim: cannot read simulation file %q", simfilepath)
	}

	// set default values
	o.Solver.SetDefault()
	o.LinSol.SetDefault()

	// decode
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("ReadSim: cannot unmarshal simulation file %q:\n%v", simfilepath, err)
	}

	// input directory and filename key
	dir := os.ExpandEnv(filepath.Dir(simfilepath))
	fnkey := io.FnKey(filepath.Base(simfilepath))
	o.Key = fnkey
	if alias != "" {
		o.Key += "-" + alias
	}

	// output directory
	o.DirOut = o.Data.DirOut
	if o.DirOut == "" {
		o.DirOut = filepath.Join(os.TempDir(), "gel", fnkey)
	}

	// encoder type
	o.EncType = o.Data.Encoder
	if o.EncType != "gob" && o.EncType != "json" {
		o.EncType = "gob"
	}

	// create directory
	if createDirOut {
		err = os.MkdirAll(o.DirOut, 0777)
		if err != nil {
			return nil, chk.Err("cannot create directory for output results (%s): %v", o.DirOut, err)
		}
	}

	// erase previous simulation results
	if erasePrev {
		io.RemoveAll(io.Sf("%s/%s*", o.DirOut, o.Key))
	}

	// set solver constants
	err = o.Solver.PostProcess()
	if err != nil {
		return nil, err
	}

	// regions
	if len(o.Regions) == 0 {
		return nil, chk.Err("ReadSim: at least one region must be given")
	}
	for _, reg := range o.Regions {
		if reg.Cube != nil {
			reg.Msh, err = GenCube(reg.Cube.L, reg.Cube.Ndiv, reg.Cube.Ctype, reg.Cube.Nparts)
		} else {
			ddir := dir
			if reg.AbsPath {
				ddir = ""
			}
			reg.Msh, err = ReadMsh(ddir, reg.Mshfile)
		}
		if err != nil {
			return nil, chk.Err("ReadSim: cannot get mesh of region %q:\n%v", reg.Desc, err)
		}
		o.Ndim = reg.Msh.Ndim
	}

	// materials database
	if o.Data.Matfile != "" {
		o.MatModels, err = ReadMat(dir, o.Data.Matfile)
		if err != nil {
			return nil, err
		}
		o.MatModels.Materials = append(o.MatModels.Materials, o.Materials...)
	} else {
		o.MatModels = &MatDb{Materials: o.Materials}
	}
	err = o.MatModels.Init()
	if err != nil {
		return nil, err
	}

	// check elements data
	var first *Material
	for _, reg := range o.Regions {
		for _, edat := range reg.ElemsData {
			mat := o.MatModels.Get(edat.Mat)
			if mat == nil {
				return nil, chk.Err("ReadSim: cannot find material named %q for element with tag %d", edat.Mat, edat.Tag)
			}
			if first == nil {
				first = mat
			}
			edat.Lbb = !o.Data.NoLBB
		}
	}
	if first == nil {
		return nil, chk.Err("ReadSim: at least one element data must be given")
	}

	// stages: time control and default decay constants
	if len(o.Stages) == 0 {
		return nil, chk.Err("ReadSim: at least one stage must be given")
	}
	for i, stg := range o.Stages {
		err = stg.Control.PostProcess()
		if err != nil {
			return nil, chk.Err("ReadSim: stage %d: %v", i, err)
		}
		for _, fbc := range stg.FaceBcs {
			if len(fbc.Keys) != len(fbc.Funcs) {
				return nil, chk.Err("ReadSim: stage %d: face bc with tag %d must have the same number of keys and funcs", i, fbc.Tag)
			}
			for _, fname := range fbc.Funcs {
				fdat := o.Functions.Find(fname)
				if fdat == nil || fdat.Type != "expdecay" || hasPrm(fdat.Prms, "tau") {
					continue
				}
				if !(stg.Control.Tdecay > 0) {
					return nil, chk.Err("ReadSim: stage %d: function %q needs tau or control.tdecay > 0", i, fname)
				}
				fdat.Prms = append(fdat.Prms, &dbf.P{N: "tau", V: stg.Control.Tdecay})
			}
		}
	}

	// fix function coefficients
	for _, fcn := range o.Functions {
		for _, prm := range fcn.Prms {
			if res, found := io.Keycode(prm.Extra, "fix"); found {
				switch res {
				case "mu0":
					prm.V = first.Gel.Mu0
				case "c0":
					prm.V = first.Gel.C0
				default:
					return nil, chk.Err("ReadSim: cannot fix %q in function %q", res, fcn.Name)
				}
			}
		}
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// Etag2data returns the ElemData corresponding to element tag
//  Note: returns nil if not found
func (o *Region) Etag2data(etag int) *ElemData {
	for _, edat := range o.ElemsData {
		if edat.Tag == etag {
			return edat
		}
	}
	return nil
}

// hasPrm tells whether prms contains a parameter named name
func hasPrm(prms dbf.Params, name string) bool {
	for _, p := range prms {
		if p.N == name {
			return true
		}
	}
	return false
}

// GetInfo returns formatted information
func (o *Simulation) GetInfo(w goio.Writer) (err error) {
	b, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return
}

// GetFaceBc returns face boundary condition structure by giving a face tag
//  Note: returns nil if not found
func (o Stage) GetFaceBc(facetag int) *FaceBc {
	for _, fbc := range o.FaceBcs {
		if facetag == fbc.Tag {
			return fbc
		}
	}
	return nil
}

// extra settings //////////////////////////////////////////////////////////////////////////////////

// SetDefault sets defaults values
func (o *LinSolData) SetDefault() {
	o.Name = "umfpack"
	o.Ordering = "amf"
	o.Scaling = "rcit"
}

// SetDefault set defaults values
func (o *SolverData) SetDefault() {
	o.Type = "imp"
	o.NmaxIt = 50
	o.Atol = 1e-8
	o.Rtol = 1e-8
	o.Itol = 1
}

// PostProcess checks the just read json data
func (o *SolverData) PostProcess() error {
	if o.NmaxIt < 1 {
		return chk.Err("solver: nmaxit must be at least 1. %d is invalid", o.NmaxIt)
	}
	if !(o.Atol > 0) || !(o.Rtol >= 0) || !(o.Itol > 0) {
		return chk.Err("solver: tolerances must be positive. atol=%g rtol=%g itol=%g", o.Atol, o.Rtol, o.Itol)
	}
	return nil
}

// PostProcess checks the time control and computes the number of steps
//  Note: Dt must partition Tf evenly within 1e-10·Tf
func (o *TimeControl) PostProcess() error {
	if !(o.Tf > 0) || !(o.Dt > 0) {
		return chk.Err("time control: tf and dt must be positive. tf=%g dt=%g", o.Tf, o.Dt)
	}
	n := math.Round(o.Tf / o.Dt)
	if n < 1 || math.Abs(n*o.Dt-o.Tf) > 1e-10*o.Tf {
		return chk.Err("time control: dt=%g does not evenly partition tf=%g", o.Dt, o.Tf)
	}
	o.Nsteps = int(n)
	return nil
}
