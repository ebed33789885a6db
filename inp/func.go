// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// FuncData holds function definition
type FuncData struct {
	Name string     `json:"name"` // name of function. ex: zero, muramp, myfunction1, etc.
	Type string     `json:"type"` // type of function. ex: cte, lin, expdecay
	Prms dbf.Params `json:"prms"` // parameters
}

// Funcs holds functions
type FuncsData []*FuncData

// Get returns function by name
func (o FuncsData) Get(name string) (fcn dbf.T, err error) {
	if name == "zero" || name == "none" {
		fcn = &dbf.Cte{C: 0}
		return
	}
	f := o.Find(name)
	if f == nil {
		return nil, chk.Err("cannot find function named %q\n", name)
	}
	if f.Type == "expdecay" {
		err = checkExpDecay(f.Prms)
		if err == nil {
			fcn = new(ExpDecay)
			fcn.Init(f.Prms)
		}
	} else {
		fcn, err = newDbf(f.Type, f.Prms)
	}
	if err != nil {
		return nil, chk.Err("cannot get function named %q because of the following error:\n%v", name, err)
	}
	return
}

// Find returns the definition of function by name or nil
func (o FuncsData) Find(name string) *FuncData {
	for _, f := range o {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// ExpDecay implements an exponentially decaying function of time
//
//   f(t) = a · exp(-t/τ)
//
type ExpDecay struct {
	A   float64 // value at t=0
	Tau float64 // decay constant
}

// Init initialises the function. Parameters must have been checked with checkExpDecay
func (o *ExpDecay) Init(prms dbf.Params) {
	for _, p := range prms {
		switch p.N {
		case "a":
			o.A = p.V
		case "tau":
			o.Tau = p.V
		}
	}
}

// F returns y = F(t, x)
func (o ExpDecay) F(t float64, x []float64) float64 {
	return o.A * math.Exp(-t/o.Tau)
}

// G returns ∂y/∂t_cteX = G(t, x)
func (o ExpDecay) G(t float64, x []float64) float64 {
	return -o.A * math.Exp(-t/o.Tau) / o.Tau
}

// H returns ∂²y/∂t²_cteX = H(t, x)
func (o ExpDecay) H(t float64, x []float64) float64 {
	return o.A * math.Exp(-t/o.Tau) / (o.Tau * o.Tau)
}

// Grad returns ∇F = ∂y/∂x = Grad(t, x)
func (o ExpDecay) Grad(v []float64, t float64, x []float64) {
	for i := 0; i < len(v); i++ {
		v[i] = 0
	}
}

// auxiliary //////////////////////////////////////////////////////////////////////////////////////////

// checkExpDecay validates the parameters of an expdecay function
func checkExpDecay(prms dbf.Params) error {
	tau := -1.0
	for _, p := range prms {
		switch p.N {
		case "a":
		case "tau":
			tau = p.V
		default:
			return chk.Err("expdecay: parameter named %q is invalid", p.N)
		}
	}
	if !(tau > 0) {
		return chk.Err("expdecay: decay constant tau must be positive. tau = %g is invalid", tau)
	}
	return nil
}

// newDbf allocates a function from the gosl database; unknown names are returned as errors
func newDbf(typ string, prms dbf.Params) (fcn dbf.T, err error) {
	defer func() {
		if r := recover(); r != nil {
			fcn, err = nil, chk.Err("%v", r)
		}
	}()
	return dbf.New(typ, prms), nil
}

// readFile reads a file with gosl; a failure is returned as an error
func readFile(fn string) (b []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			b, err = nil, chk.Err("%v", r)
		}
	}()
	return io.ReadFile(fn), nil
}

// String prints one function
func (o FuncData) String() string {
	l := io.Sf("    {\n      \"name\":%q, \"type\":%q, \"prms\" : [", o.Name, o.Type)
	for i, p := range o.Prms {
		if i > 0 {
			l += ","
		}
		l += io.Sf("\n        {\"n\":%q, \"v\":%g}", p.N, p.V)
	}
	return l + "\n      ]\n    }"
}

// String prints functions
func (o FuncsData) String() string {
	if len(o) == 0 {
		return "  \"functions\" : []"
	}
	l := "  \"functions\" : [\n"
	for i, f := range o {
		if i > 0 {
			l += ",\n"
		}
		l += io.Sf("%v", f)
	}
	l += "\n  ]"
	return l
}
