// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sort"

	"github.com/SolidMechanicsCoupledTheories/SolidMechanicsCoupledTheories.github.io/ele"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// EssentialBc holds information about one single-point essential bounday condition.
// Lagrange multipliers are used to implement the constraints.
//  In general, essential bcs / constraints are defined by means of:
//
//      A・y = c
//
//  The resulting Kb matrix will then have the following form:
//      _       _
//     |  K  At  | / δy \   / -R - At*λ \
//     |         | |    | = |           |
//     |_ A   0 _| \ δλ /   \  c - A*y  /
//         Kb       δyb          fb
//
//  Here, each row of A has a single unit entry @ column Eq
type EssentialBc struct {
	Key   string // key such as 'ux', 'uy', 'mu'
	Eq    int    // equation number
	Fname string // name of function
	Fcn   dbf.T  // function that implements the "c" vector in  A・y = c
}

// EbcArray is an array of EssentialBc's
type EbcArray []*EssentialBc

// EssentialBcs implements a structure to record the definition of essential bcs / constraints.
// Each constraint will have a unique Lagrange multiplier index.
type EssentialBcs struct {
	Bcs   EbcArray             // active essential bcs / constraints
	Eq2bc map[int]*EssentialBc // equation number => constraint
}

// Init initialises this structure
func (o *EssentialBcs) Init() {
	o.Bcs = make([]*EssentialBc, 0)
	o.Eq2bc = make(map[int]*EssentialBc)
}

// Build sorts constraints by equation number so that all processors number Lagrange
// multipliers in the same order
//  nλ   -- is the number of essential bcs / constraints == number of Lagrange multipliers
//  nnzA -- is the number of non-zeros in matrix 'A'
func (o *EssentialBcs) Build(ny int) (nλ, nnzA int, err error) {
	sort.Sort(o.Bcs)
	for _, bc := range o.Bcs {
		if bc.Eq < 0 || bc.Eq >= ny {
			return 0, 0, chk.Err("equation number %d of constraint on %q is out of range [0, %d)", bc.Eq, bc.Key, ny)
		}
	}
	nλ = len(o.Bcs)
	nnzA = nλ
	return
}

// AddToRhs adds the essential bcs / constraints terms to the augmented fb vector
func (o *EssentialBcs) AddToRhs(fb []float64, sol *ele.Solution) {
	ny := len(sol.Y)
	for i, bc := range o.Bcs {
		fb[bc.Eq] -= sol.L[i]                          // fb += -1 * At * λ
		fb[ny+i] = bc.Fcn.F(sol.T, nil) - sol.Y[bc.Eq] // -rc = c - A*y
	}
}

// AddToKb adds A and tr(A) to the augmented Jacobian
func (o *EssentialBcs) AddToKb(Kb *la.Triplet, ny int) {
	for i, bc := range o.Bcs {
		Kb.Put(bc.Eq, ny+i, 1)
		Kb.Put(ny+i, bc.Eq, 1)
	}
}

// Set sets a single-point constraint if it does not exist yet
//  key   -- Dof key such as "ux", "uy" or "mu"
//  fname -- name of function; constraints on the same equation must use the same function
func (o *EssentialBcs) Set(key string, eq int, fname string, fcn dbf.T) (err error) {
	if old, ok := o.Eq2bc[eq]; ok {
		if old.Fname != fname {
			return chk.Err("equation %d (%q) is constrained by two functions: %q and %q", eq, key, old.Fname, fname)
		}
		return
	}
	bc := &EssentialBc{key, eq, fname, fcn}
	o.Bcs = append(o.Bcs, bc)
	o.Eq2bc[eq] = bc
	return
}

// List returns a simple list logging bcs at time t
func (o *EssentialBcs) List(t float64) (l string) {
	l = "\n==================================================================\n"
	l += io.Sf("%8s%8s%25s%25s\n", "eq", "key", "value @ t=0", io.Sf("value @ t=%g", t))
	l += "------------------------------------------------------------------\n"
	for _, bc := range o.Bcs {
		l += io.Sf("%8d%8s%25.13f%25.13f\n", bc.Eq, bc.Key, bc.Fcn.F(0, nil), bc.Fcn.F(t, nil))
	}
	l += "==================================================================\n"
	return
}

// functions to implement Sort interface
func (o EbcArray) Len() int           { return len(o) }
func (o EbcArray) Swap(i, j int)      { o[i], o[j] = o[j], o[i] }
func (o EbcArray) Less(i, j int) bool { return o[i].Eq < o[j].Eq }
