// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"fmt"
	"math"

	"github.com/SolidMechanicsCoupledTheories/SolidMechanicsCoupledTheories.github.io/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/mat"
)

// LinSolver solves the linearised system Kb・x = b
//  Note: all failures are reported as errors wrapping ErrLinSol
type LinSolver interface {
	Init(Kb *la.Triplet) (err error)  // initialises solver with the sparsity of Kb
	Fact() (err error)                // factorises the current values of Kb
	Solve(x, b []float64) (err error) // solves Kb・x = b
	Free()                            // frees memory
}

// NewLinSolver returns a new linear solver
//  name -- "umfpack", "mumps" or "dense"
func NewLinSolver(dat *inp.LinSolData, comm Communicator) (LinSolver, error) {
	switch dat.Name {
	case "umfpack", "mumps":
		return &sparseSolver{dat: dat, comm: comm}, nil
	case "dense":
		if comm.Size() > 1 {
			return nil, chk.Err("dense linear solver cannot be used in parallel runs")
		}
		return new(denseSolver), nil
	}
	return nil, chk.Err("cannot find linear solver named %q", dat.Name)
}

// sparseSolver wraps the sparse solvers in gosl (UMFPACK or MUMPS)
type sparseSolver struct {
	dat  *inp.LinSolData // configuration
	comm Communicator    // communicator
	sol  la.SparseSolver // the solver
	kb   *la.Triplet     // matrix
}

// Init initialises solver
func (o *sparseSolver) Init(Kb *la.Triplet) (err error) {
	defer catch(&err, "initialisation")
	o.kb = Kb
	o.sol = la.NewSparseSolver(o.dat.Name)
	args := &la.SpArgs{
		Symmetric:    o.dat.Symmetric,
		Verbose:      o.dat.Verbose,
		Communicator: o.comm.MpiComm(),
	}
	if o.dat.Name == "mumps" {
		args.Ordering = o.dat.Ordering
		args.Scaling = o.dat.Scaling
	}
	o.sol.Init(o.kb, args)
	return
}

// Fact factorises matrix
func (o *sparseSolver) Fact() (err error) {
	defer catch(&err, "factorisation")
	o.sol.Fact()
	return
}

// Solve solves system
func (o *sparseSolver) Solve(x, b []float64) (err error) {
	defer catch(&err, "solution")
	o.sol.Solve(x, b, false) // b is complete on every processor
	return
}

// Free frees memory
func (o *sparseSolver) Free() {
	if o.sol != nil {
		o.sol.Free()
		o.sol = nil
	}
}

// denseSolver solves the system with a dense LU decomposition (serial runs and small problems)
type denseSolver struct {
	kb *la.Triplet // matrix
	a  *mat.Dense  // dense matrix
	lu mat.LU      // decomposition
	n  int         // dimension
}

// Init initialises solver
func (o *denseSolver) Init(Kb *la.Triplet) (err error) {
	o.kb = Kb
	o.n = Kb.ToDense().M
	o.a = mat.NewDense(o.n, o.n, nil)
	return
}

// Fact factorises matrix
func (o *denseSolver) Fact() (err error) {
	if o.a == nil {
		return fmt.Errorf("%w: dense solver is not initialised", ErrLinSol)
	}
	K := o.kb.ToDense()
	for i := 0; i < o.n; i++ {
		for j := 0; j < o.n; j++ {
			o.a.Set(i, j, K.Get(i, j))
		}
	}
	o.lu.Factorize(o.a)
	if cond := o.lu.Cond(); math.IsInf(cond, 0) || math.IsNaN(cond) {
		return fmt.Errorf("%w: matrix is singular (condition number = %g)", ErrLinSol, cond)
	}
	return
}

// Solve solves system
func (o *denseSolver) Solve(x, b []float64) (err error) {
	xv := mat.NewVecDense(o.n, x)
	bv := mat.NewVecDense(o.n, b)
	err = o.lu.SolveVecTo(xv, false, bv)
	if err != nil {
		if _, ok := err.(mat.Condition); !ok {
			return fmt.Errorf("%w: %v", ErrLinSol, err)
		}
		err = nil
	}
	for i := 0; i < o.n; i++ {
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) {
			return fmt.Errorf("%w: solution has non-finite values", ErrLinSol)
		}
	}
	return
}

// Free frees memory
func (o *denseSolver) Free() {
	o.a = nil
}

// catch converts panics raised by the gosl solvers into ErrLinSol
func catch(err *error, stage string) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %s failed: %v", ErrLinSol, stage, r)
	}
}
