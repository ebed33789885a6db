// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SolidMechanicsCoupledTheories/SolidMechanicsCoupledTheories.github.io/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
)

// stepError checks that err is a StepError wrapping target
func stepError(tst *testing.T, err, target error, reason string, step int) (serr *StepError) {
	if err == nil {
		tst.Fatalf("step should have failed\n")
	}
	io.Pforan("%v\n", err)
	if !errors.As(err, &serr) {
		tst.Fatalf("error should be a StepError\n")
	}
	if !errors.Is(err, target) {
		tst.Errorf("error should wrap %v\n", target)
	}
	chk.String(tst, serr.Reason, reason)
	chk.Int(tst, "step", serr.Step, step)
	return
}

// lateFailure fails the factorisation from time tfail on
type lateFailure struct {
	LinSolver
	sol   *Domain
	tfail float64
}

func (o *lateFailure) Fact() error {
	if o.sol.Sol.T >= o.tfail {
		return fmt.Errorf("%w: factorisation at t=%g", ErrLinSol, o.sol.Sol.T)
	}
	return o.LinSolver.Fact()
}

// countComm counts the reductions of a processor running alone
type countComm struct {
	nreduce int
}

func (o *countComm) Rank() int                   { return 0 }
func (o *countComm) Size() int                   { return 1 }
func (o *countComm) AllReduceSum(x, w []float64) { o.nreduce++ }
func (o *countComm) BcastFromRoot(x []float64)   {}
func (o *countComm) MpiComm() *mpi.Communicator  { return nil }

func Test_fail01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fail01. concentration below -1 stops the run")

	main, err := NewMain("data/homog.sim", "inv", true, chk.Verbose)
	if err != nil {
		tst.Fatalf("NewMain failed:\n%v", err)
	}
	main.Sim.Functions = append(main.Sim.Functions, &inp.FuncData{
		Name: "cdrop", Type: "lin", Prms: dbf.Params{&dbf.P{N: "m", V: -0.5}},
	})
	stg := main.Sim.Stages[0]
	stg.FaceBcs = append(stg.FaceBcs, &inp.FaceBc{Tag: -11, Keys: []string{"c"}, Funcs: []string{"cdrop"}})
	var rep collector
	err = main.Run(&rep)
	serr := stepError(tst, err, ErrInvalidState, ReasonInvalidState, 1)
	chk.Float64(tst, "last converged time", 1e-15, serr.LastT, 0)

	// last converged state is kept
	chk.Int(tst, "number of snapshots", len(rep.snaps), 1)
	dom := main.Domains[0]
	chk.Array(tst, "Y", 1e-15, dom.Sol.Y, dom.Sol.Yold)
	chk.Float64(tst, "t", 1e-15, dom.Sol.T, 0)
	if main.Summary.Success {
		tst.Errorf("summary should indicate failure\n")
	}
}

func Test_fail02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fail02. linear solver failure restores all domains")

	main, err := NewMain("data/two.sim", "", true, chk.Verbose)
	if err != nil {
		tst.Fatalf("NewMain failed:\n%v", err)
	}
	chk.Int(tst, "number of domains", len(main.Domains), 2)
	err = main.SetStage(0)
	if err != nil {
		tst.Fatalf("SetStage failed:\n%v", err)
	}
	err = main.ZeroStage(0)
	if err != nil {
		tst.Fatalf("ZeroStage failed:\n%v", err)
	}

	// the second domain fails in the second step, after the first one has converged
	dom0, dom1 := main.Domains[0], main.Domains[1]
	dom1.LinSol = &lateFailure{LinSolver: dom1.LinSol, sol: dom1, tfail: 10}
	var rep collector
	err = main.SolveOneStage(0, &rep)
	serr := stepError(tst, err, ErrLinSol, ReasonLinSol, 2)
	chk.Float64(tst, "time", 1e-15, serr.Time, 10)
	chk.Float64(tst, "last converged time", 1e-15, serr.LastT, 5)

	// both domains hold the state of the first step
	chk.Int(tst, "number of snapshots", len(rep.snaps), 4)
	chk.Float64(tst, "time of last snapshot", 1e-15, rep.snaps[3].Time, 5)
	for i, dom := range []*Domain{dom0, dom1} {
		chk.Array(tst, io.Sf("Y%d", i), 1e-15, dom.Sol.Y, dom.Sol.Yold)
		chk.Float64(tst, io.Sf("t%d", i), 1e-15, dom.Sol.T, 5)
	}
	chk.Array(tst, "Y0 == Y1", 1e-15, dom0.Sol.Y, dom1.Sol.Y)
}

func Test_fail03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fail03. corrections that do not decrease")

	main, err := NewMain("data/homog.sim", "nodec", true, chk.Verbose)
	if err != nil {
		tst.Fatalf("NewMain failed:\n%v", err)
	}
	main.Sim.Solver.DvgCtrl = true
	main.Sim.Solver.Itol = 0 // never converges; the corrections stall at roundoff
	var rep collector
	err = main.Run(&rep)
	stepError(tst, err, ErrDiverged, ReasonNoDecrease, 1)
	dom := main.Domains[0]
	chk.Array(tst, "Y", 1e-15, dom.Sol.Y, dom.Sol.Yold)
	if main.Summary.Iters != nil {
		tst.Errorf("no step should have been recorded\n")
	}
}

func Test_fail04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fail04. processors without elements reduce the same keys")

	main, err := NewMain("data/mass.sim", "comm", true, chk.Verbose)
	if err != nil {
		tst.Fatalf("NewMain failed:\n%v", err)
	}
	err = main.SetStage(0)
	if err != nil {
		tst.Fatalf("SetStage failed:\n%v", err)
	}
	err = main.ZeroStage(0)
	if err != nil {
		tst.Fatalf("ZeroStage failed:\n%v", err)
	}
	dom := main.Domains[0]
	comm := new(countComm)
	dom.Distr = true
	dom.Comm = comm

	// with elements
	N, err := dom.NodeVals()
	if err != nil {
		tst.Fatalf("NodeVals failed:\n%v", err)
	}
	chk.Int(tst, "number of reductions", comm.nreduce, 2*len(derivedKeys))
	mdl := main.Sim.MatModels.Get("soft").Gel
	chk.Float64(tst, "c @ vertex 0", 1e-12*mdl.C0, N.Get("c", 0), mdl.C0)

	// without elements
	dom.ElemOut, dom.ElemInteg = nil, nil
	comm.nreduce = 0
	N, err = dom.NodeVals()
	if err != nil {
		tst.Fatalf("NodeVals failed:\n%v", err)
	}
	chk.Int(tst, "number of reductions", comm.nreduce, 2*len(derivedKeys))
	for _, key := range derivedKeys {
		chk.Int(tst, "number of vertices of "+key, len(N.Vals[key]), len(dom.Msh.Verts))
	}
	comm.nreduce = 0
	_, err = dom.Integrate()
	if err != nil {
		tst.Fatalf("Integrate failed:\n%v", err)
	}
	chk.Int(tst, "number of reductions", comm.nreduce, 1)
}
