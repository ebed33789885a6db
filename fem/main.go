// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the FEM solver
package fem

import (
	goio "io"
	"time"

	"github.com/SolidMechanicsCoupledTheories/SolidMechanicsCoupledTheories.github.io/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Main holds all data for a simulation using the finite element method
type Main struct {
	Sim     *inp.Simulation // simulation data
	Summary *Summary        // summary structure
	Domains []*Domain       // all domains
	Solver  Solver          // finite element method solver; e.g. implicit
	Comm    Communicator    // communicator
	Nproc   int             // number of processors
	Proc    int             // processor id
	ShowMsg bool            // show messages
	Time    float64         // time of the last converged state; continues across stages

	// output
	rep    Reporter // receives snapshots
	stgidx int      // current stage
	nout   int      // number of snapshots taken
}

// NewMain returns a new Main structure
//  Input:
//   simfilepath -- simulation (.sim) filename including full path
//   alias       -- word to be appended to simulation key; e.g. when running multiple FE solutions
//   erasePrev   -- erase previous results files
//   verbose     -- show messages
func NewMain(simfilepath, alias string, erasePrev, verbose bool) (o *Main, err error) {

	// new Main object
	o = new(Main)

	// multiprocessing data
	o.Comm = NewCommunicator()
	o.Proc = o.Comm.Rank()
	o.Nproc = o.Comm.Size()
	o.ShowMsg = verbose && (o.Proc == 0)

	// fix erasePrev flag when running in parallel
	if o.Proc != 0 {
		erasePrev = false
	}

	// read input data
	o.Sim, err = inp.ReadSim(simfilepath, alias, erasePrev, o.Proc == 0)
	if err != nil {
		return nil, err
	}

	// linear solver
	if o.Nproc > 1 {
		o.Sim.LinSol.Name = "mumps"
	} else if o.Sim.LinSol.Name == "mumps" {
		o.Sim.LinSol.Name = "umfpack"
	}

	// summary
	o.Summary = new(Summary)

	// message
	if o.ShowMsg {
		io.Pf("> Initialisation step completed\n")
		io.Pf("> Simulation (.sim) file read\n")
	}

	// allocate domains
	o.Domains, err = NewDomains(o.Sim, o.Comm, verbose)
	if err != nil {
		return nil, err
	}

	// allocate solver
	if alloc, ok := allocators[o.Sim.Solver.Type]; ok {
		o.Solver = alloc(o.Domains, o.Summary, o.ShowMsg)
	} else {
		return nil, chk.Err("cannot find solver type named %q", o.Sim.Solver.Type)
	}
	return
}

// Run runs FE simulation. Snapshots are given to rep at t=0 and after every converged step.
// The summary is saved if Data.Summary is set, even if the run fails
func (o *Main) Run(rep Reporter) (err error) {

	// exit commands
	cputime := time.Now()
	defer func() { err = o.onexit(cputime, rep, err) }()

	// message
	if o.ShowMsg {
		io.Pf("> Solving stages\n")
	}

	// loop over stages
	first := true
	for stgidx, stg := range o.Sim.Stages {

		// skip stage?
		if stg.Skip {
			continue
		}

		// set stage
		err = o.SetStage(stgidx)
		if err != nil {
			return
		}

		// initialise solution vectors
		if first {
			err = o.ZeroStage(stgidx)
			if err != nil {
				return
			}
			first = false
		}

		// time loop
		err = o.SolveOneStage(stgidx, rep)
		if err != nil {
			return
		}
	}
	return
}

// SetStage sets stage for all domains
//  Input:
//   stgidx -- stage index (in o.Sim.Stages)
func (o *Main) SetStage(stgidx int) (err error) {
	if o.ShowMsg {
		io.Pf("> Setting stage %d\n", stgidx)
	}
	o.stgidx = stgidx
	for _, d := range o.Domains {
		err = d.SetStage(stgidx)
		if err != nil {
			return
		}
	}
	return
}

// ZeroStage initialises the solution vectors in all domains
//  Input:
//   stgidx -- stage index (in o.Sim.Stages)
func (o *Main) ZeroStage(stgidx int) (err error) {
	if o.ShowMsg {
		io.Pf("> Zeroing stage %d\n", stgidx)
	}
	o.Time = 0
	for _, d := range o.Domains {
		err = d.SetIniVals()
		if err != nil {
			return
		}
		d.Sol.T = o.Time
	}
	return
}

// SolveOneStage runs the time loop of a stage that was already set. The initial state is
// reported if no snapshot has been taken yet
//  Input:
//   stgidx -- stage index (in o.Sim.Stages)
//   rep    -- reporter; may be nil
func (o *Main) SolveOneStage(stgidx int, rep Reporter) (err error) {

	// time control
	stg := o.Sim.Stages[stgidx]
	tc, err := NewTimeControl(o.Time, &stg.Control)
	if err != nil {
		return
	}

	// initial state
	o.rep = rep
	o.stgidx = stgidx
	if o.nout == 0 {
		err = o.output(tc, 0)
		if err != nil {
			return
		}
	}

	// message
	if o.ShowMsg {
		io.Pf("> Running FE solver: %d steps with Δt = %g\n", tc.Nsteps, tc.Dt)
	}

	// run
	return o.Solver.Run(tc, o.output)
}

// auxiliary //////////////////////////////////////////////////////////////////////////////////////

// output takes snapshots of all domains and sends them to the reporter
func (o *Main) output(tc *TimeControl, its int) (err error) {
	o.Time = tc.T
	o.Summary.OutTimes = append(o.Summary.OutTimes, tc.T)
	for i, d := range o.Domains {
		s, err := d.Snapshot()
		if err != nil {
			return err
		}
		s.Name = o.Sim.Key
		s.Region = i
		s.Stage = o.stgidx
		s.Index = o.nout
		s.Step = tc.Step
		s.Iterations = its
		if tc.Step > 0 {
			s.Nclamp = d.NumClamped()
		}
		if o.Proc == 0 && o.rep != nil {
			err = o.rep.Report(s)
			if err != nil {
				return err
			}
		}
	}
	o.nout++
	return
}

// onexit clean domains, prints final message with simulation and cpu times and save summary
func (o *Main) onexit(cputime time.Time, rep Reporter, prevErr error) (err error) {

	// clean resources
	for _, d := range o.Domains {
		d.Free()
	}

	// close reporter
	if c, ok := rep.(goio.Closer); ok && o.Proc == 0 {
		err = c.Close()
		if err != nil && prevErr == nil {
			prevErr = err
		}
	}

	// show final message
	elapsed := time.Now().Sub(cputime)
	if o.ShowMsg {
		if prevErr == nil {
			io.PfGreen("> Success\n")
			io.Pf("> CPU time = %v\n", elapsed)
		} else {
			io.PfRed("> Failed\n")
		}
	}

	// save summary
	o.Summary.Success = prevErr == nil
	o.Summary.CPUtime = elapsed.String()
	if prevErr != nil {
		o.Summary.Error = prevErr.Error()
	}
	if o.Sim.Data.Summary {
		err = o.Summary.Save(o.Sim.DirOut, o.Sim.Key, o.Sim.EncType, o.Nproc, o.Proc, o.ShowMsg)
		if err != nil && prevErr == nil {
			return
		}
	}

	// return previous error
	err = prevErr
	return
}
