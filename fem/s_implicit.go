// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"
	"math"

	"github.com/cpmech/gosl/io"
)

// NewtonResult holds the outcome of the nonlinear iterations of one step
type NewtonResult struct {
	Converged  bool    // iterations converged
	Iterations int     // number of iterations performed
	Norm       float64 // last scaled RMS norm of corrections
	Reason     string  // reason of divergence; empty if converged
	Err        error   // ErrDiverged, ErrLinSol or ErrInvalidState; nil if converged
}

// SolverImplicit solves FEM problem using an implicit procedure (with Newthon-Raphson method)
type SolverImplicit struct {
	doms    []*Domain // domains
	sum     *Summary  // summary
	showMsg bool      // show messages
}

// set factory
func init() {
	allocators["imp"] = func(doms []*Domain, sum *Summary, showMsg bool) Solver {
		return &SolverImplicit{doms, sum, showMsg}
	}
}

// Run runs the time loop of one stage. Each step updates the time (and so the boundary
// values c(t)), runs the Newton iterations and, on convergence, commits the state and calls
// out. The loop stops at the first diverging step and all domains go back to the last converged state
func (o *SolverImplicit) Run(tc *TimeControl, out OutFunc) (err error) {

	// time loop
	lastT := tc.T
	for !tc.Done() {

		// time update
		t := tc.Next()
		for _, d := range o.doms {
			d.Sol.T = t
			d.Sol.Dt = tc.Dt
		}

		// message
		if o.showMsg {
			if !o.doms[0].Sim.Solver.ShowR {
				io.Pf("> step %4d: t = %g\r", tc.Step, t)
			}
		}

		// for all domains
		var its int
		for _, d := range o.doms {
			res := o.newton(d)
			if !res.Converged {
				for _, dd := range o.doms {
					dd.restore(lastT)
				}
				return &StepError{Step: tc.Step, Time: t, LastT: lastT, Reason: res.Reason, Wrapped: res.Err}
			}
			if res.Iterations > its {
				its = res.Iterations
			}
			nclamp := d.NumClamped()
			if o.sum != nil {
				o.sum.AddStep(res.Iterations, res.Norm, nclamp)
			}
			if o.showMsg && nclamp > 0 {
				io.Pforan("\n> step %4d: %d integration points on the plateau of the locking function\n", tc.Step, nclamp)
			}
		}

		// commit converged state
		for _, d := range o.doms {
			d.Sol.Commit()
		}
		lastT = t

		// perform output
		if out != nil {
			err = out(tc, its)
			if err != nil {
				return
			}
		}
	}
	if o.showMsg {
		io.Pf("\n")
	}
	return
}

// newton solves the nonlinear problem of one step; a full Newton step is always applied
func (o *SolverImplicit) newton(d *Domain) (res NewtonResult) {

	// zero accumulated increments
	for i := 0; i < d.Ny; i++ {
		d.Sol.ΔY[i] = 0
	}

	// message
	dat := &d.Sim.Solver
	if dat.ShowR && d.ShowMsg {
		io.Pf("\n%13s%4s%23s%23s\n", "t", "it", "largFb", "Lδy")
	}

	// iterations
	var prevNorm float64
	for it := 0; it < dat.NmaxIt; it++ {
		res.Iterations = it + 1

		// assemble right-hand side vector (fb) with negative of residuals
		err := d.AssembleRhs()
		if err != nil {
			return res.fail(err)
		}
		largFb, finite := largest(d.Fb)
		if !finite {
			return res.diverge(ReasonNonFinite, ErrDiverged)
		}

		// assemble Jacobian matrix
		err = d.AssembleKb()
		if err != nil {
			return res.fail(err)
		}

		// initialise linear solver
		if d.InitLSol {
			err = d.LinSol.Init(d.Kb)
			if err != nil {
				return res.fail(err)
			}
			d.InitLSol = false
		}

		// perform factorisation and solve for wb := δyb
		err = d.LinSol.Fact()
		if err != nil {
			return res.fail(err)
		}
		err = d.LinSol.Solve(d.Wb, d.Fb)
		if err != nil {
			return res.fail(err)
		}

		// ghost synchronisation: all processors receive the solution from root
		d.Comm.BcastFromRoot(d.Wb)

		// update primary variables (y) and Lagrange multipliers (λ)
		for i := 0; i < d.Ny; i++ {
			d.Sol.Y[i] += d.Wb[i]  // y += δy
			d.Sol.ΔY[i] += d.Wb[i] // ΔY += δy
		}
		for i := 0; i < d.Nlam; i++ {
			d.Sol.L[i] += d.Wb[d.Ny+i] // λ += δλ
		}

		// compute RMS norm of δy and check convegence on δy
		res.Norm = d.CorrectionNorm(d.Wb[:d.Ny])
		if math.IsNaN(res.Norm) || math.IsInf(res.Norm, 0) {
			return res.diverge(ReasonNonFinite, ErrDiverged)
		}

		// message
		if dat.ShowR && d.ShowMsg {
			io.Pf("%13.6e%4d%23.15e%23.15e\n", d.Sol.T, it, largFb, res.Norm)
		}

		// stop if converged on δy
		if res.Norm < dat.Itol {
			res.Converged = true
			return
		}

		// check divergence on Lδy
		if it > 0 && dat.DvgCtrl {
			if res.Norm >= prevNorm {
				return res.diverge(ReasonNoDecrease, ErrDiverged)
			}
		}
		prevNorm = res.Norm
	}

	// iterations did not converge
	return res.diverge(ReasonMaxIt, ErrDiverged)
}

// restore recovers the last converged state after a diverging step
func (o *Domain) restore(lastT float64) {
	copy(o.Sol.Y, o.Sol.Yold)
	for i := 0; i < len(o.Sol.ΔY); i++ {
		o.Sol.ΔY[i] = 0
	}
	o.Sol.T = lastT
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// diverge sets the reason of divergence
func (o NewtonResult) diverge(reason string, err error) NewtonResult {
	o.Converged = false
	o.Reason = reason
	o.Err = err
	return o
}

// fail classifies an error returned by the assembly or the linear solver
func (o NewtonResult) fail(err error) NewtonResult {
	switch {
	case errors.Is(err, ErrInvalidState):
		return o.diverge(ReasonInvalidState, err)
	case errors.Is(err, ErrLinSol):
		return o.diverge(ReasonLinSol, err)
	}
	return o.diverge(err.Error(), err)
}

// largest returns the largest absolute component of v and whether all components are finite
func largest(v []float64) (largest float64, finite bool) {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return math.Inf(1), false
		}
		if a := math.Abs(x); a > largest {
			largest = a
		}
	}
	return largest, true
}
