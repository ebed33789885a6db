// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/SolidMechanicsCoupledTheories/SolidMechanicsCoupledTheories.github.io/inp"
	"github.com/cpmech/gosl/chk"
)

// TimeControl advances time with fixed increments. Time is computed as T0 + Step・Dt and
// therefore never decreases and does not accumulate round-off
type TimeControl struct {
	T0     float64 // time at the beginning of stage
	Tf     float64 // duration of stage
	Dt     float64 // time increment
	Tdecay float64 // default decay constant of ramps
	T      float64 // current time
	Step   int     // current step; 0 => initial state
	Nsteps int     // number of steps
}

// NewTimeControl returns a new TimeControl starting at t0
func NewTimeControl(t0 float64, dat *inp.TimeControl) (o *TimeControl, err error) {
	err = dat.PostProcess()
	if err != nil {
		return
	}
	o = &TimeControl{T0: t0, Tf: dat.Tf, Dt: dat.Dt, Tdecay: dat.Tdecay, T: t0, Nsteps: dat.Nsteps}
	return
}

// Done tells whether all steps have been taken
func (o *TimeControl) Done() bool {
	return o.Step >= o.Nsteps
}

// Next advances to the next step and returns the new time
func (o *TimeControl) Next() (t float64) {
	if o.Done() {
		chk.Panic("time control: cannot advance beyond the last step %d", o.Nsteps)
	}
	o.Step++
	o.T = o.T0 + float64(o.Step)*o.Dt
	return o.T
}

// Tend returns the time at the end of stage
func (o *TimeControl) Tend() float64 {
	return o.T0 + float64(o.Nsteps)*o.Dt
}
