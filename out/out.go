// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements reporters of converged states and the handling of time histories
package out

import (
	goio "io"

	"github.com/SolidMechanicsCoupledTheories/SolidMechanicsCoupledTheories.github.io/fem"
)

// History holds the time history of averages of one region
type History struct {
	Region int                  // index of region to be recorded
	T      []float64            // [nout] times
	Steps  []int                // [nout] steps
	Iters  []int                // [nout] number of Newton iterations
	Nclamp []int                // [nout] number of integration points on the plateau
	Avg    map[string][]float64 // [nout] averages; e.g. "c", "J", "phi", "vmmax"
	Last   *fem.Snapshot        // last recorded snapshot
}

// Add records the averages in snapshot s. Snapshots of other regions are ignored
func (o *History) Add(s *fem.Snapshot) {
	if s.Region != o.Region {
		return
	}
	if o.Avg == nil {
		o.Avg = make(map[string][]float64)
	}
	o.T = append(o.T, s.Time)
	o.Steps = append(o.Steps, s.Step)
	o.Iters = append(o.Iters, s.Iterations)
	o.Nclamp = append(o.Nclamp, s.Nclamp)
	for _, key := range fem.AvgKeys() {
		o.Avg[key] = append(o.Avg[key], s.Avg[key])
	}
	o.Last = s
}

// Len returns the number of recorded snapshots
func (o *History) Len() int { return len(o.T) }

// Multi sends snapshots to many reporters
type Multi []fem.Reporter

// Report implements fem.Reporter. It stops at the first failing reporter
func (o Multi) Report(s *fem.Snapshot) (err error) {
	for _, r := range o {
		err = r.Report(s)
		if err != nil {
			return
		}
	}
	return
}

// Close closes all reporters implementing io.Closer and returns the first error
func (o Multi) Close() (err error) {
	for _, r := range o {
		if c, ok := r.(goio.Closer); ok {
			if e := c.Close(); e != nil && err == nil {
				err = e
			}
		}
	}
	return
}

// Files saves each snapshot to dirout using the encoder of the simulation; e.g. gob or json
type Files struct {
	DirOut  string // directory for output
	EncType string // encoder type
	Verbose bool   // show messages
}

// Report implements fem.Reporter
func (o Files) Report(s *fem.Snapshot) error {
	return fem.SaveSnapshot(s, o.DirOut, o.EncType, o.Verbose)
}
