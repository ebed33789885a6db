// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"time"

	"gonum.org/v1/gonum/floats"
)

// Reporter receives snapshots of converged states
type Reporter interface {
	Report(s *Snapshot) (err error)
}

// Snapshot holds a converged state at one instant
//  Nodal keys: "ux", "uy", "uz", "p", "mu", "c", "phi", "J", "P11", "P22", "P33", "lbar", "vm"
//  Average keys: "c", "J", "phi" (volume averages), "vmmax" (largest nodal von Mises stress)
//  and "vol" (volume of reference configuration)
type Snapshot struct {
	Name       string               // name of simulation (simulation key)
	Stamp      time.Time            // wall clock time when the snapshot was taken
	Region     int                  // index of region/domain
	Stage      int                  // index of stage
	Index      int                  // output index; 0 => initial state
	Step       int                  // step within stage; 0 => beginning of stage
	Time       float64              // simulation time
	Iterations int                  // number of Newton iterations of step
	Nclamp     int                  // number of integration points on the plateau of the locking function
	Nodes      map[string][]float64 // nodal values [nverts]
	Avg        map[string]float64   // averages
}

// NodeKeys returns the nodal keys available in this snapshot in canonical order
func (o *Snapshot) NodeKeys() (keys []string) {
	for _, key := range nodeKeys {
		if _, ok := o.Nodes[key]; ok {
			keys = append(keys, key)
		}
	}
	return
}

// Snapshot computes a snapshot of the current state
func (o *Domain) Snapshot() (s *Snapshot, err error) {

	// displacements and derived values at vertices
	N, err := o.NodeVals()
	if err != nil {
		return
	}
	nverts := len(o.Msh.Verts)
	s = &Snapshot{
		Stamp: time.Now(),
		Time:  o.Sol.T,
		Nodes: make(map[string][]float64),
		Avg:   make(map[string]float64),
	}
	for _, key := range []string{"ux", "uy", "uz"} {
		vals := make([]float64, nverts)
		for _, nod := range o.Nodes {
			if eq := nod.GetEq(key); eq >= 0 {
				vals[nod.Vert.Id] = o.Sol.Y[eq]
			}
		}
		s.Nodes[key] = vals
	}
	for key, vals := range N.Vals {
		s.Nodes[key] = vals
	}

	// averages
	integ, err := o.Integrate()
	if err != nil {
		return
	}
	vol := integ["vol"]
	s.Avg["vol"] = vol
	if vol > 0 {
		for _, key := range []string{"c", "J", "phi"} {
			s.Avg[key] = integ[key] / vol
		}
	}
	if vm, ok := s.Nodes["vm"]; ok && len(vm) > 0 {
		s.Avg["vmmax"] = floats.Max(vm)
	}
	return
}

// nodeKeys holds all nodal keys
var nodeKeys = []string{"ux", "uy", "uz", "p", "mu", "c", "phi", "J", "P11", "P22", "P33", "lbar", "vm"}

// derivedKeys holds the nodal keys computed by elements
var derivedKeys = nodeKeys[3:]

// avgKeys holds all average keys
var avgKeys = []string{"c", "J", "phi", "vmmax", "vol"}

// AvgKeys returns the average keys
func AvgKeys() []string { return avgKeys }

// ReporterFunc adapts a function to Reporter
type ReporterFunc func(s *Snapshot) error

// Report implements Reporter
func (f ReporterFunc) Report(s *Snapshot) error { return f(s) }
