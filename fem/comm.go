// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import "github.com/cpmech/gosl/mpi"

// Communicator exchanges data between the processors running partitions of the mesh
type Communicator interface {
	Rank() int                   // this processor number
	Size() int                   // number of processors
	AllReduceSum(x, w []float64) // x := Σ_procs x; w is a workspace with len(w) ≥ len(x)
	BcastFromRoot(x []float64)   // x := x @ root
	MpiComm() *mpi.Communicator  // underlying MPI communicator; nil if serial
}

// NewCommunicator returns a communicator. A serial (no-op) one is returned if MPI is off or
// there is only one processor
func NewCommunicator() Communicator {
	if mpi.IsOn() && mpi.WorldSize() > 1 {
		return &mpiComm{mpi.NewCommunicator(nil)}
	}
	return serialComm{}
}

// serialComm implements Communicator for one processor
type serialComm struct{}

func (o serialComm) Rank() int                   { return 0 }
func (o serialComm) Size() int                   { return 1 }
func (o serialComm) AllReduceSum(x, w []float64) {}
func (o serialComm) BcastFromRoot(x []float64)   {}
func (o serialComm) MpiComm() *mpi.Communicator  { return nil }

// mpiComm implements Communicator with MPI
type mpiComm struct {
	comm *mpi.Communicator
}

func (o *mpiComm) Rank() int                  { return o.comm.Rank() }
func (o *mpiComm) Size() int                  { return o.comm.Size() }
func (o *mpiComm) BcastFromRoot(x []float64)  { o.comm.BcastFromRoot(x) }
func (o *mpiComm) MpiComm() *mpi.Communicator { return o.comm }

func (o *mpiComm) AllReduceSum(x, w []float64) {
	n := len(x)
	copy(w[:n], x)
	o.comm.AllReduceSum(x, w[:n])
}
