// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/SolidMechanicsCoupledTheories/SolidMechanicsCoupledTheories.github.io/cmd"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
)

func main() {
	mpi.Start()
	err := cmd.Execute()
	if err != nil && (!mpi.IsOn() || mpi.WorldRank() == 0) {
		io.PfRed("\nERROR: %v\n", err)
	}
	mpi.Stop()
	if err != nil {
		os.Exit(1)
	}
}
