// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	goio "io"
	"os"

	"github.com/SolidMechanicsCoupledTheories/SolidMechanicsCoupledTheories.github.io/inp"
	"github.com/cpmech/gosl/io"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <file.sim>",
	Short: "Read a simulation file and print the interpreted data",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return CheckSim(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// CheckSim reads simfile and writes a report to w
func CheckSim(w goio.Writer, simfile string) (err error) {
	if w == nil {
		w = os.Stdout
	}
	sim, err := inp.ReadSim(simfile, "", false, false)
	if err != nil {
		return
	}
	_, err = goio.WriteString(w, io.Sf("key       = %s\ndirout    = %s\nencoder   = %s\n", sim.Key, sim.DirOut, sim.EncType))
	if err != nil {
		return
	}
	for i, reg := range sim.Regions {
		_, err = goio.WriteString(w, io.Sf("region %d  : %q nverts=%d ncells=%d nparts=%d\n", i, reg.Desc, len(reg.Msh.Verts), len(reg.Msh.Cells), reg.Msh.Nparts))
		if err != nil {
			return
		}
	}
	for _, mat := range sim.MatModels.Materials {
		_, err = goio.WriteString(w, io.Sf("material  : %s => %v\n", mat.Name, mat.Gel))
		if err != nil {
			return
		}
	}
	for i, stg := range sim.Stages {
		_, err = goio.WriteString(w, io.Sf("stage %d   : %q nsteps=%d dt=%g tf=%g\n", i, stg.Desc, stg.Control.Nsteps, stg.Control.Dt, stg.Control.Tf))
		if err != nil {
			return
		}
	}
	return sim.GetInfo(w)
}
