// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"os"
	"path/filepath"

	"github.com/SolidMechanicsCoupledTheories/SolidMechanicsCoupledTheories.github.io/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/spf13/cobra"
)

var (
	meshL      float64
	meshNdiv   int
	meshCtype  string
	meshNparts int
	meshOut    string
)

var meshCmd = &cobra.Command{
	Use:   "mesh",
	Short: "Generate the mesh of a cube",
	Long: `Generate the structured mesh of a cube with edge length L and write it as a .msh file.

Faces are tagged with -10 (x=0), -11 (x=L), -20 (y=0), -21 (y=L), -30 (z=0) and -31 (z=L).
Cells are tagged with -1 and split into slabs along x when more than one partition is requested.

Examples:
  gel mesh --l 2.5 --ndiv 10 --ctype hex20 -o /tmp/gel/cube.msh`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return WriteCubeMesh(meshOut, meshL, meshNdiv, meshCtype, meshNparts)
	},
}

func init() {
	rootCmd.AddCommand(meshCmd)
	meshCmd.Flags().Float64Var(&meshL, "l", 1, "edge length")
	meshCmd.Flags().IntVarP(&meshNdiv, "ndiv", "n", 2, "number of divisions along each direction")
	meshCmd.Flags().StringVarP(&meshCtype, "ctype", "c", "hex20", "cell type: hex8 or hex20")
	meshCmd.Flags().IntVarP(&meshNparts, "nparts", "p", 1, "number of partitions")
	meshCmd.Flags().StringVarP(&meshOut, "output", "o", "", "output file [required]")
	meshCmd.MarkFlagRequired("output")
}

// WriteCubeMesh generates a cube mesh and writes it to fn
func WriteCubeMesh(fn string, L float64, ndiv int, ctype string, nparts int) (err error) {
	msh, err := inp.GenCube(L, ndiv, ctype, nparts)
	if err != nil {
		return
	}
	err = os.MkdirAll(filepath.Dir(fn), 0777)
	if err != nil {
		return chk.Err("cannot create directory for file %q\n%v", fn, err)
	}
	err = os.WriteFile(fn, []byte(io.Sf("%v\n", msh)), 0644)
	if err != nil {
		return chk.Err("cannot write file %q\n%v", fn, err)
	}
	io.Pfblue2("file <%s> written\n", fn)
	return
}
