// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package cmd implements the command line interface
package cmd

import (
	"github.com/cpmech/gosl/io"
	"github.com/spf13/cobra"
)

// version of this program
const Version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "gel",
	Short: "Transient swelling of gels by the finite element method",
	Long: `gel - finite element solver for the transient swelling of polymer gels

Large deformations of the polymer network are coupled with the transport of solvent.
The unknowns are the displacements, pressure, chemical potential and concentration
of solvent. Simulations are defined in JSON .sim files; see examples/swelling_cube.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		io.Pf("\ngel version %s\n", Version)
		io.Pf("Copyright 2016 The Gofem Authors. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n\n")
		io.Pf("Use 'gel --help' to see available commands.\n\n")
	},
}

// Execute adds all child commands to the root command and runs it
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
