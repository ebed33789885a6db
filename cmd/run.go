// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"github.com/SolidMechanicsCoupledTheories/SolidMechanicsCoupledTheories.github.io/fem"
	"github.com/SolidMechanicsCoupledTheories/SolidMechanicsCoupledTheories.github.io/out"
	"github.com/cpmech/gosl/io"
	"github.com/spf13/cobra"
)

// RunOptions holds the flags of the run command
type RunOptions struct {
	Alias   string // word appended to the simulation key
	Erase   bool   // erase previous results
	Verbose bool   // show messages
	Files   bool   // save snapshots to dirout
	Log     bool   // print one line per snapshot
	Xlsx    string // workbook with the time history; empty => none
	Plot    string // figure with the time history; empty => none
}

var runOpts RunOptions

var runCmd = &cobra.Command{
	Use:   "run <file.sim>",
	Short: "Run a simulation",
	Long: `Run all stages of the simulation defined in a .sim file.

Snapshots of the converged states are saved to the output directory (data.dirout)
at t=0 and after every time step. A summary with the number of iterations per step
is saved if data.summary is true, even if the simulation fails.

Examples:
  gel run examples/swelling_cube/cube.sim --xlsx /tmp/gel/cube.xlsx --plot /tmp/gel/cube.png

  # parallel run; the number of processors must match the number of partitions
  mpirun -np 2 gel run cube-2parts.sim`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunSim(args[0], &runOpts)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runOpts.Alias, "alias", "a", "", "word appended to the simulation key")
	runCmd.Flags().BoolVarP(&runOpts.Erase, "erase", "e", true, "erase previous results")
	runCmd.Flags().BoolVarP(&runOpts.Verbose, "verbose", "v", true, "show messages")
	runCmd.Flags().BoolVar(&runOpts.Files, "files", true, "save snapshots to the output directory")
	runCmd.Flags().BoolVar(&runOpts.Log, "log", false, "print one line per snapshot")
	runCmd.Flags().StringVar(&runOpts.Xlsx, "xlsx", "", "write time history to xlsx workbook")
	runCmd.Flags().StringVar(&runOpts.Plot, "plot", "", "plot time history of averages; e.g. cube.png")
}

// RunSim runs the simulation in simfile
func RunSim(simfile string, opts *RunOptions) (err error) {

	// allocate
	main, err := fem.NewMain(simfile, opts.Alias, opts.Erase, opts.Verbose)
	if err != nil {
		return
	}
	if main.ShowMsg {
		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"simulation file", "simfile", simfile,
			"erase previous results", "erase", opts.Erase,
			"save snapshots", "files", opts.Files,
			"workbook", "xlsx", opts.Xlsx,
			"figure", "plot", opts.Plot,
			"number of processors", "nproc", main.Nproc,
		))
	}

	// reporters
	var rep out.Multi
	if opts.Files {
		rep = append(rep, out.Files{DirOut: main.Sim.DirOut, EncType: main.Sim.EncType, Verbose: false})
	}
	if opts.Log {
		rep = append(rep, out.Log{})
	}
	if opts.Xlsx != "" {
		rep = append(rep, &out.Xlsx{Fn: opts.Xlsx, Verbose: main.ShowMsg})
	}
	if opts.Plot != "" {
		rep = append(rep, &out.Plot{Fn: opts.Plot, Verbose: main.ShowMsg})
	}

	// run
	return main.Run(rep)
}
