// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/SolidMechanicsCoupledTheories/SolidMechanicsCoupledTheories.github.io/fem"
	"github.com/SolidMechanicsCoupledTheories/SolidMechanicsCoupledTheories.github.io/inp"
	"github.com/SolidMechanicsCoupledTheories/SolidMechanicsCoupledTheories.github.io/out"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	io.Verbose = false
}

func Test_mesh01(t *testing.T) {
	dir := t.TempDir()
	rootCmd.SetArgs([]string{"mesh", "--l", "2", "--ndiv", "2", "--ctype", "hex8", "-o", filepath.Join(dir, "cube.msh")})
	require.NoError(t, rootCmd.Execute())

	msh, err := inp.ReadMsh(dir, "cube.msh")
	require.NoError(t, err)
	assert.Len(t, msh.Verts, 27)
	assert.Len(t, msh.Cells, 8)
	assert.InDelta(t, 2.0, msh.Xmax, 1e-15)
	assert.Len(t, msh.FaceTag2verts[inp.TagXmax], 9)

	assert.Error(t, WriteCubeMesh(filepath.Join(dir, "bad.msh"), 1, 0, "hex8", 1))
	assert.Error(t, WriteCubeMesh(filepath.Join(dir, "bad.msh"), 1, 2, "tri3", 1))
}

func Test_check01(t *testing.T) {
	var buf bytes.Buffer
	err := CheckSim(&buf, "../inp/data/cube.sim")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "key       = cube")
	assert.Contains(t, buf.String(), "nsteps=54")
	assert.Contains(t, buf.String(), "material  : gel")

	assert.Error(t, CheckSim(&buf, "../inp/data/nonexistent.sim"))
}

func Test_run01(t *testing.T) {

	// simulation with results in temporary directory
	dir := t.TempDir()
	b, err := os.ReadFile("../fem/data/homog.sim")
	require.NoError(t, err)
	simfile := filepath.Join(dir, "homog.sim")
	err = os.WriteFile(simfile, bytes.Replace(b, []byte("/tmp/gel/fem"), []byte(dir), 1), 0644)
	require.NoError(t, err)

	opts := &RunOptions{
		Alias: "cmd",
		Erase: true,
		Files: true,
		Xlsx:  filepath.Join(dir, "homog.xlsx"),
		Plot:  filepath.Join(dir, "homog.png"),
	}
	require.NoError(t, RunSim(simfile, opts))

	for _, fn := range []string{opts.Xlsx, opts.Plot} {
		info, err := os.Stat(fn)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}

	// results saved by Files
	sum, hist, err := out.LoadResults(dir, "homog-cmd", "json", 0)
	require.NoError(t, err)
	assert.True(t, sum.Success)
	assert.Len(t, sum.Iters, 20)
	require.Equal(t, 21, hist.Len())
	assert.InDelta(t, 100.0, hist.T[20], 1e-12)
	for i := 1; i < hist.Len(); i++ {
		assert.Greater(t, hist.Avg["c"][i], hist.Avg["c"][i-1])
	}
	s, err := fem.ReadSnapshot(dir, "homog-cmd", "json", 0, 20)
	require.NoError(t, err)
	assert.Equal(t, 20, s.Step)

	assert.Error(t, RunSim(filepath.Join(dir, "nonexistent.sim"), opts))
}
