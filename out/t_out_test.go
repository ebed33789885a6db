// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SolidMechanicsCoupledTheories/SolidMechanicsCoupledTheories.github.io/fem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// snapshots returns a synthetic time history with two regions
func snapshots(n int) (res []*fem.Snapshot) {
	for i := 0; i < n; i++ {
		for r := 0; r < 2; r++ {
			t := 200 * float64(i)
			res = append(res, &fem.Snapshot{
				Name:       "hist",
				Region:     r,
				Index:      i,
				Step:       i,
				Time:       t,
				Iterations: i % 4,
				Nodes: map[string][]float64{
					"ux": {0, t / 100},
					"c":  {0.001 + 0.001*t, 0.001 + 0.002*t},
				},
				Avg: map[string]float64{"c": 0.001 + 0.0015*t, "J": 1 + 0.0015*t, "phi": 1 / (1 + 0.0015*t), "vmmax": 10, "vol": 1},
			})
		}
	}
	return
}

func Test_history01(t *testing.T) {
	var hist History
	for _, s := range snapshots(5) {
		hist.Add(s)
	}
	require.Equal(t, 5, hist.Len())
	assert.Equal(t, []float64{0, 200, 400, 600, 800}, hist.T)
	assert.Equal(t, []int{0, 1, 2, 3, 0}, hist.Iters)
	assert.InDelta(t, 0.001+0.0015*800, hist.Avg["c"][4], 1e-15)
	assert.Equal(t, 0, hist.Last.Region)

	hist1 := History{Region: 1}
	for _, s := range snapshots(3) {
		hist1.Add(s)
	}
	require.Equal(t, 3, hist1.Len())
	assert.Equal(t, 1, hist1.Last.Region)
}

func Test_log01(t *testing.T) {
	var buf bytes.Buffer
	rep := Log{W: &buf}
	for _, s := range snapshots(2) {
		require.NoError(t, rep.Report(s))
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[2], "hist r0")
	assert.Contains(t, lines[2], "t = 200")
	assert.NotContains(t, lines[2], "nclamp")
}

func Test_xlsx01(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "res", "hist.xlsx")
	rep := &Xlsx{Fn: fn}
	for _, s := range snapshots(4) {
		require.NoError(t, rep.Report(s))
	}
	require.NoError(t, rep.Close())

	f, err := excelize.OpenFile(fn)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetHistory)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"t", "step", "iterations", "nclamp", "avg(c)", "avg(J)", "avg(phi)", "avg(vmmax)", "avg(vol)"}, rows[0])
	assert.Equal(t, "600", rows[4][0])
	assert.Equal(t, "3", rows[4][1])

	rows, err = f.GetRows(SheetNodes)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"vid", "ux", "c"}, rows[0])
	assert.Equal(t, "1", rows[2][0])
	assert.Equal(t, "6", rows[2][1])
}

func Test_plot01(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "hist.png")
	rep := &Plot{Fn: fn}
	assert.Error(t, rep.Close())
	for _, s := range snapshots(4) {
		require.NoError(t, rep.Report(s))
	}
	require.NoError(t, rep.Close())
	info, err := os.Stat(fn)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	bad := &Plot{Fn: fn, Keys: []string{"temperature"}}
	bad.Add(snapshots(1)[0])
	assert.Error(t, bad.Close())
}

type failing struct{ closed bool }

func (o *failing) Report(s *fem.Snapshot) error { return errors.New("cannot report") }
func (o *failing) Close() error                 { o.closed = true; return errors.New("cannot close") }

func Test_multi01(t *testing.T) {
	var hist History
	rec := &Xlsx{Fn: filepath.Join(t.TempDir(), "multi.xlsx")}
	fail := new(failing)
	rep := Multi{fem.ReporterFunc(func(s *fem.Snapshot) error { hist.Add(s); return nil }), rec, fail}

	s := snapshots(1)[0]
	assert.EqualError(t, rep.Report(s), "cannot report")
	assert.Equal(t, 1, hist.Len())
	assert.Equal(t, 1, rec.Len())

	assert.EqualError(t, rep.Close(), "cannot close")
	assert.True(t, fail.closed)
	_, err := os.Stat(rec.Fn)
	assert.NoError(t, err)
}

func Test_files01(t *testing.T) {
	dir := t.TempDir()
	rep := Files{DirOut: dir, EncType: "json"}
	sum := new(fem.Summary)
	for _, s := range snapshots(3) {
		require.NoError(t, rep.Report(s))
		if s.Region == 0 {
			sum.OutTimes = append(sum.OutTimes, s.Time)
		}
	}
	require.NoError(t, sum.Save(dir, "hist", "json", 1, 0, false))

	res, hist, err := LoadResults(dir, "hist", "json", 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 200, 400}, res.OutTimes)
	require.Equal(t, 3, hist.Len())
	assert.Equal(t, []float64{0, 200, 400}, hist.T)
	assert.Equal(t, 1, hist.Last.Region)
	assert.InDeltaSlice(t, []float64{0.001 + 0.4, 0.001 + 0.8}, hist.Last.Nodes["c"], 1e-15)

	_, _, err = LoadResults(dir, "nothing", "json", 0)
	assert.Error(t, err)
}
