// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"os"
	"path/filepath"

	"github.com/SolidMechanicsCoupledTheories/SolidMechanicsCoupledTheories.github.io/fem"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/xuri/excelize/v2"
)

// sheet names
const (
	SheetHistory = "History" // time history of averages
	SheetNodes   = "Nodes"   // nodal values of the last snapshot
)

// Xlsx records the time history and writes a workbook when closed
type Xlsx struct {
	History        // recorded data
	Fn      string // filename path; e.g. /tmp/gel/cube.xlsx
	Verbose bool   // show messages
}

// Report implements fem.Reporter
func (o *Xlsx) Report(s *fem.Snapshot) error {
	o.Add(s)
	return nil
}

// Close writes the workbook
func (o *Xlsx) Close() (err error) {
	f := excelize.NewFile()
	defer f.Close()

	// history
	f.SetSheetName("Sheet1", SheetHistory)
	sw, err := f.NewStreamWriter(SheetHistory)
	if err != nil {
		return chk.Err("cannot create stream writer for %q:\n%v", SheetHistory, err)
	}
	avgKeys := fem.AvgKeys()
	header := []interface{}{"t", "step", "iterations", "nclamp"}
	for _, key := range avgKeys {
		header = append(header, "avg("+key+")")
	}
	err = sw.SetRow("A1", header)
	if err != nil {
		return
	}
	for i := 0; i < o.Len(); i++ {
		row := []interface{}{o.T[i], o.Steps[i], o.Iters[i], o.Nclamp[i]}
		for _, key := range avgKeys {
			row = append(row, o.Avg[key][i])
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		err = sw.SetRow(cell, row)
		if err != nil {
			return
		}
	}
	err = sw.Flush()
	if err != nil {
		return
	}

	// nodal values of last snapshot
	if o.Last != nil {
		_, err = f.NewSheet(SheetNodes)
		if err != nil {
			return
		}
		sw, err = f.NewStreamWriter(SheetNodes)
		if err != nil {
			return chk.Err("cannot create stream writer for %q:\n%v", SheetNodes, err)
		}
		keys := o.Last.NodeKeys()
		header = []interface{}{"vid"}
		for _, key := range keys {
			header = append(header, key)
		}
		err = sw.SetRow("A1", header)
		if err != nil {
			return
		}
		var nverts int
		if len(keys) > 0 {
			nverts = len(o.Last.Nodes[keys[0]])
		}
		for vid := 0; vid < nverts; vid++ {
			row := []interface{}{vid}
			for _, key := range keys {
				row = append(row, o.Last.Nodes[key][vid])
			}
			cell, _ := excelize.CoordinatesToCellName(1, vid+2)
			err = sw.SetRow(cell, row)
			if err != nil {
				return
			}
		}
		err = sw.Flush()
		if err != nil {
			return
		}
	}

	// save
	err = os.MkdirAll(filepath.Dir(o.Fn), 0777)
	if err != nil {
		return chk.Err("cannot create directory for file %q\n%v", o.Fn, err)
	}
	err = f.SaveAs(o.Fn)
	if err != nil {
		return chk.Err("cannot save workbook %q\n%v", o.Fn, err)
	}
	if o.Verbose {
		io.Pfblue2("file <%s> written\n", o.Fn)
	}
	return
}
