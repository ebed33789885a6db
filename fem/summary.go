// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"bytes"
	"os"

	"github.com/cpmech/gosl/chk"
)

// Summary records summary of outputs
type Summary struct {

	// main data
	Nproc    int       // number of processors used in last run; equal to 1 if not distributed
	Key      string    // simulation key
	DirOut   string    // directory where results are stored
	OutTimes []float64 // [nOutTimes] output times
	Success  bool      // the run finished without errors
	Error    string    // message of error stopping the run
	CPUtime  string    // elapsed wall time

	// per step
	Iters  []int     // number of Newton iterations
	Norms  []float64 // final scaled RMS norm of corrections
	Nclamp []int     // number of integration points on the plateau of the locking function
}

// AddStep records the data of one converged step
func (o *Summary) AddStep(its int, norm float64, nclamp int) {
	o.Iters = append(o.Iters, its)
	o.Norms = append(o.Norms, norm)
	o.Nclamp = append(o.Nclamp, nclamp)
}

// Save saves summary to disc
func (o Summary) Save(dirout, fnkey, enctype string, nproc, proc int, verbose bool) (err error) {

	// skip if not root
	if proc != 0 {
		return
	}

	// set flags before saving
	o.Nproc = nproc
	o.Key = fnkey
	o.DirOut = dirout

	// buffer and encoder
	var buf bytes.Buffer
	enc := GetEncoder(&buf, enctype)

	// encode summary
	err = enc.Encode(o)
	if err != nil {
		return chk.Err("cannot encode summary\n%v", err)
	}

	// save file
	fn := out_sum_path(dirout, fnkey, enctype)
	return save_file(fn, &buf, verbose)
}

// Read reads summary back
func (o *Summary) Read(dirout, fnkey, enctype string) (err error) {
	fn := out_sum_path(dirout, fnkey, enctype)
	fil, err := os.Open(fn)
	if err != nil {
		return
	}
	defer fil.Close()
	dec := GetDecoder(fil, enctype)
	err = dec.Decode(o)
	if err != nil {
		return chk.Err("cannot decode summary\n%v", err)
	}
	return
}
