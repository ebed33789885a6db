// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"github.com/SolidMechanicsCoupledTheories/SolidMechanicsCoupledTheories.github.io/fem"
	"github.com/cpmech/gosl/chk"
)

// LoadResults reads the summary and all snapshots of one region saved by Files
//  Input:
//   dirout  -- directory with results
//   key     -- simulation key; e.g. cube
//   enctype -- encoder type; e.g. "gob" or "json"
//   region  -- index of region
func LoadResults(dirout, key, enctype string, region int) (sum *fem.Summary, hist *History, err error) {
	sum = new(fem.Summary)
	err = sum.Read(dirout, key, enctype)
	if err != nil {
		return nil, nil, chk.Err("cannot read summary of %q:\n%v", key, err)
	}
	hist = &History{Region: region}
	for tidx := range sum.OutTimes {
		s, err := fem.ReadSnapshot(dirout, key, enctype, region, tidx)
		if err != nil {
			return nil, nil, err
		}
		hist.Add(s)
	}
	return
}
