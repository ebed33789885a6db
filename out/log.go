// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	goio "io"
	"os"

	"github.com/SolidMechanicsCoupledTheories/SolidMechanicsCoupledTheories.github.io/fem"
	"github.com/cpmech/gosl/io"
)

// Log prints one line per snapshot
type Log struct {
	W goio.Writer // writer; nil => standard output
}

// Report implements fem.Reporter
func (o Log) Report(s *fem.Snapshot) (err error) {
	w := o.W
	if w == nil {
		w = os.Stdout
	}
	l := io.Sf("> %s r%d: out %4d  step %4d  t = %-12g its = %2d  avg(c) = %-13.6e avg(J) = %-13.6e max(vm) = %-13.6e",
		s.Name, s.Region, s.Index, s.Step, s.Time, s.Iterations, s.Avg["c"], s.Avg["J"], s.Avg["vmmax"])
	if s.Nclamp > 0 {
		l += io.Sf("  nclamp = %d", s.Nclamp)
	}
	_, err = goio.WriteString(w, l+"\n")
	return
}
