// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

// OutFunc is called after each converged step
//  its -- number of Newton iterations of the step (largest among domains)
type OutFunc func(tc *TimeControl, its int) (err error)

// Solver implements the actual solver (time loop)
type Solver interface {
	Run(tc *TimeControl, out OutFunc) (err error)
}

// allocators holds all available solvers
var allocators = make(map[string]func(doms []*Domain, sum *Summary, showMsg bool) Solver)
