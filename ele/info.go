// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

// Info holds all information required to set a simulation stage
type Info struct {
	Dofs [][]string        // solution variables PER NODE. ex for 2 nodes: [["ux", "uy", "uz", "p", "mu", "c"], ["ux", "uy", "uz"]]
	Y2F  map[string]string // maps "y" keys to "f" keys. ex: "ux" => "fx", "mu" => "jmu"
}
