// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/SolidMechanicsCoupledTheories/SolidMechanicsCoupledTheories.github.io/inp"
	"github.com/cpmech/gosl/io"
)

// Dof holds information about a degree-of-freedom == solution variable
type Dof struct {
	Key string // primary variable key. e.g. "ux", "p" or "mu"
	Eq  int    // equation number
}

// Node holds node dofs information
type Node struct {
	Dofs  []*Dof    // degrees-of-freedom == solution variables
	Vert  *inp.Vert // pointer to Vertex
	Owner int       // partition owning this node; i.e. the smallest partition of cells sharing it
}

// NewNode allocates a new Node
func NewNode(v *inp.Vert, owner int) *Node {
	return &Node{Vert: v, Owner: owner}
}

// AddDofAndEq adds a new dof to node if it does not exist yet
//  Output: next equation number
func (o *Node) AddDofAndEq(key string, eq int) (nexteq int) {
	if o.GetDof(key) != nil {
		return eq
	}
	o.Dofs = append(o.Dofs, &Dof{key, eq})
	return eq + 1
}

// GetDof returns the Dof structure for given Dof name (key)
//  Note: returns nil if key is not found
func (o *Node) GetDof(key string) *Dof {
	for _, d := range o.Dofs {
		if d.Key == key {
			return d
		}
	}
	return nil
}

// GetEq returns the equation number for given Dof name (key)
//  Note: returns -1 if key is not found
func (o *Node) GetEq(key string) (eq int) {
	if d := o.GetDof(key); d != nil {
		return d.Eq
	}
	return -1
}

// String returns the JSON representation of this node
func (o *Node) String() string {
	l := io.Sf("{\"vid\":%d, \"owner\":%d, \"dofs\":[", o.Vert.Id, o.Owner)
	for i, d := range o.Dofs {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("{\"key\":%q, \"eq\":%d}", d.Key, d.Eq)
	}
	return l + "] }"
}
