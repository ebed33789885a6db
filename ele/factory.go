// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/SolidMechanicsCoupledTheories/SolidMechanicsCoupledTheories.github.io/inp"
	"github.com/cpmech/gosl/chk"
)

// InfoFuncType defines a function that returns the dofs of an element type
type InfoFuncType func(sim *inp.Simulation, cell *inp.Cell, edat *inp.ElemData) *Info

// AllocatorType defines a function that allocates an element
type AllocatorType func(sim *inp.Simulation, cell *inp.Cell, edat *inp.ElemData, x [][]float64) (Element, error)

// GetInfo returns the dofs per vertex of the element on cell
func GetInfo(cell *inp.Cell, reg *inp.Region, sim *inp.Simulation) (info *Info, err error) {
	edat, err := elemData(cell, reg)
	if err != nil {
		return
	}
	fcn, ok := infofactory[edat.Type]
	if !ok {
		return nil, chk.Err("element type %q of cell %d has no info function", edat.Type, cell.Id)
	}
	if info = fcn(sim, cell, edat); info == nil {
		err = chk.Err("element type %q does not support cell %d of type %q", edat.Type, cell.Id, cell.Type)
	}
	return
}

// New allocates the element on cell
func New(cell *inp.Cell, reg *inp.Region, sim *inp.Simulation) (e Element, err error) {
	edat, err := elemData(cell, reg)
	if err != nil {
		return
	}
	fcn, ok := allocators[edat.Type]
	if !ok {
		return nil, chk.Err("element type %q of cell %d has no allocator", edat.Type, cell.Id)
	}
	e, err = fcn(sim, cell, edat, BuildCoordsMatrix(cell, reg.Msh))
	if err != nil {
		return nil, chk.Err("cannot allocate %q element of cell %d:\n%v", edat.Type, cell.Id, err)
	}
	return
}

// SetInfoFunc registers the info function of an element type. Called from init functions
func SetInfoFunc(elementName string, fcn InfoFuncType) {
	if _, ok := infofactory[elementName]; ok {
		chk.Panic("info function for %q is already registered", elementName)
	}
	infofactory[elementName] = fcn
}

// SetAllocator registers the allocator of an element type. Called from init functions
func SetAllocator(elementName string, fcn AllocatorType) {
	if _, ok := allocators[elementName]; ok {
		chk.Panic("allocator for %q is already registered", elementName)
	}
	allocators[elementName] = fcn
}

// elemData finds the element data matching the tag of cell
func elemData(cell *inp.Cell, reg *inp.Region) (*inp.ElemData, error) {
	edat := reg.Etag2data(cell.Tag)
	if edat == nil {
		return nil, chk.Err("region has no element data for tag %d of cell %d", cell.Tag, cell.Id)
	}
	return edat, nil
}

var (
	infofactory = make(map[string]InfoFuncType)  // element type => info function
	allocators  = make(map[string]AllocatorType) // element type => allocator
)
