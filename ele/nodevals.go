// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

// NodeVals holds derived values at vertices computed by elements and averaged over
// all elements sharing a vertex
type NodeVals struct {
	Nverts int                  // number of vertices in mesh
	Vals   map[string][]float64 // key => [nverts] sum of values
	Cnt    map[string][]int     // key => [nverts] number of additions
}

// NewNodeVals returns a new NodeVals
func NewNodeVals(nverts int) *NodeVals {
	return &NodeVals{
		Nverts: nverts,
		Vals:   make(map[string][]float64),
		Cnt:    make(map[string][]int),
	}
}

// Alloc allocates the slices of key if not allocated yet
func (o *NodeVals) Alloc(key string) (slice []float64) {
	slice, ok := o.Vals[key]
	if !ok {
		slice = make([]float64, o.Nverts)
		o.Vals[key] = slice
		o.Cnt[key] = make([]int, o.Nverts)
	}
	return
}

// Add adds val to vertex vid. The slices are allocated in case key is new
func (o *NodeVals) Add(key string, vid int, val float64) {
	o.Alloc(key)[vid] += val
	o.Cnt[key][vid]++
}

// Average divides the sums by the number of additions
func (o *NodeVals) Average() {
	for key, slice := range o.Vals {
		cnt := o.Cnt[key]
		for i := 0; i < len(slice); i++ {
			if cnt[i] > 1 {
				slice[i] /= float64(cnt[i])
				cnt[i] = 1
			}
		}
	}
}

// Get returns the value of key at vertex vid
//  Note: this function returns 0 if 'key' is not found
func (o *NodeVals) Get(key string, vid int) float64 {
	if slice, ok := o.Vals[key]; ok {
		return slice[vid]
	}
	return 0
}
