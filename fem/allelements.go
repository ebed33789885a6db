// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/SolidMechanicsCoupledTheories/SolidMechanicsCoupledTheories.github.io/ele/gel"
)

// enforce loading of all elements
func init() {
	_ = gel.Gel{}
}
