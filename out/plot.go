// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"image/color"
	"os"
	"path/filepath"

	"github.com/SolidMechanicsCoupledTheories/SolidMechanicsCoupledTheories.github.io/fem"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Plot records the time history and draws the averages versus time when closed
type Plot struct {
	History          // recorded data
	Fn      string   // filename path with extension; e.g. /tmp/gel/cube.png
	Keys    []string // average keys to be plotted; nil => "c" and "J"
	Title   string   // title of plot
	Verbose bool     // show messages
}

// line colours
var plotColors = []color.Color{
	color.RGBA{R: 0, G: 0, B: 139, A: 255},
	color.RGBA{R: 220, G: 20, B: 60, A: 255},
	color.RGBA{R: 34, G: 139, B: 34, A: 255},
	color.RGBA{R: 255, G: 140, B: 0, A: 255},
	color.Black,
}

// Report implements fem.Reporter
func (o *Plot) Report(s *fem.Snapshot) error {
	o.Add(s)
	return nil
}

// Close draws and saves the figure
func (o *Plot) Close() (err error) {
	if o.Len() == 0 {
		return chk.Err("cannot plot history: no snapshot has been recorded")
	}
	keys := o.Keys
	if len(keys) == 0 {
		keys = []string{"c", "J"}
	}

	// plot
	p := plot.New()
	p.Title.Text = o.Title
	if p.Title.Text == "" && o.Last != nil {
		p.Title.Text = o.Last.Name
	}
	p.X.Label.Text = "time"
	p.Y.Label.Text = "volume average"
	p.Add(plotter.NewGrid())
	for i, key := range keys {
		vals, ok := o.Avg[key]
		if !ok {
			return chk.Err("cannot plot history: average %q is not available", key)
		}
		xys := make(plotter.XYs, o.Len())
		for j := 0; j < o.Len(); j++ {
			xys[j] = plotter.XY{X: o.T[j], Y: vals[j]}
		}
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return err
		}
		clr := plotColors[i%len(plotColors)]
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = clr
		points.GlyphStyle.Color = clr
		points.GlyphStyle.Radius = vg.Points(2)
		points.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(line, points)
		p.Legend.Add(key, line, points)
	}
	p.Legend.Top = true

	// save
	err = os.MkdirAll(filepath.Dir(o.Fn), 0777)
	if err != nil {
		return chk.Err("cannot create directory for file %q\n%v", o.Fn, err)
	}
	err = p.Save(8*vg.Inch, 6*vg.Inch, o.Fn)
	if err != nil {
		return chk.Err("cannot save figure %q\n%v", o.Fn, err)
	}
	if o.Verbose {
		io.Pfblue2("file <%s> written\n", o.Fn)
	}
	return
}
