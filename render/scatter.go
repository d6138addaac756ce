// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package render draws point sets as static images.
package render

import (
	"fmt"
	"io"
	"math"
	"sort"

	svg "github.com/ajstarks/svgo"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
)

const (
	defaultSize = 800

	boxStyle    = "stroke:rgb(170,170,170);stroke-width:1"
	labelStyle  = "font-family:sans-serif;font-size:16px;fill:rgb(60,60,60);text-anchor:middle"
	tickStyle   = "font-family:sans-serif;font-size:11px;fill:rgb(120,120,120);text-anchor:middle"
	pointStyle  = "fill:rgb(31,119,180);fill-opacity:0.5"
	pointRadius = 3
)

// errWriter keeps the first write error; svgo drops them.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}

type ScatterOptions struct {
	Lo, Hi        float64
	Elev, Azim    s1.Angle
	Width, Height int
}

type ScatterOption func(*ScatterOptions) error

// WithLimits sets the axis range shared by all three axes.
func WithLimits(lo, hi float64) ScatterOption {
	return func(o *ScatterOptions) error {
		if !(lo < hi) {
			return fmt.Errorf("WithLimits: want lo < hi, got [%v %v]", lo, hi)
		}
		o.Lo, o.Hi = lo, hi
		return nil
	}
}

// WithView sets the camera elevation above the xy plane and its azimuth
// around the z axis.
func WithView(elev, azim s1.Angle) ScatterOption {
	return func(o *ScatterOptions) error {
		o.Elev, o.Azim = elev, azim
		return nil
	}
}

// WithSize sets the image size in pixels.
func WithSize(width, height int) ScatterOption {
	return func(o *ScatterOptions) error {
		if width <= 0 || height <= 0 {
			return fmt.Errorf("WithSize: size must be positive, got %dx%d", width, height)
		}
		o.Width, o.Height = width, height
		return nil
	}
}

type camera struct {
	opts    ScatterOptions
	scale   float64
	sinA    float64
	cosA    float64
	sinE    float64
	cosE    float64
	centerX float64
	centerY float64
}

func newCamera(opts ScatterOptions) camera {
	c := camera{
		opts:    opts,
		sinA:    math.Sin(opts.Azim.Radians()),
		cosA:    math.Cos(opts.Azim.Radians()),
		sinE:    math.Sin(opts.Elev.Radians()),
		cosE:    math.Cos(opts.Elev.Radians()),
		centerX: float64(opts.Width) / 2,
		centerY: float64(opts.Height) / 2,
	}
	// The unit cube spans at most 2√3 on screen; keep a margin for labels.
	c.scale = 0.8 * float64(min(opts.Width, opts.Height)) / (2 * math.Sqrt(3))
	return c
}

// normalize maps the axis limits to [-1, 1].
func (c camera) normalize(v r3.Vector) r3.Vector {
	mid := (c.opts.Lo + c.opts.Hi) / 2
	half := (c.opts.Hi - c.opts.Lo) / 2
	return r3.Vector{X: (v.X - mid) / half, Y: (v.Y - mid) / half, Z: (v.Z - mid) / half}
}

// project returns screen coordinates and the depth towards the viewer.
func (c camera) project(v r3.Vector) (int, int, float64) {
	n := c.normalize(v)
	u := -n.X*c.sinA + n.Y*c.cosA
	w := n.X*c.cosA + n.Y*c.sinA
	up := -w*c.sinE + n.Z*c.cosE
	depth := w*c.cosE + n.Z*c.sinE
	return int(math.Round(c.centerX + u*c.scale)), int(math.Round(c.centerY - up*c.scale)), depth
}

// Scatter3D draws pts as an orthographic 3D scatter plot inside the axis
// box. Points are painted from back to front.
func Scatter3D(w io.Writer, pts []r3.Vector, setters ...ScatterOption) error {
	opts := ScatterOptions{
		Lo:     -1,
		Hi:     1,
		Elev:   30 * s1.Degree,
		Azim:   -60 * s1.Degree,
		Width:  defaultSize,
		Height: defaultSize,
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return err
		}
	}
	cam := newCamera(opts)

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(opts.Width, opts.Height)
	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:rgb(255,255,255)")

	drawBox(canvas, cam)

	type screenPoint struct {
		x, y  int
		depth float64
	}
	sp := make([]screenPoint, len(pts))
	for i, p := range pts {
		x, y, d := cam.project(p)
		sp[i] = screenPoint{x, y, d}
	}
	sort.SliceStable(sp, func(i, j int) bool { return sp[i].depth < sp[j].depth })
	for _, p := range sp {
		canvas.Circle(p.x, p.y, pointRadius, pointStyle)
	}

	canvas.End()
	if ew.err != nil {
		return fmt.Errorf("render: %w", ew.err)
	}
	return nil
}

func drawBox(canvas *svg.SVG, cam camera) {
	lo, hi := cam.opts.Lo, cam.opts.Hi
	corner := func(i int) r3.Vector {
		v := r3.Vector{X: lo, Y: lo, Z: lo}
		if i&1 != 0 {
			v.X = hi
		}
		if i&2 != 0 {
			v.Y = hi
		}
		if i&4 != 0 {
			v.Z = hi
		}
		return v
	}
	// Corners differing in one bit share an edge.
	for i := range 8 {
		for _, bit := range []int{1, 2, 4} {
			j := i | bit
			if j == i {
				continue
			}
			x1, y1, _ := cam.project(corner(i))
			x2, y2, _ := cam.project(corner(j))
			canvas.Line(x1, y1, x2, y2, boxStyle)
		}
	}

	mid := (lo + hi) / 2
	pad := (hi - lo) * 0.18
	labels := []struct {
		text string
		at   r3.Vector
	}{
		{"x_axis", r3.Vector{X: mid, Y: lo - pad, Z: lo - pad}},
		{"y_axis", r3.Vector{X: hi + pad, Y: mid, Z: lo - pad}},
		{"z_axis", r3.Vector{X: lo - pad, Y: lo - pad, Z: mid}},
	}
	for _, l := range labels {
		x, y, _ := cam.project(l.at)
		canvas.Text(x, y, l.text, labelStyle)
	}

	tick := (hi - lo) * 0.06
	ticks := []r3.Vector{
		{X: lo, Y: lo - tick, Z: lo - tick}, {X: hi, Y: lo - tick, Z: lo - tick},
		{X: hi + tick, Y: lo, Z: lo - tick}, {X: hi + tick, Y: hi, Z: lo - tick},
		{X: lo - tick, Y: lo - tick, Z: lo}, {X: lo - tick, Y: lo - tick, Z: hi},
	}
	for i, at := range ticks {
		v := lo
		if i%2 == 1 {
			v = hi
		}
		x, y, _ := cam.project(at)
		canvas.Text(x, y, fmt.Sprintf("%g", v), tickStyle)
	}
}
