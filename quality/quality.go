// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package quality measures how evenly a point set covers its sphere, using
// the spherical Voronoi diagram of the point directions.
package quality

import (
	"errors"
	"fmt"
	"math"

	"github.com/2dChan/deserno"
	"github.com/2dChan/deserno/s2delaunay"
	"github.com/golang/geo/s2"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	defaultJitter = 1e-9
	defaultEps    = 1e-12

	// Relative tolerance of the cell area sum against the sphere area.
	areaSumTolerance = 1e-6
)

// ErrTooFewPoints is returned when the set cannot be triangulated.
var ErrTooFewPoints = errors.New("quality: at least 4 points are required")

// ErrDegenerate is returned when the cells do not tile the sphere, as for
// sets whose points all lie on one great circle.
var ErrDegenerate = errors.New("quality: degenerate point set")

type Options struct {
	Eps    float64
	Jitter float64
	Seed   int64
}

type Option func(*Options) error

// WithEps sets the hull tolerance of the triangulation.
func WithEps(eps float64) Option {
	return func(o *Options) error {
		if eps <= 0 {
			return fmt.Errorf("WithEps: eps must be positive, got %v", eps)
		}
		o.Eps = eps
		return nil
	}
}

// WithJitter sets the perturbation applied to the hull input. Generated
// bands place many points on common circles, so it should stay positive
// for Deserno sets.
func WithJitter(amount float64, seed int64) Option {
	return func(o *Options) error {
		if amount < 0 {
			return fmt.Errorf("WithJitter: amount must be non-negative, got %v", amount)
		}
		o.Jitter = amount
		o.Seed = seed
		return nil
	}
}

// Stats summarizes a sample.
type Stats struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// CV returns the coefficient of variation StdDev/Mean.
func (s Stats) CV() float64 {
	if s.Mean == 0 {
		return 0
	}
	return s.StdDev / s.Mean
}

func summarize(x []float64) Stats {
	mean, std := stat.MeanStdDev(x, nil)
	return Stats{
		Mean:   mean,
		StdDev: std,
		Min:    floats.Min(x),
		Max:    floats.Max(x),
	}
}

// Report describes the coverage of a point set on a sphere of radius Radius.
type Report struct {
	Radius float64
	Points int
	// TargetArea is the sphere area divided by the number of points.
	TargetArea float64

	// CellAreas holds the Voronoi cell area of every point.
	CellAreas []float64
	// Spacing holds the great-circle distance from every point to its
	// nearest neighbor.
	Spacing []float64

	Area        Stats
	NearestDist Stats

	Diagram *Diagram
}

// Cells returns the Voronoi cell outlines, indexed like the points.
func (r *Report) Cells() [][]s2.Point {
	return r.Diagram.Polygons()
}

// Analyze computes the coverage report of ps.
func Analyze(ps *deserno.PointSet, setters ...Option) (*Report, error) {
	opts := Options{
		Eps:    defaultEps,
		Jitter: defaultJitter,
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}

	n := ps.Len()
	if n < 4 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPoints, n)
	}

	d, err := NewDiagram(ps.Directions(),
		s2delaunay.WithEps(opts.Eps),
		s2delaunay.WithJitter(opts.Jitter, opts.Seed),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDegenerate, err)
	}

	r2 := ps.Radius * ps.Radius
	rep := &Report{
		Radius:     ps.Radius,
		Points:     n,
		TargetArea: 4 * math.Pi * r2 / float64(n),
		CellAreas:  make([]float64, n),
		Spacing:    make([]float64, n),
		Diagram:    d,
	}
	for i := range n {
		c := Cell{idx: i, d: d}
		rep.CellAreas[i] = c.Area() * r2
		_, angle := c.NearestNeighbor()
		rep.Spacing[i] = angle.Radians() * ps.Radius
	}
	sphereArea := 4 * math.Pi * r2
	if sum := floats.Sum(rep.CellAreas); !(math.Abs(sum-sphereArea) <= areaSumTolerance*sphereArea) {
		return nil, fmt.Errorf("%w: cell areas sum to %v, want %v", ErrDegenerate, sum, sphereArea)
	}
	rep.Area = summarize(rep.CellAreas)
	rep.NearestDist = summarize(rep.Spacing)

	return rep, nil
}
