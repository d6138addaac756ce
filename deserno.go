// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package deserno generates approximately equidistributed points on the
// surface of a sphere using the method of M. Deserno, "How to generate
// equidistributed points on the surface of a sphere" (2004).
//
// The polar angle is split into bands of equal height and every band
// receives a number of points proportional to its circumference, so that
// each point represents roughly the same surface area.
package deserno

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

var (
	// ErrInvalidCount is returned when the requested number of points is not positive.
	ErrInvalidCount = errors.New("deserno: point count must be positive")
	// ErrInvalidRadius is returned when the radius is not a positive finite number.
	ErrInvalidRadius = errors.New("deserno: radius must be positive and finite")
)

// Options holds the generator settings.
type Options struct {
	// RadiusCorrection multiplies the requested count by r² before the
	// area per point is derived.
	RadiusCorrection bool
}

// Option configures Generate and Count.
type Option func(*Options) error

// WithRadiusCorrection enables or disables the r² correction of the
// requested point count. It is enabled by default.
//
// With the correction the area per point is 4πr²/(N·r²) = 4π/N, so the
// layout is the one of the unit sphere scaled to r. This reproduces the
// reference outputs but double counts the radius; disable it to get
// Deserno's a = 4πr²/N.
func WithRadiusCorrection(enabled bool) Option {
	return func(o *Options) error {
		o.RadiusCorrection = enabled
		return nil
	}
}

func defaultOptions() Options {
	return Options{RadiusCorrection: true}
}

// Band is one circle of latitude of a PointSet.
type Band struct {
	Index int
	Theta s1.Angle
	// Start is the offset of the first point of the band in PointSet.Points.
	Start int
	// Count is the number of points on the band. It may be zero.
	Count int
}

// PointSet is the result of Generate. Points are ordered band by band from
// the north pole to the south pole, and by azimuth within a band.
type PointSet struct {
	Radius float64
	// Target is the requested number of points.
	Target int
	// EffectiveTarget is Target after the optional radius correction.
	EffectiveTarget float64

	AreaPerPoint float64
	Spacing      float64
	ThetaStep    float64
	PhiStep      float64

	Bands  []Band
	Points []Spherical
}

// Len returns the number of generated points.
func (ps *PointSet) Len() int {
	return len(ps.Points)
}

// NumBands returns the number of latitude bands.
func (ps *PointSet) NumBands() int {
	return len(ps.Bands)
}

// Band returns the band at the specified index.
// It returns an error if the index is out of range.
func (ps *PointSet) Band(i int) (Band, error) {
	if i < 0 || i >= len(ps.Bands) {
		return Band{}, fmt.Errorf("Band: index %d out of range [0 %d)", i, len(ps.Bands))
	}
	return ps.Bands[i], nil
}

// BandPoints returns the points of the band at the specified index.
// It returns an error if the index is out of range.
func (ps *PointSet) BandPoints(i int) ([]Spherical, error) {
	b, err := ps.Band(i)
	if err != nil {
		return nil, err
	}
	return ps.Points[b.Start : b.Start+b.Count], nil
}

// Cartesian converts all points to Cartesian coordinates, preserving order.
func (ps *PointSet) Cartesian() []r3.Vector {
	out := make([]r3.Vector, len(ps.Points))
	for i, p := range ps.Points {
		out[i] = ToCartesian(p)
	}
	return out
}

// Directions returns the unit direction of every point.
func (ps *PointSet) Directions() s2.PointVector {
	out := make(s2.PointVector, len(ps.Points))
	for i, p := range ps.Points {
		out[i] = p.Point()
	}
	return out
}

type layout struct {
	effectiveTarget float64
	area            float64
	spacing         float64
	mTheta          int
	dTheta          float64
	dPhi            float64
}

func newLayout(n int, r float64, setters ...Option) (layout, error) {
	if n <= 0 {
		return layout{}, fmt.Errorf("%w: got %d", ErrInvalidCount, n)
	}
	if !(r > 0) || math.IsInf(r, 1) {
		return layout{}, fmt.Errorf("%w: got %v", ErrInvalidRadius, r)
	}

	opts := defaultOptions()
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return layout{}, err
		}
	}

	l := layout{effectiveTarget: float64(n)}
	if opts.RadiusCorrection {
		l.effectiveTarget *= r * r
	}

	sphereArea := 4 * math.Pi * r * r
	l.area = sphereArea / l.effectiveTarget
	l.spacing = math.Sqrt(l.area)
	l.mTheta = int(math.Round(math.Pi / l.spacing))
	if l.mTheta == 0 {
		return l, nil
	}
	l.dTheta = math.Pi / float64(l.mTheta)
	l.dPhi = l.area / l.dTheta

	return l, nil
}

func (l layout) bandTheta(m int) float64 {
	return math.Pi * (float64(m) + 0.5) / float64(l.mTheta)
}

func (l layout) bandCount(theta float64) int {
	return int(math.Round(2 * math.Pi * math.Sin(theta) / l.dPhi))
}

func (l layout) count() int {
	total := 0
	for m := range l.mTheta {
		total += l.bandCount(l.bandTheta(m))
	}
	return total
}

// Count returns the number of points Generate would produce for the same
// arguments without building them.
func Count(n int, r float64, opts ...Option) (int, error) {
	l, err := newLayout(n, r, opts...)
	if err != nil {
		return 0, err
	}
	return l.count(), nil
}

// Generate places approximately n points on the sphere of radius r.
//
// The realized number of points is close to, but generally not equal to, n
// because band sizes are rounded to whole points. Bands whose size rounds to
// zero contribute no points.
//
// Band counts round halves away from zero (math.Round), unlike Python's
// round, which rounds halves to even.
func Generate(n int, r float64, opts ...Option) (*PointSet, error) {
	l, err := newLayout(n, r, opts...)
	if err != nil {
		return nil, err
	}

	ps := &PointSet{
		Radius:          r,
		Target:          n,
		EffectiveTarget: l.effectiveTarget,
		AreaPerPoint:    l.area,
		Spacing:         l.spacing,
		ThetaStep:       l.dTheta,
		PhiStep:         l.dPhi,
		Bands:           make([]Band, l.mTheta),
		Points:          make([]Spherical, 0, l.count()),
	}

	for m := range l.mTheta {
		theta := l.bandTheta(m)
		mPhi := l.bandCount(theta)
		ps.Bands[m] = Band{
			Index: m,
			Theta: s1.Angle(theta),
			Start: len(ps.Points),
			Count: mPhi,
		}
		for k := range mPhi {
			phi := 2 * math.Pi * float64(k) / float64(mPhi)
			ps.Points = append(ps.Points, Spherical{
				R:     r,
				Theta: s1.Angle(theta),
				Phi:   s1.Angle(phi),
			})
		}
	}

	return ps, nil
}
