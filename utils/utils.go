// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package utils provides random reference point sets to compare against
// equidistributed ones.

package utils

import (
	"math"
	"math/rand"

	"github.com/2dChan/deserno"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// RandomDirections generates cnt random unit vectors.
// The seed parameter ensures reproducibility.
func RandomDirections(cnt int, seed int64) s2.PointVector {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	dirs := make(s2.PointVector, cnt)

	for i := range cnt {
		dirs[i] = s2.PointFromLatLng(s2.LatLng{
			Lat: s1.Angle((random.Float64() - 0.5) * math.Pi),
			Lng: s1.Angle((random.Float64()*2 - 1) * math.Pi),
		})
	}

	return dirs
}

// RandomPointSet returns cnt points drawn uniformly by area on the sphere
// of radius r, as a single band-less PointSet.
func RandomPointSet(cnt int, r float64, seed int64) *deserno.PointSet {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	ps := &deserno.PointSet{
		Radius:          r,
		Target:          cnt,
		EffectiveTarget: float64(cnt),
		AreaPerPoint:    4 * math.Pi * r * r / float64(cnt),
		Points:          make([]deserno.Spherical, cnt),
	}

	for i := range cnt {
		// cos(theta) uniform in [-1, 1] gives equal density per area.
		theta := math.Acos(1 - 2*random.Float64())
		phi := 2 * math.Pi * random.Float64()
		ps.Points[i] = deserno.Spherical{R: r, Theta: s1.Angle(theta), Phi: s1.Angle(phi)}
	}

	return ps
}
