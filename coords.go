// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package deserno

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Spherical is a point in spherical coordinates. Theta is the polar angle
// measured from the positive z axis, Phi the azimuth in the xy plane.
type Spherical struct {
	R     float64
	Theta s1.Angle
	Phi   s1.Angle
}

func (p Spherical) String() string {
	return fmt.Sprintf("(%v, %v, %v)", p.R, p.Theta.Radians(), p.Phi.Radians())
}

// Point returns the unit direction of p.
func (p Spherical) Point() s2.Point {
	v := ToCartesian(Spherical{R: 1, Theta: p.Theta, Phi: p.Phi})
	return s2.PointFromCoords(v.X, v.Y, v.Z)
}

// ToCartesian converts p to Cartesian coordinates:
//
//	x = r sin(theta) cos(phi)
//	y = r sin(theta) sin(phi)
//	z = r cos(theta)
func ToCartesian(p Spherical) r3.Vector {
	theta, phi := p.Theta.Radians(), p.Phi.Radians()
	return r3.Vector{
		X: p.R * math.Sin(theta) * math.Cos(phi),
		Y: p.R * math.Sin(theta) * math.Sin(phi),
		Z: p.R * math.Cos(theta),
	}
}

// FromCartesian is the inverse of ToCartesian. Phi is normalized to
// [0, 2π). The zero vector maps to the zero Spherical.
func FromCartesian(v r3.Vector) Spherical {
	r := v.Norm()
	if r == 0 {
		return Spherical{}
	}
	// Clamp rounding noise so acos stays defined.
	cosTheta := math.Max(-1, math.Min(1, v.Z/r))
	phi := math.Atan2(v.Y, v.X)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	if phi >= 2*math.Pi {
		phi = 0
	}
	return Spherical{
		R:     r,
		Theta: s1.Angle(math.Acos(cosTheta)),
		Phi:   s1.Angle(phi),
	}
}
