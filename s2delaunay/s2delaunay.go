// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package s2delaunay computes the Delaunay triangulation of points on the
// unit sphere as the convex hull of the points.
package s2delaunay

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
	"github.com/markus-wa/quickhull-go/v2"
)

const (
	defaultEps = 1e-12
)

type Triangulation struct {
	Vertices  s2.PointVector
	Triangles [][3]int
	// NOTE: Sort in CCW per vertex(look out of sphere)
	IncidentTriangleIndices []int
	IncidentTriangleOffsets []int
}

// IncidentTriangles returns the indices of the triangles sharing vertex vIdx,
// sorted in counter-clockwise order when looking out of the sphere.
func (dt *Triangulation) IncidentTriangles(vIdx int) []int {
	if vIdx < 0 || vIdx+1 >= len(dt.IncidentTriangleOffsets) {
		panic("IncidentTriangles: vIdx out of range")
	}
	start := dt.IncidentTriangleOffsets[vIdx]
	end := dt.IncidentTriangleOffsets[vIdx+1]
	return dt.IncidentTriangleIndices[start:end]
}

// Neighbors returns the vertices joined to vIdx by an edge, in the same
// order as IncidentTriangles.
func (dt *Triangulation) Neighbors(vIdx int) []int {
	it := dt.IncidentTriangles(vIdx)
	out := make([]int, len(it))
	for i, tIdx := range it {
		out[i] = NextVertex(dt.Triangles[tIdx], vIdx)
	}
	return out
}

func (dt *Triangulation) TriangleVertices(tIdx int) (s2.Point, s2.Point, s2.Point) {
	if tIdx < 0 || tIdx >= len(dt.Triangles) {
		panic("TriangleVertices: tIdx out of bounds")
	}
	t := dt.Triangles[tIdx]
	return dt.Vertices[t[0]], dt.Vertices[t[1]], dt.Vertices[t[2]]
}

type TriangulationOptions struct {
	Eps float64
	// Jitter is the magnitude of the random displacement applied to the
	// hull input. Zero disables it.
	Jitter float64
	Seed   int64
}

type TriangulationOption func(*TriangulationOptions) error

func WithEps(eps float64) TriangulationOption {
	return func(o *TriangulationOptions) error {
		if eps <= 0 {
			return fmt.Errorf("WithEps: eps must be positive, got %v", eps)
		}
		o.Eps = eps
		return nil
	}
}

// WithJitter displaces every vertex by a pseudo-random vector of length
// at most amount before the hull is built. Vertices are kept exact in the
// result. Regular grids put four or more points on one circle, which the
// hull would otherwise merge into non-triangular faces.
func WithJitter(amount float64, seed int64) TriangulationOption {
	return func(o *TriangulationOptions) error {
		if amount < 0 {
			return fmt.Errorf("WithJitter: amount must be non-negative, got %v", amount)
		}
		o.Jitter = amount
		o.Seed = seed
		return nil
	}
}

// NOTE: All vertices must lie on a sphere.
func NewTriangulation(vertices s2.PointVector, setters ...TriangulationOption) (*Triangulation, error) {
	opts := TriangulationOptions{
		Eps: defaultEps,
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}

	numVertices := len(vertices)
	if numVertices < 4 {
		return nil,
			errors.New("s2delaunay: insufficient vertices for triangulation (minimum 4 required)")
	}
	numTriangles := 2 * (numVertices - 2)
	dt := &Triangulation{
		Vertices:                vertices,
		Triangles:               make([][3]int, numTriangles),
		IncidentTriangleIndices: make([]int, numTriangles*3),
		IncidentTriangleOffsets: make([]int, numVertices+1),
	}

	qh := new(quickhull.QuickHull)
	ch := qh.ConvexHull(hullInput(vertices, opts), true, true, opts.Eps)
	if len(ch.Indices) != numTriangles*3 {
		return nil, errors.New("s2delaunay: inconsistent number of indices returned from QuickHull")
	}

	for _, idx := range ch.Indices {
		dt.IncidentTriangleOffsets[idx+1]++
	}
	for i := range numVertices {
		dt.IncidentTriangleOffsets[i+1] += dt.IncidentTriangleOffsets[i]
	}

	nxt := make([]int, numVertices)
	copy(nxt, dt.IncidentTriangleOffsets[:numVertices])
	for i := range numTriangles {
		base := i * 3
		for j := range 3 {
			v := ch.Indices[base+j]
			dt.Triangles[i][j] = v
			dt.IncidentTriangleIndices[nxt[v]] = i
			nxt[v]++
		}
		sortTriangleVerticesCCW(&dt.Triangles[i], dt.Vertices)
	}

	for i := range numVertices {
		sortIncidentTriangleIndicesCCW(i, dt.IncidentTriangles(i), dt.Triangles)
	}

	return dt, nil
}

func hullInput(vertices s2.PointVector, opts TriangulationOptions) []r3.Vector {
	out := make([]r3.Vector, len(vertices))
	if opts.Jitter == 0 {
		for i, p := range vertices {
			out[i] = p.Vector
		}
		return out
	}

	//nolint:gosec
	random := rand.New(rand.NewSource(opts.Seed))
	for i, p := range vertices {
		d := r3.Vector{
			X: random.Float64()*2 - 1,
			Y: random.Float64()*2 - 1,
			Z: random.Float64()*2 - 1,
		}
		out[i] = p.Add(d.Mul(opts.Jitter / 2)).Normalize()
	}
	return out
}

func sortTriangleVerticesCCW(t *[3]int, v s2.PointVector) {
	p0, p1, p2 := v[t[0]], v[t[1]], v[t[2]]
	norm := p1.Sub(p0.Vector).Cross(p2.Sub(p0.Vector))
	if norm.Dot(p0.Vector) < 0 {
		t[1], t[2] = t[2], t[1]
	}
}

func sortIncidentTriangleIndicesCCW(vIdx int, incidentTris []int, tris [][3]int) {
	n := len(incidentTris)
	for i := 1; i < n; i++ {
		nxt := NextVertex(tris[incidentTris[i-1]], vIdx)
		for j := i; j < n; j++ {
			prv := PrevVertex(tris[incidentTris[j]], vIdx)
			if nxt == prv {
				incidentTris[i], incidentTris[j] = incidentTris[j], incidentTris[i]
				break
			}
		}
	}
}

func PrevVertex(t [3]int, vIdx int) int {
	switch vIdx {
	case t[0]:
		return t[2]
	case t[1]:
		return t[0]
	case t[2]:
		return t[1]
	}
	panic("PrevVertex: vIdx not in triangle")
}

func NextVertex(t [3]int, vIdx int) int {
	switch vIdx {
	case t[0]:
		return t[1]
	case t[1]:
		return t[2]
	case t[2]:
		return t[0]
	}
	panic("NextVertex: vIdx not in triangle")
}
