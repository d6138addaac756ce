// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package quality

import (
	"fmt"
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Cell is a view of one Voronoi cell in a Diagram.
// The cell's index corresponds to the index of its site in the Diagram's Sites.
type Cell struct {
	idx int
	d   *Diagram
}

// SiteIndex returns the index of the site in the Diagram's Sites.
func (c Cell) SiteIndex() int {
	return c.idx
}

// Site returns the site point of the cell.
func (c Cell) Site() s2.Point {
	return c.d.Sites[c.idx]
}

// NumVertices returns the number of vertices in the cell.
// This equals the number of neighbors.
func (c Cell) NumVertices() int {
	return c.d.CellOffsets[c.idx+1] - c.d.CellOffsets[c.idx]
}

// VertexIndices returns the indices of the vertices that form the cell in the Diagram's Vertices,
// sorted in counter-clockwise order when looking out of the sphere.
func (c Cell) VertexIndices() []int {
	return c.d.CellVertices[c.d.CellOffsets[c.idx]:c.d.CellOffsets[c.idx+1]]
}

// Vertex returns the vertex at the specified index.
// It returns an error if the index is out of range.
func (c Cell) Vertex(i int) (s2.Point, error) {
	start := c.d.CellOffsets[c.idx]
	end := c.d.CellOffsets[c.idx+1]
	if i < 0 || i >= end-start {
		return s2.Point{}, fmt.Errorf("Vertex: index %d out of range [0 %d)", i, end-start)
	}
	return c.d.Vertices[c.d.CellVertices[start+i]], nil
}

// NeighborIndices returns the indices of the neighboring cells in the Diagram,
// sorted in counter-clockwise order when looking out of the sphere.
func (c Cell) NeighborIndices() []int {
	return c.d.CellNeighbors[c.d.CellOffsets[c.idx]:c.d.CellOffsets[c.idx+1]]
}

// Area returns the area of the cell on the unit sphere.
//
// The cell is convex and contains its site, so it is the union of the
// triangles joining the site to consecutive vertices.
func (c Cell) Area() float64 {
	site := c.Site()
	idx := c.VertexIndices()
	area := 0.0
	for i, vIdx := range idx {
		next := idx[(i+1)%len(idx)]
		if vIdx == next {
			continue
		}
		area += s2.PointArea(site, c.d.Vertices[vIdx], c.d.Vertices[next])
	}
	return area
}

// NearestNeighbor returns the index of the closest other site and the
// angle to it. The closest site always shares an edge with the cell.
func (c Cell) NearestNeighbor() (int, s1.Angle) {
	site := c.Site()
	best, bestAngle := -1, s1.Angle(math.Inf(1))
	for _, nIdx := range c.NeighborIndices() {
		if a := site.Distance(c.d.Sites[nIdx]); a < bestAngle {
			best, bestAngle = nIdx, a
		}
	}
	return best, bestAngle
}
