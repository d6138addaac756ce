// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package quality

import (
	"fmt"

	"github.com/2dChan/deserno/s2delaunay"
	"github.com/golang/geo/s2"
)

// Diagram is the spherical Voronoi diagram of a set of unit directions,
// the dual of their Delaunay triangulation.
type Diagram struct {
	Sites    s2.PointVector
	Vertices s2.PointVector

	// NOTE: Sort in CCW per Cell(look out of sphere)
	CellVertices []int
	// NOTE: Sort in CCW per Cell(look out of sphere)
	CellNeighbors []int
	CellOffsets   []int
}

// NewDiagram builds the Voronoi diagram of sites. The options are passed
// through to the triangulation.
func NewDiagram(sites s2.PointVector, opts ...s2delaunay.TriangulationOption) (*Diagram, error) {
	dt, err := s2delaunay.NewTriangulation(sites, opts...)
	if err != nil {
		return nil, err
	}

	numTriangles := len(dt.Triangles)
	d := &Diagram{
		Sites:         dt.Vertices,
		Vertices:      make(s2.PointVector, numTriangles),
		CellVertices:  dt.IncidentTriangleIndices,
		CellNeighbors: make([]int, len(dt.IncidentTriangleIndices)),
		CellOffsets:   dt.IncidentTriangleOffsets,
	}

	for i := range numTriangles {
		p0, p1, p2 := dt.TriangleVertices(i)
		d.Vertices[i] = triangleCircumcenter(p0, p1, p2)
	}

	for vIdx := range dt.Vertices {
		copy(d.CellNeighbors[dt.IncidentTriangleOffsets[vIdx]:], dt.Neighbors(vIdx))
	}

	return d, nil
}

// NumCells returns the number of cells, one per site.
func (d *Diagram) NumCells() int {
	return len(d.Sites)
}

// Cell returns the cell of the site at index i.
// It returns an error if the index is out of range.
func (d *Diagram) Cell(i int) (Cell, error) {
	if i < 0 || i >= len(d.Sites) {
		return Cell{}, fmt.Errorf("Cell: index %d out of range [0 %d)", i, len(d.Sites))
	}
	return Cell{idx: i, d: d}, nil
}

// Polygons returns the vertices of every cell in CCW order.
func (d *Diagram) Polygons() [][]s2.Point {
	out := make([][]s2.Point, d.NumCells())
	for i := range out {
		c := Cell{idx: i, d: d}
		poly := make([]s2.Point, 0, c.NumVertices())
		for _, vIdx := range c.VertexIndices() {
			poly = append(poly, d.Vertices[vIdx])
		}
		out[i] = poly
	}
	return out
}

func triangleCircumcenter(p1, p2, p3 s2.Point) s2.Point {
	v1 := p1.Sub(p2.Vector)
	v2 := p2.Sub(p3.Vector)

	circumcenter := v1.Cross(v2)

	if circumcenter.Dot(p1.Vector.Add(p2.Vector).Add(p3.Vector)) < 0 {
		circumcenter = circumcenter.Mul(-1)
	}

	return s2.Point{Vector: circumcenter.Normalize()}
}
