// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package render

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/golang/geo/s2"
)

const (
	mapWidth  = 1500
	mapHeight = mapWidth / 2

	polygonStyle = "fill:rgb(255,255,255);stroke:rgb(170,170,170);stroke-width:1;stroke-opacity:1.0"
	siteStyle    = "fill:rgb(255,0,0)"
)

// PointToScreen projects p onto the equirectangular map.
func PointToScreen(p s2.Point) (int, int) {
	xScale := float64(mapWidth)
	proj := s2.NewPlateCarreeProjection(xScale)

	r2p := proj.Project(p)

	x := (r2p.X + xScale) / (2 * xScale)
	y := (-r2p.Y + xScale/2) / xScale

	return int(x * mapWidth), int(y * mapHeight)
}

// Map draws sites on an equirectangular map, with the outline of their
// cells when cells is not nil. Cells crossing the antimeridian are skipped.
func Map(w io.Writer, sites s2.PointVector, cells [][]s2.Point) error {
	if cells != nil && len(cells) != len(sites) {
		return fmt.Errorf("render: %d cells for %d sites", len(cells), len(sites))
	}

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(mapWidth, mapHeight)
	canvas.Rect(0, 0, mapWidth, mapHeight, "fill:rgb(255,255,255)")

	xPoints := make([]int, 0)
	yPoints := make([]int, 0)
	for i, cell := range cells {
		xPoints = xPoints[:0]
		yPoints = yPoints[:0]

		draw := true
		sLng := s2.LatLngFromPoint(sites[i]).Lng.Radians()
		for _, vert := range cell {
			vLng := s2.LatLngFromPoint(vert).Lng.Radians()
			if math.Abs(vLng-sLng) > math.Pi {
				draw = false
				break
			}

			x, y := PointToScreen(vert)
			xPoints = append(xPoints, x)
			yPoints = append(yPoints, y)
		}

		// Skip polygons that may cross the antimeridian to avoid rendering issues
		if draw && len(xPoints) > 2 {
			canvas.Polygon(xPoints, yPoints, polygonStyle)
		}
	}

	for _, site := range sites {
		sx, sy := PointToScreen(site)
		canvas.Circle(sx, sy, 3, siteStyle)
	}
	canvas.End()

	if ew.err != nil {
		return fmt.Errorf("render: %w", ew.err)
	}
	return nil
}
