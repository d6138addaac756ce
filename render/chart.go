// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package render

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/2dChan/deserno"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ErrEmpty is returned by the charts for point sets without points.
var ErrEmpty = errors.New("render: nothing to plot")

var chartBlue = color.RGBA{R: 31, G: 119, B: 180, A: 255}

// BandChart saves a bar chart of the number of points on every band. The
// image format follows the extension of path.
func BandChart(path string, ps *deserno.PointSet) error {
	if ps.Len() == 0 {
		return ErrEmpty
	}

	values := make(plotter.Values, ps.NumBands())
	for i, b := range ps.Bands {
		values[i] = float64(b.Count)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Points per band (N=%d, %d realized)", ps.Target, ps.Len())
	p.X.Label.Text = "band"
	p.Y.Label.Text = "points"

	bars, err := plotter.NewBarChart(values, vg.Points(8))
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	bars.Color = chartBlue
	bars.LineStyle.Width = 0
	p.Add(bars)

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("render: save %s: %w", path, err)
	}
	return nil
}

// AngleScatter saves a scatter plot of the azimuth against the polar angle
// of every point.
func AngleScatter(path string, ps *deserno.PointSet) error {
	if ps.Len() == 0 {
		return ErrEmpty
	}

	xys := make(plotter.XYs, ps.Len())
	for i, pt := range ps.Points {
		xys[i] = plotter.XY{X: pt.Phi.Radians(), Y: pt.Theta.Radians()}
	}

	p := plot.New()
	p.Title.Text = "Sample angles"
	p.X.Label.Text = "phi (rad)"
	p.Y.Label.Text = "theta (rad)"

	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	sc.GlyphStyle.Color = chartBlue
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	sc.GlyphStyle.Radius = vg.Points(1.5)
	p.Add(sc)

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("render: save %s: %w", path, err)
	}
	return nil
}
