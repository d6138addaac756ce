// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/2dChan/deserno"
	"github.com/2dChan/deserno/config"
	"github.com/2dChan/deserno/export"
	"github.com/2dChan/deserno/quality"
	"github.com/2dChan/deserno/render"
	"github.com/golang/geo/r3"
)

func generate(ctx context.Context, cfg config.Config, logger *slog.Logger, stdout io.Writer) error {
	ps, err := deserno.Generate(cfg.Points, cfg.Radius, deserno.WithRadiusCorrection(cfg.RadiusCorrection))
	if err != nil {
		return &usageError{err: err}
	}
	logger.Info("generated points",
		"target", ps.Target,
		"points", ps.Len(),
		"bands", ps.NumBands(),
		"radius", ps.Radius,
	)
	logger.Debug("layout",
		"effective_target", ps.EffectiveTarget,
		"area_per_point", ps.AreaPerPoint,
		"spacing", ps.Spacing,
		"theta_step", ps.ThetaStep,
		"phi_step", ps.PhiStep,
	)

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	path := cfg.Path(cfg.Output.Spherical)
	if err := export.WriteSphericalFile(path, ps.Points); err != nil {
		return err
	}
	logger.Info("wrote spherical coordinates", "path", path)

	cart := ps.Cartesian()
	if cfg.LegacyRoundTrip {
		if cart, err = export.LegacyCartesian(ps.Points); err != nil {
			return err
		}
		logger.Debug("cartesian coordinates derived from rounded angles")
	}
	path = cfg.Path(cfg.Output.Cartesian)
	if err := export.WriteCartesianFile(path, cart); err != nil {
		return err
	}
	logger.Info("wrote cartesian coordinates", "path", path)

	if err := ctx.Err(); err != nil {
		return err
	}

	if name := cfg.Output.Scatter; name != "" {
		if err := writeScatter(cfg.Path(name), cart); err != nil {
			return err
		}
		logger.Info("wrote scatter plot", "path", cfg.Path(name))
	}
	if name := cfg.Output.Bands; name != "" {
		if err := render.BandChart(cfg.Path(name), ps); err != nil {
			return err
		}
		logger.Info("wrote band chart", "path", cfg.Path(name))
	}
	if name := cfg.Output.Angles; name != "" {
		if err := render.AngleScatter(cfg.Path(name), ps); err != nil {
			return err
		}
		logger.Info("wrote angle chart", "path", cfg.Path(name))
	}

	if !cfg.Quality && cfg.Output.Map == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	rep, err := quality.Analyze(ps)
	if err != nil {
		return err
	}
	logger.Debug("analyzed cells", "cells", rep.Diagram.NumCells())

	if name := cfg.Output.Map; name != "" {
		if err := writeMap(cfg.Path(name), ps, rep); err != nil {
			return err
		}
		logger.Info("wrote voronoi map", "path", cfg.Path(name))
	}
	if cfg.Quality {
		return printReport(stdout, ps, rep)
	}
	return nil
}

func writeScatter(path string, pts []r3.Vector) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("render: %w", cerr)
		}
	}()
	return render.Scatter3D(f, pts)
}

func writeMap(path string, ps *deserno.PointSet, rep *quality.Report) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("render: %w", cerr)
		}
	}()
	return render.Map(f, ps.Directions(), rep.Cells())
}

func printReport(w io.Writer, ps *deserno.PointSet, rep *quality.Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "points\t%d\t(requested %d)\n", rep.Points, ps.Target)
	fmt.Fprintf(tw, "bands\t%d\n", ps.NumBands())
	fmt.Fprintf(tw, "target area\t%.6f\n", rep.TargetArea)
	fmt.Fprintln(tw, "\tmean\tstddev\tmin\tmax\tcv")
	for _, row := range []struct {
		name string
		s    quality.Stats
	}{
		{"cell area", rep.Area},
		{"nearest neighbor", rep.NearestDist},
	} {
		fmt.Fprintf(tw, "%s\t%.6f\t%.6f\t%.6f\t%.6f\t%.4f\n",
			row.name, row.s.Mean, row.s.StdDev, row.s.Min, row.s.Max, row.s.CV())
	}
	return tw.Flush()
}
