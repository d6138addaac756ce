// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// deserno generates equal-area points on a sphere and writes them as text
// tables and images.
//
// Usage:
//
//	deserno [options]
//
// Options:
//
//	-c, --config             YAML or JSON run configuration
//	-n, --points             requested number of points (default 630)
//	-r, --radius             sphere radius (default 0.67)
//	    --no-radius-correction
//	                         use N instead of N*r^2 as the point budget
//	-o, --out-dir            output directory (default .)
//	    --legacy-roundtrip   derive Cartesian output from the rounded angles
//	    --map                Voronoi map file name
//	    --bands              points-per-band chart file name
//	    --angles             angle scatter chart file name
//	    --quality            print cell area and spacing statistics
//	-v, --verbose            debug logging
//	    --version            print the version
//
// Exit codes:
//
//	0: success
//	1: run failed
//	2: invalid flags or configuration
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/2dChan/deserno/config"
	"github.com/urfave/cli/v3"
)

var Version = "0.1.0-dev"

// usageError marks errors caused by the caller's input.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func init() {
	// -v is taken by --verbose.
	cli.VersionFlag = &cli.BoolFlag{
		Name:        "version",
		Usage:       "print the version",
		HideDefault: true,
		Local:       true,
	}
}

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr))
}

func createApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "deserno",
		Usage:     "generate equal-area points on a sphere",
		Version:   Version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML or JSON run configuration",
			},
			&cli.IntFlag{
				Name:    "points",
				Aliases: []string{"n"},
				Usage:   "requested number of points",
				Value:   config.Default().Points,
			},
			&cli.FloatFlag{
				Name:    "radius",
				Aliases: []string{"r"},
				Usage:   "sphere radius",
				Value:   config.Default().Radius,
			},
			&cli.BoolFlag{
				Name:  "no-radius-correction",
				Usage: "use N instead of N*r^2 as the point budget",
			},
			&cli.StringFlag{
				Name:    "out-dir",
				Aliases: []string{"o"},
				Usage:   "output directory",
				Value:   config.Default().Output.Dir,
			},
			&cli.BoolFlag{
				Name:  "legacy-roundtrip",
				Usage: "derive the Cartesian output from the rounded spherical file",
			},
			&cli.StringFlag{
				Name:  "map",
				Usage: "Voronoi map file name (SVG)",
			},
			&cli.StringFlag{
				Name:  "bands",
				Usage: "points-per-band chart file name (png, svg, pdf)",
			},
			&cli.StringFlag{
				Name:  "angles",
				Usage: "angle scatter chart file name (png, svg, pdf)",
			},
			&cli.BoolFlag{
				Name:  "quality",
				Usage: "print cell area and spacing statistics",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "debug logging",
			},
		},
		OnUsageError: func(_ context.Context, _ *cli.Command, err error, _ bool) error {
			return &usageError{err: err}
		},
		// Exit codes are mapped by run.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := newLogger(stderr, cmd.Bool("verbose"))
			return generate(ctx, cfg, logger, stdout)
		},
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app := createApp(stdout, stderr)
	if err := app.Run(ctx, args); err != nil {
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(stderr, "invalid arguments: %v\n", usageErr)
			return 2
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig reads the config file, if any, and applies the flags that were
// set on the command line.
func loadConfig(cmd *cli.Command) (config.Config, error) {
	cfg := config.Default()
	if path := cmd.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return config.Config{}, &usageError{err: err}
		}
	}

	if cmd.IsSet("points") {
		cfg.Points = cmd.Int("points")
	}
	if cmd.IsSet("radius") {
		cfg.Radius = cmd.Float("radius")
	}
	if cmd.IsSet("no-radius-correction") {
		cfg.RadiusCorrection = !cmd.Bool("no-radius-correction")
	}
	if cmd.IsSet("out-dir") {
		cfg.Output.Dir = cmd.String("out-dir")
	}
	if cmd.IsSet("legacy-roundtrip") {
		cfg.LegacyRoundTrip = cmd.Bool("legacy-roundtrip")
	}
	if cmd.IsSet("map") {
		cfg.Output.Map = cmd.String("map")
	}
	if cmd.IsSet("bands") {
		cfg.Output.Bands = cmd.String("bands")
	}
	if cmd.IsSet("angles") {
		cfg.Output.Angles = cmd.String("angles")
	}
	if cmd.IsSet("quality") {
		cfg.Quality = cmd.Bool("quality")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, &usageError{err: err}
	}
	return cfg, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
