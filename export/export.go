// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package export writes point sets as whitespace separated text, one point
// per line.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/2dChan/deserno"
	"github.com/golang/geo/r3"
)

const (
	sphericalFormat = "%.2f   %.2f   %.2f\n"
	cartesianFormat = "%.4f   %.4f   %.4f\n"
)

// WriteSpherical writes one "r theta phi" line per point with two decimals.
func WriteSpherical(w io.Writer, pts []deserno.Spherical) error {
	bw := bufio.NewWriter(w)
	for _, p := range pts {
		if _, err := fmt.Fprintf(bw, sphericalFormat, p.R, p.Theta.Radians(), p.Phi.Radians()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteCartesian writes one "x y z" line per point with four decimals.
func WriteCartesian(w io.Writer, pts []r3.Vector) error {
	bw := bufio.NewWriter(w)
	for _, v := range pts {
		if _, err := fmt.Fprintf(bw, cartesianFormat, v.X, v.Y, v.Z); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteSphericalFile writes pts to path, replacing any existing file.
func WriteSphericalFile(path string, pts []deserno.Spherical) error {
	return writeFile(path, func(w io.Writer) error { return WriteSpherical(w, pts) })
}

// WriteCartesianFile writes pts to path, replacing any existing file.
func WriteCartesianFile(path string, pts []r3.Vector) error {
	return writeFile(path, func(w io.Writer) error { return WriteCartesian(w, pts) })
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("export: %w", cerr)
		}
	}()

	if err := write(file); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return nil
}
