// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package export

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/2dChan/deserno"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
)

// ReadSpherical parses the output of WriteSpherical. Blank lines are
// skipped.
func ReadSpherical(r io.Reader) ([]deserno.Spherical, error) {
	var pts []deserno.Spherical
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 3 {
			return nil, fmt.Errorf("export: line %d: want 3 fields, got %d", line, len(fields))
		}

		var v [3]float64
		for i, f := range fields {
			x, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("export: line %d: %w", line, err)
			}
			v[i] = x
		}
		pts = append(pts, deserno.Spherical{R: v[0], Theta: s1.Angle(v[1]), Phi: s1.Angle(v[2])})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return pts, nil
}

// LegacyCartesian converts pts the way the original reference script did:
// the spherical coordinates are first rounded through their text form and
// the Cartesian coordinates are computed from the rounded values.
func LegacyCartesian(pts []deserno.Spherical) ([]r3.Vector, error) {
	var buf bytes.Buffer
	if err := WriteSpherical(&buf, pts); err != nil {
		return nil, err
	}
	rounded, err := ReadSpherical(&buf)
	if err != nil {
		return nil, err
	}

	out := make([]r3.Vector, len(rounded))
	for i, p := range rounded {
		out[i] = deserno.ToCartesian(p)
	}
	return out, nil
}
