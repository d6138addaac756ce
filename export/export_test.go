// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/2dChan/deserno"
	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp"
)

func TestWriteSpherical(t *testing.T) {
	ps := mustGenerate(t)

	var buf bytes.Buffer
	if err := WriteSpherical(&buf, ps.Points); err != nil {
		t.Fatalf("WriteSpherical(...) error = %v, want nil", err)
	}

	lines := splitLines(buf.String())
	if len(lines) != ps.Len() {
		t.Fatalf("len(lines) = %v, want %v", len(lines), ps.Len())
	}
	want := []string{
		"0.67   0.07   0.00",
		"0.67   0.07   2.09",
		"0.67   0.07   4.19",
	}
	if diff := cmp.Diff(want, lines[:3]); diff != "" {
		t.Errorf("first lines mismatch (-want +got):\n%s", diff)
	}
	if got, want := lines[len(lines)-1], "0.67   3.07   4.19"; got != want {
		t.Errorf("last line = %q, want %q", got, want)
	}
}

func TestWriteCartesian(t *testing.T) {
	ps := mustGenerate(t)

	var buf bytes.Buffer
	if err := WriteCartesian(&buf, ps.Cartesian()); err != nil {
		t.Fatalf("WriteCartesian(...) error = %v, want nil", err)
	}

	lines := splitLines(buf.String())
	if len(lines) != ps.Len() {
		t.Fatalf("len(lines) = %v, want %v", len(lines), ps.Len())
	}
	want := []string{
		"0.0478   0.0000   0.6683",
		"-0.0239   0.0414   0.6683",
		"-0.0239   -0.0414   0.6683",
	}
	if diff := cmp.Diff(want, lines[:3]); diff != "" {
		t.Errorf("first lines mismatch (-want +got):\n%s", diff)
	}
}

func TestWrite_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSpherical(&buf, nil); err != nil {
		t.Errorf("WriteSpherical(nil) error = %v, want nil", err)
	}
	if err := WriteCartesian(&buf, nil); err != nil {
		t.Errorf("WriteCartesian(nil) error = %v, want nil", err)
	}
	if buf.Len() != 0 {
		t.Errorf("output = %q, want empty", buf.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWrite_PropagatesErrors(t *testing.T) {
	ps := mustGenerate(t)
	if err := WriteSpherical(failingWriter{}, ps.Points); err == nil {
		t.Errorf("WriteSpherical(failingWriter) error = nil, want non-nil")
	}
	if err := WriteCartesian(failingWriter{}, ps.Cartesian()); err == nil {
		t.Errorf("WriteCartesian(failingWriter) error = nil, want non-nil")
	}
}

func TestWriteFiles(t *testing.T) {
	ps := mustGenerate(t)
	dir := t.TempDir()
	sph := filepath.Join(dir, "spherical_coordinates.csv")
	cart := filepath.Join(dir, "cartesian_coordinates.csv")

	// Existing content is replaced.
	if err := os.WriteFile(sph, []byte(strings.Repeat("stale\n", 5000)), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := WriteSphericalFile(sph, ps.Points); err != nil {
		t.Fatalf("WriteSphericalFile(...) error = %v, want nil", err)
	}
	if err := WriteCartesianFile(cart, ps.Cartesian()); err != nil {
		t.Fatalf("WriteCartesianFile(...) error = %v, want nil", err)
	}

	var want bytes.Buffer
	if err := WriteSpherical(&want, ps.Points); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want.String(), readFile(t, sph)); diff != "" {
		t.Errorf("spherical file mismatch (-want +got):\n%s", diff)
	}

	want.Reset()
	if err := WriteCartesian(&want, ps.Cartesian()); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want.String(), readFile(t, cart)); diff != "" {
		t.Errorf("cartesian file mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteFiles_Deterministic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cartesian_coordinates.csv")
	var outputs [2]string
	for i := range outputs {
		ps := mustGenerate(t)
		if err := WriteCartesianFile(path, ps.Cartesian()); err != nil {
			t.Fatalf("WriteCartesianFile(...) error = %v, want nil", err)
		}
		outputs[i] = readFile(t, path)
	}
	if outputs[0] != outputs[1] {
		t.Errorf("repeated runs differ")
	}
}

func TestWriteFiles_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.csv")
	if err := WriteSphericalFile(path, nil); err == nil {
		t.Errorf("WriteSphericalFile(%q) error = nil, want non-nil", path)
	}
	if err := WriteCartesianFile(path, []r3.Vector{{X: 1}}); err == nil {
		t.Errorf("WriteCartesianFile(%q) error = nil, want non-nil", path)
	}
}

// Helpers

func mustGenerate(t *testing.T) *deserno.PointSet {
	t.Helper()
	ps, err := deserno.Generate(630, 0.67)
	if err != nil {
		t.Fatalf("deserno.Generate(630, 0.67) error = %v, want nil", err)
	}
	return ps
}

func splitLines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("os.ReadFile(%q) error = %v, want nil", path, err)
	}
	return string(b)
}
