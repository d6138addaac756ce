// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package quality

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/2dChan/deserno"
	"github.com/2dChan/deserno/utils"
)

func TestOptions(t *testing.T) {
	tests := []struct {
		name    string
		opt     Option
		wantErr bool
	}{
		{"eps positive", WithEps(1e-10), false},
		{"eps zero", WithEps(0), true},
		{"jitter zero", WithJitter(0, 1), false},
		{"jitter positive", WithJitter(1e-8, 1), false},
		{"jitter negative", WithJitter(-1, 1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := &Options{Eps: defaultEps, Jitter: defaultJitter}
			if err := tt.opt(opts); (err != nil) != tt.wantErr {
				t.Errorf("opt(...) error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAnalyze_TooFewPoints(t *testing.T) {
	ps, err := deserno.Generate(1, 1)
	if err != nil {
		t.Fatalf("deserno.Generate(1, 1) error = %v, want nil", err)
	}
	if _, err := Analyze(ps); !errors.Is(err, ErrTooFewPoints) {
		t.Errorf("Analyze(%d points) error = %v, want %v", ps.Len(), err, ErrTooFewPoints)
	}
}

func TestAnalyze_Degenerate(t *testing.T) {
	// Four points make two bands of two at phi = 0 and phi = π, all on
	// the xz great circle.
	for _, r := range []float64{0.67, 1, 3} {
		ps := mustGenerate(t, 4, r)
		if ps.Len() != 4 {
			t.Fatalf("deserno.Generate(4, %v).Len() = %d, want 4", r, ps.Len())
		}
		if _, err := Analyze(ps); !errors.Is(err, ErrDegenerate) {
			t.Errorf("Analyze(N4_r%v) error = %v, want %v", r, err, ErrDegenerate)
		}
	}
}

func TestAnalyze_InvalidOption(t *testing.T) {
	ps := mustGenerate(t, 100, 1)
	if _, err := Analyze(ps, WithEps(-1)); err == nil {
		t.Errorf("Analyze(..., WithEps(-1)) error = nil, want non-nil")
	}
}

func TestAnalyze_AreaSum(t *testing.T) {
	tests := []struct {
		n int
		r float64
	}{
		{20, 1},
		{100, 2},
		{630, 0.67},
		{2000, 1},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("N%d_r%v", tt.n, tt.r), func(t *testing.T) {
			ps := mustGenerate(t, tt.n, tt.r)
			rep, err := Analyze(ps)
			if err != nil {
				t.Fatalf("Analyze(...) error = %v, want nil", err)
			}
			if rep.Points != ps.Len() || len(rep.CellAreas) != ps.Len() || len(rep.Spacing) != ps.Len() {
				t.Fatalf("report sizes = %d, %d, %d, want %d", rep.Points, len(rep.CellAreas), len(rep.Spacing), ps.Len())
			}

			sphere := 4 * math.Pi * tt.r * tt.r
			total := 0.0
			for _, a := range rep.CellAreas {
				total += a
			}
			if math.Abs(total-sphere)/sphere > 1e-6 {
				t.Errorf("sum of cell areas = %v, want %v", total, sphere)
			}
			if math.Abs(rep.Area.Mean-rep.TargetArea)/rep.TargetArea > 1e-6 {
				t.Errorf("rep.Area.Mean = %v, want %v", rep.Area.Mean, rep.TargetArea)
			}
			if rep.Area.Min > rep.Area.Mean || rep.Area.Max < rep.Area.Mean {
				t.Errorf("rep.Area = %+v, want Min <= Mean <= Max", rep.Area)
			}
		})
	}
}

func TestAnalyze_ReferenceRun(t *testing.T) {
	ps := mustGenerate(t, 630, 0.67)
	rep, err := Analyze(ps)
	if err != nil {
		t.Fatalf("Analyze(...) error = %v, want nil", err)
	}

	if cv := rep.Area.CV(); cv > 0.25 {
		t.Errorf("rep.Area.CV() = %v, want <= 0.25", cv)
	}
	// Neighbors sit about one spacing d·r apart.
	want := ps.Spacing * ps.Radius
	if got := rep.NearestDist.Mean; got < 0.7*want || got > 1.3*want {
		t.Errorf("rep.NearestDist.Mean = %v, want about %v", got, want)
	}
	if rep.NearestDist.Min <= 0 {
		t.Errorf("rep.NearestDist.Min = %v, want > 0", rep.NearestDist.Min)
	}
	if got := len(rep.Cells()); got != ps.Len() {
		t.Errorf("len(rep.Cells()) = %v, want %v", got, ps.Len())
	}
}

func TestAnalyze_BetterThanRandom(t *testing.T) {
	for _, n := range []int{100, 630, 2000} {
		t.Run(fmt.Sprintf("N%d", n), func(t *testing.T) {
			ps := mustGenerate(t, n, 1)
			rep, err := Analyze(ps)
			if err != nil {
				t.Fatalf("Analyze(deserno) error = %v, want nil", err)
			}
			random, err := Analyze(utils.RandomPointSet(ps.Len(), 1, 0))
			if err != nil {
				t.Fatalf("Analyze(random) error = %v, want nil", err)
			}
			if rep.Area.CV() >= random.Area.CV()/2 {
				t.Errorf("deserno area CV = %v, random = %v, want less than half", rep.Area.CV(), random.Area.CV())
			}
			if rep.NearestDist.Min <= random.NearestDist.Min {
				t.Errorf("deserno min spacing = %v, random = %v, want larger", rep.NearestDist.Min, random.NearestDist.Min)
			}
		})
	}
}

func TestStats_CV(t *testing.T) {
	if got := (Stats{}).CV(); got != 0 {
		t.Errorf("Stats{}.CV() = %v, want 0", got)
	}
	if got := (Stats{Mean: 2, StdDev: 1}).CV(); got != 0.5 {
		t.Errorf("Stats{Mean: 2, StdDev: 1}.CV() = %v, want 0.5", got)
	}
}

func TestSummarize(t *testing.T) {
	s := summarize([]float64{1, 2, 3, 4})
	if s.Mean != 2.5 || s.Min != 1 || s.Max != 4 {
		t.Errorf("summarize(...) = %+v, want Mean 2.5, Min 1, Max 4", s)
	}
	// Sample standard deviation.
	if want := math.Sqrt(5.0 / 3.0); math.Abs(s.StdDev-want) > 1e-15 {
		t.Errorf("summarize(...).StdDev = %v, want %v", s.StdDev, want)
	}
}

// Benchmarks

func BenchmarkAnalyze(b *testing.B) {
	for _, n := range []int{1e+2, 1e+3, 1e+4} {
		b.Run(fmt.Sprintf("N%d", n), func(b *testing.B) {
			ps, err := deserno.Generate(n, 1)
			if err != nil {
				b.Fatalf("deserno.Generate(...) error = %v, want nil", err)
			}
			b.ReportAllocs()
			for b.Loop() {
				if _, err := Analyze(ps); err != nil {
					b.Fatalf("Analyze(...) error = %v, want nil", err)
				}
			}
		})
	}
}

// Helpers

func mustGenerate(t *testing.T, n int, r float64) *deserno.PointSet {
	t.Helper()
	ps, err := deserno.Generate(n, r)
	if err != nil {
		t.Fatalf("deserno.Generate(%d, %v) error = %v, want nil", n, r, err)
	}
	return ps
}
