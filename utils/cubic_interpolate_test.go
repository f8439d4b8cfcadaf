// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestCubicInterpolate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		y0, y1, y2, y3 float32
		x              float32
		want           float32
	}{
		{name: "start returns y1", y0: 0, y1: 1, y2: 2, y3: 3, x: 0, want: 1},
		{name: "end returns y2", y0: 0, y1: 1, y2: 2, y3: 3, x: 1, want: 2},
		{name: "linear data stays linear", y0: 1, y1: 2, y2: 3, y3: 4, x: 0.25, want: 2.25},
		{name: "flat", y0: 0.3, y1: 0.3, y2: 0.3, y3: 0.3, x: 0.7, want: 0.3},
		{name: "symmetric around zero", y0: -1, y1: -0.5, y2: 0.5, y3: 1, x: 0.5, want: 0},
		// Weights at x=0.5 are -1/16, 9/16, 9/16, -1/16.
		{name: "peak", y0: 0, y1: 1, y2: 1, y3: 0, x: 0.5, want: 1.125},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := CubicInterpolate(tt.y0, tt.y1, tt.y2, tt.y3, tt.x)
			if math.Abs(float64(got-tt.want)) > 1e-6 {
				t.Errorf("CubicInterpolate() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestCubicInterpolate_Knots checks the curve passes through y1 and y2
// for arbitrary data.
func TestCubicInterpolate_Knots(t *testing.T) {
	t.Parallel()

	for i := range 100 {
		y0 := float32(math.Sin(float64(i)))
		y1 := float32(math.Sin(float64(i + 1)))
		y2 := float32(math.Sin(float64(i + 2)))
		y3 := float32(math.Sin(float64(i + 3)))

		if got := CubicInterpolate(y0, y1, y2, y3, 0); got != y1 {
			t.Errorf("x=0 gave %v, want y1=%v", got, y1)
		}
		if got := CubicInterpolate(y0, y1, y2, y3, 1); math.Abs(float64(got-y2)) > 1e-6 {
			t.Errorf("x=1 gave %v, want y2=%v", got, y2)
		}
	}
}

func TestCubicInterpolate_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	allocs := testing.AllocsPerRun(1000, func() {
		_ = CubicInterpolate(0.5, 1.0, 0.8, 0.3, 0.5)
	})

	if allocs > 0 {
		t.Errorf("CubicInterpolate allocated %v times, want 0", allocs)
	}
}

func BenchmarkCubicInterpolate(b *testing.B) {
	samples := make([]float32, 8000)
	y0, y1, y2, y3 := float32(0.1), float32(0.5), float32(0.3), float32(-0.2)

	b.ReportAllocs()

	for b.Loop() {
		for j := range samples {
			x := float32(j%100) / 100.0
			samples[j] = CubicInterpolate(y0, y1, y2, y3, x)
		}
	}
}
