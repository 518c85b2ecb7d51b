// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestFloat32ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float32
		want  int16
	}{
		{name: "zero", input: 0.0, want: 0},
		{name: "max positive", input: 1.0, want: math.MaxInt16},
		{name: "max negative", input: -1.0, want: math.MinInt16},
		{name: "half positive", input: 0.5, want: 16383},   // round(49151.25) - 32768
		{name: "half negative", input: -0.5, want: -16384}, // round(16383.75) - 32768
		{name: "quarter positive", input: 0.25, want: 8191},
		{name: "small positive", input: 0.001, want: 32},
		{name: "small negative", input: -0.001, want: -33},
		{name: "clamp over max", input: 1.5, want: math.MaxInt16},
		{name: "clamp over min", input: -1.5, want: math.MinInt16},
		{name: "clamp way over max", input: 100.0, want: math.MaxInt16},
		{name: "clamp way under min", input: -100.0, want: math.MinInt16},
		{name: "nan", input: float32(math.NaN()), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Float32ToInt16(tt.input); got != tt.want {
				t.Errorf("Float32ToInt16(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// Every int16 pushed through x/32768 and back must land within one step.
func TestFloat32ToInt16_RoundTrip(t *testing.T) {
	t.Parallel()

	for x := math.MinInt16; x <= math.MaxInt16; x++ {
		f := float32(x) / 32768.0
		got := int(Float32ToInt16(f))

		if d := got - x; d < -1 || d > 1 {
			t.Fatalf("round trip of %d gave %d", x, got)
		}
	}
}

func TestFloat32ToInt16Monotonic(t *testing.T) {
	t.Parallel()

	prev := Float32ToInt16(-1.0)

	for f := -0.99; f <= 1.0; f += 0.01 {
		curr := Float32ToInt16(float32(f))
		if curr < prev {
			t.Errorf("Float32ToInt16 not monotonic: f=%v gives %v, but previous was %v",
				f, curr, prev)
		}
		prev = curr
	}
}

func TestFloat32ToInt32(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float64
		want  int32
	}{
		{name: "zero", input: 0, want: 0},
		{name: "half", input: 0.5, want: 1 << 30},
		{name: "minus one", input: -1, want: math.MinInt32},
		{name: "one saturates", input: 1, want: math.MaxInt32},
		{name: "above one saturates", input: 3, want: math.MaxInt32},
		{name: "below minus one saturates", input: -3, want: math.MinInt32},
		{name: "nan", input: math.NaN(), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Float64ToInt32(tt.input); got != tt.want {
				t.Errorf("Float64ToInt32(%v) = %v, want %v", tt.input, got, tt.want)
			}
			if got := Float32ToInt32(float32(tt.input)); got != tt.want {
				t.Errorf("Float32ToInt32(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func BenchmarkFloat32ToInt16(b *testing.B) {
	floatSamples := make([]float32, 8000)
	int16Samples := make([]int16, 8000)

	for i := range floatSamples {
		floatSamples[i] = float32(math.Sin(float64(i) * 0.1))
	}

	b.ResetTimer()
	b.ReportAllocs()

	for range b.N {
		for j := range floatSamples {
			int16Samples[j] = Float32ToInt16(floatSamples[j])
		}
	}
}

func TestFloat32ToInt16_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	allocs := testing.AllocsPerRun(1000, func() {
		_ = Float32ToInt16(0.5)
	})

	if allocs > 0 {
		t.Errorf("Float32ToInt16 allocated %v times, want 0", allocs)
	}
}
