package signals

import (
	"math"
	"testing"
)

func constantCloses(n int, v float64) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = v
	}
	return closes
}

func TestMovingAverage_ShortWindowReturnsZero(t *testing.T) {
	cases := []struct {
		name   string
		closes []float64
	}{
		{"empty", nil},
		{"one point", []float64{100}},
		{"one short of window", constantCloses(199, 100)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MovingAverage(tc.closes, 200); got != 0 {
				t.Errorf("expected sentinel 0 for %d closes, got %f", len(tc.closes), got)
			}
		})
	}
}

func TestMovingAverage_ExactWindow(t *testing.T) {
	if got := MovingAverage(constantCloses(200, 50), 200); got != 50 {
		t.Errorf("expected 50, got %f", got)
	}
}

func TestMovingAverage_TrailingSliceOnly(t *testing.T) {
	// 10 noise points followed by 200 constant closes: the noise must not
	// influence the result.
	closes := append([]float64{1, 2, 3, 99999, 5, 6, 7, 8, 9, 10}, constantCloses(200, 120)...)
	if got := MovingAverage(closes, 200); got != 120 {
		t.Errorf("expected trailing mean 120, got %f", got)
	}
}

func TestMovingAverage_ArithmeticMean(t *testing.T) {
	// Trailing 4 of [10 20 30 40 50] -> mean(20,30,40,50) = 35.
	got := MovingAverage([]float64{10, 20, 30, 40, 50}, 4)
	if math.Abs(got-35) > 1e-9 {
		t.Errorf("expected 35, got %f", got)
	}
}

func TestMovingAverage_InvalidWindow(t *testing.T) {
	if got := MovingAverage([]float64{1, 2, 3}, 0); got != 0 {
		t.Errorf("expected 0 for zero window, got %f", got)
	}
	if got := MovingAverage([]float64{1, 2, 3}, -1); got != 0 {
		t.Errorf("expected 0 for negative window, got %f", got)
	}
}
