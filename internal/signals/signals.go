// Package signals computes technical indicators over daily price history.
package signals

// MovingAverage returns the simple arithmetic mean of the trailing window
// closes. Returns 0 when fewer than window points are available; callers
// treat 0 as "undeterminable". Points before the trailing slice never
// affect the result.
func MovingAverage(closes []float64, window int) float64 {
	if window <= 0 || len(closes) < window {
		return 0
	}
	var sum float64
	for _, c := range closes[len(closes)-window:] {
		sum += c
	}
	return sum / float64(window)
}
