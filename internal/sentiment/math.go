package sentiment

import "math"

const epsilon = 0.01

// clamp bounds v to [lo, hi]. NaN and infinities never escape: NaN collapses
// to zero before bounding.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		v = 0
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// floor returns d, or eps when |d| is smaller than eps.
func floor(d, eps float64) float64 {
	if math.Abs(d) < eps || math.IsNaN(d) {
		return eps
	}
	return d
}

func percentChange(cur, prev float64) float64 {
	return (cur - prev) / floor(prev, epsilon) * 100
}

func sign(c OHLCV) float64 {
	if c.Close > c.Open {
		return 1
	}
	return -1
}

// volumeSMA returns the simple moving average of volume over period bars
// ending at index i. ok is false when fewer than period bars are available.
func volumeSMA(series []OHLCV, i, period int) (float64, bool) {
	if period <= 0 || i < period-1 || i >= len(series) {
		return 0, false
	}
	var sum float64
	for k := i - period + 1; k <= i; k++ {
		sum += float64(series[k].Volume)
	}
	return sum / float64(period), true
}

// Volatility is the coefficient of variation of the last 20 closes, in
// percent. It returns 0 when fewer than 20 closes are given.
func Volatility(closes []float64) float64 {
	const window = 20
	if len(closes) < window {
		return 0
	}
	last := closes[len(closes)-window:]
	var mean float64
	for _, c := range last {
		mean += c
	}
	mean /= window
	if mean == 0 {
		return 0
	}
	var variance float64
	for _, c := range last {
		variance += (c - mean) * (c - mean)
	}
	variance /= window
	return math.Sqrt(variance) / mean * 100
}
