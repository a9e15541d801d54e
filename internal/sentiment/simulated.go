package sentiment

import (
	"math/rand"
	"time"
)

const DefaultFallbackPeriods = 30

type simulated struct {
	rng     Rand
	periods int
	end     time.Time
}

// NewSimulated returns the fallback variant. It ignores its input and
// produces periods synthetic points ending at end. A nil rng is replaced by a
// time-seeded generator.
func NewSimulated(rng Rand, periods int, end time.Time) Strategy {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if periods <= 0 {
		periods = DefaultFallbackPeriods
	}
	if end.IsZero() {
		end = time.Now()
	}
	return simulated{rng: rng, periods: periods, end: end}
}

func (simulated) Kind() Variant {
	return VariantSimulated
}

func (s simulated) Compute(Input) []Point {
	return cyclical{rng: s.rng}.Compute(Input{Broad: s.syntheticSeries()})
}

// syntheticSeries builds periods+1 daily bars so that the cyclical pass, which
// starts at index 1, yields exactly periods points.
func (s simulated) syntheticSeries() []OHLCV {
	n := s.periods + 1
	day := time.Date(s.end.Year(), s.end.Month(), s.end.Day(), 0, 0, 0, 0, time.UTC)
	series := make([]OHLCV, n)
	price := 450.0
	for k := 0; k < n; k++ {
		open := price
		price *= 1 + (s.rng.Float64()*2-1)*0.01
		high, low := max(open, price), min(open, price)
		series[k] = OHLCV{
			Timestamp: day.AddDate(0, 0, k-(n-1)),
			Open:      open,
			High:      high * 1.002,
			Low:       low * 0.998,
			Close:     price,
			Volume:    int64(5e8 + s.rng.Float64()*1e9),
		}
	}
	return series
}

// Simulate produces a fully synthetic Summary. It never fails.
func Simulate(rng Rand, periods int, end time.Time) Summary {
	points := NewSimulated(rng, periods, end).Compute(Input{})
	return Summarize(points, SourceSimulated)
}
