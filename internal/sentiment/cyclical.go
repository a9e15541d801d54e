package sentiment

import "math"

const (
	cyclicalMinLength = 2
	cyclicalLow       = 15.0
	cyclicalHigh      = 85.0
	jitterAmplitude   = 4.0
	bigMove           = 1.5
)

type cyclical struct {
	rng Rand
}

// NewCyclical returns the natural-cycle variant. A nil rng disables jitter.
func NewCyclical(rng Rand) Strategy {
	return cyclical{rng: rng}
}

func (cyclical) Kind() Variant {
	return VariantCyclical
}

func (c cyclical) Compute(in Input) []Point {
	series := in.Broad
	n := len(series)
	if n < cyclicalMinLength {
		return nil
	}

	points := make([]Point, 0, n-1)
	for i := 1; i < n; i++ {
		progress := float64(i) / float64(n)
		change := percentChange(series[i].Close, series[i-1].Close)
		smart, dumb := c.scores(progress, change)

		points = append(points, Point{
			Timestamp:       series[i].Timestamp,
			SmartMoney:      smart,
			DumbMoney:       dumb,
			SmartMoneyRatio: smart - dumb,
			Volume:          series[i].Volume,
			Price:           round2(series[i].Close),
		})
	}
	return points
}

// scores places one period on the market cycle. progress runs 0→1 over the
// series, change is the period-over-period close change in percent.
func (c cyclical) scores(progress, change float64) (float64, float64) {
	smart := 50 + math.Sin(progress*2*math.Pi)*30
	switch {
	case change > bigMove:
		smart -= 15 // distributes into strength
	case change < -bigMove:
		smart += 20 // accumulates on weakness
	}
	switch {
	case progress < 0.25:
		smart += 10
	case progress > 0.75:
		smart -= 10
	}

	dumb := 50 + math.Sin((progress-0.2)*2*math.Pi)*25
	switch {
	case change > bigMove:
		dumb += 18 // FOMO
	case change < -bigMove:
		dumb -= 20 // panic
	}
	if progress >= 0.4 && progress <= 0.6 {
		dumb += 15 // peak euphoria
	}

	return round2(c.jitter(smart)), round2(c.jitter(dumb))
}

func (c cyclical) jitter(v float64) float64 {
	v = clamp(v, cyclicalLow, cyclicalHigh)
	if c.rng == nil {
		return v
	}
	v += (c.rng.Float64()*2 - 1) * jitterAmplitude
	return clamp(v, cyclicalLow, cyclicalHigh)
}
