package sentiment

import "math"

const (
	statisticalMinLength = 5
	statisticalBound     = 100.0
	volumeSMAPeriod      = 20
	smartFactorScale     = 12.0
	intradayScale        = 20.0
	neutralVolatility    = 20.0
)

type statistical struct{}

// NewStatistical returns the volume/momentum/volatility-index based variant.
func NewStatistical() Strategy {
	return statistical{}
}

func (statistical) Kind() Variant {
	return VariantStatistical
}

// Compute scores every period from index 1 onward against its predecessor.
// The secondary series falls back to the broad one when absent and a missing
// volatility series is read as a constant neutral level.
func (statistical) Compute(in Input) []Point {
	broad := in.Broad
	secondary := in.Secondary
	if len(secondary) == 0 {
		secondary = broad
	}
	if len(broad) < statisticalMinLength || len(secondary) < statisticalMinLength {
		return nil
	}
	if len(in.Volatility) > 0 && len(in.Volatility) < statisticalMinLength {
		return nil
	}

	n := min(len(broad), len(secondary))
	if len(in.Volatility) > 0 {
		n = min(n, len(in.Volatility))
	}

	level := func(i int) float64 {
		if len(in.Volatility) == 0 {
			return neutralVolatility
		}
		return in.Volatility[i].Close
	}

	points := make([]Point, 0, n-1)
	for i := 1; i < n; i++ {
		b, s := broad[i], secondary[i]

		broadMomentum := percentChange(b.Close, broad[i-1].Close)
		secondaryMomentum := percentChange(s.Close, secondary[i-1].Close)

		broadFactor := sign(b) * volumeRatio(broad, i) * math.Abs(broadMomentum)
		secondaryFactor := sign(s) * volumeRatio(secondary, i) * math.Abs(secondaryMomentum)

		vix, prevVix := level(i), level(i-1)
		contrarian := 0.0
		switch {
		case vix > 25 && vix < prevVix:
			contrarian = 25 // smart money buys fear
		case vix < 15:
			contrarian = -15
		}

		intraday := (intradayStrength(b) + intradayStrength(s)) / 2

		smart := (broadFactor+secondaryFactor)/2*smartFactorScale + contrarian + intraday*intradayScale
		smart = round2(clamp(smart, -statisticalBound, statisticalBound))

		fear := math.Max(0, (vix-15)*2.5)
		chasing := 0.0
		if math.Abs(broadMomentum+secondaryMomentum) > 2 {
			chasing = 15
		}
		dumb := -smart*0.75 + fear + chasing - 15
		dumb = round2(clamp(dumb, -statisticalBound, statisticalBound))

		points = append(points, Point{
			Timestamp:       b.Timestamp,
			SmartMoney:      smart,
			DumbMoney:       dumb,
			SmartMoneyRatio: smart - dumb,
			Volume:          b.Volume + s.Volume,
			Price:           round2((b.Close + s.Close) / 2),
		})
	}
	return points
}

func volumeRatio(series []OHLCV, i int) float64 {
	avg, ok := volumeSMA(series, i, volumeSMAPeriod)
	if !ok || avg < epsilon {
		return 1
	}
	return float64(series[i].Volume) / avg
}

func intradayStrength(c OHLCV) float64 {
	rng := c.High - c.Low
	if rng < epsilon || math.IsNaN(rng) {
		rng = epsilon
	}
	return (c.Close - c.Open) / rng
}
