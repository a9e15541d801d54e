package sentiment

import (
	"math"
	"math/rand"
	"time"
)

const signalThreshold = 20.0

// SignalFor maps a smart/dumb money ratio to a qualitative signal.
func SignalFor(ratio float64) Signal {
	switch {
	case ratio > signalThreshold:
		return SignalBullish
	case ratio < -signalThreshold:
		return SignalBearish
	default:
		return SignalNeutral
	}
}

// Summarize builds the latest-period snapshot. An empty series yields a
// neutral zero Summary carrying only the source label.
func Summarize(points []Point, source DataSource) Summary {
	summary := Summary{
		Signal:         SignalNeutral,
		HistoricalData: points,
		DataSource:     source,
	}
	if len(points) == 0 {
		summary.HistoricalData = []Point{}
		return summary
	}
	latest := points[len(points)-1]
	summary.InstitutionalFlow = latest.SmartMoney
	summary.RetailSentiment = latest.DumbMoney
	summary.SmartMoneyRatio = latest.SmartMoneyRatio
	summary.DarkPoolActivity = round2(math.Abs(latest.SmartMoneyRatio) * 0.3)
	summary.Signal = SignalFor(latest.SmartMoneyRatio)
	return summary
}

// SummarizeWithVolatility is Summarize plus an options-flow estimate derived
// from the average volatility-index level.
func SummarizeWithVolatility(points []Point, source DataSource, volatility []OHLCV) Summary {
	summary := Summarize(points, source)
	if ratio, ok := PutCallRatio(volatility); ok && len(points) > 0 {
		summary.OptionsFlow = round2((ratio - 1) * 100)
	}
	return summary
}

// PutCallRatio estimates a put/call ratio from the mean volatility-index
// close, bounded to [0.3, 2.0].
func PutCallRatio(volatility []OHLCV) (float64, bool) {
	if len(volatility) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range volatility {
		sum += v.Close
	}
	avg := sum / float64(len(volatility))
	return clamp(0.7+(avg-20)*0.02, 0.3, 2.0), true
}

// ComputeSeries runs the named variant over in. Unknown variants compute
// nothing.
func ComputeSeries(in Input, variant Variant, rng Rand) []Point {
	switch variant {
	case VariantStatistical:
		return NewStatistical().Compute(in)
	case VariantCyclical:
		return NewCyclical(rng).Compute(in)
	case VariantSimulated:
		return NewSimulated(rng, len(in.Broad)-1, lastTimestamp(in.Broad)).Compute(in)
	}
	return nil
}

func lastTimestamp(series []OHLCV) time.Time {
	if len(series) == 0 {
		return time.Time{}
	}
	return series[len(series)-1].Timestamp
}

// Engine selects a strategy per request and degrades to simulated output
// whenever the chosen strategy has nothing to say.
type Engine struct {
	newRand         func() Rand
	fallbackPeriods int
	now             func() time.Time
}

type Option func(*Engine)

// WithRand pins the jitter source. The given Rand is shared by every call, so
// it must be safe for concurrent use if the Engine is.
func WithRand(rng Rand) Option {
	return func(e *Engine) {
		e.newRand = func() Rand { return rng }
	}
}

func WithFallbackPeriods(periods int) Option {
	return func(e *Engine) {
		if periods > 0 {
			e.fallbackPeriods = periods
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		newRand: func() Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
		fallbackPeriods: DefaultFallbackPeriods,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Analyze never fails: empty or insufficient input produces a simulated
// Summary labelled as such.
func (e *Engine) Analyze(in Input, variant Variant) Summary {
	return e.AnalyzePeriods(in, variant, e.fallbackPeriods)
}

// AnalyzePeriods is Analyze with an explicit fallback length.
func (e *Engine) AnalyzePeriods(in Input, variant Variant, fallbackPeriods int) Summary {
	if fallbackPeriods <= 0 {
		fallbackPeriods = e.fallbackPeriods
	}
	rng := e.newRand()

	var (
		points []Point
		source DataSource
	)
	switch variant {
	case VariantStatistical:
		points, source = NewStatistical().Compute(in), SourceStatistical
	case VariantCyclical:
		points, source = NewCyclical(rng).Compute(in), SourceCyclical
	}
	if len(points) == 0 {
		return Simulate(rng, fallbackPeriods, e.now())
	}
	return SummarizeWithVolatility(points, source, in.Volatility)
}
