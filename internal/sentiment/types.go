package sentiment

import (
	"encoding/json"
	"time"
)

type Variant string

const (
	VariantStatistical Variant = "statistical"
	VariantCyclical    Variant = "cyclical"
	VariantSimulated   Variant = "simulated"
)

func (v Variant) Valid() bool {
	switch v {
	case VariantStatistical, VariantCyclical, VariantSimulated:
		return true
	}
	return false
}

type Signal string

const (
	SignalBullish Signal = "bullish"
	SignalBearish Signal = "bearish"
	SignalNeutral Signal = "neutral"
)

// DataSource discloses which algorithm produced a Summary.
type DataSource string

const (
	SourceStatistical DataSource = "statistical"
	SourceCyclical    DataSource = "cyclical"
	SourceSimulated   DataSource = "simulated"
)

// OHLCV is one trading period. Series passed to the engine must be sorted
// ascending by Timestamp.
type OHLCV struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    int64     `json:"volume"`
}

// Input holds the reference series consumed by a Strategy.
type Input struct {
	Broad      []OHLCV // broad equity index, e.g. SPY
	Secondary  []OHLCV // secondary index, e.g. QQQ
	Volatility []OHLCV // volatility index, e.g. ^VIX
}

func (in Input) Empty() bool {
	return len(in.Broad) == 0
}

type Point struct {
	Timestamp       time.Time
	SmartMoney      float64
	DumbMoney       float64
	SmartMoneyRatio float64
	Volume          int64
	Price           float64
}

type pointJSON struct {
	Timestamp       string  `json:"timestamp"`
	SmartMoney      float64 `json:"smartMoney"`
	DumbMoney       float64 `json:"dumbMoney"`
	SmartMoneyRatio float64 `json:"smartMoneyRatio"`
	Volume          int64   `json:"volume"`
	Price           float64 `json:"price"`
}

const dateLayout = "2006-01-02"

func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal(pointJSON{
		Timestamp:       p.Timestamp.Format(dateLayout),
		SmartMoney:      p.SmartMoney,
		DumbMoney:       p.DumbMoney,
		SmartMoneyRatio: p.SmartMoneyRatio,
		Volume:          p.Volume,
		Price:           p.Price,
	})
}

func (p *Point) UnmarshalJSON(data []byte) error {
	var raw pointJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ts, err := time.Parse(dateLayout, raw.Timestamp)
	if err != nil {
		return err
	}
	*p = Point{
		Timestamp:       ts,
		SmartMoney:      raw.SmartMoney,
		DumbMoney:       raw.DumbMoney,
		SmartMoneyRatio: raw.SmartMoneyRatio,
		Volume:          raw.Volume,
		Price:           raw.Price,
	}
	return nil
}

// Summary is the latest-period snapshot of a sentiment series.
type Summary struct {
	InstitutionalFlow float64    `json:"institutionalFlow"`
	RetailSentiment   float64    `json:"retailSentiment"`
	DarkPoolActivity  float64    `json:"darkPoolActivity"`
	OptionsFlow       float64    `json:"optionsFlow"`
	SmartMoneyRatio   float64    `json:"smartMoneyRatio"`
	Signal            Signal     `json:"signal"`
	HistoricalData    []Point    `json:"historicalData"`
	DataSource        DataSource `json:"dataSource"`
}

// Rand is the jitter source used by the cyclical and simulated variants.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Strategy computes a sentiment series from reference data.
type Strategy interface {
	Kind() Variant
	Compute(in Input) []Point
}
