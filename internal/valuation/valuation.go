package valuation

import (
	"context"
	"math"
)

type Kind string

const (
	KindPE  Kind = "PE"
	KindPEG Kind = "PEG"
	KindPS  Kind = "PS"
)

type Signal string

const (
	SignalUndervalued  Signal = "undervalued"
	SignalFairlyValued Signal = "fairly_valued"
	SignalOvervalued   Signal = "overvalued"
)

const (
	OverallOvervalued  = "overvalued"
	OverallUndervalued = "undervalued"
	OverallNeutral     = "neutral"

	RiskHigh     = "high"
	RiskLow      = "low"
	RiskModerate = "moderate"
)

const (
	InterpretationVeryLow  = "Very Low"
	InterpretationLow      = "Low"
	InterpretationModerate = "Moderate"
	InterpretationFair     = "Fair"
	InterpretationHigh     = "High"
	InterpretationVeryHigh = "Very High"
	InterpretationNA       = "N/A"
)

type RatioAnalysis struct {
	Value          *float64 `json:"value"`
	Interpretation string   `json:"interpretation"`
	Signal         *Signal  `json:"signal"`
	Explanation    string   `json:"explanation"`
}

// HasSignal reports whether the ratio contributes to the overall tally.
func (r RatioAnalysis) HasSignal() bool {
	return r.Signal != nil
}

type Verdict struct {
	PEAnalysis       RatioAnalysis `json:"peAnalysis"`
	PEGAnalysis      RatioAnalysis `json:"pegAnalysis"`
	PSAnalysis       RatioAnalysis `json:"psAnalysis"`
	OverallValuation string        `json:"overallValuation"`
	RiskLevel        string        `json:"riskLevel"`
	Explanation      string        `json:"explanation,omitempty"`
}

// Ratios are the raw financial ratios of one instrument. Nil means unknown.
type Ratios struct {
	PERatio        *float64 `json:"peRatio"`
	PEGRatio       *float64 `json:"pegRatio"`
	PriceToSales   *float64 `json:"priceToSales"`
	PriceToBook    *float64 `json:"priceToBook"`
	MarketCap      *float64 `json:"marketCap"`
	Beta           *float64 `json:"beta"`
	EarningsGrowth *float64 `json:"earningsGrowth"`
	RevenueGrowth  *float64 `json:"revenueGrowth"`
}

// Missing reports whether any of the three classified ratios is unusable.
func (r Ratios) Missing() bool {
	return !usable(r.PERatio) || !usable(r.PEGRatio) || !usable(r.PriceToSales)
}

// Merge fills unusable fields of r from other. Values already present in r win.
func (r Ratios) Merge(other Ratios) Ratios {
	pick := func(a, b *float64) *float64 {
		if usable(a) {
			return a
		}
		if usable(b) {
			return b
		}
		return a
	}
	return Ratios{
		PERatio:        pick(r.PERatio, other.PERatio),
		PEGRatio:       pick(r.PEGRatio, other.PEGRatio),
		PriceToSales:   pick(r.PriceToSales, other.PriceToSales),
		PriceToBook:    pick(r.PriceToBook, other.PriceToBook),
		MarketCap:      pick(r.MarketCap, other.MarketCap),
		Beta:           pick(r.Beta, other.Beta),
		EarningsGrowth: pick(r.EarningsGrowth, other.EarningsGrowth),
		RevenueGrowth:  pick(r.RevenueGrowth, other.RevenueGrowth),
	}
}

// RatioSource supplies ratios from somewhere other than the primary market
// data provider, e.g. a language model.
type RatioSource interface {
	FetchRatios(ctx context.Context, symbol, companyName string) (Ratios, error)
}

// Company is the metadata woven into the verdict explanation.
type Company struct {
	Name     string
	Price    float64
	Currency string
}

// usable is false for nil, NaN, infinite, zero and negative values. Market
// data providers report 0 for a missing ratio.
func usable(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0) && *v > 0
}

func Float(v float64) *float64 {
	return &v
}
