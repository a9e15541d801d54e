package valuation

import "fmt"

type bucket struct {
	below          float64
	interpretation string
	signal         Signal
	text           string
}

// table holds the four ascending upper bounds of a ratio kind plus a final
// open-ended bucket. Bounds are exclusive: a value equal to a bound falls
// into the next bucket.
type table struct {
	label   string
	na      string
	suffix  string
	buckets []bucket
	top     bucket
}

var tables = map[Kind]table{
	KindPE: {
		label:  "P/E Ratio",
		na:     "P/E ratio not available. This could indicate the company has no earnings or negative earnings.",
		suffix: "The P/E ratio shows how much investors are willing to pay per dollar of earnings.",
		buckets: []bucket{
			{10, InterpretationVeryLow, SignalUndervalued, "Very low P/E suggests the stock may be undervalued, but could also indicate underlying problems or low growth expectations."},
			{15, InterpretationLow, SignalUndervalued, "Low P/E ratio suggests good value, especially for established companies with stable earnings."},
			{25, InterpretationModerate, SignalFairlyValued, "Moderate P/E ratio indicates fair valuation. Compare with industry average for better context."},
			{40, InterpretationHigh, SignalOvervalued, "High P/E ratio suggests investors expect strong growth, but the stock may be overvalued if growth doesn't materialize."},
		},
		top: bucket{0, InterpretationVeryHigh, SignalOvervalued, "Very high P/E ratio indicates either exceptional growth expectations or significant overvaluation. High risk."},
	},
	KindPEG: {
		label:  "5-Year Forward PEG Ratio",
		na:     "5-Year Forward PEG ratio not available. This metric requires both P/E ratio and 5-year forward earnings growth estimates.",
		suffix: "The 5-year forward PEG adjusts P/E for expected growth over the next 5 years, with values under 1.0 generally considered attractive.",
		buckets: []bucket{
			{0.5, InterpretationVeryLow, SignalUndervalued, "Very low 5-year forward PEG suggests the stock is significantly undervalued relative to its expected growth potential over the next 5 years."},
			{1.0, InterpretationLow, SignalUndervalued, "5-year forward PEG below 1.0 suggests the stock is undervalued considering its expected growth rate over the next 5 years."},
			{1.5, InterpretationFair, SignalFairlyValued, "5-year forward PEG around 1.0 indicates fair valuation relative to 5-year growth expectations."},
			{2.0, InterpretationHigh, SignalOvervalued, "5-year forward PEG above 1.5 suggests the stock may be overvalued relative to its 5-year growth prospects."},
		},
		top: bucket{0, InterpretationVeryHigh, SignalOvervalued, "Very high 5-year forward PEG indicates significant overvaluation or overly optimistic 5-year growth expectations."},
	},
	KindPS: {
		label:  "Price-to-Sales Ratio",
		na:     "Price-to-Sales ratio not available.",
		suffix: "P/S ratio shows valuation relative to revenue, useful for companies with volatile earnings.",
		buckets: []bucket{
			{1.0, InterpretationVeryLow, SignalUndervalued, "Very low P/S ratio suggests the stock may be undervalued, trading below its revenue multiple."},
			{2.0, InterpretationLow, SignalUndervalued, "Low P/S ratio indicates good value, especially for profitable companies."},
			{5.0, InterpretationModerate, SignalFairlyValued, "Moderate P/S ratio. Compare with industry peers to assess relative valuation."},
			{10.0, InterpretationHigh, SignalOvervalued, "High P/S ratio suggests investors are paying a premium, justified only by strong growth or margins."},
		},
		top: bucket{0, InterpretationVeryHigh, SignalOvervalued, "Very high P/S ratio indicates significant premium pricing. High risk unless extraordinary growth is expected."},
	},
}

// ClassifyRatio buckets one ratio. Unknown kinds and unusable values yield
// an N/A analysis with no signal.
func ClassifyRatio(kind Kind, value *float64) RatioAnalysis {
	t, ok := tables[kind]
	if !ok {
		return RatioAnalysis{Value: value, Interpretation: InterpretationNA, Explanation: "Unknown ratio."}
	}
	if !usable(value) {
		return RatioAnalysis{Value: value, Interpretation: InterpretationNA, Explanation: t.na}
	}

	v := *value
	b := t.top
	for _, candidate := range t.buckets {
		if v < candidate.below {
			b = candidate
			break
		}
	}

	signal := b.signal
	return RatioAnalysis{
		Value:          value,
		Interpretation: b.interpretation,
		Signal:         &signal,
		Explanation:    fmt.Sprintf("%s: %.2f. %s %s", t.label, v, b.text, t.suffix),
	}
}

// CombineValuation tallies the non-nil signals. Ties, including the case of
// no signal at all, are neutral.
func CombineValuation(pe, peg, ps RatioAnalysis) Verdict {
	verdict := Verdict{
		PEAnalysis:       pe,
		PEGAnalysis:      peg,
		PSAnalysis:       ps,
		OverallValuation: OverallNeutral,
		RiskLevel:        RiskModerate,
	}

	var over, under int
	for _, r := range []RatioAnalysis{pe, peg, ps} {
		if !r.HasSignal() {
			continue
		}
		switch *r.Signal {
		case SignalOvervalued:
			over++
		case SignalUndervalued:
			under++
		}
	}

	switch {
	case over > under:
		verdict.OverallValuation = OverallOvervalued
		verdict.RiskLevel = RiskHigh
	case under > over:
		verdict.OverallValuation = OverallUndervalued
		verdict.RiskLevel = RiskLow
	}
	return verdict
}

// Analyze classifies the three key ratios and combines them.
func Analyze(r Ratios) Verdict {
	return CombineValuation(
		ClassifyRatio(KindPE, r.PERatio),
		ClassifyRatio(KindPEG, r.PEGRatio),
		ClassifyRatio(KindPS, r.PriceToSales),
	)
}
