package valuation

import (
	"fmt"
	"strings"
)

// Explain renders the human readable summary of a verdict.
func Explain(v Verdict, company Company) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Based on the analysis of %s at %s %s:\n\n", company.Name, formatPrice(company.Price), company.Currency)
	fmt.Fprintf(&b, "Overall Valuation: %s\n", strings.ToUpper(v.OverallValuation))
	fmt.Fprintf(&b, "Risk Level: %s\n\n", strings.ToUpper(v.RiskLevel))
	b.WriteString("Key Metrics Summary:\n")
	for _, r := range []RatioAnalysis{v.PEAnalysis, v.PEGAnalysis, v.PSAnalysis} {
		fmt.Fprintf(&b, "• %s\n", r.Explanation)
	}
	b.WriteString("\nThese ratios help determine if a stock is trading at a reasonable price relative to its fundamentals. " +
		"Always compare these metrics with industry peers and consider the company's growth prospects, competitive position, " +
		"and market conditions before making investment decisions.")
	return b.String()
}

// WithExplanation returns v with its Explanation populated.
func WithExplanation(v Verdict, company Company) Verdict {
	v.Explanation = Explain(v, company)
	return v
}

func formatPrice(p float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.4f", p), "0"), ".")
}

// IsFund reports whether a name looks like an ETF, trust or fund, for which
// the stock ratios carry little meaning.
func IsFund(name string) bool {
	lower := strings.ToLower(name)
	for _, marker := range []string{"etf", "trust", "fund"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

const disclaimer = `IMPORTANT LIMITATIONS & WARNINGS

This analysis is for educational purposes only and should NOT be considered as financial advice.

WHAT THIS ANALYSIS LACKS:
• No macro or sector context
• No moat or qualitative analysis
• PEG assumes consistent growth
• Not a forecasting tool

"Overvalued" does not mean a bad investment: high ratios may reflect justified premium valuations.`

const (
	aiSourceNote = " Financial ratios sourced using AI when not available from traditional data providers."
	fundNote     = " ETF Analysis Note: This appears to be an ETF/Fund. Traditional stock ratios (PE, PEG, P/S) may not be meaningful for ETFs since they track baskets of securities. Consider expense ratio, dividend yield, and tracking error instead."
)

// Disclaimer returns the warning shown alongside every valuation.
func Disclaimer(name string, aiSourced bool) string {
	text := disclaimer
	if aiSourced {
		text += aiSourceNote
	}
	if IsFund(name) {
		text += fundNote
	}
	return text
}
