package dto

import (
	"time"

	"market-insight/internal/sentiment"
)

type SentimentRequest struct {
	Timeframe string `query:"timeframe" validate:"omitempty,oneof=10d 30d 3m 6m 1y 3y"`
	Variant   string `query:"variant" validate:"omitempty,oneof=statistical cyclical simulated"`
}

type SentimentReport struct {
	sentiment.Summary
	Timeframe   string    `json:"timeframe"`
	Variant     string    `json:"variant"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// VolatilityReport describes the latest level of the volatility index.
type VolatilityReport struct {
	Symbol         string  `json:"symbol"`
	Level          float64 `json:"level"`
	PreviousClose  float64 `json:"previousClose"`
	DayHigh        float64 `json:"dayHigh"`
	DayLow         float64 `json:"dayLow"`
	ChangePercent  float64 `json:"changePercent"`
	Interpretation string  `json:"interpretation"`
	Description    string  `json:"description"`
}

// InterpretVolatility buckets a VIX level into a label and a short reading.
func InterpretVolatility(level float64) (string, string) {
	switch {
	case level < 12:
		return "Very Low", "Extreme complacency. Markets are calm and hedging is cheap."
	case level < 20:
		return "Low", "Normal, stable conditions with modest expected swings."
	case level < 30:
		return "Normal", "Elevated uncertainty. Expect larger daily moves."
	case level < 40:
		return "High", "Significant fear in the market. Volatility is well above average."
	default:
		return "Very High", "Panic conditions. Extreme fear often marks capitulation."
	}
}
