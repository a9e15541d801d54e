package dto

import "time"

type CompareRequest struct {
	Assets []string `json:"assets" validate:"required,min=2,max=5,dive,required"`
}

type AssetSnapshot struct {
	Asset            string  `json:"asset"`
	Symbol           string  `json:"symbol"`
	Name             string  `json:"name"`
	Price            float64 `json:"price"`
	PreviousClose    float64 `json:"previousClose"`
	DayChangePercent float64 `json:"dayChangePercent"`
	PeriodChange     float64 `json:"periodChangePercent"`
	Volatility       float64 `json:"volatility"`
	Currency         string  `json:"currency"`
}

type AssetComparison struct {
	Assets         []AssetSnapshot `json:"assets"`
	BestPerformer  string          `json:"bestPerformer"`
	WorstPerformer string          `json:"worstPerformer"`
	MostVolatile   string          `json:"mostVolatile"`
	GeneratedAt    time.Time       `json:"generatedAt"`
}
