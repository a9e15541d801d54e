package dto

import (
	"time"

	"market-insight/internal/valuation"
)

type StockInfo struct {
	Symbol        string           `json:"symbol"`
	CompanyName   string           `json:"companyName"`
	CurrentPrice  float64          `json:"currentPrice"`
	PreviousClose float64          `json:"previousClose"`
	DayHigh       float64          `json:"dayHigh"`
	DayLow        float64          `json:"dayLow"`
	Volume        int64            `json:"volume"`
	Currency      string           `json:"currency"`
	Exchange      string           `json:"exchange"`
	Ratios        valuation.Ratios `json:"ratios"`
	DataSource    string           `json:"dataSource"`
}

type StockValuation struct {
	Stock       StockInfo         `json:"stockData"`
	Valuation   valuation.Verdict `json:"valuation"`
	Disclaimer  string            `json:"disclaimer"`
	GeneratedAt time.Time         `json:"generatedAt"`
}
