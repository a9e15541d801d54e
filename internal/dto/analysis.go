package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

type MarketAnalysisRequest struct {
	Asset     string `json:"asset" validate:"required"`
	Term      string `json:"term" validate:"required"`
	RiskLevel string `json:"risk_level" validate:"required"`
}

// FlexString accepts either a JSON string or a JSON number. Language models
// are inconsistent about quoting price levels.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(strconv.FormatFloat(n, 'f', -1, 64))
	return nil
}

type PriceLevel struct {
	Price     FlexString `json:"price"`
	Rationale string     `json:"rationale"`
}

type TradingStrategy struct {
	Direction   string     `json:"direction"`
	Rationale   string     `json:"rationale"`
	Entry       PriceLevel `json:"entry"`
	StopLoss    PriceLevel `json:"stop_loss"`
	TakeProfit1 PriceLevel `json:"take_profit_1"`
	TakeProfit2 PriceLevel `json:"take_profit_2"`
}

// MarketAnalysis is the structured answer returned by the language model,
// decorated with the market context it was produced from.
type MarketAnalysis struct {
	MarketSummary     string          `json:"market_summary"`
	KeyDrivers        []string        `json:"key_drivers"`
	TechnicalAnalysis string          `json:"technical_analysis"`
	RiskAssessment    string          `json:"risk_assessment"`
	TradingStrategy   TradingStrategy `json:"trading_strategy"`

	CurrentMarketPrice float64     `json:"current_market_price"`
	Asset              string      `json:"asset"`
	Symbol             string      `json:"symbol"`
	Term               string      `json:"term"`
	RiskLevel          string      `json:"risk_level"`
	Quote              MarketQuote `json:"market_data"`
	Model              string      `json:"model"`
	GeneratedAt        time.Time   `json:"generated_at"`
	Prompt             string      `json:"-"`
}

// AnalysisPromptParam carries the market context handed to the language model.
type AnalysisPromptParam struct {
	Asset     string
	Symbol    string
	Term      string
	RiskLevel string
	Quote     MarketQuote
}
