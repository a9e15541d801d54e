package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"market-insight/internal/dto"
	"market-insight/internal/valuation"
)

// AIRepository is a language model backend. It doubles as the
// valuation.RatioSource used to fill ratios the market data feed lacks.
type AIRepository interface {
	valuation.RatioSource
	AnalyzeMarket(ctx context.Context, param dto.AnalysisPromptParam) (*dto.MarketAnalysis, error)
	Model() string
}

const ratioSystemPrompt = `You are a financial data assistant. Your task is to find and return current financial ratios for stocks.

Return ONLY a JSON object with this exact structure (use null for unavailable data):

{
  "peRatio": 25.4,
  "pegRatio": 1.2,
  "priceToSales": 7.8,
  "priceToBook": 8.9,
  "marketCap": 3400000000000,
  "beta": 1.1,
  "earningsGrowth": 0.15,
  "revenueGrowth": 0.08
}

All numbers must be numeric values, not strings. Use null when the data is not available.`

func ratioUserPrompt(symbol, companyName string) string {
	return fmt.Sprintf(`Find the current financial ratios for %s (%s):

- P/E Ratio (trailing 12 months)
- PEG Ratio (5-year forward)
- P/S Ratio (trailing 12 months)
- P/B Ratio (most recent quarter)
- Market Cap
- Beta (5-year monthly vs S&P 500)
- Earnings Growth Rate (expected annual)
- Revenue Growth Rate (trailing 12 months)`, companyName, symbol)
}

var termDescriptions = map[string]string{
	dto.TermDayTrade:      "very short-term (1-2 days) with entries within 0.5-1% of current price",
	dto.TermSwingTrade:    "short to medium-term (1-2 weeks) with entries within 1-3% of current price",
	dto.TermPositionTrade: "medium to long-term (1-3 months) with entries within 3-7% of current price",
}

var riskDescriptions = map[string]string{
	dto.RiskConservative: "conservative (prioritizing capital preservation with modest returns) with a risk to reward ratio of 1:1.2",
	dto.RiskModerate:     "moderate (balanced approach between risk and reward) with a risk to reward ratio of 1:1.8",
	dto.RiskAggressive:   "aggressive (higher risk tolerance for potentially higher returns) with a risk to reward ratio of 1:2.8",
}

func describe(descriptions map[string]string, key string) string {
	if d, ok := descriptions[strings.ToLower(key)]; ok {
		return d
	}
	return key
}

func marketAnalysisSystemPrompt(param dto.AnalysisPromptParam) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are an expert financial analyst and trader with deep knowledge of markets, technical analysis and trading strategies.\n")
	fmt.Fprintf(&sb, "Your task is to analyze %s and provide a comprehensive trading strategy for a %s with %s risk level.\n\n", param.Asset, param.Term, param.RiskLevel)
	sb.WriteString(`Consider current price action, key technical levels (RSI, MACD, moving averages, support and resistance), recent news from the past 7 days, macroeconomic releases and prevailing market sentiment.

Format your response as a JSON object with the following structure:

{
    "market_summary": "Summary of current market conditions",
    "key_drivers": ["Key market drivers"],
    "technical_analysis": "Technical analysis with key indicators",
    "risk_assessment": "Assessment of market risks",
    "trading_strategy": {
        "direction": "LONG or SHORT",
        "rationale": "Why this direction",
        "entry": {"price": "Entry price or range", "rationale": "Why here"},
        "stop_loss": {"price": "Stop loss price", "rationale": "Why here"},
        "take_profit_1": {"price": "First target", "rationale": "Why here"},
        "take_profit_2": {"price": "Second target", "rationale": "Why here"}
    }
}

Rules:
- Price targets must be realistic and close to the current market price.
- Day trades: entry MUST be within 0.5-1% of current price.
- Swing trades: entry MUST be within 1-3% of current price.
- Position trades: entry MUST be within 3-7% of current price.`)
	return sb.String()
}

func marketAnalysisUserPrompt(param dto.AnalysisPromptParam) string {
	termDesc := describe(termDescriptions, param.Term)
	riskDesc := describe(riskDescriptions, param.RiskLevel)
	q := param.Quote

	var sb strings.Builder
	sb.WriteString("Please provide an advanced market analysis and trading strategy for:\n\n")
	fmt.Fprintf(&sb, "Asset: %s (%s)\n", param.Asset, param.Symbol)
	fmt.Fprintf(&sb, "Trading Term: %s (%s)\n", param.Term, termDesc)
	fmt.Fprintf(&sb, "Risk Level: %s (%s)\n\n", param.RiskLevel, riskDesc)
	sb.WriteString("Current Market Data:\n")
	fmt.Fprintf(&sb, "- Current Price: %.4f %s\n", q.CurrentPrice, q.Currency)
	fmt.Fprintf(&sb, "- Previous Close: %.4f\n", q.PreviousClose)
	fmt.Fprintf(&sb, "- Day High: %.4f\n", q.DayHigh)
	fmt.Fprintf(&sb, "- Day Low: %.4f\n", q.DayLow)
	fmt.Fprintf(&sb, "- Volume: %d\n", q.Volume)
	fmt.Fprintf(&sb, "- Exchange: %s\n\n", q.Exchange)
	fmt.Fprintf(&sb, "Develop a detailed %s trading strategy with a %s risk profile. Respond with the JSON object only.", termDesc, riskDesc)
	return sb.String()
}

// parseJSONResponse decodes model output, tolerating a surrounding markdown
// code fence.
func parseJSONResponse(text string, dest interface{}) error {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("empty model response: %w", ErrNoData)
	}
	return json.Unmarshal([]byte(text), dest)
}

// decorate attaches the market context the model was prompted with.
func decorate(result *dto.MarketAnalysis, param dto.AnalysisPromptParam, model, prompt string) {
	result.CurrentMarketPrice = param.Quote.CurrentPrice
	result.Asset = param.Asset
	result.Symbol = param.Symbol
	result.Term = param.Term
	result.RiskLevel = param.RiskLevel
	result.Quote = param.Quote
	result.Model = model
	result.Prompt = prompt
}
