package dto

// Cache keys.
const (
	KeySentiment       = "sentiment:%s:%s"
	KeyVolatility      = "volatility:%s"
	KeyStockValuation  = "stock_valuation:%s"
	KeyMarketAnalysis  = "market_analysis:%s:%s:%s"
	KeyAssetComparison = "asset_comparison:%s"
)

const (
	IntervalDaily = "1d"
	IntervalHour  = "1h"
)

const (
	DataSourceYahoo   = "yahoo"
	DataSourceAIYahoo = "ai+yahoo"
)

const (
	TermDayTrade      = "day trade"
	TermSwingTrade    = "swing trade"
	TermPositionTrade = "position trade"
)

const (
	RiskConservative = "conservative"
	RiskModerate     = "moderate"
	RiskAggressive   = "aggressive"
)
