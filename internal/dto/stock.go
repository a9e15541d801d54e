package dto

import "market-insight/internal/sentiment"

// YahooFinanceResponse is the v8 chart payload. Quote arrays contain nulls
// for periods without trades.
type YahooFinanceResponse struct {
	Chart struct {
		Result []struct {
			Meta       YahooChartMeta `json:"meta"`
			Timestamp  []int64        `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *YahooError `json:"error"`
	} `json:"chart"`
}

type YahooChartMeta struct {
	Symbol               string  `json:"symbol"`
	Currency             string  `json:"currency"`
	ExchangeName         string  `json:"exchangeName"`
	LongName             string  `json:"longName"`
	ShortName            string  `json:"shortName"`
	RegularMarketPrice   float64 `json:"regularMarketPrice"`
	PreviousClose        float64 `json:"previousClose"`
	ChartPreviousClose   float64 `json:"chartPreviousClose"`
	RegularMarketDayHigh float64 `json:"regularMarketDayHigh"`
	RegularMarketDayLow  float64 `json:"regularMarketDayLow"`
	RegularMarketVolume  int64   `json:"regularMarketVolume"`
}

type YahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *YahooError) Error() string {
	return e.Code + ": " + e.Description
}

// YahooValue is the {"raw": 1.23, "fmt": "1.23"} wrapper used by quoteSummary.
type YahooValue struct {
	Raw *float64 `json:"raw"`
}

type YahooQuoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			DefaultKeyStatistics struct {
				TrailingPE                   YahooValue `json:"trailingPE"`
				PegRatio                     YahooValue `json:"pegRatio"`
				PriceToSalesTrailing12Months YahooValue `json:"priceToSalesTrailing12Months"`
				PriceToBook                  YahooValue `json:"priceToBook"`
				Beta                         YahooValue `json:"beta"`
			} `json:"defaultKeyStatistics"`
			FinancialData struct {
				EarningsGrowth YahooValue `json:"earningsGrowth"`
				RevenueGrowth  YahooValue `json:"revenueGrowth"`
			} `json:"financialData"`
			SummaryDetail struct {
				TrailingPE                   YahooValue `json:"trailingPE"`
				MarketCap                    YahooValue `json:"marketCap"`
				PriceToSalesTrailing12Months YahooValue `json:"priceToSalesTrailing12Months"`
				Beta                         YahooValue `json:"beta"`
			} `json:"summaryDetail"`
		} `json:"result"`
		Error *YahooError `json:"error"`
	} `json:"quoteSummary"`
}

// MarketQuote is the latest snapshot of one instrument.
type MarketQuote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	CurrentPrice  float64 `json:"current_price"`
	PreviousClose float64 `json:"previous_close"`
	DayHigh       float64 `json:"day_high"`
	DayLow        float64 `json:"day_low"`
	Volume        int64   `json:"volume"`
	Currency      string  `json:"currency"`
	Exchange      string  `json:"exchange"`
}

// DayChangePercent is 0 when the previous close is unknown.
func (q MarketQuote) DayChangePercent() float64 {
	if q.PreviousClose == 0 {
		return 0
	}
	return (q.CurrentPrice - q.PreviousClose) / q.PreviousClose * 100
}

type StockData struct {
	Quote    MarketQuote       `json:"quote"`
	Range    string            `json:"range"`
	Interval string            `json:"interval"`
	OHLCV    []sentiment.OHLCV `json:"ohlcv"`
}

func (s *StockData) Closes() []float64 {
	closes := make([]float64, len(s.OHLCV))
	for i, c := range s.OHLCV {
		closes[i] = c.Close
	}
	return closes
}

type GetStockDataParam struct {
	Symbol   string `json:"symbol"`
	Days     int    `json:"days"`
	Interval string `json:"interval"`
}
