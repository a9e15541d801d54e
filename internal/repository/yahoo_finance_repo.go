package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"market-insight/config"
	"market-insight/internal/dto"
	"market-insight/internal/sentiment"
	"market-insight/internal/valuation"
	"market-insight/pkg/httpclient"
	"market-insight/pkg/logger"

	"golang.org/x/time/rate"
)

type YahooFinanceRepository interface {
	GetChart(ctx context.Context, param dto.GetStockDataParam) (*dto.StockData, error)
	GetQuoteSummary(ctx context.Context, symbol string) (valuation.Ratios, error)
}

type yahooFinanceRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
	now            func() time.Time
}

func NewYahooFinanceRepository(cfg *config.Config, log *logger.Logger) YahooFinanceRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.YahooFinance.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	return &yahooFinanceRepository{
		httpClient:     httpclient.New(log, cfg.YahooFinance.BaseURL, cfg.YahooFinance.Timeout, ""),
		cfg:            cfg,
		logger:         log,
		requestLimiter: requestLimiter,
		now:            time.Now,
	}
}

func (r *yahooFinanceRepository) headers() map[string]string {
	return map[string]string{
		"User-Agent":      r.cfg.YahooFinance.UserAgent,
		"Accept":          "application/json, text/plain, */*",
		"Accept-Language": "en-US,en;q=0.9",
		"Connection":      "keep-alive",
		"Referer":         "https://finance.yahoo.com/",
	}
}

func (r *yahooFinanceRepository) wait(ctx context.Context) error {
	if r.requestLimiter.Tokens() < 1 {
		r.logger.WarnContext(ctx, "Yahoo Finance API request limit reached, waiting",
			logger.IntField("max_request_per_minute", r.cfg.YahooFinance.MaxRequestPerMinute),
		)
	}
	return r.requestLimiter.Wait(ctx)
}

func (r *yahooFinanceRepository) GetChart(ctx context.Context, param dto.GetStockDataParam) (*dto.StockData, error) {
	if param.Days <= 0 {
		return nil, fmt.Errorf("invalid period: %d days", param.Days)
	}
	if param.Interval == "" {
		param.Interval = dto.IntervalDaily
	}
	if err := r.wait(ctx); err != nil {
		return nil, err
	}

	now := r.now()
	queryParams := map[string]string{
		"period1":        strconv.FormatInt(now.AddDate(0, 0, -param.Days).Unix(), 10),
		"period2":        strconv.FormatInt(now.Unix(), 10),
		"interval":       param.Interval,
		"includePrePost": "false",
		"events":         "div,split",
	}

	var yahooResp dto.YahooFinanceResponse
	resp, err := r.httpClient.Get(ctx, "/v8/finance/chart/"+url.PathEscape(param.Symbol), queryParams, r.headers(), &yahooResp)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data from yahoo finance: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.ErrorContext(ctx, "Yahoo Finance API returned Non-OK status",
			logger.StringField("symbol", param.Symbol),
			logger.IntField("status_code", resp.StatusCode))
		return nil, fmt.Errorf("yahoo finance api returned status: %d", resp.StatusCode)
	}

	if yahooResp.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo finance api error: %w", yahooResp.Chart.Error)
	}

	if len(yahooResp.Chart.Result) == 0 || len(yahooResp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("chart for %s: %w", param.Symbol, ErrNoData)
	}

	result := yahooResp.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	var ohlcv []sentiment.OHLCV
	for i, ts := range result.Timestamp {
		// Bars without a close are holidays or halted sessions.
		closePrice := valueAt(quote.Close, i)
		if closePrice == nil {
			continue
		}
		bar := sentiment.OHLCV{
			Timestamp: time.Unix(ts, 0).UTC(),
			Open:      orDefault(valueAt(quote.Open, i), *closePrice),
			High:      orDefault(valueAt(quote.High, i), *closePrice),
			Low:       orDefault(valueAt(quote.Low, i), *closePrice),
			Close:     *closePrice,
		}
		if v := valueAt(quote.Volume, i); v != nil {
			bar.Volume = *v
		}
		ohlcv = append(ohlcv, bar)
	}

	if len(ohlcv) == 0 {
		return nil, fmt.Errorf("no valid OHLCV for %s: %w", param.Symbol, ErrNoData)
	}

	return &dto.StockData{
		Quote:    quoteFromMeta(result.Meta, param.Symbol, ohlcv),
		Range:    strconv.Itoa(param.Days) + "d",
		Interval: param.Interval,
		OHLCV:    ohlcv,
	}, nil
}

func quoteFromMeta(meta dto.YahooChartMeta, symbol string, ohlcv []sentiment.OHLCV) dto.MarketQuote {
	q := dto.MarketQuote{
		Symbol:        meta.Symbol,
		Name:          meta.LongName,
		CurrentPrice:  meta.RegularMarketPrice,
		PreviousClose: meta.PreviousClose,
		DayHigh:       meta.RegularMarketDayHigh,
		DayLow:        meta.RegularMarketDayLow,
		Volume:        meta.RegularMarketVolume,
		Currency:      meta.Currency,
		Exchange:      meta.ExchangeName,
	}
	if q.Symbol == "" {
		q.Symbol = symbol
	}
	if q.Name == "" {
		q.Name = meta.ShortName
	}
	if q.Name == "" {
		q.Name = q.Symbol
	}
	last := ohlcv[len(ohlcv)-1]
	if q.CurrentPrice <= 0 {
		q.CurrentPrice = last.Close
	}
	if q.PreviousClose <= 0 {
		q.PreviousClose = meta.ChartPreviousClose
	}
	if q.PreviousClose <= 0 && len(ohlcv) > 1 {
		q.PreviousClose = ohlcv[len(ohlcv)-2].Close
	}
	if q.DayHigh <= 0 {
		q.DayHigh = last.High
	}
	if q.DayLow <= 0 {
		q.DayLow = last.Low
	}
	if q.Volume <= 0 {
		q.Volume = last.Volume
	}
	return q
}

func (r *yahooFinanceRepository) GetQuoteSummary(ctx context.Context, symbol string) (valuation.Ratios, error) {
	if err := r.wait(ctx); err != nil {
		return valuation.Ratios{}, err
	}

	queryParams := map[string]string{
		"modules": "defaultKeyStatistics,financialData,summaryDetail",
	}

	var summaryResp dto.YahooQuoteSummaryResponse
	resp, err := r.httpClient.Get(ctx, "/v10/finance/quoteSummary/"+url.PathEscape(symbol), queryParams, r.headers(), &summaryResp)
	if err != nil {
		return valuation.Ratios{}, fmt.Errorf("failed to fetch quote summary from yahoo finance: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.WarnContext(ctx, "Yahoo Finance quote summary returned Non-OK status",
			logger.StringField("symbol", symbol),
			logger.IntField("status_code", resp.StatusCode))
		return valuation.Ratios{}, fmt.Errorf("yahoo finance api returned status: %d", resp.StatusCode)
	}

	if summaryResp.QuoteSummary.Error != nil {
		return valuation.Ratios{}, fmt.Errorf("yahoo finance api error: %w", summaryResp.QuoteSummary.Error)
	}
	if len(summaryResp.QuoteSummary.Result) == 0 {
		return valuation.Ratios{}, fmt.Errorf("quote summary for %s: %w", symbol, ErrNoData)
	}

	res := summaryResp.QuoteSummary.Result[0]
	stats, fin, detail := res.DefaultKeyStatistics, res.FinancialData, res.SummaryDetail

	return valuation.Ratios{
		PERatio:        firstRaw(stats.TrailingPE, detail.TrailingPE),
		PEGRatio:       stats.PegRatio.Raw,
		PriceToSales:   firstRaw(stats.PriceToSalesTrailing12Months, detail.PriceToSalesTrailing12Months),
		PriceToBook:    stats.PriceToBook.Raw,
		MarketCap:      detail.MarketCap.Raw,
		Beta:           firstRaw(stats.Beta, detail.Beta),
		EarningsGrowth: fin.EarningsGrowth.Raw,
		RevenueGrowth:  fin.RevenueGrowth.Raw,
	}, nil
}

func firstRaw(values ...dto.YahooValue) *float64 {
	for _, v := range values {
		if v.Raw != nil {
			return v.Raw
		}
	}
	return nil
}

func valueAt[T any](values []*T, i int) *T {
	if i >= len(values) {
		return nil
	}
	return values[i]
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
