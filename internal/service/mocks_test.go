package service

import (
	"context"
	"time"

	"market-insight/config"
	"market-insight/internal/dto"
	"market-insight/internal/model"
	"market-insight/internal/sentiment"
	"market-insight/internal/valuation"
	"market-insight/pkg/utils"

	"github.com/stretchr/testify/mock"
)

// MockYahooFinanceRepository is a mock implementation of YahooFinanceRepository
type MockYahooFinanceRepository struct {
	mock.Mock
}

func (m *MockYahooFinanceRepository) GetChart(ctx context.Context, param dto.GetStockDataParam) (*dto.StockData, error) {
	args := m.Called(ctx, param)
	if data, ok := args.Get(0).(*dto.StockData); ok {
		return data, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockYahooFinanceRepository) GetQuoteSummary(ctx context.Context, symbol string) (valuation.Ratios, error) {
	args := m.Called(ctx, symbol)
	return args.Get(0).(valuation.Ratios), args.Error(1)
}

// MockAIRepository is a mock implementation of AIRepository
type MockAIRepository struct {
	mock.Mock
}

func (m *MockAIRepository) FetchRatios(ctx context.Context, symbol, companyName string) (valuation.Ratios, error) {
	args := m.Called(ctx, symbol, companyName)
	return args.Get(0).(valuation.Ratios), args.Error(1)
}

func (m *MockAIRepository) AnalyzeMarket(ctx context.Context, param dto.AnalysisPromptParam) (*dto.MarketAnalysis, error) {
	args := m.Called(ctx, param)
	if result, ok := args.Get(0).(*dto.MarketAnalysis); ok {
		return result, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAIRepository) Model() string {
	return "test-model"
}

// MockHistoryRepository is a mock implementation of AnalysisHistoryRepository
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) SaveSentimentSnapshot(ctx context.Context, snapshot *model.SentimentSnapshot) error {
	return m.Called(ctx, snapshot).Error(0)
}

func (m *MockHistoryRepository) SaveValuationReport(ctx context.Context, report *model.ValuationReport) error {
	return m.Called(ctx, report).Error(0)
}

func (m *MockHistoryRepository) SaveMarketAnalysis(ctx context.Context, analysis *model.MarketAnalysis) error {
	return m.Called(ctx, analysis).Error(0)
}

func (m *MockHistoryRepository) ListSentimentSnapshots(ctx context.Context, opts ...utils.DBOption) ([]model.SentimentSnapshot, error) {
	args := m.Called(ctx, len(opts))
	if snapshots, ok := args.Get(0).([]model.SentimentSnapshot); ok {
		return snapshots, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockHistoryRepository) ListValuationReports(ctx context.Context, opts ...utils.DBOption) ([]model.ValuationReport, error) {
	args := m.Called(ctx, len(opts))
	if reports, ok := args.Get(0).([]model.ValuationReport); ok {
		return reports, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockHistoryRepository) DeleteOlderThan(ctx context.Context, date time.Time) (int64, error) {
	args := m.Called(ctx, date)
	return args.Get(0).(int64), args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{
		Cache: config.Cache{
			SentimentTTL:       time.Minute,
			StockTTL:           time.Minute,
			MarketAnalysisTTL:  time.Minute,
			AssetComparisonTTL: time.Minute,
		},
		Sentiment: config.Sentiment{
			BroadSymbol:      "SPY",
			SecondarySymbol:  "QQQ",
			VolatilitySymbol: "^VIX",
			DefaultVariant:   "statistical",
			DefaultTimeframe: "30d",
		},
		Scheduler: config.Scheduler{
			SentimentRefresh: "*/15 * * * *",
			HistoryRetention: 24 * time.Hour,
			TimeoutDuration:  time.Second,
		},
	}
}

var day0 = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

// chartData builds n daily bars starting at price and moving by step per day.
func chartData(symbol string, n int, price, step float64) *dto.StockData {
	bars := make([]sentiment.OHLCV, n)
	for i := range bars {
		c := price + step*float64(i)
		bars[i] = sentiment.OHLCV{
			Timestamp: day0.AddDate(0, 0, i),
			Open:      c - step/2,
			High:      c + 1,
			Low:       c - 1,
			Close:     c,
			Volume:    int64(1000 + 10*i),
		}
	}
	last := bars[n-1]
	prev := last.Close
	if n > 1 {
		prev = bars[n-2].Close
	}
	return &dto.StockData{
		Quote: dto.MarketQuote{
			Symbol:        symbol,
			Name:          symbol + " Inc.",
			CurrentPrice:  last.Close,
			PreviousClose: prev,
			DayHigh:       last.High,
			DayLow:        last.Low,
			Volume:        last.Volume,
			Currency:      "USD",
			Exchange:      "NMS",
		},
		OHLCV: bars,
	}
}

func symbolIs(symbol string) interface{} {
	return mock.MatchedBy(func(p dto.GetStockDataParam) bool { return p.Symbol == symbol })
}
