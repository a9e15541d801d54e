package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"market-insight/internal/dto"
	"market-insight/internal/model"
	"market-insight/internal/repository"
	"market-insight/internal/valuation"
	"market-insight/pkg/cache"
	"market-insight/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestValuationService(yahoo *MockYahooFinanceRepository, source valuation.RatioSource, history repository.AnalysisHistoryRepository) *valuationService {
	svc := NewValuationService(testConfig(), logger.NewNop(), cache.NewCache(cache.NoExpiration, 0), yahoo, source, history)
	s := svc.(*valuationService)
	s.now = func() time.Time { return day0 }
	return s
}

func TestValuationService_YahooRatiosOnly(t *testing.T) {
	yahoo := new(MockYahooFinanceRepository)
	yahoo.On("GetChart", mock.Anything, symbolIs("AAPL")).Return(chartData("AAPL", 5, 190, 1), nil).Once()
	yahoo.On("GetQuoteSummary", mock.Anything, "AAPL").Return(valuation.Ratios{
		PERatio:      valuation.Float(30),
		PEGRatio:     valuation.Float(2.2),
		PriceToSales: valuation.Float(7.5),
	}, nil).Once()

	ai := new(MockAIRepository)
	history := new(MockHistoryRepository)
	history.On("SaveValuationReport", mock.Anything, mock.MatchedBy(func(r *model.ValuationReport) bool {
		return r.Symbol == "AAPL" && r.OverallValuation == valuation.OverallOvervalued
	})).Return(nil).Once()

	svc := newTestValuationService(yahoo, ai, history)

	result, err := svc.Valuate(context.Background(), "Apple")
	require.NoError(t, err)

	assert.Equal(t, dto.DataSourceYahoo, result.Stock.DataSource)
	assert.Equal(t, 194.0, result.Stock.CurrentPrice)
	assert.Equal(t, valuation.OverallOvervalued, result.Valuation.OverallValuation)
	assert.Equal(t, valuation.RiskHigh, result.Valuation.RiskLevel)
	assert.Contains(t, result.Valuation.Explanation, "AAPL Inc. at 194 USD")
	assert.NotContains(t, result.Disclaimer, "sourced using AI")
	ai.AssertNotCalled(t, "FetchRatios", mock.Anything, mock.Anything, mock.Anything)

	cached, err := svc.Valuate(context.Background(), "apple")
	require.NoError(t, err)
	assert.Same(t, result, cached)

	yahoo.AssertExpectations(t)
	history.AssertExpectations(t)
}

func TestValuationService_EnrichesMissingRatios(t *testing.T) {
	yahoo := new(MockYahooFinanceRepository)
	yahoo.On("GetChart", mock.Anything, symbolIs("NVDA")).Return(chartData("NVDA", 5, 100, 1), nil)
	yahoo.On("GetQuoteSummary", mock.Anything, "NVDA").Return(valuation.Ratios{}, errors.New("unauthorized"))

	ai := new(MockAIRepository)
	ai.On("FetchRatios", mock.Anything, "NVDA", "NVDA Inc.").Return(valuation.Ratios{
		PERatio:      valuation.Float(8),
		PEGRatio:     valuation.Float(0.4),
		PriceToSales: valuation.Float(3),
	}, nil).Once()

	svc := newTestValuationService(yahoo, ai, repository.NewNoopHistoryRepository())

	result, err := svc.Valuate(context.Background(), "nvidia")
	require.NoError(t, err)

	assert.Equal(t, dto.DataSourceAIYahoo, result.Stock.DataSource)
	assert.Equal(t, valuation.OverallUndervalued, result.Valuation.OverallValuation)
	assert.Contains(t, result.Disclaimer, "sourced using AI")
	ai.AssertExpectations(t)
}

func TestValuationService_WithoutRatioSource(t *testing.T) {
	yahoo := new(MockYahooFinanceRepository)
	yahoo.On("GetChart", mock.Anything, symbolIs("SPY")).Return(chartData("SPY", 5, 450, 1), nil)
	yahoo.On("GetQuoteSummary", mock.Anything, "SPY").Return(valuation.Ratios{}, nil)

	svc := newTestValuationService(yahoo, nil, repository.NewNoopHistoryRepository())

	result, err := svc.Valuate(context.Background(), "sp500 etf")
	require.NoError(t, err)

	assert.Equal(t, dto.DataSourceYahoo, result.Stock.DataSource)
	assert.Equal(t, valuation.InterpretationNA, result.Valuation.PEAnalysis.Interpretation)
	assert.Equal(t, valuation.OverallNeutral, result.Valuation.OverallValuation)
	assert.Contains(t, result.Disclaimer, "ETF Analysis Note")
}

func TestValuationService_Errors(t *testing.T) {
	yahoo := new(MockYahooFinanceRepository)
	yahoo.On("GetChart", mock.Anything, mock.Anything).Return(nil, repository.ErrNoData)
	yahoo.On("GetQuoteSummary", mock.Anything, mock.Anything).Return(valuation.Ratios{}, nil)

	svc := newTestValuationService(yahoo, nil, repository.NewNoopHistoryRepository())

	_, err := svc.Valuate(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrInvalidStock)

	_, err = svc.Valuate(context.Background(), "unknowncorp")
	assert.ErrorIs(t, err, repository.ErrNoData)
}

func TestValuationService_ListHistory(t *testing.T) {
	history := new(MockHistoryRepository)
	history.On("ListValuationReports", mock.Anything, 2).Return([]model.ValuationReport{{Symbol: "AAPL"}}, nil).Once()
	history.On("ListValuationReports", mock.Anything, 1).Return(nil, errors.New("db down")).Once()

	svc := newTestValuationService(new(MockYahooFinanceRepository), nil, history)

	reports, err := svc.ListHistory(context.Background(), "apple", 10)
	require.NoError(t, err)
	assert.Len(t, reports, 1)

	_, err = svc.ListHistory(context.Background(), "", 10)
	assert.Error(t, err)
	history.AssertExpectations(t)
}
