package service

import (
	"context"
	"errors"
	"testing"

	"market-insight/pkg/cache"
	"market-insight/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestComparisonService_Compare(t *testing.T) {
	yahoo := new(MockYahooFinanceRepository)
	// Flat series: no volatility, no change.
	yahoo.On("GetChart", mock.Anything, symbolIs("AAPL")).Return(chartData("AAPL", 25, 100, 0), nil).Once()
	// Steady climb.
	yahoo.On("GetChart", mock.Anything, symbolIs("BTC-USD")).Return(chartData("BTC-USD", 25, 100, 5), nil).Once()
	// Steady decline.
	yahoo.On("GetChart", mock.Anything, symbolIs("GC=F")).Return(chartData("GC=F", 25, 200, -1), nil).Once()

	svc := NewComparisonService(testConfig(), logger.NewNop(), cache.NewCache(cache.NoExpiration, 0), yahoo)

	result, err := svc.Compare(context.Background(), []string{"apple", "bitcoin", " gold "})
	require.NoError(t, err)
	require.Len(t, result.Assets, 3)

	assert.Equal(t, "apple", result.Assets[0].Asset)
	assert.Equal(t, "gold", result.Assets[2].Asset)
	assert.Equal(t, 0.0, result.Assets[0].Volatility)
	assert.Equal(t, 0.0, result.Assets[0].DayChangePercent)
	assert.Greater(t, result.Assets[1].Volatility, 0.0)
	assert.Equal(t, 120.0, result.Assets[1].PeriodChange)

	assert.Equal(t, "bitcoin", result.BestPerformer)
	assert.Equal(t, "gold", result.WorstPerformer)
	assert.Equal(t, "bitcoin", result.MostVolatile)

	cached, err := svc.Compare(context.Background(), []string{"apple", "bitcoin", "gold"})
	require.NoError(t, err)
	assert.Same(t, result, cached)
	yahoo.AssertExpectations(t)
}

func TestComparisonService_AssetCount(t *testing.T) {
	svc := NewComparisonService(testConfig(), logger.NewNop(), cache.NewCache(cache.NoExpiration, 0), new(MockYahooFinanceRepository))

	tests := []struct {
		name   string
		assets []string
	}{
		{name: "one", assets: []string{"apple"}},
		{name: "blank entries do not count", assets: []string{"apple", " "}},
		{name: "six", assets: []string{"a", "b", "c", "d", "e", "f"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Compare(context.Background(), tt.assets)
			assert.ErrorIs(t, err, ErrInvalidAssets)
		})
	}
}

func TestComparisonService_FetchError(t *testing.T) {
	yahoo := new(MockYahooFinanceRepository)
	yahoo.On("GetChart", mock.Anything, symbolIs("AAPL")).Return(chartData("AAPL", 25, 100, 0), nil)
	yahoo.On("GetChart", mock.Anything, symbolIs("ZZZZ")).Return(nil, errors.New("not found"))

	svc := NewComparisonService(testConfig(), logger.NewNop(), cache.NewCache(cache.NoExpiration, 0), yahoo)

	_, err := svc.Compare(context.Background(), []string{"apple", "zzzz"})
	assert.ErrorContains(t, err, "zzzz")
}
