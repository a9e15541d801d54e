package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"market-insight/internal/dto"
	"market-insight/internal/model"
	"market-insight/internal/repository"
	"market-insight/internal/sentiment"
	"market-insight/internal/service"
	"market-insight/pkg/logger"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSentimentService struct {
	mock.Mock
}

func (m *MockSentimentService) GetSentiment(ctx context.Context, timeframe, variant string) (*dto.SentimentReport, error) {
	args := m.Called(ctx, timeframe, variant)
	if r, ok := args.Get(0).(*dto.SentimentReport); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSentimentService) RefreshSentiment(ctx context.Context) (*dto.SentimentReport, error) {
	args := m.Called(ctx)
	if r, ok := args.Get(0).(*dto.SentimentReport); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSentimentService) GetVolatility(ctx context.Context) (*dto.VolatilityReport, error) {
	args := m.Called(ctx)
	if r, ok := args.Get(0).(*dto.VolatilityReport); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSentimentService) ListHistory(ctx context.Context, limit int) ([]model.SentimentSnapshot, error) {
	args := m.Called(ctx, limit)
	if r, ok := args.Get(0).([]model.SentimentSnapshot); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockValuationService struct {
	mock.Mock
}

func (m *MockValuationService) Valuate(ctx context.Context, stockName string) (*dto.StockValuation, error) {
	args := m.Called(ctx, stockName)
	if r, ok := args.Get(0).(*dto.StockValuation); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockValuationService) ListHistory(ctx context.Context, stockName string, limit int) ([]model.ValuationReport, error) {
	args := m.Called(ctx, stockName, limit)
	if r, ok := args.Get(0).([]model.ValuationReport); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockMarketAnalysisService struct {
	mock.Mock
}

func (m *MockMarketAnalysisService) Analyze(ctx context.Context, req dto.MarketAnalysisRequest) (*dto.MarketAnalysis, error) {
	args := m.Called(ctx, req)
	if r, ok := args.Get(0).(*dto.MarketAnalysis); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockComparisonService struct {
	mock.Mock
}

func (m *MockComparisonService) Compare(ctx context.Context, assets []string) (*dto.AssetComparison, error) {
	args := m.Called(ctx, assets)
	if r, ok := args.Get(0).(*dto.AssetComparison); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

type testServer struct {
	echo       *echo.Echo
	sentiment  *MockSentimentService
	valuation  *MockValuationService
	analysis   *MockMarketAnalysisService
	comparison *MockComparisonService
}

func newTestServer() *testServer {
	ts := &testServer{
		echo:       echo.New(),
		sentiment:  new(MockSentimentService),
		valuation:  new(MockValuationService),
		analysis:   new(MockMarketAnalysisService),
		comparison: new(MockComparisonService),
	}
	svc := &service.Service{
		SentimentService:      ts.sentiment,
		ValuationService:      ts.valuation,
		MarketAnalysisService: ts.analysis,
		ComparisonService:     ts.comparison,
	}
	NewHttpAPIHandler(context.Background(), ts.echo, goValidator.New(), svc, logger.NewNop()).SetupRoutes()
	return ts
}

func (ts *testServer) do(method, target, body string) (*httptest.ResponseRecorder, dto.BaseResponse) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	ts.echo.ServeHTTP(rec, req)

	var resp dto.BaseResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	return rec, resp
}

func TestHealth(t *testing.T) {
	ts := newTestServer()
	rec, resp := ts.do(http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", resp.Message)
}

func TestGetSentiment(t *testing.T) {
	ts := newTestServer()
	ts.sentiment.On("GetSentiment", mock.Anything, "3m", "cyclical").Return(&dto.SentimentReport{
		Summary:   sentiment.Summary{Signal: sentiment.SignalBullish, DataSource: sentiment.SourceCyclical, HistoricalData: []sentiment.Point{}},
		Timeframe: "3m",
		Variant:   "cyclical",
	}, nil).Once()

	rec, resp := ts.do(http.MethodGet, "/api/v1/sentiment?timeframe=3m&variant=cyclical", "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "bullish", data["signal"])
	assert.Equal(t, "cyclical", data["dataSource"])
	assert.Equal(t, "3m", data["timeframe"])
	ts.sentiment.AssertExpectations(t)
}

func TestGetSentiment_Invalid(t *testing.T) {
	ts := newTestServer()

	rec, _ := ts.do(http.MethodGet, "/api/v1/sentiment?timeframe=2w", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = ts.do(http.MethodGet, "/api/v1/sentiment?variant=magic", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	ts.sentiment.AssertNotCalled(t, "GetSentiment", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetVolatility_UpstreamEmpty(t *testing.T) {
	ts := newTestServer()
	ts.sentiment.On("GetVolatility", mock.Anything).Return(nil, repository.ErrNoData)

	rec, _ := ts.do(http.MethodGet, "/api/v1/volatility", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetSentimentHistory_Limit(t *testing.T) {
	ts := newTestServer()
	ts.sentiment.On("ListHistory", mock.Anything, 5).Return([]model.SentimentSnapshot{}, nil).Once()
	ts.sentiment.On("ListHistory", mock.Anything, defaultHistoryLimit).Return([]model.SentimentSnapshot{}, nil).Once()

	rec, _ := ts.do(http.MethodGet, "/api/v1/sentiment/history?limit=5", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = ts.do(http.MethodGet, "/api/v1/sentiment/history?limit=abc", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	ts.sentiment.AssertExpectations(t)
}

func TestGetValuation(t *testing.T) {
	ts := newTestServer()
	ts.valuation.On("Valuate", mock.Anything, "apple").Return(&dto.StockValuation{
		Stock: dto.StockInfo{Symbol: "AAPL", DataSource: dto.DataSourceYahoo},
	}, nil).Once()
	ts.valuation.On("Valuate", mock.Anything, "broken").Return(nil, errors.New("upstream exploded")).Once()

	rec, resp := ts.do(http.MethodGet, "/api/v1/valuation/apple", "")
	require.Equal(t, http.StatusOK, rec.Code)
	stock := resp.Data.(map[string]interface{})["stockData"].(map[string]interface{})
	assert.Equal(t, "AAPL", stock["symbol"])

	rec, resp = ts.do(http.MethodGet, "/api/v1/valuation/broken", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "upstream exploded", resp.Message)
}

func TestAnalyzeMarket(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantCode   int
	}{
		{name: "ok", body: `{"asset":"gold","term":"swing trade","risk_level":"moderate"}`, wantCode: http.StatusOK},
		{name: "missing risk", body: `{"asset":"gold","term":"swing trade"}`, wantCode: http.StatusBadRequest},
		{name: "malformed", body: `{"asset":`, wantCode: http.StatusBadRequest},
		{name: "bad term", body: `{"asset":"gold","term":"scalp","risk_level":"moderate"}`, serviceErr: service.ErrInvalidTerm, wantCode: http.StatusBadRequest},
		{name: "no ai", body: `{"asset":"gold","term":"swing trade","risk_level":"moderate"}`, serviceErr: service.ErrAINotConfigured, wantCode: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer()
			if tt.serviceErr != nil {
				ts.analysis.On("Analyze", mock.Anything, mock.Anything).Return(nil, tt.serviceErr)
			} else {
				ts.analysis.On("Analyze", mock.Anything, mock.Anything).Return(&dto.MarketAnalysis{MarketSummary: "calm"}, nil)
			}

			rec, _ := ts.do(http.MethodPost, "/api/v1/analysis", tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestCompareAssets(t *testing.T) {
	ts := newTestServer()
	ts.comparison.On("Compare", mock.Anything, []string{"apple", "gold"}).Return(&dto.AssetComparison{BestPerformer: "gold"}, nil).Once()

	rec, resp := ts.do(http.MethodPost, "/api/v1/compare", `{"assets":["apple","gold"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gold", resp.Data.(map[string]interface{})["bestPerformer"])

	rec, _ = ts.do(http.MethodPost, "/api/v1/compare", `{"assets":["apple"]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = ts.do(http.MethodPost, "/api/v1/compare", `{"assets":["a","b","c","d","e","f"]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	ts.comparison.AssertExpectations(t)
}
