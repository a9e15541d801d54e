package service

import (
	"context"
	"testing"
	"time"

	"market-insight/internal/dto"
	"market-insight/internal/model"
	"market-insight/internal/repository"
	"market-insight/pkg/cache"
	"market-insight/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMarketAnalysisService_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.MarketAnalysisRequest
		noAI    bool
		wantErr error
	}{
		{name: "missing asset", req: dto.MarketAnalysisRequest{Term: "day trade", RiskLevel: "moderate"}, wantErr: ErrInvalidAsset},
		{name: "bad term", req: dto.MarketAnalysisRequest{Asset: "gold", Term: "scalp", RiskLevel: "moderate"}, wantErr: ErrInvalidTerm},
		{name: "bad risk", req: dto.MarketAnalysisRequest{Asset: "gold", Term: "swing trade", RiskLevel: "yolo"}, wantErr: ErrInvalidRiskLevel},
		{name: "no provider", req: dto.MarketAnalysisRequest{Asset: "gold", Term: "swing trade", RiskLevel: "moderate"}, noAI: true, wantErr: ErrAINotConfigured},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ai repository.AIRepository = new(MockAIRepository)
			if tt.noAI {
				ai = nil
			}
			svc := NewMarketAnalysisService(testConfig(), logger.NewNop(), cache.NewCache(cache.NoExpiration, 0),
				new(MockYahooFinanceRepository), ai, repository.NewNoopHistoryRepository())

			_, err := svc.Analyze(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestMarketAnalysisService_Analyze(t *testing.T) {
	yahoo := new(MockYahooFinanceRepository)
	yahoo.On("GetChart", mock.Anything, symbolIs("GC=F")).Return(chartData("GC=F", 5, 2300, 10), nil).Once()

	ai := new(MockAIRepository)
	ai.On("AnalyzeMarket", mock.Anything, mock.MatchedBy(func(p dto.AnalysisPromptParam) bool {
		return p.Symbol == "GC=F" && p.Term == dto.TermSwingTrade && p.RiskLevel == dto.RiskAggressive && p.Quote.CurrentPrice == 2340
	})).Return(&dto.MarketAnalysis{
		MarketSummary:      "Gold consolidating",
		Symbol:             "GC=F",
		Term:               dto.TermSwingTrade,
		RiskLevel:          dto.RiskAggressive,
		CurrentMarketPrice: 2340,
		Model:              "test-model",
	}, nil).Once()

	history := new(MockHistoryRepository)
	history.On("SaveMarketAnalysis", mock.Anything, mock.MatchedBy(func(m *model.MarketAnalysis) bool {
		return m.Symbol == "GC=F" && m.MarketPrice == 2340
	})).Return(nil).Once()

	svc := NewMarketAnalysisService(testConfig(), logger.NewNop(), cache.NewCache(cache.NoExpiration, 0), yahoo, ai, history)
	svc.(*marketAnalysisService).now = func() time.Time { return day0 }

	req := dto.MarketAnalysisRequest{Asset: "Gold", Term: "Swing Trade", RiskLevel: "AGGRESSIVE"}
	result, err := svc.Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Gold consolidating", result.MarketSummary)
	assert.Equal(t, day0, result.GeneratedAt)

	again, err := svc.Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.Same(t, result, again)

	yahoo.AssertExpectations(t)
	ai.AssertExpectations(t)
	history.AssertExpectations(t)
}
