package telegram

import (
	"errors"
	"fmt"
	"testing"

	"market-insight/internal/dto"
	"market-insight/internal/repository"
	"market-insight/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSentimentArgs(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		timeframe string
		variant   string
		wantErr   bool
	}{
		{name: "no args"},
		{name: "timeframe only", args: []string{"3m"}, timeframe: "3m"},
		{name: "variant first", args: []string{"Cyclical", "1y"}, timeframe: "1y", variant: "cyclical"},
		{name: "unknown option", args: []string{"2w"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timeframe, variant, err := parseSentimentArgs(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.timeframe, timeframe)
			assert.Equal(t, tt.variant, variant)
		})
	}
}

func TestParseAnalyzeArgs(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    dto.MarketAnalysisRequest
		wantErr bool
	}{
		{name: "short term", payload: "gold swing moderate", want: dto.MarketAnalysisRequest{Asset: "gold", Term: dto.TermSwingTrade, RiskLevel: dto.RiskModerate}},
		{name: "full term", payload: "Bitcoin day trade Aggressive", want: dto.MarketAnalysisRequest{Asset: "bitcoin", Term: dto.TermDayTrade, RiskLevel: dto.RiskAggressive}},
		{name: "multi word asset", payload: "sp500 etf position trade conservative", want: dto.MarketAnalysisRequest{Asset: "sp500 etf", Term: dto.TermPositionTrade, RiskLevel: dto.RiskConservative}},
		{name: "too short", payload: "gold moderate", wantErr: true},
		{name: "missing asset", payload: "swing trade moderate", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAnalyzeArgs(tt.payload)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCompareArgs(t *testing.T) {
	assert.Equal(t, []string{"apple", "sp500 etf", "gold"}, parseCompareArgs(" apple, sp500 etf ,gold,"))
	assert.Equal(t, []string{"apple", "nvidia"}, parseCompareArgs("apple  nvidia"))
	assert.Empty(t, parseCompareArgs(""))
}

func TestErrorMessage(t *testing.T) {
	assert.Contains(t, errorMessage(fmt.Errorf("wrap: %w", service.ErrInvalidTerm)), "term must be one of")
	assert.Contains(t, errorMessage(service.ErrAINotConfigured), "not configured")
	assert.Contains(t, errorMessage(fmt.Errorf("chart: %w", repository.ErrNoData)), "No market data")
	assert.Contains(t, errorMessage(errors.New("db down")), commonErrorInternal)
	assert.NotContains(t, errorMessage(errors.New("db down")), "db down")
}
