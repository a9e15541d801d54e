package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"market-insight/config"
	"market-insight/internal/dto"
	"market-insight/internal/valuation"
	"market-insight/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONResponse(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{name: "plain", text: `{"peRatio": 12.5}`},
		{name: "fenced", text: "```json\n{\"peRatio\": 12.5}\n```"},
		{name: "bare fence", text: "```\n{\"peRatio\": 12.5}```"},
		{name: "empty", text: "  ", wantErr: true},
		{name: "garbage", text: "not json", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r valuation.Ratios
			err := parseJSONResponse(tt.text, &r)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 12.5, *r.PERatio)
		})
	}
}

func TestMarketAnalysisUserPrompt(t *testing.T) {
	prompt := marketAnalysisUserPrompt(dto.AnalysisPromptParam{
		Asset:     "gold",
		Symbol:    "GC=F",
		Term:      dto.TermSwingTrade,
		RiskLevel: dto.RiskAggressive,
		Quote:     dto.MarketQuote{CurrentPrice: 2350.5, Currency: "USD", Volume: 1200},
	})

	assert.Contains(t, prompt, "Asset: gold (GC=F)")
	assert.Contains(t, prompt, "entries within 1-3% of current price")
	assert.Contains(t, prompt, "risk to reward ratio of 1:2.8")
	assert.Contains(t, prompt, "Current Price: 2350.5000 USD")
	assert.Contains(t, prompt, "Volume: 1200")
}

func TestMarketAnalysis_FlexiblePrices(t *testing.T) {
	var result dto.MarketAnalysis
	err := parseJSONResponse(`{
		"market_summary": "calm",
		"key_drivers": ["rates"],
		"trading_strategy": {
			"direction": "LONG",
			"entry": {"price": 101.25, "rationale": "support"},
			"stop_loss": {"price": "98-99", "rationale": "below range"},
			"take_profit_1": {"price": null}
		}
	}`, &result)
	require.NoError(t, err)

	assert.Equal(t, dto.FlexString("101.25"), result.TradingStrategy.Entry.Price)
	assert.Equal(t, dto.FlexString("98-99"), result.TradingStrategy.StopLoss.Price)
	assert.Equal(t, dto.FlexString(""), result.TradingStrategy.TakeProfit1.Price)
}

func newTestOpenAIRepo(t *testing.T, content string) (AIRepository, *atomic.Int32) {
	t.Helper()
	calls := &atomic.Int32{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req struct {
			Model          string `json:"model"`
			ResponseFormat struct {
				Type string `json:"type"`
			} `json:"response_format"`
			Messages []struct {
				Role string `json:"role"`
			} `json:"messages"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o", req.Model)
		assert.Equal(t, "json_object", req.ResponseFormat.Type)
		if assert.Len(t, req.Messages, 2) {
			assert.Equal(t, "system", req.Messages[0].Role)
		}

		body, _ := json.Marshal(map[string]interface{}{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   "gpt-4o",
			"choices": []map[string]interface{}{{
				"index":         0,
				"message":       map[string]string{"role": "assistant", "content": content},
				"finish_reason": "stop",
			}},
			"usage": map[string]int{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
		})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)

	cfg := &config.Config{OpenAI: config.OpenAI{
		APIKey:              "sk-test",
		BaseURL:             srv.URL + "/v1",
		Model:               "gpt-4o",
		Timeout:             5 * time.Second,
		MaxRequestPerMinute: 6000,
	}}
	repo, err := NewOpenAIRepository(cfg, logger.NewNop())
	require.NoError(t, err)
	return repo, calls
}

func TestOpenAIRepository_FetchRatios(t *testing.T) {
	repo, calls := newTestOpenAIRepo(t, `{"peRatio": 25.4, "pegRatio": null, "priceToSales": 7.8}`)

	ratios, err := repo.FetchRatios(context.Background(), "AAPL", "Apple Inc.")
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 25.4, *ratios.PERatio)
	assert.Nil(t, ratios.PEGRatio)
	assert.Equal(t, 7.8, *ratios.PriceToSales)
}

func TestOpenAIRepository_AnalyzeMarket(t *testing.T) {
	repo, _ := newTestOpenAIRepo(t, `{"market_summary": "Bullish momentum", "key_drivers": ["earnings"], "trading_strategy": {"direction": "LONG"}}`)

	param := dto.AnalysisPromptParam{
		Asset:     "apple",
		Symbol:    "AAPL",
		Term:      dto.TermDayTrade,
		RiskLevel: dto.RiskModerate,
		Quote:     dto.MarketQuote{CurrentPrice: 190.2},
	}
	result, err := repo.AnalyzeMarket(context.Background(), param)
	require.NoError(t, err)

	assert.Equal(t, "Bullish momentum", result.MarketSummary)
	assert.Equal(t, "LONG", result.TradingStrategy.Direction)
	assert.Equal(t, 190.2, result.CurrentMarketPrice)
	assert.Equal(t, "AAPL", result.Symbol)
	assert.Equal(t, "gpt-4o", result.Model)
	assert.Contains(t, result.Prompt, "Asset: apple (AAPL)")
}

func TestNewAIRepository(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantNil bool
		wantErr bool
	}{
		{name: "none", cfg: config.Config{AI: config.AI{Provider: "none"}}, wantNil: true},
		{name: "openai without key", cfg: config.Config{AI: config.AI{Provider: "openai"}}, wantNil: true},
		{name: "gemini without key", cfg: config.Config{AI: config.AI{Provider: "gemini"}}, wantNil: true},
		{name: "unknown", cfg: config.Config{AI: config.AI{Provider: "claude"}}, wantNil: true, wantErr: true},
		{name: "openai", cfg: config.Config{AI: config.AI{Provider: "openai"}, OpenAI: config.OpenAI{APIKey: "k", Model: "gpt-4o", MaxRequestPerMinute: 10}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, err := NewAIRepository(&tt.cfg, logger.NewNop())
			assert.Equal(t, tt.wantErr, err != nil)
			assert.Equal(t, tt.wantNil, repo == nil)
		})
	}
}
