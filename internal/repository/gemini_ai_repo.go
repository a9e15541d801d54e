package repository

import (
	"context"
	"fmt"
	"time"

	"market-insight/config"
	"market-insight/internal/dto"
	"market-insight/internal/valuation"
	"market-insight/pkg/logger"
	"market-insight/pkg/ratelimit"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// geminiAIRepository is an AIRepository backed by the Google Gemini API.
type geminiAIRepository struct {
	cfg            *config.Config
	logger         *logger.Logger
	tokenLimiter   *ratelimit.TokenLimiter
	requestLimiter *rate.Limiter
	genAiClient    *genai.Client
}

func NewGeminiAIRepository(cfg *config.Config, log *logger.Logger) (AIRepository, error) {
	if cfg.Gemini.APIKey == "" {
		return nil, fmt.Errorf("gemini.api_key is required")
	}
	if cfg.Gemini.MaxRequestPerMinute <= 0 {
		return nil, fmt.Errorf("gemini.max_request_per_minute must be positive")
	}

	secondsPerRequest := time.Minute / time.Duration(cfg.Gemini.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	tokenLimiter := ratelimit.NewTokenLimiter(cfg.Gemini.MaxTokenPerMinute)
	genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiAIRepository{
		cfg:            cfg,
		logger:         log,
		requestLimiter: requestLimiter,
		tokenLimiter:   tokenLimiter,
		genAiClient:    genAiClient,
	}, nil
}

func (r *geminiAIRepository) Model() string {
	return r.cfg.Gemini.BaseModel
}

func (r *geminiAIRepository) FetchRatios(ctx context.Context, symbol, companyName string) (valuation.Ratios, error) {
	var ratios valuation.Ratios
	text, err := r.sendRequest(ctx, ratioSystemPrompt, ratioUserPrompt(symbol, companyName), 0.1)
	if err != nil {
		return ratios, err
	}
	if err := parseJSONResponse(text, &ratios); err != nil {
		r.logger.ErrorContext(ctx, "failed to parse ratio response from gemini", logger.ErrorField(err))
		return ratios, fmt.Errorf("failed to parse ratio response from gemini: %w", err)
	}
	return ratios, nil
}

func (r *geminiAIRepository) AnalyzeMarket(ctx context.Context, param dto.AnalysisPromptParam) (*dto.MarketAnalysis, error) {
	system := marketAnalysisSystemPrompt(param)
	user := marketAnalysisUserPrompt(param)

	text, err := r.sendRequest(ctx, system, user, 0.3)
	if err != nil {
		return nil, err
	}

	var result dto.MarketAnalysis
	if err := parseJSONResponse(text, &result); err != nil {
		r.logger.ErrorContext(ctx, "failed to parse market analysis from gemini", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to parse market analysis from gemini: %w", err)
	}
	decorate(&result, param, r.Model(), system+"\n\n"+user)
	return &result, nil
}

func (r *geminiAIRepository) sendRequest(ctx context.Context, system, user string, temperature float32) (string, error) {
	if r.cfg.Gemini.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Gemini.Timeout)
		defer cancel()
	}

	contents := []*genai.Content{
		genai.NewContentFromText(system+"\n\n"+user, genai.RoleUser),
	}
	geminiTokenResp, err := r.genAiClient.Models.CountTokens(ctx, r.cfg.Gemini.BaseModel, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to count tokens: %w", err)
	}

	r.logger.Debug("Gemini token count",
		logger.IntField("total_tokens", int(geminiTokenResp.TotalTokens)),
		logger.IntField("remaining", r.tokenLimiter.GetRemaining()),
	)
	if err := r.tokenLimiter.Wait(ctx, int(geminiTokenResp.TotalTokens)); err != nil {
		return "", fmt.Errorf("failed to wait for token gemini limit: %w", err)
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("failed to wait for request gemini limit: %w", err)
	}

	if int(geminiTokenResp.TotalTokens) > r.cfg.Gemini.MaxTokenPerMinute/2 {
		r.logger.Warn("Token has exceeded 50% of the limit", logger.IntField("remaining", r.tokenLimiter.GetRemaining()))
	}

	resp, err := r.genAiClient.Models.GenerateContent(ctx, r.cfg.Gemini.BaseModel,
		[]*genai.Content{genai.NewContentFromText(user, genai.RoleUser)},
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
			ResponseMIMEType:  "application/json",
			Temperature:       genai.Ptr(temperature),
		},
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to send request to gemini", logger.ErrorField(err))
		return "", fmt.Errorf("failed to send request to gemini: %w", err)
	}

	return resp.Text(), nil
}
