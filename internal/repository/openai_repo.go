package repository

import (
	"context"
	"fmt"
	"time"

	"market-insight/config"
	"market-insight/internal/dto"
	"market-insight/internal/valuation"
	"market-insight/pkg/logger"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

type openAIRepository struct {
	client         *openai.Client
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

// NewOpenAIRepository creates an AIRepository backed by the chat completions
// API.
func NewOpenAIRepository(cfg *config.Config, log *logger.Logger) (AIRepository, error) {
	if cfg.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("openai.api_key is required")
	}
	if cfg.OpenAI.MaxRequestPerMinute <= 0 {
		return nil, fmt.Errorf("openai.max_request_per_minute must be positive")
	}

	clientCfg := openai.DefaultConfig(cfg.OpenAI.APIKey)
	if cfg.OpenAI.BaseURL != "" {
		clientCfg.BaseURL = cfg.OpenAI.BaseURL
	}

	secondsPerRequest := time.Minute / time.Duration(cfg.OpenAI.MaxRequestPerMinute)
	return &openAIRepository{
		client:         openai.NewClientWithConfig(clientCfg),
		cfg:            cfg,
		logger:         log,
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}, nil
}

func (r *openAIRepository) Model() string {
	return r.cfg.OpenAI.Model
}

func (r *openAIRepository) FetchRatios(ctx context.Context, symbol, companyName string) (valuation.Ratios, error) {
	var ratios valuation.Ratios
	content, err := r.complete(ctx, ratioSystemPrompt, ratioUserPrompt(symbol, companyName), 0.1, 500)
	if err != nil {
		return ratios, err
	}
	if err := parseJSONResponse(content, &ratios); err != nil {
		r.logger.ErrorContext(ctx, "failed to parse ratio response from openai", logger.ErrorField(err))
		return ratios, fmt.Errorf("failed to parse ratio response from openai: %w", err)
	}
	return ratios, nil
}

func (r *openAIRepository) AnalyzeMarket(ctx context.Context, param dto.AnalysisPromptParam) (*dto.MarketAnalysis, error) {
	system := marketAnalysisSystemPrompt(param)
	user := marketAnalysisUserPrompt(param)

	content, err := r.complete(ctx, system, user, 0.3, 2000)
	if err != nil {
		return nil, err
	}

	var result dto.MarketAnalysis
	if err := parseJSONResponse(content, &result); err != nil {
		r.logger.ErrorContext(ctx, "failed to parse market analysis from openai", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to parse market analysis from openai: %w", err)
	}
	decorate(&result, param, r.Model(), system+"\n\n"+user)
	return &result, nil
}

func (r *openAIRepository) complete(ctx context.Context, system, user string, temperature float32, maxTokens int) (string, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("failed to wait for openai request limit: %w", err)
	}

	if r.cfg.OpenAI.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.OpenAI.Timeout)
		defer cancel()
	}

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.cfg.OpenAI.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to send request to openai", logger.ErrorField(err))
		return "", fmt.Errorf("failed to send request to openai: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices: %w", ErrNoData)
	}

	r.logger.DebugContext(ctx, "OpenAI usage",
		logger.IntField("prompt_tokens", resp.Usage.PromptTokens),
		logger.IntField("completion_tokens", resp.Usage.CompletionTokens),
	)
	return resp.Choices[0].Message.Content, nil
}
