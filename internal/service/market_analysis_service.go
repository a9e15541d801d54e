package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"market-insight/config"
	"market-insight/internal/dto"
	"market-insight/internal/model"
	"market-insight/internal/repository"
	"market-insight/pkg/cache"
	"market-insight/pkg/logger"
)

type MarketAnalysisService interface {
	Analyze(ctx context.Context, req dto.MarketAnalysisRequest) (*dto.MarketAnalysis, error)
}

type marketAnalysisService struct {
	cfg         *config.Config
	log         *logger.Logger
	cache       cache.Cache
	yahooRepo   repository.YahooFinanceRepository
	aiRepo      repository.AIRepository
	historyRepo repository.AnalysisHistoryRepository
	now         func() time.Time
}

func NewMarketAnalysisService(
	cfg *config.Config,
	log *logger.Logger,
	inmemoryCache cache.Cache,
	yahooRepo repository.YahooFinanceRepository,
	aiRepo repository.AIRepository,
	historyRepo repository.AnalysisHistoryRepository,
) MarketAnalysisService {
	return &marketAnalysisService{
		cfg:         cfg,
		log:         log,
		cache:       inmemoryCache,
		yahooRepo:   yahooRepo,
		aiRepo:      aiRepo,
		historyRepo: historyRepo,
		now:         time.Now,
	}
}

var (
	validTerms      = []string{dto.TermDayTrade, dto.TermSwingTrade, dto.TermPositionTrade}
	validRiskLevels = []string{dto.RiskConservative, dto.RiskModerate, dto.RiskAggressive}
)

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func (s *marketAnalysisService) Analyze(ctx context.Context, req dto.MarketAnalysisRequest) (*dto.MarketAnalysis, error) {
	asset := strings.TrimSpace(req.Asset)
	term := strings.ToLower(strings.TrimSpace(req.Term))
	risk := strings.ToLower(strings.TrimSpace(req.RiskLevel))

	if asset == "" {
		return nil, ErrInvalidAsset
	}
	if !contains(validTerms, term) {
		return nil, ErrInvalidTerm
	}
	if !contains(validRiskLevels, risk) {
		return nil, ErrInvalidRiskLevel
	}
	if s.aiRepo == nil {
		return nil, ErrAINotConfigured
	}

	key := fmt.Sprintf(dto.KeyMarketAnalysis, strings.ToLower(asset), term, risk)
	if cached, ok := cache.GetAs[*dto.MarketAnalysis](s.cache, key); ok {
		return cached, nil
	}

	symbol := dto.ResolveSymbol(asset)
	chart, err := s.yahooRepo.GetChart(ctx, dto.GetStockDataParam{Symbol: symbol, Days: 5, Interval: dto.IntervalDaily})
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to fetch market data", logger.StringField("symbol", symbol), logger.ErrorField(err))
		return nil, fmt.Errorf("failed to fetch market data for %s: %w", symbol, err)
	}

	s.log.InfoContext(ctx, "Requesting market analysis",
		logger.StringField("asset", asset),
		logger.StringField("symbol", symbol),
		logger.StringField("term", term),
		logger.StringField("risk_level", risk),
		logger.StringField("model", s.aiRepo.Model()),
	)

	result, err := s.aiRepo.AnalyzeMarket(ctx, dto.AnalysisPromptParam{
		Asset:     asset,
		Symbol:    symbol,
		Term:      term,
		RiskLevel: risk,
		Quote:     chart.Quote,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to analyze %s: %w", asset, err)
	}
	result.GeneratedAt = s.now()

	s.cache.Set(key, result, s.cfg.Cache.MarketAnalysisTTL)
	s.saveAnalysis(ctx, result)
	return result, nil
}

func (s *marketAnalysisService) saveAnalysis(ctx context.Context, result *dto.MarketAnalysis) {
	body, err := json.Marshal(result)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to marshal market analysis", logger.ErrorField(err))
		return
	}
	record := &model.MarketAnalysis{
		Asset:       result.Asset,
		Symbol:      result.Symbol,
		Term:        result.Term,
		RiskLevel:   result.RiskLevel,
		MarketPrice: result.CurrentMarketPrice,
		Model:       result.Model,
		Prompt:      result.Prompt,
		Response:    body,
	}
	if err := s.historyRepo.SaveMarketAnalysis(ctx, record); err != nil {
		s.log.WarnContext(ctx, "Failed to save market analysis", logger.ErrorField(err))
	}
}
