package service

import (
	"market-insight/config"
	"market-insight/internal/repository"
	"market-insight/pkg/cache"
	"market-insight/pkg/logger"
)

type Service struct {
	SentimentService      SentimentService
	ValuationService      ValuationService
	MarketAnalysisService MarketAnalysisService
	ComparisonService     ComparisonService
	SchedulerService      SchedulerService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	inmemoryCache cache.Cache,
) *Service {
	sentimentService := NewSentimentService(cfg, log, inmemoryCache, repo.YahooFinanceRepo, repo.HistoryRepo)
	return &Service{
		SentimentService:      sentimentService,
		ValuationService:      NewValuationService(cfg, log, inmemoryCache, repo.YahooFinanceRepo, repo.AIRepo, repo.HistoryRepo),
		MarketAnalysisService: NewMarketAnalysisService(cfg, log, inmemoryCache, repo.YahooFinanceRepo, repo.AIRepo, repo.HistoryRepo),
		ComparisonService:     NewComparisonService(cfg, log, inmemoryCache, repo.YahooFinanceRepo),
		SchedulerService:      NewSchedulerService(cfg, log, sentimentService, repo.HistoryRepo),
	}
}
