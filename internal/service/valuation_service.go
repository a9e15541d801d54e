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
	"market-insight/internal/valuation"
	"market-insight/pkg/cache"
	"market-insight/pkg/logger"
	"market-insight/pkg/utils"

	"golang.org/x/sync/errgroup"
)

type ValuationService interface {
	Valuate(ctx context.Context, stockName string) (*dto.StockValuation, error)
	ListHistory(ctx context.Context, stockName string, limit int) ([]model.ValuationReport, error)
}

type valuationService struct {
	cfg         *config.Config
	log         *logger.Logger
	cache       cache.Cache
	yahooRepo   repository.YahooFinanceRepository
	ratioSource valuation.RatioSource
	historyRepo repository.AnalysisHistoryRepository
	now         func() time.Time
}

// NewValuationService builds the valuation service. ratioSource may be nil,
// in which case missing ratios stay missing.
func NewValuationService(
	cfg *config.Config,
	log *logger.Logger,
	inmemoryCache cache.Cache,
	yahooRepo repository.YahooFinanceRepository,
	ratioSource valuation.RatioSource,
	historyRepo repository.AnalysisHistoryRepository,
) ValuationService {
	return &valuationService{
		cfg:         cfg,
		log:         log,
		cache:       inmemoryCache,
		yahooRepo:   yahooRepo,
		ratioSource: ratioSource,
		historyRepo: historyRepo,
		now:         time.Now,
	}
}

func (s *valuationService) Valuate(ctx context.Context, stockName string) (*dto.StockValuation, error) {
	stockName = strings.TrimSpace(stockName)
	if stockName == "" {
		return nil, ErrInvalidStock
	}
	symbol := dto.ResolveSymbol(stockName)

	key := fmt.Sprintf(dto.KeyStockValuation, symbol)
	if cached, ok := cache.GetAs[*dto.StockValuation](s.cache, key); ok {
		return cached, nil
	}

	var (
		chart  *dto.StockData
		ratios valuation.Ratios
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		chart, err = s.yahooRepo.GetChart(gCtx, dto.GetStockDataParam{Symbol: symbol, Days: 5, Interval: dto.IntervalDaily})
		return err
	})
	g.Go(func() error {
		var err error
		ratios, err = s.yahooRepo.GetQuoteSummary(gCtx, symbol)
		if err != nil {
			// Ratios are optional, the AI source or N/A covers them.
			s.log.WarnContext(ctx, "Failed to fetch quote summary", logger.StringField("symbol", symbol), logger.ErrorField(err))
			ratios = valuation.Ratios{}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.log.ErrorContext(ctx, "Failed to fetch stock data", logger.StringField("symbol", symbol), logger.ErrorField(err))
		return nil, fmt.Errorf("failed to fetch stock data for %s: %w", symbol, err)
	}

	q := chart.Quote
	dataSource := dto.DataSourceYahoo
	if ratios.Missing() && s.ratioSource != nil {
		aiRatios, err := s.ratioSource.FetchRatios(ctx, symbol, q.Name)
		if err != nil {
			s.log.WarnContext(ctx, "Failed to enrich ratios", logger.StringField("symbol", symbol), logger.ErrorField(err))
		} else {
			ratios = ratios.Merge(aiRatios)
			dataSource = dto.DataSourceAIYahoo
		}
	}

	verdict := valuation.WithExplanation(valuation.Analyze(ratios), valuation.Company{
		Name:     q.Name,
		Price:    q.CurrentPrice,
		Currency: q.Currency,
	})

	result := &dto.StockValuation{
		Stock: dto.StockInfo{
			Symbol:        q.Symbol,
			CompanyName:   q.Name,
			CurrentPrice:  q.CurrentPrice,
			PreviousClose: q.PreviousClose,
			DayHigh:       q.DayHigh,
			DayLow:        q.DayLow,
			Volume:        q.Volume,
			Currency:      q.Currency,
			Exchange:      q.Exchange,
			Ratios:        ratios,
			DataSource:    dataSource,
		},
		Valuation:   verdict,
		Disclaimer:  valuation.Disclaimer(stockName+" "+q.Name, dataSource == dto.DataSourceAIYahoo),
		GeneratedAt: s.now(),
	}

	s.cache.Set(key, result, s.cfg.Cache.StockTTL)
	s.saveReport(ctx, result)
	return result, nil
}

func (s *valuationService) saveReport(ctx context.Context, result *dto.StockValuation) {
	body, err := json.Marshal(result)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to marshal valuation report", logger.ErrorField(err))
		return
	}
	report := &model.ValuationReport{
		Symbol:           result.Stock.Symbol,
		CompanyName:      result.Stock.CompanyName,
		MarketPrice:      result.Stock.CurrentPrice,
		OverallValuation: result.Valuation.OverallValuation,
		RiskLevel:        result.Valuation.RiskLevel,
		DataSource:       result.Stock.DataSource,
		Report:           body,
	}
	if err := s.historyRepo.SaveValuationReport(ctx, report); err != nil {
		s.log.WarnContext(ctx, "Failed to save valuation report", logger.ErrorField(err))
	}
}

func (s *valuationService) ListHistory(ctx context.Context, stockName string, limit int) ([]model.ValuationReport, error) {
	opts := []utils.DBOption{utils.WithLimit(limit)}
	if strings.TrimSpace(stockName) != "" {
		opts = append(opts, utils.WithWhere("symbol = ?", dto.ResolveSymbol(stockName)))
	}
	reports, err := s.historyRepo.ListValuationReports(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to list valuation history: %w", err)
	}
	return reports, nil
}
