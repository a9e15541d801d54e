package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"market-insight/config"
	"market-insight/internal/dto"
	"market-insight/internal/repository"
	"market-insight/internal/sentiment"
	"market-insight/pkg/cache"
	"market-insight/pkg/logger"

	"golang.org/x/sync/errgroup"
)

const (
	minCompareAssets = 2
	maxCompareAssets = 5
	// Enough calendar days to cover the 20 trading sessions used for
	// volatility.
	compareLookbackDays = 45
)

type ComparisonService interface {
	Compare(ctx context.Context, assets []string) (*dto.AssetComparison, error)
}

type comparisonService struct {
	cfg       *config.Config
	log       *logger.Logger
	cache     cache.Cache
	yahooRepo repository.YahooFinanceRepository
	now       func() time.Time
}

func NewComparisonService(
	cfg *config.Config,
	log *logger.Logger,
	inmemoryCache cache.Cache,
	yahooRepo repository.YahooFinanceRepository,
) ComparisonService {
	return &comparisonService{
		cfg:       cfg,
		log:       log,
		cache:     inmemoryCache,
		yahooRepo: yahooRepo,
		now:       time.Now,
	}
}

func (s *comparisonService) Compare(ctx context.Context, assets []string) (*dto.AssetComparison, error) {
	names := make([]string, 0, len(assets))
	for _, a := range assets {
		if a = strings.TrimSpace(a); a != "" {
			names = append(names, a)
		}
	}
	if len(names) < minCompareAssets || len(names) > maxCompareAssets {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidAssets, len(names))
	}

	key := fmt.Sprintf(dto.KeyAssetComparison, strings.ToLower(strings.Join(names, ",")))
	if cached, ok := cache.GetAs[*dto.AssetComparison](s.cache, key); ok {
		return cached, nil
	}

	snapshots := make([]dto.AssetSnapshot, len(names))
	g, gCtx := errgroup.WithContext(ctx)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			symbol := dto.ResolveSymbol(name)
			data, err := s.yahooRepo.GetChart(gCtx, dto.GetStockDataParam{
				Symbol:   symbol,
				Days:     compareLookbackDays,
				Interval: dto.IntervalDaily,
			})
			if err != nil {
				s.log.ErrorContext(ctx, "Failed to fetch asset", logger.StringField("asset", name), logger.ErrorField(err))
				return fmt.Errorf("failed to fetch %s: %w", name, err)
			}
			snapshots[i] = snapshot(name, symbol, data)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &dto.AssetComparison{
		Assets:      snapshots,
		GeneratedAt: s.now(),
	}
	best, worst, volatile := 0, 0, 0
	for i, snap := range snapshots {
		if snap.DayChangePercent > snapshots[best].DayChangePercent {
			best = i
		}
		if snap.DayChangePercent < snapshots[worst].DayChangePercent {
			worst = i
		}
		if snap.Volatility > snapshots[volatile].Volatility {
			volatile = i
		}
	}
	result.BestPerformer = snapshots[best].Asset
	result.WorstPerformer = snapshots[worst].Asset
	result.MostVolatile = snapshots[volatile].Asset

	s.cache.Set(key, result, s.cfg.Cache.AssetComparisonTTL)
	return result, nil
}

func snapshot(name, symbol string, data *dto.StockData) dto.AssetSnapshot {
	q := data.Quote
	closes := data.Closes()

	var periodChange float64
	if len(closes) > 1 && closes[0] != 0 {
		periodChange = (closes[len(closes)-1] - closes[0]) / closes[0] * 100
	}

	return dto.AssetSnapshot{
		Asset:            name,
		Symbol:           symbol,
		Name:             q.Name,
		Price:            q.CurrentPrice,
		PreviousClose:    q.PreviousClose,
		DayChangePercent: round2(q.DayChangePercent()),
		PeriodChange:     round2(periodChange),
		Volatility:       round2(sentiment.Volatility(closes)),
		Currency:         q.Currency,
	}
}
