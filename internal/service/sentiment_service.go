package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"market-insight/config"
	"market-insight/internal/dto"
	"market-insight/internal/model"
	"market-insight/internal/repository"
	"market-insight/internal/sentiment"
	"market-insight/pkg/cache"
	"market-insight/pkg/logger"
	"market-insight/pkg/utils"

	"golang.org/x/sync/errgroup"
)

type SentimentService interface {
	GetSentiment(ctx context.Context, timeframe, variant string) (*dto.SentimentReport, error)
	// RefreshSentiment recomputes the configured default timeframe and
	// variant, bypassing and then repopulating the cache.
	RefreshSentiment(ctx context.Context) (*dto.SentimentReport, error)
	GetVolatility(ctx context.Context) (*dto.VolatilityReport, error)
	ListHistory(ctx context.Context, limit int) ([]model.SentimentSnapshot, error)
}

type sentimentService struct {
	cfg         *config.Config
	log         *logger.Logger
	cache       cache.Cache
	yahooRepo   repository.YahooFinanceRepository
	historyRepo repository.AnalysisHistoryRepository
	engine      *sentiment.Engine
	now         func() time.Time
}

func NewSentimentService(
	cfg *config.Config,
	log *logger.Logger,
	inmemoryCache cache.Cache,
	yahooRepo repository.YahooFinanceRepository,
	historyRepo repository.AnalysisHistoryRepository,
) SentimentService {
	opts := []sentiment.Option{}
	if cfg.Sentiment.JitterSeed != 0 {
		opts = append(opts, sentiment.WithRand(&lockedRand{rng: rand.New(rand.NewSource(cfg.Sentiment.JitterSeed))}))
	}
	return &sentimentService{
		cfg:         cfg,
		log:         log,
		cache:       inmemoryCache,
		yahooRepo:   yahooRepo,
		historyRepo: historyRepo,
		engine:      sentiment.NewEngine(opts...),
		now:         time.Now,
	}
}

// lockedRand lets one seeded source be shared by concurrent requests.
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (r *lockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

func (s *sentimentService) resolve(timeframe, variant string) (dto.Timeframe, sentiment.Variant, error) {
	if timeframe == "" {
		timeframe = s.cfg.Sentiment.DefaultTimeframe
	}
	tf, ok := dto.ParseTimeframe(timeframe)
	if !ok {
		return dto.Timeframe{}, "", fmt.Errorf("%w: %q", ErrInvalidTimeframe, timeframe)
	}
	if variant == "" {
		variant = s.cfg.Sentiment.DefaultVariant
	}
	v := sentiment.Variant(variant)
	if !v.Valid() {
		return dto.Timeframe{}, "", fmt.Errorf("%w: %q", ErrInvalidVariant, variant)
	}
	return tf, v, nil
}

func (s *sentimentService) GetSentiment(ctx context.Context, timeframe, variant string) (*dto.SentimentReport, error) {
	tf, v, err := s.resolve(timeframe, variant)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf(dto.KeySentiment, tf.Value, v)
	if cached, ok := cache.GetAs[*dto.SentimentReport](s.cache, key); ok {
		return cached, nil
	}
	return s.compute(ctx, tf, v), nil
}

func (s *sentimentService) RefreshSentiment(ctx context.Context) (*dto.SentimentReport, error) {
	tf, v, err := s.resolve("", "")
	if err != nil {
		return nil, err
	}
	return s.compute(ctx, tf, v), nil
}

func (s *sentimentService) compute(ctx context.Context, tf dto.Timeframe, v sentiment.Variant) *dto.SentimentReport {
	var in sentiment.Input
	if v != sentiment.VariantSimulated {
		in = s.fetchInput(ctx, tf)
	}

	report := &dto.SentimentReport{
		Summary:     s.engine.AnalyzePeriods(in, v, tf.Days),
		Timeframe:   tf.Value,
		Variant:     string(v),
		GeneratedAt: s.now(),
	}

	s.log.InfoContext(ctx, "Sentiment computed",
		logger.StringField("timeframe", tf.Value),
		logger.StringField("variant", string(v)),
		logger.StringField("data_source", string(report.DataSource)),
		logger.StringField("signal", string(report.Signal)),
		logger.IntField("points", len(report.HistoricalData)),
	)

	s.cache.Set(fmt.Sprintf(dto.KeySentiment, tf.Value, v), report, s.cfg.Cache.SentimentTTL)
	s.saveSnapshot(ctx, report)
	return report
}

// fetchInput loads the three series concurrently. Any failure yields an
// empty input so the engine degrades to simulated output.
func (s *sentimentService) fetchInput(ctx context.Context, tf dto.Timeframe) sentiment.Input {
	var in sentiment.Input
	g, gCtx := errgroup.WithContext(ctx)

	fetch := func(symbol string, dest *[]sentiment.OHLCV) func() error {
		return func() error {
			data, err := s.yahooRepo.GetChart(gCtx, dto.GetStockDataParam{
				Symbol:   symbol,
				Days:     tf.Days,
				Interval: dto.IntervalDaily,
			})
			if err != nil {
				return fmt.Errorf("failed to fetch %s: %w", symbol, err)
			}
			*dest = data.OHLCV
			return nil
		}
	}

	g.Go(fetch(s.cfg.Sentiment.BroadSymbol, &in.Broad))
	g.Go(fetch(s.cfg.Sentiment.SecondarySymbol, &in.Secondary))
	g.Go(fetch(s.cfg.Sentiment.VolatilitySymbol, &in.Volatility))

	if err := g.Wait(); err != nil {
		s.log.WarnContext(ctx, "Failed to fetch sentiment inputs, falling back to simulated data",
			logger.StringField("timeframe", tf.Value),
			logger.ErrorField(err),
		)
		return sentiment.Input{}
	}
	return in
}

func (s *sentimentService) saveSnapshot(ctx context.Context, report *dto.SentimentReport) {
	historical, err := json.Marshal(report.HistoricalData)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to marshal sentiment history", logger.ErrorField(err))
		return
	}

	snapshot := &model.SentimentSnapshot{
		Timeframe:         report.Timeframe,
		Variant:           report.Variant,
		DataSource:        string(report.DataSource),
		Signal:            string(report.Signal),
		InstitutionalFlow: report.InstitutionalFlow,
		RetailSentiment:   report.RetailSentiment,
		SmartMoneyRatio:   report.SmartMoneyRatio,
		OptionsFlow:       report.OptionsFlow,
		HistoricalData:    historical,
	}
	if err := s.historyRepo.SaveSentimentSnapshot(ctx, snapshot); err != nil {
		s.log.WarnContext(ctx, "Failed to save sentiment snapshot", logger.ErrorField(err))
	}
}

func (s *sentimentService) GetVolatility(ctx context.Context) (*dto.VolatilityReport, error) {
	symbol := s.cfg.Sentiment.VolatilitySymbol
	key := fmt.Sprintf(dto.KeyVolatility, symbol)
	if cached, ok := cache.GetAs[*dto.VolatilityReport](s.cache, key); ok {
		return cached, nil
	}

	data, err := s.yahooRepo.GetChart(ctx, dto.GetStockDataParam{Symbol: symbol, Days: 5, Interval: dto.IntervalDaily})
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to fetch volatility index", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return nil, fmt.Errorf("failed to fetch volatility index: %w", err)
	}

	q := data.Quote
	interpretation, description := dto.InterpretVolatility(q.CurrentPrice)
	report := &dto.VolatilityReport{
		Symbol:         q.Symbol,
		Level:          round2(q.CurrentPrice),
		PreviousClose:  round2(q.PreviousClose),
		DayHigh:        round2(q.DayHigh),
		DayLow:         round2(q.DayLow),
		ChangePercent:  round2(q.DayChangePercent()),
		Interpretation: interpretation,
		Description:    description,
	}
	s.cache.Set(key, report, s.cfg.Cache.SentimentTTL)
	return report, nil
}

func (s *sentimentService) ListHistory(ctx context.Context, limit int) ([]model.SentimentSnapshot, error) {
	snapshots, err := s.historyRepo.ListSentimentSnapshots(ctx, utils.WithLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list sentiment history: %w", err)
	}
	return snapshots, nil
}
