package service

import (
	"context"
	"fmt"
	"time"

	"market-insight/config"
	"market-insight/internal/repository"
	"market-insight/pkg/logger"

	"github.com/robfig/cron/v3"
)

type SchedulerService interface {
	Start(ctx context.Context) error
	Stop()
	RefreshSentiment(ctx context.Context) error
	CleanupHistory(ctx context.Context) (int64, error)
}

type schedulerService struct {
	cfg              *config.Config
	log              *logger.Logger
	cron             *cron.Cron
	sentimentService SentimentService
	historyRepo      repository.AnalysisHistoryRepository
	now              func() time.Time
}

func NewSchedulerService(
	cfg *config.Config,
	log *logger.Logger,
	sentimentService SentimentService,
	historyRepo repository.AnalysisHistoryRepository,
) SchedulerService {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	return &schedulerService{
		cfg:              cfg,
		log:              log,
		cron:             cron.New(cron.WithParser(parser), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		sentimentService: sentimentService,
		historyRepo:      historyRepo,
		now:              time.Now,
	}
}

// Start registers the periodic jobs and starts the cron runner. Jobs run
// with a context derived from ctx.
func (s *schedulerService) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.cfg.Scheduler.SentimentRefresh, s.job(ctx, "sentiment_refresh", s.RefreshSentiment)); err != nil {
		return fmt.Errorf("invalid scheduler.sentiment_refresh %q: %w", s.cfg.Scheduler.SentimentRefresh, err)
	}

	if s.cfg.Scheduler.HistoryCleanup != "" {
		cleanup := func(ctx context.Context) error {
			_, err := s.CleanupHistory(ctx)
			return err
		}
		if _, err := s.cron.AddFunc(s.cfg.Scheduler.HistoryCleanup, s.job(ctx, "history_cleanup", cleanup)); err != nil {
			return fmt.Errorf("invalid scheduler.history_cleanup %q: %w", s.cfg.Scheduler.HistoryCleanup, err)
		}
	}

	s.log.Info("Starting scheduler", logger.IntField("jobs", len(s.cron.Entries())))
	s.cron.Start()
	return nil
}

func (s *schedulerService) job(ctx context.Context, name string, fn func(ctx context.Context) error) func() {
	return func() {
		if ctx.Err() != nil {
			return
		}
		jobCtx, cancel := context.WithTimeout(ctx, s.cfg.Scheduler.TimeoutDuration)
		defer cancel()

		start := s.now()
		if err := fn(jobCtx); err != nil {
			s.log.ErrorContext(jobCtx, "Scheduled job failed", logger.StringField("job", name), logger.ErrorField(err), logger.AlertField())
			return
		}
		s.log.InfoContext(jobCtx, "Scheduled job completed",
			logger.StringField("job", name),
			logger.DurationField("duration", s.now().Sub(start)),
		)
	}
}

func (s *schedulerService) Stop() {
	s.log.Info("Stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *schedulerService) RefreshSentiment(ctx context.Context) error {
	_, err := s.sentimentService.RefreshSentiment(ctx)
	return err
}

func (s *schedulerService) CleanupHistory(ctx context.Context) (int64, error) {
	if s.cfg.Scheduler.HistoryRetention <= 0 {
		return 0, nil
	}
	deleted, err := s.historyRepo.DeleteOlderThan(ctx, s.now().Add(-s.cfg.Scheduler.HistoryRetention))
	if err != nil {
		return 0, fmt.Errorf("failed to delete old history: %w", err)
	}
	s.log.InfoContext(ctx, "Old history deleted", logger.Field("deleted", deleted))
	return deleted, nil
}
