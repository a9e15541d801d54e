package repository

import (
	"context"
	"time"

	"market-insight/internal/model"
	"market-insight/pkg/utils"

	"gorm.io/gorm"
)

// AnalysisHistoryRepository records every computed sentiment snapshot,
// valuation report and AI analysis.
type AnalysisHistoryRepository interface {
	SaveSentimentSnapshot(ctx context.Context, snapshot *model.SentimentSnapshot) error
	SaveValuationReport(ctx context.Context, report *model.ValuationReport) error
	SaveMarketAnalysis(ctx context.Context, analysis *model.MarketAnalysis) error
	ListSentimentSnapshots(ctx context.Context, opts ...utils.DBOption) ([]model.SentimentSnapshot, error)
	ListValuationReports(ctx context.Context, opts ...utils.DBOption) ([]model.ValuationReport, error)
	DeleteOlderThan(ctx context.Context, date time.Time) (int64, error)
}

type analysisHistoryRepository struct {
	db *gorm.DB
}

func NewAnalysisHistoryRepository(db *gorm.DB) AnalysisHistoryRepository {
	return &analysisHistoryRepository{db: db}
}

func (r *analysisHistoryRepository) SaveSentimentSnapshot(ctx context.Context, snapshot *model.SentimentSnapshot) error {
	return r.db.WithContext(ctx).Create(snapshot).Error
}

func (r *analysisHistoryRepository) SaveValuationReport(ctx context.Context, report *model.ValuationReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *analysisHistoryRepository) SaveMarketAnalysis(ctx context.Context, analysis *model.MarketAnalysis) error {
	return r.db.WithContext(ctx).Create(analysis).Error
}

func (r *analysisHistoryRepository) ListSentimentSnapshots(ctx context.Context, opts ...utils.DBOption) ([]model.SentimentSnapshot, error) {
	var snapshots []model.SentimentSnapshot
	db := utils.ApplyOptions(r.db.WithContext(ctx).Order("created_at DESC"), opts...)
	if err := db.Find(&snapshots).Error; err != nil {
		return nil, err
	}
	return snapshots, nil
}

func (r *analysisHistoryRepository) ListValuationReports(ctx context.Context, opts ...utils.DBOption) ([]model.ValuationReport, error) {
	var reports []model.ValuationReport
	db := utils.ApplyOptions(r.db.WithContext(ctx).Order("created_at DESC"), opts...)
	if err := db.Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// DeleteOlderThan soft deletes history rows created before date across all
// tables and returns the total affected.
func (r *analysisHistoryRepository) DeleteOlderThan(ctx context.Context, date time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{&model.SentimentSnapshot{}, &model.ValuationReport{}, &model.MarketAnalysis{}} {
			res := tx.Where("created_at < ?", date).Delete(m)
			if res.Error != nil {
				return res.Error
			}
			total += res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// noopHistoryRepository is used when no database is configured.
type noopHistoryRepository struct{}

func NewNoopHistoryRepository() AnalysisHistoryRepository {
	return noopHistoryRepository{}
}

func (noopHistoryRepository) SaveSentimentSnapshot(context.Context, *model.SentimentSnapshot) error {
	return nil
}

func (noopHistoryRepository) SaveValuationReport(context.Context, *model.ValuationReport) error {
	return nil
}

func (noopHistoryRepository) SaveMarketAnalysis(context.Context, *model.MarketAnalysis) error {
	return nil
}

func (noopHistoryRepository) ListSentimentSnapshots(context.Context, ...utils.DBOption) ([]model.SentimentSnapshot, error) {
	return []model.SentimentSnapshot{}, nil
}

func (noopHistoryRepository) ListValuationReports(context.Context, ...utils.DBOption) ([]model.ValuationReport, error) {
	return []model.ValuationReport{}, nil
}

func (noopHistoryRepository) DeleteOlderThan(context.Context, time.Time) (int64, error) {
	return 0, nil
}
