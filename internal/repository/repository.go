package repository

import (
	"fmt"

	"market-insight/config"
	"market-insight/pkg/logger"

	"gorm.io/gorm"
)

type Repository struct {
	YahooFinanceRepo YahooFinanceRepository
	// AIRepo is nil when ai.provider is "none".
	AIRepo      AIRepository
	HistoryRepo AnalysisHistoryRepository
}

// NewRepository wires the repositories. A nil db disables history
// persistence.
func NewRepository(cfg *config.Config, db *gorm.DB, log *logger.Logger) (*Repository, error) {
	aiRepo, err := NewAIRepository(cfg, log)
	if err != nil {
		return nil, err
	}

	historyRepo := NewNoopHistoryRepository()
	if db != nil {
		historyRepo = NewAnalysisHistoryRepository(db)
	}

	return &Repository{
		YahooFinanceRepo: NewYahooFinanceRepository(cfg, log),
		AIRepo:           aiRepo,
		HistoryRepo:      historyRepo,
	}, nil
}

// NewAIRepository returns the provider selected by ai.provider. A provider
// without an API key is treated as disabled.
func NewAIRepository(cfg *config.Config, log *logger.Logger) (AIRepository, error) {
	switch cfg.AI.Provider {
	case "", "none":
		return nil, nil
	case "openai":
		if cfg.OpenAI.APIKey == "" {
			log.Warn("OpenAI API key not set, AI features disabled")
			return nil, nil
		}
		return NewOpenAIRepository(cfg, log)
	case "gemini":
		if cfg.Gemini.APIKey == "" {
			log.Warn("Gemini API key not set, AI features disabled")
			return nil, nil
		}
		return NewGeminiAIRepository(cfg, log)
	default:
		return nil, fmt.Errorf("unknown ai.provider %q", cfg.AI.Provider)
	}
}
