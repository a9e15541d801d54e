package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SentimentSnapshot struct {
	ID                uint           `gorm:"primarykey"`
	Timeframe         string         `gorm:"not null"`
	Variant           string         `gorm:"not null"`
	DataSource        string         `gorm:"not null"`
	Signal            string         `gorm:"not null"`
	InstitutionalFlow float64        `gorm:"not null;default:0"`
	RetailSentiment   float64        `gorm:"not null;default:0"`
	SmartMoneyRatio   float64        `gorm:"not null;default:0"`
	OptionsFlow       float64        `gorm:"not null;default:0"`
	HistoricalData    datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"deleted_at"`
}

func (SentimentSnapshot) TableName() string {
	return "sentiment_snapshots"
}

type ValuationReport struct {
	ID               uint           `gorm:"primarykey"`
	Symbol           string         `gorm:"not null"`
	CompanyName      string         `gorm:"not null"`
	MarketPrice      float64        `gorm:"not null;default:0"`
	OverallValuation string         `gorm:"not null"`
	RiskLevel        string         `gorm:"not null"`
	DataSource       string         `gorm:"not null"`
	Report           datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"deleted_at"`
}

func (ValuationReport) TableName() string {
	return "valuation_reports"
}

type MarketAnalysis struct {
	ID          uint           `gorm:"primarykey"`
	Asset       string         `gorm:"not null"`
	Symbol      string         `gorm:"not null"`
	Term        string         `gorm:"not null"`
	RiskLevel   string         `gorm:"not null"`
	MarketPrice float64        `gorm:"not null;default:0"`
	Model       string         `gorm:"not null"`
	Prompt      string         `gorm:"not null"`
	Response    datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at"`
}

func (MarketAnalysis) TableName() string {
	return "market_analyses"
}
