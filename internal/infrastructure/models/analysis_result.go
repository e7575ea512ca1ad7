package models

import (
	"time"

	"github.com/google/uuid"
)

type AnalysisResult struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	MerchantID           uuid.UUID `gorm:"type:uuid;not null;index"`
	ChainID              string    `gorm:"type:varchar(50);not null;index"`
	ContractAddress      string    `gorm:"type:varchar(100);not null;index"`
	SourceCode           string    `gorm:"type:text"`
	Language             string    `gorm:"type:varchar(20);not null;index"`
	Status               string    `gorm:"type:varchar(20);not null;index"`
	Findings             string    `gorm:"type:jsonb;default:'[]'"`
	ViolationCount       int       `gorm:"default:0"`
	EstimatedGasSavings  *float64  `gorm:"type:decimal(30,18)"`
	EstimatedCostSavings *float64  `gorm:"type:decimal(30,18)"`
	AnalyzerVersion      string    `gorm:"type:varchar(50)"`
	Priority             string    `gorm:"type:varchar(50)"`
	ErrorMessage         *string   `gorm:"type:text"`
	Metadata             string    `gorm:"type:jsonb;default:'{}'"`
	CreatedAt            time.Time `gorm:"index"`
	UpdatedAt            time.Time
}
