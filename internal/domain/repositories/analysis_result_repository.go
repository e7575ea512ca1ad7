package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gaswatch.backend/internal/domain/entities"
	"gaswatch.backend/pkg/utils"
)

// AnalysisResultFilter narrows analysis result listings
type AnalysisResultFilter struct {
	MerchantID *uuid.UUID
	ChainID    *string
	Status     *entities.AnalysisStatus
}

// AnalysisResultRepository defines analysis result data and aggregation operations
type AnalysisResultRepository interface {
	Create(ctx context.Context, result *entities.AnalysisResult) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.AnalysisResult, error)
	List(ctx context.Context, filter AnalysisResultFilter, pagination utils.PaginationParams) ([]*entities.AnalysisResult, int64, error)

	GetAnalysisSummary(ctx context.Context, merchantID *uuid.UUID, chainID *string, startDate, endDate *time.Time) (*entities.AnalysisSummary, error)
	GetTopRuleViolations(ctx context.Context, limit int, startDate, endDate *time.Time) ([]entities.RuleViolationGroup, error)
	GetLanguageDistribution(ctx context.Context, startDate, endDate *time.Time) ([]entities.LanguageDistribution, error)
	GetAnalysisTrend(ctx context.Context, days int) ([]entities.AnalysisTrendPoint, error)
}
