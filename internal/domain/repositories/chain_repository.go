package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gaswatch.backend/internal/domain/entities"
)

// ChainRepository defines chain data and aggregation operations
type ChainRepository interface {
	Create(ctx context.Context, chain *entities.Chain) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Chain, error)
	GetByChainID(ctx context.Context, chainID string) (*entities.Chain, error)
	Update(ctx context.Context, chain *entities.Chain) error
	List(ctx context.Context) ([]*entities.Chain, error)

	GetReliabilityMetrics(ctx context.Context, startDate, endDate time.Time) ([]entities.ChainReliabilityMetrics, error)
	GetGasVolatilityMetrics(ctx context.Context, days int) ([]entities.ChainVolatilityMetrics, error)
	GetPerformanceRanking(ctx context.Context) ([]entities.ChainPerformanceRank, error)

	// UpdateChainMetrics recomputes a chain's derived metrics from its
	// success/failed transactions and writes them back.
	UpdateChainMetrics(ctx context.Context, chainID string) error
}
