package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gaswatch.backend/internal/domain/entities"
	"gaswatch.backend/pkg/utils"
)

// MerchantRepository defines merchant data and aggregation operations
type MerchantRepository interface {
	Create(ctx context.Context, merchant *entities.Merchant) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Merchant, error)
	GetBySlug(ctx context.Context, slug string) (*entities.Merchant, error)
	Update(ctx context.Context, merchant *entities.Merchant) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.MerchantStatus) error
	List(ctx context.Context, pagination utils.PaginationParams) ([]*entities.Merchant, int64, error)

	GetMerchantAnalytics(ctx context.Context, startDate, endDate time.Time) ([]entities.MerchantActivityMetrics, error)
	GetActiveMerchants(ctx context.Context, days int) ([]*entities.Merchant, error)
	GetGrowthStats(ctx context.Context, startDate, endDate time.Time) (*entities.MerchantGrowthStats, error)
}
