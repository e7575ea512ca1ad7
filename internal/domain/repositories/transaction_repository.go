package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gaswatch.backend/internal/domain/entities"
	"gaswatch.backend/pkg/utils"
)

// TransactionFilter narrows transaction listings
type TransactionFilter struct {
	MerchantID *uuid.UUID
	ChainID    *string
	Status     *entities.TransactionStatus
}

// TransactionRepository defines transaction data and aggregation operations.
// Date intervals are inclusive on both bounds; nil bounds mean no filter.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entities.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Transaction, error)
	List(ctx context.Context, filter TransactionFilter, pagination utils.PaginationParams) ([]*entities.Transaction, int64, error)

	GetGasUsageByMerchant(ctx context.Context, merchantID uuid.UUID, startDate, endDate time.Time) ([]entities.GasUsageTrendPoint, error)
	GetSuccessMetrics(ctx context.Context, merchantID *uuid.UUID, chainID *string, startDate, endDate *time.Time) (*entities.TransactionSuccessMetrics, error)
	GetHighGasTransactions(ctx context.Context, limit int) ([]*entities.Transaction, error)
	GetVolumeByChain(ctx context.Context, startDate, endDate time.Time) ([]entities.ChainVolumeMetrics, error)
	GetFailedTransactionAnalysis(ctx context.Context, startDate, endDate time.Time) ([]entities.FailedTransactionGroup, error)
}
