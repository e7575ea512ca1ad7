package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"gaswatch.backend/internal/domain/entities"
	domainerrors "gaswatch.backend/internal/domain/errors"
	"gaswatch.backend/internal/domain/repositories"
	"gaswatch.backend/internal/infrastructure/models"
	"gaswatch.backend/pkg/utils"
)

// highGasThreshold marks a transaction as high-gas for monitoring queries
const highGasThreshold = 1_000_000

// failedGroupLimit caps the failed-transaction breakdown size
const failedGroupLimit = 20

// transactionRepo implements repositories.TransactionRepository
type transactionRepo struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) repositories.TransactionRepository {
	return &transactionRepo{db: db}
}

// Create records a new transaction fact
func (r *transactionRepo) Create(ctx context.Context, tx *entities.Transaction) error {
	m := r.toModel(tx)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	tx.CreatedAt = m.CreatedAt
	tx.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a transaction by ID
func (r *transactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Transaction, error) {
	var m models.Transaction
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// List lists transactions matching the filter, newest first
func (r *transactionRepo) List(ctx context.Context, filter repositories.TransactionFilter, pagination utils.PaginationParams) ([]*entities.Transaction, int64, error) {
	var ms []models.Transaction
	var totalCount int64

	query := r.db.WithContext(ctx).Model(&models.Transaction{})
	if filter.MerchantID != nil {
		query = query.Where("merchant_id = ?", *filter.MerchantID)
	}
	if filter.ChainID != nil {
		query = query.Where("chain_id = ?", *filter.ChainID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}

	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if pagination.Limit > 0 {
		query = query.Limit(pagination.Limit).Offset(pagination.CalculateOffset())
	}

	if err := query.Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	var txs []*entities.Transaction
	for _, m := range ms {
		model := m
		txs = append(txs, r.toEntity(&model))
	}
	return txs, totalCount, nil
}

// GetGasUsageByMerchant returns the per-day gas usage trend of a merchant's
// successful transactions within [startDate, endDate]
func (r *transactionRepo) GetGasUsageByMerchant(ctx context.Context, merchantID uuid.UUID, startDate, endDate time.Time) ([]entities.GasUsageTrendPoint, error) {
	var rows []struct {
		Date             string
		TotalGasUsed     float64
		AvgGasUsed       float64
		TransactionCount int64
	}

	err := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Select("CAST(DATE(created_at) AS TEXT) AS date, SUM(gas_used) AS total_gas_used, AVG(gas_used) AS avg_gas_used, COUNT(id) AS transaction_count").
		Where("merchant_id = ?", merchantID).
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Where("status = ?", string(entities.TransactionStatusSuccess)).
		Group("DATE(created_at)").
		Order("date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	points := make([]entities.GasUsageTrendPoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, entities.GasUsageTrendPoint{
			Date:             row.Date,
			TotalGasUsed:     row.TotalGasUsed,
			AvgGasUsed:       row.AvgGasUsed,
			TransactionCount: row.TransactionCount,
		})
	}
	return points, nil
}

// GetSuccessMetrics computes the overall success aggregate for the filtered
// set. The success rate is left null when no transactions match.
func (r *transactionRepo) GetSuccessMetrics(ctx context.Context, merchantID *uuid.UUID, chainID *string, startDate, endDate *time.Time) (*entities.TransactionSuccessMetrics, error) {
	var row struct {
		TotalTransactions      int64
		SuccessfulTransactions int64
		FailedTransactions     int64
		AvgGasUsed             *float64
		TotalFees              *float64
	}

	query := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Select("COUNT(id) AS total_transactions, " +
			"COUNT(CASE WHEN status = 'success' THEN 1 END) AS successful_transactions, " +
			"COUNT(CASE WHEN status = 'failed' THEN 1 END) AS failed_transactions, " +
			"AVG(gas_used) AS avg_gas_used, " +
			"SUM(transaction_fee) AS total_fees")

	if merchantID != nil {
		query = query.Where("merchant_id = ?", *merchantID)
	}
	if chainID != nil {
		query = query.Where("chain_id = ?", *chainID)
	}
	if startDate != nil && endDate != nil {
		query = query.Where("created_at BETWEEN ? AND ?", *startDate, *endDate)
	}

	if err := query.Scan(&row).Error; err != nil {
		return nil, err
	}

	metrics := &entities.TransactionSuccessMetrics{
		TotalTransactions:      row.TotalTransactions,
		SuccessfulTransactions: row.SuccessfulTransactions,
		FailedTransactions:     row.FailedTransactions,
		AvgGasUsed:             null.Float64FromPtr(row.AvgGasUsed),
	}
	if row.TotalFees != nil {
		metrics.TotalFees = *row.TotalFees
	}
	if row.TotalTransactions > 0 {
		metrics.SuccessRate = null.Float64From(float64(row.SuccessfulTransactions) * 100.0 / float64(row.TotalTransactions))
	}
	return metrics, nil
}

// GetHighGasTransactions returns recent successful transactions above the
// high-gas threshold, heaviest first
func (r *transactionRepo) GetHighGasTransactions(ctx context.Context, limit int) ([]*entities.Transaction, error) {
	if limit <= 0 {
		limit = 10
	}

	var ms []models.Transaction
	err := r.db.WithContext(ctx).
		Where("gas_used > ?", float64(highGasThreshold)).
		Where("status = ?", string(entities.TransactionStatusSuccess)).
		Order("gas_used DESC").
		Limit(limit).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	var txs []*entities.Transaction
	for _, m := range ms {
		model := m
		txs = append(txs, r.toEntity(&model))
	}
	return txs, nil
}

// GetVolumeByChain returns per-chain transaction volume within [startDate, endDate]
func (r *transactionRepo) GetVolumeByChain(ctx context.Context, startDate, endDate time.Time) ([]entities.ChainVolumeMetrics, error) {
	var rows []struct {
		ChainID          string
		TransactionCount int64
		TotalGasUsed     float64
		AvgGasUsed       float64
		TotalFees        float64
	}

	err := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Select("chain_id, COUNT(id) AS transaction_count, SUM(gas_used) AS total_gas_used, AVG(gas_used) AS avg_gas_used, SUM(transaction_fee) AS total_fees").
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Group("chain_id").
		Order("transaction_count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	metrics := make([]entities.ChainVolumeMetrics, 0, len(rows))
	for _, row := range rows {
		metrics = append(metrics, entities.ChainVolumeMetrics{
			ChainID:          row.ChainID,
			TransactionCount: row.TransactionCount,
			TotalGasUsed:     row.TotalGasUsed,
			AvgGasUsed:       row.AvgGasUsed,
			TotalFees:        row.TotalFees,
		})
	}
	return metrics, nil
}

// GetFailedTransactionAnalysis groups failed transactions that carry an error
// message by (chain, error message), most frequent first
func (r *transactionRepo) GetFailedTransactionAnalysis(ctx context.Context, startDate, endDate time.Time) ([]entities.FailedTransactionGroup, error) {
	var rows []struct {
		ChainID      string
		ErrorMessage string
		ErrorCount   int64
		AvgGasUsed   float64
	}

	err := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Select("chain_id, error_message, COUNT(id) AS error_count, AVG(gas_used) AS avg_gas_used").
		Where("status = ?", string(entities.TransactionStatusFailed)).
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Where("error_message IS NOT NULL").
		Group("chain_id, error_message").
		Order("error_count DESC").
		Limit(failedGroupLimit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	groups := make([]entities.FailedTransactionGroup, 0, len(rows))
	for _, row := range rows {
		groups = append(groups, entities.FailedTransactionGroup{
			ChainID:      row.ChainID,
			ErrorMessage: row.ErrorMessage,
			Count:        row.ErrorCount,
			AvgGasUsed:   row.AvgGasUsed,
		})
	}
	return groups, nil
}

// toModel converts a domain entity to a GORM model
func (r *transactionRepo) toModel(t *entities.Transaction) *models.Transaction {
	m := &models.Transaction{
		ID:              t.ID,
		TransactionHash: t.TransactionHash,
		MerchantID:      t.MerchantID,
		ChainID:         t.ChainID,
		ContractAddress: t.ContractAddress,
		GasUsed:         t.GasUsed,
		GasPrice:        t.GasPrice.Ptr(),
		TransactionFee:  t.TransactionFee,
		Status:          string(t.Status),
		TransactionType: string(t.TransactionType),
		FunctionName:    t.FunctionName.String,
		FunctionParams:  jsonColumn(t.FunctionParams, "{}"),
		ErrorMessage:    t.ErrorMessage.Ptr(),
		Region:          t.Region.String,
		UserID:          t.UserID.String,
		RetryCount:      t.RetryCount,
		Priority:        t.Priority.String,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
	return m
}

// toEntity converts a GORM model to a domain entity
func (r *transactionRepo) toEntity(m *models.Transaction) *entities.Transaction {
	return &entities.Transaction{
		ID:              m.ID,
		TransactionHash: m.TransactionHash,
		MerchantID:      m.MerchantID,
		ChainID:         m.ChainID,
		ContractAddress: m.ContractAddress,
		GasUsed:         m.GasUsed,
		GasPrice:        null.Float64FromPtr(m.GasPrice),
		TransactionFee:  m.TransactionFee,
		Status:          entities.TransactionStatus(m.Status),
		TransactionType: entities.TransactionType(m.TransactionType),
		FunctionName:    stringColumn(m.FunctionName),
		FunctionParams:  jsonValue(m.FunctionParams, "{}"),
		ErrorMessage:    null.StringFromPtr(m.ErrorMessage),
		Region:          stringColumn(m.Region),
		UserID:          stringColumn(m.UserID),
		RetryCount:      m.RetryCount,
		Priority:        stringColumn(m.Priority),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
