package repositories

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"gaswatch.backend/internal/domain/entities"
	domainerrors "gaswatch.backend/internal/domain/errors"
	"gaswatch.backend/internal/domain/repositories"
	"gaswatch.backend/internal/infrastructure/models"
)

// volatilityMinSamples is the minimum transaction count (exclusive) a chain
// needs in the lookback window before its volatility is reported
const volatilityMinSamples = 100

// chainRepo implements repositories.ChainRepository
type chainRepo struct {
	db *gorm.DB
}

// NewChainRepository creates a new chain repository
func NewChainRepository(db *gorm.DB) repositories.ChainRepository {
	return &chainRepo{db: db}
}

// Create creates a new chain
func (r *chainRepo) Create(ctx context.Context, chain *entities.Chain) error {
	m := r.toModel(chain)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	chain.CreatedAt = m.CreatedAt
	chain.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a chain by ID
func (r *chainRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Chain, error) {
	var m models.Chain
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByChainID gets a chain by its external chain identifier
func (r *chainRepo) GetByChainID(ctx context.Context, chainID string) (*entities.Chain, error) {
	var m models.Chain
	if err := r.db.WithContext(ctx).Where("chain_id = ?", chainID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Update updates a chain's authored fields. Derived metrics are written only
// through UpdateChainMetrics.
func (r *chainRepo) Update(ctx context.Context, chain *entities.Chain) error {
	updates := map[string]interface{}{
		"name":     chain.Name,
		"chain_id": chain.ChainID,
		"network":  string(chain.Network),
		"status":   string(chain.Status),
		"type":     string(chain.Type),
		"rpc_url":  chain.RPCURL.String,
		"currency": chain.Currency.String,
		"config":   jsonColumn(chain.Config, "{}"),
	}

	result := r.db.WithContext(ctx).Model(&models.Chain{}).Where("id = ?", chain.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists all chains ordered by name
func (r *chainRepo) List(ctx context.Context) ([]*entities.Chain, error) {
	var ms []models.Chain
	if err := r.db.WithContext(ctx).Order("name").Find(&ms).Error; err != nil {
		return nil, err
	}

	var chains []*entities.Chain
	for _, m := range ms {
		model := m
		chains = append(chains, r.toEntity(&model))
	}
	return chains, nil
}

// GetReliabilityMetrics returns per-chain reliability aggregates over
// transactions within [startDate, endDate], most reliable first
func (r *chainRepo) GetReliabilityMetrics(ctx context.Context, startDate, endDate time.Time) ([]entities.ChainReliabilityMetrics, error) {
	var rows []struct {
		ChainID            string
		ChainName          string
		ChainType          string
		ReliabilityScore   float64
		AverageGasPrice    *float64
		GasVolatility      *float64
		TotalTransactions  int64
		RecentTransactions int64
		SuccessRate        *float64
	}

	err := r.db.WithContext(ctx).Model(&models.Chain{}).
		Select("chains.chain_id AS chain_id, chains.name AS chain_name, chains.type AS chain_type, "+
			"chains.reliability_score, chains.average_gas_price, chains.gas_volatility, "+
			"chains.transaction_count AS total_transactions, COUNT(transactions.id) AS recent_transactions, "+
			"COUNT(CASE WHEN transactions.status = 'success' THEN 1 END) * 100.0 / COUNT(transactions.id) AS success_rate").
		Joins("JOIN transactions ON transactions.chain_id = chains.chain_id").
		Where("transactions.created_at BETWEEN ? AND ?", startDate, endDate).
		Group("chains.chain_id, chains.name, chains.type, chains.reliability_score, chains.average_gas_price, chains.gas_volatility, chains.transaction_count").
		Order("chains.reliability_score DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	metrics := make([]entities.ChainReliabilityMetrics, 0, len(rows))
	for _, row := range rows {
		metrics = append(metrics, entities.ChainReliabilityMetrics{
			ChainID:            row.ChainID,
			ChainName:          row.ChainName,
			ChainType:          entities.ChainType(row.ChainType),
			ReliabilityScore:   row.ReliabilityScore,
			AverageGasPrice:    null.Float64FromPtr(row.AverageGasPrice),
			GasVolatility:      null.Float64FromPtr(row.GasVolatility),
			TotalTransactions:  row.TotalTransactions,
			RecentTransactions: row.RecentTransactions,
			SuccessRate:        null.Float64FromPtr(row.SuccessRate),
		})
	}
	return metrics, nil
}

// GetGasVolatilityMetrics computes the standard deviation of successful gas
// usage per chain over the last N days. Chains with 100 or fewer qualifying
// transactions are suppressed entirely.
func (r *chainRepo) GetGasVolatilityMetrics(ctx context.Context, days int) ([]entities.ChainVolatilityMetrics, error) {
	cutoff := time.Now().AddDate(0, 0, -days)

	var rows []struct {
		ChainID          string
		ChainName        string
		AvgGasUsed       float64
		MinGasUsed       float64
		MaxGasUsed       float64
		SumGas           float64
		SumSquares       float64
		TransactionCount int64
	}

	// The sqlite driver used in tests has no STDDEV aggregate, so the query
	// returns the moments and the stddev is derived below.
	err := r.db.WithContext(ctx).Model(&models.Chain{}).
		Select("chains.chain_id AS chain_id, chains.name AS chain_name, "+
			"AVG(transactions.gas_used) AS avg_gas_used, MIN(transactions.gas_used) AS min_gas_used, "+
			"MAX(transactions.gas_used) AS max_gas_used, SUM(transactions.gas_used) AS sum_gas, "+
			"SUM(transactions.gas_used * transactions.gas_used) AS sum_squares, COUNT(transactions.id) AS transaction_count").
		Joins("JOIN transactions ON transactions.chain_id = chains.chain_id").
		Where("transactions.created_at >= ?", cutoff).
		Where("transactions.status = ?", string(entities.TransactionStatusSuccess)).
		Group("chains.chain_id, chains.name").
		Having("COUNT(transactions.id) > ?", volatilityMinSamples).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	metrics := make([]entities.ChainVolatilityMetrics, 0, len(rows))
	for _, row := range rows {
		metrics = append(metrics, entities.ChainVolatilityMetrics{
			ChainID:          row.ChainID,
			ChainName:        row.ChainName,
			GasVolatility:    sampleStdDev(row.TransactionCount, row.SumGas, row.SumSquares),
			AvgGasUsed:       row.AvgGasUsed,
			MinGasUsed:       row.MinGasUsed,
			MaxGasUsed:       row.MaxGasUsed,
			TransactionCount: row.TransactionCount,
		})
	}

	sort.SliceStable(metrics, func(i, j int) bool {
		return metrics[i].GasVolatility.Float64 > metrics[j].GasVolatility.Float64
	})
	return metrics, nil
}

// GetPerformanceRanking returns all chains ranked by reliability score,
// ties broken by transaction count
func (r *chainRepo) GetPerformanceRanking(ctx context.Context) ([]entities.ChainPerformanceRank, error) {
	var ms []models.Chain
	err := r.db.WithContext(ctx).
		Order("reliability_score DESC").
		Order("transaction_count DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	ranking := make([]entities.ChainPerformanceRank, 0, len(ms))
	for _, m := range ms {
		ranking = append(ranking, entities.ChainPerformanceRank{
			ChainID:           m.ChainID,
			ChainName:         m.Name,
			ChainType:         entities.ChainType(m.Type),
			ReliabilityScore:  m.ReliabilityScore,
			AverageGasPrice:   null.Float64FromPtr(m.AverageGasPrice),
			TotalTransactions: m.TransactionCount,
			GasVolatility:     null.Float64FromPtr(m.GasVolatility),
		})
	}
	return ranking, nil
}

// UpdateChainMetrics recomputes a chain's derived metrics from its success
// and failed transactions (pending rows excluded) and writes them back.
// A concurrent refresh of the same chain is last-write-wins.
func (r *chainRepo) UpdateChainMetrics(ctx context.Context, chainID string) error {
	var row struct {
		Cnt        int64
		SuccessCnt int64
		AvgGas     *float64
		SumGas     *float64
		SumSquares *float64
	}

	err := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Select("COUNT(id) AS cnt, COUNT(CASE WHEN status = 'success' THEN 1 END) AS success_cnt, "+
			"AVG(gas_used) AS avg_gas, SUM(gas_used) AS sum_gas, SUM(gas_used * gas_used) AS sum_squares").
		Where("chain_id = ?", chainID).
		Where("status IN ?", []string{
			string(entities.TransactionStatusSuccess),
			string(entities.TransactionStatusFailed),
		}).
		Scan(&row).Error
	if err != nil {
		return err
	}

	reliability := 100.0
	if row.Cnt > 0 {
		reliability = float64(row.SuccessCnt) * 100.0 / float64(row.Cnt)
	}

	var sumGas, sumSquares float64
	if row.SumGas != nil {
		sumGas = *row.SumGas
	}
	if row.SumSquares != nil {
		sumSquares = *row.SumSquares
	}

	updates := map[string]interface{}{
		"average_gas_price": row.AvgGas,
		"gas_volatility":    sampleStdDev(row.Cnt, sumGas, sumSquares).Ptr(),
		"transaction_count": row.Cnt,
		"reliability_score": reliability,
	}

	result := r.db.WithContext(ctx).Model(&models.Chain{}).Where("chain_id = ?", chainID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// sampleStdDev derives the sample standard deviation from the first two
// moments; null when fewer than two samples exist
func sampleStdDev(n int64, sum, sumSquares float64) null.Float64 {
	if n < 2 {
		return null.Float64{}
	}
	variance := (sumSquares - sum*sum/float64(n)) / float64(n-1)
	if variance < 0 {
		// guard against floating point drift near zero variance
		variance = 0
	}
	return null.Float64From(math.Sqrt(variance))
}

// toModel converts a domain entity to a GORM model
func (r *chainRepo) toModel(e *entities.Chain) *models.Chain {
	return &models.Chain{
		ID:               e.ID,
		Name:             e.Name,
		ChainID:          e.ChainID,
		Network:          string(e.Network),
		Status:           string(e.Status),
		Type:             string(e.Type),
		AverageGasPrice:  e.AverageGasPrice.Ptr(),
		GasVolatility:    e.GasVolatility.Ptr(),
		TransactionCount: e.TransactionCount,
		ReliabilityScore: e.ReliabilityScore,
		RPCURL:           e.RPCURL.String,
		Currency:         e.Currency.String,
		Config:           jsonColumn(e.Config, "{}"),
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

// toEntity converts a GORM model to a domain entity
func (r *chainRepo) toEntity(m *models.Chain) *entities.Chain {
	return &entities.Chain{
		ID:               m.ID,
		Name:             m.Name,
		ChainID:          m.ChainID,
		Network:          entities.ChainNetwork(m.Network),
		Status:           entities.ChainStatus(m.Status),
		Type:             entities.ChainType(m.Type),
		AverageGasPrice:  null.Float64FromPtr(m.AverageGasPrice),
		GasVolatility:    null.Float64FromPtr(m.GasVolatility),
		TransactionCount: m.TransactionCount,
		ReliabilityScore: m.ReliabilityScore,
		RPCURL:           stringColumn(m.RPCURL),
		Currency:         stringColumn(m.Currency),
		Config:           jsonValue(m.Config, "{}"),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
