package optimization

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gaswatch.backend/pkg/logger"
)

// IndexOptimizer creates and inspects the indexes backing the analytics
// queries. Every statement is idempotent and failures on individual indexes
// do not abort the pass.
type IndexOptimizer struct {
	db *gorm.DB
}

// NewIndexOptimizer creates a new index optimizer
func NewIndexOptimizer(db *gorm.DB) *IndexOptimizer {
	return &IndexOptimizer{db: db}
}

// Apply creates the analytics index set: composite indexes for the merchant
// and chain aggregations, partial indexes for the hot subsets, and covering
// indexes for the dashboard scan patterns.
func (o *IndexOptimizer) Apply(ctx context.Context) {
	logger.Info(ctx, "starting database index optimization")

	// merchant analytics
	o.createIndex(ctx, "transactions", "idx_merchant_chain_date", []string{"merchant_id", "chain_id", "created_at"})
	o.createIndex(ctx, "transactions", "idx_merchant_status_date", []string{"merchant_id", "status", "created_at"})
	o.createIndex(ctx, "transactions", "idx_merchant_gas_date", []string{"merchant_id", "gas_used", "created_at"})

	// chain analytics
	o.createIndex(ctx, "transactions", "idx_chain_status_date", []string{"chain_id", "status", "created_at"})
	o.createIndex(ctx, "transactions", "idx_chain_gas_date", []string{"chain_id", "gas_used", "created_at"})
	o.createIndex(ctx, "transactions", "idx_chain_merchant_date", []string{"chain_id", "merchant_id", "created_at"})

	// hot subsets
	o.createPartialIndex(ctx, "transactions", "idx_recent_transactions",
		[]string{"created_at", "status"},
		"created_at > NOW() - INTERVAL '30 days' AND status = 'success'")
	o.createPartialIndex(ctx, "transactions", "idx_high_gas_transactions",
		[]string{"gas_used", "created_at"},
		"gas_used > 1000000")
	o.createPartialIndex(ctx, "transactions", "idx_failed_transactions",
		[]string{"created_at", "error_message"},
		"status = 'failed' AND error_message IS NOT NULL")

	// analysis results
	o.createIndex(ctx, "analysis_results", "idx_analysis_merchant_chain_date", []string{"merchant_id", "chain_id", "created_at"})
	o.createIndex(ctx, "analysis_results", "idx_analysis_language_status_date", []string{"language", "status", "created_at"})
	o.createIndex(ctx, "analysis_results", "idx_analysis_savings_date", []string{"estimated_gas_savings", "created_at"})

	// merchants
	o.createIndex(ctx, "merchants", "idx_merchant_status_plan_date", []string{"status", "plan", "created_at"})
	o.createIndex(ctx, "merchants", "idx_merchant_last_active", []string{"last_active_at", "status"})

	// chains
	o.createIndex(ctx, "chains", "idx_chain_status_type_date", []string{"status", "type", "created_at"})
	o.createIndex(ctx, "chains", "idx_chain_reliability_date", []string{"reliability_score", "created_at"})

	// covering indexes for the dashboard scans
	o.createCoveringIndex(ctx, "transactions", "idx_transaction_covering",
		[]string{"merchant_id", "chain_id", "status", "created_at"},
		[]string{"gas_used", "transaction_fee", "contract_address"})
	o.createCoveringIndex(ctx, "analysis_results", "idx_analysis_covering",
		[]string{"merchant_id", "chain_id", "status", "created_at"},
		[]string{"violation_count", "estimated_gas_savings", "language"})

	logger.Info(ctx, "database index optimization completed")
}

func (o *IndexOptimizer) createIndex(ctx context.Context, table, name string, columns []string) {
	query := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)", name, table, strings.Join(columns, ", "))
	if err := o.db.WithContext(ctx).Exec(query).Error; err != nil {
		logger.Error(ctx, "failed to create index", zap.String("index", name), zap.Error(err))
		return
	}
	logger.Info(ctx, "created index", zap.String("index", name), zap.String("table", table))
}

func (o *IndexOptimizer) createPartialIndex(ctx context.Context, table, name string, columns []string, condition string) {
	query := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s) WHERE %s", name, table, strings.Join(columns, ", "), condition)
	if err := o.db.WithContext(ctx).Exec(query).Error; err != nil {
		logger.Error(ctx, "failed to create partial index", zap.String("index", name), zap.Error(err))
		return
	}
	logger.Info(ctx, "created partial index", zap.String("index", name), zap.String("condition", condition))
}

// createCoveringIndex tries an INCLUDE index first and falls back to a plain
// composite index on servers that predate the clause
func (o *IndexOptimizer) createCoveringIndex(ctx context.Context, table, name string, indexed, included []string) {
	query := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s) INCLUDE (%s)",
		name, table, strings.Join(indexed, ", "), strings.Join(included, ", "))
	if err := o.db.WithContext(ctx).Exec(query).Error; err == nil {
		logger.Info(ctx, "created covering index", zap.String("index", name), zap.String("table", table))
		return
	}

	fallback := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s, %s)",
		name, table, strings.Join(indexed, ", "), strings.Join(included, ", "))
	if err := o.db.WithContext(ctx).Exec(fallback).Error; err != nil {
		logger.Error(ctx, "failed to create covering index", zap.String("index", name), zap.Error(err))
		return
	}
	logger.Info(ctx, "created fallback index", zap.String("index", name), zap.String("table", table))
}

// indexUsageRow is one pg_stat_user_indexes entry
type indexUsageRow struct {
	TableName string `gorm:"column:tablename"`
	IndexName string `gorm:"column:indexname"`
	IdxScan   int64  `gorm:"column:idx_scan"`
	IndexSize string `gorm:"column:index_size"`
}

// AnalyzeIndexUsage refreshes planner statistics and logs index usage. The
// pass is advisory and never fails the caller.
func (o *IndexOptimizer) AnalyzeIndexUsage(ctx context.Context) {
	if err := o.db.WithContext(ctx).Exec("ANALYZE").Error; err != nil {
		logger.Warn(ctx, "failed to refresh table statistics", zap.Error(err))
		return
	}

	var stats []indexUsageRow
	err := o.db.WithContext(ctx).Raw(`
		SELECT tablename, indexname, idx_scan,
		       pg_size_pretty(pg_relation_size(indexrelid)) AS index_size
		FROM pg_stat_user_indexes
		WHERE schemaname = 'public'
		ORDER BY idx_scan DESC`).Scan(&stats).Error
	if err != nil {
		logger.Warn(ctx, "failed to read index usage statistics", zap.Error(err))
		return
	}
	logger.Info(ctx, "index usage statistics", zap.Int("indexes", len(stats)))

	var unused []indexUsageRow
	err = o.db.WithContext(ctx).Raw(`
		SELECT tablename, indexname, idx_scan,
		       pg_size_pretty(pg_relation_size(indexrelid)) AS index_size
		FROM pg_stat_user_indexes
		WHERE idx_scan = 0 AND schemaname = 'public'`).Scan(&unused).Error
	if err != nil {
		logger.Warn(ctx, "failed to read unused index statistics", zap.Error(err))
		return
	}
	for _, idx := range unused {
		logger.Warn(ctx, "unused index found",
			zap.String("table", idx.TableName),
			zap.String("index", idx.IndexName),
			zap.String("size", idx.IndexSize))
	}
}

// slowQueryRow is one pg_stat_statements entry above the latency threshold
type slowQueryRow struct {
	Query    string  `gorm:"column:query"`
	Calls    int64   `gorm:"column:calls"`
	MeanTime float64 `gorm:"column:mean_time"`
}

// MonitorSlowQueries logs the heaviest statements above 100ms mean latency.
// Requires the pg_stat_statements extension; its absence is tolerated.
func (o *IndexOptimizer) MonitorSlowQueries(ctx context.Context) {
	var slow []slowQueryRow
	err := o.db.WithContext(ctx).Raw(`
		SELECT query, calls, mean_time
		FROM pg_stat_statements
		WHERE mean_time > 100
		ORDER BY total_time DESC
		LIMIT 10`).Scan(&slow).Error
	if err != nil {
		logger.Warn(ctx, "failed to read slow query statistics", zap.Error(err))
		return
	}
	for _, q := range slow {
		logger.Warn(ctx, "slow query detected",
			zap.String("query", q.Query),
			zap.Int64("calls", q.Calls),
			zap.Float64("mean_ms", q.MeanTime))
	}
}
