package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createTransactionTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE transactions (
		id TEXT PRIMARY KEY,
		transaction_hash TEXT NOT NULL,
		merchant_id TEXT NOT NULL,
		chain_id TEXT NOT NULL,
		contract_address TEXT NOT NULL,
		gas_used REAL NOT NULL,
		gas_price REAL,
		transaction_fee REAL NOT NULL,
		status TEXT NOT NULL,
		transaction_type TEXT NOT NULL,
		function_name TEXT,
		function_params TEXT,
		error_message TEXT,
		region TEXT,
		user_id TEXT,
		retry_count INTEGER DEFAULT 0,
		priority TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createMerchantTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE merchants (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		slug TEXT NOT NULL UNIQUE,
		description TEXT,
		status TEXT NOT NULL,
		plan TEXT NOT NULL,
		tier TEXT NOT NULL,
		website TEXT,
		email TEXT,
		country TEXT,
		last_active_at DATETIME,
		is_verified BOOLEAN,
		category TEXT,
		metadata TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createChainTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE chains (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		chain_id TEXT NOT NULL UNIQUE,
		network TEXT NOT NULL,
		status TEXT NOT NULL,
		type TEXT NOT NULL,
		average_gas_price REAL,
		gas_volatility REAL,
		transaction_count INTEGER DEFAULT 0,
		reliability_score REAL DEFAULT 100,
		rpc_url TEXT,
		currency TEXT,
		config TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createAnalysisResultTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE analysis_results (
		id TEXT PRIMARY KEY,
		merchant_id TEXT NOT NULL,
		chain_id TEXT NOT NULL,
		contract_address TEXT NOT NULL,
		source_code TEXT,
		language TEXT NOT NULL,
		status TEXT NOT NULL,
		findings TEXT,
		violation_count INTEGER DEFAULT 0,
		estimated_gas_savings REAL,
		estimated_cost_savings REAL,
		analyzer_version TEXT,
		priority TEXT,
		error_message TEXT,
		metadata TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createAnalyticsTables(t *testing.T, db *gorm.DB) {
	createTransactionTable(t, db)
	createMerchantTable(t, db)
	createChainTable(t, db)
	createAnalysisResultTable(t, db)
}
