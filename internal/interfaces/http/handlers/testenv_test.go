package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gaswatch.backend/internal/config"
	domainrepos "gaswatch.backend/internal/domain/repositories"
	infrarepos "gaswatch.backend/internal/infrastructure/repositories"
	"gaswatch.backend/internal/usecases"
	"gaswatch.backend/pkg/logger"
)

type testEnv struct {
	db              *gorm.DB
	router          *gin.Engine
	transactionRepo domainrepos.TransactionRepository
	merchantRepo    domainrepos.MerchantRepository
	chainRepo       domainrepos.ChainRepository
	analysisRepo    domainrepos.AnalysisResultRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.Init("test")

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")

	for _, q := range []string{
		`CREATE TABLE transactions (
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
		);`,
		`CREATE TABLE merchants (
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
		);`,
		`CREATE TABLE chains (
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
		);`,
		`CREATE TABLE analysis_results (
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
		);`,
	} {
		require.NoError(t, db.Exec(q).Error, "create table")
	}

	env := &testEnv{
		db:              db,
		transactionRepo: infrarepos.NewTransactionRepository(db),
		merchantRepo:    infrarepos.NewMerchantRepository(db),
		chainRepo:       infrarepos.NewChainRepository(db),
		analysisRepo:    infrarepos.NewAnalysisResultRepository(db),
	}

	analytics := usecases.NewAnalyticsUsecase(
		env.transactionRepo,
		env.merchantRepo,
		env.chainRepo,
		env.analysisRepo,
		config.AnalyticsConfig{HighGasLimit: 10, PerformanceHighGasLimit: 20, ActiveWindowDays: 7, TrendLookbackDays: 30},
	)

	transactionHandler := NewTransactionHandler(env.transactionRepo)
	merchantHandler := NewMerchantHandler(env.merchantRepo)
	chainHandler := NewChainHandler(env.chainRepo)
	analysisHandler := NewAnalysisResultHandler(env.analysisRepo)
	analyticsHandler := NewAnalyticsHandler(analytics)

	router := gin.New()
	v1 := router.Group("/api/v1")
	{
		v1.POST("/transactions", transactionHandler.CreateTransaction)
		v1.GET("/transactions", transactionHandler.ListTransactions)
		v1.GET("/transactions/:id", transactionHandler.GetTransaction)

		v1.POST("/merchants", merchantHandler.CreateMerchant)
		v1.GET("/merchants", merchantHandler.ListMerchants)
		v1.GET("/merchants/:id", merchantHandler.GetMerchant)
		v1.PATCH("/merchants/:id/status", merchantHandler.UpdateMerchantStatus)

		v1.POST("/chains", chainHandler.CreateChain)
		v1.GET("/chains", chainHandler.ListChains)
		v1.GET("/chains/:chainId", chainHandler.GetChain)
		v1.POST("/chains/:chainId/refresh-metrics", chainHandler.RefreshChainMetrics)

		v1.POST("/analysis-results", analysisHandler.CreateAnalysisResult)
		v1.GET("/analysis-results", analysisHandler.ListAnalysisResults)
		v1.GET("/analysis-results/:id", analysisHandler.GetAnalysisResult)

		v1.GET("/analytics/dashboard", analyticsHandler.GetDashboard)
		v1.GET("/analytics/merchants/:merchantId", analyticsHandler.GetMerchantDetail)
		v1.GET("/analytics/chains/:chainId", analyticsHandler.GetChainDetail)
		v1.GET("/analytics/analysis", analyticsHandler.GetAnalysisMetrics)
		v1.GET("/analytics/performance", analyticsHandler.GetPerformanceMetrics)
	}
	env.router = router
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err, "marshal request body")
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "decode response body")
	return body
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, "unexpected status, body=%s", w.Body.String())
}
