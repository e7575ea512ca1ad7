package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"gaswatch.backend/internal/config"
	"gaswatch.backend/internal/infrastructure/optimization"
	"gaswatch.backend/internal/infrastructure/repositories"
	"gaswatch.backend/internal/interfaces/http/handlers"
	"gaswatch.backend/internal/interfaces/http/middleware"
	"gaswatch.backend/internal/usecases"
	"gaswatch.backend/pkg/logger"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	openDB     = func(dsn string, cfg *config.Config) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
			Logger:      logger.NewGormLogger(cfg.Database.SlowQueryThreshold),
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")

		// Best effort; missing indexes degrade query latency, not correctness
		optimizer := optimization.NewIndexOptimizer(db)
		optimizer.Apply(context.Background())
		optimizer.AnalyzeIndexUsage(context.Background())
		optimizer.MonitorSlowQueries(context.Background())
	}

	// Initialize repositories
	transactionRepo := repositories.NewTransactionRepository(db)
	merchantRepo := repositories.NewMerchantRepository(db)
	chainRepo := repositories.NewChainRepository(db)
	analysisRepo := repositories.NewAnalysisResultRepository(db)

	// Initialize usecases
	analyticsUsecase := usecases.NewAnalyticsUsecase(transactionRepo, merchantRepo, chainRepo, analysisRepo, cfg.Analytics)

	// Initialize handlers
	transactionHandler := handlers.NewTransactionHandler(transactionRepo)
	merchantHandler := handlers.NewMerchantHandler(merchantRepo)
	chainHandler := handlers.NewChainHandler(chainRepo)
	analysisHandler := handlers.NewAnalysisResultHandler(analysisRepo)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsUsecase)

	// Write endpoints require the admin API key
	adminKeyMiddleware := middleware.AdminKeyMiddleware(cfg.Admin.APIKeyHash)
	if cfg.Admin.APIKeyHash == "" {
		log.Println("⚠️ ADMIN_API_KEY_HASH not set, write endpoints are disabled")
	}

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		transactionHandler: transactionHandler,
		merchantHandler:    merchantHandler,
		chainHandler:       chainHandler,
		analysisHandler:    analysisHandler,
		analyticsHandler:   analyticsHandler,
		adminKeyMiddleware: adminKeyMiddleware,
	})

	// Start server
	log.Printf("🚀 GasWatch Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
