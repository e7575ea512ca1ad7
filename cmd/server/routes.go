package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gaswatch.backend/internal/interfaces/http/handlers"
)

type routeDeps struct {
	transactionHandler *handlers.TransactionHandler
	merchantHandler    *handlers.MerchantHandler
	chainHandler       *handlers.ChainHandler
	analysisHandler    *handlers.AnalysisResultHandler
	analyticsHandler   *handlers.AnalyticsHandler
	adminKeyMiddleware gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Transaction routes (reads public, writes admin-gated)
		transactions := v1.Group("/transactions")
		{
			transactions.POST("", d.adminKeyMiddleware, d.transactionHandler.CreateTransaction)
			transactions.GET("", d.transactionHandler.ListTransactions)
			transactions.GET("/:id", d.transactionHandler.GetTransaction)
		}

		// Merchant routes
		merchants := v1.Group("/merchants")
		{
			merchants.POST("", d.adminKeyMiddleware, d.merchantHandler.CreateMerchant)
			merchants.GET("", d.merchantHandler.ListMerchants)
			merchants.GET("/:id", d.merchantHandler.GetMerchant)
			merchants.PATCH("/:id/status", d.adminKeyMiddleware, d.merchantHandler.UpdateMerchantStatus)
		}

		// Chain routes
		chains := v1.Group("/chains")
		{
			chains.POST("", d.adminKeyMiddleware, d.chainHandler.CreateChain)
			chains.GET("", d.chainHandler.ListChains)
			chains.GET("/:chainId", d.chainHandler.GetChain)
			chains.POST("/:chainId/refresh-metrics", d.adminKeyMiddleware, d.chainHandler.RefreshChainMetrics)
		}

		// Analysis result routes
		analysisResults := v1.Group("/analysis-results")
		{
			analysisResults.POST("", d.adminKeyMiddleware, d.analysisHandler.CreateAnalysisResult)
			analysisResults.GET("", d.analysisHandler.ListAnalysisResults)
			analysisResults.GET("/:id", d.analysisHandler.GetAnalysisResult)
		}

		// Analytics routes (read-only composites)
		analytics := v1.Group("/analytics")
		{
			analytics.GET("/dashboard", d.analyticsHandler.GetDashboard)
			analytics.GET("/merchants/:merchantId", d.analyticsHandler.GetMerchantDetail)
			analytics.GET("/chains/:chainId", d.analyticsHandler.GetChainDetail)
			analytics.GET("/analysis", d.analyticsHandler.GetAnalysisMetrics)
			analytics.GET("/performance", d.analyticsHandler.GetPerformanceMetrics)
		}
	}
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "gaswatch-backend",
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, X-API-Key, X-Request-ID")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}
