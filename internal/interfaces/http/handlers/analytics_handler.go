package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gaswatch.backend/internal/domain/entities"
	domainerrors "gaswatch.backend/internal/domain/errors"
	"gaswatch.backend/internal/interfaces/http/response"
	"gaswatch.backend/internal/usecases"
)

// AnalyticsHandler serves the composite analytics read-models
type AnalyticsHandler struct {
	analytics *usecases.AnalyticsUsecase
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analytics *usecases.AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// GetDashboard returns the platform dashboard
// GET /api/v1/analytics/dashboard?timeRange=7d
func (h *AnalyticsHandler) GetDashboard(c *gin.Context) {
	timeRange, err := entities.ParseTimeRange(c.Query("timeRange"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid timeRange, expected 24h, 7d or 30d"))
		return
	}

	dashboard, err := h.analytics.GetDashboardAnalytics(c.Request.Context(), timeRange)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, dashboard)
}

// GetMerchantDetail returns merchant-scoped analytics
// GET /api/v1/analytics/merchants/:merchantId?timeRange=7d
func (h *AnalyticsHandler) GetMerchantDetail(c *gin.Context) {
	merchantID, err := uuid.Parse(c.Param("merchantId"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid merchant id"))
		return
	}

	timeRange, err := entities.ParseTimeRange(c.Query("timeRange"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid timeRange, expected 24h, 7d or 30d"))
		return
	}

	detail, err := h.analytics.GetMerchantAnalytics(c.Request.Context(), merchantID, timeRange)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, detail)
}

// GetChainDetail returns chain-scoped analytics
// GET /api/v1/analytics/chains/:chainId?timeRange=7d
func (h *AnalyticsHandler) GetChainDetail(c *gin.Context) {
	timeRange, err := entities.ParseTimeRange(c.Query("timeRange"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid timeRange, expected 24h, 7d or 30d"))
		return
	}

	detail, err := h.analytics.GetChainAnalytics(c.Request.Context(), c.Param("chainId"), timeRange)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, detail)
}

// GetAnalysisMetrics returns the static-analysis composite
// GET /api/v1/analytics/analysis?timeRange=7d
func (h *AnalyticsHandler) GetAnalysisMetrics(c *gin.Context) {
	timeRange, err := entities.ParseTimeRange(c.Query("timeRange"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid timeRange, expected 24h, 7d or 30d"))
		return
	}

	metrics, err := h.analytics.GetAnalysisMetrics(c.Request.Context(), timeRange)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, metrics)
}

// GetPerformanceMetrics returns the monitoring composite
// GET /api/v1/analytics/performance
func (h *AnalyticsHandler) GetPerformanceMetrics(c *gin.Context) {
	metrics, err := h.analytics.GetPerformanceMetrics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, metrics)
}
