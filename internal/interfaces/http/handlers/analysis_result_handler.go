package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gaswatch.backend/internal/domain/entities"
	domainerrors "gaswatch.backend/internal/domain/errors"
	"gaswatch.backend/internal/domain/repositories"
	"gaswatch.backend/internal/interfaces/http/response"
	"gaswatch.backend/pkg/utils"
)

// AnalysisResultHandler handles analysis-result endpoints
type AnalysisResultHandler struct {
	analysisRepo repositories.AnalysisResultRepository
}

// NewAnalysisResultHandler creates a new analysis-result handler
func NewAnalysisResultHandler(analysisRepo repositories.AnalysisResultRepository) *AnalysisResultHandler {
	return &AnalysisResultHandler{analysisRepo: analysisRepo}
}

// CreateAnalysisResult records a finished static-analysis run
// POST /api/v1/analysis-results
func (h *AnalysisResultHandler) CreateAnalysisResult(c *gin.Context) {
	var input entities.CreateAnalysisResultInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	merchantID, err := uuid.Parse(input.MerchantID)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid merchant id"))
		return
	}

	metadata, err := optJSON(input.Metadata)
	if err != nil {
		response.Error(c, err)
		return
	}

	now := time.Now()
	result := &entities.AnalysisResult{
		ID:                   utils.GenerateUUIDv7(),
		MerchantID:           merchantID,
		ChainID:              input.ChainID,
		ContractAddress:      input.ContractAddress,
		SourceCode:           input.SourceCode,
		Language:             input.Language,
		Status:               input.Status,
		Findings:             input.Findings,
		ViolationCount:       len(input.Findings),
		EstimatedGasSavings:  null.Float64FromPtr(input.EstimatedGasSavings),
		EstimatedCostSavings: null.Float64FromPtr(input.EstimatedCostSavings),
		AnalyzerVersion:      optString(input.AnalyzerVersion),
		Priority:             optString(input.Priority),
		ErrorMessage:         optString(input.ErrorMessage),
		Metadata:             metadata,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := result.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.analysisRepo.Create(c.Request.Context(), result); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// GetAnalysisResult returns one analysis result by id
// GET /api/v1/analysis-results/:id
func (h *AnalysisResultHandler) GetAnalysisResult(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid analysis result id"))
		return
	}

	result, err := h.analysisRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// ListAnalysisResults lists analysis results with optional filters
// GET /api/v1/analysis-results?merchantId=&chainId=&status=&page=&limit=
func (h *AnalysisResultHandler) ListAnalysisResults(c *gin.Context) {
	var filter repositories.AnalysisResultFilter

	if raw := c.Query("merchantId"); raw != "" {
		merchantID, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("invalid merchant id"))
			return
		}
		filter.MerchantID = &merchantID
	}
	if raw := c.Query("chainId"); raw != "" {
		filter.ChainID = &raw
	}
	if raw := c.Query("status"); raw != "" {
		status := entities.AnalysisStatus(raw)
		switch status {
		case entities.AnalysisStatusCompleted, entities.AnalysisStatusFailed, entities.AnalysisStatusPending:
		default:
			response.Error(c, domainerrors.BadRequest("invalid status"))
			return
		}
		filter.Status = &status
	}

	pagination := paginationFromQuery(c)
	results, total, err := h.analysisRepo.List(c.Request.Context(), filter, pagination)
	if err != nil {
		response.Error(c, err)
		return
	}
	if results == nil {
		results = []*entities.AnalysisResult{}
	}

	response.Success(c, http.StatusOK, gin.H{
		"analysisResults": results,
		"pagination":      utils.CalculateMeta(total, pagination.Page, pagination.Limit),
	})
}
