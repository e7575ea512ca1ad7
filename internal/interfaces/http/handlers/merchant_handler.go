package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gaswatch.backend/internal/domain/entities"
	domainerrors "gaswatch.backend/internal/domain/errors"
	"gaswatch.backend/internal/domain/repositories"
	"gaswatch.backend/internal/interfaces/http/response"
	"gaswatch.backend/pkg/utils"
)

// MerchantHandler handles merchant endpoints
type MerchantHandler struct {
	merchantRepo repositories.MerchantRepository
}

// NewMerchantHandler creates a new merchant handler
func NewMerchantHandler(merchantRepo repositories.MerchantRepository) *MerchantHandler {
	return &MerchantHandler{merchantRepo: merchantRepo}
}

// CreateMerchant onboards a merchant
// POST /api/v1/merchants
func (h *MerchantHandler) CreateMerchant(c *gin.Context) {
	var input entities.CreateMerchantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	metadata, err := optJSON(input.Metadata)
	if err != nil {
		response.Error(c, err)
		return
	}

	merchant := &entities.Merchant{
		ID:          utils.GenerateUUIDv7(),
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
		Status:      input.Status,
		Plan:        input.Plan,
		Tier:        input.Tier,
		Website:     optString(input.Website),
		Email:       optString(input.Email),
		Country:     optString(input.Country),
		Category:    optString(input.Category),
		Metadata:    metadata,
	}
	if merchant.Status == "" {
		merchant.Status = entities.MerchantStatusActive
	}
	if merchant.Plan == "" {
		merchant.Plan = entities.MerchantPlanFree
	}
	if merchant.Tier == "" {
		merchant.Tier = entities.MerchantTierBasic
	}

	if err := merchant.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.merchantRepo.Create(c.Request.Context(), merchant); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, merchant)
}

// GetMerchant returns one merchant by id
// GET /api/v1/merchants/:id
func (h *MerchantHandler) GetMerchant(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// not a uuid, try the slug
		merchant, slugErr := h.merchantRepo.GetBySlug(c.Request.Context(), c.Param("id"))
		if slugErr != nil {
			response.Error(c, slugErr)
			return
		}
		response.Success(c, http.StatusOK, merchant)
		return
	}

	merchant, err := h.merchantRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, merchant)
}

// ListMerchants lists merchants
// GET /api/v1/merchants?page=&limit=
func (h *MerchantHandler) ListMerchants(c *gin.Context) {
	pagination := paginationFromQuery(c)
	merchants, total, err := h.merchantRepo.List(c.Request.Context(), pagination)
	if err != nil {
		response.Error(c, err)
		return
	}
	if merchants == nil {
		merchants = []*entities.Merchant{}
	}

	response.Success(c, http.StatusOK, gin.H{
		"merchants":  merchants,
		"pagination": utils.CalculateMeta(total, pagination.Page, pagination.Limit),
	})
}

// UpdateMerchantStatus mutates a merchant's lifecycle status
// PATCH /api/v1/merchants/:id/status
func (h *MerchantHandler) UpdateMerchantStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid merchant id"))
		return
	}

	var input entities.UpdateMerchantStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	switch input.Status {
	case entities.MerchantStatusActive, entities.MerchantStatusInactive, entities.MerchantStatusSuspended:
	default:
		response.Error(c, domainerrors.BadRequest("invalid status"))
		return
	}

	if err := h.merchantRepo.UpdateStatus(c.Request.Context(), id, input.Status); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "status": input.Status})
}
