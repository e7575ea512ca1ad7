package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gaswatch.backend/internal/domain/entities"
	domainerrors "gaswatch.backend/internal/domain/errors"
	"gaswatch.backend/internal/domain/repositories"
	"gaswatch.backend/internal/interfaces/http/response"
	"gaswatch.backend/pkg/utils"
)

// ChainHandler handles chain endpoints
type ChainHandler struct {
	chainRepo repositories.ChainRepository
}

// NewChainHandler creates a new chain handler
func NewChainHandler(chainRepo repositories.ChainRepository) *ChainHandler {
	return &ChainHandler{chainRepo: chainRepo}
}

// CreateChain registers a chain
// POST /api/v1/chains
func (h *ChainHandler) CreateChain(c *gin.Context) {
	var input entities.CreateChainInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	cfg, err := optJSON(input.Config)
	if err != nil {
		response.Error(c, err)
		return
	}

	chain := &entities.Chain{
		ID:               utils.GenerateUUIDv7(),
		Name:             input.Name,
		ChainID:          input.ChainID,
		Network:          input.Network,
		Status:           input.Status,
		Type:             input.Type,
		ReliabilityScore: 100,
		RPCURL:           optString(input.RPCURL),
		Currency:         optString(input.Currency),
		Config:           cfg,
	}
	if chain.Network == "" {
		chain.Network = entities.ChainNetworkMainnet
	}
	if chain.Status == "" {
		chain.Status = entities.ChainStatusActive
	}
	if chain.Type == "" {
		chain.Type = entities.ChainTypeEVM
	}

	if err := chain.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.chainRepo.Create(c.Request.Context(), chain); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, chain)
}

// GetChain returns one chain by its chain identifier
// GET /api/v1/chains/:chainId
func (h *ChainHandler) GetChain(c *gin.Context) {
	chain, err := h.chainRepo.GetByChainID(c.Request.Context(), c.Param("chainId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, chain)
}

// ListChains lists all chains
// GET /api/v1/chains
func (h *ChainHandler) ListChains(c *gin.Context) {
	chains, err := h.chainRepo.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if chains == nil {
		chains = []*entities.Chain{}
	}
	response.Success(c, http.StatusOK, gin.H{"chains": chains})
}

// RefreshChainMetrics recomputes a chain's derived metrics from its
// transaction history
// POST /api/v1/chains/:chainId/refresh-metrics
func (h *ChainHandler) RefreshChainMetrics(c *gin.Context) {
	chainID := c.Param("chainId")
	if err := h.chainRepo.UpdateChainMetrics(c.Request.Context(), chainID); err != nil {
		response.Error(c, err)
		return
	}

	chain, err := h.chainRepo.GetByChainID(c.Request.Context(), chainID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, chain)
}
