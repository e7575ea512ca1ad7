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

// TransactionHandler handles transaction endpoints
type TransactionHandler struct {
	transactionRepo repositories.TransactionRepository
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionRepo repositories.TransactionRepository) *TransactionHandler {
	return &TransactionHandler{transactionRepo: transactionRepo}
}

// CreateTransaction records a transaction fact
// POST /api/v1/transactions
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var input entities.CreateTransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	merchantID, err := uuid.Parse(input.MerchantID)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid merchant id"))
		return
	}

	params, err := optJSON(input.FunctionParams)
	if err != nil {
		response.Error(c, err)
		return
	}

	tx := &entities.Transaction{
		ID:              utils.GenerateUUIDv7(),
		TransactionHash: input.TransactionHash,
		MerchantID:      merchantID,
		ChainID:         input.ChainID,
		ContractAddress: input.ContractAddress,
		GasUsed:         input.GasUsed,
		GasPrice:        null.Float64FromPtr(input.GasPrice),
		TransactionFee:  input.TransactionFee,
		Status:          input.Status,
		TransactionType: input.TransactionType,
		FunctionName:    optString(input.FunctionName),
		FunctionParams:  params,
		ErrorMessage:    optString(input.ErrorMessage),
		Region:          optString(input.Region),
		UserID:          optString(input.UserID),
		RetryCount:      input.RetryCount,
		Priority:        optString(input.Priority),
	}
	if input.CreatedAt != nil {
		tx.CreatedAt = *input.CreatedAt
		tx.UpdatedAt = *input.CreatedAt
	} else {
		now := time.Now()
		tx.CreatedAt = now
		tx.UpdatedAt = now
	}

	if err := tx.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.transactionRepo.Create(c.Request.Context(), tx); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, tx)
}

// GetTransaction returns one transaction by id
// GET /api/v1/transactions/:id
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid transaction id"))
		return
	}

	tx, err := h.transactionRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, tx)
}

// ListTransactions lists transactions with optional filters
// GET /api/v1/transactions?merchantId=&chainId=&status=&page=&limit=
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	var filter repositories.TransactionFilter

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
		status := entities.TransactionStatus(raw)
		switch status {
		case entities.TransactionStatusSuccess, entities.TransactionStatusFailed, entities.TransactionStatusPending:
		default:
			response.Error(c, domainerrors.BadRequest("invalid status"))
			return
		}
		filter.Status = &status
	}

	pagination := paginationFromQuery(c)
	txs, total, err := h.transactionRepo.List(c.Request.Context(), filter, pagination)
	if err != nil {
		response.Error(c, err)
		return
	}
	if txs == nil {
		txs = []*entities.Transaction{}
	}

	response.Success(c, http.StatusOK, gin.H{
		"transactions": txs,
		"pagination":   utils.CalculateMeta(total, pagination.Page, pagination.Limit),
	})
}
