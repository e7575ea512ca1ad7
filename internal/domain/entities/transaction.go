package entities

import (
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	domainerrors "gaswatch.backend/internal/domain/errors"
)

// TransactionStatus represents the terminal outcome of a transaction
type TransactionStatus string

const (
	TransactionStatusSuccess TransactionStatus = "success"
	TransactionStatusFailed  TransactionStatus = "failed"
	TransactionStatusPending TransactionStatus = "pending"
)

// TransactionType represents the kind of on-chain interaction
type TransactionType string

const (
	TransactionTypeDeployment   TransactionType = "deployment"
	TransactionTypeFunctionCall TransactionType = "function_call"
	TransactionTypeTransfer     TransactionType = "transfer"
)

// TransactionPriority represents ingestion priority
type TransactionPriority string

const (
	TransactionPriorityLow      TransactionPriority = "low"
	TransactionPriorityMedium   TransactionPriority = "medium"
	TransactionPriorityHigh     TransactionPriority = "high"
	TransactionPriorityCritical TransactionPriority = "critical"
)

// Transaction represents one recorded blockchain transaction event.
// A row is an immutable fact once recorded; updates only touch metadata.
type Transaction struct {
	ID              uuid.UUID         `json:"id"`
	TransactionHash string            `json:"transactionHash"`
	MerchantID      uuid.UUID         `json:"merchantId"`
	ChainID         string            `json:"chainId"`
	ContractAddress string            `json:"contractAddress"`
	GasUsed         float64           `json:"gasUsed"`
	GasPrice        null.Float64      `json:"gasPrice,omitempty"`
	TransactionFee  float64           `json:"transactionFee"`
	Status          TransactionStatus `json:"status"`
	TransactionType TransactionType   `json:"transactionType"`
	FunctionName    null.String       `json:"functionName,omitempty"`
	FunctionParams  null.JSON         `json:"functionParams,omitempty"`
	ErrorMessage    null.String       `json:"errorMessage,omitempty"`
	Region          null.String       `json:"region,omitempty"`
	UserID          null.String       `json:"userId,omitempty"`
	RetryCount      int               `json:"retryCount"`
	Priority        null.String       `json:"priority,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// Validate enforces boundary invariants before a transaction is persisted
func (t *Transaction) Validate() error {
	if t.TransactionHash == "" || t.ChainID == "" || t.MerchantID == uuid.Nil {
		return domainerrors.ErrInvalidInput
	}
	if t.GasUsed < 0 || t.TransactionFee < 0 {
		return domainerrors.ErrInvalidInput
	}
	switch t.Status {
	case TransactionStatusSuccess, TransactionStatusFailed, TransactionStatusPending:
	default:
		return domainerrors.ErrInvalidInput
	}
	switch t.TransactionType {
	case TransactionTypeDeployment, TransactionTypeFunctionCall, TransactionTypeTransfer:
	default:
		return domainerrors.ErrInvalidInput
	}
	if t.Priority.Valid {
		switch TransactionPriority(t.Priority.String) {
		case TransactionPriorityLow, TransactionPriorityMedium, TransactionPriorityHigh, TransactionPriorityCritical:
		default:
			return domainerrors.ErrInvalidInput
		}
	}
	// Hex-prefixed contract addresses must be well-formed EVM addresses.
	// Non-EVM chains (soroban, cosmos) use their own formats and are not checked here.
	if strings.HasPrefix(t.ContractAddress, "0x") && !common.IsHexAddress(t.ContractAddress) {
		return domainerrors.ErrInvalidInput
	}
	return nil
}

// CreateTransactionInput represents the ingestion payload for a transaction
type CreateTransactionInput struct {
	TransactionHash string                 `json:"transactionHash" binding:"required"`
	MerchantID      string                 `json:"merchantId" binding:"required,uuid"`
	ChainID         string                 `json:"chainId" binding:"required"`
	ContractAddress string                 `json:"contractAddress" binding:"required"`
	GasUsed         float64                `json:"gasUsed"`
	GasPrice        *float64               `json:"gasPrice,omitempty"`
	TransactionFee  float64                `json:"transactionFee"`
	Status          TransactionStatus      `json:"status" binding:"required"`
	TransactionType TransactionType        `json:"transactionType" binding:"required"`
	FunctionName    string                 `json:"functionName,omitempty"`
	FunctionParams  map[string]interface{} `json:"functionParams,omitempty"`
	ErrorMessage    string                 `json:"errorMessage,omitempty"`
	Region          string                 `json:"region,omitempty"`
	UserID          string                 `json:"userId,omitempty"`
	RetryCount      int                    `json:"retryCount,omitempty"`
	Priority        string                 `json:"priority,omitempty"`
	CreatedAt       *time.Time             `json:"createdAt,omitempty"`
}
