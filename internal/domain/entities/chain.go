package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	domainerrors "gaswatch.backend/internal/domain/errors"
)

// ChainNetwork represents the network environment of a chain
type ChainNetwork string

const (
	ChainNetworkMainnet ChainNetwork = "mainnet"
	ChainNetworkTestnet ChainNetwork = "testnet"
	ChainNetworkDevnet  ChainNetwork = "devnet"
)

// ChainStatus represents the operational status of a chain
type ChainStatus string

const (
	ChainStatusActive      ChainStatus = "active"
	ChainStatusInactive    ChainStatus = "inactive"
	ChainStatusMaintenance ChainStatus = "maintenance"
)

// ChainType represents the execution environment family
type ChainType string

const (
	ChainTypeEVM     ChainType = "evm"
	ChainTypeSoroban ChainType = "soroban"
	ChainTypeCosmos  ChainType = "cosmos"
	ChainTypeOther   ChainType = "other"
)

// Chain represents a blockchain network tracked by the platform.
// AverageGasPrice, GasVolatility, TransactionCount and ReliabilityScore are
// derived from transaction aggregates and never authored directly.
type Chain struct {
	ID               uuid.UUID    `json:"id"`
	Name             string       `json:"name"`
	ChainID          string       `json:"chainId"`
	Network          ChainNetwork `json:"network"`
	Status           ChainStatus  `json:"status"`
	Type             ChainType    `json:"type"`
	AverageGasPrice  null.Float64 `json:"averageGasPrice,omitempty"`
	GasVolatility    null.Float64 `json:"gasVolatility,omitempty"`
	TransactionCount int64        `json:"transactionCount"`
	ReliabilityScore float64      `json:"reliabilityScore"`
	RPCURL           null.String  `json:"rpcUrl,omitempty"`
	Currency         null.String  `json:"currency,omitempty"`
	Config           null.JSON    `json:"config,omitempty"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

// Validate enforces boundary invariants before a chain is persisted
func (c *Chain) Validate() error {
	if c.Name == "" || c.ChainID == "" {
		return domainerrors.ErrInvalidInput
	}
	switch c.Network {
	case ChainNetworkMainnet, ChainNetworkTestnet, ChainNetworkDevnet:
	default:
		return domainerrors.ErrInvalidInput
	}
	switch c.Status {
	case ChainStatusActive, ChainStatusInactive, ChainStatusMaintenance:
	default:
		return domainerrors.ErrInvalidInput
	}
	switch c.Type {
	case ChainTypeEVM, ChainTypeSoroban, ChainTypeCosmos, ChainTypeOther:
	default:
		return domainerrors.ErrInvalidInput
	}
	if c.ReliabilityScore < 0 || c.ReliabilityScore > 100 {
		return domainerrors.ErrInvalidInput
	}
	return nil
}

// CreateChainInput represents the onboarding payload for a chain
type CreateChainInput struct {
	Name     string                 `json:"name" binding:"required"`
	ChainID  string                 `json:"chainId" binding:"required"`
	Network  ChainNetwork           `json:"network,omitempty"`
	Status   ChainStatus            `json:"status,omitempty"`
	Type     ChainType              `json:"type,omitempty"`
	RPCURL   string                 `json:"rpcUrl,omitempty"`
	Currency string                 `json:"currency,omitempty"`
	Config   map[string]interface{} `json:"config,omitempty"`
}
