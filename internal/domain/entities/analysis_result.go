package entities

import (
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	domainerrors "gaswatch.backend/internal/domain/errors"
)

// AnalysisLanguage represents the source language of an analyzed contract
type AnalysisLanguage string

const (
	AnalysisLanguageSolidity AnalysisLanguage = "solidity"
	AnalysisLanguageRust     AnalysisLanguage = "rust"
	AnalysisLanguageVyper    AnalysisLanguage = "vyper"
)

// AnalysisStatus represents the outcome of a static-analysis run
type AnalysisStatus string

const (
	AnalysisStatusCompleted AnalysisStatus = "completed"
	AnalysisStatusFailed    AnalysisStatus = "failed"
	AnalysisStatusPending   AnalysisStatus = "pending"
)

// Finding represents one rule violation reported by the analyzer
type Finding struct {
	RuleName    string `json:"ruleName,omitempty"`
	Severity    string `json:"severity,omitempty"`
	Description string `json:"description,omitempty"`
	Line        int    `json:"line,omitempty"`
}

// AnalysisResult represents the outcome of a static-analysis run on a
// contract's source. Immutable once status is terminal.
type AnalysisResult struct {
	ID                   uuid.UUID        `json:"id"`
	MerchantID           uuid.UUID        `json:"merchantId"`
	ChainID              string           `json:"chainId"`
	ContractAddress      string           `json:"contractAddress"`
	SourceCode           string           `json:"sourceCode"`
	Language             AnalysisLanguage `json:"language"`
	Status               AnalysisStatus   `json:"status"`
	Findings             []Finding        `json:"findings"`
	ViolationCount       int              `json:"violationCount"`
	EstimatedGasSavings  null.Float64     `json:"estimatedGasSavings,omitempty"`
	EstimatedCostSavings null.Float64     `json:"estimatedCostSavings,omitempty"`
	AnalyzerVersion      null.String      `json:"analyzerVersion,omitempty"`
	Priority             null.String      `json:"priority,omitempty"`
	ErrorMessage         null.String      `json:"errorMessage,omitempty"`
	Metadata             null.JSON        `json:"metadata,omitempty"`
	CreatedAt            time.Time        `json:"createdAt"`
	UpdatedAt            time.Time        `json:"updatedAt"`
}

// Validate enforces boundary invariants before an analysis result is persisted
func (a *AnalysisResult) Validate() error {
	if a.MerchantID == uuid.Nil || a.ChainID == "" {
		return domainerrors.ErrInvalidInput
	}
	switch a.Language {
	case AnalysisLanguageSolidity, AnalysisLanguageRust, AnalysisLanguageVyper:
	default:
		return domainerrors.ErrInvalidInput
	}
	switch a.Status {
	case AnalysisStatusCompleted, AnalysisStatusFailed, AnalysisStatusPending:
	default:
		return domainerrors.ErrInvalidInput
	}
	// violationCount must mirror the findings sequence
	if a.ViolationCount != len(a.Findings) {
		return domainerrors.ErrInvalidInput
	}
	// errorMessage is set iff the run failed
	if a.ErrorMessage.Valid != (a.Status == AnalysisStatusFailed) {
		return domainerrors.ErrInvalidInput
	}
	if strings.HasPrefix(a.ContractAddress, "0x") && !common.IsHexAddress(a.ContractAddress) {
		return domainerrors.ErrInvalidInput
	}
	return nil
}

// CreateAnalysisResultInput represents the payload recorded when an external
// analyzer completes a run
type CreateAnalysisResultInput struct {
	MerchantID           string                 `json:"merchantId" binding:"required,uuid"`
	ChainID              string                 `json:"chainId" binding:"required"`
	ContractAddress      string                 `json:"contractAddress" binding:"required"`
	SourceCode           string                 `json:"sourceCode"`
	Language             AnalysisLanguage       `json:"language" binding:"required"`
	Status               AnalysisStatus         `json:"status" binding:"required"`
	Findings             []Finding              `json:"findings"`
	EstimatedGasSavings  *float64               `json:"estimatedGasSavings,omitempty"`
	EstimatedCostSavings *float64               `json:"estimatedCostSavings,omitempty"`
	AnalyzerVersion      string                 `json:"analyzerVersion,omitempty"`
	Priority             string                 `json:"priority,omitempty"`
	ErrorMessage         string                 `json:"errorMessage,omitempty"`
	Metadata             map[string]interface{} `json:"metadata,omitempty"`
}
