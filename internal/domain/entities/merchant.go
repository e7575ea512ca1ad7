package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	domainerrors "gaswatch.backend/internal/domain/errors"
)

// MerchantStatus represents merchant lifecycle status
type MerchantStatus string

const (
	MerchantStatusActive    MerchantStatus = "active"
	MerchantStatusInactive  MerchantStatus = "inactive"
	MerchantStatusSuspended MerchantStatus = "suspended"
)

// MerchantPlan represents the billing plan
type MerchantPlan string

const (
	MerchantPlanFree       MerchantPlan = "free"
	MerchantPlanPro        MerchantPlan = "pro"
	MerchantPlanEnterprise MerchantPlan = "enterprise"
)

// MerchantTier represents the service tier
type MerchantTier string

const (
	MerchantTierBasic    MerchantTier = "basic"
	MerchantTierStandard MerchantTier = "standard"
	MerchantTierPremium  MerchantTier = "premium"
)

// Merchant represents a tenant of the platform
type Merchant struct {
	ID           uuid.UUID      `json:"id"`
	Name         string         `json:"name"`
	Slug         string         `json:"slug"`
	Description  string         `json:"description,omitempty"`
	Status       MerchantStatus `json:"status"`
	Plan         MerchantPlan   `json:"plan"`
	Tier         MerchantTier   `json:"tier"`
	Website      null.String    `json:"website,omitempty"`
	Email        null.String    `json:"email,omitempty"`
	Country      null.String    `json:"country,omitempty"`
	LastActiveAt null.Time      `json:"lastActiveAt,omitempty"`
	IsVerified   bool           `json:"isVerified"`
	Category     null.String    `json:"category,omitempty"`
	Metadata     null.JSON      `json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// Validate enforces boundary invariants before a merchant is persisted
func (m *Merchant) Validate() error {
	if m.Name == "" || m.Slug == "" {
		return domainerrors.ErrInvalidInput
	}
	switch m.Status {
	case MerchantStatusActive, MerchantStatusInactive, MerchantStatusSuspended:
	default:
		return domainerrors.ErrInvalidInput
	}
	switch m.Plan {
	case MerchantPlanFree, MerchantPlanPro, MerchantPlanEnterprise:
	default:
		return domainerrors.ErrInvalidInput
	}
	switch m.Tier {
	case MerchantTierBasic, MerchantTierStandard, MerchantTierPremium:
	default:
		return domainerrors.ErrInvalidInput
	}
	return nil
}

// CreateMerchantInput represents the onboarding payload for a merchant
type CreateMerchantInput struct {
	Name        string                 `json:"name" binding:"required,min=2,max=255"`
	Slug        string                 `json:"slug" binding:"required,min=2,max=255"`
	Description string                 `json:"description,omitempty"`
	Status      MerchantStatus         `json:"status,omitempty"`
	Plan        MerchantPlan           `json:"plan,omitempty"`
	Tier        MerchantTier           `json:"tier,omitempty"`
	Website     string                 `json:"website,omitempty"`
	Email       string                 `json:"email,omitempty" binding:"omitempty,email"`
	Country     string                 `json:"country,omitempty"`
	Category    string                 `json:"category,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// UpdateMerchantStatusInput represents an admin status mutation
type UpdateMerchantStatusInput struct {
	Status MerchantStatus `json:"status" binding:"required"`
}
