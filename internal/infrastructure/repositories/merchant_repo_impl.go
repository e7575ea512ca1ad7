package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"gaswatch.backend/internal/domain/entities"
	domainerrors "gaswatch.backend/internal/domain/errors"
	"gaswatch.backend/internal/domain/repositories"
	"gaswatch.backend/internal/infrastructure/models"
	"gaswatch.backend/pkg/utils"
)

// merchantRepo implements repositories.MerchantRepository
type merchantRepo struct {
	db *gorm.DB
}

// NewMerchantRepository creates a new merchant repository
func NewMerchantRepository(db *gorm.DB) repositories.MerchantRepository {
	return &merchantRepo{db: db}
}

// Create creates a new merchant
func (r *merchantRepo) Create(ctx context.Context, merchant *entities.Merchant) error {
	m := r.toModel(merchant)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	merchant.CreatedAt = m.CreatedAt
	merchant.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a merchant by ID
func (r *merchantRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Merchant, error) {
	var m models.Merchant
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetBySlug gets a merchant by its unique slug
func (r *merchantRepo) GetBySlug(ctx context.Context, slug string) (*entities.Merchant, error) {
	var m models.Merchant
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Update updates a merchant's mutable fields
func (r *merchantRepo) Update(ctx context.Context, merchant *entities.Merchant) error {
	updates := map[string]interface{}{
		"name":        merchant.Name,
		"slug":        merchant.Slug,
		"description": merchant.Description,
		"status":      string(merchant.Status),
		"plan":        string(merchant.Plan),
		"tier":        string(merchant.Tier),
		"website":     merchant.Website.String,
		"email":       merchant.Email.String,
		"country":     merchant.Country.String,
		"is_verified": merchant.IsVerified,
		"category":    merchant.Category.String,
		"metadata":    jsonColumn(merchant.Metadata, "{}"),
	}

	result := r.db.WithContext(ctx).Model(&models.Merchant{}).Where("id = ?", merchant.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdateStatus mutates a merchant's status (admin action)
func (r *merchantRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.MerchantStatus) error {
	result := r.db.WithContext(ctx).Model(&models.Merchant{}).Where("id = ?", id).Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists merchants ordered by name
func (r *merchantRepo) List(ctx context.Context, pagination utils.PaginationParams) ([]*entities.Merchant, int64, error) {
	var ms []models.Merchant
	var totalCount int64

	query := r.db.WithContext(ctx).Model(&models.Merchant{})
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("name")
	if pagination.Limit > 0 {
		query = query.Limit(pagination.Limit).Offset(pagination.CalculateOffset())
	}

	if err := query.Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	var merchants []*entities.Merchant
	for _, m := range ms {
		model := m
		merchants = append(merchants, r.toEntity(&model))
	}
	return merchants, totalCount, nil
}

// GetMerchantAnalytics ranks merchants by transaction volume within
// [startDate, endDate]
func (r *merchantRepo) GetMerchantAnalytics(ctx context.Context, startDate, endDate time.Time) ([]entities.MerchantActivityMetrics, error) {
	var rows []struct {
		MerchantID       uuid.UUID
		MerchantName     string
		Plan             string
		Status           string
		TransactionCount int64
		TotalGasUsed     float64
		TotalFees        float64
		AvgGasUsed       float64
	}

	err := r.db.WithContext(ctx).Model(&models.Merchant{}).
		Select("merchants.id AS merchant_id, merchants.name AS merchant_name, merchants.plan, merchants.status, "+
			"COUNT(transactions.id) AS transaction_count, SUM(transactions.gas_used) AS total_gas_used, "+
			"SUM(transactions.transaction_fee) AS total_fees, AVG(transactions.gas_used) AS avg_gas_used").
		Joins("JOIN transactions ON transactions.merchant_id = merchants.id").
		Where("transactions.created_at BETWEEN ? AND ?", startDate, endDate).
		Group("merchants.id, merchants.name, merchants.plan, merchants.status").
		Order("transaction_count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	metrics := make([]entities.MerchantActivityMetrics, 0, len(rows))
	for _, row := range rows {
		metrics = append(metrics, entities.MerchantActivityMetrics{
			MerchantID:       row.MerchantID,
			MerchantName:     row.MerchantName,
			Plan:             entities.MerchantPlan(row.Plan),
			Status:           entities.MerchantStatus(row.Status),
			TransactionCount: row.TransactionCount,
			TotalGasUsed:     row.TotalGasUsed,
			TotalFees:        row.TotalFees,
			AvgGasUsed:       row.AvgGasUsed,
		})
	}
	return metrics, nil
}

// GetActiveMerchants returns active merchants seen within the last N days,
// most recently active first
func (r *merchantRepo) GetActiveMerchants(ctx context.Context, days int) ([]*entities.Merchant, error) {
	cutoff := time.Now().AddDate(0, 0, -days)

	var ms []models.Merchant
	err := r.db.WithContext(ctx).
		Where("status = ?", string(entities.MerchantStatusActive)).
		Where("last_active_at >= ?", cutoff).
		Order("last_active_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	var merchants []*entities.Merchant
	for _, m := range ms {
		model := m
		merchants = append(merchants, r.toEntity(&model))
	}
	return merchants, nil
}

// GetGrowthStats summarizes merchant onboarding for the window. Totals count
// merchants created on or before the window end; new merchants are those
// created within [startDate, endDate].
func (r *merchantRepo) GetGrowthStats(ctx context.Context, startDate, endDate time.Time) (*entities.MerchantGrowthStats, error) {
	var totalMerchants int64
	if err := r.db.WithContext(ctx).Model(&models.Merchant{}).
		Where("created_at <= ?", endDate).
		Count(&totalMerchants).Error; err != nil {
		return nil, err
	}

	var newMerchants int64
	if err := r.db.WithContext(ctx).Model(&models.Merchant{}).
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Count(&newMerchants).Error; err != nil {
		return nil, err
	}

	var activeMerchants int64
	if err := r.db.WithContext(ctx).Model(&models.Merchant{}).
		Where("status = ?", string(entities.MerchantStatusActive)).
		Count(&activeMerchants).Error; err != nil {
		return nil, err
	}

	stats := &entities.MerchantGrowthStats{
		TotalMerchants:  totalMerchants,
		NewMerchants:    newMerchants,
		ActiveMerchants: activeMerchants,
	}
	if totalMerchants > 0 {
		stats.GrowthRate = float64(newMerchants) / float64(totalMerchants) * 100
	}
	return stats, nil
}

// toModel converts a domain entity to a GORM model
func (r *merchantRepo) toModel(e *entities.Merchant) *models.Merchant {
	return &models.Merchant{
		ID:           e.ID,
		Name:         e.Name,
		Slug:         e.Slug,
		Description:  e.Description,
		Status:       string(e.Status),
		Plan:         string(e.Plan),
		Tier:         string(e.Tier),
		Website:      e.Website.String,
		Email:        e.Email.String,
		Country:      e.Country.String,
		LastActiveAt: e.LastActiveAt.Ptr(),
		IsVerified:   e.IsVerified,
		Category:     e.Category.String,
		Metadata:     jsonColumn(e.Metadata, "{}"),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

// toEntity converts a GORM model to a domain entity
func (r *merchantRepo) toEntity(m *models.Merchant) *entities.Merchant {
	return &entities.Merchant{
		ID:           m.ID,
		Name:         m.Name,
		Slug:         m.Slug,
		Description:  m.Description,
		Status:       entities.MerchantStatus(m.Status),
		Plan:         entities.MerchantPlan(m.Plan),
		Tier:         entities.MerchantTier(m.Tier),
		Website:      stringColumn(m.Website),
		Email:        stringColumn(m.Email),
		Country:      stringColumn(m.Country),
		LastActiveAt: null.TimeFromPtr(m.LastActiveAt),
		IsVerified:   m.IsVerified,
		Category:     stringColumn(m.Category),
		Metadata:     jsonValue(m.Metadata, "{}"),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
