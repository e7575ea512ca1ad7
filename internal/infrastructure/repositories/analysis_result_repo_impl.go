package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
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

// analysisResultRepo implements repositories.AnalysisResultRepository
type analysisResultRepo struct {
	db *gorm.DB
}

// NewAnalysisResultRepository creates a new analysis result repository
func NewAnalysisResultRepository(db *gorm.DB) repositories.AnalysisResultRepository {
	return &analysisResultRepo{db: db}
}

// Create records a completed analyzer run
func (r *analysisResultRepo) Create(ctx context.Context, result *entities.AnalysisResult) error {
	m, err := r.toModel(result)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	result.CreatedAt = m.CreatedAt
	result.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets an analysis result by ID
func (r *analysisResultRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.AnalysisResult, error) {
	var m models.AnalysisResult
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m)
}

// List lists analysis results matching the filter, newest first
func (r *analysisResultRepo) List(ctx context.Context, filter repositories.AnalysisResultFilter, pagination utils.PaginationParams) ([]*entities.AnalysisResult, int64, error) {
	var ms []models.AnalysisResult
	var totalCount int64

	query := r.db.WithContext(ctx).Model(&models.AnalysisResult{})
	if filter.MerchantID != nil {
		query = query.Where("merchant_id = ?", *filter.MerchantID)
	}
	if filter.ChainID != nil {
		query = query.Where("chain_id = ?", *filter.ChainID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}

	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if pagination.Limit > 0 {
		query = query.Limit(pagination.Limit).Offset(pagination.CalculateOffset())
	}

	if err := query.Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	var results []*entities.AnalysisResult
	for _, m := range ms {
		model := m
		e, err := r.toEntity(&model)
		if err != nil {
			return nil, 0, err
		}
		results = append(results, e)
	}
	return results, totalCount, nil
}

// GetAnalysisSummary aggregates analyzer runs of every status for the
// filtered set. Averages are null when nothing matches.
func (r *analysisResultRepo) GetAnalysisSummary(ctx context.Context, merchantID *uuid.UUID, chainID *string, startDate, endDate *time.Time) (*entities.AnalysisSummary, error) {
	var row struct {
		TotalAnalyses   int64
		AvgViolations   *float64
		TotalViolations *int64
		AvgGasSavings   *float64
		TotalGasSavings *float64
	}

	query := r.db.WithContext(ctx).Model(&models.AnalysisResult{}).
		Select("COUNT(id) AS total_analyses, AVG(violation_count) AS avg_violations, " +
			"SUM(violation_count) AS total_violations, AVG(estimated_gas_savings) AS avg_gas_savings, " +
			"SUM(estimated_gas_savings) AS total_gas_savings")

	if merchantID != nil {
		query = query.Where("merchant_id = ?", *merchantID)
	}
	if chainID != nil {
		query = query.Where("chain_id = ?", *chainID)
	}
	if startDate != nil && endDate != nil {
		query = query.Where("created_at BETWEEN ? AND ?", *startDate, *endDate)
	}

	if err := query.Scan(&row).Error; err != nil {
		return nil, err
	}

	summary := &entities.AnalysisSummary{
		TotalAnalyses: row.TotalAnalyses,
		AvgViolations: null.Float64FromPtr(row.AvgViolations),
		AvgGasSavings: null.Float64FromPtr(row.AvgGasSavings),
	}
	if row.TotalViolations != nil {
		summary.TotalViolations = *row.TotalViolations
	}
	if row.TotalGasSavings != nil {
		summary.TotalGasSavings = *row.TotalGasSavings
	}
	return summary, nil
}

// GetTopRuleViolations unnests findings across all analyzer runs and counts
// occurrences per rule, most violated first. Findings without a rule name are
// skipped. Each occurrence contributes its run's estimated gas savings.
func (r *analysisResultRepo) GetTopRuleViolations(ctx context.Context, limit int, startDate, endDate *time.Time) ([]entities.RuleViolationGroup, error) {
	if limit <= 0 {
		limit = 10
	}

	var rows []struct {
		Findings            string
		EstimatedGasSavings *float64
	}

	query := r.db.WithContext(ctx).Model(&models.AnalysisResult{}).
		Select("findings, estimated_gas_savings")
	if startDate != nil && endDate != nil {
		query = query.Where("created_at BETWEEN ? AND ?", *startDate, *endDate)
	}

	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	// The findings arrays are unnested here rather than in SQL so the same
	// query runs on both postgres and the sqlite test driver.
	byRule := make(map[string]*entities.RuleViolationGroup)
	for _, row := range rows {
		findings, err := decodeFindings(row.Findings)
		if err != nil {
			return nil, err
		}
		for _, f := range findings {
			if f.RuleName == "" {
				continue
			}
			group, ok := byRule[f.RuleName]
			if !ok {
				group = &entities.RuleViolationGroup{RuleName: f.RuleName}
				byRule[f.RuleName] = group
			}
			group.ViolationCount++
			if row.EstimatedGasSavings != nil {
				group.TotalGasSavings += *row.EstimatedGasSavings
			}
		}
	}

	groups := make([]entities.RuleViolationGroup, 0, len(byRule))
	for _, g := range byRule {
		groups = append(groups, *g)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].ViolationCount != groups[j].ViolationCount {
			return groups[i].ViolationCount > groups[j].ViolationCount
		}
		return groups[i].RuleName < groups[j].RuleName
	})
	if len(groups) > limit {
		groups = groups[:limit]
	}
	return groups, nil
}

// GetLanguageDistribution breaks analyzer runs down by source language,
// most analyzed first
func (r *analysisResultRepo) GetLanguageDistribution(ctx context.Context, startDate, endDate *time.Time) ([]entities.LanguageDistribution, error) {
	var rows []struct {
		Language        string
		AnalysisCount   int64
		AvgViolations   *float64
		TotalGasSavings *float64
	}

	query := r.db.WithContext(ctx).Model(&models.AnalysisResult{}).
		Select("language, COUNT(id) AS analysis_count, AVG(violation_count) AS avg_violations, "+
			"SUM(estimated_gas_savings) AS total_gas_savings").
		Group("language").
		Order("analysis_count DESC")
	if startDate != nil && endDate != nil {
		query = query.Where("created_at BETWEEN ? AND ?", *startDate, *endDate)
	}

	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	dist := make([]entities.LanguageDistribution, 0, len(rows))
	for _, row := range rows {
		d := entities.LanguageDistribution{
			Language:      entities.AnalysisLanguage(row.Language),
			AnalysisCount: row.AnalysisCount,
			AvgViolations: null.Float64FromPtr(row.AvgViolations),
		}
		if row.TotalGasSavings != nil {
			d.TotalGasSavings = *row.TotalGasSavings
		}
		dist = append(dist, d)
	}
	return dist, nil
}

// GetAnalysisTrend returns per-day analyzer activity over the last N days,
// oldest day first
func (r *analysisResultRepo) GetAnalysisTrend(ctx context.Context, days int) ([]entities.AnalysisTrendPoint, error) {
	cutoff := time.Now().AddDate(0, 0, -days)

	var rows []struct {
		Date            string
		AnalysisCount   int64
		AvgViolations   *float64
		DailyGasSavings *float64
	}

	err := r.db.WithContext(ctx).Model(&models.AnalysisResult{}).
		Select("CAST(DATE(created_at) AS TEXT) AS date, COUNT(id) AS analysis_count, "+
			"AVG(violation_count) AS avg_violations, SUM(estimated_gas_savings) AS daily_gas_savings").
		Where("created_at >= ?", cutoff).
		Group("DATE(created_at)").
		Order("date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	points := make([]entities.AnalysisTrendPoint, 0, len(rows))
	for _, row := range rows {
		p := entities.AnalysisTrendPoint{
			Date:          row.Date,
			AnalysisCount: row.AnalysisCount,
			AvgViolations: null.Float64FromPtr(row.AvgViolations),
		}
		if row.DailyGasSavings != nil {
			p.DailyGasSavings = *row.DailyGasSavings
		}
		points = append(points, p)
	}
	return points, nil
}

// decodeFindings parses a findings column. An empty column means no findings.
func decodeFindings(s string) ([]entities.Finding, error) {
	if s == "" || s == "[]" {
		return nil, nil
	}
	var findings []entities.Finding
	if err := json.Unmarshal([]byte(s), &findings); err != nil {
		return nil, err
	}
	return findings, nil
}

// toModel converts a domain entity to a GORM model
func (r *analysisResultRepo) toModel(e *entities.AnalysisResult) (*models.AnalysisResult, error) {
	findings := "[]"
	if len(e.Findings) > 0 {
		encoded, err := json.Marshal(e.Findings)
		if err != nil {
			return nil, err
		}
		findings = string(encoded)
	}

	return &models.AnalysisResult{
		ID:                   e.ID,
		MerchantID:           e.MerchantID,
		ChainID:              e.ChainID,
		ContractAddress:      e.ContractAddress,
		SourceCode:           e.SourceCode,
		Language:             string(e.Language),
		Status:               string(e.Status),
		Findings:             findings,
		ViolationCount:       e.ViolationCount,
		EstimatedGasSavings:  e.EstimatedGasSavings.Ptr(),
		EstimatedCostSavings: e.EstimatedCostSavings.Ptr(),
		AnalyzerVersion:      e.AnalyzerVersion.String,
		Priority:             e.Priority.String,
		ErrorMessage:         e.ErrorMessage.Ptr(),
		Metadata:             jsonColumn(e.Metadata, "{}"),
		CreatedAt:            e.CreatedAt,
		UpdatedAt:            e.UpdatedAt,
	}, nil
}

// toEntity converts a GORM model to a domain entity
func (r *analysisResultRepo) toEntity(m *models.AnalysisResult) (*entities.AnalysisResult, error) {
	findings, err := decodeFindings(m.Findings)
	if err != nil {
		return nil, err
	}

	return &entities.AnalysisResult{
		ID:                   m.ID,
		MerchantID:           m.MerchantID,
		ChainID:              m.ChainID,
		ContractAddress:      m.ContractAddress,
		SourceCode:           m.SourceCode,
		Language:             entities.AnalysisLanguage(m.Language),
		Status:               entities.AnalysisStatus(m.Status),
		Findings:             findings,
		ViolationCount:       m.ViolationCount,
		EstimatedGasSavings:  null.Float64FromPtr(m.EstimatedGasSavings),
		EstimatedCostSavings: null.Float64FromPtr(m.EstimatedCostSavings),
		AnalyzerVersion:      stringColumn(m.AnalyzerVersion),
		Priority:             stringColumn(m.Priority),
		ErrorMessage:         null.StringFromPtr(m.ErrorMessage),
		Metadata:             jsonValue(m.Metadata, "{}"),
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}, nil
}
