package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gaswatch.backend/internal/domain/entities"
	"gaswatch.backend/internal/domain/repositories"
	"gaswatch.backend/pkg/utils"
)

// Mock TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *entities.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) List(ctx context.Context, filter repositories.TransactionFilter, pagination utils.PaginationParams) ([]*entities.Transaction, int64, error) {
	args := m.Called(ctx, filter, pagination)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockTransactionRepository) GetGasUsageByMerchant(ctx context.Context, merchantID uuid.UUID, startDate, endDate time.Time) ([]entities.GasUsageTrendPoint, error) {
	args := m.Called(ctx, merchantID, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.GasUsageTrendPoint), args.Error(1)
}

func (m *MockTransactionRepository) GetSuccessMetrics(ctx context.Context, merchantID *uuid.UUID, chainID *string, startDate, endDate *time.Time) (*entities.TransactionSuccessMetrics, error) {
	args := m.Called(ctx, merchantID, chainID, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TransactionSuccessMetrics), args.Error(1)
}

func (m *MockTransactionRepository) GetHighGasTransactions(ctx context.Context, limit int) ([]*entities.Transaction, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) GetVolumeByChain(ctx context.Context, startDate, endDate time.Time) ([]entities.ChainVolumeMetrics, error) {
	args := m.Called(ctx, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.ChainVolumeMetrics), args.Error(1)
}

func (m *MockTransactionRepository) GetFailedTransactionAnalysis(ctx context.Context, startDate, endDate time.Time) ([]entities.FailedTransactionGroup, error) {
	args := m.Called(ctx, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.FailedTransactionGroup), args.Error(1)
}

// Mock MerchantRepository
type MockMerchantRepository struct {
	mock.Mock
}

func (m *MockMerchantRepository) Create(ctx context.Context, merchant *entities.Merchant) error {
	args := m.Called(ctx, merchant)
	return args.Error(0)
}

func (m *MockMerchantRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Merchant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Merchant), args.Error(1)
}

func (m *MockMerchantRepository) GetBySlug(ctx context.Context, slug string) (*entities.Merchant, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Merchant), args.Error(1)
}

func (m *MockMerchantRepository) Update(ctx context.Context, merchant *entities.Merchant) error {
	args := m.Called(ctx, merchant)
	return args.Error(0)
}

func (m *MockMerchantRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.MerchantStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockMerchantRepository) List(ctx context.Context, pagination utils.PaginationParams) ([]*entities.Merchant, int64, error) {
	args := m.Called(ctx, pagination)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Merchant), args.Get(1).(int64), args.Error(2)
}

func (m *MockMerchantRepository) GetMerchantAnalytics(ctx context.Context, startDate, endDate time.Time) ([]entities.MerchantActivityMetrics, error) {
	args := m.Called(ctx, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.MerchantActivityMetrics), args.Error(1)
}

func (m *MockMerchantRepository) GetActiveMerchants(ctx context.Context, days int) ([]*entities.Merchant, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Merchant), args.Error(1)
}

func (m *MockMerchantRepository) GetGrowthStats(ctx context.Context, startDate, endDate time.Time) (*entities.MerchantGrowthStats, error) {
	args := m.Called(ctx, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.MerchantGrowthStats), args.Error(1)
}

// Mock ChainRepository
type MockChainRepository struct {
	mock.Mock
}

func (m *MockChainRepository) Create(ctx context.Context, chain *entities.Chain) error {
	args := m.Called(ctx, chain)
	return args.Error(0)
}

func (m *MockChainRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Chain, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Chain), args.Error(1)
}

func (m *MockChainRepository) GetByChainID(ctx context.Context, chainID string) (*entities.Chain, error) {
	args := m.Called(ctx, chainID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Chain), args.Error(1)
}

func (m *MockChainRepository) Update(ctx context.Context, chain *entities.Chain) error {
	args := m.Called(ctx, chain)
	return args.Error(0)
}

func (m *MockChainRepository) List(ctx context.Context) ([]*entities.Chain, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Chain), args.Error(1)
}

func (m *MockChainRepository) GetReliabilityMetrics(ctx context.Context, startDate, endDate time.Time) ([]entities.ChainReliabilityMetrics, error) {
	args := m.Called(ctx, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.ChainReliabilityMetrics), args.Error(1)
}

func (m *MockChainRepository) GetGasVolatilityMetrics(ctx context.Context, days int) ([]entities.ChainVolatilityMetrics, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.ChainVolatilityMetrics), args.Error(1)
}

func (m *MockChainRepository) GetPerformanceRanking(ctx context.Context) ([]entities.ChainPerformanceRank, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.ChainPerformanceRank), args.Error(1)
}

func (m *MockChainRepository) UpdateChainMetrics(ctx context.Context, chainID string) error {
	args := m.Called(ctx, chainID)
	return args.Error(0)
}

// Mock AnalysisResultRepository
type MockAnalysisResultRepository struct {
	mock.Mock
}

func (m *MockAnalysisResultRepository) Create(ctx context.Context, result *entities.AnalysisResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockAnalysisResultRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.AnalysisResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AnalysisResult), args.Error(1)
}

func (m *MockAnalysisResultRepository) List(ctx context.Context, filter repositories.AnalysisResultFilter, pagination utils.PaginationParams) ([]*entities.AnalysisResult, int64, error) {
	args := m.Called(ctx, filter, pagination)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.AnalysisResult), args.Get(1).(int64), args.Error(2)
}

func (m *MockAnalysisResultRepository) GetAnalysisSummary(ctx context.Context, merchantID *uuid.UUID, chainID *string, startDate, endDate *time.Time) (*entities.AnalysisSummary, error) {
	args := m.Called(ctx, merchantID, chainID, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AnalysisSummary), args.Error(1)
}

func (m *MockAnalysisResultRepository) GetTopRuleViolations(ctx context.Context, limit int, startDate, endDate *time.Time) ([]entities.RuleViolationGroup, error) {
	args := m.Called(ctx, limit, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.RuleViolationGroup), args.Error(1)
}

func (m *MockAnalysisResultRepository) GetLanguageDistribution(ctx context.Context, startDate, endDate *time.Time) ([]entities.LanguageDistribution, error) {
	args := m.Called(ctx, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.LanguageDistribution), args.Error(1)
}

func (m *MockAnalysisResultRepository) GetAnalysisTrend(ctx context.Context, days int) ([]entities.AnalysisTrendPoint, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.AnalysisTrendPoint), args.Error(1)
}
