package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gaswatch.backend/internal/config"
	"gaswatch.backend/internal/domain/entities"
	"gaswatch.backend/internal/domain/repositories"
	"gaswatch.backend/pkg/logger"
)

// topMerchantLimit caps the dashboard merchant ranking
const topMerchantLimit = 10

// topChainLimit caps the dashboard chain reliability list
const topChainLimit = 10

// topRuleViolationLimit caps the analysis rule breakdown
const topRuleViolationLimit = 10

// volatilityLookbackDays fixes the gas volatility window independent of
// the requested time range
const volatilityLookbackDays = 30

// AnalyticsUsecase assembles the composite read-models. Every composite is
// recomputed from the database on each call; sub-queries run concurrently
// and any failure fails the whole composite.
type AnalyticsUsecase struct {
	transactionRepo repositories.TransactionRepository
	merchantRepo    repositories.MerchantRepository
	chainRepo       repositories.ChainRepository
	analysisRepo    repositories.AnalysisResultRepository
	cfg             config.AnalyticsConfig

	// now anchors the time window once per request; replaceable in tests
	now func() time.Time
}

// NewAnalyticsUsecase creates a new analytics usecase
func NewAnalyticsUsecase(
	transactionRepo repositories.TransactionRepository,
	merchantRepo repositories.MerchantRepository,
	chainRepo repositories.ChainRepository,
	analysisRepo repositories.AnalysisResultRepository,
	cfg config.AnalyticsConfig,
) *AnalyticsUsecase {
	return &AnalyticsUsecase{
		transactionRepo: transactionRepo,
		merchantRepo:    merchantRepo,
		chainRepo:       chainRepo,
		analysisRepo:    analysisRepo,
		cfg:             cfg,
		now:             time.Now,
	}
}

// GetDashboardAnalytics builds the top-level dashboard composite
func (u *AnalyticsUsecase) GetDashboardAnalytics(ctx context.Context, timeRange entities.TimeRange) (*entities.DashboardAnalytics, error) {
	end := u.now()
	start := timeRange.StartFrom(end)

	dashboard := &entities.DashboardAnalytics{
		TimeRange: timeRange,
		Period:    entities.Period{StartDate: start, EndDate: end},
		UpdatedAt: end,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		metrics, err := u.transactionRepo.GetSuccessMetrics(gctx, nil, nil, &start, &end)
		if err != nil {
			return err
		}
		dashboard.TransactionMetrics = metrics
		return nil
	})
	g.Go(func() error {
		merchants, err := u.merchantRepo.GetMerchantAnalytics(gctx, start, end)
		if err != nil {
			return err
		}
		if len(merchants) > topMerchantLimit {
			merchants = merchants[:topMerchantLimit]
		}
		dashboard.TopMerchants = merchants
		return nil
	})
	g.Go(func() error {
		chains, err := u.chainRepo.GetReliabilityMetrics(gctx, start, end)
		if err != nil {
			return err
		}
		if len(chains) > topChainLimit {
			chains = chains[:topChainLimit]
		}
		dashboard.ChainMetrics = chains
		return nil
	})
	g.Go(func() error {
		summary, err := u.analysisRepo.GetAnalysisSummary(gctx, nil, nil, &start, &end)
		if err != nil {
			return err
		}
		dashboard.AnalysisSummary = summary
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error(ctx, "dashboard analytics failed", zap.String("timeRange", string(timeRange)), zap.Error(err))
		return nil, err
	}
	return dashboard, nil
}

// GetMerchantAnalytics builds the merchant-scoped composite. The high-gas
// list is platform-wide, matching the dashboard monitoring view.
func (u *AnalyticsUsecase) GetMerchantAnalytics(ctx context.Context, merchantID uuid.UUID, timeRange entities.TimeRange) (*entities.MerchantDetailAnalytics, error) {
	if _, err := u.merchantRepo.GetByID(ctx, merchantID); err != nil {
		return nil, err
	}

	end := u.now()
	start := timeRange.StartFrom(end)

	detail := &entities.MerchantDetailAnalytics{
		MerchantID: merchantID,
		TimeRange:  timeRange,
		Period:     entities.Period{StartDate: start, EndDate: end},
		UpdatedAt:  end,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		trend, err := u.transactionRepo.GetGasUsageByMerchant(gctx, merchantID, start, end)
		if err != nil {
			return err
		}
		detail.GasUsageTrend = trend
		return nil
	})
	g.Go(func() error {
		metrics, err := u.transactionRepo.GetSuccessMetrics(gctx, &merchantID, nil, &start, &end)
		if err != nil {
			return err
		}
		detail.TransactionMetrics = metrics
		return nil
	})
	g.Go(func() error {
		summary, err := u.analysisRepo.GetAnalysisSummary(gctx, &merchantID, nil, &start, &end)
		if err != nil {
			return err
		}
		detail.AnalysisSummary = summary
		return nil
	})
	g.Go(func() error {
		highGas, err := u.transactionRepo.GetHighGasTransactions(gctx, u.cfg.HighGasLimit)
		if err != nil {
			return err
		}
		detail.HighGasTransactions = highGas
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error(ctx, "merchant analytics failed", zap.String("merchantId", merchantID.String()), zap.Error(err))
		return nil, err
	}
	return detail, nil
}

// GetChainAnalytics builds the chain-scoped composite. The underlying
// aggregates cover all chains and are narrowed to the requested one here.
func (u *AnalyticsUsecase) GetChainAnalytics(ctx context.Context, chainID string, timeRange entities.TimeRange) (*entities.ChainDetailAnalytics, error) {
	if _, err := u.chainRepo.GetByChainID(ctx, chainID); err != nil {
		return nil, err
	}

	end := u.now()
	start := timeRange.StartFrom(end)

	detail := &entities.ChainDetailAnalytics{
		ChainID:   chainID,
		TimeRange: timeRange,
		Period:    entities.Period{StartDate: start, EndDate: end},
		UpdatedAt: end,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		volumes, err := u.transactionRepo.GetVolumeByChain(gctx, start, end)
		if err != nil {
			return err
		}
		for i := range volumes {
			if volumes[i].ChainID == chainID {
				detail.TransactionMetrics = &volumes[i]
				break
			}
		}
		return nil
	})
	g.Go(func() error {
		reliability, err := u.chainRepo.GetReliabilityMetrics(gctx, start, end)
		if err != nil {
			return err
		}
		for i := range reliability {
			if reliability[i].ChainID == chainID {
				detail.ReliabilityMetrics = &reliability[i]
				break
			}
		}
		return nil
	})
	g.Go(func() error {
		volatility, err := u.chainRepo.GetGasVolatilityMetrics(gctx, volatilityLookbackDays)
		if err != nil {
			return err
		}
		for i := range volatility {
			if volatility[i].ChainID == chainID {
				detail.GasVolatility = &volatility[i]
				break
			}
		}
		return nil
	})
	g.Go(func() error {
		failed, err := u.transactionRepo.GetFailedTransactionAnalysis(gctx, start, end)
		if err != nil {
			return err
		}
		groups := make([]entities.FailedTransactionGroup, 0)
		for _, group := range failed {
			if group.ChainID == chainID {
				groups = append(groups, group)
			}
		}
		detail.FailedTransactionAnalysis = groups
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error(ctx, "chain analytics failed", zap.String("chainId", chainID), zap.Error(err))
		return nil, err
	}
	return detail, nil
}

// GetAnalysisMetrics builds the static-analysis composite
func (u *AnalyticsUsecase) GetAnalysisMetrics(ctx context.Context, timeRange entities.TimeRange) (*entities.AnalysisMetrics, error) {
	end := u.now()
	start := timeRange.StartFrom(end)

	metrics := &entities.AnalysisMetrics{
		TimeRange: timeRange,
		Period:    entities.Period{StartDate: start, EndDate: end},
		UpdatedAt: end,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary, err := u.analysisRepo.GetAnalysisSummary(gctx, nil, nil, &start, &end)
		if err != nil {
			return err
		}
		metrics.Summary = summary
		return nil
	})
	g.Go(func() error {
		violations, err := u.analysisRepo.GetTopRuleViolations(gctx, topRuleViolationLimit, &start, &end)
		if err != nil {
			return err
		}
		metrics.TopRuleViolations = violations
		return nil
	})
	g.Go(func() error {
		dist, err := u.analysisRepo.GetLanguageDistribution(gctx, &start, &end)
		if err != nil {
			return err
		}
		metrics.LanguageDistribution = dist
		return nil
	})
	g.Go(func() error {
		trend, err := u.analysisRepo.GetAnalysisTrend(gctx, u.cfg.TrendLookbackDays)
		if err != nil {
			return err
		}
		metrics.TrendData = trend
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error(ctx, "analysis metrics failed", zap.String("timeRange", string(timeRange)), zap.Error(err))
		return nil, err
	}
	return metrics, nil
}

// GetPerformanceMetrics builds the monitoring composite from the current
// chain ranking and activity counters
func (u *AnalyticsUsecase) GetPerformanceMetrics(ctx context.Context) (*entities.PerformanceMetrics, error) {
	metrics := &entities.PerformanceMetrics{UpdatedAt: u.now()}

	var ranking []entities.ChainPerformanceRank

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		highGas, err := u.transactionRepo.GetHighGasTransactions(gctx, u.cfg.PerformanceHighGasLimit)
		if err != nil {
			return err
		}
		metrics.Monitoring.HighGasTransactions = len(highGas)
		return nil
	})
	g.Go(func() error {
		active, err := u.merchantRepo.GetActiveMerchants(gctx, u.cfg.ActiveWindowDays)
		if err != nil {
			return err
		}
		metrics.Monitoring.ActiveMerchants = len(active)
		return nil
	})
	g.Go(func() error {
		ranked, err := u.chainRepo.GetPerformanceRanking(gctx)
		if err != nil {
			return err
		}
		ranking = ranked
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error(ctx, "performance metrics failed", zap.Error(err))
		return nil, err
	}

	metrics.Monitoring.TotalChains = len(ranking)
	if len(ranking) > 0 {
		var sum float64
		for _, chain := range ranking {
			sum += chain.ReliabilityScore
		}
		metrics.PerformanceIndicators.AvgChainReliability = null.Float64From(sum / float64(len(ranking)))
		metrics.PerformanceIndicators.TopPerformingChain = null.StringFrom(ranking[0].ChainName)
		metrics.PerformanceIndicators.LowestReliabilityChain = null.StringFrom(ranking[len(ranking)-1].ChainName)
	}
	return metrics, nil
}
