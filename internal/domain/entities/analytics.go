package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	domainerrors "gaswatch.backend/internal/domain/errors"
)

// TimeRange is a lookback window token anchored at request time
type TimeRange string

const (
	TimeRange24h TimeRange = "24h"
	TimeRange7d  TimeRange = "7d"
	TimeRange30d TimeRange = "30d"
)

// ParseTimeRange validates a time-range token, defaulting to 7d when empty
func ParseTimeRange(s string) (TimeRange, error) {
	if s == "" {
		return TimeRange7d, nil
	}
	switch TimeRange(s) {
	case TimeRange24h, TimeRange7d, TimeRange30d:
		return TimeRange(s), nil
	}
	return "", domainerrors.ErrInvalidInput
}

// StartFrom returns the window start for this token anchored at end
func (tr TimeRange) StartFrom(end time.Time) time.Time {
	switch tr {
	case TimeRange24h:
		return end.Add(-24 * time.Hour)
	case TimeRange30d:
		return end.AddDate(0, 0, -30)
	default:
		return end.AddDate(0, 0, -7)
	}
}

// Period is the absolute interval a composite read-model was computed over
type Period struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// TransactionSuccessMetrics is the overall success aggregate for a filtered
// transaction set. SuccessRate is null when no transactions match.
type TransactionSuccessMetrics struct {
	TotalTransactions      int64        `json:"totalTransactions"`
	SuccessfulTransactions int64        `json:"successfulTransactions"`
	FailedTransactions     int64        `json:"failedTransactions"`
	SuccessRate            null.Float64 `json:"successRate"`
	AvgGasUsed             null.Float64 `json:"avgGasUsed"`
	TotalFees              float64      `json:"totalFees"`
}

// GasUsageTrendPoint is one day of a merchant's successful gas usage
type GasUsageTrendPoint struct {
	Date             string  `json:"date"`
	TotalGasUsed     float64 `json:"totalGasUsed"`
	AvgGasUsed       float64 `json:"avgGasUsed"`
	TransactionCount int64   `json:"transactionCount"`
}

// ChainVolumeMetrics is per-chain transaction volume over a window
type ChainVolumeMetrics struct {
	ChainID          string  `json:"chainId"`
	TransactionCount int64   `json:"transactionCount"`
	TotalGasUsed     float64 `json:"totalGasUsed"`
	AvgGasUsed       float64 `json:"avgGasUsed"`
	TotalFees        float64 `json:"totalFees"`
}

// FailedTransactionGroup is one (chain, error message) failure bucket
type FailedTransactionGroup struct {
	ChainID      string  `json:"chainId"`
	ErrorMessage string  `json:"errorMessage"`
	Count        int64   `json:"count"`
	AvgGasUsed   float64 `json:"avgGasUsed"`
}

// MerchantActivityMetrics is one merchant's transaction volume ranking entry
type MerchantActivityMetrics struct {
	MerchantID       uuid.UUID      `json:"merchantId"`
	MerchantName     string         `json:"merchantName"`
	Plan             MerchantPlan   `json:"plan"`
	Status           MerchantStatus `json:"status"`
	TransactionCount int64          `json:"transactionCount"`
	TotalGasUsed     float64        `json:"totalGasUsed"`
	TotalFees        float64        `json:"totalFees"`
	AvgGasUsed       float64        `json:"avgGasUsed"`
}

// MerchantGrowthStats summarizes merchant onboarding over a window
type MerchantGrowthStats struct {
	TotalMerchants  int64   `json:"totalMerchants"`
	NewMerchants    int64   `json:"newMerchants"`
	ActiveMerchants int64   `json:"activeMerchants"`
	GrowthRate      float64 `json:"growthRate"`
}

// ChainReliabilityMetrics is one chain's reliability aggregate over a window
type ChainReliabilityMetrics struct {
	ChainID            string       `json:"chainId"`
	ChainName          string       `json:"chainName"`
	ChainType          ChainType    `json:"chainType"`
	ReliabilityScore   float64      `json:"reliabilityScore"`
	AverageGasPrice    null.Float64 `json:"averageGasPrice,omitempty"`
	GasVolatility      null.Float64 `json:"gasVolatility,omitempty"`
	TotalTransactions  int64        `json:"totalTransactions"`
	RecentTransactions int64        `json:"recentTransactions"`
	SuccessRate        null.Float64 `json:"successRate"`
}

// ChainVolatilityMetrics is one chain's gas volatility over a lookback.
// Chains with 100 or fewer qualifying transactions are suppressed upstream.
type ChainVolatilityMetrics struct {
	ChainID          string       `json:"chainId"`
	ChainName        string       `json:"chainName"`
	GasVolatility    null.Float64 `json:"gasVolatility"`
	AvgGasUsed       float64      `json:"avgGasUsed"`
	MinGasUsed       float64      `json:"minGasUsed"`
	MaxGasUsed       float64      `json:"maxGasUsed"`
	TransactionCount int64        `json:"transactionCount"`
}

// ChainPerformanceRank is one entry of the full chain performance ranking
type ChainPerformanceRank struct {
	ChainID           string       `json:"chainId"`
	ChainName         string       `json:"chainName"`
	ChainType         ChainType    `json:"chainType"`
	ReliabilityScore  float64      `json:"reliabilityScore"`
	AverageGasPrice   null.Float64 `json:"averageGasPrice,omitempty"`
	TotalTransactions int64        `json:"totalTransactions"`
	GasVolatility     null.Float64 `json:"gasVolatility,omitempty"`
}

// AnalysisSummary aggregates analysis runs for a filtered set
type AnalysisSummary struct {
	TotalAnalyses   int64        `json:"totalAnalyses"`
	AvgViolations   null.Float64 `json:"avgViolations"`
	TotalViolations int64        `json:"totalViolations"`
	AvgGasSavings   null.Float64 `json:"avgGasSavings"`
	TotalGasSavings float64      `json:"totalGasSavings"`
}

// RuleViolationGroup is one rule's occurrence count across unnested findings
type RuleViolationGroup struct {
	RuleName        string  `json:"ruleName"`
	ViolationCount  int64   `json:"violationCount"`
	TotalGasSavings float64 `json:"totalGasSavings"`
}

// LanguageDistribution is the analysis breakdown for one source language
type LanguageDistribution struct {
	Language        AnalysisLanguage `json:"language"`
	AnalysisCount   int64            `json:"analysisCount"`
	AvgViolations   null.Float64     `json:"avgViolations"`
	TotalGasSavings float64          `json:"totalGasSavings"`
}

// AnalysisTrendPoint is one day of analysis activity
type AnalysisTrendPoint struct {
	Date            string       `json:"date"`
	AnalysisCount   int64        `json:"analysisCount"`
	AvgViolations   null.Float64 `json:"avgViolations"`
	DailyGasSavings float64      `json:"dailyGasSavings"`
}

// DashboardAnalytics is the top-level dashboard composite read-model
type DashboardAnalytics struct {
	TimeRange          TimeRange                  `json:"timeRange"`
	Period             Period                     `json:"period"`
	TransactionMetrics *TransactionSuccessMetrics `json:"transactionMetrics"`
	TopMerchants       []MerchantActivityMetrics  `json:"topMerchants"`
	ChainMetrics       []ChainReliabilityMetrics  `json:"chainMetrics"`
	AnalysisSummary    *AnalysisSummary           `json:"analysisSummary"`
	UpdatedAt          time.Time                  `json:"updatedAt"`
}

// MerchantDetailAnalytics is the merchant-scoped composite read-model.
// HighGasTransactions is deliberately global, not merchant-scoped.
type MerchantDetailAnalytics struct {
	MerchantID          uuid.UUID                  `json:"merchantId"`
	TimeRange           TimeRange                  `json:"timeRange"`
	Period              Period                     `json:"period"`
	GasUsageTrend       []GasUsageTrendPoint       `json:"gasUsageTrend"`
	TransactionMetrics  *TransactionSuccessMetrics `json:"transactionMetrics"`
	AnalysisSummary     *AnalysisSummary           `json:"analysisSummary"`
	HighGasTransactions []*Transaction             `json:"highGasTransactions"`
	UpdatedAt           time.Time                  `json:"updatedAt"`
}

// ChainDetailAnalytics is the chain-scoped composite read-model
type ChainDetailAnalytics struct {
	ChainID                   string                   `json:"chainId"`
	TimeRange                 TimeRange                `json:"timeRange"`
	Period                    Period                   `json:"period"`
	TransactionMetrics        *ChainVolumeMetrics      `json:"transactionMetrics"`
	ReliabilityMetrics        *ChainReliabilityMetrics `json:"reliabilityMetrics"`
	GasVolatility             *ChainVolatilityMetrics  `json:"gasVolatility"`
	FailedTransactionAnalysis []FailedTransactionGroup `json:"failedTransactionAnalysis"`
	UpdatedAt                 time.Time                `json:"updatedAt"`
}

// AnalysisMetrics is the analysis composite read-model
type AnalysisMetrics struct {
	TimeRange            TimeRange              `json:"timeRange"`
	Period               Period                 `json:"period"`
	Summary              *AnalysisSummary       `json:"summary"`
	TopRuleViolations    []RuleViolationGroup   `json:"topRuleViolations"`
	LanguageDistribution []LanguageDistribution `json:"languageDistribution"`
	TrendData            []AnalysisTrendPoint   `json:"trendData"`
	UpdatedAt            time.Time              `json:"updatedAt"`
}

// MonitoringCounters holds raw counts for the monitoring view
type MonitoringCounters struct {
	HighGasTransactions int `json:"highGasTransactions"`
	ActiveMerchants     int `json:"activeMerchants"`
	TotalChains         int `json:"totalChains"`
}

// PerformanceIndicators holds derived chain reliability indicators
type PerformanceIndicators struct {
	AvgChainReliability    null.Float64 `json:"avgChainReliability"`
	TopPerformingChain     null.String  `json:"topPerformingChain"`
	LowestReliabilityChain null.String  `json:"lowestReliabilityChain"`
}

// PerformanceMetrics is the performance/monitoring composite read-model
type PerformanceMetrics struct {
	Monitoring            MonitoringCounters    `json:"monitoring"`
	PerformanceIndicators PerformanceIndicators `json:"performanceIndicators"`
	UpdatedAt             time.Time             `json:"updatedAt"`
}
