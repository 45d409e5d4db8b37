package audit

import (
	"testing"

	"github.com/planwise/taxgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeCleanReturn(t *testing.T) {
	scorer := NewScorer()
	risk := scorer.Analyze(domain.FinancialProfile{
		OrdinaryIncome: decimal.NewFromInt(80000),
		FilingStatus:   domain.FilingSingle,
	}, nil)

	assert.Equal(t, baselineScore, risk.Score)
	assert.Equal(t, domain.RiskMinimal, risk.Tier)
	assert.Equal(t, domain.ChannelCorrespondence, risk.Channel)
	assert.Empty(t, risk.Flags)
	assert.Empty(t, risk.Gaps)
	assert.True(t, risk.PenaltyExposure.IsZero())
	// 0.4% income-band baseline scaled by the baseline score.
	assert.True(t, risk.AuditProbability.Equal(decimal.NewFromFloat(0.0048)),
		"probability = %s", risk.AuditProbability)
}

func TestAnalyzeEverythingWrongClampsAt100(t *testing.T) {
	profile := domain.FinancialProfile{
		OrdinaryIncome: decimal.NewFromInt(1200000),
		FilingStatus:   domain.FilingSingle,
		Business: domain.BusinessDetail{
			CryptoTransactions:   250,
			CashIntensive:        true,
			VehicleDeduction:     decimal.NewFromInt(20000),
			ConsecutiveLossYears: 3,
			PayerReportedIncome:  decimal.NewFromInt(1500000),
		},
	}
	risk := NewScorer().Analyze(profile, nil)

	// 10 + 25 + 18 + 10 + 12 + 15 + 20 = 110 before clamping.
	assert.Equal(t, maxScore, risk.Score)
	assert.Equal(t, domain.RiskSevere, risk.Tier)
	assert.Equal(t, domain.ChannelField, risk.Channel)
	assert.Len(t, risk.Flags, 6)
	assert.True(t, risk.AuditProbability.LessThanOrEqual(probabilityCap))

	// Vehicle deduction 20,000 plus the 300,000 income gap at 28%.
	assert.True(t, risk.PenaltyExposure.Equal(decimal.NewFromInt(89600)),
		"exposure = %s", risk.PenaltyExposure)
}

func TestAnalyzeDocumentationGapsOncePerCategory(t *testing.T) {
	// cash_intensive and multi_year_losses share the business_income
	// category; the gap list carries it once.
	profile := domain.FinancialProfile{
		OrdinaryIncome: decimal.NewFromInt(80000),
		FilingStatus:   domain.FilingSingle,
		Business: domain.BusinessDetail{
			CashIntensive:        true,
			ConsecutiveLossYears: 4,
		},
	}
	risk := NewScorer().Analyze(profile, nil)
	require.Len(t, risk.Flags, 2)
	require.Len(t, risk.Gaps, 1)
	assert.Equal(t, "business_income", risk.Gaps[0].Category)
	assert.NotEmpty(t, risk.Gaps[0].Missing)
}

func TestAnalyzeEvidenceCrossReference(t *testing.T) {
	profile := domain.FinancialProfile{
		OrdinaryIncome: decimal.NewFromInt(80000),
		FilingStatus:   domain.FilingSingle,
		Business: domain.BusinessDetail{
			VehicleDeduction: decimal.NewFromInt(9000),
		},
	}
	risk := NewScorer().Analyze(profile, []string{"mileage_log", "insurance_statements"})
	require.Len(t, risk.Gaps, 1)

	gap := risk.Gaps[0]
	assert.Contains(t, gap.Present, "mileage_log")
	assert.Contains(t, gap.Present, "insurance_statements")
	assert.Contains(t, gap.Missing, "vehicle_purchase_records")

	// Evidence never changes the score itself.
	bare := NewScorer().Analyze(profile, nil)
	assert.Equal(t, bare.Score, risk.Score)
}

func TestTierBands(t *testing.T) {
	tests := []struct {
		score    int
		expected domain.RiskTier
	}{
		{0, domain.RiskMinimal},
		{19, domain.RiskMinimal},
		{20, domain.RiskLow},
		{39, domain.RiskLow},
		{40, domain.RiskModerate},
		{59, domain.RiskModerate},
		{60, domain.RiskHigh},
		{79, domain.RiskHigh},
		{80, domain.RiskSevere},
		{100, domain.RiskSevere},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, tier(tt.score), "score %d", tt.score)
	}
}

func TestChannelThresholds(t *testing.T) {
	assert.Equal(t, domain.ChannelCorrespondence, channel(35))
	assert.Equal(t, domain.ChannelOffice, channel(36))
	assert.Equal(t, domain.ChannelOffice, channel(60))
	assert.Equal(t, domain.ChannelField, channel(61))
}

func TestBaselineAuditRateBands(t *testing.T) {
	tests := []struct {
		gross    int64
		expected float64
	}{
		{50000, 0.004},
		{150000, 0.006},
		{350000, 0.011},
		{750000, 0.025},
		{2000000, 0.045},
	}
	for _, tt := range tests {
		got := baselineAuditRate(decimal.NewFromInt(tt.gross))
		assert.True(t, got.Equal(decimal.NewFromFloat(tt.expected)), "gross %d: %s", tt.gross, got)
	}
}
