package calculation

import (
	"testing"

	"github.com/planwise/taxgo/internal/brackets"
	"github.com/planwise/taxgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCalculator(t *testing.T) *Calculator {
	t.Helper()
	calc, err := NewForYear(2025)
	require.NoError(t, err)
	return calc
}

func TestComputeSingleWageEarner(t *testing.T) {
	calc := newTestCalculator(t)

	// $75,000 wages minus the $15,000 standard deduction leaves $60,000
	// taxable: 11,925 @ 10% + 36,550 @ 12% + 11,525 @ 22% = 8,114.
	pos := calc.Compute(domain.FinancialProfile{
		OrdinaryIncome: decimal.NewFromInt(75000),
		FilingStatus:   domain.FilingSingle,
	})

	assert.True(t, pos.FederalTax.Equal(decimal.NewFromInt(8114)), "federal tax = %s", pos.FederalTax)
	assert.True(t, pos.MarginalRate.Equal(decimal.NewFromFloat(0.22)), "marginal = %s", pos.MarginalRate)
	assert.True(t, pos.TotalTax.Equal(decimal.NewFromInt(8114)))
	assert.True(t, pos.TakeHome.Equal(decimal.NewFromInt(66886)))
	assert.True(t, pos.StandardDeductionUsed)
	assert.True(t, pos.EffectiveRate.GreaterThan(decimal.Zero))
}

func TestSelfEmploymentTax(t *testing.T) {
	calc := newTestCalculator(t)

	tests := []struct {
		name         string
		netSE        decimal.Decimal
		expectedTax  decimal.Decimal
		expectedHalf decimal.Decimal
	}{
		{
			name: "typical freelancer",
			// 100,000 * 0.9235 = 92,350 base; 12.4% SS + 2.9% Medicare.
			netSE:        decimal.NewFromInt(100000),
			expectedTax:  decimal.NewFromFloat(14129.55),
			expectedHalf: decimal.NewFromFloat(7064.775),
		},
		{
			name:         "zero income",
			netSE:        decimal.Zero,
			expectedTax:  decimal.Zero,
			expectedHalf: decimal.Zero,
		},
		{
			name:         "negative income",
			netSE:        decimal.NewFromInt(-5000),
			expectedTax:  decimal.Zero,
			expectedHalf: decimal.Zero,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax, half := calc.SelfEmploymentTax(tt.netSE)
			assert.True(t, tax.Equal(tt.expectedTax), "tax = %s, want %s", tax, tt.expectedTax)
			assert.True(t, half.Equal(tt.expectedHalf), "half = %s, want %s", half, tt.expectedHalf)
		})
	}
}

func TestSelfEmploymentTaxWageBaseCap(t *testing.T) {
	calc := newTestCalculator(t)

	// At $300,000 the SS portion caps at the wage base; Medicare does not.
	tax, _ := calc.SelfEmploymentTax(decimal.NewFromInt(300000))
	base := decimal.NewFromInt(300000).Mul(brackets.SENetEarningsFactor)
	expected := decimal.NewFromInt(176100).Mul(brackets.SESocialSecurity).
		Add(base.Mul(brackets.SEMedicare))
	assert.True(t, tax.Equal(expected), "tax = %s, want %s", tax, expected)
}

func TestComputeHalfSETaxReducesAGI(t *testing.T) {
	calc := newTestCalculator(t)

	pos := calc.Compute(domain.FinancialProfile{
		SelfEmploymentIncome: decimal.NewFromInt(100000),
		FilingStatus:         domain.FilingSingle,
	})

	expectedAGI := decimal.NewFromInt(100000).Sub(decimal.NewFromFloat(7064.775))
	assert.True(t, pos.AGI.Equal(expectedAGI), "AGI = %s, want %s", pos.AGI, expectedAGI)
	assert.True(t, pos.SelfEmploymentTax.Equal(decimal.NewFromFloat(14129.55)))
	assert.True(t, pos.HalfSelfEmploymentTax.Equal(decimal.NewFromFloat(7064.775)))
}

func TestComputeLongTermGainsStackOnOrdinary(t *testing.T) {
	calc := newTestCalculator(t)

	tests := []struct {
		name          string
		ordinary      decimal.Decimal
		gains         decimal.Decimal
		expectedGains decimal.Decimal
	}{
		{
			// Taxable ordinary $60,000 already fills the 0% gains bracket
			// (ceiling $48,350), so the whole gain lands at 15%.
			name:          "ordinary income consumes zero bracket",
			ordinary:      decimal.NewFromInt(75000),
			gains:         decimal.NewFromInt(20000),
			expectedGains: decimal.NewFromInt(3000),
		},
		{
			// Taxable ordinary $40,000 leaves $8,350 of the 0% bracket:
			// 8,350 @ 0% + 11,650 @ 15% = 1,747.50.
			name:          "gain straddles zero and fifteen",
			ordinary:      decimal.NewFromInt(55000),
			gains:         decimal.NewFromInt(20000),
			expectedGains: decimal.NewFromFloat(1747.50),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := calc.Compute(domain.FinancialProfile{
				OrdinaryIncome: tt.ordinary,
				LongTermGains:  tt.gains,
				FilingStatus:   domain.FilingSingle,
			})
			assert.True(t, pos.CapitalGainsTax.Equal(tt.expectedGains),
				"gains tax = %s, want %s", pos.CapitalGainsTax, tt.expectedGains)
		})
	}
}

func TestComputeNetInvestmentIncomeTax(t *testing.T) {
	calc := newTestCalculator(t)

	// AGI 220,000 exceeds the single threshold by 20,000, which is less than
	// the 30,000 of investment income: NIIT = 20,000 * 3.8% = 760.
	pos := calc.Compute(domain.FinancialProfile{
		OrdinaryIncome: decimal.NewFromInt(190000),
		LongTermGains:  decimal.NewFromInt(30000),
		FilingStatus:   domain.FilingSingle,
	})
	assert.True(t, pos.NetInvestmentIncomeTax.Equal(decimal.NewFromInt(760)),
		"NIIT = %s", pos.NetInvestmentIncomeTax)

	// Below the threshold there is no surtax regardless of investment income.
	pos = calc.Compute(domain.FinancialProfile{
		OrdinaryIncome: decimal.NewFromInt(100000),
		LongTermGains:  decimal.NewFromInt(30000),
		FilingStatus:   domain.FilingSingle,
	})
	assert.True(t, pos.NetInvestmentIncomeTax.IsZero())
}

func TestComputeStateTax(t *testing.T) {
	calc := newTestCalculator(t)

	// PA flat 3.07% on AGI minus the deduction.
	pos := calc.Compute(domain.FinancialProfile{
		OrdinaryIncome: decimal.NewFromInt(75000),
		FilingStatus:   domain.FilingSingle,
		State:          "PA",
	})
	expected := decimal.NewFromInt(60000).Mul(decimal.NewFromFloat(0.0307))
	assert.True(t, pos.StateTax.Equal(expected), "state tax = %s, want %s", pos.StateTax, expected)

	// No-income-tax state.
	pos = calc.Compute(domain.FinancialProfile{
		OrdinaryIncome: decimal.NewFromInt(75000),
		FilingStatus:   domain.FilingSingle,
		State:          "TX",
	})
	assert.True(t, pos.StateTax.IsZero())
}

func TestComputeItemizedBeatsStandard(t *testing.T) {
	calc := newTestCalculator(t)

	pos := calc.Compute(domain.FinancialProfile{
		OrdinaryIncome:     decimal.NewFromInt(100000),
		ItemizedDeductions: decimal.NewFromInt(22000),
		FilingStatus:       domain.FilingSingle,
	})
	assert.False(t, pos.StandardDeductionUsed)
	assert.True(t, pos.TaxableIncome.Equal(decimal.NewFromInt(78000)))
}

func TestComputeZeroIncome(t *testing.T) {
	calc := newTestCalculator(t)

	pos := calc.Compute(domain.FinancialProfile{FilingStatus: domain.FilingSingle})
	assert.True(t, pos.TotalTax.IsZero())
	assert.True(t, pos.EffectiveRate.IsZero(), "effective rate must be zero when gross is zero")
	assert.True(t, pos.MarginalRate.IsZero())
}

func TestComputeInvalidStatusDefaultsToSingle(t *testing.T) {
	calc := newTestCalculator(t)

	profile := domain.FinancialProfile{OrdinaryIncome: decimal.NewFromInt(75000)}
	bad := profile
	bad.FilingStatus = "quux"
	good := profile
	good.FilingStatus = domain.FilingSingle

	assert.Equal(t, calc.Compute(good), calc.Compute(bad))
}

func TestComputeDeterministic(t *testing.T) {
	calc := newTestCalculator(t)

	profile := domain.FinancialProfile{
		OrdinaryIncome:       decimal.NewFromInt(120000),
		SelfEmploymentIncome: decimal.NewFromInt(40000),
		LongTermGains:        decimal.NewFromInt(15000),
		FilingStatus:         domain.FilingMarriedJoint,
		State:                "CA",
	}
	first := calc.Compute(profile)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, calc.Compute(profile))
	}
}

func TestComputeMonotonicInIncome(t *testing.T) {
	calc := newTestCalculator(t)

	prev := decimal.Zero
	for _, income := range []int64{10000, 50000, 100000, 250000, 700000, 2000000} {
		pos := calc.Compute(domain.FinancialProfile{
			OrdinaryIncome: decimal.NewFromInt(income),
			FilingStatus:   domain.FilingSingle,
		})
		assert.True(t, pos.TotalTax.GreaterThanOrEqual(prev),
			"total tax fell from %s to %s at income %d", prev, pos.TotalTax, income)
		prev = pos.TotalTax
	}
}

func TestWalkTaxesEveryDollarOnce(t *testing.T) {
	calc := newTestCalculator(t)
	schedule := calc.Tables.Ordinary[domain.FilingSingle]

	amount := decimal.NewFromInt(60000)
	usage := Usage(schedule, amount)

	filled := decimal.Zero
	for _, u := range usage {
		filled = filled.Add(u.Filled)
		assert.True(t, u.Utilization.GreaterThanOrEqual(decimal.Zero))
		assert.True(t, u.Utilization.LessThanOrEqual(decimal.NewFromInt(1)))
	}
	assert.True(t, filled.Equal(amount), "bracket slices sum to %s, want %s", filled, amount)
}

func TestWalkFromSkipsConsumedWidth(t *testing.T) {
	calc := newTestCalculator(t)
	gains := calc.Tables.Gains[domain.FilingSingle]

	// Starting above the 0% ceiling, the entire amount is taxed at 15%.
	tax, marginal := walkFrom(gains, decimal.NewFromInt(60000), decimal.NewFromInt(20000))
	assert.True(t, tax.Equal(decimal.NewFromInt(3000)), "tax = %s", tax)
	assert.True(t, marginal.Equal(decimal.NewFromFloat(0.15)))

	// Zero or negative amounts never walk.
	tax, marginal = walkFrom(gains, decimal.NewFromInt(60000), decimal.Zero)
	assert.True(t, tax.IsZero())
	assert.True(t, marginal.IsZero())
}

func TestNewForYearUnsupported(t *testing.T) {
	_, err := NewForYear(1999)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1999")
}
