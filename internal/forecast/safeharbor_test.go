package forecast

import (
	"testing"
	"time"

	"github.com/planwise/taxgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func yearEnd(year int) time.Time {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
}

func TestSafeHarborPriorYearBasis(t *testing.T) {
	// Prior AGI at or below $150k requires 100% of prior-year tax.
	plan := SafeHarbor(domain.SafeHarborInput{
		PriorYearTax: decimal.NewFromInt(40000),
		PriorYearAGI: decimal.NewFromInt(120000),
		AsOf:         yearEnd(2025),
	})
	assert.True(t, plan.RequiredAnnual.Equal(decimal.NewFromInt(40000)))
	assert.True(t, plan.QuarterlyPayment.Equal(decimal.NewFromInt(10000)))
	assert.True(t, plan.UsedPriorYear)
	assert.False(t, plan.HighIncomePayer)
}

func TestSafeHarborHighIncomeUses110Percent(t *testing.T) {
	plan := SafeHarbor(domain.SafeHarborInput{
		PriorYearTax: decimal.NewFromInt(40000),
		PriorYearAGI: decimal.NewFromInt(200000),
		AsOf:         yearEnd(2025),
	})
	assert.True(t, plan.RequiredAnnual.Equal(decimal.NewFromInt(44000)))
	assert.True(t, plan.QuarterlyPayment.Equal(decimal.NewFromInt(11000)))
	assert.True(t, plan.HighIncomePayer)
}

func TestSafeHarborCurrentYearBasisWhenLower(t *testing.T) {
	// 90% of a 30,000 estimate beats the 40,000 prior-year harbor.
	plan := SafeHarbor(domain.SafeHarborInput{
		PriorYearTax:        decimal.NewFromInt(40000),
		PriorYearAGI:        decimal.NewFromInt(120000),
		CurrentYearEstimate: decimal.NewFromInt(30000),
		AsOf:                yearEnd(2025),
	})
	assert.True(t, plan.RequiredAnnual.Equal(decimal.NewFromInt(27000)))
	assert.False(t, plan.UsedPriorYear)
}

func TestSafeHarborQuartersDue(t *testing.T) {
	input := domain.SafeHarborInput{
		PriorYearTax: decimal.NewFromInt(40000),
		PriorYearAGI: decimal.NewFromInt(120000),
	}

	tests := []struct {
		name     string
		asOf     time.Time
		expected decimal.Decimal
	}{
		{"before first due date", time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), decimal.Zero},
		{"on the first due date", time.Date(2025, time.April, 15, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(10000)},
		{"mid summer", time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(20000)},
		{"year end", yearEnd(2025), decimal.NewFromInt(30000)},
		{"zero evaluation date", time.Time{}, decimal.Zero},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input.AsOf = tt.asOf
			plan := SafeHarbor(input)
			assert.True(t, plan.RequiredToDate.Equal(tt.expected),
				"required to date = %s, want %s", plan.RequiredToDate, tt.expected)
		})
	}
}

func TestSafeHarborOnTrack(t *testing.T) {
	input := domain.SafeHarborInput{
		PriorYearTax: decimal.NewFromInt(40000),
		PriorYearAGI: decimal.NewFromInt(120000),
		AsOf:         yearEnd(2025), // three quarters due, 30,000 required
	}

	// 95% of the required-to-date amount is exactly on track.
	input.PaidToDate = decimal.NewFromInt(28500)
	plan := SafeHarbor(input)
	assert.True(t, plan.OnTrack)

	input.PaidToDate = decimal.NewFromInt(28000)
	plan = SafeHarbor(input)
	assert.False(t, plan.OnTrack)
	assert.True(t, plan.Shortfall.Equal(decimal.NewFromInt(2000)))

	// Overpaying never reports a negative shortfall.
	input.PaidToDate = decimal.NewFromInt(35000)
	plan = SafeHarbor(input)
	assert.True(t, plan.OnTrack)
	assert.True(t, plan.Shortfall.IsZero())
}

func TestCashReserve(t *testing.T) {
	steady := CashReserve(decimal.NewFromInt(5000), decimal.NewFromInt(20000), false)
	assert.Equal(t, 4, steady.MonthsOfExpenses)
	assert.True(t, steady.ExpenseBuffer.Equal(decimal.NewFromInt(20000)))
	assert.True(t, steady.TaxReserve.Equal(decimal.NewFromInt(6000)))
	assert.True(t, steady.Total.Equal(decimal.NewFromInt(26000)))

	irregular := CashReserve(decimal.NewFromInt(5000), decimal.NewFromInt(20000), true)
	assert.Equal(t, 6, irregular.MonthsOfExpenses)
	assert.True(t, irregular.Total.Equal(decimal.NewFromInt(36000)))

	zeroed := CashReserve(decimal.NewFromInt(-100), decimal.NewFromInt(-100), false)
	assert.True(t, zeroed.Total.IsZero())
}
