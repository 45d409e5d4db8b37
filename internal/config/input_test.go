package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/planwise/taxgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePlanFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFileFullPlan(t *testing.T) {
	path := writePlanFile(t, `
tax_year: 2025
profile:
  ordinary_income: 40000
  self_employment_income: 85000
  long_term_gains: 12000
  filing_status: single
  state: PA
  age: 41
  business:
    schedule_c_expenses: 22000
    home_office: true
    crypto_transactions: 12
scenarios:
  - "retirement_contribution:amount=15000"
  - "entity_conversion:salary=50000"
projection:
  start_year: 2025
  years: 4
  growth_rate: 0.03
  sunset_year: 2026
income_history:
  - {year: 2024, month: 1, amount: 9000}
  - {year: 2024, month: 2, amount: 11000}
  - {year: 2024, month: 3, amount: 10000}
safe_harbor:
  prior_year_tax: 31000
  prior_year_agi: 140000
  paid_to_date: 16000
monthly_expenses: 6500
evidence:
  - expense_receipts
  - floor_plan
`)

	plan, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 2025, plan.TaxYear)
	assert.True(t, plan.Profile.SelfEmploymentIncome.Equal(decimal.NewFromInt(85000)))
	assert.Equal(t, domain.FilingSingle, plan.Profile.FilingStatus)
	assert.True(t, plan.Profile.Business.HomeOffice)
	assert.Equal(t, 12, plan.Profile.Business.CryptoTransactions)
	assert.Len(t, plan.Scenarios, 2)
	assert.Equal(t, 4, plan.Projection.Years)
	assert.True(t, plan.Projection.GrowthRate.Equal(decimal.NewFromFloat(0.03)))
	require.Len(t, plan.IncomeHistory, 3)
	assert.Equal(t, time.February, plan.IncomeHistory[1].Month)
	assert.True(t, plan.SafeHarbor.PriorYearTax.Equal(decimal.NewFromInt(31000)))
	assert.True(t, plan.MonthlyExpenses.Equal(decimal.NewFromInt(6500)))
	assert.Contains(t, plan.Evidence, "floor_plan")
}

func TestLoadFromFileAppliesDefaults(t *testing.T) {
	path := writePlanFile(t, `
profile:
  ordinary_income: 60000
`)
	plan, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 2025, plan.TaxYear)
	assert.Equal(t, domain.FilingSingle, plan.Profile.FilingStatus)
	assert.Equal(t, 2025, plan.Projection.StartYear)
	assert.Equal(t, 5, plan.Projection.Years)
	assert.Equal(t, 2026, plan.Projection.SunsetYear)
	assert.Equal(t, time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), plan.SafeHarbor.AsOf)
}

func TestLoadFromFileMissingFile(t *testing.T) {
	_, err := NewInputParser().LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadFromFileMalformedYAML(t *testing.T) {
	path := writePlanFile(t, "profile: [not: a: mapping")
	_, err := NewInputParser().LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadFromFileValidationFailures(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		fragment string
	}{
		{
			name: "unknown filing status",
			yaml: `
profile:
  ordinary_income: 60000
  filing_status: widowed
`,
			fragment: "filing status",
		},
		{
			name: "unknown state",
			yaml: `
profile:
  ordinary_income: 60000
  state: ZZ
`,
			fragment: "unknown state",
		},
		{
			name: "negative age",
			yaml: `
profile:
  ordinary_income: 60000
  age: -4
`,
			fragment: "age",
		},
		{
			name: "unsupported tax year",
			yaml: `
tax_year: 1999
profile:
  ordinary_income: 60000
`,
			fragment: "1999",
		},
		{
			name: "invalid history month",
			yaml: `
profile:
  ordinary_income: 60000
income_history:
  - {year: 2024, month: 14, amount: 9000}
`,
			fragment: "invalid month",
		},
		{
			name: "negative history amount",
			yaml: `
profile:
  ordinary_income: 60000
income_history:
  - {year: 2024, month: 4, amount: -9000}
`,
			fragment: "negative amount",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writePlanFile(t, tt.yaml)
			_, err := NewInputParser().LoadFromFile(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.fragment)
		})
	}
}
