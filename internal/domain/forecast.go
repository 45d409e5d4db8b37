package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Observation is one historical income data point.
type Observation struct {
	Year   int             `json:"year" yaml:"year"`
	Month  time.Month      `json:"month" yaml:"month"`
	Amount decimal.Decimal `json:"amount" yaml:"amount"`
}

// ConfidenceTier grades a forecast by the volatility of the history behind it.
type ConfidenceTier string

const (
	ConfidenceHigh   ConfidenceTier = "high"
	ConfidenceMedium ConfidenceTier = "medium"
	ConfidenceLow    ConfidenceTier = "low"
)

// IncomePattern is the seasonal/growth decomposition of an income history.
// A degenerate history (<3 observations) yields a flat neutral pattern:
// every seasonal factor 1.0, zero growth, zero volatility.
type IncomePattern struct {
	OverallAverage  decimal.Decimal                `json:"overallAverage"`
	MonthlyAverages map[time.Month]decimal.Decimal `json:"monthlyAverages"`
	SeasonalFactors map[time.Month]decimal.Decimal `json:"seasonalFactors"`
	GrowthRate      decimal.Decimal                `json:"growthRate"`
	Volatility      decimal.Decimal                `json:"volatility"`
	Irregular       bool                           `json:"irregular"`
	Observations    int                            `json:"observations"`
}

// MonthForecast is one projected month of income.
type MonthForecast struct {
	Year   int             `json:"year"`
	Month  time.Month      `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// QuarterForecast aggregates projected months into a calendar quarter.
type QuarterForecast struct {
	Year       int             `json:"year"`
	Quarter    int             `json:"quarter"`
	Income     decimal.Decimal `json:"income"`
	Confidence ConfidenceTier  `json:"confidence"`
}

// SafeHarborInput carries everything the safe-harbor computation needs; the
// evaluation date is injected rather than read from the clock.
type SafeHarborInput struct {
	PriorYearTax        decimal.Decimal `json:"priorYearTax" yaml:"prior_year_tax"`
	PriorYearAGI        decimal.Decimal `json:"priorYearAGI" yaml:"prior_year_agi"`
	CurrentYearEstimate decimal.Decimal `json:"currentYearEstimate" yaml:"current_year_estimate"`
	PaidToDate          decimal.Decimal `json:"paidToDate" yaml:"paid_to_date"`
	AsOf                time.Time       `json:"asOf" yaml:"as_of"`
}

// SafeHarborPlan is the quarterly estimated-payment schedule that avoids an
// underpayment penalty.
type SafeHarborPlan struct {
	RequiredAnnual   decimal.Decimal `json:"requiredAnnual"`
	QuarterlyPayment decimal.Decimal `json:"quarterlyPayment"`
	RequiredToDate   decimal.Decimal `json:"requiredToDate"`
	PaidToDate       decimal.Decimal `json:"paidToDate"`
	Shortfall        decimal.Decimal `json:"shortfall"`
	OnTrack          bool            `json:"onTrack"`
	UsedPriorYear    bool            `json:"usedPriorYear"`
	HighIncomePayer  bool            `json:"highIncomePayer"`
}

// CashReservePlan recommends a liquidity buffer sized to income regularity
// plus a tax-specific reserve.
type CashReservePlan struct {
	MonthsOfExpenses int             `json:"monthsOfExpenses"`
	ExpenseBuffer    decimal.Decimal `json:"expenseBuffer"`
	TaxReserve       decimal.Decimal `json:"taxReserve"`
	Total            decimal.Decimal `json:"total"`
}
