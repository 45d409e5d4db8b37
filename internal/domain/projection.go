package domain

import (
	"github.com/shopspring/decimal"
)

// BracketRegime tags which bracket law applied to a projected year.
type BracketRegime string

const (
	RegimeCurrentLaw BracketRegime = "current_law"
	RegimePreSunset  BracketRegime = "pre_sunset"
)

// BracketUsage records how much of one bracket's width a year's taxable
// income filled, for rendering utilization bars.
type BracketUsage struct {
	Ceiling     decimal.Decimal `json:"ceiling"`
	Rate        decimal.Decimal `json:"rate"`
	Width       decimal.Decimal `json:"width"`
	Filled      decimal.Decimal `json:"filled"`
	Utilization decimal.Decimal `json:"utilization"`
}

// YearProjection is one row of a multi-year projection. Rows are produced in
// ascending calendar order; the regime tag is purely a function of the year
// and the sunset year, never of accumulated state.
type YearProjection struct {
	Year                   int             `json:"year"`
	Regime                 BracketRegime   `json:"regime"`
	GrowthRate             decimal.Decimal `json:"growthRate"`
	GrossIncome            decimal.Decimal `json:"grossIncome"`
	AGI                    decimal.Decimal `json:"agi"`
	TaxableIncome          decimal.Decimal `json:"taxableIncome"`
	FederalTax             decimal.Decimal `json:"federalTax"`
	CapitalGainsTax        decimal.Decimal `json:"capitalGainsTax"`
	StateTax               decimal.Decimal `json:"stateTax"`
	SelfEmploymentTax      decimal.Decimal `json:"selfEmploymentTax"`
	NetInvestmentIncomeTax decimal.Decimal `json:"netInvestmentIncomeTax"`
	TotalTax               decimal.Decimal `json:"totalTax"`
	EffectiveRate          decimal.Decimal `json:"effectiveRate"`
	TakeHome               decimal.Decimal `json:"takeHome"`
	BracketUtilization     []BracketUsage  `json:"bracketUtilization"`
}

// IncomeShiftScenario is one income-timing move across adjacent projected
// years, ranked by its aggregate multi-year savings.
type IncomeShiftScenario struct {
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	FromYear         int             `json:"fromYear"`
	ToYear           int             `json:"toYear"`
	AmountShifted    decimal.Decimal `json:"amountShifted"`
	AggregateSavings decimal.Decimal `json:"aggregateSavings"`
}
