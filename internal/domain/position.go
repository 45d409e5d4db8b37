package domain

import (
	"github.com/shopspring/decimal"
)

// TaxPosition is the complete liability picture for one profile in one tax
// year. It is derived data: recomputed fresh on every call, never cached by
// the engine, so it can never drift out of sync with a changed profile.
type TaxPosition struct {
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
	MarginalRate           decimal.Decimal `json:"marginalRate"`
	TakeHome               decimal.Decimal `json:"takeHome"`
	StandardDeductionUsed  bool            `json:"standardDeductionUsed"`
	HalfSelfEmploymentTax  decimal.Decimal `json:"halfSelfEmploymentTax"`
}
