package calculation

import (
	"github.com/planwise/taxgo/internal/brackets"
	"github.com/planwise/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

// CALCULATION ASSUMPTIONS:
//
// 1. Federal brackets come from the injected YearTables; the calculator
//    itself is year-agnostic.
// 2. State tax is a flat approximate rate applied to AGI minus the same
//    deduction used federally. No separate state bracket walk.
// 3. Long-term gains stack on top of ordinary taxable income but are walked
//    against the gains schedule, not the ordinary one.
// 4. Rounding happens once, at the final total. Intermediate figures keep
//    full decimal precision.

var two = decimal.NewFromInt(2)

// Calculator maps a FinancialProfile to a TaxPosition. It is pure and total:
// it never errors, and degenerate inputs produce zeroed outputs.
type Calculator struct {
	Tables *brackets.YearTables
}

// New creates a calculator over one year's bracket tables.
func New(tables *brackets.YearTables) *Calculator {
	return &Calculator{Tables: tables}
}

// NewForYear creates a calculator for a supported current-law tax year.
func NewForYear(year int) (*Calculator, error) {
	tables, err := brackets.CurrentLaw(year)
	if err != nil {
		return nil, err
	}
	return New(tables), nil
}

// SelfEmploymentTax computes SECA tax on net self-employment income: the
// Social Security portion capped at the wage base plus uncapped Medicare.
// Returns the tax and the deductible half.
func (c *Calculator) SelfEmploymentTax(netSEIncome decimal.Decimal) (tax, halfDeduction decimal.Decimal) {
	if netSEIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, decimal.Zero
	}
	base := netSEIncome.Mul(brackets.SENetEarningsFactor)
	ss := decimal.Min(base, c.Tables.SSWageBase).Mul(brackets.SESocialSecurity)
	medicare := base.Mul(brackets.SEMedicare)
	tax = ss.Add(medicare)
	if tax.IsNegative() {
		tax = decimal.Zero
	}
	return tax, tax.Div(two)
}

// Compute derives the full tax position for a profile. Identical inputs
// always produce field-for-field identical outputs; the same profile may be
// evaluated many times across UI re-renders.
func (c *Calculator) Compute(p domain.FinancialProfile) domain.TaxPosition {
	status := p.FilingStatus
	if !status.Valid() {
		status = domain.FilingSingle
	}

	gross := p.GrossIncome()
	seTax, halfSE := c.SelfEmploymentTax(p.SelfEmploymentIncome)

	agi := p.OrdinaryIncome.
		Add(p.SelfEmploymentIncome).
		Add(p.LongTermGains).
		Add(p.ShortTermGains).
		Sub(halfSE).
		Sub(p.RetirementContributions)
	if agi.IsNegative() {
		agi = decimal.Zero
	}

	standard := c.Tables.StandardDeductions[status]
	deduction := decimal.Max(standard, p.ItemizedDeductions)
	usedStandard := !p.ItemizedDeductions.GreaterThan(standard)

	longGains := decimal.Max(p.LongTermGains, decimal.Zero)
	taxableOrdinary := agi.Sub(longGains).Sub(deduction)
	if taxableOrdinary.IsNegative() {
		taxableOrdinary = decimal.Zero
	}

	federalTax, marginal := walk(c.Tables.Ordinary[status], taxableOrdinary)
	gainsTax, _ := walkFrom(c.Tables.Gains[status], taxableOrdinary, longGains)

	niit := c.netInvestmentIncomeTax(p, status, agi)

	stateBase := agi.Sub(deduction)
	if stateBase.IsNegative() {
		stateBase = decimal.Zero
	}
	stateTax := brackets.StateRate(p.State).Mul(stateBase)

	// Single rounding point: whole dollars at the final summation only,
	// so rounding error never compounds across components.
	total := federalTax.Add(gainsTax).Add(stateTax).Add(seTax).Add(niit).Round(0)

	effective := decimal.Zero
	if gross.GreaterThan(decimal.Zero) {
		effective = total.Div(gross)
	}

	return domain.TaxPosition{
		GrossIncome:            gross,
		AGI:                    agi,
		TaxableIncome:          taxableOrdinary.Add(longGains),
		FederalTax:             federalTax,
		CapitalGainsTax:        gainsTax,
		StateTax:               stateTax,
		SelfEmploymentTax:      seTax,
		NetInvestmentIncomeTax: niit,
		TotalTax:               total,
		EffectiveRate:          effective,
		MarginalRate:           marginal,
		TakeHome:               gross.Sub(total),
		StandardDeductionUsed:  usedStandard,
		HalfSelfEmploymentTax:  halfSE,
	}
}

// netInvestmentIncomeTax applies the 3.8% surtax to the lesser of investment
// income and the AGI excess over the filing-status threshold.
func (c *Calculator) netInvestmentIncomeTax(p domain.FinancialProfile, status domain.FilingStatus, agi decimal.Decimal) decimal.Decimal {
	threshold := c.Tables.NIITThresholds[status]
	if !agi.GreaterThan(threshold) {
		return decimal.Zero
	}
	invest := decimal.Max(p.InvestmentIncome(), decimal.Zero)
	base := decimal.Min(invest, agi.Sub(threshold))
	if base.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return base.Mul(brackets.NIITRate)
}

// OrdinaryUsage exposes per-bracket utilization of the ordinary schedule for
// a given taxable income, for projection rendering.
func (c *Calculator) OrdinaryUsage(status domain.FilingStatus, taxableOrdinary decimal.Decimal) []domain.BracketUsage {
	if !status.Valid() {
		status = domain.FilingSingle
	}
	return Usage(c.Tables.Ordinary[status], taxableOrdinary)
}

// TaxableOrdinary recomputes the ordinary taxable income for a profile using
// this calculator's tables. Shared by the projector so utilization bars line
// up with the computed position.
func (c *Calculator) TaxableOrdinary(p domain.FinancialProfile) decimal.Decimal {
	pos := c.Compute(p)
	longGains := decimal.Max(p.LongTermGains, decimal.Zero)
	t := pos.TaxableIncome.Sub(longGains)
	if t.IsNegative() {
		return decimal.Zero
	}
	return t
}
