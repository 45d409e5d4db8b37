package simulate

import (
	"fmt"

	"github.com/planwise/taxgo/internal/brackets"
	"github.com/planwise/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Planning constants used by the variant warnings and cascades.
var (
	electiveDeferralLimit = decimal.NewFromInt(23500)
	catchUpContribution   = decimal.NewFromInt(7500)
	sCorpComplianceCost   = decimal.NewFromInt(1500)
	reasonableCompFloor   = decimal.NewFromFloat(0.35)
	cashDonationAGICap    = decimal.NewFromFloat(0.60)
	appreciatedAGICap     = decimal.NewFromFloat(0.30)
	macrsFirstYear        = decimal.NewFromFloat(0.20)
)

// AssetClass identifies what is being sold in a SellAsset modification.
type AssetClass string

const (
	AssetCrypto AssetClass = "crypto"
	AssetStock  AssetClass = "stock"
)

// SellAsset realizes a gain or loss on a crypto or stock position.
type SellAsset struct {
	Asset     AssetClass
	Amount    decimal.Decimal // sale proceeds
	CostBasis decimal.Decimal
	LongTerm  bool
}

func (m SellAsset) Name() string { return "sell_asset" }

func (m SellAsset) Description() string {
	holding := "short-term"
	if m.LongTerm {
		holding = "long-term"
	}
	return fmt.Sprintf("Sell %s %s position for %s (basis %s)", holding, m.Asset, m.Amount.StringFixed(0), m.CostBasis.StringFixed(0))
}

func (m SellAsset) Validate() error {
	if m.Asset != AssetCrypto && m.Asset != AssetStock {
		return newModificationError(m.Name(), fmt.Sprintf("unknown asset class %q", m.Asset))
	}
	if m.Amount.LessThanOrEqual(decimal.Zero) {
		return newModificationError(m.Name(), "sale amount must be positive")
	}
	if m.CostBasis.IsNegative() {
		return newModificationError(m.Name(), "cost basis cannot be negative")
	}
	return nil
}

func (m SellAsset) Apply(p domain.FinancialProfile) domain.FinancialProfile {
	out := p.Copy()
	gain := m.Amount.Sub(m.CostBasis)
	if m.LongTerm {
		out.LongTermGains = out.LongTermGains.Add(gain)
	} else {
		out.ShortTermGains = out.ShortTermGains.Add(gain)
	}
	if m.Asset == AssetCrypto {
		out.Business.CryptoTransactions++
	}
	return out
}

func (m SellAsset) Effects(baseline domain.FinancialProfile, before, after domain.TaxPosition) ([]domain.CascadeEffect, []string) {
	var cascades []domain.CascadeEffect
	var warnings []string
	niitDelta := after.NetInvestmentIncomeTax.Sub(before.NetInvestmentIncomeTax)
	if niitDelta.GreaterThan(decimal.Zero) {
		cascades = append(cascades, domain.CascadeEffect{
			Name:        "niit_exposure",
			Description: "Sale pushes investment income over the net investment income tax threshold",
			Impact:      niitDelta.Neg(),
			Direction:   domain.CascadeNegative,
		})
	}
	if !m.LongTerm && m.Amount.GreaterThan(m.CostBasis) {
		warnings = append(warnings, "Short-term gains are taxed at ordinary rates; holding past one year would qualify for capital gains rates.")
	}
	if m.Asset == AssetCrypto {
		warnings = append(warnings, "Crypto disposals must be answered on the digital-asset question and reported per lot.")
	}
	return cascades, warnings
}

// RetirementContribution adds a deductible retirement plan contribution.
type RetirementContribution struct {
	Amount decimal.Decimal
}

func (m RetirementContribution) Name() string { return "retirement_contribution" }

func (m RetirementContribution) Description() string {
	return fmt.Sprintf("Contribute %s to a pre-tax retirement account", m.Amount.StringFixed(0))
}

func (m RetirementContribution) Validate() error {
	if m.Amount.LessThanOrEqual(decimal.Zero) {
		return newModificationError(m.Name(), "contribution must be positive")
	}
	return nil
}

func (m RetirementContribution) Apply(p domain.FinancialProfile) domain.FinancialProfile {
	out := p.Copy()
	out.RetirementContributions = out.RetirementContributions.Add(m.Amount)
	return out
}

func (m RetirementContribution) Effects(baseline domain.FinancialProfile, before, after domain.TaxPosition) ([]domain.CascadeEffect, []string) {
	var warnings []string
	limit := electiveDeferralLimit
	if baseline.Age >= 50 {
		limit = limit.Add(catchUpContribution)
	}
	if baseline.RetirementContributions.Add(m.Amount).GreaterThan(limit) {
		warnings = append(warnings, fmt.Sprintf("Total contributions exceed the %s elective deferral limit; the excess may not be deductible.", limit.StringFixed(0)))
	}
	savings := before.TotalTax.Sub(after.TotalTax)
	cascades := []domain.CascadeEffect{{
		Name:        "deferred_growth",
		Description: "Contribution grows tax-deferred until withdrawal",
		Impact:      savings,
		Direction:   domain.CascadePositive,
	}}
	return cascades, warnings
}

// RelocateState changes the state of residence.
type RelocateState struct {
	NewState string
}

func (m RelocateState) Name() string { return "relocate_state" }

func (m RelocateState) Description() string {
	return fmt.Sprintf("Relocate to %s", m.NewState)
}

func (m RelocateState) Validate() error {
	if m.NewState == "" {
		return newModificationError(m.Name(), "destination state is required")
	}
	return nil
}

func (m RelocateState) Apply(p domain.FinancialProfile) domain.FinancialProfile {
	out := p.Copy()
	out.State = m.NewState
	return out
}

func (m RelocateState) Effects(baseline domain.FinancialProfile, before, after domain.TaxPosition) ([]domain.CascadeEffect, []string) {
	var warnings []string
	if !brackets.KnownState(m.NewState) {
		warnings = append(warnings, fmt.Sprintf("No rate table for state %q; state tax treated as zero.", m.NewState))
	}
	stateDelta := after.StateTax.Sub(before.StateTax)
	direction := domain.CascadeNeutral
	if stateDelta.IsNegative() {
		direction = domain.CascadePositive
	} else if stateDelta.IsPositive() {
		direction = domain.CascadeNegative
	}
	cascades := []domain.CascadeEffect{{
		Name:        "state_tax_shift",
		Description: fmt.Sprintf("Annual state tax changes by %s after relocating", stateDelta.StringFixed(0)),
		Impact:      stateDelta.Neg(),
		Direction:   direction,
	}}
	if stateDelta.IsNegative() {
		warnings = append(warnings, "Part-year residency rules apply in the move year; the full savings arrive the first complete year.")
	}
	return cascades, warnings
}

// EntityConversion converts a sole proprietorship to an S corporation with a
// declared reasonable salary; the remainder flows through as distributions
// free of self-employment tax.
type EntityConversion struct {
	Salary decimal.Decimal
}

func (m EntityConversion) Name() string { return "entity_conversion" }

func (m EntityConversion) Description() string {
	return fmt.Sprintf("Convert to S corporation with %s salary", m.Salary.StringFixed(0))
}

func (m EntityConversion) Validate() error {
	if m.Salary.LessThanOrEqual(decimal.Zero) {
		return newModificationError(m.Name(), "salary must be positive")
	}
	return nil
}

func (m EntityConversion) Apply(p domain.FinancialProfile) domain.FinancialProfile {
	out := p.Copy()
	net := p.SelfEmploymentIncome
	salary := decimal.Min(m.Salary, net)
	// Salary and distributions both land as ordinary income; only the old
	// SE-tax treatment disappears.
	out.OrdinaryIncome = out.OrdinaryIncome.Add(net)
	out.SelfEmploymentIncome = decimal.Zero
	out.Business.SCorpSalary = salary
	out.Business.SCorpDistributions = decimal.Max(net.Sub(salary), decimal.Zero)
	return out
}

func (m EntityConversion) Effects(baseline domain.FinancialProfile, before, after domain.TaxPosition) ([]domain.CascadeEffect, []string) {
	var warnings []string
	seSavings := before.SelfEmploymentTax.Sub(after.SelfEmploymentTax)
	cascades := []domain.CascadeEffect{
		{
			Name:        "se_tax_savings",
			Description: "Distributions above the salary escape self-employment tax",
			Impact:      seSavings,
			Direction:   domain.CascadePositive,
		},
		{
			Name:        "compliance_cost",
			Description: "Payroll filings and a separate corporate return add recurring cost",
			Impact:      sCorpComplianceCost.Neg(),
			Direction:   domain.CascadeNegative,
		},
	}
	net := baseline.SelfEmploymentIncome
	if net.GreaterThan(decimal.Zero) && m.Salary.LessThan(net.Mul(reasonableCompFloor)) {
		warnings = append(warnings, "Proposed salary is below 35% of net income; the IRS may recharacterize distributions as wages.")
	}
	return cascades, warnings
}

// DepreciationMethod selects how an equipment purchase is written off.
type DepreciationMethod string

const (
	DepreciationSection179 DepreciationMethod = "section179"
	DepreciationBonus      DepreciationMethod = "bonus"
	DepreciationStandard   DepreciationMethod = "standard"
)

// EquipmentPurchase deducts business equipment against self-employment
// income under the chosen method.
type EquipmentPurchase struct {
	Amount decimal.Decimal
	Method DepreciationMethod
}

func (m EquipmentPurchase) Name() string { return "equipment_purchase" }

func (m EquipmentPurchase) Description() string {
	return fmt.Sprintf("Purchase %s of equipment (%s)", m.Amount.StringFixed(0), m.Method)
}

func (m EquipmentPurchase) Validate() error {
	switch m.Method {
	case DepreciationSection179, DepreciationBonus, DepreciationStandard:
	default:
		return newModificationError(m.Name(), fmt.Sprintf("unknown depreciation method %q", m.Method))
	}
	if m.Amount.LessThanOrEqual(decimal.Zero) {
		return newModificationError(m.Name(), "purchase amount must be positive")
	}
	return nil
}

func (m EquipmentPurchase) firstYearDeduction() decimal.Decimal {
	if m.Method == DepreciationStandard {
		return m.Amount.Mul(macrsFirstYear)
	}
	return m.Amount
}

func (m EquipmentPurchase) Apply(p domain.FinancialProfile) domain.FinancialProfile {
	out := p.Copy()
	out.SelfEmploymentIncome = out.SelfEmploymentIncome.Sub(m.firstYearDeduction())
	out.Business.ScheduleCExpenses = out.Business.ScheduleCExpenses.Add(m.firstYearDeduction())
	return out
}

func (m EquipmentPurchase) Effects(baseline domain.FinancialProfile, before, after domain.TaxPosition) ([]domain.CascadeEffect, []string) {
	var cascades []domain.CascadeEffect
	var warnings []string
	if m.Method == DepreciationStandard {
		cascades = append(cascades, domain.CascadeEffect{
			Name:        "remaining_depreciation",
			Description: "Undeducted basis depreciates over the remaining recovery period",
			Impact:      m.Amount.Sub(m.firstYearDeduction()),
			Direction:   domain.CascadeNeutral,
		})
	}
	if m.Method == DepreciationSection179 && m.Amount.GreaterThan(baseline.SelfEmploymentIncome) {
		warnings = append(warnings, "Section 179 is limited to business income; the excess carries forward.")
	}
	return cascades, warnings
}

// HireContractor adds a deductible contractor expense to the business.
type HireContractor struct {
	AnnualCost decimal.Decimal
}

func (m HireContractor) Name() string { return "hire_contractor" }

func (m HireContractor) Description() string {
	return fmt.Sprintf("Hire a contractor at %s per year", m.AnnualCost.StringFixed(0))
}

func (m HireContractor) Validate() error {
	if m.AnnualCost.LessThanOrEqual(decimal.Zero) {
		return newModificationError(m.Name(), "annual cost must be positive")
	}
	return nil
}

func (m HireContractor) Apply(p domain.FinancialProfile) domain.FinancialProfile {
	out := p.Copy()
	out.SelfEmploymentIncome = out.SelfEmploymentIncome.Sub(m.AnnualCost)
	out.Business.ScheduleCExpenses = out.Business.ScheduleCExpenses.Add(m.AnnualCost)
	return out
}

func (m HireContractor) Effects(baseline domain.FinancialProfile, before, after domain.TaxPosition) ([]domain.CascadeEffect, []string) {
	cascades := []domain.CascadeEffect{{
		Name:        "information_reporting",
		Description: "Payments of $600 or more require a 1099-NEC filing",
		Impact:      decimal.Zero,
		Direction:   domain.CascadeNeutral,
	}}
	var warnings []string
	if m.AnnualCost.GreaterThan(baseline.SelfEmploymentIncome) {
		warnings = append(warnings, "Contractor cost exceeds current net business income; this creates a loss year.")
	}
	return cascades, warnings
}

// IncomeType classifies additional income for the AdditionalIncome variant.
type IncomeType string

const (
	IncomeOrdinary       IncomeType = "ordinary"
	IncomeSelfEmployment IncomeType = "self_employment"
	IncomeShortTermGain  IncomeType = "short_term_gain"
	IncomeLongTermGain   IncomeType = "long_term_gain"
)

// AdditionalIncome adds income of a given type to the profile.
type AdditionalIncome struct {
	Amount decimal.Decimal
	Type   IncomeType
}

func (m AdditionalIncome) Name() string { return "additional_income" }

func (m AdditionalIncome) Description() string {
	return fmt.Sprintf("Add %s of %s income", m.Amount.StringFixed(0), m.Type)
}

func (m AdditionalIncome) Validate() error {
	switch m.Type {
	case IncomeOrdinary, IncomeSelfEmployment, IncomeShortTermGain, IncomeLongTermGain:
	default:
		return newModificationError(m.Name(), fmt.Sprintf("unknown income type %q", m.Type))
	}
	if m.Amount.LessThanOrEqual(decimal.Zero) {
		return newModificationError(m.Name(), "amount must be positive")
	}
	return nil
}

func (m AdditionalIncome) Apply(p domain.FinancialProfile) domain.FinancialProfile {
	out := p.Copy()
	switch m.Type {
	case IncomeOrdinary:
		out.OrdinaryIncome = out.OrdinaryIncome.Add(m.Amount)
	case IncomeSelfEmployment:
		out.SelfEmploymentIncome = out.SelfEmploymentIncome.Add(m.Amount)
	case IncomeShortTermGain:
		out.ShortTermGains = out.ShortTermGains.Add(m.Amount)
	case IncomeLongTermGain:
		out.LongTermGains = out.LongTermGains.Add(m.Amount)
	}
	return out
}

func (m AdditionalIncome) Effects(baseline domain.FinancialProfile, before, after domain.TaxPosition) ([]domain.CascadeEffect, []string) {
	var cascades []domain.CascadeEffect
	var warnings []string
	if m.Type == IncomeSelfEmployment {
		seDelta := after.SelfEmploymentTax.Sub(before.SelfEmploymentTax)
		cascades = append(cascades, domain.CascadeEffect{
			Name:        "se_tax_increase",
			Description: "Self-employment income carries the full 15.3% SECA tax",
			Impact:      seDelta.Neg(),
			Direction:   domain.CascadeNegative,
		})
	}
	if after.TotalTax.GreaterThan(before.TotalTax) {
		warnings = append(warnings, "Quarterly estimated payments should rise to cover the added liability.")
	}
	return cascades, warnings
}

// CharitableDonation increases itemized deductions by a cash or appreciated
// asset donation.
type CharitableDonation struct {
	Amount      decimal.Decimal
	Appreciated bool
}

func (m CharitableDonation) Name() string { return "charitable_donation" }

func (m CharitableDonation) Description() string {
	kind := "cash"
	if m.Appreciated {
		kind = "appreciated assets"
	}
	return fmt.Sprintf("Donate %s in %s", m.Amount.StringFixed(0), kind)
}

func (m CharitableDonation) Validate() error {
	if m.Amount.LessThanOrEqual(decimal.Zero) {
		return newModificationError(m.Name(), "donation must be positive")
	}
	return nil
}

func (m CharitableDonation) Apply(p domain.FinancialProfile) domain.FinancialProfile {
	out := p.Copy()
	out.ItemizedDeductions = out.ItemizedDeductions.Add(m.Amount)
	out.Business.CharitableDonations = out.Business.CharitableDonations.Add(m.Amount)
	return out
}

func (m CharitableDonation) Effects(baseline domain.FinancialProfile, before, after domain.TaxPosition) ([]domain.CascadeEffect, []string) {
	var cascades []domain.CascadeEffect
	var warnings []string
	cap := cashDonationAGICap
	if m.Appreciated {
		cap = appreciatedAGICap
		cascades = append(cascades, domain.CascadeEffect{
			Name:        "embedded_gain_avoided",
			Description: "Donating the asset instead of selling it skips tax on the embedded gain",
			Impact:      decimal.Zero,
			Direction:   domain.CascadePositive,
		})
	}
	if before.AGI.GreaterThan(decimal.Zero) && m.Amount.GreaterThan(before.AGI.Mul(cap)) {
		warnings = append(warnings, fmt.Sprintf("Donation exceeds the %s%% AGI limit; the excess carries forward up to five years.", cap.Mul(decimal.NewFromInt(100)).StringFixed(0)))
	}
	if after.StandardDeductionUsed {
		warnings = append(warnings, "Itemized deductions still trail the standard deduction; the donation produces no current-year benefit.")
	}
	return cascades, warnings
}

// RothConversion moves pre-tax retirement money to Roth, recognizing the
// converted amount as ordinary income now.
type RothConversion struct {
	Amount decimal.Decimal
}

func (m RothConversion) Name() string { return "roth_conversion" }

func (m RothConversion) Description() string {
	return fmt.Sprintf("Convert %s from traditional to Roth", m.Amount.StringFixed(0))
}

func (m RothConversion) Validate() error {
	if m.Amount.LessThanOrEqual(decimal.Zero) {
		return newModificationError(m.Name(), "conversion amount must be positive")
	}
	return nil
}

func (m RothConversion) Apply(p domain.FinancialProfile) domain.FinancialProfile {
	out := p.Copy()
	out.OrdinaryIncome = out.OrdinaryIncome.Add(m.Amount)
	return out
}

func (m RothConversion) Effects(baseline domain.FinancialProfile, before, after domain.TaxPosition) ([]domain.CascadeEffect, []string) {
	cascades := []domain.CascadeEffect{{
		Name:        "tax_free_growth",
		Description: "Converted balance grows and distributes tax-free from here on",
		Impact:      decimal.Zero,
		Direction:   domain.CascadePositive,
	}}
	var warnings []string
	if after.MarginalRate.GreaterThan(before.MarginalRate) {
		warnings = append(warnings, fmt.Sprintf("Conversion pushes the marginal rate from %s%% to %s%%; a smaller conversion would stay in the current bracket.",
			before.MarginalRate.Mul(decimal.NewFromInt(100)).StringFixed(0),
			after.MarginalRate.Mul(decimal.NewFromInt(100)).StringFixed(0)))
	}
	return cascades, warnings
}

// EntityType classifies the source entity for TakeDistribution.
type EntityType string

const (
	EntitySCorp       EntityType = "s_corp"
	EntityPartnership EntityType = "partnership"
	EntitySoleProp    EntityType = "sole_prop"
)

// TakeDistribution draws money out of a business entity; the tax character
// depends on the entity type.
type TakeDistribution struct {
	Amount decimal.Decimal
	Entity EntityType
}

func (m TakeDistribution) Name() string { return "take_distribution" }

func (m TakeDistribution) Description() string {
	return fmt.Sprintf("Take a %s distribution from a %s", m.Amount.StringFixed(0), m.Entity)
}

func (m TakeDistribution) Validate() error {
	switch m.Entity {
	case EntitySCorp, EntityPartnership, EntitySoleProp:
	default:
		return newModificationError(m.Name(), fmt.Sprintf("unknown entity type %q", m.Entity))
	}
	if m.Amount.LessThanOrEqual(decimal.Zero) {
		return newModificationError(m.Name(), "distribution must be positive")
	}
	return nil
}

func (m TakeDistribution) Apply(p domain.FinancialProfile) domain.FinancialProfile {
	out := p.Copy()
	switch m.Entity {
	case EntitySCorp:
		// S-corp distributions pass through as ordinary income with no SECA.
		out.OrdinaryIncome = out.OrdinaryIncome.Add(m.Amount)
		out.Business.SCorpDistributions = out.Business.SCorpDistributions.Add(m.Amount)
	default:
		// Partnership and sole-prop draws remain subject to SE tax.
		out.SelfEmploymentIncome = out.SelfEmploymentIncome.Add(m.Amount)
	}
	return out
}

func (m TakeDistribution) Effects(baseline domain.FinancialProfile, before, after domain.TaxPosition) ([]domain.CascadeEffect, []string) {
	var cascades []domain.CascadeEffect
	var warnings []string
	if m.Entity == EntitySCorp {
		warnings = append(warnings, "Distributions above stock basis are taxed as capital gains; confirm basis before drawing.")
		if baseline.Business.SCorpSalary.IsZero() {
			warnings = append(warnings, "Taking distributions with no salary on record invites reasonable-compensation scrutiny.")
		}
	} else {
		seDelta := after.SelfEmploymentTax.Sub(before.SelfEmploymentTax)
		if seDelta.GreaterThan(decimal.Zero) {
			cascades = append(cascades, domain.CascadeEffect{
				Name:        "se_tax_increase",
				Description: "The draw is subject to self-employment tax",
				Impact:      seDelta.Neg(),
				Direction:   domain.CascadeNegative,
			})
		}
	}
	return cascades, warnings
}
