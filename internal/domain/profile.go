package domain

import (
	"github.com/shopspring/decimal"
)

// FilingStatus identifies the federal filing status used for bracket and
// threshold selection.
type FilingStatus string

const (
	FilingSingle          FilingStatus = "single"
	FilingMarriedJoint    FilingStatus = "married_joint"
	FilingMarriedSeparate FilingStatus = "married_separate"
)

// Valid reports whether the filing status is one of the supported values.
func (fs FilingStatus) Valid() bool {
	switch fs {
	case FilingSingle, FilingMarriedJoint, FilingMarriedSeparate:
		return true
	}
	return false
}

// FinancialProfile is the normalized input to every engine entry point.
// Profiles are value types: callers construct a new profile rather than
// mutating one in place, and the engine only ever works on copies.
type FinancialProfile struct {
	OrdinaryIncome          decimal.Decimal `json:"ordinaryIncome" yaml:"ordinary_income"`
	SelfEmploymentIncome    decimal.Decimal `json:"selfEmploymentIncome" yaml:"self_employment_income"`
	LongTermGains           decimal.Decimal `json:"longTermGains" yaml:"long_term_gains"`
	ShortTermGains          decimal.Decimal `json:"shortTermGains" yaml:"short_term_gains"`
	ItemizedDeductions      decimal.Decimal `json:"itemizedDeductions" yaml:"itemized_deductions"`
	RetirementContributions decimal.Decimal `json:"retirementContributions" yaml:"retirement_contributions"`
	FilingStatus            FilingStatus    `json:"filingStatus" yaml:"filing_status"`
	State                   string          `json:"state" yaml:"state"`
	Age                     int             `json:"age" yaml:"age"`
	Dependents              int             `json:"dependents" yaml:"dependents"`

	// Business holds the detail fields consumed by the audit risk scorer.
	// The scorer shares the profile shape only; nothing here feeds the tax
	// position calculation.
	Business BusinessDetail `json:"business" yaml:"business"`
}

// BusinessDetail carries the Schedule-C style detail the audit rule set
// evaluates. Zero values mean "not applicable".
type BusinessDetail struct {
	ScheduleCExpenses    decimal.Decimal   `json:"scheduleCExpenses" yaml:"schedule_c_expenses"`
	HomeOffice           bool              `json:"homeOffice" yaml:"home_office"`
	CharitableDonations  decimal.Decimal   `json:"charitableDonations" yaml:"charitable_donations"`
	CryptoTransactions   int               `json:"cryptoTransactions" yaml:"crypto_transactions"`
	CashIntensive        bool              `json:"cashIntensive" yaml:"cash_intensive"`
	MealsDeduction       decimal.Decimal   `json:"mealsDeduction" yaml:"meals_deduction"`
	VehicleDeduction     decimal.Decimal   `json:"vehicleDeduction" yaml:"vehicle_deduction"`
	HasMileageLog        bool              `json:"hasMileageLog" yaml:"has_mileage_log"`
	ConsecutiveLossYears int               `json:"consecutiveLossYears" yaml:"consecutive_loss_years"`
	SCorpSalary          decimal.Decimal   `json:"sCorpSalary" yaml:"s_corp_salary"`
	SCorpDistributions   decimal.Decimal   `json:"sCorpDistributions" yaml:"s_corp_distributions"`
	PayerReportedIncome  decimal.Decimal   `json:"payerReportedIncome" yaml:"payer_reported_income"`
	DeductionLines       []decimal.Decimal `json:"deductionLines" yaml:"deduction_lines"`
}

// GrossIncome returns the sum of all income components before deductions.
func (fp FinancialProfile) GrossIncome() decimal.Decimal {
	return fp.OrdinaryIncome.
		Add(fp.SelfEmploymentIncome).
		Add(fp.LongTermGains).
		Add(fp.ShortTermGains)
}

// InvestmentIncome returns the income subject to the net investment income
// tax: capital gains of either holding period.
func (fp FinancialProfile) InvestmentIncome() decimal.Decimal {
	return fp.LongTermGains.Add(fp.ShortTermGains)
}

// Copy returns a deep copy of the profile. Decimal fields are immutable, so
// only the deduction line slice needs a fresh backing array.
func (fp FinancialProfile) Copy() FinancialProfile {
	out := fp
	if fp.Business.DeductionLines != nil {
		out.Business.DeductionLines = make([]decimal.Decimal, len(fp.Business.DeductionLines))
		copy(out.Business.DeductionLines, fp.Business.DeductionLines)
	}
	return out
}
