package audit

import (
	"fmt"

	"github.com/planwise/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Rule is one independent audit trigger: a pure predicate plus its score
// contribution, severity and remediation data. The rule set is a flat list
// evaluated once per call, never a chain of branches, so rules stay
// individually testable and easy to extend.
type Rule struct {
	ID           string
	Category     string
	Mitigation   string
	RequiredDocs []string
	Evaluate     func(p domain.FinancialProfile) (Finding, bool)
}

// Finding is the evidence a triggered rule contributes to the composite.
type Finding struct {
	Severity domain.Severity
	Impact   int
	Detail   string
	Exposure decimal.Decimal
}

var (
	halfMillion = decimal.NewFromInt(500000)
	oneMillion  = decimal.NewFromInt(1000000)
	thousand    = decimal.NewFromInt(1000)
)

// ruleSet is the fixed, ordered trigger list. Order determines flag output
// order, not weighting; every rule decides independently.
var ruleSet = []Rule{
	{
		ID:           "high_income",
		Category:     "income",
		Mitigation:   "High incomes are audited more often regardless of behavior; keep complete records for every line.",
		RequiredDocs: []string{"w2_1099_forms", "brokerage_statements", "k1_schedules"},
		Evaluate: func(p domain.FinancialProfile) (Finding, bool) {
			gross := p.GrossIncome()
			switch {
			case gross.GreaterThan(oneMillion):
				return Finding{Severity: domain.SeverityCritical, Impact: 25,
					Detail: "Gross income above $1M lands in the most-examined DIF stratum"}, true
			case gross.GreaterThan(halfMillion):
				return Finding{Severity: domain.SeverityHigh, Impact: 15,
					Detail: "Gross income above $500k raises the statistical audit baseline"}, true
			}
			return Finding{}, false
		},
	},
	{
		ID:           "schedule_c_expense_ratio",
		Category:     "business_expenses",
		Mitigation:   "Keep contemporaneous receipts and a business bank account that reconciles to the return.",
		RequiredDocs: []string{"expense_receipts", "business_bank_statements"},
		Evaluate: func(p domain.FinancialProfile) (Finding, bool) {
			grossReceipts := p.SelfEmploymentIncome.Add(p.Business.ScheduleCExpenses)
			if grossReceipts.LessThanOrEqual(decimal.Zero) || p.Business.ScheduleCExpenses.LessThanOrEqual(decimal.Zero) {
				return Finding{}, false
			}
			ratio := p.Business.ScheduleCExpenses.Div(grossReceipts)
			switch {
			case ratio.GreaterThan(decimal.NewFromFloat(0.80)):
				return Finding{Severity: domain.SeverityHigh, Impact: 18,
					Detail:   fmt.Sprintf("Expenses are %s%% of gross receipts", ratio.Mul(decimal.NewFromInt(100)).StringFixed(0)),
					Exposure: p.Business.ScheduleCExpenses}, true
			case ratio.GreaterThan(decimal.NewFromFloat(0.60)):
				return Finding{Severity: domain.SeverityMedium, Impact: 12,
					Detail:   fmt.Sprintf("Expenses are %s%% of gross receipts", ratio.Mul(decimal.NewFromInt(100)).StringFixed(0)),
					Exposure: p.Business.ScheduleCExpenses}, true
			}
			return Finding{}, false
		},
	},
	{
		ID:           "home_office",
		Category:     "home_office",
		Mitigation:   "Document exclusive business use: a floor plan with measurements and dated photos.",
		RequiredDocs: []string{"floor_plan", "utility_bills", "workspace_photos"},
		Evaluate: func(p domain.FinancialProfile) (Finding, bool) {
			if p.Business.HomeOffice && p.SelfEmploymentIncome.GreaterThan(decimal.Zero) {
				return Finding{Severity: domain.SeverityLow, Impact: 6,
					Detail: "Home office deductions are routinely verified for exclusive use"}, true
			}
			return Finding{}, false
		},
	},
	{
		ID:           "charitable_ratio",
		Category:     "charitable",
		Mitigation:   "Keep acknowledgment letters for every gift and a qualified appraisal for non-cash gifts over $5,000.",
		RequiredDocs: []string{"donation_receipts", "acknowledgment_letters", "appraisals"},
		Evaluate: func(p domain.FinancialProfile) (Finding, bool) {
			gross := p.GrossIncome()
			donations := p.Business.CharitableDonations
			if gross.LessThanOrEqual(decimal.Zero) || donations.LessThanOrEqual(decimal.Zero) {
				return Finding{}, false
			}
			ratio := donations.Div(gross)
			switch {
			case ratio.GreaterThan(decimal.NewFromFloat(0.20)):
				return Finding{Severity: domain.SeverityHigh, Impact: 15,
					Detail:   "Charitable giving above 20% of income is far outside the norm for this bracket",
					Exposure: donations}, true
			case ratio.GreaterThan(decimal.NewFromFloat(0.10)):
				return Finding{Severity: domain.SeverityMedium, Impact: 10,
					Detail:   "Charitable giving above 10% of income exceeds the statistical norm",
					Exposure: donations}, true
			}
			return Finding{}, false
		},
	},
	{
		ID:           "crypto_volume",
		Category:     "crypto",
		Mitigation:   "Export complete transaction histories from every exchange and reconcile cost basis per lot.",
		RequiredDocs: []string{"exchange_statements", "cost_basis_records", "wallet_addresses"},
		Evaluate: func(p domain.FinancialProfile) (Finding, bool) {
			switch {
			case p.Business.CryptoTransactions > 200:
				return Finding{Severity: domain.SeverityHigh, Impact: 18,
					Detail: fmt.Sprintf("%d crypto transactions; exchange 1099-DA matching applies", p.Business.CryptoTransactions)}, true
			case p.Business.CryptoTransactions > 50:
				return Finding{Severity: domain.SeverityMedium, Impact: 12,
					Detail: fmt.Sprintf("%d crypto transactions require per-lot reporting", p.Business.CryptoTransactions)}, true
			}
			return Finding{}, false
		},
	},
	{
		ID:           "cash_intensive",
		Category:     "business_income",
		Mitigation:   "Deposit all receipts and keep a daily cash log; unreported-income audits reconstruct deposits.",
		RequiredDocs: []string{"daily_cash_log", "deposit_records", "pos_reports"},
		Evaluate: func(p domain.FinancialProfile) (Finding, bool) {
			if p.Business.CashIntensive {
				return Finding{Severity: domain.SeverityMedium, Impact: 10,
					Detail: "Cash-intensive businesses face elevated unreported-income scrutiny"}, true
			}
			return Finding{}, false
		},
	},
	{
		ID:           "meals_deduction",
		Category:     "business_expenses",
		Mitigation:   "Record the business purpose and attendees on every meal receipt at the time of the meal.",
		RequiredDocs: []string{"meal_receipts", "business_purpose_log"},
		Evaluate: func(p domain.FinancialProfile) (Finding, bool) {
			if p.Business.MealsDeduction.GreaterThan(decimal.NewFromInt(8000)) {
				return Finding{Severity: domain.SeverityMedium, Impact: 8,
					Detail:   "Meals deduction is large relative to typical Schedule C filings",
					Exposure: p.Business.MealsDeduction}, true
			}
			return Finding{}, false
		},
	},
	{
		ID:           "vehicle_no_log",
		Category:     "vehicle",
		Mitigation:   "Start a contemporaneous mileage log now; reconstructed logs rarely survive examination.",
		RequiredDocs: []string{"mileage_log", "vehicle_purchase_records", "insurance_statements"},
		Evaluate: func(p domain.FinancialProfile) (Finding, bool) {
			if p.Business.VehicleDeduction.GreaterThan(decimal.Zero) && !p.Business.HasMileageLog {
				return Finding{Severity: domain.SeverityHigh, Impact: 12,
					Detail:   "Vehicle deduction claimed without a mileage log",
					Exposure: p.Business.VehicleDeduction}, true
			}
			return Finding{}, false
		},
	},
	{
		ID:           "multi_year_losses",
		Category:     "business_income",
		Mitigation:   "Document profit motive: business plan, marketing spend, and time records rebut hobby-loss treatment.",
		RequiredDocs: []string{"business_plan", "profit_motive_records"},
		Evaluate: func(p domain.FinancialProfile) (Finding, bool) {
			if p.Business.ConsecutiveLossYears >= 3 {
				return Finding{Severity: domain.SeverityHigh, Impact: 15,
					Detail: fmt.Sprintf("%d consecutive loss years invites hobby-loss reclassification", p.Business.ConsecutiveLossYears)}, true
			}
			return Finding{}, false
		},
	},
	{
		ID:           "scorp_comp_ratio",
		Category:     "compensation",
		Mitigation:   "Benchmark the salary against industry compensation surveys and document the comparison.",
		RequiredDocs: []string{"payroll_records", "compensation_study"},
		Evaluate: func(p domain.FinancialProfile) (Finding, bool) {
			total := p.Business.SCorpSalary.Add(p.Business.SCorpDistributions)
			if p.Business.SCorpDistributions.LessThanOrEqual(decimal.Zero) || total.LessThanOrEqual(decimal.Zero) {
				return Finding{}, false
			}
			if p.Business.SCorpSalary.LessThan(total.Mul(decimal.NewFromFloat(0.35))) {
				return Finding{Severity: domain.SeverityHigh, Impact: 14,
					Detail:   "S-corp salary is under 35% of total compensation",
					Exposure: p.Business.SCorpDistributions}, true
			}
			return Finding{}, false
		},
	},
	{
		ID:           "round_numbers",
		Category:     "deductions",
		Mitigation:   "Report actual amounts from records; strings of round numbers read as estimates.",
		RequiredDocs: []string{"expense_receipts"},
		Evaluate: func(p domain.FinancialProfile) (Finding, bool) {
			round := 0
			for _, line := range p.Business.DeductionLines {
				if line.GreaterThanOrEqual(thousand) && line.Mod(thousand).IsZero() {
					round++
				}
			}
			if round >= 3 {
				return Finding{Severity: domain.SeverityLow, Impact: 7,
					Detail: fmt.Sprintf("%d deduction lines are exact multiples of $1,000", round)}, true
			}
			return Finding{}, false
		},
	},
	{
		ID:           "income_mismatch",
		Category:     "income",
		Mitigation:   "Reconcile every 1099 and W-2 against the return before filing; matching is automated.",
		RequiredDocs: []string{"w2_1099_forms", "payer_reconciliation"},
		Evaluate: func(p domain.FinancialProfile) (Finding, bool) {
			reported := p.OrdinaryIncome.Add(p.SelfEmploymentIncome)
			if p.Business.PayerReportedIncome.GreaterThan(decimal.Zero) && reported.LessThan(p.Business.PayerReportedIncome) {
				gap := p.Business.PayerReportedIncome.Sub(reported)
				return Finding{Severity: domain.SeverityCritical, Impact: 20,
					Detail:   fmt.Sprintf("Return shows %s less income than payers reported", gap.StringFixed(0)),
					Exposure: gap}, true
			}
			return Finding{}, false
		},
	},
}

// Rules returns the rule set for enumeration in docs and tests.
func Rules() []Rule {
	return ruleSet
}
