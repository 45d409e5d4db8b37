package output

import (
	"fmt"
	"strings"

	"github.com/planwise/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleFormatter renders engine results as styled console reports.
type ConsoleFormatter struct{}

// money renders a decimal as $1,234 (whole dollars).
func money(d decimal.Decimal) string {
	neg := d.IsNegative()
	s := d.Abs().Round(0).StringFixed(0)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-$" + b.String()
	}
	return "$" + b.String()
}

// pct renders a rate as 12.3%.
func pct(d decimal.Decimal) string {
	return d.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}

// Position renders one tax position.
func (cf *ConsoleFormatter) Position(pos domain.TaxPosition) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("TAX POSITION") + "\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")

	rows := []struct {
		label string
		value string
	}{
		{"Gross income", money(pos.GrossIncome)},
		{"AGI", money(pos.AGI)},
		{"Taxable income", money(pos.TaxableIncome)},
		{"Federal tax", money(pos.FederalTax)},
		{"Capital gains tax", money(pos.CapitalGainsTax)},
		{"State tax", money(pos.StateTax)},
		{"Self-employment tax", money(pos.SelfEmploymentTax)},
		{"Net investment income tax", money(pos.NetInvestmentIncomeTax)},
		{"Total tax", money(pos.TotalTax)},
		{"Effective rate", pct(pos.EffectiveRate)},
		{"Marginal rate", pct(pos.MarginalRate)},
		{"Take-home", money(pos.TakeHome)},
	}
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render(fmt.Sprintf("%-28s", row.label)), row.value))
	}
	return sb.String()
}

// Simulations renders an ordered scenario comparison, most favorable first.
func (cf *ConsoleFormatter) Simulations(results []domain.SimulationResult) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("SCENARIO COMPARISON") + "\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	for i, r := range results {
		delta := money(r.TaxDelta)
		if r.TaxDelta.IsNegative() {
			delta = savingsStyle.Render(delta)
		} else if r.TaxDelta.IsPositive() {
			delta = costStyle.Render(delta)
		}
		sb.WriteString(fmt.Sprintf("%d. %s  tax %s  take-home %s\n", i+1, r.Description, delta, money(r.TakeHomeDelta)))
		sb.WriteString("   " + r.Recommendation + "\n")
		for _, c := range r.Cascades {
			sb.WriteString(fmt.Sprintf("   - %s: %s (%s)\n", c.Name, c.Description, money(c.Impact)))
		}
		for _, w := range r.Warnings {
			sb.WriteString("   " + warningStyle.Render("! "+w) + "\n")
		}
	}
	return sb.String()
}

// AuditRisk renders the audit risk report.
func (cf *ConsoleFormatter) AuditRisk(risk domain.AuditRiskProfile) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("AUDIT RISK") + "\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Score: %d/100  Tier: %s  Probability: %s  Channel: %s\n",
		risk.Score, risk.Tier, pct(risk.AuditProbability), risk.Channel))
	if risk.PenaltyExposure.GreaterThan(decimal.Zero) {
		sb.WriteString(fmt.Sprintf("Penalty exposure: %s\n", money(risk.PenaltyExposure)))
	}
	if len(risk.Flags) > 0 {
		sb.WriteString("\n" + sectionStyle.Render("Red flags") + "\n")
		for _, f := range risk.Flags {
			sb.WriteString(fmt.Sprintf("  [%s] %s (+%d): %s\n", f.Severity, f.ID, f.Impact, f.Detail))
			sb.WriteString("       " + labelStyle.Render(f.Mitigation) + "\n")
		}
	}
	if len(risk.Gaps) > 0 {
		sb.WriteString("\n" + sectionStyle.Render("Documentation gaps") + "\n")
		for _, g := range risk.Gaps {
			sb.WriteString(fmt.Sprintf("  %s: missing %s\n", g.Category, strings.Join(g.Missing, ", ")))
		}
	}
	return sb.String()
}

// Projection renders the multi-year table.
func (cf *ConsoleFormatter) Projection(rows []domain.YearProjection) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("MULTI-YEAR PROJECTION") + "\n")
	sb.WriteString(strings.Repeat("=", 88) + "\n")
	sb.WriteString(fmt.Sprintf("%-6s %-12s %14s %14s %14s %14s %9s\n",
		"Year", "Regime", "Gross", "Federal", "Total Tax", "Take-home", "Eff."))
	sb.WriteString(strings.Repeat("-", 88) + "\n")
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%-6d %-12s %14s %14s %14s %14s %9s\n",
			r.Year, r.Regime, money(r.GrossIncome), money(r.FederalTax),
			money(r.TotalTax), money(r.TakeHome), pct(r.EffectiveRate)))
	}
	return sb.String()
}

// SafeHarbor renders the estimated-payment plan.
func (cf *ConsoleFormatter) SafeHarbor(plan domain.SafeHarborPlan, reserve domain.CashReservePlan) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("SAFE HARBOR") + "\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	basis := "90% of current-year estimate"
	if plan.UsedPriorYear {
		basis = "100% of prior-year tax"
		if plan.HighIncomePayer {
			basis = "110% of prior-year tax"
		}
	}
	sb.WriteString(fmt.Sprintf("Required annual: %s (%s)\n", money(plan.RequiredAnnual), basis))
	sb.WriteString(fmt.Sprintf("Quarterly payment: %s\n", money(plan.QuarterlyPayment)))
	sb.WriteString(fmt.Sprintf("Required to date: %s  Paid: %s\n", money(plan.RequiredToDate), money(plan.PaidToDate)))
	if plan.OnTrack {
		sb.WriteString(savingsStyle.Render("On track.") + "\n")
	} else {
		sb.WriteString(costStyle.Render(fmt.Sprintf("Behind by %s.", money(plan.Shortfall))) + "\n")
	}
	sb.WriteString(fmt.Sprintf("\nRecommended reserve: %s (%d months expenses %s + tax reserve %s)\n",
		money(reserve.Total), reserve.MonthsOfExpenses, money(reserve.ExpenseBuffer), money(reserve.TaxReserve)))
	return sb.String()
}
