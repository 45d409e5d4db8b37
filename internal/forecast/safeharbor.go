package forecast

import (
	"time"

	"github.com/planwise/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Safe harbor constants. The 110% prior-year requirement kicks in above
// $150,000 of prior-year AGI.
var (
	highIncomeAGIThreshold = decimal.NewFromInt(150000)
	priorYearFactor        = decimal.NewFromFloat(1.00)
	priorYearFactorHigh    = decimal.NewFromFloat(1.10)
	currentYearFactor      = decimal.NewFromFloat(0.90)
	onTrackFactor          = decimal.NewFromFloat(0.95)
	four                   = decimal.NewFromInt(4)
)

// SafeHarbor computes the quarterly estimated-payment schedule that avoids
// an underpayment penalty: the lesser of the prior-year safe harbor (100%,
// or 110% for high earners) and 90% of the current-year estimate, split
// across four payments. "On track" means cumulative payments cover at least
// 95% of what was due by the evaluation date.
func SafeHarbor(input domain.SafeHarborInput) domain.SafeHarborPlan {
	highIncome := input.PriorYearAGI.GreaterThan(highIncomeAGIThreshold)

	factor := priorYearFactor
	if highIncome {
		factor = priorYearFactorHigh
	}
	priorHarbor := decimal.Max(input.PriorYearTax, decimal.Zero).Mul(factor)
	currentHarbor := decimal.Max(input.CurrentYearEstimate, decimal.Zero).Mul(currentYearFactor)

	required := priorHarbor
	usedPrior := true
	if input.CurrentYearEstimate.GreaterThan(decimal.Zero) && currentHarbor.LessThan(priorHarbor) {
		required = currentHarbor
		usedPrior = false
	}

	quarterly := required.Div(four)
	dueQuarters := quartersDue(input.AsOf)
	requiredToDate := quarterly.Mul(decimal.NewFromInt(int64(dueQuarters)))
	paid := decimal.Max(input.PaidToDate, decimal.Zero)
	shortfall := decimal.Max(requiredToDate.Sub(paid), decimal.Zero)

	return domain.SafeHarborPlan{
		RequiredAnnual:   required,
		QuarterlyPayment: quarterly,
		RequiredToDate:   requiredToDate,
		PaidToDate:       paid,
		Shortfall:        shortfall,
		OnTrack:          paid.GreaterThanOrEqual(requiredToDate.Mul(onTrackFactor)),
		UsedPriorYear:    usedPrior,
		HighIncomePayer:  highIncome,
	}
}

// quartersDue counts the estimated-payment due dates (Apr 15, Jun 15,
// Sep 15, Jan 15 of the following year) that have passed as of the
// injected evaluation date.
func quartersDue(asOf time.Time) int {
	if asOf.IsZero() {
		return 0
	}
	year := asOf.Year()
	if asOf.Month() < time.April || (asOf.Month() == time.April && asOf.Day() < 15) {
		// Before the first due date of `year`; the Jan 15 payment belongs
		// to the prior tax year and is counted there.
		return 0
	}
	dueDates := []time.Time{
		time.Date(year, time.April, 15, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.June, 15, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.September, 15, 0, 0, 0, 0, time.UTC),
		time.Date(year+1, time.January, 15, 0, 0, 0, 0, time.UTC),
	}
	due := 0
	for _, d := range dueDates {
		if !asOf.Before(d) {
			due++
		}
	}
	return due
}

// CashReserve recommends a liquidity buffer: four months of expenses for
// steady income, six for irregular income, plus 30% of the annual tax
// liability held as a tax-specific reserve.
func CashReserve(monthlyExpenses, annualTax decimal.Decimal, irregular bool) domain.CashReservePlan {
	months := 4
	if irregular {
		months = 6
	}
	expenses := decimal.Max(monthlyExpenses, decimal.Zero)
	buffer := expenses.Mul(decimal.NewFromInt(int64(months)))
	taxReserve := decimal.Max(annualTax, decimal.Zero).Mul(decimal.NewFromFloat(0.30))
	return domain.CashReservePlan{
		MonthsOfExpenses: months,
		ExpenseBuffer:    buffer,
		TaxReserve:       taxReserve,
		Total:            buffer.Add(taxReserve),
	}
}
