package calculation

import (
	"github.com/planwise/taxgo/internal/brackets"
	"github.com/planwise/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

// walk applies a progressive schedule to an amount starting at the bottom of
// the schedule. It returns the tax and the rate of the last bracket that
// taxed a nonzero slice. Every dollar of the amount is taxed exactly once:
// the per-bracket slice is min(remaining, ceiling-prev).
func walk(s brackets.Schedule, amount decimal.Decimal) (tax, marginal decimal.Decimal) {
	return walkFrom(s, decimal.Zero, amount)
}

// walkFrom taxes the slice [start, start+amount) of a schedule. The long-term
// gains computation uses a nonzero start so gains stack on top of ordinary
// taxable income while still being evaluated against the gains schedule.
func walkFrom(s brackets.Schedule, start, amount decimal.Decimal) (tax, marginal decimal.Decimal) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, decimal.Zero
	}
	remaining := amount
	prev := decimal.Zero
	for _, b := range s.Brackets {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
		width := b.Ceiling.Sub(prev)
		// Portion of this bracket already consumed by income below start.
		if start.GreaterThan(prev) {
			consumed := decimal.Min(start.Sub(prev), width)
			width = width.Sub(consumed)
		}
		if width.GreaterThan(decimal.Zero) {
			slice := decimal.Min(remaining, width)
			tax = tax.Add(slice.Mul(b.Rate))
			marginal = b.Rate
			remaining = remaining.Sub(slice)
		}
		prev = b.Ceiling
	}
	return tax, marginal
}

// Usage reports, bracket by bracket, how much of each bracket's width the
// amount fills. Consumers render these as utilization bars.
func Usage(s brackets.Schedule, amount decimal.Decimal) []domain.BracketUsage {
	usage := make([]domain.BracketUsage, 0, len(s.Brackets))
	remaining := decimal.Max(amount, decimal.Zero)
	prev := decimal.Zero
	for _, b := range s.Brackets {
		width := b.Ceiling.Sub(prev)
		filled := decimal.Min(remaining, width)
		if filled.IsNegative() {
			filled = decimal.Zero
		}
		util := decimal.Zero
		if width.GreaterThan(decimal.Zero) {
			util = filled.Div(width)
		}
		usage = append(usage, domain.BracketUsage{
			Ceiling:     b.Ceiling,
			Rate:        b.Rate,
			Width:       width,
			Filled:      filled,
			Utilization: util,
		})
		remaining = remaining.Sub(filled)
		prev = b.Ceiling
	}
	return usage
}
