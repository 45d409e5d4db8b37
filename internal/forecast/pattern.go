package forecast

import (
	"math"
	"time"

	"github.com/planwise/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

// irregularityThreshold is the coefficient of variation above which an
// income stream is treated as irregular for reserve sizing.
var irregularityThreshold = decimal.NewFromFloat(0.25)

// AnalyzePattern decomposes an income history into seasonal factors, an
// annualized growth rate and a volatility measure. Fewer than three
// observations is not enough signal: the result is a flat, zero-growth,
// zero-volatility pattern rather than an error.
func AnalyzePattern(history []domain.Observation) domain.IncomePattern {
	pattern := domain.IncomePattern{
		MonthlyAverages: make(map[time.Month]decimal.Decimal),
		SeasonalFactors: neutralSeasonalFactors(),
		GrowthRate:      decimal.Zero,
		Volatility:      decimal.Zero,
		Observations:    len(history),
	}
	if len(history) < 3 {
		pattern.OverallAverage = averageAmount(history)
		return pattern
	}

	total := decimal.Zero
	monthTotals := make(map[time.Month]decimal.Decimal)
	monthCounts := make(map[time.Month]int)
	for _, obs := range history {
		total = total.Add(obs.Amount)
		monthTotals[obs.Month] = monthTotals[obs.Month].Add(obs.Amount)
		monthCounts[obs.Month]++
	}
	count := decimal.NewFromInt(int64(len(history)))
	overall := total.Div(count)
	pattern.OverallAverage = overall

	for month, sum := range monthTotals {
		avg := sum.Div(decimal.NewFromInt(int64(monthCounts[month])))
		pattern.MonthlyAverages[month] = avg
		if overall.GreaterThan(decimal.Zero) {
			pattern.SeasonalFactors[month] = avg.Div(overall)
		}
	}

	pattern.GrowthRate = annualizedGrowth(history)
	pattern.Volatility = coefficientOfVariation(history, overall)
	pattern.Irregular = pattern.Volatility.GreaterThan(irregularityThreshold)
	return pattern
}

// annualizedGrowth compares the average of the first half of the window with
// the second half geometrically, normalized to a yearly rate.
func annualizedGrowth(history []domain.Observation) decimal.Decimal {
	half := len(history) / 2
	if half == 0 {
		return decimal.Zero
	}
	firstAvg := averageAmount(history[:half])
	secondAvg := averageAmount(history[len(history)-half:])
	if firstAvg.LessThanOrEqual(decimal.Zero) || secondAvg.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	// The half-window midpoints are half the window apart; raise the ratio
	// to 12/half to express it per year.
	ratio, _ := secondAvg.Div(firstAvg).Float64()
	exponent := 12.0 / float64(half)
	annualized := math.Pow(ratio, exponent) - 1
	if math.IsNaN(annualized) || math.IsInf(annualized, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(annualized)
}

// coefficientOfVariation is the population standard deviation of the raw
// series divided by its mean.
func coefficientOfVariation(history []domain.Observation, mean decimal.Decimal) decimal.Decimal {
	if mean.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	sumSquares := decimal.Zero
	for _, obs := range history {
		diff := obs.Amount.Sub(mean)
		sumSquares = sumSquares.Add(diff.Mul(diff))
	}
	variance, _ := sumSquares.Div(decimal.NewFromInt(int64(len(history)))).Float64()
	return decimal.NewFromFloat(math.Sqrt(variance)).Div(mean)
}

func averageAmount(history []domain.Observation) decimal.Decimal {
	if len(history) == 0 {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, obs := range history {
		total = total.Add(obs.Amount)
	}
	return total.Div(decimal.NewFromInt(int64(len(history))))
}

func neutralSeasonalFactors() map[time.Month]decimal.Decimal {
	factors := make(map[time.Month]decimal.Decimal, 12)
	for m := time.January; m <= time.December; m++ {
		factors[m] = decimal.NewFromInt(1)
	}
	return factors
}
