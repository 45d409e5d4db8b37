package forecast

import (
	"math"
	"time"

	"github.com/planwise/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Confidence tier cutoffs on the volatility coefficient.
var (
	highConfidenceCutoff   = decimal.NewFromFloat(0.15)
	mediumConfidenceCutoff = decimal.NewFromFloat(0.35)
)

// Forecast projects monthly income forward from the month after `from`,
// compounding the pattern's growth rate and applying the per-month seasonal
// factor.
func Forecast(pattern domain.IncomePattern, from time.Time, months int) []domain.MonthForecast {
	out := make([]domain.MonthForecast, 0, months)
	year, month := from.Year(), from.Month()
	for i := 1; i <= months; i++ {
		month++
		if month > time.December {
			month = time.January
			year++
		}
		growthFactor := compound(pattern.GrowthRate, i)
		seasonal, ok := pattern.SeasonalFactors[month]
		if !ok {
			seasonal = decimal.NewFromInt(1)
		}
		amount := pattern.OverallAverage.Mul(growthFactor).Mul(seasonal)
		if amount.IsNegative() {
			amount = decimal.Zero
		}
		out = append(out, domain.MonthForecast{Year: year, Month: month, Amount: amount})
	}
	return out
}

// ForecastQuarters aggregates a monthly forecast into calendar quarters and
// grades each with a confidence tier derived from the pattern's volatility.
func ForecastQuarters(pattern domain.IncomePattern, from time.Time, months int) []domain.QuarterForecast {
	monthly := Forecast(pattern, from, months)
	confidence := confidenceTier(pattern.Volatility)

	var out []domain.QuarterForecast
	index := make(map[[2]int]int)
	for _, mf := range monthly {
		key := [2]int{mf.Year, (int(mf.Month)-1)/3 + 1}
		i, ok := index[key]
		if !ok {
			out = append(out, domain.QuarterForecast{
				Year:       key[0],
				Quarter:    key[1],
				Confidence: confidence,
			})
			i = len(out) - 1
			index[key] = i
		}
		out[i].Income = out[i].Income.Add(mf.Amount)
	}
	return out
}

// confidenceTier maps volatility to a forecast confidence grade: the
// steadier the history, the more trustworthy the projection.
func confidenceTier(volatility decimal.Decimal) domain.ConfidenceTier {
	switch {
	case volatility.LessThan(highConfidenceCutoff):
		return domain.ConfidenceHigh
	case volatility.LessThan(mediumConfidenceCutoff):
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}

// compound raises (1+rate) to months/12 without losing determinism; the
// float round-trip is stable for a fixed input.
func compound(annualRate decimal.Decimal, months int) decimal.Decimal {
	rate, _ := annualRate.Float64()
	factor := math.Pow(1+rate, float64(months)/12.0)
	if math.IsNaN(factor) || math.IsInf(factor, 0) || factor < 0 {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromFloat(factor)
}
