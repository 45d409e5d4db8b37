package projection

import (
	"fmt"
	"sort"

	"github.com/planwise/taxgo/internal/brackets"
	"github.com/planwise/taxgo/internal/calculation"
	"github.com/planwise/taxgo/internal/domain"
	"github.com/planwise/taxgo/internal/simulate"
	"github.com/shopspring/decimal"
)

// DefaultSunsetYear is the first year the current-law brackets revert.
const DefaultSunsetYear = 2026

// Config controls a multi-year projection. The sunset year is injected so
// regime selection stays a pure function of (year, sunset year).
type Config struct {
	StartYear  int             `yaml:"start_year"`
	Years      int             `yaml:"years"`
	GrowthRate decimal.Decimal `yaml:"growth_rate"`
	SunsetYear int             `yaml:"sunset_year"`
}

// Validate checks the projection window.
func (c Config) Validate() error {
	if c.StartYear <= 0 {
		return fmt.Errorf("start year is required")
	}
	if c.Years <= 0 {
		return fmt.Errorf("projection years must be positive, got %d", c.Years)
	}
	return nil
}

func (c Config) sunset() int {
	if c.SunsetYear == 0 {
		return DefaultSunsetYear
	}
	return c.SunsetYear
}

// Projector iterates the calculator across a year horizon, switching bracket
// regimes at the sunset year and compounding income growth.
type Projector struct{}

// NewProjector creates a multi-year projector.
func NewProjector() *Projector {
	return &Projector{}
}

// Project returns one row per year, in ascending calendar order.
func (pr *Projector) Project(p domain.FinancialProfile, cfg Config) ([]domain.YearProjection, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rows := make([]domain.YearProjection, 0, cfg.Years)
	for i := 0; i < cfg.Years; i++ {
		year := cfg.StartYear + i
		grown := growProfile(p, cfg.GrowthRate, i)

		tables := brackets.ForRegime(year, cfg.sunset())
		calc := calculation.New(tables)
		pos := calc.Compute(grown)

		status := grown.FilingStatus
		if !status.Valid() {
			status = domain.FilingSingle
		}
		rows = append(rows, domain.YearProjection{
			Year:                   year,
			Regime:                 tables.Regime,
			GrowthRate:             cfg.GrowthRate,
			GrossIncome:            pos.GrossIncome,
			AGI:                    pos.AGI,
			TaxableIncome:          pos.TaxableIncome,
			FederalTax:             pos.FederalTax,
			CapitalGainsTax:        pos.CapitalGainsTax,
			StateTax:               pos.StateTax,
			SelfEmploymentTax:      pos.SelfEmploymentTax,
			NetInvestmentIncomeTax: pos.NetInvestmentIncomeTax,
			TotalTax:               pos.TotalTax,
			EffectiveRate:          pos.EffectiveRate,
			TakeHome:               pos.TakeHome,
			BracketUtilization:     calc.OrdinaryUsage(status, calc.TaxableOrdinary(grown)),
		})
	}
	return rows, nil
}

// growProfile compounds the growth rate onto the income fields for year
// offset i. Deductions and contributions are held flat.
func growProfile(p domain.FinancialProfile, rate decimal.Decimal, i int) domain.FinancialProfile {
	out := p.Copy()
	if i == 0 || rate.IsZero() {
		return out
	}
	factor := decimal.NewFromInt(1).Add(rate).Pow(decimal.NewFromInt(int64(i)))
	out.OrdinaryIncome = out.OrdinaryIncome.Mul(factor)
	out.SelfEmploymentIncome = out.SelfEmploymentIncome.Mul(factor)
	out.LongTermGains = out.LongTermGains.Mul(factor)
	out.ShortTermGains = out.ShortTermGains.Mul(factor)
	return out
}

// shiftFraction is the slice of ordinary income each candidate scenario
// moves between adjacent years.
var shiftFraction = decimal.NewFromFloat(0.10)

// IncomeShiftScenarios builds candidate income-timing moves between every
// pair of adjacent projected years, in both directions, and ranks them by
// aggregate two-year savings (largest savings first). The receiving-year
// impact is evaluated through the scenario simulator.
func (pr *Projector) IncomeShiftScenarios(p domain.FinancialProfile, cfg Config) ([]domain.IncomeShiftScenario, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Years < 2 {
		return nil, nil
	}

	var scenarios []domain.IncomeShiftScenario
	for i := 0; i < cfg.Years-1; i++ {
		yearA := cfg.StartYear + i
		yearB := yearA + 1

		profileA := growProfile(p, cfg.GrowthRate, i)
		profileB := growProfile(p, cfg.GrowthRate, i+1)

		if s, ok := pr.shift(profileA, profileB, yearA, yearB, cfg); ok {
			scenarios = append(scenarios, s)
		}
		if s, ok := pr.shift(profileB, profileA, yearB, yearA, cfg); ok {
			scenarios = append(scenarios, s)
		}
	}

	sort.SliceStable(scenarios, func(i, j int) bool {
		return scenarios[i].AggregateSavings.GreaterThan(scenarios[j].AggregateSavings)
	})
	return scenarios, nil
}

// shift evaluates moving a slice of ordinary income out of `from` and into
// `to`. Savings in the source year come from recomputing the reduced
// profile; the cost in the receiving year comes from simulating the income
// arriving there.
func (pr *Projector) shift(from, to domain.FinancialProfile, fromYear, toYear int, cfg Config) (domain.IncomeShiftScenario, bool) {
	amount := from.OrdinaryIncome.Mul(shiftFraction)
	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.IncomeShiftScenario{}, false
	}

	fromCalc := calculation.New(brackets.ForRegime(fromYear, cfg.sunset()))
	toCalc := calculation.New(brackets.ForRegime(toYear, cfg.sunset()))

	reduced := from.Copy()
	reduced.OrdinaryIncome = reduced.OrdinaryIncome.Sub(amount)
	sourceSavings := fromCalc.Compute(from).TotalTax.Sub(fromCalc.Compute(reduced).TotalTax)

	sim := simulate.NewSimulator(toCalc)
	result, err := sim.Simulate(to, simulate.AdditionalIncome{Amount: amount, Type: simulate.IncomeOrdinary})
	if err != nil {
		return domain.IncomeShiftScenario{}, false
	}

	direction := "Defer"
	if toYear < fromYear {
		direction = "Accelerate"
	}
	return domain.IncomeShiftScenario{
		Name:          fmt.Sprintf("shift_%d_to_%d", fromYear, toYear),
		Description:   fmt.Sprintf("%s %s of ordinary income from %d into %d", direction, amount.StringFixed(0), fromYear, toYear),
		FromYear:      fromYear,
		ToYear:        toYear,
		AmountShifted: amount,
		// Positive when the move lowers the two-year total.
		AggregateSavings: sourceSavings.Sub(result.TaxDelta),
	}, true
}
