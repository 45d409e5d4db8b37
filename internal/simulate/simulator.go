package simulate

import (
	"fmt"
	"sort"

	"github.com/planwise/taxgo/internal/calculation"
	"github.com/planwise/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Simulator answers "what if" questions by applying a modification to a copy
// of the baseline profile and diffing the recomputed position against the
// baseline's.
type Simulator struct {
	Calc *calculation.Calculator
}

// NewSimulator creates a simulator over one calculator.
func NewSimulator(calc *calculation.Calculator) *Simulator {
	return &Simulator{Calc: calc}
}

// Simulate applies one modification and derives deltas, warnings, cascades
// and a recommendation. The caller's baseline profile is never mutated.
func (s *Simulator) Simulate(baseline domain.FinancialProfile, mod Modification) (domain.SimulationResult, error) {
	if mod == nil {
		return domain.SimulationResult{}, fmt.Errorf("modification cannot be nil")
	}
	if err := mod.Validate(); err != nil {
		return domain.SimulationResult{}, fmt.Errorf("modification %s validation failed: %w", mod.Name(), err)
	}

	before := s.Calc.Compute(baseline)
	modified := mod.Apply(baseline.Copy())
	after := s.Calc.Compute(modified)

	taxDelta := after.TotalTax.Sub(before.TotalTax)
	cascades, warnings := mod.Effects(baseline, before, after)

	result := domain.SimulationResult{
		Scenario:       mod.Name(),
		Description:    mod.Description(),
		Before:         before,
		After:          after,
		TaxDelta:       taxDelta,
		EffectiveDelta: after.EffectiveRate.Sub(before.EffectiveRate),
		MarginalDelta:  after.MarginalRate.Sub(before.MarginalRate),
		TakeHomeDelta:  after.TakeHome.Sub(before.TakeHome),
		Warnings:       warnings,
		Cascades:       cascades,
		Recommendation: recommendation(taxDelta),
	}
	return result, nil
}

// CompareScenarios simulates every modification and returns the results
// sorted ascending by tax delta, most favorable first. Other components
// rely on this ordering.
func (s *Simulator) CompareScenarios(baseline domain.FinancialProfile, mods []Modification) ([]domain.SimulationResult, error) {
	results := make([]domain.SimulationResult, 0, len(mods))
	for _, mod := range mods {
		result, err := s.Simulate(baseline, mod)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TaxDelta.LessThan(results[j].TaxDelta)
	})
	return results, nil
}

// recommendation derives the one-line recommendation purely from the sign of
// the tax delta.
func recommendation(taxDelta decimal.Decimal) string {
	switch {
	case taxDelta.IsNegative():
		return fmt.Sprintf("This move saves %s in tax this year.", taxDelta.Neg().StringFixed(0))
	case taxDelta.IsPositive():
		return fmt.Sprintf("This move costs %s in additional tax; weigh the non-tax benefits.", taxDelta.StringFixed(0))
	default:
		return "No material tax impact either way."
	}
}
