package domain

import (
	"github.com/shopspring/decimal"
)

// CascadeDirection classifies the financial direction of a cascade effect.
type CascadeDirection string

const (
	CascadePositive CascadeDirection = "positive"
	CascadeNegative CascadeDirection = "negative"
	CascadeNeutral  CascadeDirection = "neutral"
)

// CascadeEffect is a second-order consequence of a scenario modification
// beyond the direct tax delta (e.g. new NIIT exposure after an asset sale).
type CascadeEffect struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Impact      decimal.Decimal  `json:"impact"`
	Direction   CascadeDirection `json:"direction"`
}

// SimulationResult captures the full before/after picture of applying one
// scenario modification to a baseline profile.
type SimulationResult struct {
	Scenario       string          `json:"scenario"`
	Description    string          `json:"description"`
	Before         TaxPosition     `json:"before"`
	After          TaxPosition     `json:"after"`
	TaxDelta       decimal.Decimal `json:"taxDelta"`
	EffectiveDelta decimal.Decimal `json:"effectiveRateDelta"`
	MarginalDelta  decimal.Decimal `json:"marginalRateDelta"`
	TakeHomeDelta  decimal.Decimal `json:"takeHomeDelta"`
	Warnings       []string        `json:"warnings"`
	Cascades       []CascadeEffect `json:"cascades"`
	Recommendation string          `json:"recommendation"`
}

// Saves reports whether the modification reduces total tax.
func (sr SimulationResult) Saves() bool {
	return sr.TaxDelta.IsNegative()
}
