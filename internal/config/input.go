package config

import (
	"fmt"
	"os"
	"time"

	"github.com/planwise/taxgo/internal/brackets"
	"github.com/planwise/taxgo/internal/domain"
	"github.com/planwise/taxgo/internal/projection"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Plan is the full YAML plan file: the financial profile plus everything the
// CLI subcommands need (scenario specs, projection window, income history,
// estimated-payment state, evidence vault contents).
type Plan struct {
	TaxYear         int                     `yaml:"tax_year"`
	Profile         domain.FinancialProfile `yaml:"profile"`
	Scenarios       []string                `yaml:"scenarios"`
	Projection      projection.Config       `yaml:"projection"`
	IncomeHistory   []domain.Observation    `yaml:"income_history"`
	SafeHarbor      domain.SafeHarborInput  `yaml:"safe_harbor"`
	MonthlyExpenses decimal.Decimal         `yaml:"monthly_expenses"`
	Evidence        []string                `yaml:"evidence"`
}

// InputParser handles parsing of plan files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads and validates a YAML plan file.
func (ip *InputParser) LoadFromFile(filename string) (*Plan, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.applyDefaults(&plan)

	if err := ip.ValidatePlan(&plan); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}
	return &plan, nil
}

// applyDefaults fills the fields a minimal plan file may omit.
func (ip *InputParser) applyDefaults(plan *Plan) {
	if plan.TaxYear == 0 {
		plan.TaxYear = 2025
	}
	if plan.Profile.FilingStatus == "" {
		plan.Profile.FilingStatus = domain.FilingSingle
	}
	if plan.Projection.StartYear == 0 {
		plan.Projection.StartYear = plan.TaxYear
	}
	if plan.Projection.Years == 0 {
		plan.Projection.Years = 5
	}
	if plan.Projection.SunsetYear == 0 {
		plan.Projection.SunsetYear = projection.DefaultSunsetYear
	}
	if plan.SafeHarbor.AsOf.IsZero() {
		plan.SafeHarbor.AsOf = time.Date(plan.TaxYear, time.December, 31, 0, 0, 0, 0, time.UTC)
	}
}

// ValidatePlan validates the loaded plan.
func (ip *InputParser) ValidatePlan(plan *Plan) error {
	if err := ip.validateProfile(&plan.Profile); err != nil {
		return fmt.Errorf("profile validation failed: %w", err)
	}
	if _, err := brackets.CurrentLaw(plan.TaxYear); err != nil {
		return err
	}
	if err := plan.Projection.Validate(); err != nil {
		return fmt.Errorf("projection validation failed: %w", err)
	}
	for i, obs := range plan.IncomeHistory {
		if obs.Month < time.January || obs.Month > time.December {
			return fmt.Errorf("income history entry %d has invalid month %d", i, obs.Month)
		}
		if obs.Amount.IsNegative() {
			return fmt.Errorf("income history entry %d has negative amount %s", i, obs.Amount)
		}
	}
	return nil
}

func (ip *InputParser) validateProfile(p *domain.FinancialProfile) error {
	if !p.FilingStatus.Valid() {
		return fmt.Errorf("unknown filing status %q", p.FilingStatus)
	}
	if p.State != "" && !brackets.KnownState(p.State) {
		return fmt.Errorf("unknown state code %q", p.State)
	}
	if p.Age < 0 {
		return fmt.Errorf("age cannot be negative")
	}
	if p.Dependents < 0 {
		return fmt.Errorf("dependents cannot be negative")
	}
	return nil
}
