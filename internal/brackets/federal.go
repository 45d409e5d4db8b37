package brackets

import (
	"fmt"

	"github.com/planwise/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

// YearTables bundles every constant table the calculator needs for one tax
// year under one bracket regime. Instances are built fresh per lookup so a
// caller can never mutate shared state.
type YearTables struct {
	Year               int
	Regime             domain.BracketRegime
	Ordinary           map[domain.FilingStatus]Schedule
	Gains              map[domain.FilingStatus]Schedule
	StandardDeductions map[domain.FilingStatus]decimal.Decimal
	NIITThresholds     map[domain.FilingStatus]decimal.Decimal
	SSWageBase         decimal.Decimal
}

// Self-employment tax constants (SECA). These are statutory rates, not
// year-indexed.
var (
	SENetEarningsFactor = decimal.NewFromFloat(0.9235)
	SESocialSecurity    = decimal.NewFromFloat(0.124)
	SEMedicare          = decimal.NewFromFloat(0.029)
	NIITRate            = decimal.NewFromFloat(0.038)
)

// niitThresholds are set by statute and not inflation indexed.
func niitThresholds() map[domain.FilingStatus]decimal.Decimal {
	return map[domain.FilingStatus]decimal.Decimal{
		domain.FilingSingle:          decimal.NewFromInt(200000),
		domain.FilingMarriedJoint:    decimal.NewFromInt(250000),
		domain.FilingMarriedSeparate: decimal.NewFromInt(125000),
	}
}

// CurrentLaw returns the current-law tables for a supported tax year.
func CurrentLaw(year int) (*YearTables, error) {
	switch year {
	case 2024:
		return currentLaw2024(), nil
	case 2025:
		return currentLaw2025(), nil
	default:
		return nil, fmt.Errorf("no current-law bracket tables for tax year %d", year)
	}
}

// PreSunset returns the reversion-regime tables: the pre-2018 rate ladder
// (10/15/25/28/33/35/39.6) with thresholds restated in present-day dollars.
// The gains schedule does not revert; the standard deduction falls back to
// its pre-expansion level.
func PreSunset(year int) *YearTables {
	t := &YearTables{
		Year:   year,
		Regime: domain.RegimePreSunset,
		Ordinary: map[domain.FilingStatus]Schedule{
			domain.FilingSingle: {Year: year, Status: domain.FilingSingle, Kind: KindOrdinary, Brackets: build([]float64{
				12100, 0.10, 49350, 0.15, 119500, 0.25, 249100, 0.28, 541700, 0.33, 543900, 0.35,
			}, 0.396)},
			domain.FilingMarriedJoint: {Year: year, Status: domain.FilingMarriedJoint, Kind: KindOrdinary, Brackets: build([]float64{
				24200, 0.10, 98700, 0.15, 199000, 0.25, 303350, 0.28, 541700, 0.33, 611900, 0.35,
			}, 0.396)},
			domain.FilingMarriedSeparate: {Year: year, Status: domain.FilingMarriedSeparate, Kind: KindOrdinary, Brackets: build([]float64{
				12100, 0.10, 49350, 0.15, 99500, 0.25, 151675, 0.28, 270850, 0.33, 305950, 0.35,
			}, 0.396)},
		},
		Gains: gains2025(year),
		StandardDeductions: map[domain.FilingStatus]decimal.Decimal{
			domain.FilingSingle:          decimal.NewFromInt(8300),
			domain.FilingMarriedJoint:    decimal.NewFromInt(16600),
			domain.FilingMarriedSeparate: decimal.NewFromInt(8300),
		},
		NIITThresholds: niitThresholds(),
		SSWageBase:     decimal.NewFromInt(176100),
	}
	return t
}

// ForRegime selects between current-law and pre-sunset tables for a
// projection year. Selection is purely a function of (year, sunsetYear).
// Projection years beyond the last published current-law year reuse the
// latest published tables; no inflation indexing is applied.
func ForRegime(year, sunsetYear int) *YearTables {
	if year >= sunsetYear {
		return PreSunset(year)
	}
	t, err := CurrentLaw(year)
	if err != nil {
		t = currentLaw2025()
		t.Year = year
	}
	return t
}

func currentLaw2025() *YearTables {
	return &YearTables{
		Year:   2025,
		Regime: domain.RegimeCurrentLaw,
		Ordinary: map[domain.FilingStatus]Schedule{
			domain.FilingSingle: {Year: 2025, Status: domain.FilingSingle, Kind: KindOrdinary, Brackets: build([]float64{
				11925, 0.10, 48475, 0.12, 103350, 0.22, 197300, 0.24, 250525, 0.32, 626350, 0.35,
			}, 0.37)},
			domain.FilingMarriedJoint: {Year: 2025, Status: domain.FilingMarriedJoint, Kind: KindOrdinary, Brackets: build([]float64{
				23850, 0.10, 96950, 0.12, 206700, 0.22, 394600, 0.24, 501050, 0.32, 751600, 0.35,
			}, 0.37)},
			domain.FilingMarriedSeparate: {Year: 2025, Status: domain.FilingMarriedSeparate, Kind: KindOrdinary, Brackets: build([]float64{
				11925, 0.10, 48475, 0.12, 103350, 0.22, 197300, 0.24, 250525, 0.32, 375800, 0.35,
			}, 0.37)},
		},
		Gains: gains2025(2025),
		StandardDeductions: map[domain.FilingStatus]decimal.Decimal{
			domain.FilingSingle:          decimal.NewFromInt(15000),
			domain.FilingMarriedJoint:    decimal.NewFromInt(30000),
			domain.FilingMarriedSeparate: decimal.NewFromInt(15000),
		},
		NIITThresholds: niitThresholds(),
		SSWageBase:     decimal.NewFromInt(176100),
	}
}

func gains2025(year int) map[domain.FilingStatus]Schedule {
	return map[domain.FilingStatus]Schedule{
		domain.FilingSingle: {Year: year, Status: domain.FilingSingle, Kind: KindGains, Brackets: build([]float64{
			48350, 0.00, 533400, 0.15,
		}, 0.20)},
		domain.FilingMarriedJoint: {Year: year, Status: domain.FilingMarriedJoint, Kind: KindGains, Brackets: build([]float64{
			96700, 0.00, 600050, 0.15,
		}, 0.20)},
		domain.FilingMarriedSeparate: {Year: year, Status: domain.FilingMarriedSeparate, Kind: KindGains, Brackets: build([]float64{
			48350, 0.00, 300000, 0.15,
		}, 0.20)},
	}
}

func currentLaw2024() *YearTables {
	return &YearTables{
		Year:   2024,
		Regime: domain.RegimeCurrentLaw,
		Ordinary: map[domain.FilingStatus]Schedule{
			domain.FilingSingle: {Year: 2024, Status: domain.FilingSingle, Kind: KindOrdinary, Brackets: build([]float64{
				11600, 0.10, 47150, 0.12, 100525, 0.22, 191950, 0.24, 243725, 0.32, 609350, 0.35,
			}, 0.37)},
			domain.FilingMarriedJoint: {Year: 2024, Status: domain.FilingMarriedJoint, Kind: KindOrdinary, Brackets: build([]float64{
				23200, 0.10, 94300, 0.12, 201050, 0.22, 383900, 0.24, 487450, 0.32, 731200, 0.35,
			}, 0.37)},
			domain.FilingMarriedSeparate: {Year: 2024, Status: domain.FilingMarriedSeparate, Kind: KindOrdinary, Brackets: build([]float64{
				11600, 0.10, 47150, 0.12, 100525, 0.22, 191950, 0.24, 243725, 0.32, 365600, 0.35,
			}, 0.37)},
		},
		Gains: map[domain.FilingStatus]Schedule{
			domain.FilingSingle: {Year: 2024, Status: domain.FilingSingle, Kind: KindGains, Brackets: build([]float64{
				47025, 0.00, 518900, 0.15,
			}, 0.20)},
			domain.FilingMarriedJoint: {Year: 2024, Status: domain.FilingMarriedJoint, Kind: KindGains, Brackets: build([]float64{
				94050, 0.00, 583750, 0.15,
			}, 0.20)},
			domain.FilingMarriedSeparate: {Year: 2024, Status: domain.FilingMarriedSeparate, Kind: KindGains, Brackets: build([]float64{
				47025, 0.00, 291850, 0.15,
			}, 0.20)},
		},
		StandardDeductions: map[domain.FilingStatus]decimal.Decimal{
			domain.FilingSingle:          decimal.NewFromInt(14600),
			domain.FilingMarriedJoint:    decimal.NewFromInt(29200),
			domain.FilingMarriedSeparate: decimal.NewFromInt(14600),
		},
		NIITThresholds: niitThresholds(),
		SSWageBase:     decimal.NewFromInt(168600),
	}
}

// Lookup returns one schedule from the current-law tables.
func Lookup(year int, status domain.FilingStatus, kind Kind) (Schedule, error) {
	t, err := CurrentLaw(year)
	if err != nil {
		return Schedule{}, err
	}
	var m map[domain.FilingStatus]Schedule
	switch kind {
	case KindOrdinary:
		m = t.Ordinary
	case KindGains:
		m = t.Gains
	default:
		return Schedule{}, fmt.Errorf("unknown schedule kind %q", kind)
	}
	s, ok := m[status]
	if !ok {
		return Schedule{}, fmt.Errorf("no %s schedule for filing status %q in %d", kind, status, year)
	}
	return s, nil
}
