package brackets

import (
	"fmt"

	"github.com/planwise/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Kind selects which progressive schedule a lookup returns.
type Kind string

const (
	KindOrdinary Kind = "ordinary"
	KindGains    Kind = "capital_gains"
)

// Unbounded is the sentinel ceiling of the final bracket in every schedule.
var Unbounded = decimal.NewFromInt(999999999999)

// Bracket is one (upper bound, rate) step of a progressive schedule.
type Bracket struct {
	Ceiling decimal.Decimal
	Rate    decimal.Decimal
}

// Schedule is an ordered progressive-rate table for one tax year, filing
// status and income kind. Schedules are constant data, never mutated at
// runtime.
type Schedule struct {
	Year     int
	Status   domain.FilingStatus
	Kind     Kind
	Brackets []Bracket
}

// Validate checks the structural invariants every schedule must satisfy:
// strictly increasing ceilings, non-decreasing rates, and an unbounded
// final ceiling.
func (s Schedule) Validate() error {
	if len(s.Brackets) == 0 {
		return fmt.Errorf("schedule %d/%s/%s has no brackets", s.Year, s.Status, s.Kind)
	}
	prev := decimal.Zero
	prevRate := decimal.NewFromInt(-1)
	for i, b := range s.Brackets {
		if b.Ceiling.LessThanOrEqual(prev) {
			return fmt.Errorf("schedule %d/%s/%s: bracket %d ceiling %s not above %s",
				s.Year, s.Status, s.Kind, i, b.Ceiling, prev)
		}
		if b.Rate.LessThan(prevRate) {
			return fmt.Errorf("schedule %d/%s/%s: bracket %d rate %s decreases",
				s.Year, s.Status, s.Kind, i, b.Rate)
		}
		prev = b.Ceiling
		prevRate = b.Rate
	}
	last := s.Brackets[len(s.Brackets)-1]
	if !last.Ceiling.Equal(Unbounded) {
		return fmt.Errorf("schedule %d/%s/%s: final ceiling %s is not the unbounded sentinel",
			s.Year, s.Status, s.Kind, last.Ceiling)
	}
	return nil
}

// brackets builds a Bracket slice from alternating ceiling/rate pairs, with
// the final rate applied to the unbounded bracket.
func build(pairs []float64, topRate float64) []Bracket {
	bs := make([]Bracket, 0, len(pairs)/2+1)
	for i := 0; i+1 < len(pairs); i += 2 {
		bs = append(bs, Bracket{
			Ceiling: decimal.NewFromFloat(pairs[i]),
			Rate:    decimal.NewFromFloat(pairs[i+1]),
		})
	}
	bs = append(bs, Bracket{Ceiling: Unbounded, Rate: decimal.NewFromFloat(topRate)})
	return bs
}
