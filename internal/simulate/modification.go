package simulate

import (
	"fmt"

	"github.com/planwise/taxgo/internal/domain"
)

// Modification is one "what if" change to a baseline profile. The variant
// set is closed: each variant is a struct carrying only the fields relevant
// to it, so an invalid field combination is unrepresentable rather than a
// runtime branch.
//
// Apply must operate on (and return) a copy; the caller's baseline profile
// is never touched.
type Modification interface {
	// Name returns a short identifier for this modification (e.g. "sell_asset").
	Name() string

	// Description returns a human-readable description of the change.
	Description() string

	// Validate checks the modification's parameters without applying it.
	Validate() error

	// Apply returns a new profile with the modification applied.
	Apply(p domain.FinancialProfile) domain.FinancialProfile

	// Effects derives the variant's cascade effects (0-2) and conditional
	// warnings from the baseline profile and the before/after positions.
	Effects(baseline domain.FinancialProfile, before, after domain.TaxPosition) ([]domain.CascadeEffect, []string)
}

// ModificationError reports construction-time misuse of a variant.
type ModificationError struct {
	Modification string
	Reason       string
	Err          error
}

func (e *ModificationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("modification %s: %s: %v", e.Modification, e.Reason, e.Err)
	}
	return fmt.Sprintf("modification %s: %s", e.Modification, e.Reason)
}

func (e *ModificationError) Unwrap() error {
	return e.Err
}

func newModificationError(name, reason string) error {
	return &ModificationError{Modification: name, Reason: reason}
}
