package audit

import (
	"github.com/planwise/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Scoring constants. Every return starts at the baseline; triggered rules
// add their impacts and the composite is clamped to [0, 100].
const (
	baselineScore = 10
	maxScore      = 100
)

var (
	probabilityCap   = decimal.NewFromFloat(0.15)
	fifty            = decimal.NewFromInt(50)
	accuracyPenalty  = decimal.NewFromFloat(0.20)
	underpaymentRate = decimal.NewFromFloat(0.08)
)

// Scorer evaluates the fixed rule set against a profile. It is stateless;
// one instance can serve concurrent callers.
type Scorer struct{}

// NewScorer creates an audit risk scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Analyze runs every rule against the profile, composes the clamped score,
// and cross-references the caller's evidence vault against each triggered
// category's document checklist. The evidence cross-reference is pure set
// membership; it never feeds back into the score.
func (s *Scorer) Analyze(p domain.FinancialProfile, evidence []string) domain.AuditRiskProfile {
	have := make(map[string]bool, len(evidence))
	for _, doc := range evidence {
		have[doc] = true
	}

	score := baselineScore
	exposure := decimal.Zero
	var flags []domain.RedFlag
	var gaps []domain.DocumentationGap
	seenCategory := make(map[string]bool)

	for _, rule := range ruleSet {
		finding, triggered := rule.Evaluate(p)
		if !triggered {
			continue
		}
		score += finding.Impact
		exposure = exposure.Add(finding.Exposure)
		flags = append(flags, domain.RedFlag{
			ID:         rule.ID,
			Severity:   finding.Severity,
			Impact:     finding.Impact,
			Detail:     finding.Detail,
			Mitigation: rule.Mitigation,
			Exposure:   finding.Exposure,
		})
		if gap, ok := documentationGap(rule, have, seenCategory); ok {
			gaps = append(gaps, gap)
		}
	}

	if score > maxScore {
		score = maxScore
	}
	if score < 0 {
		score = 0
	}

	return domain.AuditRiskProfile{
		Score:            score,
		Tier:             tier(score),
		AuditProbability: auditProbability(p.GrossIncome(), score),
		Channel:          channel(score),
		Flags:            flags,
		Gaps:             gaps,
		PenaltyExposure:  penaltyExposure(exposure),
	}
}

// tier is a five-band step function of the composite score.
func tier(score int) domain.RiskTier {
	switch {
	case score < 20:
		return domain.RiskMinimal
	case score < 40:
		return domain.RiskLow
	case score < 60:
		return domain.RiskModerate
	case score < 80:
		return domain.RiskHigh
	default:
		return domain.RiskSevere
	}
}

// channel picks the likely examination channel by score threshold.
func channel(score int) domain.AuditChannel {
	switch {
	case score > 60:
		return domain.ChannelField
	case score > 35:
		return domain.ChannelOffice
	default:
		return domain.ChannelCorrespondence
	}
}

// auditProbability scales an income-band baseline rate by the composite
// score and caps the result at 15%.
func auditProbability(gross decimal.Decimal, score int) decimal.Decimal {
	baseline := baselineAuditRate(gross)
	scale := decimal.NewFromInt(1).Add(decimal.NewFromInt(int64(score)).Div(fifty))
	return decimal.Min(baseline.Mul(scale), probabilityCap)
}

// baselineAuditRate is a step function of gross income mirroring published
// examination coverage by income band.
func baselineAuditRate(gross decimal.Decimal) decimal.Decimal {
	switch {
	case gross.LessThan(decimal.NewFromInt(100000)):
		return decimal.NewFromFloat(0.004)
	case gross.LessThan(decimal.NewFromInt(200000)):
		return decimal.NewFromFloat(0.006)
	case gross.LessThan(decimal.NewFromInt(500000)):
		return decimal.NewFromFloat(0.011)
	case gross.LessThan(decimal.NewFromInt(1000000)):
		return decimal.NewFromFloat(0.025)
	default:
		return decimal.NewFromFloat(0.045)
	}
}

// penaltyExposure estimates the worst-case cost of the flagged positions:
// the 20% accuracy-related penalty plus a year of underpayment interest on
// the aggregate flagged amount.
func penaltyExposure(flagged decimal.Decimal) decimal.Decimal {
	if flagged.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return flagged.Mul(accuracyPenalty.Add(underpaymentRate)).Round(0)
}

// documentationGap compares the rule's required-document checklist against
// the evidence set, once per category.
func documentationGap(rule Rule, have map[string]bool, seen map[string]bool) (domain.DocumentationGap, bool) {
	if seen[rule.Category] || len(rule.RequiredDocs) == 0 {
		return domain.DocumentationGap{}, false
	}
	seen[rule.Category] = true

	var present, missing []string
	for _, doc := range rule.RequiredDocs {
		if have[doc] {
			present = append(present, doc)
		} else {
			missing = append(missing, doc)
		}
	}
	note := "Documentation complete for this category."
	if len(missing) > 0 {
		note = rule.Mitigation
	}
	return domain.DocumentationGap{
		Category: rule.Category,
		Present:  present,
		Missing:  missing,
		Note:     note,
	}, true
}
