package domain

import (
	"github.com/shopspring/decimal"
)

// Severity ranks how strongly a red flag correlates with audit selection.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// RiskTier is the five-band classification of the composite audit score.
type RiskTier string

const (
	RiskMinimal  RiskTier = "minimal"
	RiskLow      RiskTier = "low"
	RiskModerate RiskTier = "moderate"
	RiskHigh     RiskTier = "high"
	RiskSevere   RiskTier = "severe"
)

// AuditChannel is the examination channel the IRS would most likely use.
type AuditChannel string

const (
	ChannelCorrespondence AuditChannel = "correspondence"
	ChannelOffice         AuditChannel = "office"
	ChannelField          AuditChannel = "field"
)

// RedFlag is one triggered audit rule with its contribution to the score.
type RedFlag struct {
	ID         string          `json:"id"`
	Severity   Severity        `json:"severity"`
	Impact     int             `json:"impact"`
	Detail     string          `json:"detail"`
	Mitigation string          `json:"mitigation"`
	Exposure   decimal.Decimal `json:"exposure"`
}

// DocumentationGap lists, for one triggered category, which of the required
// supporting documents the caller's evidence vault already holds and which
// are missing.
type DocumentationGap struct {
	Category string   `json:"category"`
	Present  []string `json:"present"`
	Missing  []string `json:"missing"`
	Note     string   `json:"note"`
}

// AuditRiskProfile is the scorer's full output for one profile.
type AuditRiskProfile struct {
	Score            int                `json:"score"`
	Tier             RiskTier           `json:"tier"`
	AuditProbability decimal.Decimal    `json:"auditProbability"`
	Channel          AuditChannel       `json:"channel"`
	Flags            []RedFlag          `json:"flags"`
	Gaps             []DocumentationGap `json:"gaps"`
	PenaltyExposure  decimal.Decimal    `json:"penaltyExposure"`
}
