package core

import (
	"fmt"
	"time"
)

// AnalysisMode identifies how the analyzed input was submitted.
type AnalysisMode string

const (
	// ModeHeader marks an analysis of a raw mail header block.
	ModeHeader AnalysisMode = "header"
	// ModeScreenshot marks an analysis of plain message text,
	// typically extracted from a screenshot.
	ModeScreenshot AnalysisMode = "screenshot"
)

// SentinelNA is the placeholder for a field that could not be extracted.
const SentinelNA = "N/A"

// ExtractedFields holds the standard fields pulled out of a raw header
// block. Fields that were not found carry SentinelNA.
type ExtractedFields struct {
	Subject  string
	Sender   string
	Receiver string
	Date     string
}

// ReputationTier classifies a sender's domain.
type ReputationTier string

const (
	ReputationTrusted    ReputationTier = "Trusted"
	ReputationNeutral    ReputationTier = "Neutral"
	ReputationSuspicious ReputationTier = "Suspicious"
	ReputationUnknown    ReputationTier = "Unknown"
)

// ReputationVerdict is the outcome of sender domain evaluation.
type ReputationVerdict struct {
	Tier ReputationTier
	Note string
}

// RiskTier is the final classification of an analysis.
type RiskTier string

const (
	RiskLow    RiskTier = "Low"
	RiskMedium RiskTier = "Medium"
	RiskHigh   RiskTier = "High"
)

// Rule identifiers attached to triggered reasons.
const (
	RuleKeyword        = "keyword"
	RuleAuthFailure    = "auth_failure"
	RuleInsecureLink   = "insecure_link"
	RuleMissingRouting = "missing_routing"
	RuleNone           = "none"
)

// Reason records a single triggered rule. Detail carries the matched
// value where the rule has one (the keyword for RuleKeyword).
type Reason struct {
	RuleID string
	Detail string
}

// Render produces the display text for a reason. Presentation lives
// here so the scoring rules stay free of string formatting.
func (r Reason) Render() string {
	switch r.RuleID {
	case RuleKeyword:
		return fmt.Sprintf("Suspicious phrase: %s", r.Detail)
	case RuleAuthFailure:
		return "Email authentication failed (SPF/DKIM/DMARC)"
	case RuleInsecureLink:
		return "Unsecured or shortened link detected"
	case RuleMissingRouting:
		return "Header routing information missing"
	case RuleNone:
		return "No suspicious indicators found"
	default:
		return r.Detail
	}
}

// AnalysisResult is the full output record of one analysis. It is
// constructed once, never mutated afterwards, and never persisted.
type AnalysisResult struct {
	Mode       AnalysisMode
	Fields     ExtractedFields
	Risk       RiskTier
	Score      int
	Reasons    []Reason
	Reputation ReputationVerdict
	// Text echoes the analyzed text for screenshot-mode results,
	// truncated to the configured maximum. Empty for header mode.
	Text      string
	CheckedAt time.Time
}

// RenderedReasons returns the display text of every reason in
// detection order.
func (r *AnalysisResult) RenderedReasons() []string {
	out := make([]string, 0, len(r.Reasons))
	for _, reason := range r.Reasons {
		out = append(out, reason.Render())
	}
	return out
}
