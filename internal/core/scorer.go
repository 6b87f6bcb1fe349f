package core

import "strings"

// scoreAccumulator collects independent rule contributions. The total
// only ever grows; reason order is the fixed rule-evaluation order.
type scoreAccumulator struct {
	total   int
	reasons []Reason
}

func (a *scoreAccumulator) add(weight int, reason Reason) {
	a.total += weight
	a.reasons = append(a.reasons, reason)
}

// ScoreText evaluates the content rules against arbitrary text:
// keyword rules in ruleset order, then authentication-failure markers,
// then insecure-link markers. Rules are independent of each other;
// each keyword counts once no matter how often it occurs.
func ScoreText(text string, rs *Ruleset) (int, []Reason) {
	acc := &scoreAccumulator{}
	scoreContent(strings.ToLower(text), rs, acc)
	return acc.total, acc.reasons
}

// ScoreHeader evaluates the content rules plus the header-only routing
// check: a header block with no Received: line gains a fixed weight.
func ScoreHeader(headerText string, rs *Ruleset) (int, []Reason) {
	lowered := strings.ToLower(headerText)
	acc := &scoreAccumulator{}
	scoreContent(lowered, rs, acc)
	if !strings.Contains(lowered, "received:") {
		acc.add(rs.MissingRoutingWeight, Reason{RuleID: RuleMissingRouting})
	}
	return acc.total, acc.reasons
}

func scoreContent(lowered string, rs *Ruleset, acc *scoreAccumulator) {
	for _, kw := range rs.Keywords {
		if strings.Contains(lowered, strings.ToLower(kw.Keyword)) {
			acc.add(kw.Weight, Reason{RuleID: RuleKeyword, Detail: kw.Keyword})
		}
	}
	if containsAny(lowered, rs.AuthFailureMarkers) {
		acc.add(rs.AuthFailureWeight, Reason{RuleID: RuleAuthFailure})
	}
	if containsAny(lowered, rs.LinkMarkers) {
		acc.add(rs.InsecureLinkWeight, Reason{RuleID: RuleInsecureLink})
	}
}

func containsAny(text string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
