package core

// ClassifyScore maps a total score onto a risk tier. Thresholds are
// inclusive at the lower bound: exactly HighThreshold classifies High
// and exactly MediumThreshold classifies Medium.
func ClassifyScore(score int, rs *Ruleset) RiskTier {
	switch {
	case score >= rs.HighThreshold:
		return RiskHigh
	case score >= rs.MediumThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}
