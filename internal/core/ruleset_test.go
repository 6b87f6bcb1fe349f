package core

import "testing"

func TestDefaultRulesetIsValid(t *testing.T) {
	if err := DefaultRuleset().Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
}

func TestRulesetValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Ruleset)
	}{
		{
			name:   "negative keyword weight",
			mutate: func(rs *Ruleset) { rs.Keywords[0].Weight = -1 },
		},
		{
			name:   "empty keyword",
			mutate: func(rs *Ruleset) { rs.Keywords[0].Keyword = "" },
		},
		{
			name:   "negative rule weight",
			mutate: func(rs *Ruleset) { rs.AuthFailureWeight = -5 },
		},
		{
			name:   "inverted thresholds",
			mutate: func(rs *Ruleset) { rs.HighThreshold = 10 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := DefaultRuleset()
			tt.mutate(rs)
			if err := rs.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}
