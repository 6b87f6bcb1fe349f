package core

import "testing"

func TestClassifyScoreBoundaries(t *testing.T) {
	rs := DefaultRuleset()

	tests := []struct {
		score int
		want  RiskTier
	}{
		{0, RiskLow},
		{34, RiskLow},
		{35, RiskMedium},
		{69, RiskMedium},
		{70, RiskHigh},
		{200, RiskHigh},
	}

	for _, tt := range tests {
		if got := ClassifyScore(tt.score, rs); got != tt.want {
			t.Errorf("ClassifyScore(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestDetectHeaderInput(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Received: from relay.example.com", true},
		{"Subject: hello", true},
		{"SUBJECT: case insensitive", true},
		{"just some message text", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := DetectHeaderInput(tt.text); got != tt.want {
			t.Errorf("DetectHeaderInput(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
