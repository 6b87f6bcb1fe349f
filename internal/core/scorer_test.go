package core

import "testing"

func TestScoreTextKeywords(t *testing.T) {
	rs := DefaultRuleset()

	score, reasons := ScoreText("URGENT: verify your password now", rs)

	// urgent + verify + password, each once.
	if want := 36; score != want {
		t.Errorf("score = %d, want %d", score, want)
	}
	if len(reasons) != 3 {
		t.Fatalf("reasons = %d, want 3", len(reasons))
	}
	// Reason order follows keyword list order, not occurrence order.
	wantOrder := []string{"verify", "urgent", "password"}
	for i, reason := range reasons {
		if reason.RuleID != RuleKeyword {
			t.Errorf("reasons[%d].RuleID = %s, want %s", i, reason.RuleID, RuleKeyword)
		}
		if reason.Detail != wantOrder[i] {
			t.Errorf("reasons[%d].Detail = %q, want %q", i, reason.Detail, wantOrder[i])
		}
	}
}

func TestScoreTextKeywordCountsOncePerKeyword(t *testing.T) {
	rs := DefaultRuleset()

	once, _ := ScoreText("verify", rs)
	many, _ := ScoreText("verify verify verify verify", rs)

	if once != many {
		t.Errorf("repeated keyword scored %d, single occurrence %d", many, once)
	}
}

func TestScoreTextAuthFailureMarkers(t *testing.T) {
	rs := DefaultRuleset()

	tests := []struct {
		name string
		text string
	}{
		{"spf failure", "authentication-results: spf=fail"},
		{"dkim failure", "dkim=fail (bad signature)"},
		{"dmarc failure", "dmarc=fail"},
		{"combined failures score once", "spf=fail dkim=fail dmarc=fail"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, reasons := ScoreText(tt.text, rs)
			if score != rs.AuthFailureWeight {
				t.Errorf("score = %d, want %d", score, rs.AuthFailureWeight)
			}
			if len(reasons) != 1 || reasons[0].RuleID != RuleAuthFailure {
				t.Errorf("reasons = %+v, want single auth failure reason", reasons)
			}
		})
	}
}

func TestScoreTextLinkMarkers(t *testing.T) {
	rs := DefaultRuleset()

	for _, text := range []string{
		"see http://example.com",
		"shortened bit.ly/abc",
		"via tinyurl dot com: tinyurl.com/xyz",
	} {
		score, reasons := ScoreText(text, rs)
		if score != rs.InsecureLinkWeight {
			t.Errorf("ScoreText(%q) = %d, want %d", text, score, rs.InsecureLinkWeight)
		}
		if len(reasons) != 1 || reasons[0].RuleID != RuleInsecureLink {
			t.Errorf("ScoreText(%q) reasons = %+v, want single link reason", text, reasons)
		}
	}
}

func TestScoreTextIsSumOfIndependentRules(t *testing.T) {
	rs := DefaultRuleset()

	text := "urgent: click http://evil.test, spf=fail"
	score, reasons := ScoreText(text, rs)

	// urgent + click, auth failure, insecure link.
	want := 12 + 12 + rs.AuthFailureWeight + rs.InsecureLinkWeight
	if score != want {
		t.Errorf("score = %d, want %d", score, want)
	}

	sum := 0
	for _, reason := range reasons {
		switch reason.RuleID {
		case RuleKeyword:
			sum += 12
		case RuleAuthFailure:
			sum += rs.AuthFailureWeight
		case RuleInsecureLink:
			sum += rs.InsecureLinkWeight
		default:
			t.Errorf("unexpected rule %s", reason.RuleID)
		}
	}
	if sum != score {
		t.Errorf("reason weights sum to %d, score is %d", sum, score)
	}
}

func TestScoreTextMonotonicity(t *testing.T) {
	rs := DefaultRuleset()

	clean := "hello there, see you at the meeting tomorrow"
	base, _ := ScoreText(clean, rs)

	for _, trigger := range []string{"urgent", "spf=fail", "http://", "otp"} {
		grown, _ := ScoreText(clean+" "+trigger, rs)
		if grown < base {
			t.Errorf("adding %q decreased score from %d to %d", trigger, base, grown)
		}
	}
}

func TestScoreTextCleanInput(t *testing.T) {
	rs := DefaultRuleset()

	score, reasons := ScoreText("hello there", rs)
	if score != 0 {
		t.Errorf("score = %d, want 0", score)
	}
	if len(reasons) != 0 {
		t.Errorf("reasons = %+v, want none at scorer level", reasons)
	}
}

func TestScoreHeaderMissingRouting(t *testing.T) {
	rs := DefaultRuleset()

	score, reasons := ScoreHeader("Subject: hello there", rs)
	if score != rs.MissingRoutingWeight {
		t.Errorf("score = %d, want %d", score, rs.MissingRoutingWeight)
	}
	if len(reasons) != 1 || reasons[0].RuleID != RuleMissingRouting {
		t.Errorf("reasons = %+v, want single missing routing reason", reasons)
	}

	score, reasons = ScoreHeader("Received: from relay.example.com\nSubject: hello there", rs)
	if score != 0 {
		t.Errorf("score with Received line = %d, want 0", score)
	}
	if len(reasons) != 0 {
		t.Errorf("reasons with Received line = %+v, want none", reasons)
	}
}

func TestScoreTextEmptyInput(t *testing.T) {
	rs := DefaultRuleset()

	if score, reasons := ScoreText("", rs); score != 0 || len(reasons) != 0 {
		t.Errorf("ScoreText(\"\") = %d, %+v, want 0 and no reasons", score, reasons)
	}
}
