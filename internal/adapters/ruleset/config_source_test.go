package ruleset

import (
	"testing"

	"go.uber.org/zap"

	"github.com/mailguard/mail-guardian/internal/config"
	"github.com/mailguard/mail-guardian/internal/core"
)

func TestConfigSourceDefaults(t *testing.T) {
	cfg := config.NewFromViper(config.NewEmptyViper())
	source := NewConfigSource(cfg, zap.NewNop())

	rs, err := source.Load()
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}

	want := core.DefaultRuleset()
	if len(rs.Keywords) != len(want.Keywords) {
		t.Errorf("keywords = %d, want %d", len(rs.Keywords), len(want.Keywords))
	}
	if rs.AuthFailureWeight != want.AuthFailureWeight {
		t.Errorf("auth failure weight = %d, want %d", rs.AuthFailureWeight, want.AuthFailureWeight)
	}
	if rs.HighThreshold != want.HighThreshold || rs.MediumThreshold != want.MediumThreshold {
		t.Errorf("thresholds = %d/%d, want %d/%d",
			rs.HighThreshold, rs.MediumThreshold, want.HighThreshold, want.MediumThreshold)
	}
}

func TestConfigSourceKeywordOrderAndOverrides(t *testing.T) {
	v := config.NewEmptyViper()
	v.Set("engine.keywords", []string{"alpha", "beta", "gamma"})
	v.Set("engine.keyword_weight", 7)
	v.Set("engine.keyword_weights", map[string]interface{}{"beta": 30, "zeta": 5})

	source := NewConfigSource(config.NewFromViper(v), zap.NewNop())
	rs, err := source.Load()
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}

	want := []core.KeywordRule{
		{Keyword: "alpha", Weight: 7},
		{Keyword: "beta", Weight: 30},
		{Keyword: "gamma", Weight: 7},
		{Keyword: "zeta", Weight: 5}, // override outside the list, appended
	}
	if len(rs.Keywords) != len(want) {
		t.Fatalf("keywords = %+v, want %+v", rs.Keywords, want)
	}
	for i := range want {
		if rs.Keywords[i] != want[i] {
			t.Errorf("keywords[%d] = %+v, want %+v", i, rs.Keywords[i], want[i])
		}
	}
}

func TestConfigSourceDropsDuplicatesAndBlanks(t *testing.T) {
	v := config.NewEmptyViper()
	v.Set("engine.keywords", []string{"verify", "Verify", "  ", "otp"})

	source := NewConfigSource(config.NewFromViper(v), zap.NewNop())
	rs, err := source.Load()
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}

	if len(rs.Keywords) != 2 {
		t.Errorf("keywords = %+v, want verify and otp only", rs.Keywords)
	}
}

func TestConfigSourceRejectsInvalidRuleset(t *testing.T) {
	v := config.NewEmptyViper()
	v.Set("engine.auth_failure_weight", -1)

	source := NewConfigSource(config.NewFromViper(v), zap.NewNop())
	if _, err := source.Load(); err == nil {
		t.Error("Load() = nil, want error for negative weight")
	}
}
