package ruleset

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/mailguard/mail-guardian/internal/config"
	"github.com/mailguard/mail-guardian/internal/core"
)

// ConfigSource builds the ruleset from the viper-backed configuration.
type ConfigSource struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewConfigSource creates a new configuration-backed ruleset source.
func NewConfigSource(cfg *config.Config, logger *zap.Logger) *ConfigSource {
	return &ConfigSource{
		cfg:    cfg,
		logger: logger,
	}
}

// Load assembles the ruleset: the keyword list in configured order
// with the uniform default weight, per-keyword weight overrides, and
// the remaining engine and reputation settings.
func (s *ConfigSource) Load() (*core.Ruleset, error) {
	eng := s.cfg.GetEngine()
	rep := s.cfg.GetReputation()

	rs := &core.Ruleset{
		Keywords:             buildKeywordRules(eng),
		AuthFailureWeight:    eng.AuthFailureWeight,
		InsecureLinkWeight:   eng.InsecureLinkWeight,
		MissingRoutingWeight: eng.MissingRoutingWeight,
		HighThreshold:        eng.HighThreshold,
		MediumThreshold:      eng.MediumThreshold,
		AuthFailureMarkers:   eng.AuthFailureMarkers,
		LinkMarkers:          eng.LinkMarkers,
		TrustedTLDs:          rep.TrustedTLDs,
		PublicProviders:      rep.PublicProviders,
		KnownBrands:          rep.KnownBrands,
	}

	if err := rs.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ruleset configuration: %w", err)
	}

	s.logger.Info("Loaded ruleset from configuration",
		zap.Int("keywords", len(rs.Keywords)),
		zap.Int("high_threshold", rs.HighThreshold),
		zap.Int("medium_threshold", rs.MediumThreshold))

	return rs, nil
}

// buildKeywordRules keeps the configured keyword order so reason order
// stays deterministic. Weight overrides that name keywords outside the
// list are appended in sorted order.
func buildKeywordRules(eng config.EngineConfig) []core.KeywordRule {
	rules := make([]core.KeywordRule, 0, len(eng.Keywords))
	seen := make(map[string]bool, len(eng.Keywords))

	for _, keyword := range eng.Keywords {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword == "" || seen[keyword] {
			continue
		}
		seen[keyword] = true

		weight := eng.KeywordWeight
		if override, ok := eng.KeywordWeights[keyword]; ok {
			weight = override
		}
		rules = append(rules, core.KeywordRule{Keyword: keyword, Weight: weight})
	}

	extras := make([]string, 0)
	for keyword := range eng.KeywordWeights {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword != "" && !seen[keyword] {
			extras = append(extras, keyword)
		}
	}
	sort.Strings(extras)
	for _, keyword := range extras {
		rules = append(rules, core.KeywordRule{Keyword: keyword, Weight: eng.KeywordWeights[keyword]})
	}

	return rules
}
