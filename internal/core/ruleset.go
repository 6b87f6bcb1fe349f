package core

import "fmt"

// KeywordRule binds one phishing keyword to its score contribution.
type KeywordRule struct {
	Keyword string
	Weight  int
}

// Ruleset is the per-deployment scoring configuration. It is loaded
// once at startup and read-only afterwards, so concurrent analyses
// share it without synchronization.
type Ruleset struct {
	// Keywords is ordered: evaluation (and therefore reason order)
	// follows slice order.
	Keywords []KeywordRule

	AuthFailureWeight    int
	InsecureLinkWeight   int
	MissingRoutingWeight int

	HighThreshold   int
	MediumThreshold int

	// AuthFailureMarkers and LinkMarkers are matched as substrings of
	// the lowercased input.
	AuthFailureMarkers []string
	LinkMarkers        []string

	// Sender reputation lists.
	TrustedTLDs     []string
	PublicProviders []string
	KnownBrands     []string
}

// DefaultRuleset returns the stock deployment configuration.
func DefaultRuleset() *Ruleset {
	return &Ruleset{
		Keywords: []KeywordRule{
			{Keyword: "verify", Weight: 12},
			{Keyword: "urgent", Weight: 12},
			{Keyword: "suspend", Weight: 12},
			{Keyword: "click", Weight: 12},
			{Keyword: "login", Weight: 12},
			{Keyword: "password", Weight: 12},
			{Keyword: "bank", Weight: 12},
			{Keyword: "account blocked", Weight: 12},
			{Keyword: "lottery", Weight: 12},
			{Keyword: "winner", Weight: 12},
			{Keyword: "reward", Weight: 12},
			{Keyword: "free", Weight: 12},
			{Keyword: "otp", Weight: 12},
		},
		AuthFailureWeight:    35,
		InsecureLinkWeight:   20,
		MissingRoutingWeight: 20,
		HighThreshold:        70,
		MediumThreshold:      35,
		AuthFailureMarkers:   []string{"spf=fail", "dkim=fail", "dmarc=fail"},
		LinkMarkers:          []string{"http://", "bit.ly", "tinyurl"},
		TrustedTLDs:          []string{".gov", ".edu"},
		PublicProviders:      []string{"gmail.com", "outlook.com", "yahoo.com", "icloud.com"},
		KnownBrands:          []string{"sbi", "paypal", "amazon", "google", "microsoft", "apple"},
	}
}

// Validate checks that the ruleset can never decrement a score and
// that the risk tiers are ordered.
func (rs *Ruleset) Validate() error {
	for _, kw := range rs.Keywords {
		if kw.Keyword == "" {
			return fmt.Errorf("keyword rule with empty keyword")
		}
		if kw.Weight < 0 {
			return fmt.Errorf("keyword %q has negative weight %d", kw.Keyword, kw.Weight)
		}
	}
	if rs.AuthFailureWeight < 0 || rs.InsecureLinkWeight < 0 || rs.MissingRoutingWeight < 0 {
		return fmt.Errorf("rule weights must be non-negative")
	}
	if rs.HighThreshold < rs.MediumThreshold {
		return fmt.Errorf("high threshold %d below medium threshold %d", rs.HighThreshold, rs.MediumThreshold)
	}
	return nil
}
