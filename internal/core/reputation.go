package core

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	bracketedAddress = regexp.MustCompile(`<(.+?)>`)
	digitRun         = regexp.MustCompile(`\d{3,}`)
)

// Substrings that mark a domain as auto-generated or phishing-style.
var phishingDomainMarkers = []string{"secure", "login", "verify"}

// EvaluateReputation classifies the sender domain of a raw From line.
// Total over any input: a sender without a bracketed address, or with
// a bracketed token that is not an email address, yields an Unknown
// verdict rather than an error.
func EvaluateReputation(senderLine string, rs *Ruleset) ReputationVerdict {
	m := bracketedAddress.FindStringSubmatch(senderLine)
	if m == nil || !strings.Contains(m[1], "@") {
		return ReputationVerdict{Tier: ReputationUnknown, Note: "Could not extract sender domain"}
	}

	email := strings.ToLower(m[1])
	domain := email[strings.LastIndex(email, "@")+1:]

	for _, tld := range rs.TrustedTLDs {
		if strings.HasSuffix(domain, tld) {
			return ReputationVerdict{Tier: ReputationTrusted, Note: "Official organization domain"}
		}
	}

	for _, provider := range rs.PublicProviders {
		if domain == provider {
			return ReputationVerdict{Tier: ReputationNeutral, Note: "Public email provider"}
		}
	}

	// Brand scan covers the whole sender line so display-name spoofing
	// is caught. First matching brand wins, list order breaks ties.
	line := strings.ToLower(senderLine)
	for _, brand := range rs.KnownBrands {
		if strings.Contains(line, brand) && !strings.Contains(domain, brand) {
			return ReputationVerdict{
				Tier: ReputationSuspicious,
				Note: fmt.Sprintf("Brand name '%s' does not match domain", brand),
			}
		}
	}

	if looksPhishingStyle(domain) {
		return ReputationVerdict{Tier: ReputationSuspicious, Note: "Domain looks auto-generated or phishing-style"}
	}

	return ReputationVerdict{Tier: ReputationUnknown, Note: "No strong indicators"}
}

func looksPhishingStyle(domain string) bool {
	if strings.Contains(domain, "-") || digitRun.MatchString(domain) {
		return true
	}
	for _, marker := range phishingDomainMarkers {
		if strings.Contains(domain, marker) {
			return true
		}
	}
	return false
}
