package ports

import "github.com/mailguard/mail-guardian/internal/core"

// RulesetSource defines the interface for loading the scoring ruleset.
// Load runs once at startup; the returned ruleset is immutable for the
// lifetime of the process.
type RulesetSource interface {
	Load() (*core.Ruleset, error)
}
