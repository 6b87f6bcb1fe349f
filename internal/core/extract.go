package core

import (
	"regexp"
	"strings"
)

// Precompiled patterns for the standard header fields. Matching is
// single-line: the capture stops at end of line and never crosses a
// header fold.
var (
	subjectPattern = regexp.MustCompile(`(?i)subject:(.*)`)
	fromPattern    = regexp.MustCompile(`(?i)from:(.*)`)
	toPattern      = regexp.MustCompile(`(?i)to:(.*)`)
	datePattern    = regexp.MustCompile(`(?i)date:(.*)`)
)

// ExtractField returns the trimmed remainder of the first line whose
// label matches, case-insensitively, or SentinelNA when the label is
// absent. Total over any input, including empty and label-free text.
func ExtractField(text, label string) string {
	pattern := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(label) + `:(.*)`)
	return extractWith(pattern, text)
}

// ExtractFields pulls the standard fields out of a raw header block.
// Absent fields never block analysis; they come back as SentinelNA.
func ExtractFields(headerText string) ExtractedFields {
	return ExtractedFields{
		Subject:  extractWith(subjectPattern, headerText),
		Sender:   extractWith(fromPattern, headerText),
		Receiver: extractWith(toPattern, headerText),
		Date:     extractWith(datePattern, headerText),
	}
}

func extractWith(pattern *regexp.Regexp, text string) string {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return SentinelNA
	}
	return strings.TrimSpace(m[1])
}
