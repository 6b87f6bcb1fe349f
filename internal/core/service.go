package core

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mailguard/mail-guardian/internal/metrics"
)

// DefaultMaxEchoChars bounds the echoed text in screenshot-mode
// results when no limit is configured.
const DefaultMaxEchoChars = 1000

// TextProcessor decodes and bounds untrusted text for upload input.
type TextProcessor interface {
	// DecodeBytes turns arbitrary bytes into text. It never fails;
	// invalid sequences are decoded permissively.
	DecodeBytes(data []byte) string
	// TruncateRunes bounds text to at most max characters.
	TruncateRunes(text string, max int) string
}

// AnalyzerService orchestrates field extraction, content scoring,
// domain reputation and risk classification for one input. It holds
// no per-request state; the ruleset is read-only after startup, so a
// single instance serves concurrent requests without locking.
type AnalyzerService struct {
	ruleset      *Ruleset
	textproc     TextProcessor
	logger       *zap.Logger
	maxEchoChars int
}

// NewAnalyzerService creates a new analyzer service.
func NewAnalyzerService(ruleset *Ruleset, textproc TextProcessor, logger *zap.Logger, maxEchoChars int) *AnalyzerService {
	if maxEchoChars <= 0 {
		maxEchoChars = DefaultMaxEchoChars
	}
	return &AnalyzerService{
		ruleset:      ruleset,
		textproc:     textproc,
		logger:       logger,
		maxEchoChars: maxEchoChars,
	}
}

// AnalyzeHeader analyzes a raw mail header block: field extraction,
// content scoring over the full text, sender domain reputation.
func (s *AnalyzerService) AnalyzeHeader(raw string) *AnalysisResult {
	started := time.Now()
	fields := ExtractFields(raw)
	score, reasons := ScoreHeader(raw, s.ruleset)
	reputation := EvaluateReputation(fields.Sender, s.ruleset)
	return s.finish(ModeHeader, fields, reputation, score, reasons, "", started)
}

// AnalyzeText analyzes plain message text, typically extracted from a
// screenshot. Field extraction does not apply and reputation is
// stubbed, since there is no sender line to evaluate.
func (s *AnalyzerService) AnalyzeText(raw string) *AnalysisResult {
	started := time.Now()
	score, reasons := ScoreText(raw, s.ruleset)
	fields := ExtractedFields{
		Subject:  SentinelNA,
		Sender:   SentinelNA,
		Receiver: SentinelNA,
		Date:     SentinelNA,
	}
	reputation := ReputationVerdict{Tier: ReputationUnknown, Note: "Detected from screenshot message"}
	echo := s.textproc.TruncateRunes(raw, s.maxEchoChars)
	return s.finish(ModeScreenshot, fields, reputation, score, reasons, echo, started)
}

// AnalyzeBytes decodes uploaded bytes permissively and analyzes the
// result as plain text. Scoring runs over the full decoded text; only
// the echoed copy is truncated.
func (s *AnalyzerService) AnalyzeBytes(raw []byte) *AnalysisResult {
	return s.AnalyzeText(s.textproc.DecodeBytes(raw))
}

// Analyze auto-detects the input mode, the legacy single-endpoint
// contract. Explicit-mode entry points are preferred; this heuristic
// stays for backward compatibility.
func (s *AnalyzerService) Analyze(raw string) *AnalysisResult {
	if DetectHeaderInput(raw) {
		return s.AnalyzeHeader(raw)
	}
	return s.AnalyzeText(raw)
}

// DetectHeaderInput reports whether raw text looks like a mail header
// block rather than plain message text.
func DetectHeaderInput(text string) bool {
	lowered := strings.ToLower(text)
	return strings.Contains(lowered, "received:") || strings.Contains(lowered, "subject:")
}

func (s *AnalyzerService) finish(
	mode AnalysisMode,
	fields ExtractedFields,
	reputation ReputationVerdict,
	score int,
	reasons []Reason,
	echo string,
	started time.Time,
) *AnalysisResult {
	if len(reasons) == 0 {
		reasons = []Reason{{RuleID: RuleNone}}
	}

	result := &AnalysisResult{
		Mode:       mode,
		Fields:     fields,
		Risk:       ClassifyScore(score, s.ruleset),
		Score:      score,
		Reasons:    reasons,
		Reputation: reputation,
		Text:       echo,
		CheckedAt:  time.Now().UTC(),
	}

	metrics.AnalysesTotal.WithLabelValues(string(mode), string(result.Risk)).Inc()
	metrics.AnalysisDuration.WithLabelValues(string(mode)).Observe(time.Since(started).Seconds())

	s.logger.Debug("Analysis complete",
		zap.String("mode", string(mode)),
		zap.Int("score", score),
		zap.String("risk", string(result.Risk)),
		zap.String("reputation", string(reputation.Tier)),
		zap.Int("reasons", len(reasons)))

	return result
}
