package textproc

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"
)

// Processor provides permissive decoding and bounded echoing of
// untrusted text.
type Processor struct {
	logger *zap.Logger
}

// New creates a new text processor.
func New(logger *zap.Logger) *Processor {
	return &Processor{logger: logger}
}

// DecodeBytes turns arbitrary bytes into valid UTF-8 text. Valid UTF-8
// passes through untouched; anything else is decoded as Windows-1252,
// which maps every byte sequence. Decoding never fails.
func (p *Processor) DecodeBytes(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		// Windows-1252 decoding is total over byte input, so this
		// branch should be unreachable.
		p.logger.Warn("Fallback decode failed, replacing invalid sequences", zap.Error(err))
		return strings.ToValidUTF8(string(data), string(utf8.RuneError))
	}

	p.logger.Debug("Decoded non-UTF-8 input",
		zap.Int("input_bytes", len(data)),
		zap.Int("decoded_bytes", len(decoded)))

	return string(decoded)
}

// TruncateRunes bounds text to at most max characters without ever
// splitting a UTF-8 sequence. A non-positive max disables truncation.
func (p *Processor) TruncateRunes(text string, max int) string {
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}

	runes := []rune(text)
	truncated := string(runes[:max])

	p.logger.Debug("Text truncated",
		zap.Int("original_chars", len(runes)),
		zap.Int("max_chars", max))

	return truncated
}
