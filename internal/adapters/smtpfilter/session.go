package smtpfilter

import (
	"fmt"
	"io"

	"github.com/emersion/go-smtp"
	"go.uber.org/zap"

	"github.com/mailguard/mail-guardian/internal/core"
)

// backend implements the go-smtp Backend interface
type backend struct {
	filter *Filter
}

// NewSession creates a new SMTP session
func (b *backend) NewSession(_ *smtp.Conn) (smtp.Session, error) {
	return &session{
		filter:     b.filter,
		recipients: make([]string, 0),
	}, nil
}

// session implements the go-smtp Session interface
type session struct {
	filter     *Filter
	sender     string
	recipients []string
}

// Reset resets the session state
func (s *session) Reset() {
	s.sender = ""
	s.recipients = make([]string, 0)
}

// Logout ends the session
func (s *session) Logout() error {
	return nil
}

// AuthPlain handles PLAIN authentication (not needed for the filter)
func (s *session) AuthPlain(_, _ string) error {
	return smtp.ErrAuthUnsupported
}

// Mail sets the sender address
func (s *session) Mail(from string, _ *smtp.MailOptions) error {
	s.sender = from
	return nil
}

// Rcpt adds a recipient
func (s *session) Rcpt(to string, _ *smtp.RcptOptions) error {
	s.recipients = append(s.recipients, to)
	return nil
}

// Data scores the message header block and either rejects, forwards a
// stamped copy, or accepts silently depending on configuration.
func (s *session) Data(r io.Reader) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		s.filter.logger.Error("Failed to read message data", zap.Error(err))
		return err
	}

	result := s.filter.service.AnalyzeHeader(headerBlock(raw))

	s.filter.logger.Info("Scored incoming message",
		zap.String("sender", s.sender),
		zap.Int("recipients", len(s.recipients)),
		zap.Int("score", result.Score),
		zap.String("risk", string(result.Risk)),
		zap.String("reputation", string(result.Reputation.Tier)))

	if s.filter.cfg.BlockHighRisk && result.Risk == core.RiskHigh {
		s.filter.logger.Info("Rejecting high-risk message",
			zap.String("sender", s.sender),
			zap.Int("score", result.Score))
		return &smtp.SMTPError{
			Code:         550,
			EnhancedCode: smtp.EnhancedCode{5, 7, 1},
			Message:      fmt.Sprintf("Rejected as phishing (score: %d)", result.Score),
		}
	}

	if !s.filter.cfg.ForwardEnabled {
		return nil
	}

	stamped := stampHeaders(raw, s.filter.cfg, result)
	if err := s.filter.forward(s.sender, s.recipients, stamped); err != nil {
		s.filter.logger.Error("Failed to forward message", zap.Error(err))
		return err
	}

	return nil
}
