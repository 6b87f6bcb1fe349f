package smtpfilter

import (
	"bytes"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-smtp"
	"go.uber.org/zap"

	"github.com/mailguard/mail-guardian/internal/config"
	"github.com/mailguard/mail-guardian/internal/core"
)

// Filter is an SMTP content filter that scores incoming mail headers
// and stamps phishing headers before optional re-injection into a
// downstream MTA. High-risk mail can be rejected outright.
type Filter struct {
	service *core.AnalyzerService
	logger  *zap.Logger
	cfg     config.SMTPConfig
	server  *smtp.Server
}

// NewFilter creates a new SMTP content filter.
func NewFilter(service *core.AnalyzerService, logger *zap.Logger, cfg config.SMTPConfig) *Filter {
	return &Filter{
		service: service,
		logger:  logger,
		cfg:     cfg,
	}
}

// Start starts the SMTP filter service
func (f *Filter) Start() error {
	f.server = smtp.NewServer(&backend{filter: f})

	f.server.Addr = f.cfg.ListenAddress
	f.server.Domain = "localhost"
	f.server.ReadTimeout = 30 * time.Second
	f.server.WriteTimeout = 30 * time.Second
	f.server.MaxMessageBytes = 10 * 1024 * 1024 // 10MB
	f.server.MaxRecipients = 50
	f.server.AllowInsecureAuth = true

	f.logger.Info("SMTP filter starting", zap.String("address", f.cfg.ListenAddress))

	go func() {
		if err := f.server.ListenAndServe(); err != nil {
			if err != smtp.ErrServerClosed {
				f.logger.Error("SMTP server error", zap.Error(err))
			}
		}
	}()

	return nil
}

// Stop stops the SMTP filter service
func (f *Filter) Stop() error {
	if f.server != nil {
		return f.server.Close()
	}
	return nil
}

// forward re-injects the stamped message into the downstream MTA.
func (f *Filter) forward(sender string, recipients []string, data []byte) error {
	addr := fmt.Sprintf("%s:%d", f.cfg.ForwardAddress, f.cfg.ForwardPort)

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}

	conn, err := net.DialTimeout("tcp", addr, 10*time.Second)
	if err != nil {
		return fmt.Errorf("failed to connect to downstream MTA: %w", err)
	}

	if err := conn.SetDeadline(time.Now().Add(30 * time.Second)); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set connection deadline: %w", err)
	}

	c := smtp.NewClient(conn)
	defer c.Close()

	if err := c.Hello(hostname); err != nil {
		return fmt.Errorf("EHLO failed: %w", err)
	}

	if err := c.Mail(sender, nil); err != nil {
		return fmt.Errorf("MAIL FROM failed: %w", err)
	}

	recipientOK := false
	for _, recipient := range recipients {
		if err := c.Rcpt(recipient, nil); err != nil {
			f.logger.Warn("RCPT TO failed for recipient",
				zap.String("recipient", recipient),
				zap.Error(err))
		} else {
			recipientOK = true
		}
	}
	if !recipientOK {
		return fmt.Errorf("all recipients were rejected")
	}

	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("DATA command failed: %w", err)
	}
	if _, err := wc.Write(data); err != nil {
		wc.Close()
		return fmt.Errorf("failed to send message data: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	if err := c.Quit(); err != nil {
		f.logger.Warn("QUIT command failed", zap.Error(err))
		// The message is already accepted downstream at this point.
	}

	return nil
}

// stampHeaders prepends the risk verdict headers to the raw message.
func stampHeaders(raw []byte, cfg config.SMTPConfig, result *core.AnalysisResult) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s: %s\r\n", cfg.RiskHeader, result.Risk)
	fmt.Fprintf(&buf, "%s: %d\r\n", cfg.ScoreHeader, result.Score)
	fmt.Fprintf(&buf, "%s: %s\r\n", cfg.ReasonsHeader, strings.Join(result.RenderedReasons(), "; "))
	buf.Write(raw)
	return buf.Bytes()
}

// headerBlock returns everything before the first blank line, i.e. the
// header section of an RFC 5322 message. Messages without a body
// separator are analyzed whole.
func headerBlock(raw []byte) string {
	if i := bytes.Index(raw, []byte("\r\n\r\n")); i >= 0 {
		return string(raw[:i])
	}
	if i := bytes.Index(raw, []byte("\n\n")); i >= 0 {
		return string(raw[:i])
	}
	return string(raw)
}
