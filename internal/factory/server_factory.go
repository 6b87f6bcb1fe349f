package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mailguard/mail-guardian/internal/adapters/httpapi"
	"github.com/mailguard/mail-guardian/internal/adapters/smtpfilter"
	"github.com/mailguard/mail-guardian/internal/config"
	"github.com/mailguard/mail-guardian/internal/core"
	"github.com/mailguard/mail-guardian/internal/ports"
)

// ServerFactory creates analysis servers based on configuration
type ServerFactory struct {
	cfg     *config.Config
	logger  *zap.Logger
	service *core.AnalyzerService
}

// NewServerFactory creates a new server factory
func NewServerFactory(cfg *config.Config, logger *zap.Logger, service *core.AnalyzerService) *ServerFactory {
	return &ServerFactory{
		cfg:     cfg,
		logger:  logger,
		service: service,
	}
}

// CreateAnalysisServer creates an analysis server based on the configuration
func (f *ServerFactory) CreateAnalysisServer() (ports.AnalysisServer, error) {
	serverType := f.cfg.GetString("server.type")

	switch serverType {
	case "http":
		return httpapi.NewServer(f.service, f.logger, f.cfg.GetHTTP()), nil
	case "smtp":
		return smtpfilter.NewFilter(f.service, f.logger, f.cfg.GetSMTP()), nil
	default:
		return nil, fmt.Errorf("unsupported server type: %s", serverType)
	}
}
