package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mailguard/mail-guardian/internal/config"
	"github.com/mailguard/mail-guardian/internal/core"
	"github.com/mailguard/mail-guardian/internal/factory"
	"github.com/mailguard/mail-guardian/internal/logging"
	"github.com/mailguard/mail-guardian/internal/ports"
	"github.com/mailguard/mail-guardian/internal/textproc"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewRulesetFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewServerFactory); err != nil {
		return nil, err
	}

	// Register ruleset source and the loaded ruleset
	if err := container.Provide(func(f *factory.RulesetFactory) (ports.RulesetSource, error) {
		return f.CreateRulesetSource()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(source ports.RulesetSource) (*core.Ruleset, error) {
		return source.Load()
	}); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(textproc.New); err != nil {
		return nil, err
	}

	// Register analyzer service
	if err := container.Provide(func(
		ruleset *core.Ruleset,
		processor *textproc.Processor,
		logger *zap.Logger,
		cfg *config.Config,
	) *core.AnalyzerService {
		return core.NewAnalyzerService(ruleset, processor, logger, cfg.GetEngine().MaxEchoChars)
	}); err != nil {
		return nil, err
	}

	// Register analysis server
	if err := container.Provide(func(f *factory.ServerFactory) (ports.AnalysisServer, error) {
		return f.CreateAnalysisServer()
	}); err != nil {
		return nil, err
	}

	return container, nil
}
