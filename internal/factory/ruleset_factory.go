package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mailguard/mail-guardian/internal/adapters/ruleset"
	"github.com/mailguard/mail-guardian/internal/config"
	"github.com/mailguard/mail-guardian/internal/ports"
)

// RulesetFactory creates ruleset sources based on configuration
type RulesetFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewRulesetFactory creates a new ruleset factory
func NewRulesetFactory(cfg *config.Config, logger *zap.Logger) *RulesetFactory {
	return &RulesetFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateRulesetSource creates a ruleset source based on the
// configuration. SQL sources keep the config source as fallback for
// anything the database does not carry.
func (f *RulesetFactory) CreateRulesetSource() (ports.RulesetSource, error) {
	configSource := ruleset.NewConfigSource(f.cfg, f.logger)
	sourceType := f.cfg.GetString("engine.ruleset_source")

	switch sourceType {
	case "config":
		return configSource, nil
	case "sqlite":
		sqlitePath := f.cfg.GetString("engine.sqlite_path")
		if err := os.MkdirAll(filepath.Dir(sqlitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create ruleset database directory: %w", err)
		}
		return ruleset.NewSQLiteSource(sqlitePath, configSource, f.logger), nil
	case "mysql":
		return ruleset.NewMySQLSource(f.cfg.GetString("engine.mysql_dsn"), configSource, f.logger), nil
	default:
		return nil, fmt.Errorf("unsupported ruleset source: %s", sourceType)
	}
}
