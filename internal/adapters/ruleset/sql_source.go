package ruleset

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/mailguard/mail-guardian/internal/core"
)

// SQLSource loads keyword rules and engine settings from a SQL
// database once at startup, for deployments that tune weights without
// shipping a new config file. Values the database does not carry fall
// back to the configuration source.
type SQLSource struct {
	driver   string
	dsn      string
	fallback *ConfigSource
	logger   *zap.Logger
}

// NewSQLiteSource creates a ruleset source backed by a SQLite file.
func NewSQLiteSource(path string, fallback *ConfigSource, logger *zap.Logger) *SQLSource {
	return &SQLSource{
		driver:   "sqlite3",
		dsn:      path,
		fallback: fallback,
		logger:   logger,
	}
}

// NewMySQLSource creates a ruleset source backed by a MySQL database.
func NewMySQLSource(dsn string, fallback *ConfigSource, logger *zap.Logger) *SQLSource {
	return &SQLSource{
		driver:   "mysql",
		dsn:      dsn,
		fallback: fallback,
		logger:   logger,
	}
}

// Load reads the keyword_rules and engine_settings tables. The
// connection is closed before returning: the ruleset is immutable
// after load, so nothing touches the database again.
func (s *SQLSource) Load() (*core.Ruleset, error) {
	rs, err := s.fallback.Load()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(s.driver, s.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open ruleset database: %w", err)
	}
	defer db.Close()

	if err := ensureSchema(db); err != nil {
		return nil, err
	}

	keywords, err := loadKeywordRules(db)
	if err != nil {
		return nil, err
	}
	if len(keywords) > 0 {
		rs.Keywords = keywords
	}

	settings, err := loadEngineSettings(db)
	if err != nil {
		return nil, err
	}
	s.applySettings(rs, settings)

	if err := rs.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ruleset in %s database: %w", s.driver, err)
	}

	s.logger.Info("Loaded ruleset from database",
		zap.String("driver", s.driver),
		zap.Int("keywords", len(rs.Keywords)),
		zap.Int("setting_overrides", len(settings)))

	return rs, nil
}

func (s *SQLSource) applySettings(rs *core.Ruleset, settings map[string]int) {
	for name, value := range settings {
		switch name {
		case "auth_failure_weight":
			rs.AuthFailureWeight = value
		case "insecure_link_weight":
			rs.InsecureLinkWeight = value
		case "missing_routing_weight":
			rs.MissingRoutingWeight = value
		case "high_threshold":
			rs.HighThreshold = value
		case "medium_threshold":
			rs.MediumThreshold = value
		default:
			s.logger.Warn("Ignoring unknown engine setting", zap.String("name", name))
		}
	}
}

func ensureSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS keyword_rules (
			keyword VARCHAR(255) PRIMARY KEY,
			weight INT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create keyword_rules table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS engine_settings (
			name VARCHAR(64) PRIMARY KEY,
			value INT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create engine_settings table: %w", err)
	}

	return nil
}

// loadKeywordRules reads keyword rows sorted by keyword so reason
// order stays deterministic across restarts.
func loadKeywordRules(db *sql.DB) ([]core.KeywordRule, error) {
	rows, err := db.Query(`SELECT keyword, weight FROM keyword_rules ORDER BY keyword`)
	if err != nil {
		return nil, fmt.Errorf("failed to query keyword rules: %w", err)
	}
	defer rows.Close()

	var rules []core.KeywordRule
	for rows.Next() {
		var rule core.KeywordRule
		if err := rows.Scan(&rule.Keyword, &rule.Weight); err != nil {
			return nil, fmt.Errorf("failed to scan keyword rule: %w", err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read keyword rules: %w", err)
	}

	return rules, nil
}

func loadEngineSettings(db *sql.DB) (map[string]int, error) {
	rows, err := db.Query(`SELECT name, value FROM engine_settings`)
	if err != nil {
		return nil, fmt.Errorf("failed to query engine settings: %w", err)
	}
	defer rows.Close()

	settings := make(map[string]int)
	for rows.Next() {
		var name string
		var value int
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("failed to scan engine setting: %w", err)
		}
		settings[name] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read engine settings: %w", err)
	}

	return settings, nil
}
