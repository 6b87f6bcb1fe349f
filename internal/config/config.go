package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance
func New() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/mail-guardian/")
	v.AddConfigPath("$HOME/.mail-guardian")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("MAIL_GUARDIAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.type", "http")

	// HTTP transport defaults
	v.SetDefault("http.listen_address", "0.0.0.0:8080")
	v.SetDefault("http.max_upload_bytes", 5*1024*1024)

	// SMTP filter defaults
	v.SetDefault("smtp.listen_address", "0.0.0.0:10025")
	v.SetDefault("smtp.block_high_risk", false)
	v.SetDefault("smtp.headers.risk", "X-Phishing-Risk")
	v.SetDefault("smtp.headers.score", "X-Phishing-Score")
	v.SetDefault("smtp.headers.reasons", "X-Phishing-Reasons")
	v.SetDefault("smtp.forward.enabled", false)
	v.SetDefault("smtp.forward.address", "127.0.0.1")
	v.SetDefault("smtp.forward.port", 10026)

	// Engine defaults (the stock scoring deployment)
	v.SetDefault("engine.ruleset_source", "config")
	v.SetDefault("engine.keyword_weight", 12)
	v.SetDefault("engine.keywords", []string{
		"verify", "urgent", "suspend", "click", "login", "password",
		"bank", "account blocked", "lottery", "winner", "reward",
		"free", "otp",
	})
	v.SetDefault("engine.keyword_weights", map[string]interface{}{})
	v.SetDefault("engine.auth_failure_weight", 35)
	v.SetDefault("engine.insecure_link_weight", 20)
	v.SetDefault("engine.missing_routing_weight", 20)
	v.SetDefault("engine.high_threshold", 70)
	v.SetDefault("engine.medium_threshold", 35)
	v.SetDefault("engine.auth_failure_markers", []string{"spf=fail", "dkim=fail", "dmarc=fail"})
	v.SetDefault("engine.link_markers", []string{"http://", "bit.ly", "tinyurl"})
	v.SetDefault("engine.max_echo_chars", 1000)
	v.SetDefault("engine.sqlite_path", "/data/mail_guardian_rules.db")
	v.SetDefault("engine.mysql_dsn", "user:password@tcp(localhost:3306)/mail_guardian")

	// Reputation defaults
	v.SetDefault("reputation.trusted_tlds", []string{".gov", ".edu"})
	v.SetDefault("reputation.public_providers", []string{"gmail.com", "outlook.com", "yahoo.com", "icloud.com"})
	v.SetDefault("reputation.known_brands", []string{"sbi", "paypal", "amazon", "google", "microsoft", "apple"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetInt64 gets a 64-bit integer value from the configuration
func (c *Config) GetInt64(key string) int64 {
	return c.v.GetInt64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetStringSlice gets a string slice value from the configuration
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetStringMapInt gets a string-to-int map from the configuration
func (c *Config) GetStringMapInt(key string) map[string]int {
	raw := c.v.GetStringMap(key)
	out := make(map[string]int, len(raw))
	for k, val := range raw {
		out[k] = cast.ToInt(val)
	}
	return out
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
