package config

// EngineConfig represents the configuration for the scoring engine
type EngineConfig struct {
	RulesetSource        string
	KeywordWeight        int
	Keywords             []string
	KeywordWeights       map[string]int
	AuthFailureWeight    int
	InsecureLinkWeight   int
	MissingRoutingWeight int
	HighThreshold        int
	MediumThreshold      int
	AuthFailureMarkers   []string
	LinkMarkers          []string
	MaxEchoChars         int
	SQLitePath           string
	MySQLDSN             string
}

// ReputationConfig represents the sender reputation lists
type ReputationConfig struct {
	TrustedTLDs     []string
	PublicProviders []string
	KnownBrands     []string
}

// HTTPConfig represents the configuration for the HTTP transport
type HTTPConfig struct {
	ListenAddress  string
	MaxUploadBytes int64
}

// SMTPConfig represents the configuration for the SMTP filter transport
type SMTPConfig struct {
	ListenAddress  string
	BlockHighRisk  bool
	RiskHeader     string
	ScoreHeader    string
	ReasonsHeader  string
	ForwardEnabled bool
	ForwardAddress string
	ForwardPort    int
}

// GetEngine returns the scoring engine configuration
func (c *Config) GetEngine() EngineConfig {
	return EngineConfig{
		RulesetSource:        c.GetString("engine.ruleset_source"),
		KeywordWeight:        c.GetInt("engine.keyword_weight"),
		Keywords:             c.GetStringSlice("engine.keywords"),
		KeywordWeights:       c.GetStringMapInt("engine.keyword_weights"),
		AuthFailureWeight:    c.GetInt("engine.auth_failure_weight"),
		InsecureLinkWeight:   c.GetInt("engine.insecure_link_weight"),
		MissingRoutingWeight: c.GetInt("engine.missing_routing_weight"),
		HighThreshold:        c.GetInt("engine.high_threshold"),
		MediumThreshold:      c.GetInt("engine.medium_threshold"),
		AuthFailureMarkers:   c.GetStringSlice("engine.auth_failure_markers"),
		LinkMarkers:          c.GetStringSlice("engine.link_markers"),
		MaxEchoChars:         c.GetInt("engine.max_echo_chars"),
		SQLitePath:           c.GetString("engine.sqlite_path"),
		MySQLDSN:             c.GetString("engine.mysql_dsn"),
	}
}

// GetReputation returns the sender reputation configuration
func (c *Config) GetReputation() ReputationConfig {
	return ReputationConfig{
		TrustedTLDs:     c.GetStringSlice("reputation.trusted_tlds"),
		PublicProviders: c.GetStringSlice("reputation.public_providers"),
		KnownBrands:     c.GetStringSlice("reputation.known_brands"),
	}
}

// GetHTTP returns the HTTP transport configuration
func (c *Config) GetHTTP() HTTPConfig {
	return HTTPConfig{
		ListenAddress:  c.GetString("http.listen_address"),
		MaxUploadBytes: c.GetInt64("http.max_upload_bytes"),
	}
}

// GetSMTP returns the SMTP filter configuration
func (c *Config) GetSMTP() SMTPConfig {
	return SMTPConfig{
		ListenAddress:  c.GetString("smtp.listen_address"),
		BlockHighRisk:  c.GetBool("smtp.block_high_risk"),
		RiskHeader:     c.GetString("smtp.headers.risk"),
		ScoreHeader:    c.GetString("smtp.headers.score"),
		ReasonsHeader:  c.GetString("smtp.headers.reasons"),
		ForwardEnabled: c.GetBool("smtp.forward.enabled"),
		ForwardAddress: c.GetString("smtp.forward.address"),
		ForwardPort:    c.GetInt("smtp.forward.port"),
	}
}
