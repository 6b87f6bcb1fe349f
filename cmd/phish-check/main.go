package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/mailguard/mail-guardian/internal/config"
	"github.com/mailguard/mail-guardian/internal/core"
	"github.com/mailguard/mail-guardian/internal/factory"
	"github.com/mailguard/mail-guardian/internal/logging"
	"github.com/mailguard/mail-guardian/internal/textproc"
)

var (
	inputFile     = flag.String("file", "", "Input file (use stdin if not specified)")
	mode          = flag.String("mode", "auto", "Input mode (header, text, auto)")
	configFile    = flag.String("config", "", "Path to config file (overrides defaults)")
	rulesetSource = flag.String("ruleset", "", "Ruleset source override (config, sqlite, mysql)")
	verbose       = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog       = flag.Bool("json-log", false, "Output logs in JSON format")
)

func main() {
	flag.Parse()

	// Initialize logger
	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Build configuration from defaults, optional file, and flags
	v := config.NewEmptyViper()
	if *configFile != "" {
		v.SetConfigFile(*configFile)
		if err := v.ReadInConfig(); err != nil {
			logger.Fatal("Failed to read config file", zap.Error(err))
		}
	}
	if *rulesetSource != "" {
		v.Set("engine.ruleset_source", *rulesetSource)
	}
	cfg := config.NewFromViper(v)

	// Load the ruleset
	source, err := factory.NewRulesetFactory(cfg, logger).CreateRulesetSource()
	if err != nil {
		logger.Fatal("Failed to create ruleset source", zap.Error(err))
	}
	ruleset, err := source.Load()
	if err != nil {
		logger.Fatal("Failed to load ruleset", zap.Error(err))
	}

	service := core.NewAnalyzerService(ruleset, textproc.New(logger), logger, cfg.GetEngine().MaxEchoChars)

	data, err := readInput(*inputFile)
	if err != nil {
		logger.Fatal("Failed to read input", zap.Error(err))
	}

	startTime := time.Now()
	var result *core.AnalysisResult
	switch *mode {
	case "header":
		result = service.AnalyzeHeader(string(data))
	case "text":
		result = service.AnalyzeBytes(data)
	case "auto":
		result = service.Analyze(string(data))
	default:
		fmt.Fprintf(os.Stderr, "Unknown mode: %s\n", *mode)
		os.Exit(2)
	}

	printResult(result, time.Since(startTime))
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(bufio.NewReader(os.Stdin))
	}
	return os.ReadFile(path)
}

func printResult(result *core.AnalysisResult, duration time.Duration) {
	fmt.Printf("\n=== Analysis ===\n")
	fmt.Printf("Mode: %s\n", result.Mode)
	if result.Mode == core.ModeHeader {
		fmt.Printf("Subject: %s\n", result.Fields.Subject)
		fmt.Printf("From: %s\n", result.Fields.Sender)
		fmt.Printf("To: %s\n", result.Fields.Receiver)
		fmt.Printf("Date: %s\n", result.Fields.Date)
	}

	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("Risk: %s\n", result.Risk)
	fmt.Printf("Score: %d\n", result.Score)
	fmt.Printf("Domain reputation: %s (%s)\n", result.Reputation.Tier, result.Reputation.Note)
	fmt.Printf("Reasons:\n")
	for _, reason := range result.RenderedReasons() {
		fmt.Printf("  - %s\n", reason)
	}
	fmt.Printf("Processing time: %v\n", duration)
}
