// Package main provides the command-line interface for credentialforge.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strings"

	"github.com/forgecraft/credentialforge/internal/apikey"
	"github.com/forgecraft/credentialforge/internal/auditlog"
	"github.com/forgecraft/credentialforge/internal/config"
	"github.com/forgecraft/credentialforge/internal/forgeerrors"
	"github.com/forgecraft/credentialforge/internal/langpack"
	"github.com/forgecraft/credentialforge/internal/logutil"
	"github.com/forgecraft/credentialforge/internal/metrics"
	"github.com/forgecraft/credentialforge/internal/models"
	"github.com/forgecraft/credentialforge/internal/neural"
	"github.com/forgecraft/credentialforge/internal/orchestrator"
	"github.com/forgecraft/credentialforge/internal/patterndb"
	"github.com/forgecraft/credentialforge/internal/progress"
	"github.com/forgecraft/credentialforge/internal/request"
	"github.com/forgecraft/credentialforge/internal/validator"
	"github.com/forgecraft/credentialforge/internal/version"
)

// Exit codes map forgeerrors.ErrorCategory onto process exit status.
const (
	ExitCodeSuccess       = 0
	ExitCodeGenericError  = 1
	ExitCodeValidation    = 2
	ExitCodeDatabase      = 3
	ExitCodeGeneration    = 4
	ExitCodeSynthesizer   = 5
	ExitCodeNeural        = 6
	ExitCodeConfiguration = 7
	ExitCodeCancelled     = 8
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(ExitCodeGenericError)
	}

	logger := logutil.NewLogger(logutil.InfoLevel, os.Stderr, "")
	ctx := logutil.WithCorrelationID(context.Background())

	var err error
	switch os.Args[1] {
	case "generate":
		err = runGenerate(ctx, logger, os.Args[2:])
	case "validate":
		err = runValidate(ctx, logger, os.Args[2:])
	case "db":
		err = runDB(ctx, logger, os.Args[2:])
	case "version", "-version", "--version":
		fmt.Println(version.String())
		return
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(ExitCodeGenericError)
	}

	if err != nil {
		handleError(ctx, err, logger)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `credentialforge — synthetic security-training document generator

Usage:
  credentialforge generate --output-dir DIR --num-files N --formats f1,f2 --credential-types t1,t2 --topics "..." [options]
  credentialforge validate --file PATH [--regex-db PATH] [--verbose]
  credentialforge db add --type T --regex R --description D [--db-file PATH]
  credentialforge db list [--db-file PATH] [--format table|json]
  credentialforge version`)
}

// handleError prints a user-facing message and exits with the code that
// matches the error's forgeerrors category.
func handleError(ctx context.Context, err error, logger logutil.LoggerInterface) {
	logger.ErrorContext(ctx, "%v", err)

	exitCode := ExitCodeGenericError
	if catErr, ok := forgeerrors.IsCategorizedError(err); ok {
		switch catErr.Category() {
		case forgeerrors.CategoryValidation:
			exitCode = ExitCodeValidation
		case forgeerrors.CategoryDatabase:
			exitCode = ExitCodeDatabase
		case forgeerrors.CategoryGeneration:
			exitCode = ExitCodeGeneration
		case forgeerrors.CategorySynthesizer:
			exitCode = ExitCodeSynthesizer
		case forgeerrors.CategoryNeural:
			exitCode = ExitCodeNeural
		case forgeerrors.CategoryConfiguration:
			exitCode = ExitCodeConfiguration
		case forgeerrors.CategoryCancelled:
			exitCode = ExitCodeCancelled
		}
	}

	fmt.Fprintf(os.Stderr, "Error: %s\n", sanitizeErrorMessage(err.Error()))
	os.Exit(exitCode)
}

// sanitizeErrorMessage redacts anything that looks like an API key or
// credentialed URL before an error reaches stderr, so a misconfigured run
// doesn't leak its own neural-backend secret in its failure message.
func sanitizeErrorMessage(message string) string {
	message = regexp.MustCompile(`sk-[A-Za-z0-9]{16,}`).ReplaceAllString(message, "[REDACTED]")
	message = regexp.MustCompile(`(?i)(OPENAI|GEMINI)_API_KEY=\S+`).ReplaceAllString(message, "[REDACTED]")
	message = regexp.MustCompile(`https?://[^:]+:[^@]+@[^/\s]+`).ReplaceAllString(message, "[REDACTED]")
	return message
}

func runGenerate(ctx context.Context, logger logutil.LoggerInterface, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)

	var formats, credTypes, topics, languages stringSliceFlag
	outputDir := fs.String("output-dir", "", "directory to write generated files to (default from config)")
	numFiles := fs.Int("num-files", 1, "number of files to generate")
	fs.Var(&formats, "formats", "output formats, repeatable or comma-separated (e.g. eml,pdf)")
	fs.Var(&credTypes, "credential-types", "credential types to embed, repeatable or comma-separated")
	fs.Var(&topics, "topics", "content topics, repeatable or comma-separated")
	fs.Var(&languages, "language", "languages to sample from, repeatable or comma-separated")
	regexDB := fs.String("regex-db", "", "path to a pattern database JSON file (default: embedded catalog)")
	companyFile := fs.String("company-file", "", "path to a company/language mapping JSON file to merge in")
	embedStrategy := fs.String("embed-strategy", "", "credential embedding strategy: random, metadata, body (default from config)")
	batchSize := fs.Int("batch-size", 0, "files generated per adaptive batch (default from config)")
	seed := fs.Int64("seed", 0, "deterministic RNG seed (0 = random)")
	llmModel := fs.String("llm-model", "", "neural backend model name, or \"template\" to disable neural generation (default from config)")
	workers := fs.Int("workers", 0, "worker pool size (0 = auto)")
	memoryLimitGiB := fs.Float64("memory-limit-gib", 0, "adaptive memory governor limit in GiB (0 = disabled)")
	rateLimitPerMin := fs.Int("rate-limit-per-min", 0, "max file jobs admitted per minute (0 = disabled)")
	minCreds := fs.Int("min-credentials", 1, "minimum credentials embedded per file")
	maxCreds := fs.Int("max-credentials", 1, "maximum credentials embedded per file")
	useNeuralContent := fs.Bool("use-neural-content", false, "generate prose content via the neural backend")
	auditLogFile := fs.String("audit-log-file", "", "path to a JSON-lines audit log (disabled if empty)")
	metricsAddr := fs.String("metrics-addr", "", "address to serve Prometheus /metrics on (disabled if empty)")
	quiet := fs.Bool("quiet", false, "suppress progress output")
	verbose := fs.Bool("verbose", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		return forgeerrors.Wrap(err, "failed to parse generate flags", forgeerrors.CategoryValidation)
	}

	cliFlags := map[string]interface{}{}
	fs.Visit(func(f *flag.Flag) {
		if g, ok := f.Value.(flag.Getter); ok {
			cliFlags[f.Name] = g.Get()
		}
	})

	mgr := config.NewManager(logger)
	if err := mgr.LoadFromFiles(); err != nil {
		return forgeerrors.Wrap(err, "failed to load configuration", forgeerrors.CategoryConfiguration)
	}
	if err := mgr.MergeWithFlags(cliFlags); err != nil {
		return forgeerrors.Wrap(err, "failed to merge flags into configuration", forgeerrors.CategoryConfiguration)
	}
	cfg := mgr.GetConfig()

	if cfg.Verbose || *verbose {
		if l, ok := logger.(*logutil.Logger); ok {
			l.SetLevel(logutil.DebugLevel)
		}
	}

	db, err := loadPatternDB(*regexDB)
	if err != nil {
		return err
	}

	langs := langpack.NewDefault()
	if *companyFile != "" {
		if err := langs.MergeCompaniesFromFile(*companyFile); err != nil {
			return err
		}
	}

	auditLogPath := cfg.AuditLogFile
	if *auditLogFile != "" {
		auditLogPath = *auditLogFile
	}
	var auditLogger auditlog.AuditLogger = auditlog.NewNoOpAuditLogger()
	if auditLogPath != "" {
		fileLogger, err := auditlog.NewFileAuditLogger(auditLogPath, logger)
		if err != nil {
			return err
		}
		defer func() { _ = fileLogger.Close() }()
		auditLogger = fileLogger
	}

	var metricsCollector metrics.Collector = metrics.NewNoopCollector()
	if *metricsAddr != "" {
		promExporter := metrics.NewPrometheusExporter()
		metricsCollector = metrics.NewCollector(promExporter)
		go serveMetrics(*metricsAddr, promExporter, logger)
	}

	modelName := *llmModel
	if modelName == "" {
		modelName = cfg.Neural.DefaultModel
	}
	neuralGen, err := buildNeuralGenerator(ctx, modelName, logger)
	if err != nil {
		return err
	}

	var seedPtr *int64
	if *seed != 0 {
		seedPtr = seed
	}

	dir := *outputDir
	if dir == "" {
		dir = cfg.OutputDir
	}
	batch := *batchSize
	if batch == 0 {
		batch = cfg.BatchSize
	}
	workerCount := *workers
	if workerCount == 0 {
		workerCount = cfg.WorkerCount
	}
	memLimit := *memoryLimitGiB
	if memLimit == 0 {
		memLimit = cfg.MemoryLimitGiB
	}
	strategy := *embedStrategy
	if strategy == "" {
		strategy = cfg.EmbedStrategy
	}

	req := request.Request{
		OutputDir:             dir,
		NumFiles:              *numFiles,
		BatchSize:             batch,
		Formats:               formats,
		CredentialTypes:       credTypes,
		Topics:                topics,
		Languages:             languages,
		EmbedStrategy:         request.EmbedStrategy(strategy),
		Seed:                  seedPtr,
		MinCredentialsPerFile: *minCreds,
		MaxCredentialsPerFile: *maxCreds,
		UseNeuralContent:      *useNeuralContent,
		MemoryLimitGiB:        memLimit,
		MaxWorkers:            workerCount,
		RateLimitPerMin:       *rateLimitPerMin,
	}

	orch := orchestrator.New(db, langs, derefSeed(seedPtr), neuralGen, auditLogger, metricsCollector, logger).
		WithMemoryLimit(memLimit).
		WithProgress(progress.New(progress.NewConfig(*quiet)))

	summary, err := orch.Run(ctx, req)
	if err != nil && summary.Succeeded == 0 {
		return err
	}

	fmt.Printf("Generated %d/%d files (%d failed) in %s\n", summary.Succeeded, summary.Requested, summary.Failed, summary.Duration)
	if err != nil {
		return err
	}
	return nil
}

func derefSeed(s *int64) int64 {
	if s == nil {
		return 0
	}
	return *s
}

func loadPatternDB(path string) (*patterndb.Database, error) {
	if path == "" {
		return patterndb.NewDefault(), nil
	}
	return patterndb.LoadFromFile(path)
}

// buildNeuralGenerator resolves modelName to a backend and API key, or
// falls back to the always-ready template backend when modelName is
// "template" or unknown.
func buildNeuralGenerator(ctx context.Context, modelName string, logger logutil.LoggerInterface) (*neural.Generator, error) {
	if modelName == "" || modelName == "template" || !models.IsKnown(modelName) {
		gen := neural.New(neural.TemplateBackend{})
		if err := gen.Load(ctx); err != nil {
			return nil, err
		}
		return gen, nil
	}

	info, err := models.Get(modelName)
	if err != nil {
		return nil, forgeerrors.Wrap(err, "unknown neural model", forgeerrors.CategoryConfiguration)
	}

	resolver := apikey.NewAPIKeyResolver(logger)
	keyResult, err := resolver.ResolveAPIKey(ctx, info.Provider, "")
	if err != nil {
		return nil, err
	}
	if err := resolver.ValidateAPIKey(ctx, info.Provider, keyResult.Key); err != nil {
		return nil, err
	}

	var gen *neural.Generator
	switch info.Provider {
	case "openai":
		gen = neural.New(neural.NewOpenAIBackend(keyResult.Key, info.APIModelID))
	case "gemini":
		gen = neural.New(neural.NewGeminiBackend(keyResult.Key, info.APIModelID))
	default:
		gen = neural.New(neural.TemplateBackend{})
	}

	if err := gen.Load(ctx); err != nil {
		return nil, err
	}
	return gen, nil
}

func serveMetrics(addr string, exporter *metrics.PrometheusExporter, logger logutil.LoggerInterface) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", exporter.Handler())
	logger.Info("serving metrics on %s/metrics", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics server stopped: %v", err)
	}
}

func runValidate(ctx context.Context, logger logutil.LoggerInterface, args []string) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	file := fs.String("file", "", "path to the file to validate")
	regexDB := fs.String("regex-db", "", "path to a pattern database JSON file (default: embedded catalog)")
	verbose := fs.Bool("verbose", false, "show detailed validation results")

	if err := fs.Parse(args); err != nil {
		return forgeerrors.Wrap(err, "failed to parse validate flags", forgeerrors.CategoryValidation)
	}
	if *file == "" {
		return forgeerrors.New("--file is required", forgeerrors.CategoryValidation)
	}

	db, err := loadPatternDB(*regexDB)
	if err != nil {
		return err
	}

	logger.DebugContext(ctx, "validating %s against %d credential types", *file, len(db.ListTypes()))
	report, err := validator.ValidateFile(*file, db)
	if err != nil {
		return err
	}

	if report.Valid {
		fmt.Printf("File validation passed: %s\n", report.File)
	} else {
		fmt.Printf("File validation failed: %s\n", report.File)
	}
	if *verbose {
		fmt.Printf("Credentials detected: %v\n", report.CredentialsFound)
		for _, e := range report.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}
	return nil
}

func runDB(ctx context.Context, logger logutil.LoggerInterface, args []string) error {
	if len(args) == 0 {
		return forgeerrors.New("db requires a subcommand: add, list", forgeerrors.CategoryValidation)
	}

	switch args[0] {
	case "add":
		return runDBAdd(args[1:])
	case "list":
		return runDBList(args[1:])
	default:
		return forgeerrors.New(fmt.Sprintf("unknown db subcommand: %s", args[0]), forgeerrors.CategoryValidation)
	}
}

func runDBAdd(args []string) error {
	fs := flag.NewFlagSet("db add", flag.ContinueOnError)
	credType := fs.String("type", "", "credential type identifier")
	regex := fs.String("regex", "", "regex pattern for the credential type")
	description := fs.String("description", "", "human-readable description")
	generator := fs.String("generator", "", "advisory generator hint")
	dbFile := fs.String("db-file", "regex_db.json", "pattern database file path")

	if err := fs.Parse(args); err != nil {
		return forgeerrors.Wrap(err, "failed to parse db add flags", forgeerrors.CategoryValidation)
	}
	if *credType == "" || *regex == "" || *description == "" {
		return forgeerrors.New("--type, --regex, and --description are required", forgeerrors.CategoryValidation)
	}

	var db *patterndb.Database
	if _, err := os.Stat(*dbFile); err == nil {
		db, err = patterndb.LoadFromFile(*dbFile)
		if err != nil {
			return err
		}
	} else {
		db = patterndb.New()
	}

	if err := db.AddCredentialType(patterndb.Entry{
		Type:        *credType,
		Regex:       *regex,
		Description: *description,
		Generator:   *generator,
	}); err != nil {
		return err
	}
	if err := db.Save(*dbFile); err != nil {
		return err
	}

	fmt.Printf("Added credential type '%s' to %s\n", *credType, *dbFile)
	return nil
}

func runDBList(args []string) error {
	fs := flag.NewFlagSet("db list", flag.ContinueOnError)
	dbFile := fs.String("db-file", "regex_db.json", "pattern database file path")
	format := fs.String("format", "table", "output format: table or json")

	if err := fs.Parse(args); err != nil {
		return forgeerrors.Wrap(err, "failed to parse db list flags", forgeerrors.CategoryValidation)
	}

	db, err := patterndb.LoadFromFile(*dbFile)
	if err != nil {
		return err
	}

	stats := db.Statistics()
	switch strings.ToLower(*format) {
	case "json":
		out, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return forgeerrors.Wrap(err, "failed to marshal database statistics", forgeerrors.CategoryDatabase)
		}
		fmt.Println(string(out))
	default:
		fmt.Printf("Credential Types in %s:\n", *dbFile)
		for _, t := range stats.Types {
			fmt.Printf("  - %s\n", t)
		}
		fmt.Printf("Total: %d\n", stats.TotalTypes)
	}
	return nil
}
