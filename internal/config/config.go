// Package config handles loading and managing application configuration.
package config

import (
	"github.com/forgecraft/credentialforge/internal/logutil"
)

// Configuration constants
const (
	// AppName is used for config directory naming.
	AppName = "credentialforge"

	// ConfigFilename is the name of the configuration file.
	ConfigFilename = "config.yaml"

	// APIKeyEnvVar is the environment variable consulted for the neural
	// backend's API key when AppConfig.APIKey is not set directly.
	APIKeyEnvVar = "CREDENTIALFORGE_API_KEY"

	// Default values
	DefaultOutputDir     = "./output"
	DefaultModel         = "template"
	DefaultEmbedStrategy = "random"
	DefaultBatchSize     = 10
	DefaultWorkerCount   = 4
)

// NeuralConfig configures the optional neural content backend.
type NeuralConfig struct {
	// DefaultModel names the model from internal/models used when a
	// request does not specify one.
	DefaultModel string `yaml:"default_model"`
	// Temperature is the default sampling temperature.
	Temperature float64 `yaml:"temperature"`
	// MaxTokens caps generated content length when nonzero, overriding
	// the model's own default.
	MaxTokens int `yaml:"max_tokens"`
}

// NetworkConfig configures outbound network behavior for neural API calls.
type NetworkConfig struct {
	SSLVerify      bool   `yaml:"ssl_verify"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Retries        int    `yaml:"retries"`
	ProxyHTTP      string `yaml:"proxy_http,omitempty"`
	ProxyHTTPS     string `yaml:"proxy_https,omitempty"`
}

// FormatConfig holds per-format structural defaults (e.g. page counts for
// PDF/document formats) used when a request doesn't override them.
type FormatConfig struct {
	MinPages int `yaml:"min_pages,omitempty"`
	MaxPages int `yaml:"max_pages,omitempty"`
}

// AppConfig holds configuration settings loaded from a config file,
// environment variables, and CLI flags, in that order of precedence.
type AppConfig struct {
	// OutputDir is the directory generated files are written to.
	OutputDir string `yaml:"output_dir" flag:"output-dir"`

	// BatchSize is the default number of files generated per adaptive
	// batch when a request does not override it.
	BatchSize int `yaml:"batch_size" flag:"batch-size"`

	// WorkerCount is the default worker pool size.
	WorkerCount int `yaml:"worker_count" flag:"workers"`

	// MemoryLimitGiB enables the adaptive memory governor when nonzero.
	MemoryLimitGiB float64 `yaml:"memory_limit_gib" flag:"memory-limit-gib"`

	// EmbedStrategy is the default credential embedding strategy
	// ("random", "near_keyword", "structured").
	EmbedStrategy string `yaml:"embed_strategy" flag:"embed-strategy"`

	// LogLevel and Verbose control diagnostic output.
	LogLevel  logutil.LogLevel `yaml:"log_level" flag:"log-level"`
	Verbose   bool             `yaml:"verbose" flag:"verbose"`
	UseColors bool             `yaml:"use_colors" flag:"use-colors"`
	DryRun    bool             `yaml:"-" flag:"dry-run"`

	// AuditLogEnabled and AuditLogFile control the JSON-lines audit
	// trail written for each run.
	AuditLogEnabled bool   `yaml:"audit_log_enabled" flag:"audit-log"`
	AuditLogFile    string `yaml:"audit_log_file" flag:"audit-log-file"`

	// Neural configures the optional LLM-backed content backend.
	Neural NeuralConfig `yaml:"neural"`

	// Network configures outbound calls the neural backend makes.
	Network NetworkConfig `yaml:"network"`

	// Formats holds per-format structural defaults, keyed by format
	// name (e.g. "pdf", "xlsx").
	Formats map[string]FormatConfig `yaml:"formats,omitempty"`

	// APIKey is resolved from the environment and never persisted to
	// the config file.
	APIKey string `yaml:"-"`
}

// DefaultConfig returns a new AppConfig instance with default values.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		OutputDir:      DefaultOutputDir,
		BatchSize:      DefaultBatchSize,
		WorkerCount:    DefaultWorkerCount,
		EmbedStrategy:  DefaultEmbedStrategy,
		LogLevel:       logutil.InfoLevel,
		UseColors:      true,
		AuditLogEnabled: false,
		Neural: NeuralConfig{
			DefaultModel: DefaultModel,
			Temperature:  0.9,
		},
		Network: NetworkConfig{
			SSLVerify:      true,
			TimeoutSeconds: 30,
			Retries:        3,
		},
		Formats: map[string]FormatConfig{
			"pdf":  {MinPages: 1, MaxPages: 5},
			"docx": {MinPages: 1, MaxPages: 8},
			"pptx": {MinPages: 3, MaxPages: 15},
		},
	}
}
