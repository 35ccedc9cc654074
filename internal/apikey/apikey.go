// Package apikey provides centralized API key resolution for the optional
// neural generation backends (OpenAI, Gemini).
package apikey

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/forgecraft/credentialforge/internal/forgeerrors"
	"github.com/forgecraft/credentialforge/internal/logutil"
)

// APIKeySource represents the source of an API key.
type APIKeySource int

const (
	// APIKeySourceNone indicates no API key was found.
	APIKeySourceNone APIKeySource = iota
	// APIKeySourceEnvironment indicates the key came from an environment variable.
	APIKeySourceEnvironment
	// APIKeySourceParameter indicates the key came from a function parameter.
	APIKeySourceParameter
)

// APIKeyResult contains the resolved API key and metadata about its source.
type APIKeyResult struct {
	Key                 string
	Source              APIKeySource
	EnvironmentVariable string
	Backend             string
}

// APIKeyResolver resolves API keys with a clear precedence order.
type APIKeyResolver struct {
	logger        logutil.LoggerInterface
	apiKeySources map[string]string // backend -> env var mapping
}

// NewAPIKeyResolver creates a new API key resolver using default env var names.
func NewAPIKeyResolver(logger logutil.LoggerInterface) *APIKeyResolver {
	if logger == nil {
		logger = logutil.NewLogger(logutil.InfoLevel, nil, "[apikey] ")
	}

	return &APIKeyResolver{
		logger:        logger,
		apiKeySources: make(map[string]string),
	}
}

// NewAPIKeyResolverWithConfig creates a resolver with custom backend->env var mappings.
func NewAPIKeyResolverWithConfig(logger logutil.LoggerInterface, apiKeySources map[string]string) *APIKeyResolver {
	if logger == nil {
		logger = logutil.NewLogger(logutil.InfoLevel, nil, "[apikey] ")
	}

	return &APIKeyResolver{
		logger:        logger,
		apiKeySources: apiKeySources,
	}
}

// ResolveAPIKey resolves an API key for backend following precedence:
//  1. The environment variable specific to the backend (preferred).
//  2. The explicitly provided key parameter (fallback, for tests/scripts).
func (r *APIKeyResolver) ResolveAPIKey(ctx context.Context, backend, providedKey string) (*APIKeyResult, error) {
	result := &APIKeyResult{
		Backend: backend,
		Source:  APIKeySourceNone,
	}

	envVarName := r.getEnvironmentVariableName(backend)
	if envVarName != "" {
		if envAPIKey := os.Getenv(envVarName); envAPIKey != "" {
			result.Key = envAPIKey
			result.Source = APIKeySourceEnvironment
			result.EnvironmentVariable = envVarName
			r.logger.DebugContext(ctx, "using API key from environment variable %s for backend '%s'",
				envVarName, backend)
			return result, nil
		}
		r.logger.DebugContext(ctx, "environment variable %s not set for backend '%s'", envVarName, backend)
	}

	if providedKey != "" {
		result.Key = providedKey
		result.Source = APIKeySourceParameter
		r.logger.DebugContext(ctx, "using provided API key for backend '%s'", backend)
		return result, nil
	}

	return nil, r.createMissingKeyError(backend, envVarName)
}

// ValidateAPIKey performs basic shape validation on an API key.
func (r *APIKeyResolver) ValidateAPIKey(ctx context.Context, backend, apiKey string) error {
	if apiKey == "" {
		return forgeerrors.New("API key cannot be empty", forgeerrors.CategoryValidation)
	}

	switch strings.ToLower(backend) {
	case "openai":
		if !strings.HasPrefix(apiKey, "sk-") {
			r.logger.WarnContext(ctx, "OpenAI API key does not have the expected 'sk-' prefix")
		}
	case "gemini":
		if len(apiKey) < 20 {
			r.logger.WarnContext(ctx, "Gemini API key appears unusually short")
		}
	}

	r.logger.DebugContext(ctx, "validated API key for backend '%s' (length: %d)", backend, len(apiKey))
	return nil
}

func (r *APIKeyResolver) getEnvironmentVariableName(backend string) string {
	if r.apiKeySources != nil {
		if envVar, ok := r.apiKeySources[backend]; ok && envVar != "" {
			return envVar
		}
	}

	switch strings.ToLower(backend) {
	case "openai":
		return "OPENAI_API_KEY"
	case "gemini":
		return "GEMINI_API_KEY"
	default:
		return strings.ToUpper(backend) + "_API_KEY"
	}
}

func (r *APIKeyResolver) createMissingKeyError(backend, envVarName string) error {
	if envVarName == "" {
		envVarName = r.getEnvironmentVariableName(backend)
	}

	return forgeerrors.Wrap(
		fmt.Errorf("API key required but not found"),
		fmt.Sprintf("API key is required for backend '%s'; set the %s environment variable", backend, envVarName),
		forgeerrors.CategoryConfiguration,
	)
}
