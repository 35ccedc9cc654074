// Package models holds the hardcoded registry of neural backend models the
// forge knows how to drive: which provider serves them, their API
// identifier, and the generation defaults the neural package should apply
// when a caller doesn't override them.
package models

import "fmt"

// ModelInfo contains metadata for a single neural generation model.
type ModelInfo struct {
	// Provider identifies the backend (openai, gemini, template).
	Provider string `json:"provider"`

	// APIModelID is the model identifier used in API calls to the provider.
	APIModelID string `json:"api_model_id"`

	// ContextWindow is the maximum combined tokens for prompt + completion.
	ContextWindow int `json:"context_window"`

	// MaxOutputTokens is the default generation cap applied when a request
	// does not specify one.
	MaxOutputTokens int `json:"max_output_tokens"`

	// DefaultParams carries provider-specific generation defaults
	// (temperature, top_p, ...).
	DefaultParams map[string]interface{} `json:"default_params"`
}

var modelDefinitions = map[string]ModelInfo{
	"gpt-4o-mini": {
		Provider:        "openai",
		APIModelID:      "gpt-4o-mini",
		ContextWindow:   128_000,
		MaxOutputTokens: 800,
		DefaultParams:   map[string]interface{}{"temperature": 0.9},
	},
	"gpt-4o": {
		Provider:        "openai",
		APIModelID:      "gpt-4o",
		ContextWindow:   128_000,
		MaxOutputTokens: 1200,
		DefaultParams:   map[string]interface{}{"temperature": 0.9},
	},
	"gemini-1.5-flash": {
		Provider:        "gemini",
		APIModelID:      "gemini-1.5-flash",
		ContextWindow:   1_000_000,
		MaxOutputTokens: 800,
		DefaultParams:   map[string]interface{}{"temperature": 0.9},
	},
	"gemini-1.5-pro": {
		Provider:        "gemini",
		APIModelID:      "gemini-1.5-pro",
		ContextWindow:   2_000_000,
		MaxOutputTokens: 1200,
		DefaultParams:   map[string]interface{}{"temperature": 0.9},
	},
	"template": {
		Provider:        "template",
		APIModelID:      "template",
		ContextWindow:   0,
		MaxOutputTokens: 0,
		DefaultParams:   map[string]interface{}{},
	},
}

// Get looks up a model by name, returning an error if it is not registered.
func Get(name string) (ModelInfo, error) {
	info, ok := modelDefinitions[name]
	if !ok {
		return ModelInfo{}, fmt.Errorf("unknown model: %s", name)
	}
	return info, nil
}

// IsKnown reports whether name is a registered model.
func IsKnown(name string) bool {
	_, ok := modelDefinitions[name]
	return ok
}

// List returns every registered model name.
func List() []string {
	names := make([]string, 0, len(modelDefinitions))
	for name := range modelDefinitions {
		names = append(names, name)
	}
	return names
}

// ForProvider returns every registered model name for the given provider.
func ForProvider(provider string) []string {
	var names []string
	for name, info := range modelDefinitions {
		if info.Provider == provider {
			names = append(names, name)
		}
	}
	return names
}

// DefaultTemperature extracts the "temperature" default param for a model,
// falling back to 0.9 when unset.
func DefaultTemperature(info ModelInfo) float64 {
	if v, ok := info.DefaultParams["temperature"]; ok {
		if f, ok := v.(float64); ok {
			return f
		}
	}
	return 0.9
}
