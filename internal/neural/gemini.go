package neural

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiBackend generates content via Google's Gemini API.
type GeminiBackend struct {
	apiKey string
	model  string
	client *genai.Client
	gm     *genai.GenerativeModel
}

// NewGeminiBackend returns a Backend bound to apiKey and model.
func NewGeminiBackend(apiKey, model string) *GeminiBackend {
	return &GeminiBackend{apiKey: apiKey, model: model}
}

func (b *GeminiBackend) Load(ctx context.Context) error {
	client, err := genai.NewClient(ctx, option.WithAPIKey(b.apiKey))
	if err != nil {
		return err
	}
	b.client = client
	b.gm = client.GenerativeModel(b.model)
	return nil
}

// ThreadSafe is false: the generative-ai-go model object mutates its own
// GenerationConfig per call, so the orchestrator must serialize access.
func (b *GeminiBackend) ThreadSafe() bool { return false }

func (b *GeminiBackend) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	if opts.MaxTokens > 0 {
		maxTokens := int32(opts.MaxTokens)
		b.gm.MaxOutputTokens = &maxTokens
	}
	temp := opts.Temperature
	b.gm.Temperature = &temp
	if len(opts.Stop) > 0 {
		b.gm.StopSequences = opts.Stop
	}

	resp, err := b.gm.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}
	var out string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out += string(text)
		}
	}
	if out == "" {
		return "", fmt.Errorf("gemini returned no text parts")
	}
	return out, nil
}

func (b *GeminiBackend) Unload() {
	if b.client != nil {
		_ = b.client.Close()
	}
	b.client = nil
	b.gm = nil
}
