package neural

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIBackend generates content via the OpenAI chat completions API.
type OpenAIBackend struct {
	apiKey string
	model  string
	client *openai.Client
}

// NewOpenAIBackend returns a Backend bound to apiKey and model; Load
// performs no network call (the client is lazily valid once constructed),
// but a later failed Generate call still drives the generator to
// unavailable via the caller's error handling.
func NewOpenAIBackend(apiKey, model string) *OpenAIBackend {
	return &OpenAIBackend{apiKey: apiKey, model: model}
}

func (b *OpenAIBackend) Load(ctx context.Context) error {
	client := openai.NewClient(option.WithAPIKey(b.apiKey))
	b.client = client
	return nil
}

func (b *OpenAIBackend) ThreadSafe() bool { return true }

func (b *OpenAIBackend) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.F(b.model),
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		}),
		Temperature: openai.F(float64(opts.Temperature)),
	}
	if opts.MaxTokens > 0 {
		params.MaxTokens = openai.F(int64(opts.MaxTokens))
	}
	if len(opts.Stop) > 0 {
		params.Stop = openai.F(openai.ChatCompletionNewParamsStopUnion(
			openai.ChatCompletionNewParamsStopArray(opts.Stop),
		))
	}

	resp, err := b.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func (b *OpenAIBackend) Unload() {
	b.client = nil
}
