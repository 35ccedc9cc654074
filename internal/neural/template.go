package neural

import "context"

// TemplateBackend is a thread-safe, always-ready backend that echoes its
// prompt back verbatim (optionally truncated to MaxTokens*4 runes). It is
// used when no remote backend is configured and in tests, and is the
// backend the assembler falls back to when a remote Generator reports
// unavailable.
type TemplateBackend struct{}

func (TemplateBackend) Load(ctx context.Context) error { return nil }
func (TemplateBackend) ThreadSafe() bool                { return true }
func (TemplateBackend) Unload()                         {}

func (TemplateBackend) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	if opts.MaxTokens <= 0 {
		return prompt, nil
	}
	maxRunes := opts.MaxTokens * 4
	runes := []rune(prompt)
	if len(runes) <= maxRunes {
		return prompt, nil
	}
	return string(runes[:maxRunes]), nil
}
