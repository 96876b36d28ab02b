package ai

import "context"

// Request describes one completion call against a hosted model.
type Request struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
	// ForceJSON asks the provider for a strict JSON object response where the
	// API supports it; DecodeJSON still strips markdown fences afterwards.
	ForceJSON bool
}

// Assistant exposes text completions for the analysis, chat, and letter
// services.
type Assistant interface {
	Enabled() bool
	Complete(ctx context.Context, req Request) (string, error)
}
