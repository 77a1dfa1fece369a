package service

import "context"

// CompletionRequest is a single chat-completion call to the language-model
// provider.
type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  float64
}

// CompletionProvider is the narrow interface over the external language-model
// completion service. Everything the application derives from completions
// (news, tips, recommendations, watering predictions) goes through this
// single method so the parsing and deduplication logic around it can be
// tested deterministically with canned responses.
type CompletionProvider interface {
	// Complete submits the prompt and returns the raw completion text.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
