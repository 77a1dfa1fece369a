package completion

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SookX/Demeter/config"
	"github.com/SookX/Demeter/internal/domain/service"
)

func newTestClient(t *testing.T) *groqClient {
	t.Helper()

	cfg := &config.Config{
		Completion: &config.CompletionConfig{APIKey: "test-key"},
	}

	provider, err := NewGroqProvider(cfg)
	require.NoError(t, err)

	client, ok := provider.(*groqClient)
	require.True(t, ok)

	httpmock.ActivateNonDefault(client.client)
	t.Cleanup(httpmock.DeactivateAndReset)

	return client
}

func TestNewGroqProvider_RequiresAPIKey(t *testing.T) {
	_, err := NewGroqProvider(&config.Config{})
	assert.Error(t, err)
}

func TestGroqClient_Complete(t *testing.T) {
	client := newTestClient(t)

	var captured chatCompletionRequest
	httpmock.RegisterResponder("POST", "https://api.groq.com/openai/v1/chat/completions",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "Bearer test-key", req.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(req.Body).Decode(&captured))

			return httpmock.NewStringResponse(200, `{
				"choices": [{"message": {"role": "assistant", "content": "  {\"answer\": 42}  "}}]
			}`), nil
		})

	content, err := client.Complete(context.Background(), service.CompletionRequest{
		SystemPrompt: "You are a gardening assistant.",
		UserPrompt:   "When should I water?",
		MaxTokens:    256,
		Temperature:  0.2,
	})
	require.NoError(t, err)

	// Whitespace around the completion is stripped before parsing.
	assert.Equal(t, `{"answer": 42}`, content)

	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "You are a gardening assistant.", captured.Messages[0].Content)
	assert.Equal(t, "user", captured.Messages[1].Role)
	assert.Equal(t, 256, captured.MaxTokens)
}

func TestGroqClient_Complete_APIError(t *testing.T) {
	client := newTestClient(t)

	httpmock.RegisterResponder("POST", "https://api.groq.com/openai/v1/chat/completions",
		httpmock.NewStringResponder(429, `{"error": {"message": "rate limit exceeded"}}`))

	_, err := client.Complete(context.Background(), service.CompletionRequest{UserPrompt: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit exceeded")
}

func TestGroqClient_Complete_NoChoices(t *testing.T) {
	client := newTestClient(t)

	httpmock.RegisterResponder("POST", "https://api.groq.com/openai/v1/chat/completions",
		httpmock.NewStringResponder(200, `{"choices": []}`))

	_, err := client.Complete(context.Background(), service.CompletionRequest{UserPrompt: "hi"})
	assert.Error(t, err)
}
