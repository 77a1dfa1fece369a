// Package completion implements the chat-completion provider against an
// OpenAI-compatible API.
package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/SookX/Demeter/config"
	domainerrors "github.com/SookX/Demeter/internal/domain/errors"
	"github.com/SookX/Demeter/internal/domain/service"
)

const (
	defaultBaseURL = "https://api.groq.com/openai/v1"
	defaultModel   = "llama-3.3-70b-versatile"

	requestTimeout  = 60 * time.Second
	maxResponseSize = 1 << 20

	userAgent = "demeter/1.0"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// groqClient implements service.CompletionProvider against the Groq API,
// which speaks the OpenAI chat-completion wire format.
type groqClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewGroqProvider is the constructor for groqClient.
func NewGroqProvider(cfg *config.Config) (service.CompletionProvider, error) {
	if cfg.Completion == nil || cfg.Completion.APIKey == "" {
		return nil, errors.New("completion API key not configured")
	}

	baseURL := strings.TrimRight(cfg.Completion.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	model := cfg.Completion.Model
	if model == "" {
		model = defaultModel
	}

	return &groqClient{
		apiKey:  cfg.Completion.APIKey,
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: requestTimeout},
	}, nil
}

// Complete submits the prompt and returns the raw completion text.
func (c *groqClient) Complete(ctx context.Context, req service.CompletionRequest) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens < 0 {
		maxTokens = 0
	}

	payload := chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: strings.TrimSpace(req.SystemPrompt)},
			{Role: "user", Content: req.UserPrompt},
		},
		MaxTokens:   maxTokens,
		Temperature: req.Temperature,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal completion request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "failed to create completion request")
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", domainerrors.ErrUpstreamFailed.WrapMessage("completion service unreachable")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", errors.Wrap(err, "failed to read completion response")
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return "", domainerrors.ErrUpstreamFailed.WrapMessage("malformed completion response")
	}

	if resp.StatusCode >= http.StatusBadRequest {
		errMsg := strings.TrimSpace(completion.Error.Message)
		if errMsg == "" {
			errMsg = resp.Status
		}

		return "", domainerrors.ErrUpstreamFailed.WrapMessage(fmt.Sprintf("completion service error: %s", errMsg))
	}

	if len(completion.Choices) == 0 {
		return "", domainerrors.ErrUpstreamFailed.WrapMessage("completion service returned no choices")
	}

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}
