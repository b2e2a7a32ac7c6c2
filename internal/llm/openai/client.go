package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"recipe-finder/internal/llm"
	"recipe-finder/internal/shared/telemetry"
)

const (
	defaultBaseURL = "http://localhost:11434/v1"
	defaultTimeout = 120 * time.Second
)

// Options configures a Client.
type Options struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
	// JSONMode asks the server for a JSON object response.
	JSONMode bool
}

// Client implements llm.Client against any OpenAI-compatible chat completions API.
type Client struct {
	api      *goopenai.Client
	model    string
	jsonMode bool
}

// NewClient constructs a new client.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.Model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" && !strings.Contains(baseURL, "api.openai.com") {
		// Local servers such as Ollama accept any key.
		apiKey = "ollama"
	}
	if apiKey == "" {
		return nil, fmt.Errorf("LLM_API_KEY is required")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	cfg := goopenai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	return &Client{
		api:      goopenai.NewClientWithConfig(cfg),
		model:    opts.Model,
		jsonMode: opts.JSONMode,
	}, nil
}

// Complete sends the prompt as a single user message and returns the reply text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	req := goopenai.ChatCompletionRequest{
		Model: c.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: prompt},
		},
	}
	if c.jsonMode {
		req.ResponseFormat = &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return "", fmt.Errorf("llm request timeout: %w", err)
		}
		var apiErr *goopenai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("llm http status %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
		}
		return "", err
	}
	logUsage(c.model, resp.Usage, time.Since(start))

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("llm response missing choices")
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("llm response empty content")
	}
	return content, nil
}

func logUsage(model string, usage goopenai.Usage, elapsed time.Duration) {
	telemetry.Info("llm.response", map[string]any{
		"model":             model,
		"prompt_tokens":     usage.PromptTokens,
		"completion_tokens": usage.CompletionTokens,
		"total_tokens":      usage.TotalTokens,
		"duration_ms":       float64(elapsed.Microseconds()) / 1000.0,
	})
}

var _ llm.Client = (*Client)(nil)
