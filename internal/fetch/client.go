package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"recipe-finder/internal/ingredients"
	"recipe-finder/internal/recipes"
	"recipe-finder/internal/shared/telemetry"
)

const (
	healthPath   = "/health"
	generatePath = "/generate-recipes"
)

// Options tunes a Client.
type Options struct {
	// Origin, when set, is sent as the Origin header on generation calls.
	Origin string
	// Timeout bounds each HTTP call. Zero leaves the http.Client default.
	Timeout time.Duration
	// HTTPClient overrides the underlying client.
	HTTPClient *http.Client
}

// Client talks to the recipe-generation service.
type Client struct {
	baseURL    string
	origin     string
	httpClient *http.Client
}

// NewClient constructs a client for the service at baseURL.
func NewClient(baseURL string, opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("RECIPE_API_URL is required")
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		baseURL:    base,
		origin:     strings.TrimSpace(opts.Origin),
		httpClient: httpClient,
	}, nil
}

// BaseURL returns the configured service address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health probes the liveness endpoint.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrServerUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if !isSuccess(resp.StatusCode) {
		return fmt.Errorf("%w: health status %d", ErrServerUnavailable, resp.StatusCode)
	}
	return nil
}

type generateResponse struct {
	Error   json.RawMessage `json:"error"`
	Recipes json.RawMessage `json:"recipes"`
}

// Generate posts a generation request and decodes the recipes.
func (c *Client) Generate(ctx context.Context, in recipes.Request) (recipes.ResultSet, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generatePath, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if c.origin != "" {
		req.Header.Set("Origin", c.origin)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("generate request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read generate response: %w", err)
	}
	telemetry.Info("fetch.generate.response", map[string]any{
		"status": resp.StatusCode,
		"bytes":  len(body),
	})

	if !isSuccess(resp.StatusCode) {
		return nil, &ServerError{Status: resp.StatusCode, Body: string(body)}
	}
	return decodeRecipes(body)
}

func decodeRecipes(body []byte) (recipes.ResultSet, error) {
	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if msg := errorMessage(parsed.Error); msg != "" {
		return nil, &ApplicationError{Message: msg}
	}
	trimmed := bytes.TrimSpace(parsed.Recipes)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrMalformedResponse
	}
	var out recipes.ResultSet
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if out == nil {
		out = recipes.ResultSet{}
	}
	return out, nil
}

// errorMessage returns the text of a truthy "error" field.
func errorMessage(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("false")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(trimmed, &obj); err == nil && obj.Message != "" {
		return obj.Message
	}
	return string(trimmed)
}

// FetchRecipes runs one fetch attempt: precondition, health probe, then generation.
func (c *Client) FetchRecipes(ctx context.Context, list *ingredients.List) (recipes.ResultSet, error) {
	if list == nil || list.Len() == 0 {
		return nil, ErrNoIngredients
	}
	telemetry.Info("fetch.start", map[string]any{
		"ingredients": list.Strings(),
		"base_url":    c.baseURL,
	})
	if err := c.Health(ctx); err != nil {
		return nil, err
	}
	got, err := c.Generate(ctx, recipes.NewRequest(list))
	if err != nil {
		telemetry.Error("fetch.failed", map[string]any{"error": err.Error()})
		return nil, err
	}
	return got, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
