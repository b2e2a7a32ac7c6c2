package recipegen

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"recipe-finder/internal/llm"
	"recipe-finder/internal/shared/metrics"
	"recipe-finder/internal/shared/telemetry"
)

// MaxRecipes bounds num_recipes per request.
const MaxRecipes = 10

// jsonObject matches from the first '{' to the last '}' of the model output.
var jsonObject = regexp.MustCompile(`(\{[\s\S]*\})`)

// Service generates recipes by prompting an LLM.
type Service struct {
	LLM llm.Client
}

// NewService constructs a Service. A nil client falls back to the placeholder.
func NewService(client llm.Client) *Service {
	if client == nil {
		client = llm.PlaceholderClient{}
	}
	return &Service{LLM: client}
}

// Generate prompts the model and returns the JSON object it produced.
func (s *Service) Generate(ctx context.Context, ingredients string, numRecipes int) (json.RawMessage, error) {
	if strings.TrimSpace(ingredients) == "" {
		return nil, fmt.Errorf("%w: Ingredients list cannot be empty", ErrInvalidInput)
	}
	if numRecipes < 1 {
		return nil, fmt.Errorf("%w: Number of recipes must be at least 1", ErrInvalidInput)
	}
	if numRecipes > MaxRecipes {
		return nil, fmt.Errorf("%w: Number of recipes must be at most %d", ErrInvalidInput, MaxRecipes)
	}

	metrics.IncGenerationStarted()
	start := time.Now()
	defer func() {
		metrics.ObserveGenerationDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	}()

	raw, err := s.LLM.Complete(ctx, llm.RecipePrompt(ingredients, numRecipes))
	if err != nil {
		metrics.IncGenerationFailed("llm")
		telemetry.Error("recipegen.llm_failed", map[string]any{"error": err.Error()})
		return nil, err
	}

	out, err := extractJSON(raw)
	if err != nil {
		metrics.IncGenerationFailed("parse")
		telemetry.Error("recipegen.parse_failed", map[string]any{"error": err.Error(), "raw_len": len(raw)})
		return nil, err
	}
	metrics.IncGenerationCompleted()
	return out, nil
}

// extractJSON pulls the JSON object out of free-form model output and returns
// it unchanged once it parses as an object.
func extractJSON(raw string) (json.RawMessage, error) {
	match := jsonObject.FindString(raw)
	if match == "" {
		return nil, ErrNoJSON
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(match), &top); err != nil || top == nil {
		return nil, ErrInvalidJSON
	}
	return json.RawMessage(match), nil
}
