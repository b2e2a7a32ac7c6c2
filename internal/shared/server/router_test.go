package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"recipe-finder/internal/recipegen"
	"recipe-finder/internal/shared/config"
	"recipe-finder/internal/shared/server/middleware"
)

type cannedLLM struct{ out string }

func (c cannedLLM) Complete(ctx context.Context, prompt string) (string, error) {
	return c.out, nil
}

func testRouter(burst int) http.Handler {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := middleware.NewRateLimiter(middleware.RateLimitRule{Rate: 1, Burst: burst}, func() time.Time {
		return now
	})
	return NewRouter(RouterDeps{
		Config: config.Config{
			CORSAllowOrigin:    []string{"*"},
			GenerateRatePerSec: 1,
			GenerateBurst:      burst,
		},
		GenerateHandler: recipegen.NewHandler(recipegen.NewService(cannedLLM{out: `{"recipes":[]}`})),
		Limiter:         limiter,
	})
}

func TestHealthPayload(t *testing.T) {
	r := testRouter(5)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "healthy" || body["message"] != "Server is running" {
		t.Fatalf("unexpected health body: %v", body)
	}
	if resp.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected request id header")
	}
}

func TestPreflightReturnsNoContent(t *testing.T) {
	r := testRouter(5)
	req := httptest.NewRequest(http.MethodOptions, "/generate-recipes", nil)
	req.Header.Set("Origin", "http://localhost:8081")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
	if resp.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Fatalf("expected CORS allow origin header")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := testRouter(5)
	post := httptest.NewRequest(http.MethodPost, "/generate-recipes", strings.NewReader(`{"ingredients":"egg","num_recipes":1}`))
	post.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(httptest.NewRecorder(), post)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "recipe_generation_started_total") {
		t.Fatalf("expected generation counter in metrics output")
	}
}

func TestGenerateIsRateLimited(t *testing.T) {
	r := testRouter(1)
	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/generate-recipes", strings.NewReader(`{"ingredients":"egg","num_recipes":1}`))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		return resp.Code
	}
	if code := send(); code != http.StatusOK {
		t.Fatalf("first request expected 200, got %d", code)
	}
	if code := send(); code != http.StatusTooManyRequests {
		t.Fatalf("second request expected 429, got %d", code)
	}
}

func TestUnknownRouteIsNotFound(t *testing.T) {
	r := testRouter(5)
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestAddr(t *testing.T) {
	cases := map[string]string{"": ":5001", "8080": ":8080", ":9000": ":9000"}
	for in, want := range cases {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGenerateLimiterBuiltFromConfig(t *testing.T) {
	r := NewRouter(RouterDeps{
		Config: config.Config{
			GenerateRatePerSec: 0.01,
			GenerateBurst:      1,
		},
		GenerateHandler: recipegen.NewHandler(recipegen.NewService(cannedLLM{out: `{"recipes":[]}`})),
	})
	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/generate-recipes", strings.NewReader(`{"ingredients":"egg","num_recipes":1}`))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		codes = append(codes, resp.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Fatalf("expected [200 429], got %v", codes)
	}
}
