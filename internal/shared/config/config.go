package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration for both the backend and the client.
type Config struct {
	Env             string
	Port            string
	CORSAllowOrigin []string
	LogLevel        string

	LLMProvider string
	LLMBaseURL  string
	LLMModel    string
	LLMAPIKey   string
	LLMTimeout  time.Duration

	GenerateRatePerSec float64
	GenerateBurst      int

	RecipeAPIURL     string
	RecipeAPIOrigin  string
	RecipeAPITimeout time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	return Config{
		Env:                normalizeEnv(getEnv("ENV", "dev")),
		Port:               getEnv("PORT", "5001"),
		CORSAllowOrigin:    splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "*")),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LLMProvider:        getEnv("LLM_PROVIDER", "openai"),
		LLMBaseURL:         getEnv("LLM_BASE_URL", "http://localhost:11434/v1"),
		LLMModel:           getEnv("LLM_MODEL", "llama3.2"),
		LLMAPIKey:          getEnv("LLM_API_KEY", ""),
		LLMTimeout:         getSeconds("LLM_TIMEOUT_SECONDS", 120*time.Second),
		GenerateRatePerSec: getFloat("GENERATE_RATE_PER_SEC", 1),
		GenerateBurst:      getInt("GENERATE_BURST", 5),
		RecipeAPIURL:       getEnv("RECIPE_API_URL", "http://localhost:5001"),
		RecipeAPIOrigin:    getEnv("RECIPE_API_ORIGIN", ""),
		RecipeAPITimeout:   getSeconds("RECIPE_API_TIMEOUT_SECONDS", 0),
	}
}

// loadEnvFiles loads KEY=VALUE files if they exist. Variables already set win.
func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			log.Printf("config: ignoring %s: %v", path, err)
		}
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config: invalid %s=%q, using %d", key, raw, def)
		return def
	}
	return parsed
}

func getFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("config: invalid %s=%q, using %v", key, raw, def)
		return def
	}
	return parsed
}

func getSeconds(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 0 {
		log.Printf("config: invalid %s=%q, using %s", key, raw, def)
		return def
	}
	return time.Duration(parsed) * time.Second
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
