package bootstrap

import (
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"recipe-finder/internal/llm"
	openai "recipe-finder/internal/llm/openai"
	"recipe-finder/internal/recipegen"
	"recipe-finder/internal/services/health"
	"recipe-finder/internal/shared/config"
	"recipe-finder/internal/shared/server"
	"recipe-finder/internal/shared/telemetry"
)

// App holds the backend's shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	LLM             llm.Client
	HealthService   *health.Service
	GenerateService *recipegen.Service
	GenerateHandler *recipegen.Handler
}

// Build prepares dependencies and the router. A non-nil client overrides the configured provider.
func Build(cfg config.Config, client llm.Client) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	telemetry.SetLevel(cfg.LogLevel)

	if client == nil {
		built, err := buildLLM(cfg)
		if err != nil {
			return nil, err
		}
		client = built
	}

	app := &App{
		Config:        cfg,
		LLM:           client,
		HealthService: health.NewService(),
	}
	app.GenerateService = recipegen.NewService(client)
	app.GenerateHandler = recipegen.NewHandler(app.GenerateService)
	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		Health:          app.HealthService,
		GenerateHandler: app.GenerateHandler,
	})
	return app, nil
}

func buildLLM(cfg config.Config) (llm.Client, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.LLMProvider)) {
	case "", "openai", "ollama":
		return openai.NewClient(openai.Options{
			BaseURL:  cfg.LLMBaseURL,
			APIKey:   cfg.LLMAPIKey,
			Model:    cfg.LLMModel,
			Timeout:  cfg.LLMTimeout,
			JSONMode: true,
		})
	case "none", "placeholder":
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: LLM_PROVIDER=%s; generation requests will fail", cfg.LLMProvider)
			return llm.PlaceholderClient{}, nil
		}
		return nil, fmt.Errorf("LLM_PROVIDER=%s is only allowed in dev", cfg.LLMProvider)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
