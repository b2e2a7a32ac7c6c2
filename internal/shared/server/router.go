package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recipe-finder/internal/recipegen"
	"recipe-finder/internal/services/health"
	"recipe-finder/internal/shared/config"
	"recipe-finder/internal/shared/metrics"
	"recipe-finder/internal/shared/server/middleware"
	"recipe-finder/internal/shared/server/respond"
)

// RouterDeps are the handlers the router mounts.
type RouterDeps struct {
	Config          config.Config
	Health          *health.Service
	GenerateHandler *recipegen.Handler
	// Limiter throttles generation; built from Config when nil.
	Limiter *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService()
	}
	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, healthSvc.Status())
	})
	r.GET("/metrics", metrics.Handler())

	if deps.GenerateHandler != nil {
		limiter := deps.Limiter
		if limiter == nil {
			limiter = middleware.NewRateLimiter(middleware.RateLimitRule{
				Rate:  deps.Config.GenerateRatePerSec,
				Burst: deps.Config.GenerateBurst,
			}, nil)
		}
		deps.GenerateHandler.RegisterRoutes(r.Group("", middleware.RateLimit(limiter)))
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "Not found")
	})

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":5001"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
