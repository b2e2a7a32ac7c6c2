package respond

import (
	"github.com/gin-gonic/gin"

	"recipe-finder/internal/shared/telemetry"
)

// ErrorResponse is the flat error body clients of the generation API expect.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error logs and sends an error response with the given status.
func Error(c *gin.Context, status int, message string) {
	telemetry.Error("http.error", map[string]any{
		"status":     status,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	})

	c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}
