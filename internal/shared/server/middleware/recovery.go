package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"recipe-finder/internal/shared/server/respond"
	"recipe-finder/internal/shared/telemetry"
)

// Recovery recovers from panics and returns a 500 with the server error message.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				telemetry.Error("panic", map[string]any{
					"request_id": RequestIDFromContext(c),
					"error":      fmt.Sprint(rec),
					"stack":      string(debug.Stack()),
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
				})
				respond.Error(c, http.StatusInternalServerError, fmt.Sprintf("Server error: %v", rec))
			}
		}()
		c.Next()
	}
}
