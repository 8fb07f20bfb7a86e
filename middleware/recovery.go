package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/kiranjugdar/security-clearance-tracker-api/model"
)

// Recovery recovers from panics and answers with the standard error envelope.
// The panic detail stays in the server log; the response carries only the
// generic unclassified code.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				requestID := GetRequestID(c)

				slog.Error("panic recovered",
					"error", err,
					"request_id", requestID,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"stack", string(debug.Stack()),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError,
					model.NewErrorResponse(model.CodeUnclassified, "System error occurred", c.Request.URL.Path))
			}
		}()

		c.Next()
	}
}
