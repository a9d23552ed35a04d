// File: internal/middleware/error.go
package middleware

import (
	"net/http"

	"uplio_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler creates a Gin middleware for centralized error handling of
// errors pushed onto the gin context and unmatched routes.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			for _, ginErr := range c.Errors {
				if apiErr, isAPIErr := common.IsAPIError(ginErr.Err); isAPIErr {
					common.RespondWithError(c, apiErr)
				} else {
					logger.Error("Unhandled application error",
						zap.Error(ginErr.Err),
						zap.String("path", c.Request.URL.Path),
						zap.String("request_id", c.GetString(RequestIDContextKey)),
					)
					common.RespondWithError(c, common.ErrInternalServer)
				}
				return
			}
		}

		if c.Writer.Status() == http.StatusNotFound && !c.Writer.Written() {
			common.RespondWithError(c, common.ErrNotFound.WithMessage("The requested endpoint does not exist."))
		}
	}
}
