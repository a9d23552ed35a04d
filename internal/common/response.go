// File: internal/common/response.go
package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RespondWithError sends a JSON error response. Unknown errors are logged and
// surfaced as a generic 500 so internal detail never leaks to the client.
func RespondWithError(c *gin.Context, err error) {
	apiErr, ok := IsAPIError(err)
	if !ok {
		if l, exists := c.Get("logger"); exists {
			if logger, lok := l.(*zap.Logger); lok {
				logger.Error("Unhandled internal error being wrapped", zap.Error(err))
			}
		}
		apiErr = ErrInternalServer
	}

	body := gin.H{"ok": false, "error": apiErr.Message}
	if apiErr.Code != "" {
		body["code"] = apiErr.Code
	}
	if apiErr.Details != nil {
		body["details"] = apiErr.Details
	}
	c.AbortWithStatusJSON(apiErr.StatusCode, body)
}

// RespondOK sends a 200 response wrapped in the {ok:true, ...} envelope.
func RespondOK(c *gin.Context, payload gin.H) {
	body := gin.H{"ok": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// RespondRaw sends a 200 response without the envelope (listing endpoints).
func RespondRaw(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}
