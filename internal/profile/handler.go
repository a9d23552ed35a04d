// File: internal/profile/handler.go
package profile

import (
	"errors"

	"uplio_backend/internal/common"
	"uplio_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for profile handlers.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new profile handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the authenticated profile routes.
func (h *Handler) RegisterRoutes(router *gin.Engine, authMW gin.HandlerFunc) {
	router.GET("/profile", authMW, h.get)
	router.POST("/profile", authMW, h.save)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == "" {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}
	resp, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, gin.H{"profile": resp})
}

func (h *Handler) save(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == "" {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Profile save: invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.ErrBadRequest.WithDetails(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithMessage("Invalid profile payload"))
		return
	}
	resp, err := h.service.Save(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, gin.H{"profile": resp})
}
