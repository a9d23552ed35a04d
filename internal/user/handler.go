// File: internal/user/handler.go
package user

import (
	"uplio_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for user handlers.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new user handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the routes for registration and the user listing.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.POST("/register", h.register)
	router.GET("/users", h.listUsers)
}

func (h *Handler) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Registration: invalid request body", zap.Error(err))
		common.RespondWithError(c, common.ErrBadRequest.WithMessage("Missing email/password or credential"))
		return
	}
	result, err := h.service.RegisterOrLogin(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	payload := gin.H{
		"user":  ToUserResponse(result.User),
		"token": result.Token,
	}
	if result.Note != "" {
		payload["note"] = result.Note
	}
	common.RespondOK(c, payload)
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondRaw(c, users)
}
