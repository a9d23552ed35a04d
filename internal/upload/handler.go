// File: internal/upload/handler.go
package upload

import (
	"uplio_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for upload handlers.
type Handler struct {
	storage *FileStorageService
	logger  *zap.Logger
}

// NewHandler creates a new upload handler.
func NewHandler(storage *FileStorageService, logger *zap.Logger) *Handler {
	return &Handler{storage: storage, logger: logger}
}

// RegisterRoutes sets up the image upload routes.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.POST("/upload-avatar", h.uploadAvatar)
	router.POST("/upload-header", h.uploadHeader)
}

func (h *Handler) uploadAvatar(c *gin.Context) {
	h.upload(c, "avatar", AvatarsDir)
}

func (h *Handler) uploadHeader(c *gin.Context) {
	h.upload(c, "header", HeadersDir)
}

func (h *Handler) upload(c *gin.Context, field, subDir string) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithMessage("No file"))
		return
	}
	rel, err := h.storage.SaveUploadedFile(fileHeader, subDir)
	if err != nil {
		h.logger.Error("Upload failed", zap.String("field", field), zap.Error(err))
		common.RespondWithError(c, common.ErrInternalServer)
		return
	}
	common.RespondOK(c, gin.H{"path": "/uploads/" + rel})
}
