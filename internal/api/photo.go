package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/tastemap/backend/internal/service"
	"github.com/pageza/tastemap/backend/internal/types"
)

type PhotoHandler struct {
	photos service.IPhotoService
}

func NewPhotoHandler(photos service.IPhotoService) *PhotoHandler {
	return &PhotoHandler{photos: photos}
}

func (h *PhotoHandler) RegisterRoutes(router *gin.RouterGroup) {
	photos := router.Group("/photos")
	{
		photos.POST("/upload-url", h.CreateUploadURL)
		photos.POST("/confirm", h.ConfirmUpload)
	}
}

func (h *PhotoHandler) CreateUploadURL(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content_type must be image/jpeg, image/png or image/webp"})
		return
	}

	resp, err := h.photos.CreateUploadURL(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, "failed to create upload url")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PhotoHandler) ConfirmUpload(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.ConfirmPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "upload_id is required"})
		return
	}

	resp, err := h.photos.ConfirmUpload(c.Request.Context(), userID, req.UploadID)
	if err != nil {
		respondError(c, err, "failed to confirm upload")
		return
	}
	c.JSON(http.StatusOK, resp)
}
