package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/tastemap/backend/internal/middleware"
	"github.com/pageza/tastemap/backend/internal/service"
)

// respondError maps service errors to a status and writes a gin.H error body.
// Unexpected errors are attached to the context for the error middleware and
// answered with fallback.
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "taste profile not found"})
	case errors.Is(err, service.ErrUploadNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "upload not found"})
	case errors.Is(err, service.ErrInvalidProfile), errors.Is(err, service.ErrInvalidStats):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEvaluationInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": "achievement evaluation already in progress"})
	case errors.Is(err, service.ErrUploadIncomplete):
		c.JSON(http.StatusConflict, gin.H{"error": "photo has not been uploaded yet"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// currentUser reads the authenticated user id or answers 401.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
	return id, ok
}
