package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/tastemap/backend/internal/logger"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler recovers panics and turns errors attached with c.Error into a
// JSON body when the handler did not write one itself.
func ErrorHandler(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("panic in handler", "path", c.Request.URL.Path, "panic", rec)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
			}
		}()

		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		last := c.Errors.Last()
		log.Error("request failed", "path", c.Request.URL.Path, "error", last.Err)
		if !c.Writer.Written() {
			status := c.Writer.Status()
			if status < http.StatusBadRequest {
				status = http.StatusInternalServerError
			}
			c.JSON(status, ErrorResponse{Error: http.StatusText(status)})
		}
	}
}
