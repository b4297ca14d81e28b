package middleware

import (
	"errors"
	"net/http"

	"github.com/BhupenderNayak/krishi-unnati-app/internal/delivery/http/response"
	"github.com/BhupenderNayak/krishi-unnati-app/pkg/apperror"
	"github.com/BhupenderNayak/krishi-unnati-app/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler converts errors pushed onto the gin context into the standard
// envelope. Unknown errors are logged server-side and masked for the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				response.Error(c, appErr.Code, appErr.Message, nil)
			} else {
				reqID, _ := c.Get("RequestID")
				logger.Log.Error("internal server error", "request_id", reqID, "path", c.FullPath(), "error", err)
				response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			}
		}
	}
}
