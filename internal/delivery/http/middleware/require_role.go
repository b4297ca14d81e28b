package middleware

import (
	"net/http"

	"github.com/BhupenderNayak/krishi-unnati-app/internal/delivery/http/response"
	"github.com/BhupenderNayak/krishi-unnati-app/internal/domain"

	"github.com/gin-gonic/gin"
)

// RequireRole gates a route group to one role. Must run after AuthMiddleware.
func RequireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		got, _ := c.Get(string(domain.KeyUserRole))
		if got != string(role) {
			response.Error(c, http.StatusForbidden, "Insufficient permissions", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
