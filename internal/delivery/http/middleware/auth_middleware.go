package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/BhupenderNayak/krishi-unnati-app/config"
	"github.com/BhupenderNayak/krishi-unnati-app/internal/delivery/http/response"
	"github.com/BhupenderNayak/krishi-unnati-app/internal/domain"
	"github.com/BhupenderNayak/krishi-unnati-app/pkg/auth"
	"github.com/BhupenderNayak/krishi-unnati-app/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware verifies the Supabase access token and loads the caller's
// profile. The role always comes from the profiles table, never from the JWT,
// since Supabase issues a generic "authenticated" role claim.
func AuthMiddleware(jwksProvider *auth.Provider, cfg *config.Config, profiles domain.ProfileRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var tokenString string

		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else {
			cookie, err := c.Cookie("auth_token")
			if err == nil && cookie != "" {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); ok {
				if cfg.SupabaseJWTSecret == "" {
					return nil, fmt.Errorf("HS256 token received but SUPABASE_JWT_SECRET is not configured")
				}
				return []byte(cfg.SupabaseJWTSecret), nil
			}
			if _, ok := token.Method.(*jwt.SigningMethodRSA); ok {
				return jwksProvider.KeyFunc(token)
			}
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		})

		if err != nil || !token.Valid {
			logger.Log.Debug("token validation failed", "error", err)
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Invalid claims", nil)
			c.Abort()
			return
		}

		sub, _ := claims["sub"].(string)
		email, _ := claims["email"].(string)

		profile, err := profiles.GetByID(c.Request.Context(), sub)
		if err != nil || profile == nil {
			response.Error(c, http.StatusUnauthorized, "Profile not found", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), sub)
		c.Set(string(domain.KeyUserEmail), email)
		c.Set(string(domain.KeyUserRole), string(profile.Role))
		c.Set(string(domain.KeyLanguage), string(profile.PreferredLanguage))

		// Usecases read identity from the request context.
		ctx := c.Request.Context()
		ctx = context.WithValue(ctx, domain.KeyUserID, sub)
		ctx = context.WithValue(ctx, domain.KeyUserEmail, email)
		ctx = context.WithValue(ctx, domain.KeyUserRole, string(profile.Role))
		ctx = context.WithValue(ctx, domain.KeyLanguage, string(profile.PreferredLanguage))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
