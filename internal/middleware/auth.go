package middleware

import (
	"context"
	"dsa_tracker_backend/internal/util"
	"dsa_tracker_backend/pkg/logger"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenValidator checks a raw token and returns its claims.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*util.Claims, error)
}

func extractToken(c *gin.Context, cookieName string) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		if token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")); token != "" {
			return token
		}
	}
	if cookieName == "" {
		return ""
	}
	token, err := c.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return token
}

func AuthMiddleware(validator TokenValidator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c, cookieName)
		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := validator.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			logger.Log.Debug("token rejected", zap.Error(err), zap.String("path", c.FullPath()))
			util.RespondError(c, err)
			c.Abort()
			return
		}

		c.Set(util.ContextUserKey, claims)
		c.Next()
	}
}

// TryAuthMiddleware attaches claims when a valid token is present and never rejects.
func TryAuthMiddleware(validator TokenValidator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := extractToken(c, cookieName); tokenString != "" {
			claims, err := validator.ValidateToken(c.Request.Context(), tokenString)
			if err == nil {
				c.Set(util.ContextUserKey, claims)
			} else {
				logger.Log.Debug("ignoring invalid token", zap.Error(err))
			}
		}
		c.Next()
	}
}
