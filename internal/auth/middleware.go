package auth

import (
	"net/http"
	"strings"

	"github.com/fuazim/fitcamp/internal/api"
	"github.com/fuazim/fitcamp/internal/logger"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID    = "user_id"
	ctxUserEmail = "user_email"
	ctxUserRole  = "user_role"
)

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: api.Unauthorized})
}

// AuthMiddleware validates the bearer token and stores its claims on the
// gin context. Every failure is answered with the same 401 body.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) != "Bearer" {
			unauthorized(c)
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			unauthorized(c)
			return
		}

		claims, err := ValidateToken(tokenString, secret)
		if err != nil {
			logger.Debug("rejected token", "error", err, "path", c.Request.URL.Path)
			unauthorized(c)
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxUserEmail, claims.Email)
		c.Set(ctxUserRole, claims.Role)

		c.Next()
	}
}

func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ctxUserRole)
		if !exists {
			unauthorized(c)
			return
		}

		roleStr, ok := role.(string)
		if !ok || roleStr != requiredRole {
			unauthorized(c)
			return
		}

		c.Next()
	}
}

// AdminOnly is AuthMiddleware followed by RequireRole(RoleAdmin).
func AdminOnly(secret string) []gin.HandlerFunc {
	return []gin.HandlerFunc{AuthMiddleware(secret), RequireRole(RoleAdmin)}
}

func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(ctxUserID)
	if !exists {
		return "", false
	}

	id, ok := userID.(string)
	if !ok || id == "" {
		return "", false
	}

	return id, true
}
