package middleware

import (
	"net/http"
	"slices"

	"vyaha-be/internal/auth"
	"vyaha-be/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const identityKey = "identity"

// RequireRole rejects anonymous callers with 401 and callers outside roles
// with 403. The identity is stored on the gin context for handlers.
func RequireRole(roles ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c.Request.Context())
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		if len(roles) > 0 && !slices.Contains(roles, id.Role) {
			logger.FromCtx(c.Request.Context()).Warn("role not allowed",
				zap.String("role", string(id.Role)),
				zap.String("path", c.FullPath()),
			)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}

		c.Set(identityKey, id)
		c.Next()
	}
}

// Identity returns the identity set by RequireRole.
func Identity(c *gin.Context) auth.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(auth.Identity); ok {
			return id
		}
	}
	id, _ := IdentityFrom(c.Request.Context())
	return id
}
