// Package middleware holds the gin middlewares shared by every route group.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/apperr"
	"github.com/mamadbah2/dairy/internal/domain/models"
)

const identityKey = "identity"

// Authenticator resolves a bearer token to the calling account.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.Identity, error)
}

// Authenticate rejects requests without a valid bearer token and stores the
// caller's identity on the gin context.
func Authenticate(auth Authenticator, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, no token"})
			return
		}

		identity, err := auth.Authenticate(c.Request.Context(), strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")))
		if err != nil {
			status := apperr.Status(err)
			if status == http.StatusInternalServerError {
				logger.Error("authenticate request", zap.Error(err))
				c.AbortWithStatusJSON(status, gin.H{"message": "Server error", "error": err.Error()})
				return
			}
			logger.Debug("request rejected", zap.Int("status", status), zap.Error(err))
			c.AbortWithStatusJSON(status, gin.H{"message": apperr.Message(err)})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireRole rejects authenticated callers whose role differs from role.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok || identity.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied"})
			return
		}
		c.Next()
	}
}

// IdentityFrom returns the identity stored by Authenticate.
func IdentityFrom(c *gin.Context) (models.Identity, bool) {
	value, ok := c.Get(identityKey)
	if !ok {
		return models.Identity{}, false
	}
	identity, ok := value.(models.Identity)
	return identity, ok
}
