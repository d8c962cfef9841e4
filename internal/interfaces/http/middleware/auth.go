package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"careconnect.backend/internal/domain/entities"
	domainerrors "careconnect.backend/internal/domain/errors"
	"careconnect.backend/internal/interfaces/http/response"
	"careconnect.backend/pkg/logger"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// IdentityKey is the context key for the resolved identity
	IdentityKey = "identity"
)

// Authenticator resolves a bearer token to an identity
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entities.Identity, error)
}

// AuthMiddleware requires a valid bearer token
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			response.Error(c, domainerrors.Unauthorized("Authorization header is required"))
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			response.Error(c, domainerrors.Unauthorized("Invalid authorization format. Use: Bearer <token>"))
			return
		}

		identity, err := auth.Authenticate(c.Request.Context(), strings.TrimPrefix(authHeader, BearerPrefix))
		if err != nil {
			logger.Debug(c.Request.Context(), "Authentication failed")
			response.Error(c, err)
			return
		}

		SetIdentity(c, *identity)
		c.Next()
	}
}

// SetIdentity stores identity on the gin and request contexts
func SetIdentity(c *gin.Context, identity entities.Identity) {
	c.Set(IdentityKey, identity)
	c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), identity.UserID.String()))
}

// GetIdentity returns the identity set by AuthMiddleware
func GetIdentity(c *gin.Context) (entities.Identity, bool) {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return entities.Identity{}, false
	}
	identity, ok := v.(entities.Identity)
	return identity, ok
}

// RequireRole allows only the given roles through
func RequireRole(roles ...entities.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, exists := GetIdentity(c)
		if !exists {
			response.Error(c, domainerrors.Unauthorized("authentication required"))
			return
		}

		for _, role := range roles {
			if identity.Role == role {
				c.Next()
				return
			}
		}

		response.Error(c, domainerrors.Forbidden("Insufficient permissions"))
	}
}

// RequireAdmin allows only admins through
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(entities.UserRoleAdmin)
}
