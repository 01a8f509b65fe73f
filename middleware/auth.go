package middleware

import (
	"context"
	"strings"

	"hostel-shop-api/response"
	"hostel-shop-api/services"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey  = "userID"
	emailKey   = "email"
	isAdminKey = "isAdmin"
)

// Authenticator resolves a bearer token to the caller.
// *services.IdentityService implements it.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*services.UserIdentity, error)
}

// AuthRequired validates the bearer token and injects the caller into the context
func AuthRequired(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			response.Unauthorized(c, "Authorization header required (Bearer <token>)")
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		identity, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Set(userIDKey, identity.ID)
		c.Set(emailKey, identity.Email)
		c.Set(isAdminKey, identity.IsAdmin)
		c.Next()
	}
}

// AdminRequired must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(isAdminKey) {
			response.Forbidden(c, "Access denied. Admin privileges required")
			return
		}
		c.Next()
	}
}

// GetUserID extracts the caller's user id from context
func GetUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// GetIdentity rebuilds the caller identity set by AuthRequired.
func GetIdentity(c *gin.Context) services.UserIdentity {
	return services.UserIdentity{
		ID:      c.GetString(userIDKey),
		Email:   c.GetString(emailKey),
		IsAdmin: c.GetBool(isAdminKey),
	}
}
