package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/tenancy-api/internal/utils"
)

// PrincipalProvider turns a bearer credential into a principal id.
// identity.Provider satisfies it.
type PrincipalProvider interface {
	GetCurrentPrincipal(ctx context.Context, credential string) (string, error)
}

type AuthMiddleware struct {
	provider PrincipalProvider
}

func NewAuthMiddleware(provider PrincipalProvider) *AuthMiddleware {
	return &AuthMiddleware{
		provider: provider,
	}
}

// JWTAuth rejects requests without a valid bearer token and binds the
// principal to the request.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}

		principalID, err := m.provider.GetCurrentPrincipal(c.Request.Context(), bearerToken[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(string(utils.PrincipalIDKey), principalID)
		c.Request = c.Request.WithContext(utils.WithPrincipalID(c.Request.Context(), principalID))
		c.Next()
	}
}

// PrincipalID returns the principal bound by JWTAuth, or "".
func PrincipalID(c *gin.Context) string {
	return c.GetString(string(utils.PrincipalIDKey))
}
