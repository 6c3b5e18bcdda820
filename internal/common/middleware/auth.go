package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	authmodels "soulscribe-backend/internal/features/auth/models"
	userservice "soulscribe-backend/internal/features/user/service"
)

// TokenValidator is implemented by the auth service.
type TokenValidator interface {
	ValidateToken(token string) (*authmodels.Claims, error)
}

const claimsKey = "claims"

// Auth extracts and validates the bearer token when present. It does not
// reject anonymous requests; pair with RequireAuth on protected groups.
func Auth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		claims, err := validator.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireAuth rejects requests that did not present a valid token.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(claimsKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: bearer token required"})
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects callers whose account does not carry the admin flag.
func RequireAdmin(users userservice.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: bearer token required"})
			return
		}

		user, err := users.GetUser(c.Request.Context(), claims.UserID)
		if err != nil || !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}

		c.Next()
	}
}

// GetClaims returns the authenticated caller's claims, if any.
func GetClaims(c *gin.Context) (*authmodels.Claims, bool) {
	v, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*authmodels.Claims)
	return claims, ok
}
