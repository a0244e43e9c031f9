package auth

import (
	"net/http"
	"strings"

	"memberpay/internal/api"

	"github.com/gin-gonic/gin"
)

const emailContextKey = "member_email"

func Middleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			api.Error(c, http.StatusUnauthorized, api.CodeBadToken, "Token is invalid or expired")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) != "Bearer" {
			api.Error(c, http.StatusUnauthorized, api.CodeBadToken, "Token is invalid or expired")
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			api.Error(c, http.StatusUnauthorized, api.CodeBadToken, "Token is invalid or expired")
			c.Abort()
			return
		}

		claims, err := ValidateToken(tokenString, jwtSecret)
		if err != nil {
			api.Error(c, http.StatusUnauthorized, api.CodeBadToken, "Token is invalid or expired")
			c.Abort()
			return
		}

		c.Set(emailContextKey, claims.Email)
		c.Next()
	}
}

// GetEmail returns the authenticated member email set by Middleware.
func GetEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(emailContextKey)
	if !exists {
		return "", false
	}

	str, ok := email.(string)
	if !ok || str == "" {
		return "", false
	}

	return str, true
}
