package middleware

import (
	"net/http"
	"strings"

	"github.com/neuronest/neuronest/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token and resolves it to a live user.
// Resolving on every request means tokens for deleted accounts stop working
// immediately even though the tokens themselves are stateless.
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Header("WWW-Authenticate", "Bearer")
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header required",
			})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization format. Use: Bearer <token>",
			})
			c.Abort()
			return
		}

		user, err := authService.Authenticate(tokenString)
		if err != nil {
			c.Header("WWW-Authenticate", "Bearer")
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Could not validate credentials",
			})
			c.Abort()
			return
		}

		c.Set("currentUser", user)
		c.Next()
	}
}
