package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	infraRepo "github.com/printdesk/daybook-api/internal/infrastructure/repository"
	"github.com/printdesk/daybook-api/internal/presentation/http/dto/response"
	"github.com/printdesk/daybook-api/pkg/utils"
)

// AuthMiddleware creates a JWT authentication middleware. On success the
// operator's identity is placed in the Gin context and in the request context
// so repositories can scope queries to the authenticated user.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Request = c.Request.WithContext(infraRepo.WithUser(c.Request.Context(), claims.UserID))

		c.Next()
	}
}
