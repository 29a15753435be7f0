package middleware

import (
	"net/http"
	"strings"

	photographerRepo "shotfolio/database/repository/photographer"
	"shotfolio/utils"

	"github.com/gin-gonic/gin"
)

// PhotographerAuthMiddleware authenticates photographer requests. The JWT
// must validate and its hash must match the one stored on the account, so a
// sign-in on another device invalidates older tokens.
func PhotographerAuthMiddleware(repo photographerRepo.PhotographerRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		computedHash := utils.HashToken(tokenString)
		p, err := repo.GetByTokenHash(computedHash)
		if err != nil || p == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch or account not found"})
			return
		}

		c.Set("photographerID", p.ID)
		c.Next()
	}
}
