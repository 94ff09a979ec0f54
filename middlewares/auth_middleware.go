package middlewares

import (
	"net/http"
	"strings"

	"github.com/OCHOLLA20/75hard-fitness-tracker/models"
	"github.com/OCHOLLA20/75hard-fitness-tracker/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthMiddleware validates the Bearer token and puts userID and email into
// the request context. The DB handle is injected so the lookup fallback does
// not depend on package-level state.
func AuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseJWT(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		email, _ := claims["email"].(string)

		// Prefer the userId claim; fall back to an email lookup for tokens
		// issued before the claim was added.
		if v, ok := claims["userId"].(float64); ok {
			c.Set("userID", uint(v))
			c.Set("email", email)
			c.Next()
			return
		}

		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "email claim missing"})
			return
		}

		var user models.User
		if err := db.Where("email = ? AND is_active = ?", email, true).First(&user).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		c.Set("userID", user.ID)
		c.Set("email", email)
		c.Next()
	}
}
