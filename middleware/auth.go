package middleware

import (
	"net/http"
	"strings"

	"menuhub-backend/models"
	"menuhub-backend/services"
	"menuhub-backend/utils"

	"github.com/gin-gonic/gin"
)

// ScopeKey is the gin context key holding the verified services.Scope.
const ScopeKey = "scope"

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		scope, err := services.ScopeFromClaims(claims)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(ScopeKey, scope)
		c.Set("user_role", scope.Role)
		if scope.UserID != nil {
			c.Set("user_id", *scope.UserID)
		}
		if scope.RestaurantID != nil {
			c.Set("restaurant_id", *scope.RestaurantID)
			c.Set("restaurant_slug", claims.Slug)
		}
		c.Next()
	}
}

// CurrentScope returns the scope stored by AuthMiddleware.
func CurrentScope(c *gin.Context) (services.Scope, bool) {
	v, exists := c.Get(ScopeKey)
	if !exists {
		return services.Scope{}, false
	}
	scope, ok := v.(services.Scope)
	return scope, ok
}

func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists || role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RestaurantMiddleware requires a restaurant session bound to a restaurant.
func RestaurantMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists || role != models.RoleRestaurant {
			c.JSON(http.StatusForbidden, gin.H{"error": "Restaurant access required"})
			c.Abort()
			return
		}

		if _, exists := c.Get("restaurant_id"); !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "No restaurant associated with this session"})
			c.Abort()
			return
		}

		c.Next()
	}
}
