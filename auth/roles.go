package auth

import "github.com/gin-gonic/gin"

// Context key under which ScopeUser stores the filter identity a handler
// is allowed to query for.
const EffectiveUserKey = "effective_user"

// RequireAdmin rejects callers whose verified identity is not the
// configured admin. Must run after AuthMiddleware.
func RequireAdmin(adminUser string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(UserNameKey) != adminUser {
			c.JSON(403, gin.H{"error": "Admin role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// ScopeUser decides which user a list/report request may filter on. An
// admin keeps whatever :user param or ?user= query was requested (empty
// meaning all users); everyone else has the filter replaced with their
// own verified identity. Must run after AuthMiddleware.
func ScopeUser(adminUser string) gin.HandlerFunc {
	return func(c *gin.Context) {
		requested := c.Param("user")
		if requested == "" {
			requested = c.Query("user")
		}
		if caller := c.GetString(UserNameKey); caller != adminUser {
			requested = caller
		}
		c.Set(EffectiveUserKey, requested)
		c.Next()
	}
}
