package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// IssueToken hands out a signed token for the supplied userName. There is
// no credential check: the system has no user registry and trusts the
// claimed identity, the same trust model the original shipped with. The
// admin role is granted purely by the configured admin identifier.
func IssueToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			UserName string `json:"userName"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.UserName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userName is required"})
			return
		}

		token, err := GenerateToken(req.UserName)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}
