package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	UserHeader = "X-User-ID"
	userKey    = "userID"
)

// RequireUser rejects requests without a valid X-User-ID. The header is set by
// the gateway that authenticated the caller.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(UserHeader))
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing user"})
			return
		}

		id, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}

		c.Set(userKey, id.String())
		c.Next()
	}
}

// UserID returns the caller set by RequireUser.
func UserID(c *gin.Context) string {
	return c.GetString(userKey)
}
