package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionChecker reports whether the gateway holds an admin token.
type SessionChecker interface {
	IsAuthenticated() bool
}

// RequireSession rejects requests until an admin has signed in through the
// gateway or a token was restored from storage.
func RequireSession(session SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !session.IsAuthenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthenticated",
				"message": "Please log in to continue",
			})
			return
		}
		c.Next()
	}
}
