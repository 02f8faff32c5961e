package httpserver

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const buyerIDKey = "buyerID"

// operatorKeyHeader carries the shared operator key for admin endpoints.
const operatorKeyHeader = "X-Operator-Key"

func buyerAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if header == "" || token == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token", "reason": "AuthError"})
			return
		}
		buyerID, err := auth.BuyerFromToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token", "reason": "AuthError"})
			return
		}
		c.Set(buyerIDKey, buyerID)
		c.Next()
	}
}

func operatorAuth(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(operatorKeyHeader)
		if key == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "operator access required", "reason": "AuthError"})
			return
		}
		c.Next()
	}
}

func buyerFrom(c *gin.Context) string {
	return c.GetString(buyerIDKey)
}
