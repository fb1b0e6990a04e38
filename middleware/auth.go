package middleware

import (
	"net/http"
	"strings"

	"github.com/eventful-api/eventful-backend/internal/auth"
	"github.com/gin-gonic/gin"
)

const callerKey = "caller"

// AuthMiddleware validates the JWT and stores the caller identity in the
// request context. The token is read from the Authorization header or,
// failing that, the "token" cookie set at login.
func AuthMiddleware(authSvc auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := ""

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"statusCode": http.StatusUnauthorized, "msg": "invalid Authorization header"})
				return
			}
			tokenStr = parts[1]
		} else if cookie, err := c.Cookie("token"); err == nil {
			tokenStr = cookie
		}

		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"statusCode": http.StatusUnauthorized, "msg": "missing credentials"})
			return
		}

		caller, err := authSvc.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"statusCode": http.StatusUnauthorized, "msg": "invalid token"})
			return
		}

		c.Set(callerKey, caller)
		c.Next()
	}
}

// CallerFromContext returns the authenticated caller stored by AuthMiddleware.
func CallerFromContext(c *gin.Context) (auth.Caller, bool) {
	raw, exists := c.Get(callerKey)
	if !exists {
		return auth.Caller{}, false
	}
	caller, ok := raw.(auth.Caller)
	return caller, ok
}
