package middleware

import (
	"crypto/subtle"
	"productapi/apperror"
	"strings"

	"github.com/gin-gonic/gin"
)

const bearerPrefix = "Bearer "

var (
	ErrTokenRequired = apperror.Unauthorized("Token required")
	ErrInvalidToken  = apperror.Forbidden("Invalid token")
)

// BearerAuth admits requests whose Authorization header carries token.
// A missing credential is 401, a wrong one 403.
func BearerAuth(token string) gin.HandlerFunc {
	expected := []byte(token)

	return func(c *gin.Context) {
		tokenString := strings.TrimSpace(c.GetHeader("Authorization"))
		if strings.HasPrefix(tokenString, bearerPrefix) {
			tokenString = strings.TrimSpace(tokenString[len(bearerPrefix):])
		}

		if tokenString == "" || tokenString == strings.TrimSpace(bearerPrefix) {
			apperror.Respond(c, ErrTokenRequired)
			return
		}

		if subtle.ConstantTimeCompare([]byte(tokenString), expected) != 1 {
			apperror.Respond(c, ErrInvalidToken)
			return
		}

		c.Next()
	}
}
