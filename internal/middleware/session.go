package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/taptime-api/pkg/errors"
	"github.com/noah-isme/taptime-api/pkg/logger"
	"github.com/noah-isme/taptime-api/pkg/response"
)

type sessionAuthenticator interface {
	Authenticate(token string) (string, error)
}

// Session protects routes by requiring a valid session token.
func Session(auth sessionAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "missing session token"))
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		sessionID, err := auth.Authenticate(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(logger.SessionIDKey, sessionID)
		c.Next()
	}
}

// SessionID returns the session id attached by Session.
func SessionID(c *gin.Context) string {
	return c.GetString(logger.SessionIDKey)
}
