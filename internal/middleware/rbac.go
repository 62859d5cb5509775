package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/taptime-api/internal/models"
	appErrors "github.com/noah-isme/taptime-api/pkg/errors"
	"github.com/noah-isme/taptime-api/pkg/response"
)

type sessionLoader interface {
	Get(ctx context.Context, id string) (*models.Session, error)
}

// RequireRoles allows the request only when the session is signed in with one of roles.
// It must run after Session.
func RequireRoles(sessions sessionLoader, roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		sessionID := SessionID(c)
		if sessionID == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		session, err := sessions.Get(c.Request.Context(), sessionID)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		user := session.Nav.User
		if user == nil {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "sign in first"))
			c.Abort()
			return
		}
		if _, ok := allowed[user.Role]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
