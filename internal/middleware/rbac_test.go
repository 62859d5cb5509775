package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/taptime-api/internal/models"
	appErrors "github.com/noah-isme/taptime-api/pkg/errors"
	"github.com/noah-isme/taptime-api/pkg/logger"
)

type fakeSessions map[string]*models.Session

func (f fakeSessions) Get(_ context.Context, id string) (*models.Session, error) {
	if s, ok := f[id]; ok {
		return s, nil
	}
	return nil, appErrors.ErrUnauthorized
}

func roleRouter(sessions sessionLoader, sessionID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/",
		func(c *gin.Context) {
			if sessionID != "" {
				c.Set(logger.SessionIDKey, sessionID)
			}
		},
		RequireRoles(sessions, models.RoleHRAdmin),
		func(c *gin.Context) { c.Status(http.StatusNoContent) },
	)
	return r
}

func TestRequireRoles(t *testing.T) {
	sessions := fakeSessions{
		"admin":    {ID: "admin", Nav: models.NavState{Screen: models.ScreenDashboard, User: &models.User{Role: models.RoleHRAdmin, Name: "Ana"}}},
		"employee": {ID: "employee", Nav: models.NavState{Screen: models.ScreenDashboard, User: &models.User{Role: models.RoleEmployee, Name: "Ben"}}},
		"guest":    {ID: "guest", Nav: models.NavState{Screen: models.ScreenLogin}},
	}

	cases := []struct {
		sessionID string
		want      int
	}{
		{"admin", http.StatusNoContent},
		{"employee", http.StatusForbidden},
		{"guest", http.StatusForbidden},
		{"missing", http.StatusUnauthorized},
		{"", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		roleRouter(sessions, tc.sessionID).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, tc.want, rec.Code, tc.sessionID)
	}
}
