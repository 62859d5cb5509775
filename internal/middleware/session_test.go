package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	appErrors "github.com/noah-isme/taptime-api/pkg/errors"
)

type fakeAuthenticator map[string]string

func (f fakeAuthenticator) Authenticate(token string) (string, error) {
	if id, ok := f[token]; ok {
		return id, nil
	}
	return "", appErrors.Wrap(errors.New("bad token"), appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid session token")
}

func sessionRouter(auth sessionAuthenticator, seen *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", Session(auth), func(c *gin.Context) {
		*seen = SessionID(c)
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestSessionAttachesSessionID(t *testing.T) {
	var seen string
	r := sessionRouter(fakeAuthenticator{"tok": "sess-1"}, &seen)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok")
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "sess-1", seen)
}

func TestSessionRejectsMissingOrMalformedHeader(t *testing.T) {
	for _, header := range []string{"", "tok", "Basic tok"} {
		var seen string
		r := sessionRouter(fakeAuthenticator{"tok": "sess-1"}, &seen)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
		assert.Empty(t, seen)
	}
}

func TestSessionRejectsUnknownToken(t *testing.T) {
	var seen string
	r := sessionRouter(fakeAuthenticator{}, &seen)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer nope")
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid session token")
}
