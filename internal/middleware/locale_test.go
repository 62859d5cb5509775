package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/taptime-api/pkg/i18n"
)

func TestLocaleMatchesAcceptLanguage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := map[string]string{
		"fil-PH,fil;q=0.9": "fil",
		"en-US":            "en",
		"de":               "",
		"":                 "",
	}
	for header, want := range cases {
		var got string
		r := gin.New()
		r.Use(Locale([]string{"en", "fil"}))
		r.GET("/", func(c *gin.Context) {
			got = i18n.LocaleFromContext(c.Request.Context())
			c.Status(http.StatusNoContent)
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Accept-Language", header)
		}
		r.ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, want, got, header)
	}
}
