package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/noah-isme/taptime-api/pkg/i18n"
)

// Locale stores the best supported Accept-Language match on the request context.
func Locale(supported []string) gin.HandlerFunc {
	tags := make([]language.Tag, 0, len(supported))
	for _, s := range supported {
		if tag, err := language.Parse(s); err == nil {
			tags = append(tags, tag)
		}
	}
	matcher := language.NewMatcher(tags)

	return func(c *gin.Context) {
		header := c.GetHeader("Accept-Language")
		if header == "" || len(tags) == 0 {
			c.Next()
			return
		}
		parsed, _, err := language.ParseAcceptLanguage(header)
		if err != nil || len(parsed) == 0 {
			c.Next()
			return
		}
		_, index, confidence := matcher.Match(parsed...)
		if confidence == language.No {
			c.Next()
			return
		}
		c.Request = c.Request.WithContext(i18n.WithLocale(c.Request.Context(), tags[index].String()))
		c.Next()
	}
}
