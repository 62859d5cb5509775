package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/taptime-api/internal/middleware"
	"github.com/noah-isme/taptime-api/internal/models"
	appErrors "github.com/noah-isme/taptime-api/pkg/errors"
	"github.com/noah-isme/taptime-api/pkg/i18n"
	"github.com/noah-isme/taptime-api/pkg/response"
)

type translator interface {
	Notify(ctx context.Context, level, key string, data map[string]interface{}) *i18n.Notification
}

// sessionFromContext returns the session id set by middleware.Session, writing a 401 when absent.
func sessionFromContext(c *gin.Context) (string, bool) {
	id := middleware.SessionID(c)
	if id == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		return "", false
	}
	return id, true
}

// noticeMeta localizes notices into response meta. A single notice lands under "notification".
func noticeMeta(c *gin.Context, tr translator, notices ...*models.Notice) map[string]interface{} {
	if tr == nil {
		return nil
	}
	out := make([]*i18n.Notification, 0, len(notices))
	for _, n := range notices {
		if n == nil {
			continue
		}
		out = append(out, tr.Notify(c.Request.Context(), n.Level, n.Key, n.Data))
	}
	switch len(out) {
	case 0:
		return nil
	case 1:
		return map[string]interface{}{"notification": out[0]}
	default:
		return map[string]interface{}{"notifications": out}
	}
}

func notice(key, level string, data map[string]interface{}) *models.Notice {
	return &models.Notice{Key: key, Level: level, Data: data}
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query parameters"))
		return false
	}
	return true
}
