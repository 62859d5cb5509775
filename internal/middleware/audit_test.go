package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/taptime-api/internal/service"
	"github.com/noah-isme/taptime-api/pkg/logger"
)

type recordingAudit struct {
	entries []service.AuditEntry
}

func (r *recordingAudit) Record(_ context.Context, entry service.AuditEntry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func auditRouter(rec auditRecorder, status int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/tasks/:id",
		func(c *gin.Context) { c.Set(logger.SessionIDKey, "sess-1") },
		Audit(rec, "ADVANCE", "task"),
		func(c *gin.Context) { c.Status(status) },
	)
	return r
}

func TestAuditRecordsSuccessfulRequests(t *testing.T) {
	audit := &recordingAudit{}
	req := httptest.NewRequest(http.MethodPost, "/tasks/7", nil)
	req.Header.Set("User-Agent", "tests")
	auditRouter(audit, http.StatusOK).ServeHTTP(httptest.NewRecorder(), req)

	require.Len(t, audit.entries, 1)
	entry := audit.entries[0]
	assert.Equal(t, "sess-1", entry.SessionID)
	assert.Equal(t, "ADVANCE", entry.Action)
	assert.Equal(t, "task", entry.Resource)
	assert.Equal(t, "7", entry.ResourceID)
	assert.Equal(t, "tests", entry.UserAgent)
	assert.Equal(t, "/tasks/:id", entry.Details["path"])
	assert.Equal(t, http.StatusOK, entry.Details["status"])
}

func TestAuditSkipsFailedRequests(t *testing.T) {
	audit := &recordingAudit{}
	auditRouter(audit, http.StatusConflict).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/tasks/7", nil))
	assert.Empty(t, audit.entries)
}
