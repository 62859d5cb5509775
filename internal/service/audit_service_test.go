package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/taptime-api/internal/dto"
	"github.com/noah-isme/taptime-api/internal/models"
	appErrors "github.com/noah-isme/taptime-api/pkg/errors"
)

type memoryAudit struct {
	logs   []models.AuditLog
	filter models.AuditFilter
	err    error
}

func (m *memoryAudit) CreateAuditLog(_ context.Context, log *models.AuditLog) error {
	if m.err != nil {
		return m.err
	}
	m.logs = append(m.logs, *log)
	return nil
}

func (m *memoryAudit) List(_ context.Context, filter models.AuditFilter) ([]models.AuditLog, error) {
	m.filter = filter
	return m.logs, m.err
}

func TestAuditRecordAttributesUser(t *testing.T) {
	ctx := context.Background()
	sessions := newTestSessions(t)
	id := signIn(t, sessions, models.RoleHRAdmin, "")
	repo := &memoryAudit{}
	svc := NewAuditService(repo, sessions, nil)

	require.NoError(t, svc.Record(ctx, AuditEntry{
		SessionID:  id,
		Action:     models.AuditActionReview,
		Resource:   "approvals",
		ResourceID: "1",
		Details:    map[string]interface{}{"status": 200},
	}))
	require.Len(t, repo.logs, 1)
	log := repo.logs[0]
	require.NotNil(t, log.ActorName)
	assert.Equal(t, "Jane", *log.ActorName)
	assert.Equal(t, "hr-admin", *log.ActorRole)
	assert.Equal(t, "1", *log.ResourceID)
	assert.JSONEq(t, `{"status":200}`, string(log.NewValues))

	logs, err := svc.History(ctx, id, dto.ActivityQuery{Action: " review ", Limit: 10})
	require.NoError(t, err)
	assert.Len(t, logs, 1)
	assert.Equal(t, models.AuditFilter{SessionID: id, Action: "REVIEW", Limit: 10}, repo.filter)
}

func TestAuditAnonymousAndFailures(t *testing.T) {
	ctx := context.Background()
	repo := &memoryAudit{}
	svc := NewAuditService(repo, newTestSessions(t), nil)

	require.NoError(t, svc.Record(ctx, AuditEntry{SessionID: "gone", Action: models.AuditActionLogout, Resource: "session"}))
	assert.Nil(t, repo.logs[0].ActorName)

	repo.err = errors.New("db down")
	assert.ErrorIs(t, svc.Record(ctx, AuditEntry{Action: models.AuditActionLogin}), appErrors.ErrInternal)
	_, err := svc.History(ctx, "s", dto.ActivityQuery{})
	assert.ErrorIs(t, err, appErrors.ErrInternal)
}

func TestNilAuditServiceIsNoop(t *testing.T) {
	var svc *AuditService
	require.NoError(t, svc.Record(context.Background(), AuditEntry{Action: models.AuditActionLogin}))
	logs, err := svc.History(context.Background(), "s", dto.ActivityQuery{})
	require.NoError(t, err)
	assert.Empty(t, logs)
}
