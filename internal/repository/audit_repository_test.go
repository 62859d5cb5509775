package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/taptime-api/internal/models"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	return sqlxdb, mock, func() {
		db.Close()
	}
}

func TestCreateAuditLog(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAuditRepository(db)

	mock.ExpectExec("INSERT INTO audit_logs").WillReturnResult(sqlmock.NewResult(1, 1))

	entry := &models.AuditLog{SessionID: "s1", Action: models.AuditActionNavigate, Resource: "session"}
	require.NoError(t, repo.CreateAuditLog(context.Background(), entry))
	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAuditLogs(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAuditRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "session_id", "actor_name", "actor_role", "action", "resource", "resource_id", "old_values", "new_values", "ip_address", "user_agent", "created_at"}).
		AddRow("a1", "s1", "Jane", "hr-division", "CLOCK", "dashboard", nil, nil, []byte(`{"status":200}`), "127.0.0.1", "test", now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM audit_logs WHERE session_id = $1 AND action = $2 ORDER BY created_at DESC LIMIT $3")).
		WithArgs("s1", "CLOCK", 50).
		WillReturnRows(rows)

	logs, err := repo.List(context.Background(), models.AuditFilter{SessionID: "s1", Action: "CLOCK"})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "dashboard", logs[0].Resource)
	require.NotNil(t, logs[0].ActorName)
	assert.Equal(t, "Jane", *logs[0].ActorName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
