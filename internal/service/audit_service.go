package service

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/taptime-api/internal/dto"
	"github.com/noah-isme/taptime-api/internal/models"
	appErrors "github.com/noah-isme/taptime-api/pkg/errors"
)

type auditStore interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
	List(ctx context.Context, filter models.AuditFilter) ([]models.AuditLog, error)
}

// AuditEntry describes one recorded session action.
type AuditEntry struct {
	SessionID  string
	Action     string
	Resource   string
	ResourceID string
	Details    map[string]interface{}
	IPAddress  string
	UserAgent  string
}

// AuditService writes and reads the session action trail. A nil *AuditService is a no-op.
type AuditService struct {
	repo     auditStore
	sessions *SessionService
	logger   *zap.Logger
}

// NewAuditService constructs the service.
func NewAuditService(repo auditStore, sessions *SessionService, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{repo: repo, sessions: sessions, logger: logger}
}

// Record stores entry, attributing it to the session's user when one is signed in.
func (s *AuditService) Record(ctx context.Context, entry AuditEntry) error {
	if s == nil || s.repo == nil {
		return nil
	}
	log := &models.AuditLog{
		SessionID: entry.SessionID,
		Action:    entry.Action,
		Resource:  entry.Resource,
		IPAddress: entry.IPAddress,
		UserAgent: entry.UserAgent,
	}
	if entry.ResourceID != "" {
		id := entry.ResourceID
		log.ResourceID = &id
	}
	if len(entry.Details) > 0 {
		body, err := json.Marshal(entry.Details)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode audit details")
		}
		log.NewValues = body
	}
	if s.sessions != nil && entry.SessionID != "" {
		if session, err := s.sessions.Get(ctx, entry.SessionID); err == nil && session.Nav.User != nil {
			name, role := session.Nav.User.Name, string(session.Nav.User.Role)
			log.ActorName = &name
			log.ActorRole = &role
		}
	}
	if err := s.repo.CreateAuditLog(ctx, log); err != nil {
		s.logger.Warn("audit write failed", zap.String("session_id", entry.SessionID), zap.String("action", entry.Action), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record audit log")
	}
	return nil
}

// History lists the session's most recent actions.
func (s *AuditService) History(ctx context.Context, sessionID string, query dto.ActivityQuery) ([]models.AuditLog, error) {
	if s == nil || s.repo == nil {
		return []models.AuditLog{}, nil
	}
	logs, err := s.repo.List(ctx, models.AuditFilter{
		SessionID: sessionID,
		Action:    strings.ToUpper(strings.TrimSpace(query.Action)),
		Limit:     query.Limit,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load activity")
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}
	return logs, nil
}
