package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/taptime-api/internal/models"
	appErrors "github.com/noah-isme/taptime-api/pkg/errors"
)

// panelBase is shared by the services that operate on a mounted dashboard panel.
type panelBase struct {
	sessions  *SessionService
	validator *validator.Validate
	logger    *zap.Logger
	newID     func() string
}

func newPanelBase(sessions *SessionService, validate *validator.Validate, logger *zap.Logger) panelBase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return panelBase{sessions: sessions, validator: validate, logger: logger, newID: uuid.NewString}
}

func (b panelBase) metrics() *MetricsService {
	if b.sessions == nil {
		return nil
	}
	return b.sessions.metrics
}

func (b panelBase) validate(req interface{}, message string) error {
	if err := b.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
	}
	return nil
}

func mountedPanel(session *models.Session, view models.View) (*models.PanelState, error) {
	if session.Nav.Screen != models.ScreenDashboard || session.Dashboard == nil {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "dashboard is not mounted")
	}
	panel := session.Dashboard.Panel
	if panel == nil || panel.View != view {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, fmt.Sprintf("%s panel is not mounted", view))
	}
	return panel, nil
}

// read runs fn against the mounted panel without persisting anything.
func (b panelBase) read(ctx context.Context, sessionID string, view models.View, fn func(*models.PanelState) error) error {
	_, err := b.sessions.Update(ctx, sessionID, func(session *models.Session) error {
		panel, err := mountedPanel(session, view)
		if err != nil {
			return err
		}
		if err := fn(panel); err != nil {
			return err
		}
		return errSkipSave
	})
	return err
}

// update runs fn against the mounted panel and saves the session when fn succeeds.
func (b panelBase) update(ctx context.Context, sessionID string, view models.View, fn func(*models.PanelState) error) error {
	_, err := b.sessions.Update(ctx, sessionID, func(session *models.Session) error {
		panel, err := mountedPanel(session, view)
		if err != nil {
			return err
		}
		return fn(panel)
	})
	return err
}

// distinct returns the unique non-empty values in first-seen order.
func distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func reviewNotice(action models.ReviewAction, subject string) *models.Notice {
	key := "request.approved"
	if action == models.ActionReject {
		key = "request.rejected"
	}
	return &models.Notice{Key: key, Level: "success", Data: map[string]interface{}{"Subject": subject}}
}

func splitNames(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			out = append(out, name)
		}
	}
	return out
}
