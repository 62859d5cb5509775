package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/taptime-api/internal/dto"
	"github.com/noah-isme/taptime-api/internal/models"
)

// SettingsService edits the system configuration panel.
type SettingsService struct {
	panelBase
}

// NewSettingsService constructs the service.
func NewSettingsService(sessions *SessionService, validate *validator.Validate, logger *zap.Logger) *SettingsService {
	return &SettingsService{panelBase: newPanelBase(sessions, validate, logger)}
}

// Get returns the current settings.
func (s *SettingsService) Get(ctx context.Context, sessionID string) (*models.Settings, error) {
	var settings models.Settings
	err := s.read(ctx, sessionID, models.ViewSettings, func(panel *models.PanelState) error {
		settings = *panel.Settings
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Update applies the non-nil fields of req.
func (s *SettingsService) Update(ctx context.Context, sessionID string, req dto.UpdateSettingsRequest) (*models.Settings, error) {
	if err := s.validate(req, "invalid settings payload"); err != nil {
		return nil, err
	}
	var settings models.Settings
	err := s.update(ctx, sessionID, models.ViewSettings, func(panel *models.PanelState) error {
		current := panel.Settings
		if req.WorkMode != nil {
			current.WorkMode = *req.WorkMode
		}
		if req.LocationTracking != nil {
			current.LocationTracking = *req.LocationTracking
		}
		if req.WifiVerification != nil {
			current.WifiVerification = *req.WifiVerification
		}
		if req.AutoSave != nil {
			current.AutoSave = *req.AutoSave
		}
		settings = *current
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("settings updated", zap.String("work_mode", string(settings.WorkMode)))
	return &settings, nil
}
