package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/taptime-api/internal/dto"
	"github.com/noah-isme/taptime-api/internal/models"
	"github.com/noah-isme/taptime-api/pkg/i18n"
	"github.com/noah-isme/taptime-api/pkg/response"
)

type settingsService interface {
	Get(ctx context.Context, sessionID string) (*models.Settings, error)
	Update(ctx context.Context, sessionID string, req dto.UpdateSettingsRequest) (*models.Settings, error)
}

// SettingsHandler exposes the system configuration panel.
type SettingsHandler struct {
	service    settingsService
	translator translator
}

// NewSettingsHandler constructs the handler.
func NewSettingsHandler(service settingsService, tr translator) *SettingsHandler {
	return &SettingsHandler{service: service, translator: tr}
}

// Get godoc
// @Summary System configuration
// @Tags Settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /panels/settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	settings, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, settings)
}

// Update godoc
// @Summary Patch system configuration
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.UpdateSettingsRequest true "Changes"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /panels/settings [patch]
func (h *SettingsHandler) Update(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req dto.UpdateSettingsRequest
	if !bindJSON(c, &req) {
		return
	}
	settings, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, settings, noticeMeta(c, h.translator, notice("settings.saved", i18n.LevelSuccess, nil)))
}
