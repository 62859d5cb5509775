package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/taptime-api/internal/dto"
	"github.com/noah-isme/taptime-api/internal/models"
	"github.com/noah-isme/taptime-api/internal/service"
	"github.com/noah-isme/taptime-api/pkg/response"
)

const credentialsFileName = "taptime-credentials.txt"

type registrationService interface {
	Wizard(ctx context.Context, sessionID string) (*dto.WizardView, error)
	Next(ctx context.Context, sessionID string) (*dto.WizardView, error)
	Previous(ctx context.Context, sessionID string) (*dto.WizardView, error)
	UpdateFields(ctx context.Context, sessionID string, req dto.UpdateFieldsRequest) (*dto.WizardView, error)
	DetectLocation(ctx context.Context, sessionID string, req dto.LocationRequest) (*dto.WizardView, error)
	Submit(ctx context.Context, sessionID string) (*models.Session, *models.Notice, error)
	Credentials(ctx context.Context, sessionID string, now time.Time) ([]byte, error)
}

type sessionViewer interface {
	View(session *models.Session) dto.SessionView
}

// RegistrationHandler serves the company registration wizard.
type RegistrationHandler struct {
	registration registrationService
	sessions     sessionViewer
	translator   translator
	now          func() time.Time
}

// NewRegistrationHandler constructs the handler.
func NewRegistrationHandler(registration registrationService, sessions sessionViewer, tr translator) *RegistrationHandler {
	return &RegistrationHandler{registration: registration, sessions: sessions, translator: tr, now: time.Now}
}

// Catalog godoc
// @Summary Wizard option lists
// @Tags Registration
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /registration/catalog [get]
func (h *RegistrationHandler) Catalog(c *gin.Context) {
	response.JSON(c, http.StatusOK, service.WizardCatalog())
}

// Wizard godoc
// @Summary Current wizard state
// @Tags Registration
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /registration [get]
func (h *RegistrationHandler) Wizard(c *gin.Context) {
	h.wizardCall(c, h.registration.Wizard)
}

// Next godoc
// @Summary Advance one step
// @Tags Registration
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /registration/next [post]
func (h *RegistrationHandler) Next(c *gin.Context) {
	h.wizardCall(c, h.registration.Next)
}

// Previous godoc
// @Summary Go back one step
// @Tags Registration
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /registration/previous [post]
func (h *RegistrationHandler) Previous(c *gin.Context) {
	h.wizardCall(c, h.registration.Previous)
}

func (h *RegistrationHandler) wizardCall(c *gin.Context, fn func(context.Context, string) (*dto.WizardView, error)) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	view, err := fn(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// UpdateFields godoc
// @Summary Set wizard fields
// @Tags Registration
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.UpdateFieldsRequest true "Fields"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /registration/fields [patch]
func (h *RegistrationHandler) UpdateFields(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req dto.UpdateFieldsRequest
	if !bindJSON(c, &req) {
		return
	}
	view, err := h.registration.UpdateFields(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// DetectLocation godoc
// @Summary Report the geolocation lookup result
// @Tags Registration
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.LocationRequest true "Location"
// @Success 200 {object} response.Envelope
// @Router /registration/location [post]
func (h *RegistrationHandler) DetectLocation(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req dto.LocationRequest
	if !bindJSON(c, &req) {
		return
	}
	view, err := h.registration.DetectLocation(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Submit godoc
// @Summary Complete the registration
// @Tags Registration
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /registration/submit [post]
func (h *RegistrationHandler) Submit(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	session, n, err := h.registration.Submit(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.sessions.View(session), noticeMeta(c, h.translator, n))
}

// Credentials godoc
// @Summary Download the registration credentials
// @Tags Registration
// @Produce plain
// @Security BearerAuth
// @Success 200 {file} file
// @Failure 412 {object} response.Envelope
// @Router /registration/credentials [get]
func (h *RegistrationHandler) Credentials(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	data, err := h.registration.Credentials(c.Request.Context(), id, h.now())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, credentialsFileName, "text/plain; charset=utf-8", data)
}
