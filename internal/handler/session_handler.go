package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/taptime-api/internal/dto"
	"github.com/noah-isme/taptime-api/internal/models"
	"github.com/noah-isme/taptime-api/internal/service"
	"github.com/noah-isme/taptime-api/pkg/i18n"
	"github.com/noah-isme/taptime-api/pkg/response"
)

type sessionService interface {
	Create(ctx context.Context) (*dto.CreateSessionResponse, error)
	Get(ctx context.Context, id string) (*models.Session, error)
	View(session *models.Session) dto.SessionView
	Dispatch(ctx context.Context, id string, ev service.Event) (*models.Session, *models.Notice, error)
	End(ctx context.Context, id string) error
}

type activityService interface {
	History(ctx context.Context, sessionID string, query dto.ActivityQuery) ([]models.AuditLog, error)
}

// SessionHandler drives top-level navigation.
type SessionHandler struct {
	sessions   sessionService
	activity   activityService
	translator translator
}

// NewSessionHandler constructs the handler. activity may be nil when auditing is disabled.
func NewSessionHandler(sessions sessionService, activity activityService, tr translator) *SessionHandler {
	return &SessionHandler{sessions: sessions, activity: activity, translator: tr}
}

// Create godoc
// @Summary Start a session
// @Tags Session
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	resp, err := h.sessions.Create(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, resp)
}

// Current godoc
// @Summary Current screen and user
// @Tags Session
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /session [get]
func (h *SessionHandler) Current(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	session, err := h.sessions.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.sessions.View(session))
}

// Dispatch godoc
// @Summary Dispatch a navigation event
// @Description accept, register, privacy, back, login, go_to_dashboard, select_division, logout
// @Tags Session
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.EventRequest true "Event"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /session/events [post]
func (h *SessionHandler) Dispatch(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req dto.EventRequest
	if !bindJSON(c, &req) {
		return
	}
	ev, err := service.ParseEvent(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	session, n, err := h.sessions.Dispatch(c.Request.Context(), id, ev)
	if err != nil {
		if ev.Kind() == service.EventLogin {
			response.Error(c, err, noticeMeta(c, h.translator, notice("login.failed", i18n.LevelError, nil)))
			return
		}
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.sessions.View(session), noticeMeta(c, h.translator, n))
}

// End godoc
// @Summary End the session
// @Tags Session
// @Security BearerAuth
// @Success 204
// @Router /session [delete]
func (h *SessionHandler) End(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	if err := h.sessions.End(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Activity godoc
// @Summary Audit trail of the session
// @Tags Session
// @Produce json
// @Security BearerAuth
// @Param action query string false "Action filter"
// @Param limit query int false "Maximum entries"
// @Success 200 {object} response.Envelope
// @Router /session/activity [get]
func (h *SessionHandler) Activity(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var query dto.ActivityQuery
	if !bindQuery(c, &query) {
		return
	}
	if h.activity == nil {
		response.JSON(c, http.StatusOK, []models.AuditLog{})
		return
	}
	logs, err := h.activity.History(c.Request.Context(), id, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, logs)
}
