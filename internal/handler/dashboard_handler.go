package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/taptime-api/internal/dto"
	"github.com/noah-isme/taptime-api/internal/models"
	appErrors "github.com/noah-isme/taptime-api/pkg/errors"
	"github.com/noah-isme/taptime-api/pkg/response"
)

type dashboardService interface {
	Dashboard(ctx context.Context, sessionID string) (*dto.DashboardView, []models.Notice, error)
	ChangeView(ctx context.Context, sessionID string, view models.View) (*dto.DashboardView, error)
	ToggleClock(ctx context.Context, sessionID string) (*dto.DashboardView, *models.Notice, error)
	TimeOut(ctx context.Context, sessionID string) (*dto.DashboardView, *models.Notice, error)
	SetWFHMode(ctx context.Context, sessionID string, enabled bool) (*dto.DashboardView, error)
	ClockStream(ctx context.Context, sessionID string) (<-chan dto.ClockTick, error)
}

// DashboardHandler wires the dashboard shell to HTTP endpoints.
type DashboardHandler struct {
	service    dashboardService
	translator translator
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService, tr translator) *DashboardHandler {
	return &DashboardHandler{service: service, translator: tr}
}

// Get godoc
// @Summary Mounted dashboard
// @Description Notices raised since the previous read are delivered in meta.notifications.
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	view, inbox, err := h.service.Dashboard(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	notices := make([]*models.Notice, 0, len(inbox))
	for i := range inbox {
		notices = append(notices, &inbox[i])
	}
	response.JSON(c, http.StatusOK, view, noticeMeta(c, h.translator, notices...))
}

// ChangeView godoc
// @Summary Switch the active view
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ChangeViewRequest true "View"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /dashboard/view [put]
func (h *DashboardHandler) ChangeView(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req dto.ChangeViewRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.View == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "view is required"))
		return
	}
	view, err := h.service.ChangeView(c.Request.Context(), id, req.View)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// ToggleClock godoc
// @Summary Clock in or out
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /dashboard/clock [post]
func (h *DashboardHandler) ToggleClock(c *gin.Context) {
	h.clockCall(c, h.service.ToggleClock)
}

// TimeOut godoc
// @Summary Clock out an HR division user
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /dashboard/time-out [post]
func (h *DashboardHandler) TimeOut(c *gin.Context) {
	h.clockCall(c, h.service.TimeOut)
}

func (h *DashboardHandler) clockCall(c *gin.Context, fn func(context.Context, string) (*dto.DashboardView, *models.Notice, error)) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	view, n, err := fn(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, noticeMeta(c, h.translator, n))
}

// SetWFHMode godoc
// @Summary Toggle work-from-home mode
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.WFHModeRequest true "Mode"
// @Success 200 {object} response.Envelope
// @Router /dashboard/wfh [put]
func (h *DashboardHandler) SetWFHMode(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req dto.WFHModeRequest
	if !bindJSON(c, &req) {
		return
	}
	view, err := h.service.SetWFHMode(c.Request.Context(), id, req.Enabled)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Clock godoc
// @Summary Clock display stream
// @Description Server-sent events, one "tick" per second until the dashboard is unmounted.
// @Tags Dashboard
// @Produce text/event-stream
// @Security BearerAuth
// @Success 200
// @Router /dashboard/clock [get]
func (h *DashboardHandler) Clock(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	ticks, err := h.service.ClockStream(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Stream(func(io.Writer) bool {
		tick, open := <-ticks
		if !open {
			return false
		}
		c.SSEvent("tick", tick)
		return true
	})
}
