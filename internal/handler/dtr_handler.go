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

type dtrService interface {
	Board(ctx context.Context, sessionID string) (*dto.DTRView, error)
	Select(ctx context.Context, sessionID string, sel dto.DTRSelection) (*dto.DTRView, error)
	SetEditing(ctx context.Context, sessionID string, editing bool) (*dto.DTRView, error)
	UpdateEntry(ctx context.Context, sessionID, date string, req dto.UpdateDTREntryRequest) (*models.DTREntry, error)
	Export(ctx context.Context, sessionID string, now time.Time) (*service.ExportFile, error)
}

// DTRHandler exposes daily time record management.
type DTRHandler struct {
	service dtrService
	now     func() time.Time
}

// NewDTRHandler constructs the handler.
func NewDTRHandler(service dtrService) *DTRHandler {
	return &DTRHandler{service: service, now: time.Now}
}

// Board godoc
// @Summary DTR panel
// @Tags DTR
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /panels/dtr [get]
func (h *DTRHandler) Board(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	view, err := h.service.Board(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Select godoc
// @Summary Choose department, employee and date range
// @Tags DTR
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.DTRSelection true "Selection"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /panels/dtr/selection [put]
func (h *DTRHandler) Select(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req dto.DTRSelection
	if !bindJSON(c, &req) {
		return
	}
	view, err := h.service.Select(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// SetEditing godoc
// @Summary Enter or leave edit mode
// @Tags DTR
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /panels/dtr/editing [put]
func (h *DTRHandler) SetEditing(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req toggleRequest
	if !bindJSON(c, &req) {
		return
	}
	view, err := h.service.SetEditing(c.Request.Context(), id, req.Enabled)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// UpdateEntry godoc
// @Summary Edit one day's punches
// @Tags DTR
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param payload body dto.UpdateDTREntryRequest true "Punches"
// @Success 200 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /panels/dtr/entries/{date} [put]
func (h *DTRHandler) UpdateEntry(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req dto.UpdateDTREntryRequest
	if !bindJSON(c, &req) {
		return
	}
	entry, err := h.service.UpdateEntry(c.Request.Context(), id, c.Param("date"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry)
}

// Export godoc
// @Summary Download the DTR as CSV
// @Tags DTR
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {file} file
// @Failure 412 {object} response.Envelope
// @Router /panels/dtr/export [get]
func (h *DTRHandler) Export(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	file, err := h.service.Export(c.Request.Context(), id, h.now())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.FileName, file.ContentType, file.Data)
}
