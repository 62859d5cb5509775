package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/taptime-api/internal/dto"
	"github.com/noah-isme/taptime-api/internal/models"
	"github.com/noah-isme/taptime-api/pkg/response"
)

type attendanceService interface {
	Board(ctx context.Context, sessionID string) (*dto.AttendanceView, error)
	SetLocationEditing(ctx context.Context, sessionID string, editable bool) (*dto.AttendanceView, error)
	UpdateLocation(ctx context.Context, sessionID, recordID string, req dto.UpdateLocationRequest) (*models.AttendanceRecord, error)
}

type toggleRequest struct {
	Enabled bool `json:"enabled"`
}

// AttendanceHandler exposes the attendance monitoring board.
type AttendanceHandler struct {
	service attendanceService
}

// NewAttendanceHandler constructs the handler.
func NewAttendanceHandler(service attendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: service}
}

// Board godoc
// @Summary Attendance grouped by department
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /panels/attendance [get]
func (h *AttendanceHandler) Board(c *gin.Context) {
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

// SetLocationEditing godoc
// @Summary Lock or unlock location editing
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /panels/attendance/location-editing [put]
func (h *AttendanceHandler) SetLocationEditing(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req toggleRequest
	if !bindJSON(c, &req) {
		return
	}
	view, err := h.service.SetLocationEditing(c.Request.Context(), id, req.Enabled)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// UpdateLocation godoc
// @Summary Move an employee pin
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Record ID"
// @Param payload body dto.UpdateLocationRequest true "Coordinates"
// @Success 200 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /panels/attendance/{id}/location [put]
func (h *AttendanceHandler) UpdateLocation(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req dto.UpdateLocationRequest
	if !bindJSON(c, &req) {
		return
	}
	record, err := h.service.UpdateLocation(c.Request.Context(), id, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}
