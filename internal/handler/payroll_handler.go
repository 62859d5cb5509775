package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/taptime-api/internal/dto"
	"github.com/noah-isme/taptime-api/internal/models"
	"github.com/noah-isme/taptime-api/internal/service"
	"github.com/noah-isme/taptime-api/pkg/response"
)

type payrollService interface {
	View(ctx context.Context, sessionID string, query dto.PayrollQuery) (*dto.PayrollView, error)
	Toggle(ctx context.Context, sessionID, recordID string, query dto.PayrollQuery) (*dto.PayrollView, error)
	SelectAll(ctx context.Context, sessionID string, query dto.PayrollQuery) (*dto.PayrollView, error)
	Export(ctx context.Context, sessionID string, format models.ReportFormat, now time.Time) (*service.ExportFile, error)
}

// PayrollHandler exposes the payroll table.
type PayrollHandler struct {
	service payrollService
	now     func() time.Time
}

// NewPayrollHandler constructs the handler.
func NewPayrollHandler(service payrollService) *PayrollHandler {
	return &PayrollHandler{service: service, now: time.Now}
}

// View godoc
// @Summary Payroll records
// @Tags Payroll
// @Produce json
// @Security BearerAuth
// @Param department query string false "Department or all"
// @Param status query string false "Employment status or all"
// @Success 200 {object} response.Envelope
// @Router /panels/payroll [get]
func (h *PayrollHandler) View(c *gin.Context) {
	h.queryCall(c, func(ctx context.Context, id string, q dto.PayrollQuery) (*dto.PayrollView, error) {
		return h.service.View(ctx, id, q)
	})
}

// Toggle godoc
// @Summary Select or deselect a record
// @Tags Payroll
// @Produce json
// @Security BearerAuth
// @Param id path string true "Record ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /panels/payroll/{id}/toggle [post]
func (h *PayrollHandler) Toggle(c *gin.Context) {
	h.queryCall(c, func(ctx context.Context, id string, q dto.PayrollQuery) (*dto.PayrollView, error) {
		return h.service.Toggle(ctx, id, c.Param("id"), q)
	})
}

// SelectAll godoc
// @Summary Select or clear every filtered record
// @Tags Payroll
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /panels/payroll/select-all [post]
func (h *PayrollHandler) SelectAll(c *gin.Context) {
	h.queryCall(c, h.service.SelectAll)
}

func (h *PayrollHandler) queryCall(c *gin.Context, fn func(context.Context, string, dto.PayrollQuery) (*dto.PayrollView, error)) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var query dto.PayrollQuery
	if !bindQuery(c, &query) {
		return
	}
	view, err := fn(c.Request.Context(), id, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Export godoc
// @Summary Download the selected records
// @Tags Payroll
// @Produce octet-stream
// @Security BearerAuth
// @Param format query string false "csv, xlsx or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /panels/payroll/export [get]
func (h *PayrollHandler) Export(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	format := models.ReportFormat(strings.ToLower(strings.TrimSpace(c.Query("format"))))
	file, err := h.service.Export(c.Request.Context(), id, format, h.now())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.FileName, file.ContentType, file.Data)
}
