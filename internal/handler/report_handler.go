package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/taptime-api/internal/dto"
	"github.com/noah-isme/taptime-api/internal/models"
	"github.com/noah-isme/taptime-api/internal/service"
	"github.com/noah-isme/taptime-api/pkg/response"
)

type reportService interface {
	Create(ctx context.Context, sessionID string, req dto.CreateReportRequest) (*models.ReportJob, *models.Notice, error)
	List(sessionID string) []models.ReportJob
	Get(sessionID, id string) (*models.ReportJob, error)
	Download(token string) (*service.ExportFile, error)
}

// ReportHandler exposes Records division report generation.
type ReportHandler struct {
	reports    reportService
	translator translator
}

// NewReportHandler constructs handler.
func NewReportHandler(reports reportService, tr translator) *ReportHandler {
	return &ReportHandler{reports: reports, translator: tr}
}

// Create godoc
// @Summary Queue a report
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateReportRequest true "Report"
// @Success 202 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /divisions/records/reports [post]
func (h *ReportHandler) Create(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req dto.CreateReportRequest
	if !bindJSON(c, &req) {
		return
	}
	job, n, err := h.reports.Create(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, job, noticeMeta(c, h.translator, n))
}

// List godoc
// @Summary Reports of this session
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /divisions/records/reports [get]
func (h *ReportHandler) List(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	response.JSON(c, http.StatusOK, h.reports.List(id))
}

// Status godoc
// @Summary Report status
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /divisions/records/reports/{id} [get]
func (h *ReportHandler) Status(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	job, err := h.reports.Get(id, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job)
}

// Download godoc
// @Summary Download a finished report
// @Tags Reports
// @Produce octet-stream
// @Param token path string true "Signed token"
// @Success 200 {file} file
// @Failure 403 {object} response.Envelope
// @Router /reports/download/{token} [get]
func (h *ReportHandler) Download(c *gin.Context) {
	file, err := h.reports.Download(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.FileName, file.ContentType, file.Data)
}
