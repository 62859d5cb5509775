package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/taptime-api/internal/dto"
	"github.com/noah-isme/taptime-api/internal/models"
	"github.com/noah-isme/taptime-api/pkg/response"
)

type approvalService interface {
	List(ctx context.Context, sessionID string, filter dto.ReviewFilter) (*dto.ApprovalsView, error)
	Review(ctx context.Context, sessionID, requestID, rawAction string, filter dto.ReviewFilter) (*dto.ApprovalsView, *models.Notice, error)
}

// ApprovalHandler exposes the approval center.
type ApprovalHandler struct {
	service    approvalService
	translator translator
}

// NewApprovalHandler constructs the handler.
func NewApprovalHandler(service approvalService, tr translator) *ApprovalHandler {
	return &ApprovalHandler{service: service, translator: tr}
}

// List godoc
// @Summary Approval requests
// @Tags Approvals
// @Produce json
// @Security BearerAuth
// @Param department query string false "Department or all"
// @Param employee query string false "Employee or all"
// @Param type query string false "overtime, undertime, leave or all"
// @Param status query string false "pending, approved, rejected or all"
// @Success 200 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /panels/approvals [get]
func (h *ApprovalHandler) List(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var filter dto.ReviewFilter
	if !bindQuery(c, &filter) {
		return
	}
	view, err := h.service.List(c.Request.Context(), id, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Review godoc
// @Summary Approve or reject a request
// @Tags Approvals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param action path string true "approve or reject"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /panels/approvals/{id}/{action} [post]
func (h *ApprovalHandler) Review(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var filter dto.ReviewFilter
	if !bindQuery(c, &filter) {
		return
	}
	view, n, err := h.service.Review(c.Request.Context(), id, c.Param("id"), c.Param("action"), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, noticeMeta(c, h.translator, n))
}
