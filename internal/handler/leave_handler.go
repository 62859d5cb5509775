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

type leaveService interface {
	View(ctx context.Context, sessionID string) (*dto.LeavesView, error)
	AddLeaveType(ctx context.Context, sessionID string, req dto.CreateLeaveTypeRequest) (*models.LeaveType, error)
	DeleteLeaveType(ctx context.Context, sessionID, id string) error
	AddBenefit(ctx context.Context, sessionID string, req dto.CreateBenefitRequest) (*models.Benefit, error)
	DeleteBenefit(ctx context.Context, sessionID, id string) error
}

// LeaveHandler exposes leave types, benefits and usage history.
type LeaveHandler struct {
	service    leaveService
	translator translator
}

// NewLeaveHandler constructs the handler.
func NewLeaveHandler(service leaveService, tr translator) *LeaveHandler {
	return &LeaveHandler{service: service, translator: tr}
}

// View godoc
// @Summary Leaves and benefits
// @Tags Leaves
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /panels/leaves [get]
func (h *LeaveHandler) View(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	view, err := h.service.View(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// AddLeaveType godoc
// @Summary Add a leave type
// @Tags Leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateLeaveTypeRequest true "Leave type"
// @Success 201 {object} response.Envelope
// @Router /panels/leaves/types [post]
func (h *LeaveHandler) AddLeaveType(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req dto.CreateLeaveTypeRequest
	if !bindJSON(c, &req) {
		return
	}
	leaveType, err := h.service.AddLeaveType(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, leaveType, noticeMeta(c, h.translator,
		notice("leavetype.added", i18n.LevelSuccess, map[string]interface{}{"Name": leaveType.Name})))
}

// DeleteLeaveType godoc
// @Summary Delete a leave type
// @Tags Leaves
// @Produce json
// @Security BearerAuth
// @Param id path string true "Leave type ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /panels/leaves/types/{id} [delete]
func (h *LeaveHandler) DeleteLeaveType(c *gin.Context) {
	h.deleteCall(c, h.service.DeleteLeaveType, "leavetype.deleted")
}

// AddBenefit godoc
// @Summary Add a benefit
// @Tags Leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateBenefitRequest true "Benefit"
// @Success 201 {object} response.Envelope
// @Router /panels/leaves/benefits [post]
func (h *LeaveHandler) AddBenefit(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req dto.CreateBenefitRequest
	if !bindJSON(c, &req) {
		return
	}
	benefit, err := h.service.AddBenefit(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, benefit, noticeMeta(c, h.translator,
		notice("benefit.added", i18n.LevelSuccess, map[string]interface{}{"Name": benefit.Name})))
}

// DeleteBenefit godoc
// @Summary Delete a benefit
// @Tags Leaves
// @Produce json
// @Security BearerAuth
// @Param id path string true "Benefit ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /panels/leaves/benefits/{id} [delete]
func (h *LeaveHandler) DeleteBenefit(c *gin.Context) {
	h.deleteCall(c, h.service.DeleteBenefit, "benefit.deleted")
}

func (h *LeaveHandler) deleteCall(c *gin.Context, fn func(context.Context, string, string) error, key string) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	itemID := c.Param("id")
	if err := fn(c.Request.Context(), id, itemID); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"id": itemID}, noticeMeta(c, h.translator, notice(key, i18n.LevelInfo, nil)))
}
