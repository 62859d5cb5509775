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

type divisionService interface {
	Administrative(ctx context.Context, sessionID string) (*dto.AdministrativeView, error)
	ReviewLeave(ctx context.Context, sessionID, requestID, rawAction string) (*dto.AdministrativeView, *models.Notice, error)
	Records(ctx context.Context, sessionID string) (*dto.RecordsView, error)
	ReviewWFH(ctx context.Context, sessionID, requestID, rawAction string) (*dto.RecordsView, *models.Notice, error)
	Training(ctx context.Context, sessionID string) (*dto.TrainingView, error)
	AddTraining(ctx context.Context, sessionID string, req dto.CreateTrainingRequest) (*models.Training, error)
	AddTrainingTask(ctx context.Context, sessionID string, req dto.CreateTrainingTaskRequest) (*models.Task, error)
	AdvanceTrainingTask(ctx context.Context, sessionID, taskID, rawAction string) (*models.Task, error)
	Recruitment(ctx context.Context, sessionID string) (*dto.RecruitmentView, error)
	AddHire(ctx context.Context, sessionID string, req dto.CreateHireRequest) (*models.Hire, error)
}

// DivisionHandler exposes the four HR division panels.
type DivisionHandler struct {
	service    divisionService
	translator translator
}

// NewDivisionHandler constructs the handler.
func NewDivisionHandler(service divisionService, tr translator) *DivisionHandler {
	return &DivisionHandler{service: service, translator: tr}
}

// Administrative godoc
// @Summary Administrative division leave requests
// @Tags Divisions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /divisions/administrative [get]
func (h *DivisionHandler) Administrative(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	view, err := h.service.Administrative(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// ReviewLeave godoc
// @Summary Approve or reject a leave request
// @Tags Divisions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Leave request ID"
// @Param action path string true "approve or reject"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /divisions/administrative/leave-requests/{id}/{action} [post]
func (h *DivisionHandler) ReviewLeave(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	view, n, err := h.service.ReviewLeave(c.Request.Context(), id, c.Param("id"), c.Param("action"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, noticeMeta(c, h.translator, n))
}

// Records godoc
// @Summary Records division panel
// @Tags Divisions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /divisions/records [get]
func (h *DivisionHandler) Records(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	view, err := h.service.Records(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// ReviewWFH godoc
// @Summary Approve or reject a WFH request
// @Tags Divisions
// @Produce json
// @Security BearerAuth
// @Param id path string true "WFH request ID"
// @Param action path string true "approve or reject"
// @Success 200 {object} response.Envelope
// @Router /divisions/records/wfh-requests/{id}/{action} [post]
func (h *DivisionHandler) ReviewWFH(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	view, n, err := h.service.ReviewWFH(c.Request.Context(), id, c.Param("id"), c.Param("action"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, noticeMeta(c, h.translator, n))
}

// Training godoc
// @Summary Training schedules and tasks
// @Tags Divisions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /divisions/training [get]
func (h *DivisionHandler) Training(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	view, err := h.service.Training(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// AddTraining godoc
// @Summary Schedule a training
// @Tags Divisions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateTrainingRequest true "Training"
// @Success 201 {object} response.Envelope
// @Router /divisions/training/sessions [post]
func (h *DivisionHandler) AddTraining(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req dto.CreateTrainingRequest
	if !bindJSON(c, &req) {
		return
	}
	training, err := h.service.AddTraining(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, training, noticeMeta(c, h.translator,
		notice("training.added", i18n.LevelSuccess, map[string]interface{}{"Title": training.Name})))
}

// AddTrainingTask godoc
// @Summary Add a training task
// @Tags Divisions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateTrainingTaskRequest true "Task"
// @Success 201 {object} response.Envelope
// @Router /divisions/training/tasks [post]
func (h *DivisionHandler) AddTrainingTask(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req dto.CreateTrainingTaskRequest
	if !bindJSON(c, &req) {
		return
	}
	task, err := h.service.AddTrainingTask(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, task, noticeMeta(c, h.translator, taskNotice(task)))
}

// AdvanceTrainingTask godoc
// @Summary Start or complete a training task
// @Tags Divisions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param action path string true "start or complete"
// @Success 200 {object} response.Envelope
// @Router /divisions/training/tasks/{id}/{action} [post]
func (h *DivisionHandler) AdvanceTrainingTask(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	task, err := h.service.AdvanceTrainingTask(c.Request.Context(), id, c.Param("id"), c.Param("action"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, task, noticeMeta(c, h.translator, taskNotice(task)))
}

// Recruitment godoc
// @Summary Recent hires
// @Tags Divisions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /divisions/recruitment [get]
func (h *DivisionHandler) Recruitment(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	view, err := h.service.Recruitment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// AddHire godoc
// @Summary Add a recent hire
// @Tags Divisions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateHireRequest true "Hire"
// @Success 201 {object} response.Envelope
// @Router /divisions/recruitment/hires [post]
func (h *DivisionHandler) AddHire(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req dto.CreateHireRequest
	if !bindJSON(c, &req) {
		return
	}
	hire, err := h.service.AddHire(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, hire, noticeMeta(c, h.translator,
		notice("hire.added", i18n.LevelSuccess, map[string]interface{}{"Name": hire.Name, "Position": hire.Position})))
}
