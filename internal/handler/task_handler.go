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

type taskService interface {
	Board(ctx context.Context, sessionID string, filter dto.ReviewFilter) (*dto.TasksView, error)
	Create(ctx context.Context, sessionID string, req dto.CreateTaskRequest) (*models.Task, error)
	Advance(ctx context.Context, sessionID, taskID, rawAction string) (*models.Task, error)
}

// TaskHandler exposes the task board.
type TaskHandler struct {
	service    taskService
	translator translator
}

// NewTaskHandler constructs the handler.
func NewTaskHandler(service taskService, tr translator) *TaskHandler {
	return &TaskHandler{service: service, translator: tr}
}

func taskNotice(task *models.Task) *models.Notice {
	data := map[string]interface{}{"Title": task.Title}
	switch task.Status {
	case models.StatusInProgress:
		return notice("task.started", i18n.LevelInfo, data)
	case models.StatusCompleted:
		return notice("task.completed", i18n.LevelSuccess, data)
	default:
		return notice("task.created", i18n.LevelSuccess, data)
	}
}

// Board godoc
// @Summary Task board
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Param division query string false "Division or all"
// @Param status query string false "Status or all"
// @Success 200 {object} response.Envelope
// @Router /panels/tasks [get]
func (h *TaskHandler) Board(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var filter dto.ReviewFilter
	if !bindQuery(c, &filter) {
		return
	}
	view, err := h.service.Board(c.Request.Context(), id, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Create godoc
// @Summary Create a task
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateTaskRequest true "Task"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /panels/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req dto.CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}
	task, err := h.service.Create(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, task, noticeMeta(c, h.translator, taskNotice(task)))
}

// Advance godoc
// @Summary Start or complete a task
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param action path string true "start or complete"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /panels/tasks/{id}/{action} [post]
func (h *TaskHandler) Advance(c *gin.Context) {
	id, ok := sessionFromContext(c)
	if !ok {
		return
	}
	task, err := h.service.Advance(c.Request.Context(), id, c.Param("id"), c.Param("action"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, task, noticeMeta(c, h.translator, taskNotice(task)))
}
