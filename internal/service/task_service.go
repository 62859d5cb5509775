package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/taptime-api/internal/dto"
	"github.com/noah-isme/taptime-api/internal/models"
	appErrors "github.com/noah-isme/taptime-api/pkg/errors"
)

// TaskService runs the HR admin task board.
type TaskService struct {
	panelBase
}

// NewTaskService constructs the service.
func NewTaskService(sessions *SessionService, validate *validator.Validate, logger *zap.Logger) *TaskService {
	return &TaskService{panelBase: newPanelBase(sessions, validate, logger)}
}

func tasksView(tasks []models.Task, filter dto.ReviewFilter) *dto.TasksView {
	counts := CountByStatus(tasks)
	tabs := make([]dto.DivisionTab, 0, len(models.Divisions))
	for _, d := range models.Divisions {
		division := d
		tabs = append(tabs, dto.DivisionTab{
			Division: division,
			Count:    len(Filter(tasks, func(t models.Task) bool { return t.Division == division })),
		})
	}
	return &dto.TasksView{
		Tasks: Filter(tasks,
			func(t models.Task) bool { return Matches(filter.Division, string(t.Division)) },
			HasStatus[models.Task](filter.Status),
		),
		Counts: dto.TaskCounts{
			Pending:    counts[models.StatusPending],
			InProgress: counts[models.StatusInProgress],
			Completed:  counts[models.StatusCompleted],
		},
		Total: len(tasks),
		Tabs:  tabs,
	}
}

// newTask builds a pending task from a create request.
func newTask(id string, req dto.CreateTaskRequest) models.Task {
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	return models.Task{
		ID:          id,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Division:    req.Division,
		AssignedTo:  splitNames(req.AssignedTo),
		DueDate:     req.DueDate,
		Status:      models.ProgressWorkflow.Initial,
		Priority:    priority,
	}
}

// Board returns the task list narrowed by division tab and status.
func (s *TaskService) Board(ctx context.Context, sessionID string, filter dto.ReviewFilter) (*dto.TasksView, error) {
	var view *dto.TasksView
	err := s.read(ctx, sessionID, models.ViewTasks, func(panel *models.PanelState) error {
		view = tasksView(panel.Tasks.Tasks, filter)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// Create adds a pending task.
func (s *TaskService) Create(ctx context.Context, sessionID string, req dto.CreateTaskRequest) (*models.Task, error) {
	if err := s.validate(req, "invalid task payload"); err != nil {
		return nil, err
	}
	if !req.Division.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown division")
	}
	var task models.Task
	err := s.update(ctx, sessionID, models.ViewTasks, func(panel *models.PanelState) error {
		task = newTask(s.newID(), req)
		panel.Tasks.Tasks = append(panel.Tasks.Tasks, task)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Advance starts or completes a task.
func (s *TaskService) Advance(ctx context.Context, sessionID, taskID, rawAction string) (*models.Task, error) {
	action, err := ParseAction(rawAction, models.ProgressWorkflow)
	if err != nil {
		return nil, err
	}
	var task models.Task
	err = s.update(ctx, sessionID, models.ViewTasks, func(panel *models.PanelState) error {
		tasks, updated, err := Transition(panel.Tasks.Tasks, taskID, action, models.ProgressWorkflow)
		if err != nil {
			return err
		}
		panel.Tasks.Tasks = tasks
		task = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.metrics().RecordReviewAction(string(models.ViewTasks), string(action))
	return &task, nil
}
