package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/taptime-api/internal/dto"
	"github.com/noah-isme/taptime-api/internal/models"
	"github.com/noah-isme/taptime-api/internal/seed"
)

type reportLister interface {
	List(sessionID string) []models.ReportJob
}

// DivisionService runs the four HR division panels.
type DivisionService struct {
	panelBase
	reports reportLister
}

// NewDivisionService constructs the service. reports may be nil when report generation is disabled.
func NewDivisionService(sessions *SessionService, reports reportLister, validate *validator.Validate, logger *zap.Logger) *DivisionService {
	return &DivisionService{panelBase: newPanelBase(sessions, validate, logger), reports: reports}
}

func administrativeView(panel *models.AdministrativePanel) *dto.AdministrativeView {
	pending := Filter(panel.LeaveRequests, HasStatus[models.LeaveRequest](string(models.StatusPending)))
	return &dto.AdministrativeView{
		LeaveRequests: append([]models.LeaveRequest{}, panel.LeaveRequests...),
		Pending:       pending,
		PendingCount:  len(pending),
	}
}

// Administrative returns the leave approval queue.
func (s *DivisionService) Administrative(ctx context.Context, sessionID string) (*dto.AdministrativeView, error) {
	var view *dto.AdministrativeView
	err := s.read(ctx, sessionID, models.ViewAdministrative, func(panel *models.PanelState) error {
		view = administrativeView(panel.Administrative)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// ReviewLeave approves or rejects a leave request.
func (s *DivisionService) ReviewLeave(ctx context.Context, sessionID, requestID, rawAction string) (*dto.AdministrativeView, *models.Notice, error) {
	action, err := ParseAction(rawAction, models.DecisionWorkflow)
	if err != nil {
		return nil, nil, err
	}
	var view *dto.AdministrativeView
	var notice *models.Notice
	err = s.update(ctx, sessionID, models.ViewAdministrative, func(panel *models.PanelState) error {
		requests, updated, err := Transition(panel.Administrative.LeaveRequests, requestID, action, models.DecisionWorkflow)
		if err != nil {
			return err
		}
		panel.Administrative.LeaveRequests = requests
		view = administrativeView(panel.Administrative)
		notice = reviewNotice(action, updated.EmployeeName)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	s.metrics().RecordReviewAction(string(models.ViewAdministrative), string(action))
	return view, notice, nil
}

func (s *DivisionService) recordsView(sessionID string, panel *models.RecordsPanel) *dto.RecordsView {
	reports := []models.ReportJob{}
	if s.reports != nil {
		reports = s.reports.List(sessionID)
	}
	counts := CountByStatus(panel.WFHRequests)
	return &dto.RecordsView{
		ReportTypes: append([]models.ReportType(nil), models.ReportTypes...),
		Departments: seed.DepartmentNames(),
		WFHRequests: append([]models.WFHRequest{}, panel.WFHRequests...),
		Reports:     reports,
		Stats: []models.Stat{
			{Label: "Pending WFH Requests", Value: strconv.Itoa(counts[models.StatusPending])},
			{Label: "Approved WFH Requests", Value: strconv.Itoa(counts[models.StatusApproved])},
			{Label: "Reports Generated", Value: strconv.Itoa(len(reports))},
		},
	}
}

// Records returns the WFH queue, report catalog and generated reports.
func (s *DivisionService) Records(ctx context.Context, sessionID string) (*dto.RecordsView, error) {
	var view *dto.RecordsView
	err := s.read(ctx, sessionID, models.ViewRecords, func(panel *models.PanelState) error {
		view = s.recordsView(sessionID, panel.Records)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// ReviewWFH approves or rejects a WFH time-in request.
func (s *DivisionService) ReviewWFH(ctx context.Context, sessionID, requestID, rawAction string) (*dto.RecordsView, *models.Notice, error) {
	action, err := ParseAction(rawAction, models.DecisionWorkflow)
	if err != nil {
		return nil, nil, err
	}
	var view *dto.RecordsView
	var notice *models.Notice
	err = s.update(ctx, sessionID, models.ViewRecords, func(panel *models.PanelState) error {
		requests, updated, err := Transition(panel.Records.WFHRequests, requestID, action, models.DecisionWorkflow)
		if err != nil {
			return err
		}
		panel.Records.WFHRequests = requests
		view = s.recordsView(sessionID, panel.Records)
		notice = reviewNotice(action, updated.EmployeeName)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	s.metrics().RecordReviewAction(string(models.ViewRecords), string(action))
	return view, notice, nil
}

func trainingView(panel *models.TrainingPanel) *dto.TrainingView {
	return &dto.TrainingView{
		Trainings: append([]models.Training{}, panel.Trainings...),
		Tasks:     append([]models.Task{}, panel.Tasks...),
	}
}

// Training returns the training schedule and task list.
func (s *DivisionService) Training(ctx context.Context, sessionID string) (*dto.TrainingView, error) {
	var view *dto.TrainingView
	err := s.read(ctx, sessionID, models.ViewTraining, func(panel *models.PanelState) error {
		view = trainingView(panel.Training)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// AddTraining schedules an upcoming training.
func (s *DivisionService) AddTraining(ctx context.Context, sessionID string, req dto.CreateTrainingRequest) (*models.Training, error) {
	if err := s.validate(req, "invalid training payload"); err != nil {
		return nil, err
	}
	training := models.Training{
		Name:       strings.TrimSpace(req.Name),
		Department: req.Department,
		Schedule:   req.Schedule,
		Time:       strings.TrimSpace(req.Time),
		Venue:      strings.TrimSpace(req.Venue),
		Status:     models.TrainingUpcoming,
	}
	err := s.update(ctx, sessionID, models.ViewTraining, func(panel *models.PanelState) error {
		training.ID = s.newID()
		panel.Training.Trainings = append(panel.Training.Trainings, training)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &training, nil
}

// AddTrainingTask appends a pending Training & Management task.
func (s *DivisionService) AddTrainingTask(ctx context.Context, sessionID string, req dto.CreateTrainingTaskRequest) (*models.Task, error) {
	if err := s.validate(req, "invalid task payload"); err != nil {
		return nil, err
	}
	var task models.Task
	err := s.update(ctx, sessionID, models.ViewTraining, func(panel *models.PanelState) error {
		task = newTask(s.newID(), dto.CreateTaskRequest{
			Title:    req.Title,
			Division: models.DivisionTrainingManagement,
			DueDate:  req.DueDate,
		})
		panel.Training.Tasks = append(panel.Training.Tasks, task)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// AdvanceTrainingTask starts or completes a Training & Management task.
func (s *DivisionService) AdvanceTrainingTask(ctx context.Context, sessionID, taskID, rawAction string) (*models.Task, error) {
	action, err := ParseAction(rawAction, models.ProgressWorkflow)
	if err != nil {
		return nil, err
	}
	var task models.Task
	err = s.update(ctx, sessionID, models.ViewTraining, func(panel *models.PanelState) error {
		tasks, updated, err := Transition(panel.Training.Tasks, taskID, action, models.ProgressWorkflow)
		if err != nil {
			return err
		}
		panel.Training.Tasks = tasks
		task = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.metrics().RecordReviewAction(string(models.ViewTraining), string(action))
	return &task, nil
}

func recruitmentView(panel *models.RecruitmentPanel) *dto.RecruitmentView {
	return &dto.RecruitmentView{
		Hires:        append([]models.Hire{}, panel.Hires...),
		Departments:  seed.DepartmentNames(),
		SalaryGrades: append([]string(nil), models.SalaryGrades...),
	}
}

// Recruitment returns the recent hires.
func (s *DivisionService) Recruitment(ctx context.Context, sessionID string) (*dto.RecruitmentView, error) {
	var view *dto.RecruitmentView
	err := s.read(ctx, sessionID, models.ViewRecruitment, func(panel *models.PanelState) error {
		view = recruitmentView(panel.Recruitment)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// AddHire records a new hire. Status defaults to Probationary and start date to today.
func (s *DivisionService) AddHire(ctx context.Context, sessionID string, req dto.CreateHireRequest) (*models.Hire, error) {
	if err := s.validate(req, "invalid hire payload"); err != nil {
		return nil, err
	}
	status := req.Status
	if status == "" {
		status = models.EmploymentProbationary
	}
	hire := models.Hire{
		Name:        strings.TrimSpace(req.Name),
		Position:    strings.TrimSpace(req.Position),
		Department:  req.Department,
		Status:      status,
		SalaryGrade: req.SalaryGrade,
		StartDate:   req.StartDate,
	}
	if hire.StartDate == "" {
		hire.StartDate = s.sessions.now().Format(dateLayout)
	}
	err := s.update(ctx, sessionID, models.ViewRecruitment, func(panel *models.PanelState) error {
		hire.ID = s.newID()
		panel.Recruitment.Hires = append(panel.Recruitment.Hires, hire)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &hire, nil
}
