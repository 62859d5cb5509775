package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/taptime-api/internal/dto"
	"github.com/noah-isme/taptime-api/internal/models"
	"github.com/noah-isme/taptime-api/internal/seed"
)

// ApprovalService runs the approval center: overtime, undertime and leave requests.
type ApprovalService struct {
	panelBase
}

// NewApprovalService constructs the service.
func NewApprovalService(sessions *SessionService, validate *validator.Validate, logger *zap.Logger) *ApprovalService {
	return &ApprovalService{panelBase: newPanelBase(sessions, validate, logger)}
}

func approvalsView(requests []models.ApprovalRequest, filter dto.ReviewFilter) *dto.ApprovalsView {
	scoped := Filter(requests,
		func(r models.ApprovalRequest) bool { return Matches(filter.Department, r.Department) },
		func(r models.ApprovalRequest) bool { return Matches(filter.Employee, r.EmployeeName) },
	)

	var summary dto.ApprovalSummary
	for _, r := range scoped {
		if r.Status == models.StatusPending {
			summary.Pending++
		}
		switch r.Type {
		case models.RequestOvertime:
			summary.Overtime++
		case models.RequestUndertime:
			summary.Undertime++
		case models.RequestLeave:
			summary.Leave++
		}
	}

	names := make([]string, 0, len(requests))
	for _, r := range requests {
		names = append(names, r.EmployeeName)
	}

	return &dto.ApprovalsView{
		Requests: Filter(scoped,
			func(r models.ApprovalRequest) bool { return Matches(filter.Type, string(r.Type)) },
			HasStatus[models.ApprovalRequest](filter.Status),
		),
		Summary:     summary,
		Departments: seed.DepartmentNames(),
		Employees:   distinct(names),
	}
}

// List returns the filtered queue with counters over the department and employee scope.
func (s *ApprovalService) List(ctx context.Context, sessionID string, filter dto.ReviewFilter) (*dto.ApprovalsView, error) {
	var view *dto.ApprovalsView
	err := s.read(ctx, sessionID, models.ViewApprovals, func(panel *models.PanelState) error {
		view = approvalsView(panel.Approvals.Requests, filter)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// Review approves or rejects one request.
func (s *ApprovalService) Review(ctx context.Context, sessionID, requestID, rawAction string, filter dto.ReviewFilter) (*dto.ApprovalsView, *models.Notice, error) {
	action, err := ParseAction(rawAction, models.DecisionWorkflow)
	if err != nil {
		return nil, nil, err
	}
	var view *dto.ApprovalsView
	var notice *models.Notice
	err = s.update(ctx, sessionID, models.ViewApprovals, func(panel *models.PanelState) error {
		requests, updated, err := Transition(panel.Approvals.Requests, requestID, action, models.DecisionWorkflow)
		if err != nil {
			return err
		}
		panel.Approvals.Requests = requests
		view = approvalsView(requests, filter)
		notice = reviewNotice(action, updated.EmployeeName)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	s.metrics().RecordReviewAction(string(models.ViewApprovals), string(action))
	return view, notice, nil
}
