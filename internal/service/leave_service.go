package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/taptime-api/internal/dto"
	"github.com/noah-isme/taptime-api/internal/models"
	appErrors "github.com/noah-isme/taptime-api/pkg/errors"
)

// LeaveService manages leave entitlements, benefits and usage history.
type LeaveService struct {
	panelBase
}

// NewLeaveService constructs the service.
func NewLeaveService(sessions *SessionService, validate *validator.Validate, logger *zap.Logger) *LeaveService {
	return &LeaveService{panelBase: newPanelBase(sessions, validate, logger)}
}

// DurationLabel renders an entitlement as "N days/year" or "N weeks".
func DurationLabel(value int, unit models.DurationUnit) string {
	if unit == models.UnitWeeks {
		return fmt.Sprintf("%d weeks", value)
	}
	return fmt.Sprintf("%d days/year", value)
}

// Usage returns the used percentage and its band: below 50 low, below 80 medium, otherwise high.
func Usage(u models.LeaveUsage) (float64, dto.UsageBand) {
	if u.TotalDays <= 0 {
		return 0, dto.UsageLow
	}
	pct := math.Round(float64(u.UsedDays)/float64(u.TotalDays)*1000) / 10
	switch {
	case pct < 50:
		return pct, dto.UsageLow
	case pct < 80:
		return pct, dto.UsageMedium
	default:
		return pct, dto.UsageHigh
	}
}

func leavesView(board *models.LeaveBoard) *dto.LeavesView {
	history := make([]dto.LeaveUsageView, 0, len(board.History))
	for _, u := range board.History {
		pct, band := Usage(u)
		history = append(history, dto.LeaveUsageView{LeaveUsage: u, Percentage: pct, Band: band})
	}
	return &dto.LeavesView{
		LeaveTypes: append([]models.LeaveType{}, board.LeaveTypes...),
		Benefits:   append([]models.Benefit{}, board.Benefits...),
		History:    history,
	}
}

// View returns the panel with usage bands.
func (s *LeaveService) View(ctx context.Context, sessionID string) (*dto.LeavesView, error) {
	var view *dto.LeavesView
	err := s.read(ctx, sessionID, models.ViewLeaves, func(panel *models.PanelState) error {
		view = leavesView(panel.Leaves)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// AddLeaveType appends an entitlement.
func (s *LeaveService) AddLeaveType(ctx context.Context, sessionID string, req dto.CreateLeaveTypeRequest) (*models.LeaveType, error) {
	if err := s.validate(req, "invalid leave type payload"); err != nil {
		return nil, err
	}
	unit := req.Unit
	if unit == "" {
		unit = models.UnitDays
	}
	leaveType := models.LeaveType{
		Name:          strings.TrimSpace(req.Name),
		Duration:      DurationLabel(req.DurationValue, unit),
		DurationValue: req.DurationValue,
		Unit:          unit,
	}
	err := s.update(ctx, sessionID, models.ViewLeaves, func(panel *models.PanelState) error {
		leaveType.ID = s.newID()
		panel.Leaves.LeaveTypes = append(panel.Leaves.LeaveTypes, leaveType)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &leaveType, nil
}

// DeleteLeaveType removes an entitlement by id.
func (s *LeaveService) DeleteLeaveType(ctx context.Context, sessionID, id string) error {
	return s.update(ctx, sessionID, models.ViewLeaves, func(panel *models.PanelState) error {
		for i, lt := range panel.Leaves.LeaveTypes {
			if lt.ID == id {
				panel.Leaves.LeaveTypes = append(panel.Leaves.LeaveTypes[:i:i], panel.Leaves.LeaveTypes[i+1:]...)
				return nil
			}
		}
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("leave type %s not found", id))
	})
}

// AddBenefit appends a benefit.
func (s *LeaveService) AddBenefit(ctx context.Context, sessionID string, req dto.CreateBenefitRequest) (*models.Benefit, error) {
	if err := s.validate(req, "invalid benefit payload"); err != nil {
		return nil, err
	}
	benefit := models.Benefit{Name: strings.TrimSpace(req.Name), Description: strings.TrimSpace(req.Description)}
	err := s.update(ctx, sessionID, models.ViewLeaves, func(panel *models.PanelState) error {
		benefit.ID = s.newID()
		panel.Leaves.Benefits = append(panel.Leaves.Benefits, benefit)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &benefit, nil
}

// DeleteBenefit removes a benefit by id.
func (s *LeaveService) DeleteBenefit(ctx context.Context, sessionID, id string) error {
	return s.update(ctx, sessionID, models.ViewLeaves, func(panel *models.PanelState) error {
		for i, b := range panel.Leaves.Benefits {
			if b.ID == id {
				panel.Leaves.Benefits = append(panel.Leaves.Benefits[:i:i], panel.Leaves.Benefits[i+1:]...)
				return nil
			}
		}
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("benefit %s not found", id))
	})
}
