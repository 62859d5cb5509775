package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/taptime-api/internal/dto"
	"github.com/noah-isme/taptime-api/internal/models"
	"github.com/noah-isme/taptime-api/internal/seed"
	appErrors "github.com/noah-isme/taptime-api/pkg/errors"
)

// AttendanceService runs the attendance monitoring board.
type AttendanceService struct {
	panelBase
}

// NewAttendanceService constructs the service.
func NewAttendanceService(sessions *SessionService, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	return &AttendanceService{panelBase: newPanelBase(sessions, validate, logger)}
}

func attendanceView(board *models.AttendanceBoard) *dto.AttendanceView {
	colors := make(map[string]string)
	order := make([]string, 0)
	for _, d := range seed.Departments() {
		colors[d.Name] = d.Color
		order = append(order, d.Name)
	}
	for _, r := range board.Records {
		if _, ok := colors[r.Department]; !ok {
			colors[r.Department] = defaultDepartmentColor
			order = append(order, r.Department)
		}
	}

	counts := make(map[models.AttendanceStatus]int, len(models.AttendanceStatuses))
	for _, status := range models.AttendanceStatuses {
		counts[status] = 0
	}
	for _, r := range board.Records {
		counts[r.Status]++
	}

	groups := make([]dto.AttendanceGroup, 0, len(order))
	for _, name := range order {
		department := name
		records := Filter(board.Records, func(r models.AttendanceRecord) bool { return r.Department == department })
		if len(records) == 0 {
			continue
		}
		groups = append(groups, dto.AttendanceGroup{Department: department, Color: colors[department], Records: records})
	}

	return &dto.AttendanceView{Groups: groups, Counts: counts, LocationEditable: board.LocationEditable}
}

// Board returns the records grouped by department with status counts.
func (s *AttendanceService) Board(ctx context.Context, sessionID string) (*dto.AttendanceView, error) {
	var view *dto.AttendanceView
	err := s.read(ctx, sessionID, models.ViewAttendance, func(panel *models.PanelState) error {
		view = attendanceView(panel.Attendance)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// SetLocationEditing locks or unlocks manual location edits.
func (s *AttendanceService) SetLocationEditing(ctx context.Context, sessionID string, editable bool) (*dto.AttendanceView, error) {
	var view *dto.AttendanceView
	err := s.update(ctx, sessionID, models.ViewAttendance, func(panel *models.PanelState) error {
		panel.Attendance.LocationEditable = editable
		view = attendanceView(panel.Attendance)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// UpdateLocation moves one employee's pin. Editing must be unlocked first.
func (s *AttendanceService) UpdateLocation(ctx context.Context, sessionID, recordID string, req dto.UpdateLocationRequest) (*models.AttendanceRecord, error) {
	if err := s.validate(req, "coordinates out of range"); err != nil {
		return nil, err
	}
	var record models.AttendanceRecord
	err := s.update(ctx, sessionID, models.ViewAttendance, func(panel *models.PanelState) error {
		if !panel.Attendance.LocationEditable {
			return appErrors.Clone(appErrors.ErrPreconditionFailed, "location editing is locked")
		}
		for i := range panel.Attendance.Records {
			if panel.Attendance.Records[i].ID == recordID {
				panel.Attendance.Records[i].Location = models.Coordinates{Lat: req.Lat, Lng: req.Lng}
				record = panel.Attendance.Records[i]
				return nil
			}
		}
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("attendance record %s not found", recordID))
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}
