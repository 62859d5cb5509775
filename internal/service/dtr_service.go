package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/taptime-api/internal/dto"
	"github.com/noah-isme/taptime-api/internal/models"
	"github.com/noah-isme/taptime-api/internal/seed"
	appErrors "github.com/noah-isme/taptime-api/pkg/errors"
	"github.com/noah-isme/taptime-api/pkg/export"
)

const (
	punchLayout  = "15:04"
	dateLayout   = "2006-01-02"
	standardDay  = 8.0
	dtrSheetName = "DTR"
)

var dtrHeaders = []string{"Date", "AM Time In", "AM Time Out", "PM Time In", "PM Time Out", "Total Hours", "Undertime"}

// DTRService runs the daily time record panel.
type DTRService struct {
	panelBase
	exports *ExportService
}

// NewDTRService constructs the service.
func NewDTRService(sessions *SessionService, exports *ExportService, validate *validator.Validate, logger *zap.Logger) *DTRService {
	return &DTRService{panelBase: newPanelBase(sessions, validate, logger), exports: exports}
}

func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}

func span(from, to string) (float64, error) {
	start, err := time.Parse(punchLayout, from)
	if err != nil {
		return 0, err
	}
	end, err := time.Parse(punchLayout, to)
	if err != nil {
		return 0, err
	}
	if end.Before(start) {
		return 0, fmt.Errorf("%s is before %s", to, from)
	}
	return end.Sub(start).Hours(), nil
}

// WorkedHours returns the hours between the AM and PM punches and the undertime against an 8 hour day.
func WorkedHours(amIn, amOut, pmIn, pmOut string) (total, undertime float64, err error) {
	am, err := span(amIn, amOut)
	if err != nil {
		return 0, 0, err
	}
	pm, err := span(pmIn, pmOut)
	if err != nil {
		return 0, 0, err
	}
	total = roundHours(am + pm)
	return total, roundHours(math.Max(0, standardDay-total)), nil
}

func dtrEmployees(department string) []models.Employee {
	return Filter(seed.DTREmployees(), func(e models.Employee) bool { return Matches(department, e.Department) })
}

func inRange(board *models.DTRBoard) Predicate[models.DTREntry] {
	return func(e models.DTREntry) bool {
		return (board.StartDate == "" || e.Date >= board.StartDate) && (board.EndDate == "" || e.Date <= board.EndDate)
	}
}

func dtrView(board *models.DTRBoard) *dto.DTRView {
	visible := *board
	visible.Entries = Filter(board.Entries, inRange(board))
	view := &dto.DTRView{
		Board:       visible,
		Departments: seed.DepartmentNames(),
		Employees:   dtrEmployees(board.Department),
		CanDownload: board.Employee != "",
	}
	for _, e := range visible.Entries {
		view.TotalHours += e.TotalHours
		view.TotalUndertime += e.Undertime
	}
	view.TotalHours = roundHours(view.TotalHours)
	view.TotalUndertime = roundHours(view.TotalUndertime)
	return view
}

// Board returns the selected record with totals.
func (s *DTRService) Board(ctx context.Context, sessionID string) (*dto.DTRView, error) {
	var view *dto.DTRView
	err := s.read(ctx, sessionID, models.ViewDTR, func(panel *models.PanelState) error {
		view = dtrView(panel.DTR)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// Select changes the department, employee and date range. Changing department drops an employee outside it.
func (s *DTRService) Select(ctx context.Context, sessionID string, sel dto.DTRSelection) (*dto.DTRView, error) {
	if err := s.validate(sel, "invalid DTR selection"); err != nil {
		return nil, err
	}
	if sel.StartDate != "" && sel.EndDate != "" && sel.EndDate < sel.StartDate {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end date is before start date")
	}
	var view *dto.DTRView
	err := s.update(ctx, sessionID, models.ViewDTR, func(panel *models.PanelState) error {
		board := panel.DTR
		employees := dtrEmployees(sel.Department)
		known := func(name string) bool {
			return len(Filter(employees, func(e models.Employee) bool { return e.Name == name })) > 0
		}
		if sel.Employee != "" && !known(sel.Employee) {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("employee %q is not in the selected department", sel.Employee))
		}
		board.Department = sel.Department
		board.Employee = sel.Employee
		board.StartDate = sel.StartDate
		board.EndDate = sel.EndDate
		view = dtrView(board)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// SetEditing toggles edit mode.
func (s *DTRService) SetEditing(ctx context.Context, sessionID string, editing bool) (*dto.DTRView, error) {
	var view *dto.DTRView
	err := s.update(ctx, sessionID, models.ViewDTR, func(panel *models.PanelState) error {
		panel.DTR.Editing = editing
		view = dtrView(panel.DTR)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// UpdateEntry rewrites one day's punches and recomputes its hours and undertime.
func (s *DTRService) UpdateEntry(ctx context.Context, sessionID, date string, req dto.UpdateDTREntryRequest) (*models.DTREntry, error) {
	if err := s.validate(req, "punches must use HH:MM"); err != nil {
		return nil, err
	}
	total, undertime, err := WorkedHours(req.AMTimeIn, req.AMTimeOut, req.PMTimeIn, req.PMTimeOut)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "time out must not precede time in")
	}
	var entry models.DTREntry
	err = s.update(ctx, sessionID, models.ViewDTR, func(panel *models.PanelState) error {
		if !panel.DTR.Editing {
			return appErrors.Clone(appErrors.ErrPreconditionFailed, "DTR is not in edit mode")
		}
		for i := range panel.DTR.Entries {
			if panel.DTR.Entries[i].Date != date {
				continue
			}
			panel.DTR.Entries[i] = models.DTREntry{
				Date:       date,
				AMTimeIn:   req.AMTimeIn,
				AMTimeOut:  req.AMTimeOut,
				PMTimeIn:   req.PMTimeIn,
				PMTimeOut:  req.PMTimeOut,
				TotalHours: total,
				Undertime:  undertime,
			}
			entry = panel.DTR.Entries[i]
			return nil
		}
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no DTR entry for %s", date))
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// DTRDataset tabulates entries with the download column order.
func DTRDataset(entries []models.DTREntry) export.Dataset {
	data := export.NewDataset(dtrHeaders...)
	for _, e := range entries {
		data.AddRow(e.Date, e.AMTimeIn, e.AMTimeOut, e.PMTimeIn, e.PMTimeOut, e.TotalHours, e.Undertime)
	}
	return data
}

// Export renders the visible entries as DTR_<employee>_<date>.csv.
func (s *DTRService) Export(ctx context.Context, sessionID string, now time.Time) (*ExportFile, error) {
	var (
		entries  []models.DTREntry
		employee string
	)
	err := s.read(ctx, sessionID, models.ViewDTR, func(panel *models.PanelState) error {
		if panel.DTR.Employee == "" {
			return appErrors.Clone(appErrors.ErrPreconditionFailed, "select an employee first")
		}
		employee = panel.DTR.Employee
		entries = Filter(panel.DTR.Entries, inRange(panel.DTR))
		return nil
	})
	if err != nil {
		return nil, err
	}
	base := fmt.Sprintf("DTR_%s_%s", employee, now.Format(dateLayout))
	return s.exports.Render(models.ReportFormatCSV, DTRDataset(entries), dtrSheetName, base)
}
