package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/taptime-api/internal/dto"
	"github.com/noah-isme/taptime-api/internal/models"
	appErrors "github.com/noah-isme/taptime-api/pkg/errors"
	"github.com/noah-isme/taptime-api/pkg/export"
)

var payrollHeaders = []string{"Name", "Department", "Status", "Base Salary", "Overtime", "Undertime", "Pag-IBIG", "GSIS", "SSS", "Net Salary"}

// PayrollService runs the payroll table and its exports.
type PayrollService struct {
	panelBase
	exports *ExportService
}

// NewPayrollService constructs the service.
func NewPayrollService(sessions *SessionService, exports *ExportService, validate *validator.Validate, logger *zap.Logger) *PayrollService {
	return &PayrollService{panelBase: newPanelBase(sessions, validate, logger), exports: exports}
}

func filterPayroll(records []models.PayrollRecord, query dto.PayrollQuery) []models.PayrollRecord {
	return Filter(records,
		func(r models.PayrollRecord) bool { return Matches(query.Department, r.Department) },
		func(r models.PayrollRecord) bool { return Matches(query.Status, string(r.Status)) },
	)
}

func selectionSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// coversAll reports whether every record is selected. An empty table is never covered.
func coversAll(records []models.PayrollRecord, selected map[string]bool) bool {
	if len(records) == 0 {
		return false
	}
	for _, r := range records {
		if !selected[r.ID] {
			return false
		}
	}
	return true
}

func payrollView(board *models.PayrollBoard, query dto.PayrollQuery) *dto.PayrollView {
	records := filterPayroll(board.Records, query)
	view := &dto.PayrollView{
		Records:     records,
		Selected:    append([]string{}, board.Selected...),
		AllSelected: coversAll(records, selectionSet(board.Selected)),
	}
	for _, r := range records {
		view.Totals.NetSalaries += r.NetSalary
		view.Totals.Overtime += r.Overtime
		view.Totals.Deductions += r.Deductions.Total()
	}
	return view
}

// View returns the filtered table with totals.
func (s *PayrollService) View(ctx context.Context, sessionID string, query dto.PayrollQuery) (*dto.PayrollView, error) {
	var view *dto.PayrollView
	err := s.read(ctx, sessionID, models.ViewPayroll, func(panel *models.PanelState) error {
		view = payrollView(panel.Payroll, query)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// Toggle flips the selection of one record.
func (s *PayrollService) Toggle(ctx context.Context, sessionID, recordID string, query dto.PayrollQuery) (*dto.PayrollView, error) {
	var view *dto.PayrollView
	err := s.update(ctx, sessionID, models.ViewPayroll, func(panel *models.PanelState) error {
		board := panel.Payroll
		found := false
		for _, r := range board.Records {
			if r.ID == recordID {
				found = true
				break
			}
		}
		if !found {
			return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("payroll record %s not found", recordID))
		}
		next := make([]string, 0, len(board.Selected)+1)
		removed := false
		for _, id := range board.Selected {
			if id == recordID {
				removed = true
				continue
			}
			next = append(next, id)
		}
		if !removed {
			next = append(next, recordID)
		}
		board.Selected = next
		view = payrollView(board, query)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// SelectAll selects every filtered record, or clears the selection when all of them already are.
func (s *PayrollService) SelectAll(ctx context.Context, sessionID string, query dto.PayrollQuery) (*dto.PayrollView, error) {
	var view *dto.PayrollView
	err := s.update(ctx, sessionID, models.ViewPayroll, func(panel *models.PanelState) error {
		board := panel.Payroll
		records := filterPayroll(board.Records, query)
		if coversAll(records, selectionSet(board.Selected)) {
			board.Selected = []string{}
		} else {
			ids := make([]string, 0, len(records))
			for _, r := range records {
				ids = append(ids, r.ID)
			}
			board.Selected = ids
		}
		view = payrollView(board, query)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// PayrollDataset tabulates records with the download column order.
func PayrollDataset(records []models.PayrollRecord) export.Dataset {
	data := export.NewDataset(payrollHeaders...)
	for _, r := range records {
		data.AddRow(r.Name, r.Department, string(r.Status), r.BaseSalary, r.Overtime, r.Undertime,
			r.Deductions.PagIBIG, r.Deductions.GSIS, r.Deductions.SSS, r.NetSalary)
	}
	return data
}

// Export renders the selected records as Payroll_<date> in format.
func (s *PayrollService) Export(ctx context.Context, sessionID string, format models.ReportFormat, now time.Time) (*ExportFile, error) {
	var records []models.PayrollRecord
	err := s.read(ctx, sessionID, models.ViewPayroll, func(panel *models.PanelState) error {
		selected := selectionSet(panel.Payroll.Selected)
		records = Filter(panel.Payroll.Records, func(r models.PayrollRecord) bool { return selected[r.ID] })
		if len(records) == 0 {
			return appErrors.Clone(appErrors.ErrValidation, "select at least one payroll record")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.exports.Render(format, PayrollDataset(records), "Payroll", "Payroll_"+now.Format(dateLayout))
}
