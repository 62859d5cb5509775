package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/taptime-api/internal/dto"
	"github.com/noah-isme/taptime-api/internal/models"
	appErrors "github.com/noah-isme/taptime-api/pkg/errors"
)

const defaultDepartmentColor = "blue"

// EmployeeService manages the employee directory panel.
type EmployeeService struct {
	panelBase
}

// NewEmployeeService constructs the service.
func NewEmployeeService(sessions *SessionService, validate *validator.Validate, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{panelBase: newPanelBase(sessions, validate, logger)}
}

func matchesSearch(search string, e models.Employee) bool {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Name), search) ||
		strings.Contains(strings.ToLower(e.EmployeeCode), search)
}

func employeesView(panel *models.EmployeesPanel, query dto.EmployeeQuery) *dto.EmployeesView {
	employees := Filter(panel.Employees,
		func(e models.Employee) bool { return matchesSearch(query.Search, e) },
		func(e models.Employee) bool { return Matches(query.Department, e.Department) },
	)
	return &dto.EmployeesView{
		Employees:   employees,
		Departments: append([]models.Department(nil), panel.Departments...),
		Total:       len(employees),
	}
}

// List returns the directory filtered by search text and department.
func (s *EmployeeService) List(ctx context.Context, sessionID string, query dto.EmployeeQuery) (*dto.EmployeesView, error) {
	var view *dto.EmployeesView
	err := s.read(ctx, sessionID, models.ViewEmployees, func(panel *models.PanelState) error {
		view = employeesView(panel.Employees, query)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// Add appends an employee. The HR division is only kept for the HR department.
func (s *EmployeeService) Add(ctx context.Context, sessionID string, req dto.CreateEmployeeRequest) (*models.Employee, error) {
	if err := s.validate(req, "invalid employee payload"); err != nil {
		return nil, err
	}
	status := req.Status
	if status == "" {
		status = models.EmploymentRegular
	}
	employee := models.Employee{
		Name:         strings.TrimSpace(req.Name),
		Position:     strings.TrimSpace(req.Position),
		Department:   req.Department,
		Status:       status,
		SalaryGrade:  req.SalaryGrade,
		EmployeeCode: strings.TrimSpace(req.EmployeeCode),
	}
	if req.Department == "HR" && req.HRDivision != "" {
		if !req.HRDivision.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown HR division")
		}
		division := req.HRDivision
		employee.HRDivision = &division
	}

	err := s.update(ctx, sessionID, models.ViewEmployees, func(panel *models.PanelState) error {
		employee.ID = s.newID()
		panel.Employees.Employees = append(panel.Employees.Employees, employee)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// Remove deletes an employee by id.
func (s *EmployeeService) Remove(ctx context.Context, sessionID, employeeID string) error {
	return s.update(ctx, sessionID, models.ViewEmployees, func(panel *models.PanelState) error {
		for i, e := range panel.Employees.Employees {
			if e.ID == employeeID {
				panel.Employees.Employees = append(panel.Employees.Employees[:i:i], panel.Employees.Employees[i+1:]...)
				return nil
			}
		}
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("employee %s not found", employeeID))
	})
}

// AddDepartment creates an empty department.
func (s *EmployeeService) AddDepartment(ctx context.Context, sessionID string, req dto.CreateDepartmentRequest) (*models.Department, error) {
	if err := s.validate(req, "invalid department payload"); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	color := req.Color
	if color == "" {
		color = defaultDepartmentColor
	}
	var department models.Department
	err := s.update(ctx, sessionID, models.ViewEmployees, func(panel *models.PanelState) error {
		for _, d := range panel.Employees.Departments {
			if strings.EqualFold(d.Name, name) {
				return appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("department %s already exists", d.Name))
			}
		}
		department = models.Department{ID: s.newID(), Name: name, Color: color}
		panel.Employees.Departments = append(panel.Employees.Departments, department)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &department, nil
}
