package dto

import "github.com/noah-isme/taptime-api/internal/models"

// ReviewFilter narrows review queues. "all" or empty matches everything.
type ReviewFilter struct {
	Department string `form:"department"`
	Employee   string `form:"employee"`
	Type       string `form:"type"`
	Status     string `form:"status"`
	Division   string `form:"division"`
}

// ApprovalSummary carries the approval center counters.
type ApprovalSummary struct {
	Pending   int `json:"pending"`
	Overtime  int `json:"overtime"`
	Undertime int `json:"undertime"`
	Leave     int `json:"leave"`
}

// ApprovalsView is the approval center as filtered for display.
type ApprovalsView struct {
	Requests    []models.ApprovalRequest `json:"requests"`
	Summary     ApprovalSummary          `json:"summary"`
	Departments []string                 `json:"departments"`
	Employees   []string                 `json:"employees"`
}

// CreateTaskRequest adds a task to a board. AssignedTo is a comma separated list.
type CreateTaskRequest struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	Division    models.Division `json:"division" validate:"required"`
	AssignedTo  string          `json:"assignedTo"`
	DueDate     string          `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	Priority    models.Priority `json:"priority" validate:"omitempty,oneof=low medium high"`
}

// TaskCounts are per-status totals on a task board.
type TaskCounts struct {
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
}

// DivisionTab is a task board tab with its count.
type DivisionTab struct {
	Division models.Division `json:"division"`
	Count    int             `json:"count"`
}

// TasksView is the task board as filtered for display.
type TasksView struct {
	Tasks  []models.Task `json:"tasks"`
	Counts TaskCounts    `json:"counts"`
	Total  int           `json:"total"`
	Tabs   []DivisionTab `json:"tabs"`
}

// EmployeeQuery filters the employee directory.
type EmployeeQuery struct {
	Search     string `form:"search"`
	Department string `form:"department"`
}

// CreateEmployeeRequest adds an employee to the directory.
type CreateEmployeeRequest struct {
	Name         string                  `json:"name" validate:"required"`
	Position     string                  `json:"position" validate:"required"`
	Department   string                  `json:"department" validate:"required"`
	Status       models.EmploymentStatus `json:"status" validate:"omitempty,oneof=Regular Part-time Probationary"`
	SalaryGrade  string                  `json:"salaryGrade"`
	EmployeeCode string                  `json:"employeeCode" validate:"required"`
	HRDivision   models.Division         `json:"hrDivision"`
}

// CreateDepartmentRequest adds a department.
type CreateDepartmentRequest struct {
	Name  string `json:"name" validate:"required"`
	Color string `json:"color" validate:"omitempty,oneof=red blue green yellow purple orange gray"`
}

// EmployeesView is the employee directory as filtered for display.
type EmployeesView struct {
	Employees   []models.Employee   `json:"employees"`
	Departments []models.Department `json:"departments"`
	Total       int                 `json:"total"`
}

// AttendanceGroup is one department's column on the monitoring board.
type AttendanceGroup struct {
	Department string                    `json:"department"`
	Color      string                    `json:"color"`
	Records    []models.AttendanceRecord `json:"records"`
}

// AttendanceView groups the monitoring board by department.
type AttendanceView struct {
	Groups           []AttendanceGroup               `json:"groups"`
	Counts           map[models.AttendanceStatus]int `json:"counts"`
	LocationEditable bool                            `json:"locationEditable"`
}

// UpdateLocationRequest moves an employee's pin while location editing is unlocked.
type UpdateLocationRequest struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

// DTRSelection picks whose record the DTR panel shows.
type DTRSelection struct {
	Department string `json:"department"`
	Employee   string `json:"employee"`
	StartDate  string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate    string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateDTREntryRequest edits the punches of one DTR day.
type UpdateDTREntryRequest struct {
	AMTimeIn  string `json:"amTimeIn" validate:"required,datetime=15:04"`
	AMTimeOut string `json:"amTimeOut" validate:"required,datetime=15:04"`
	PMTimeIn  string `json:"pmTimeIn" validate:"required,datetime=15:04"`
	PMTimeOut string `json:"pmTimeOut" validate:"required,datetime=15:04"`
}

// DTRView is the DTR panel as shown to clients.
type DTRView struct {
	Board          models.DTRBoard   `json:"board"`
	Departments    []string          `json:"departments"`
	Employees      []models.Employee `json:"employees"`
	TotalHours     float64           `json:"totalHours"`
	TotalUndertime float64           `json:"totalUndertime"`
	CanDownload    bool              `json:"canDownload"`
}

// PayrollQuery filters the payroll table.
type PayrollQuery struct {
	Department string `form:"department"`
	Status     string `form:"status"`
}

// PayrollTotals are the summary cards over the filtered rows.
type PayrollTotals struct {
	NetSalaries float64 `json:"netSalaries"`
	Overtime    float64 `json:"overtime"`
	Deductions  float64 `json:"deductions"`
}

// PayrollView is the payroll table as filtered for display.
type PayrollView struct {
	Records     []models.PayrollRecord `json:"records"`
	Selected    []string               `json:"selected"`
	AllSelected bool                   `json:"allSelected"`
	Totals      PayrollTotals          `json:"totals"`
}

// CreateLeaveTypeRequest adds a leave entitlement.
type CreateLeaveTypeRequest struct {
	Name          string              `json:"name" validate:"required"`
	DurationValue int                 `json:"durationValue" validate:"required,gt=0"`
	Unit          models.DurationUnit `json:"unit" validate:"omitempty,oneof=days weeks"`
}

// CreateBenefitRequest adds a benefit.
type CreateBenefitRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// UsageBand grades how much of an entitlement is used.
type UsageBand string

const (
	UsageLow    UsageBand = "low"
	UsageMedium UsageBand = "medium"
	UsageHigh   UsageBand = "high"
)

// LeaveUsageView is a history row with its usage percentage.
type LeaveUsageView struct {
	models.LeaveUsage
	Percentage float64   `json:"percentage"`
	Band       UsageBand `json:"band"`
}

// LeavesView is the leaves & benefits panel as shown to clients.
type LeavesView struct {
	LeaveTypes []models.LeaveType `json:"leaveTypes"`
	Benefits   []models.Benefit   `json:"benefits"`
	History    []LeaveUsageView   `json:"history"`
}

// UpdateSettingsRequest patches the system configuration. Nil fields are left unchanged.
type UpdateSettingsRequest struct {
	WorkMode         *models.WorkMode `json:"workMode" validate:"omitempty,oneof=personal off-location"`
	LocationTracking *bool            `json:"locationTracking"`
	WifiVerification *bool            `json:"wifiVerification"`
	AutoSave         *bool            `json:"autoSave"`
}

// AdministrativeView is the Administrative division panel.
type AdministrativeView struct {
	LeaveRequests []models.LeaveRequest `json:"leaveRequests"`
	Pending       []models.LeaveRequest `json:"pending"`
	PendingCount  int                   `json:"pendingCount"`
}

// RecordsView is the Records division panel.
type RecordsView struct {
	ReportTypes []models.ReportType `json:"reportTypes"`
	Departments []string            `json:"departments"`
	WFHRequests []models.WFHRequest `json:"wfhRequests"`
	Reports     []models.ReportJob  `json:"reports"`
	Stats       []models.Stat       `json:"stats"`
}

// CreateReportRequest asks the Records division to generate a report.
type CreateReportRequest struct {
	Type       models.ReportType   `json:"type" validate:"required"`
	Format     models.ReportFormat `json:"format" validate:"omitempty,oneof=csv pdf xlsx"`
	Department string              `json:"department"`
	Employee   string              `json:"employee"`
}

// CreateTrainingRequest schedules a training session.
type CreateTrainingRequest struct {
	Name       string `json:"name" validate:"required"`
	Department string `json:"department" validate:"required"`
	Schedule   string `json:"schedule" validate:"required,datetime=2006-01-02"`
	Time       string `json:"time"`
	Venue      string `json:"venue"`
}

// TrainingView is the Training & Management panel.
type TrainingView struct {
	Trainings []models.Training `json:"trainings"`
	Tasks     []models.Task     `json:"tasks"`
}

// CreateHireRequest adds a recent hire. Status defaults to Probationary.
type CreateHireRequest struct {
	Name        string                  `json:"name" validate:"required"`
	Position    string                  `json:"position" validate:"required"`
	Department  string                  `json:"department" validate:"required"`
	Status      models.EmploymentStatus `json:"status" validate:"omitempty,oneof=Regular Part-time Probationary"`
	SalaryGrade string                  `json:"salaryGrade" validate:"omitempty,oneof=SG-1 SG-2 SG-3 SG-4 SG-5 SG-6 SG-7 SG-8"`
	StartDate   string                  `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
}

// RecruitmentView is the Recruitment & Placement panel.
type RecruitmentView struct {
	Hires        []models.Hire `json:"hires"`
	Departments  []string      `json:"departments"`
	SalaryGrades []string      `json:"salaryGrades"`
}

// CreateTrainingTaskRequest adds a task to the Training & Management list.
type CreateTrainingTaskRequest struct {
	Title   string `json:"title" validate:"required"`
	DueDate string `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
}
