package models

// DurationUnit measures a leave entitlement.
type DurationUnit string

const (
	UnitDays  DurationUnit = "days"
	UnitWeeks DurationUnit = "weeks"
)

// LeaveType is an entitlement offered by the company.
type LeaveType struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Duration      string       `json:"duration"`
	DurationValue int          `json:"durationValue"`
	Unit          DurationUnit `json:"unit"`
}

// Benefit is a statutory or company benefit.
type Benefit struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LeaveUsage is an employee's consumption of one leave type.
type LeaveUsage struct {
	EmployeeID    string `json:"employeeId"`
	EmployeeName  string `json:"employeeName"`
	Department    string `json:"department"`
	LeaveType     string `json:"leaveType"`
	TotalDays     int    `json:"totalDays"`
	UsedDays      int    `json:"usedDays"`
	RemainingDays int    `json:"remainingDays"`
}

// LeaveBoard is the leaves & benefits panel state.
type LeaveBoard struct {
	LeaveTypes []LeaveType  `json:"leaveTypes"`
	Benefits   []Benefit    `json:"benefits"`
	History    []LeaveUsage `json:"history"`
}
