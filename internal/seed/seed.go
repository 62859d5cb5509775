// Package seed builds the demo data each panel starts with. Every call returns a fresh copy.
package seed

import "github.com/noah-isme/taptime-api/internal/models"

// Departments used by filters across panels.
var departmentNames = []string{"Finance", "HR", "Marketing", "Technical"}

// DepartmentNames returns the filterable department names.
func DepartmentNames() []string {
	return append([]string(nil), departmentNames...)
}

func hours(h float64) *float64 { return &h }

func division(d models.Division) *models.Division { return &d }

// ApprovalRequests seeds the approval center.
func ApprovalRequests() []models.ApprovalRequest {
	return []models.ApprovalRequest{
		{ID: "1", EmployeeName: "John Doe", Department: "Finance", Type: models.RequestOvertime, Reason: "Month-end closing reports", Date: "2025-10-10", Hours: hours(3), Status: models.StatusPending},
		{ID: "2", EmployeeName: "Jane Smith", Department: "HR", Type: models.RequestLeave, Reason: "Medical appointment", Date: "2025-10-15", LeaveType: "Sick Leave", Status: models.StatusPending},
		{ID: "3", EmployeeName: "Mike Johnson", Department: "Marketing", Type: models.RequestUndertime, Reason: "Family emergency", Date: "2025-10-08", Hours: hours(2), Status: models.StatusPending},
		{ID: "4", EmployeeName: "Sarah Williams", Department: "Technical", Type: models.RequestOvertime, Reason: "System deployment", Date: "2025-10-12", Hours: hours(4), Status: models.StatusPending},
		{ID: "5", EmployeeName: "Tom Brown", Department: "Finance", Type: models.RequestLeave, Reason: "Vacation", Date: "2025-10-20", LeaveType: "Vacation Leave", Status: models.StatusPending},
	}
}

// Tasks seeds the HR admin task board.
func Tasks() []models.Task {
	return []models.Task{
		{ID: "1", Title: "Update Employee Records", Description: "Update all employee records with new information from Q3", Division: models.DivisionRecords, AssignedTo: []string{"Jane Smith", "Tom Brown"}, DueDate: "2025-10-20", Status: models.StatusInProgress, Priority: models.PriorityHigh},
		{ID: "2", Title: "Conduct Training Session", Description: "Organize and conduct training session on new HR policies", Division: models.DivisionTrainingManagement, AssignedTo: []string{"Emily Davis"}, DueDate: "2025-10-25", Status: models.StatusPending, Priority: models.PriorityMedium},
		{ID: "3", Title: "Process New Hire Documents", Description: "Process documents for 3 new hires starting next month", Division: models.DivisionRecruitmentPlacement, AssignedTo: []string{"Sarah Williams"}, DueDate: "2025-10-15", Status: models.StatusCompleted, Priority: models.PriorityHigh},
		{ID: "4", Title: "Prepare Monthly Reports", Description: "Compile and prepare monthly HR administrative reports", Division: models.DivisionAdministrative, AssignedTo: []string{"Jane Smith"}, DueDate: "2025-10-30", Status: models.StatusPending, Priority: models.PriorityLow},
	}
}

// Employees seeds the employee directory.
func Employees() []models.Employee {
	return []models.Employee{
		{ID: "1", Name: "John Doe", Position: "Finance Manager", Department: "Finance", Status: models.EmploymentRegular, SalaryGrade: "SG-5", EmployeeCode: "FIN001"},
		{ID: "2", Name: "Jane Smith", Position: "HR Head", Department: "HR", Status: models.EmploymentRegular, SalaryGrade: "SG-6", EmployeeCode: "HR001", HRDivision: division(models.DivisionAdministrative)},
		{ID: "3", Name: "Mike Johnson", Position: "Marketing Associate", Department: "Marketing", Status: models.EmploymentProbationary, SalaryGrade: "SG-3", EmployeeCode: "MKT001"},
		{ID: "4", Name: "Sarah Williams", Position: "Technical Lead", Department: "Technical", Status: models.EmploymentRegular, SalaryGrade: "SG-7", EmployeeCode: "TEC001"},
	}
}

// Departments seeds the department list with headcounts.
func Departments() []models.Department {
	return []models.Department{
		{ID: "1", Name: "Finance", Color: "red", EmployeeCount: 12},
		{ID: "2", Name: "HR", Color: "blue", EmployeeCount: 8},
		{ID: "3", Name: "Marketing", Color: "green", EmployeeCount: 15},
		{ID: "4", Name: "Technical", Color: "yellow", EmployeeCount: 12},
	}
}

// Attendance seeds the monitoring board.
func Attendance() []models.AttendanceRecord {
	return []models.AttendanceRecord{
		{ID: "1", Name: "John Doe", Department: "Finance", Status: models.AttendancePresent, Location: models.Coordinates{Lat: 14.5995, Lng: 120.9842}},
		{ID: "2", Name: "Jane Smith", Department: "HR", Status: models.AttendancePresent, Location: models.Coordinates{Lat: 14.5996, Lng: 120.9843}},
		{ID: "3", Name: "Mike Johnson", Department: "Marketing", Status: models.AttendanceOnLeave, Location: models.Coordinates{Lat: 14.5997, Lng: 120.9844}},
		{ID: "4", Name: "Sarah Williams", Department: "Technical", Status: models.AttendancePresent, Location: models.Coordinates{Lat: 14.5998, Lng: 120.9845}},
		{ID: "5", Name: "Tom Brown", Department: "Finance", Status: models.AttendanceAbsent, Location: models.Coordinates{}},
		{ID: "6", Name: "Emily Davis", Department: "HR", Status: models.AttendanceTravelOrder, Location: models.Coordinates{Lat: 14.5999, Lng: 120.9846}},
	}
}

// DTREntries seeds a week of time records.
func DTREntries() []models.DTREntry {
	return []models.DTREntry{
		{Date: "2025-10-01", AMTimeIn: "08:00", AMTimeOut: "12:00", PMTimeIn: "13:00", PMTimeOut: "17:00", TotalHours: 8},
		{Date: "2025-10-02", AMTimeIn: "08:15", AMTimeOut: "12:00", PMTimeIn: "13:00", PMTimeOut: "17:00", TotalHours: 7.75, Undertime: 0.25},
		{Date: "2025-10-03", AMTimeIn: "08:00", AMTimeOut: "12:00", PMTimeIn: "13:00", PMTimeOut: "16:30", TotalHours: 7.5, Undertime: 0.5},
		{Date: "2025-10-04", AMTimeIn: "08:00", AMTimeOut: "12:00", PMTimeIn: "13:00", PMTimeOut: "17:00", TotalHours: 8},
		{Date: "2025-10-05", AMTimeIn: "08:00", AMTimeOut: "12:00", PMTimeIn: "13:00", PMTimeOut: "17:00", TotalHours: 8},
	}
}

// DTREmployees lists who can be picked on the DTR panel.
func DTREmployees() []models.Employee {
	return []models.Employee{
		{ID: "1", Name: "John Doe", Department: "Finance"},
		{ID: "2", Name: "Jane Smith", Department: "HR"},
		{ID: "3", Name: "Mike Johnson", Department: "Marketing"},
		{ID: "4", Name: "Sarah Williams", Department: "Technical"},
	}
}

// Payroll seeds the payroll table.
func Payroll() []models.PayrollRecord {
	return []models.PayrollRecord{
		{ID: "1", Name: "John Doe", Department: "Finance", Status: models.EmploymentRegular, BaseSalary: 50000, Overtime: 2500, Undertime: 500, Deductions: models.Deductions{PagIBIG: 200, GSIS: 1500, SSS: 1200}, NetSalary: 49100},
		{ID: "2", Name: "Jane Smith", Department: "HR", Status: models.EmploymentRegular, BaseSalary: 55000, Overtime: 1500, Deductions: models.Deductions{PagIBIG: 200, GSIS: 1650, SSS: 1320}, NetSalary: 53330},
		{ID: "3", Name: "Mike Johnson", Department: "Marketing", Status: models.EmploymentProbationary, BaseSalary: 35000, Overtime: 1000, Undertime: 300, Deductions: models.Deductions{PagIBIG: 200, GSIS: 1050, SSS: 840}, NetSalary: 33610},
		{ID: "4", Name: "Sarah Williams", Department: "Technical", Status: models.EmploymentRegular, BaseSalary: 60000, Overtime: 3000, Deductions: models.Deductions{PagIBIG: 200, GSIS: 1800, SSS: 1440}, NetSalary: 59560},
	}
}

// LeaveTypes seeds the leave entitlements.
func LeaveTypes() []models.LeaveType {
	return []models.LeaveType{
		{ID: "1", Name: "Overtime", Duration: "10 days/year", DurationValue: 10, Unit: models.UnitDays},
		{ID: "2", Name: "Sick Leave", Duration: "15 days/year", DurationValue: 15, Unit: models.UnitDays},
		{ID: "3", Name: "Emergency Leave", Duration: "5 days/year", DurationValue: 5, Unit: models.UnitDays},
		{ID: "4", Name: "Vacation Leave", Duration: "15 days/year", DurationValue: 15, Unit: models.UnitDays},
		{ID: "5", Name: "Parental Leave", Duration: "8 weeks", DurationValue: 8, Unit: models.UnitWeeks},
		{ID: "6", Name: "Magna Carta of Women", Duration: "2 months", DurationValue: 60, Unit: models.UnitDays},
	}
}

// Benefits seeds the statutory benefits.
func Benefits() []models.Benefit {
	return []models.Benefit{
		{ID: "1", Name: "SSS", Description: "Social Security System"},
		{ID: "2", Name: "Pag-IBIG", Description: "Home Development Mutual Fund"},
		{ID: "3", Name: "PhilHealth", Description: "Philippine Health Insurance Corporation"},
		{ID: "4", Name: "GSIS", Description: "Government Service Insurance System"},
	}
}

// LeaveHistory seeds per-employee leave usage.
func LeaveHistory() []models.LeaveUsage {
	return []models.LeaveUsage{
		{EmployeeID: "1", EmployeeName: "John Doe", Department: "Finance", LeaveType: "Sick Leave", TotalDays: 15, UsedDays: 3, RemainingDays: 12},
		{EmployeeID: "2", EmployeeName: "Jane Smith", Department: "HR", LeaveType: "Vacation Leave", TotalDays: 15, UsedDays: 5, RemainingDays: 10},
		{EmployeeID: "3", EmployeeName: "Mike Johnson", Department: "Marketing", LeaveType: "Emergency Leave", TotalDays: 5, UsedDays: 2, RemainingDays: 3},
		{EmployeeID: "4", EmployeeName: "Sarah Williams", Department: "Technical", LeaveType: "Sick Leave", TotalDays: 15, UsedDays: 1, RemainingDays: 14},
	}
}

// Settings seeds the system configuration.
func Settings() models.Settings {
	return models.Settings{
		WorkMode:         models.WorkModePersonal,
		LocationTracking: true,
		WifiVerification: true,
		AutoSave:         true,
	}
}

// AdministrativeLeaveRequests seeds the Administrative division queue.
func AdministrativeLeaveRequests() []models.LeaveRequest {
	return []models.LeaveRequest{
		{ID: "1", EmployeeName: "John Doe", Department: "Finance", LeaveType: "Vacation Leave", StartDate: "2025-10-20", EndDate: "2025-10-22", Days: 3, Status: models.StatusPending},
		{ID: "2", EmployeeName: "Jane Smith", Department: "Marketing", LeaveType: "Sick Leave", StartDate: "2025-10-18", EndDate: "2025-10-18", Days: 1, Status: models.StatusPending},
	}
}

// WFHRequests seeds the Records division time-in approvals.
func WFHRequests() []models.WFHRequest {
	return []models.WFHRequest{
		{ID: "1", EmployeeName: "John Doe", Department: "Marketing", Note: "Requesting WFH approval for today", RequestedAt: "8:30 AM", Status: models.StatusPending},
		{ID: "2", EmployeeName: "Sarah Williams", Department: "Technical", Note: "Requesting WFH approval for today", RequestedAt: "8:45 AM", Status: models.StatusPending},
	}
}

// Trainings seeds the training schedule.
func Trainings() []models.Training {
	return []models.Training{
		{ID: "1", Name: "New HR Policies Workshop", Department: "All Departments", Schedule: "2025-10-20", Time: "9:00 AM - 12:00 PM", Venue: "Conference Room A", Status: models.TrainingUpcoming},
		{ID: "2", Name: "Safety Training", Department: "Technical", Schedule: "2025-10-18", Time: "2:00 PM - 4:00 PM", Venue: "Training Center", Status: models.TrainingOngoing},
	}
}

// TrainingTasks seeds the Training & Management task list.
func TrainingTasks() []models.Task {
	return []models.Task{
		{ID: "1", Title: "Update training materials", Division: models.DivisionTrainingManagement, DueDate: "2025-10-25", Status: models.StatusInProgress},
		{ID: "2", Title: "Review employee records", Division: models.DivisionRecords, DueDate: "2025-10-22", Status: models.StatusPending},
	}
}

// Hires seeds Recruitment & Placement's recent hires.
func Hires() []models.Hire {
	return []models.Hire{
		{ID: "1", Name: "Alice Johnson", Position: "Marketing Associate", Department: "Marketing", StartDate: "2025-10-15", Status: models.EmploymentProbationary},
		{ID: "2", Name: "Bob Smith", Position: "Software Engineer", Department: "Technical", StartDate: "2025-10-10", Status: models.EmploymentProbationary},
	}
}
