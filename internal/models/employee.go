package models

// EmploymentStatus is the contract type of an employee.
type EmploymentStatus string

const (
	EmploymentRegular      EmploymentStatus = "Regular"
	EmploymentPartTime     EmploymentStatus = "Part-time"
	EmploymentProbationary EmploymentStatus = "Probationary"
)

// Valid reports whether s is a known contract type.
func (s EmploymentStatus) Valid() bool {
	switch s {
	case EmploymentRegular, EmploymentPartTime, EmploymentProbationary:
		return true
	default:
		return false
	}
}

// SalaryGrades lists the grades offered when hiring.
var SalaryGrades = []string{"SG-1", "SG-2", "SG-3", "SG-4", "SG-5", "SG-6", "SG-7", "SG-8"}

// Employee is a row in the employee directory. HRDivision is kept only for the HR department.
type Employee struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Position     string           `json:"position"`
	Department   string           `json:"department"`
	Status       EmploymentStatus `json:"status"`
	SalaryGrade  string           `json:"salaryGrade"`
	EmployeeCode string           `json:"employeeCode"`
	HRDivision   *Division        `json:"hrDivision,omitempty"`
}

// Department groups employees under a colour code.
type Department struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Color         string `json:"color"`
	EmployeeCount int    `json:"employeeCount"`
}

// Hire is a recently placed employee tracked by Recruitment & Placement.
type Hire struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Position    string           `json:"position"`
	Department  string           `json:"department"`
	Status      EmploymentStatus `json:"status"`
	SalaryGrade string           `json:"salaryGrade,omitempty"`
	StartDate   string           `json:"startDate"`
}
