package models

// Deductions are the statutory contributions withheld from pay.
type Deductions struct {
	PagIBIG float64 `json:"pagibig"`
	GSIS    float64 `json:"gsis"`
	SSS     float64 `json:"sss"`
}

// Total sums every deduction.
func (d Deductions) Total() float64 {
	return d.PagIBIG + d.GSIS + d.SSS
}

// PayrollRecord is one employee's pay for the period.
type PayrollRecord struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Department string           `json:"department"`
	Status     EmploymentStatus `json:"status"`
	BaseSalary float64          `json:"baseSalary"`
	Overtime   float64          `json:"overtime"`
	Undertime  float64          `json:"undertime"`
	Deductions Deductions       `json:"deductions"`
	NetSalary  float64          `json:"netSalary"`
}

// PayrollBoard is the payroll panel state: records plus the ids selected for export.
type PayrollBoard struct {
	Records  []PayrollRecord `json:"records"`
	Selected []string        `json:"selected"`
}
