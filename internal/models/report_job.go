package models

import "time"

// ReportType enumerates the reports the Records division can generate.
type ReportType string

const (
	ReportDTR        ReportType = "DTR Report"
	ReportPayroll    ReportType = "Payroll Report"
	ReportAttendance ReportType = "Attendance Summary"
	ReportLeave      ReportType = "Leave Report"
)

// ReportTypes lists report types in menu order.
var ReportTypes = []ReportType{ReportDTR, ReportPayroll, ReportAttendance, ReportLeave}

// Valid reports whether t is a known report type.
func (t ReportType) Valid() bool {
	switch t {
	case ReportDTR, ReportPayroll, ReportAttendance, ReportLeave:
		return true
	default:
		return false
	}
}

// ReportFormat enumerates supported export formats.
type ReportFormat string

const (
	ReportFormatCSV  ReportFormat = "csv"
	ReportFormatPDF  ReportFormat = "pdf"
	ReportFormatXLSX ReportFormat = "xlsx"
)

// ReportStatus captures background job lifecycle states.
type ReportStatus string

const (
	ReportStatusQueued     ReportStatus = "QUEUED"
	ReportStatusProcessing ReportStatus = "PROCESSING"
	ReportStatusFinished   ReportStatus = "FINISHED"
	ReportStatusFailed     ReportStatus = "FAILED"
)

// ReportParams narrows a report to a department and/or employee.
type ReportParams struct {
	Type       ReportType   `json:"type"`
	Format     ReportFormat `json:"format"`
	Department string       `json:"department,omitempty"`
	Employee   string       `json:"employee,omitempty"`
}

// ReportJob tracks one asynchronous report generation.
type ReportJob struct {
	ID           string       `json:"id"`
	SessionID    string       `json:"-"`
	Params       ReportParams `json:"params"`
	Status       ReportStatus `json:"status"`
	FileName     string       `json:"fileName,omitempty"`
	StoragePath  string       `json:"-"`
	DownloadURL  string       `json:"downloadUrl,omitempty"`
	ExpiresAt    *time.Time   `json:"expiresAt,omitempty"`
	ErrorMessage string       `json:"errorMessage,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	FinishedAt   *time.Time   `json:"finishedAt,omitempty"`
}
