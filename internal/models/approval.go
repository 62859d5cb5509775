package models

// RequestType categorises approval center requests.
type RequestType string

const (
	RequestOvertime  RequestType = "overtime"
	RequestUndertime RequestType = "undertime"
	RequestLeave     RequestType = "leave"
)

// ApprovalRequest is an overtime, undertime or leave request awaiting an HR decision.
type ApprovalRequest struct {
	ID           string       `json:"id"`
	EmployeeName string       `json:"employeeName"`
	Department   string       `json:"department"`
	Type         RequestType  `json:"type"`
	Reason       string       `json:"reason"`
	Date         string       `json:"date"`
	Hours        *float64     `json:"hours,omitempty"`
	LeaveType    string       `json:"leaveType,omitempty"`
	Status       ReviewStatus `json:"status"`
}

func (r ApprovalRequest) ReviewID() string           { return r.ID }
func (r ApprovalRequest) ReviewStatus() ReviewStatus { return r.Status }
func (r ApprovalRequest) WithStatus(s ReviewStatus) ApprovalRequest {
	r.Status = s
	return r
}

// LeaveRequest is a dated leave application reviewed by the Administrative division.
type LeaveRequest struct {
	ID           string       `json:"id"`
	EmployeeName string       `json:"employeeName"`
	Department   string       `json:"department"`
	LeaveType    string       `json:"leaveType"`
	StartDate    string       `json:"startDate"`
	EndDate      string       `json:"endDate"`
	Days         int          `json:"days"`
	Status       ReviewStatus `json:"status"`
}

func (r LeaveRequest) ReviewID() string           { return r.ID }
func (r LeaveRequest) ReviewStatus() ReviewStatus { return r.Status }
func (r LeaveRequest) WithStatus(s ReviewStatus) LeaveRequest {
	r.Status = s
	return r
}

// WFHRequest is a work-from-home time-in awaiting Records division approval.
type WFHRequest struct {
	ID           string       `json:"id"`
	EmployeeName string       `json:"employeeName"`
	Department   string       `json:"department"`
	Note         string       `json:"note"`
	RequestedAt  string       `json:"requestedAt"`
	Status       ReviewStatus `json:"status"`
}

func (r WFHRequest) ReviewID() string           { return r.ID }
func (r WFHRequest) ReviewStatus() ReviewStatus { return r.Status }
func (r WFHRequest) WithStatus(s ReviewStatus) WFHRequest {
	r.Status = s
	return r
}
