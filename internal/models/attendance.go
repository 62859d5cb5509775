package models

// AttendanceStatus is the presence state shown on the monitoring board.
type AttendanceStatus string

const (
	AttendancePresent     AttendanceStatus = "present"
	AttendanceAbsent      AttendanceStatus = "absent"
	AttendanceOnLeave     AttendanceStatus = "on-leave"
	AttendanceTravelOrder AttendanceStatus = "travel-order"
)

// AttendanceStatuses lists statuses in legend order.
var AttendanceStatuses = []AttendanceStatus{AttendancePresent, AttendanceAbsent, AttendanceOnLeave, AttendanceTravelOrder}

// Label returns the human readable legend text.
func (s AttendanceStatus) Label() string {
	switch s {
	case AttendancePresent:
		return "Present"
	case AttendanceAbsent:
		return "Absent"
	case AttendanceOnLeave:
		return "On-Leave"
	case AttendanceTravelOrder:
		return "Travel Order"
	default:
		return string(s)
	}
}

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// AttendanceRecord is one employee's presence and last known position.
type AttendanceRecord struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Department string           `json:"department"`
	Status     AttendanceStatus `json:"status"`
	Location   Coordinates      `json:"location"`
}

// AttendanceBoard is the monitoring panel state.
type AttendanceBoard struct {
	Records          []AttendanceRecord `json:"records"`
	LocationEditable bool               `json:"locationEditable"`
}

// DTREntry is one day of a daily time record.
type DTREntry struct {
	Date       string  `json:"date"`
	AMTimeIn   string  `json:"amTimeIn"`
	AMTimeOut  string  `json:"amTimeOut"`
	PMTimeIn   string  `json:"pmTimeIn"`
	PMTimeOut  string  `json:"pmTimeOut"`
	TotalHours float64 `json:"totalHours"`
	Undertime  float64 `json:"undertime"`
}

// DTRBoard is the DTR management panel state.
type DTRBoard struct {
	Department string     `json:"department"`
	Employee   string     `json:"employee"`
	StartDate  string     `json:"startDate,omitempty"`
	EndDate    string     `json:"endDate,omitempty"`
	Editing    bool       `json:"editing"`
	Entries    []DTREntry `json:"entries"`
}
