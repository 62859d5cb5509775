package models

import "time"

// View names a dashboard page. Every view except overview mounts a panel.
type View string

const (
	ViewOverview       View = "overview"
	ViewAttendance     View = "attendance"
	ViewEmployees      View = "employees"
	ViewDTR            View = "dtr"
	ViewPayroll        View = "payroll"
	ViewApprovals      View = "approvals"
	ViewLeaves         View = "leaves"
	ViewTasks          View = "tasks"
	ViewSettings       View = "settings"
	ViewAdministrative View = "administrative"
	ViewRecords        View = "records"
	ViewTraining       View = "training"
	ViewRecruitment    View = "recruitment"
)

// DivisionView maps an HR division to its panel.
func DivisionView(d Division) (View, bool) {
	switch d {
	case DivisionAdministrative:
		return ViewAdministrative, true
	case DivisionRecords:
		return ViewRecords, true
	case DivisionTrainingManagement:
		return ViewTraining, true
	case DivisionRecruitmentPlacement:
		return ViewRecruitment, true
	default:
		return "", false
	}
}

// ApprovalsPanel holds the approval center queue.
type ApprovalsPanel struct {
	Requests []ApprovalRequest `json:"requests"`
}

// AdministrativePanel holds the Administrative division's leave queue.
type AdministrativePanel struct {
	LeaveRequests []LeaveRequest `json:"leaveRequests"`
}

// RecordsPanel holds the Records division's WFH time-in queue.
type RecordsPanel struct {
	WFHRequests []WFHRequest `json:"wfhRequests"`
}

// TrainingPanel holds the Training & Management schedules and tasks.
type TrainingPanel struct {
	Trainings []Training `json:"trainings"`
	Tasks     []Task     `json:"tasks"`
}

// RecruitmentPanel holds the recent hires list.
type RecruitmentPanel struct {
	Hires []Hire `json:"hires"`
}

// EmployeesPanel holds the directory and its departments.
type EmployeesPanel struct {
	Employees   []Employee   `json:"employees"`
	Departments []Department `json:"departments"`
}

// TasksPanel holds the task board.
type TasksPanel struct {
	Tasks []Task `json:"tasks"`
}

// PanelState is the mounted panel of a dashboard. Exactly one field matching View is set.
type PanelState struct {
	View           View                 `json:"view"`
	Approvals      *ApprovalsPanel      `json:"approvals,omitempty"`
	Attendance     *AttendanceBoard     `json:"attendance,omitempty"`
	Employees      *EmployeesPanel      `json:"employees,omitempty"`
	DTR            *DTRBoard            `json:"dtr,omitempty"`
	Payroll        *PayrollBoard        `json:"payroll,omitempty"`
	Leaves         *LeaveBoard          `json:"leaves,omitempty"`
	Tasks          *TasksPanel          `json:"tasks,omitempty"`
	Settings       *Settings            `json:"settings,omitempty"`
	Administrative *AdministrativePanel `json:"administrative,omitempty"`
	Records        *RecordsPanel        `json:"records,omitempty"`
	Training       *TrainingPanel       `json:"training,omitempty"`
	Recruitment    *RecruitmentPanel    `json:"recruitment,omitempty"`
}

// DashboardState is the mounted dashboard of a session.
type DashboardState struct {
	View       View        `json:"view"`
	ClockedIn  bool        `json:"clockedIn"`
	ClockedAt  *time.Time  `json:"clockedAt,omitempty"`
	WFHMode    bool        `json:"wfhMode"`
	WFHPending bool        `json:"wfhPending"`
	Panel      *PanelState `json:"panel,omitempty"`
	MountedAt  time.Time   `json:"mountedAt"`
}

// Stat is a labelled overview figure.
type Stat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// QuickAction is an overview shortcut.
type QuickAction struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Alert is a system alert shown on the HR admin overview.
type Alert struct {
	Title    string `json:"title"`
	Detail   string `json:"detail"`
	Severity string `json:"severity"`
}

// AlertCounts are the tab counters on the alerts card.
type AlertCounts struct {
	All    int `json:"all"`
	Unread int `json:"unread"`
	High   int `json:"high"`
	Medium int `json:"medium"`
}

// Profile is the identity card at the top of a dashboard.
type Profile struct {
	Name       string `json:"name"`
	Department string `json:"department,omitempty"`
	Position   string `json:"position,omitempty"`
	Contract   string `json:"contract,omitempty"`
	Badge      string `json:"badge,omitempty"`
}

// Overview is the role-specific landing content of a dashboard.
type Overview struct {
	Title          string        `json:"title"`
	Profile        Profile       `json:"profile"`
	Stats          []Stat        `json:"stats"`
	QuickActions   []QuickAction `json:"quickActions,omitempty"`
	RecentActivity []Stat        `json:"recentActivity,omitempty"`
	Alerts         []Alert       `json:"alerts,omitempty"`
	AlertCounts    *AlertCounts  `json:"alertCounts,omitempty"`
}
