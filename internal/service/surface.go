package service

import (
	"fmt"
	"time"

	"github.com/noah-isme/taptime-api/internal/models"
	"github.com/noah-isme/taptime-api/internal/seed"
	appErrors "github.com/noah-isme/taptime-api/pkg/errors"
)

// Surface is the management surface a signed-in role sees. The set is closed:
// EmployeeSurface, DepartmentHeadSurface, HRAdminSurface and HRDivisionSurface.
type Surface interface {
	Name() string
	Views() []models.View
	DefaultView() models.View
	Overview(user models.User) models.Overview
	SupportsWFH() bool
	surface()
}

// EmployeeSurface is the generic employee dashboard.
type EmployeeSurface struct{}

// DepartmentHeadSurface is the employee dashboard plus team management.
type DepartmentHeadSurface struct{}

// HRAdminSurface is the full HR management console.
type HRAdminSurface struct{}

// HRDivisionSurface is the dashboard of one HR division.
type HRDivisionSurface struct {
	Division models.Division
}

var hrAdminViews = []models.View{
	models.ViewOverview,
	models.ViewAttendance,
	models.ViewEmployees,
	models.ViewDTR,
	models.ViewPayroll,
	models.ViewApprovals,
	models.ViewLeaves,
	models.ViewTasks,
	models.ViewSettings,
}

// ResolveSurface maps a user onto its surface. An hr-division user without a division is rejected.
func ResolveSurface(user *models.User) (Surface, error) {
	if user == nil {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "no user is signed in")
	}
	switch user.Role {
	case models.RoleEmployee:
		return EmployeeSurface{}, nil
	case models.RoleDepartmentHead:
		return DepartmentHeadSurface{}, nil
	case models.RoleHRAdmin:
		return HRAdminSurface{}, nil
	case models.RoleHRDivision:
		if user.Division == nil {
			return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "hr-division user has no division selected")
		}
		if _, ok := models.DivisionView(*user.Division); !ok {
			return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, fmt.Sprintf("unknown division %q", *user.Division))
		}
		return HRDivisionSurface{Division: *user.Division}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, fmt.Sprintf("unknown role %q", user.Role))
	}
}

func (EmployeeSurface) surface()       {}
func (DepartmentHeadSurface) surface() {}
func (HRAdminSurface) surface()        {}
func (HRDivisionSurface) surface()     {}

func (EmployeeSurface) Name() string       { return string(models.RoleEmployee) }
func (DepartmentHeadSurface) Name() string { return string(models.RoleDepartmentHead) }
func (HRAdminSurface) Name() string        { return string(models.RoleHRAdmin) }
func (HRDivisionSurface) Name() string     { return string(models.RoleHRDivision) }

func (EmployeeSurface) Views() []models.View       { return []models.View{models.ViewOverview} }
func (DepartmentHeadSurface) Views() []models.View { return []models.View{models.ViewOverview} }
func (HRAdminSurface) Views() []models.View        { return append([]models.View(nil), hrAdminViews...) }

func (s HRDivisionSurface) Views() []models.View {
	view, _ := models.DivisionView(s.Division)
	return []models.View{models.ViewOverview, view}
}

func (EmployeeSurface) DefaultView() models.View       { return models.ViewOverview }
func (DepartmentHeadSurface) DefaultView() models.View { return models.ViewOverview }
func (HRAdminSurface) DefaultView() models.View        { return models.ViewOverview }

// DefaultView opens straight onto the division panel.
func (s HRDivisionSurface) DefaultView() models.View {
	view, _ := models.DivisionView(s.Division)
	return view
}

func (EmployeeSurface) SupportsWFH() bool       { return false }
func (DepartmentHeadSurface) SupportsWFH() bool { return false }
func (HRAdminSurface) SupportsWFH() bool        { return false }
func (HRDivisionSurface) SupportsWFH() bool     { return true }

var personalStats = []models.Stat{
	{Label: "Hours This Week", Value: "40.5"},
	{Label: "Leave Balance", Value: "12 days"},
	{Label: "Overtime Hours", Value: "5.5"},
}

var recentActivity = []models.Stat{
	{Label: "Clocked In", Value: "Today at 9:00 AM"},
	{Label: "Leave Request Approved", Value: "Yesterday"},
}

func personalOverview(title string, user models.User, teamLead bool) models.Overview {
	actions := []models.QuickAction{
		{Title: "My Timesheet", Description: "View and manage your time records"},
		{Title: "Leave Request", Description: "Submit a new leave request"},
	}
	if teamLead {
		actions = append(actions, models.QuickAction{Title: "Team Management", Description: "Manage your department team"})
	}
	actions = append(actions, models.QuickAction{Title: "Settings", Description: "Update your preferences"})
	return models.Overview{
		Title:          title,
		Profile:        models.Profile{Name: user.Name},
		Stats:          append([]models.Stat(nil), personalStats...),
		QuickActions:   actions,
		RecentActivity: append([]models.Stat(nil), recentActivity...),
	}
}

func (EmployeeSurface) Overview(user models.User) models.Overview {
	return personalOverview("Employee Dashboard", user, false)
}

func (DepartmentHeadSurface) Overview(user models.User) models.Overview {
	return personalOverview("Department Head Dashboard", user, true)
}

func (HRAdminSurface) Overview(user models.User) models.Overview {
	return models.Overview{
		Title:   "HR Admin Dashboard",
		Profile: models.Profile{Name: user.Name, Department: "HR", Position: "HR Administrator"},
		Stats: []models.Stat{
			{Label: "Total Employees", Value: "47"},
			{Label: "Pending Approvals", Value: "8"},
			{Label: "Present Today", Value: "38"},
			{Label: "System Alerts", Value: "5"},
		},
		Alerts: []models.Alert{
			{Title: "New device login detected", Detail: "John Doe - Finance Department", Severity: "High"},
			{Title: "Multiple leave requests pending", Detail: "5 requests awaiting approval", Severity: "Medium"},
		},
		AlertCounts: &models.AlertCounts{All: 12, Unread: 5, High: 2, Medium: 3},
	}
}

func (s HRDivisionSurface) Overview(user models.User) models.Overview {
	stats := []models.Stat{
		{Label: "Total Employees", Value: "47"},
		{Label: "Attendance", Value: "38 Present"},
		{Label: "System Alerts", Value: "5"},
	}
	if s.Division == models.DivisionRecords {
		stats = []models.Stat{
			{Label: "Pending DTR Reviews", Value: "12"},
			{Label: "Payroll Queue", Value: "8"},
			{Label: "Records Updated", Value: "156"},
		}
	}
	return models.Overview{
		Title: fmt.Sprintf("%s Division", s.Division),
		Profile: models.Profile{
			Name:       user.Name,
			Department: "HR",
			Position:   fmt.Sprintf("%s Staff", s.Division),
			Contract:   string(models.EmploymentRegular),
			Badge:      string(s.Division),
		},
		Stats: stats,
	}
}

// HasView reports whether the surface offers view.
func HasView(s Surface, view models.View) bool {
	for _, v := range s.Views() {
		if v == view {
			return true
		}
	}
	return false
}

// MountPanel seeds a fresh panel for view. The overview has no panel.
func MountPanel(view models.View) *models.PanelState {
	panel := &models.PanelState{View: view}
	switch view {
	case models.ViewApprovals:
		panel.Approvals = &models.ApprovalsPanel{Requests: seed.ApprovalRequests()}
	case models.ViewAttendance:
		panel.Attendance = &models.AttendanceBoard{Records: seed.Attendance()}
	case models.ViewEmployees:
		panel.Employees = &models.EmployeesPanel{Employees: seed.Employees(), Departments: seed.Departments()}
	case models.ViewDTR:
		panel.DTR = &models.DTRBoard{Entries: seed.DTREntries()}
	case models.ViewPayroll:
		panel.Payroll = &models.PayrollBoard{Records: seed.Payroll(), Selected: []string{}}
	case models.ViewLeaves:
		panel.Leaves = &models.LeaveBoard{LeaveTypes: seed.LeaveTypes(), Benefits: seed.Benefits(), History: seed.LeaveHistory()}
	case models.ViewTasks:
		panel.Tasks = &models.TasksPanel{Tasks: seed.Tasks()}
	case models.ViewSettings:
		settings := seed.Settings()
		panel.Settings = &settings
	case models.ViewAdministrative:
		panel.Administrative = &models.AdministrativePanel{LeaveRequests: seed.AdministrativeLeaveRequests()}
	case models.ViewRecords:
		panel.Records = &models.RecordsPanel{WFHRequests: seed.WFHRequests()}
	case models.ViewTraining:
		panel.Training = &models.TrainingPanel{Trainings: seed.Trainings(), Tasks: seed.TrainingTasks()}
	case models.ViewRecruitment:
		panel.Recruitment = &models.RecruitmentPanel{Hires: seed.Hires()}
	default:
		return nil
	}
	return panel
}

// NewDashboardState mounts the dashboard for user on its default view.
func NewDashboardState(user *models.User, now time.Time) (*models.DashboardState, error) {
	surface, err := ResolveSurface(user)
	if err != nil {
		return nil, err
	}
	view := surface.DefaultView()
	return &models.DashboardState{
		View:      view,
		Panel:     MountPanel(view),
		MountedAt: now,
	}, nil
}
