package models

import "time"

// Screen is the top-level navigation state of a session.
type Screen string

const (
	ScreenSecurityConfirmation Screen = "security-confirmation"
	ScreenLogin                Screen = "login"
	ScreenRegistration         Screen = "registration"
	ScreenRegistrationComplete Screen = "registration-complete"
	ScreenPrivacyPolicy        Screen = "privacy-policy"
	ScreenDivisionSelector     Screen = "division-selector"
	ScreenDashboard            Screen = "dashboard"
)

// Screens lists every navigation state in display order.
var Screens = []Screen{
	ScreenSecurityConfirmation,
	ScreenLogin,
	ScreenRegistration,
	ScreenRegistrationComplete,
	ScreenPrivacyPolicy,
	ScreenDivisionSelector,
	ScreenDashboard,
}

// Valid reports whether s is one of the known screens.
func (s Screen) Valid() bool {
	for _, known := range Screens {
		if s == known {
			return true
		}
	}
	return false
}

// Role selects which dashboard surface a user sees.
type Role string

const (
	RoleEmployee       Role = "employee"
	RoleDepartmentHead Role = "department-head"
	RoleHRAdmin        Role = "hr-admin"
	RoleHRDivision     Role = "hr-division"
)

// Roles enumerates accepted login roles.
var Roles = []Role{RoleEmployee, RoleDepartmentHead, RoleHRAdmin, RoleHRDivision}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// Division is an HR sub-unit selectable by hr-division users.
type Division string

const (
	DivisionAdministrative       Division = "Administrative"
	DivisionRecords              Division = "Records"
	DivisionTrainingManagement   Division = "Training & Management"
	DivisionRecruitmentPlacement Division = "Recruitment & Placement"
)

// Divisions enumerates the HR divisions in selector order.
var Divisions = []Division{
	DivisionAdministrative,
	DivisionRecords,
	DivisionTrainingManagement,
	DivisionRecruitmentPlacement,
}

// Valid reports whether d is a known division.
func (d Division) Valid() bool {
	for _, known := range Divisions {
		if d == known {
			return true
		}
	}
	return false
}

// User is the authenticated identity of a session. CodeHash never leaves the server.
type User struct {
	Role     Role      `json:"role"`
	Name     string    `json:"name"`
	CodeHash string    `json:"codeHash"`
	Division *Division `json:"division,omitempty"`
}

// Registration is produced by the company wizard and consumed by go-to-dashboard.
type Registration struct {
	CompanyCode string `json:"companyCode"`
	AdminName   string `json:"adminName"`
	AdminCode   string `json:"adminCode"`
}

// NavState is the pure navigation portion of a session.
type NavState struct {
	Screen       Screen        `json:"screen"`
	User         *User         `json:"user,omitempty"`
	Registration *Registration `json:"registration,omitempty"`
}

// Session is everything persisted for one client between requests.
type Session struct {
	ID        string          `json:"id"`
	Nav       NavState        `json:"nav"`
	Wizard    *Wizard         `json:"wizard,omitempty"`
	Dashboard *DashboardState `json:"dashboard,omitempty"`
	Inbox     []Notice        `json:"inbox,omitempty"`
	Version   int64           `json:"version"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Notice is a notification raised outside a request, delivered on the next read.
type Notice struct {
	Key   string                 `json:"key"`
	Level string                 `json:"level"`
	Data  map[string]interface{} `json:"data,omitempty"`
}
