package handler

import (
	"github.com/gin-gonic/gin"
)

// Handlers groups every HTTP handler mounted under the API prefix.
type Handlers struct {
	Session      *SessionHandler
	Registration *RegistrationHandler
	Dashboard    *DashboardHandler
	Approvals    *ApprovalHandler
	Tasks        *TaskHandler
	Employees    *EmployeeHandler
	Attendance   *AttendanceHandler
	DTR          *DTRHandler
	Payroll      *PayrollHandler
	Leaves       *LeaveHandler
	Settings     *SettingsHandler
	Divisions    *DivisionHandler
	Reports      *ReportHandler
}

// RouteMiddleware supplies the guards applied to route groups. Nil guards let every request through.
type RouteMiddleware struct {
	Session    gin.HandlerFunc
	HRAdmin    gin.HandlerFunc
	HRDivision gin.HandlerFunc
	Audit      func(action, resource string) gin.HandlerFunc
}

func passthrough(c *gin.Context) { c.Next() }

func orPassthrough(h gin.HandlerFunc) gin.HandlerFunc {
	if h == nil {
		return passthrough
	}
	return h
}

func (m RouteMiddleware) audit(action, resource string) gin.HandlerFunc {
	if m.Audit == nil {
		return passthrough
	}
	return m.Audit(action, resource)
}

// RegisterRoutes mounts the API on r.
func RegisterRoutes(r gin.IRouter, h Handlers, mw RouteMiddleware) {
	r.POST("/sessions", h.Session.Create)
	r.GET("/registration/catalog", h.Registration.Catalog)
	r.GET("/reports/download/:token", h.Reports.Download)

	auth := r.Group("", orPassthrough(mw.Session))

	auth.GET("/session", h.Session.Current)
	auth.POST("/session/events", mw.audit("NAVIGATE", "session"), h.Session.Dispatch)
	auth.DELETE("/session", h.Session.End)
	auth.GET("/session/activity", h.Session.Activity)

	registration := auth.Group("/registration")
	registration.GET("", h.Registration.Wizard)
	registration.POST("/next", h.Registration.Next)
	registration.POST("/previous", h.Registration.Previous)
	registration.PATCH("/fields", h.Registration.UpdateFields)
	registration.POST("/location", h.Registration.DetectLocation)
	registration.POST("/submit", mw.audit("REGISTER_COMPANY", "registration"), h.Registration.Submit)
	registration.GET("/credentials", h.Registration.Credentials)

	dashboard := auth.Group("/dashboard")
	dashboard.GET("", h.Dashboard.Get)
	dashboard.PUT("/view", h.Dashboard.ChangeView)
	dashboard.POST("/clock", mw.audit("CLOCK", "dashboard"), h.Dashboard.ToggleClock)
	dashboard.GET("/clock", h.Dashboard.Clock)
	dashboard.POST("/time-out", mw.audit("TIME_OUT", "dashboard"), h.Dashboard.TimeOut)
	dashboard.PUT("/wfh", h.Dashboard.SetWFHMode)

	panels := auth.Group("/panels", orPassthrough(mw.HRAdmin))

	panels.GET("/approvals", h.Approvals.List)
	panels.POST("/approvals/:id/:action", mw.audit("REVIEW", "approval"), h.Approvals.Review)

	panels.GET("/tasks", h.Tasks.Board)
	panels.POST("/tasks", mw.audit("CREATE", "task"), h.Tasks.Create)
	panels.POST("/tasks/:id/:action", mw.audit("ADVANCE", "task"), h.Tasks.Advance)

	panels.GET("/employees", h.Employees.List)
	panels.POST("/employees", mw.audit("CREATE", "employee"), h.Employees.Add)
	panels.DELETE("/employees/:id", mw.audit("DELETE", "employee"), h.Employees.Remove)
	panels.POST("/employees/departments", mw.audit("CREATE", "department"), h.Employees.AddDepartment)

	panels.GET("/attendance", h.Attendance.Board)
	panels.PUT("/attendance/location-editing", h.Attendance.SetLocationEditing)
	panels.PUT("/attendance/:id/location", mw.audit("UPDATE", "attendance"), h.Attendance.UpdateLocation)

	panels.GET("/dtr", h.DTR.Board)
	panels.PUT("/dtr/selection", h.DTR.Select)
	panels.PUT("/dtr/editing", h.DTR.SetEditing)
	panels.PUT("/dtr/entries/:date", mw.audit("UPDATE", "dtr"), h.DTR.UpdateEntry)
	panels.GET("/dtr/export", mw.audit("EXPORT", "dtr"), h.DTR.Export)

	panels.GET("/payroll", h.Payroll.View)
	panels.POST("/payroll/select-all", h.Payroll.SelectAll)
	panels.POST("/payroll/:id/toggle", h.Payroll.Toggle)
	panels.GET("/payroll/export", mw.audit("EXPORT", "payroll"), h.Payroll.Export)

	panels.GET("/leaves", h.Leaves.View)
	panels.POST("/leaves/types", mw.audit("CREATE", "leave_type"), h.Leaves.AddLeaveType)
	panels.DELETE("/leaves/types/:id", mw.audit("DELETE", "leave_type"), h.Leaves.DeleteLeaveType)
	panels.POST("/leaves/benefits", mw.audit("CREATE", "benefit"), h.Leaves.AddBenefit)
	panels.DELETE("/leaves/benefits/:id", mw.audit("DELETE", "benefit"), h.Leaves.DeleteBenefit)

	panels.GET("/settings", h.Settings.Get)
	panels.PATCH("/settings", mw.audit("UPDATE", "settings"), h.Settings.Update)

	divisions := auth.Group("/divisions", orPassthrough(mw.HRDivision))

	divisions.GET("/administrative", h.Divisions.Administrative)
	divisions.POST("/administrative/leave-requests/:id/:action", mw.audit("REVIEW", "leave_request"), h.Divisions.ReviewLeave)

	divisions.GET("/records", h.Divisions.Records)
	divisions.POST("/records/wfh-requests/:id/:action", mw.audit("REVIEW", "wfh_request"), h.Divisions.ReviewWFH)
	divisions.POST("/records/reports", mw.audit("CREATE", "report"), h.Reports.Create)
	divisions.GET("/records/reports", h.Reports.List)
	divisions.GET("/records/reports/:id", h.Reports.Status)

	divisions.GET("/training", h.Divisions.Training)
	divisions.POST("/training/sessions", mw.audit("CREATE", "training"), h.Divisions.AddTraining)
	divisions.POST("/training/tasks", mw.audit("CREATE", "task"), h.Divisions.AddTrainingTask)
	divisions.POST("/training/tasks/:id/:action", mw.audit("ADVANCE", "task"), h.Divisions.AdvanceTrainingTask)

	divisions.GET("/recruitment", h.Divisions.Recruitment)
	divisions.POST("/recruitment/hires", mw.audit("CREATE", "hire"), h.Divisions.AddHire)
}
