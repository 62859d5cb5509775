package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/taptime-api/internal/models"
)

func TestSeedsAreFreshCopies(t *testing.T) {
	first := ApprovalRequests()
	first[0].Status = models.StatusApproved
	assert.Equal(t, models.StatusPending, ApprovalRequests()[0].Status)

	tasks := Tasks()
	tasks[0].AssignedTo[0] = "Someone Else"
	assert.Equal(t, "Jane Smith", Tasks()[0].AssignedTo[0])
}

func TestPayrollNetSalaryMatchesComponents(t *testing.T) {
	for _, r := range Payroll() {
		net := r.BaseSalary + r.Overtime - r.Undertime - r.Deductions.Total()
		assert.InDelta(t, r.NetSalary, net, 0.001, r.Name)
	}
}

func TestLeaveHistoryRemainingDays(t *testing.T) {
	for _, h := range LeaveHistory() {
		assert.Equal(t, h.TotalDays-h.UsedDays, h.RemainingDays, h.EmployeeName)
	}
}
