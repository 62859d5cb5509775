package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/taptime-api/internal/models"
	"github.com/noah-isme/taptime-api/internal/seed"
	appErrors "github.com/noah-isme/taptime-api/pkg/errors"
)

func TestTransitionChangesOnlyTarget(t *testing.T) {
	items := seed.ApprovalRequests()

	out, updated, err := Transition(items, "1", models.ActionApprove, models.DecisionWorkflow)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, updated.Status)
	assert.Equal(t, models.StatusApproved, out[0].Status)
	for _, r := range out[1:] {
		assert.Equal(t, models.StatusPending, r.Status, r.ID)
	}
	assert.Equal(t, models.StatusPending, items[0].Status, "input slice must not change")

	for i := range out {
		assert.Equal(t, items[i].ID, out[i].ID)
	}
}

func TestTransitionRejectsTerminalItems(t *testing.T) {
	items := seed.ApprovalRequests()
	items, _, err := Transition(items, "2", models.ActionReject, models.DecisionWorkflow)
	require.NoError(t, err)

	_, _, err = Transition(items, "2", models.ActionApprove, models.DecisionWorkflow)
	assert.ErrorIs(t, err, appErrors.ErrConflict)
}

func TestTransitionUnknownID(t *testing.T) {
	_, _, err := Transition(seed.ApprovalRequests(), "99", models.ActionApprove, models.DecisionWorkflow)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestProgressWorkflowOrdering(t *testing.T) {
	tasks := seed.Tasks()

	_, _, err := Transition(tasks, "2", models.ActionComplete, models.ProgressWorkflow)
	assert.ErrorIs(t, err, appErrors.ErrConflict, "pending tasks must be started first")

	tasks, started, err := Transition(tasks, "2", models.ActionStart, models.ProgressWorkflow)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, started.Status)

	tasks, done, err := Transition(tasks, "2", models.ActionComplete, models.ProgressWorkflow)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, done.Status)
	assert.Len(t, tasks, 4)
}

func TestFiltersCommute(t *testing.T) {
	items := seed.ApprovalRequests()
	byDept := func(r models.ApprovalRequest) bool { return Matches("Finance", r.Department) }
	byEmp := func(r models.ApprovalRequest) bool { return Matches("Tom Brown", r.EmployeeName) }

	a := Filter(Filter(items, byDept), byEmp)
	b := Filter(Filter(items, byEmp), byDept)
	c := Filter(items, byDept, byEmp)
	assert.Equal(t, a, b)
	assert.Equal(t, a, c)
	require.Len(t, c, 1)
	assert.Equal(t, "5", c[0].ID)
	assert.Len(t, items, 5)
}

func TestMatchesAll(t *testing.T) {
	assert.True(t, Matches("", "HR"))
	assert.True(t, Matches("all", "HR"))
	assert.True(t, Matches("HR", "HR"))
	assert.False(t, Matches("HR", "Finance"))
}

func TestCountByStatus(t *testing.T) {
	counts := CountByStatus(seed.Tasks())
	assert.Equal(t, 2, counts[models.StatusPending])
	assert.Equal(t, 1, counts[models.StatusInProgress])
	assert.Equal(t, 1, counts[models.StatusCompleted])
}

func TestParseAction(t *testing.T) {
	action, err := ParseAction("Approve", models.DecisionWorkflow)
	require.NoError(t, err)
	assert.Equal(t, models.ActionApprove, action)

	_, err = ParseAction("start", models.DecisionWorkflow)
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}
