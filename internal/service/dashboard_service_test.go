package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/taptime-api/internal/models"
	appErrors "github.com/noah-isme/taptime-api/pkg/errors"
)

func newTestDashboard(t *testing.T, delay time.Duration) (*SessionService, *DashboardService) {
	t.Helper()
	sessions := newTestSessions(t)
	return sessions, NewDashboardService(sessions, sessions.metrics, nil, DashboardConfig{ClockTick: 10 * time.Millisecond, WFHApprovalDelay: delay})
}

func signIn(t *testing.T, sessions *SessionService, role models.Role, division models.Division) string {
	t.Helper()
	id := newTestSession(t, sessions)
	dispatch(t, sessions, id, Accept{}, Login{Role: role, Name: "Jane", Code: "1234"})
	if role == models.RoleHRDivision {
		dispatch(t, sessions, id, SelectDivision{Division: division})
	}
	return id
}

func TestResolveSurfaceRequiresDivision(t *testing.T) {
	_, err := ResolveSurface(&models.User{Role: models.RoleHRDivision, Name: "Jane"})
	assert.ErrorIs(t, err, appErrors.ErrPreconditionFailed)

	_, err = ResolveSurface(nil)
	assert.ErrorIs(t, err, appErrors.ErrPreconditionFailed)

	d := models.DivisionTrainingManagement
	surface, err := ResolveSurface(&models.User{Role: models.RoleHRDivision, Division: &d})
	require.NoError(t, err)
	assert.Equal(t, models.ViewTraining, surface.DefaultView())
	assert.Equal(t, []models.View{models.ViewOverview, models.ViewTraining}, surface.Views())
}

func TestOverviewQuickActionsByRole(t *testing.T) {
	titles := func(o models.Overview) []string {
		var out []string
		for _, a := range o.QuickActions {
			out = append(out, a.Title)
		}
		return out
	}
	user := models.User{Name: "Ana"}
	assert.Equal(t, []string{"My Timesheet", "Leave Request", "Settings"}, titles(EmployeeSurface{}.Overview(user)))
	assert.Equal(t, []string{"My Timesheet", "Leave Request", "Team Management", "Settings"}, titles(DepartmentHeadSurface{}.Overview(user)))

	admin := HRAdminSurface{}.Overview(user)
	require.NotNil(t, admin.AlertCounts)
	assert.Equal(t, 12, admin.AlertCounts.All)
	assert.Len(t, admin.Alerts, 2)

	records := HRDivisionSurface{Division: models.DivisionRecords}.Overview(user)
	assert.Equal(t, "Records Staff", records.Profile.Position)
	assert.Equal(t, "Pending DTR Reviews", records.Stats[0].Label)
}

func TestDashboardChangeView(t *testing.T) {
	ctx := context.Background()
	sessions, svc := newTestDashboard(t, time.Second)
	id := signIn(t, sessions, models.RoleHRAdmin, "")

	view, notices, err := svc.Dashboard(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, notices)
	assert.Equal(t, models.ViewOverview, view.View)
	assert.Nil(t, view.Panel)
	assert.Len(t, view.Views, 9)

	view, err = svc.ChangeView(ctx, id, models.ViewPayroll)
	require.NoError(t, err)
	require.NotNil(t, view.Panel)
	require.NotNil(t, view.Panel.Payroll)
	assert.Equal(t, "HR Admin Dashboard", view.Overview.Title)

	_, err = svc.ChangeView(ctx, id, models.ViewRecords)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
}

func TestDashboardRequiresMount(t *testing.T) {
	sessions, svc := newTestDashboard(t, time.Second)
	id := newTestSession(t, sessions)

	_, _, err := svc.Dashboard(context.Background(), id)
	assert.ErrorIs(t, err, appErrors.ErrPreconditionFailed)
}

func TestToggleClock(t *testing.T) {
	ctx := context.Background()
	sessions, svc := newTestDashboard(t, time.Second)
	id := signIn(t, sessions, models.RoleEmployee, "")

	view, notice, err := svc.ToggleClock(ctx, id)
	require.NoError(t, err)
	assert.True(t, view.ClockedIn)
	assert.NotNil(t, view.ClockedAt)
	assert.Equal(t, "clock.in", notice.Key)

	view, notice, err = svc.ToggleClock(ctx, id)
	require.NoError(t, err)
	assert.False(t, view.ClockedIn)
	assert.Equal(t, "clock.out", notice.Key)

	_, _, err = svc.TimeOut(ctx, id)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
	_, err = svc.SetWFHMode(ctx, id, true)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
}

func TestHRDivisionTimeOut(t *testing.T) {
	ctx := context.Background()
	sessions, svc := newTestDashboard(t, time.Second)
	id := signIn(t, sessions, models.RoleHRDivision, models.DivisionAdministrative)

	_, _, err := svc.TimeOut(ctx, id)
	assert.ErrorIs(t, err, appErrors.ErrConflict)

	_, _, err = svc.ToggleClock(ctx, id)
	require.NoError(t, err)
	view, notice, err := svc.TimeOut(ctx, id)
	require.NoError(t, err)
	assert.False(t, view.ClockedIn)
	assert.Equal(t, "clock.out", notice.Key)
}

func clockedIn(sessions *SessionService, id string) bool {
	session, err := sessions.Get(context.Background(), id)
	if err != nil {
		return false
	}
	return session.Dashboard != nil && session.Dashboard.ClockedIn
}

func TestWFHApprovalClocksIn(t *testing.T) {
	ctx := context.Background()
	sessions, svc := newTestDashboard(t, 30*time.Millisecond)
	id := signIn(t, sessions, models.RoleHRDivision, models.DivisionRecords)

	_, err := svc.SetWFHMode(ctx, id, true)
	require.NoError(t, err)
	view, notice, err := svc.ToggleClock(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "wfh.pending", notice.Key)
	assert.True(t, view.WFHPending)
	assert.False(t, view.ClockedIn)

	assert.Eventually(t, func() bool { return clockedIn(sessions, id) }, time.Second, 5*time.Millisecond)

	view, notices, err := svc.Dashboard(ctx, id)
	require.NoError(t, err)
	assert.False(t, view.WFHPending)
	require.Len(t, notices, 1)
	assert.Equal(t, "wfh.approved", notices[0].Key)

	_, notices, err = svc.Dashboard(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, notices)
}

func TestSecondWFHRequestReplacesFirst(t *testing.T) {
	ctx := context.Background()
	sessions, svc := newTestDashboard(t, 60*time.Millisecond)
	id := signIn(t, sessions, models.RoleHRDivision, models.DivisionRecords)
	_, err := svc.SetWFHMode(ctx, id, true)
	require.NoError(t, err)

	_, _, err = svc.ToggleClock(ctx, id)
	require.NoError(t, err)
	_, _, err = svc.ToggleClock(ctx, id)
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return clockedIn(sessions, id) }, time.Second, 5*time.Millisecond)
	time.Sleep(120 * time.Millisecond)

	_, notices, err := svc.Dashboard(ctx, id)
	require.NoError(t, err)
	assert.Len(t, notices, 1, "only the replacing request may be approved")
}

func TestLogoutCancelsPendingWFH(t *testing.T) {
	ctx := context.Background()
	sessions, svc := newTestDashboard(t, 40*time.Millisecond)
	id := signIn(t, sessions, models.RoleHRDivision, models.DivisionRecords)
	_, err := svc.SetWFHMode(ctx, id, true)
	require.NoError(t, err)
	_, _, err = svc.ToggleClock(ctx, id)
	require.NoError(t, err)

	dispatch(t, sessions, id, Logout{})
	time.Sleep(100 * time.Millisecond)

	session, err := sessions.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, session.Dashboard)
	assert.Empty(t, session.Inbox)
}

func TestDisablingWFHCancelsPending(t *testing.T) {
	ctx := context.Background()
	sessions, svc := newTestDashboard(t, 40*time.Millisecond)
	id := signIn(t, sessions, models.RoleHRDivision, models.DivisionRecords)
	_, err := svc.SetWFHMode(ctx, id, true)
	require.NoError(t, err)
	_, _, err = svc.ToggleClock(ctx, id)
	require.NoError(t, err)

	view, err := svc.SetWFHMode(ctx, id, false)
	require.NoError(t, err)
	assert.False(t, view.WFHPending)

	time.Sleep(100 * time.Millisecond)
	assert.False(t, clockedIn(sessions, id))
}

func TestClockStreamStopsOnCancel(t *testing.T) {
	sessions, svc := newTestDashboard(t, time.Second)
	id := signIn(t, sessions, models.RoleEmployee, "")
	ctx, cancel := context.WithCancel(context.Background())

	ticks, err := svc.ClockStream(ctx, id)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		select {
		case _, ok := <-ticks:
			require.True(t, ok)
		case <-time.After(time.Second):
			t.Fatal("no tick")
		}
	}
	cancel()
	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-ticks:
			return !ok
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}

func TestClockStreamStopsOnUnmount(t *testing.T) {
	sessions, svc := newTestDashboard(t, time.Second)
	id := signIn(t, sessions, models.RoleEmployee, "")

	ticks, err := svc.ClockStream(context.Background(), id)
	require.NoError(t, err)
	<-ticks
	dispatch(t, sessions, id, Logout{})

	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-ticks:
			return !ok
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)

	_, err = svc.ClockStream(context.Background(), id)
	assert.ErrorIs(t, err, appErrors.ErrPreconditionFailed)
}
