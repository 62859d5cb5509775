package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/taptime-api/internal/models"
	"github.com/noah-isme/taptime-api/internal/repository"
	appErrors "github.com/noah-isme/taptime-api/pkg/errors"
)

func newTestSessions(t *testing.T) *SessionService {
	t.Helper()
	store := repository.NewMemorySessionRepository(time.Hour)
	tokens := NewTokenService(TokenConfig{Secret: "test-secret", TTL: time.Hour})
	return NewSessionService(store, tokens, NewMetricsService(), nil,
		WithCodeHasher(func(code string) (string, error) { return "hash:" + code, nil }),
	)
}

func newTestSession(t *testing.T, sessions *SessionService) string {
	t.Helper()
	resp, err := sessions.Create(context.Background())
	require.NoError(t, err)
	return resp.Session.ID
}

func dispatch(t *testing.T, sessions *SessionService, id string, events ...Event) *models.Session {
	t.Helper()
	var session *models.Session
	for _, ev := range events {
		var err error
		session, _, err = sessions.Dispatch(context.Background(), id, ev)
		require.NoError(t, err, "event %s", ev.Kind())
	}
	return session
}

func TestSessionServiceCreate(t *testing.T) {
	sessions := newTestSessions(t)

	resp, err := sessions.Create(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.ScreenSecurityConfirmation, resp.Session.Screen)
	assert.Equal(t, []string{"accept"}, resp.Session.Events)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	id, err := sessions.Authenticate(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.Session.ID, id)
}

func TestHRDivisionLoginMountsDivisionPanel(t *testing.T) {
	sessions := newTestSessions(t)
	id := newTestSession(t, sessions)

	session := dispatch(t, sessions, id,
		Accept{},
		Login{Role: models.RoleHRDivision, Name: "Jane", Code: "1234"},
	)
	assert.Equal(t, models.ScreenDivisionSelector, session.Nav.Screen)
	assert.Nil(t, session.Dashboard)

	session, notice, err := sessions.Dispatch(context.Background(), id, SelectDivision{Division: models.DivisionRecords})
	require.NoError(t, err)
	require.NotNil(t, notice)
	assert.Equal(t, "division.selected", notice.Key)

	assert.Equal(t, models.ScreenDashboard, session.Nav.Screen)
	require.NotNil(t, session.Nav.User.Division)
	assert.Equal(t, models.DivisionRecords, *session.Nav.User.Division)
	assert.Equal(t, "hash:1234", session.Nav.User.CodeHash)

	require.NotNil(t, session.Dashboard)
	assert.Equal(t, models.ViewRecords, session.Dashboard.View)
	require.NotNil(t, session.Dashboard.Panel)
	require.NotNil(t, session.Dashboard.Panel.Records)
	assert.NotEmpty(t, session.Dashboard.Panel.Records.WFHRequests)
}

func TestFailedLoginLeavesSessionUntouched(t *testing.T) {
	sessions := newTestSessions(t)
	id := newTestSession(t, sessions)
	before := dispatch(t, sessions, id, Accept{})

	_, _, err := sessions.Dispatch(context.Background(), id, Login{Role: models.RoleEmployee, Name: "Ana"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	after, err := sessions.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, before.Version, after.Version)
	assert.Equal(t, models.ScreenLogin, after.Nav.Screen)
	assert.Nil(t, after.Nav.User)
}

func TestRegistrationScreenMountsWizard(t *testing.T) {
	sessions := newTestSessions(t)
	id := newTestSession(t, sessions)

	session := dispatch(t, sessions, id, Accept{}, Register{})
	require.NotNil(t, session.Wizard)
	assert.Equal(t, models.WizardFirstStep, session.Wizard.Step)

	session = dispatch(t, sessions, id, Back{})
	assert.Nil(t, session.Wizard)
}

func TestLogoutReleasesDashboardRuntime(t *testing.T) {
	sessions := newTestSessions(t)
	id := newTestSession(t, sessions)
	dispatch(t, sessions, id, Accept{}, Login{Role: models.RoleEmployee, Name: "Ana", Code: "1"})

	done := sessions.runtimes.done(id)
	session, notice, err := sessions.Dispatch(context.Background(), id, Logout{})
	require.NoError(t, err)
	assert.Equal(t, "logout", notice.Key)
	assert.Nil(t, session.Dashboard)
	assert.Nil(t, session.Nav.User)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("runtime was not released on logout")
	}
	assert.Equal(t, 0, sessions.runtimes.size())
}

func TestReleaseExpiredDropsRuntimesOfVanishedSessions(t *testing.T) {
	ctx := context.Background()
	sessions := newTestSessions(t)
	expired := newTestSession(t, sessions)
	live := newTestSession(t, sessions)

	done := sessions.runtimes.done(expired)
	sessions.runtimes.done(live)
	require.NoError(t, sessions.store.Delete(ctx, expired))

	assert.Equal(t, 1, sessions.ReleaseExpired(ctx))
	select {
	case <-done:
	default:
		t.Fatal("runtime of the expired session is still open")
	}
	assert.Equal(t, []string{live}, sessions.runtimes.ids())
	assert.Equal(t, 0, sessions.ReleaseExpired(ctx))
	assert.Equal(t, 0, sessions.locks.size())
}

func TestLoadOfExpiredSessionReleasesRuntime(t *testing.T) {
	ctx := context.Background()
	sessions := newTestSessions(t)
	id := newTestSession(t, sessions)
	sessions.runtimes.scheduleWFH(id, time.Hour, func(uint64) {})
	require.NoError(t, sessions.store.Delete(ctx, id))

	_, err := sessions.Get(ctx, id)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
	assert.Equal(t, 0, sessions.runtimes.size())
}

func TestSessionEnd(t *testing.T) {
	sessions := newTestSessions(t)
	id := newTestSession(t, sessions)

	require.NoError(t, sessions.End(context.Background(), id))
	_, err := sessions.Get(context.Background(), id)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestUpdateSerialisesPerSession(t *testing.T) {
	sessions := newTestSessions(t)
	id := newTestSession(t, sessions)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := sessions.Update(context.Background(), id, func(s *models.Session) error {
				s.Inbox = append(s.Inbox, models.Notice{Key: "tick"})
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	session, err := sessions.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, int64(51), session.Version)
	assert.Len(t, session.Inbox, 50)
	assert.Equal(t, 0, sessions.locks.size())
}
