package service

import (
	"context"
	"math/rand"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/taptime-api/internal/dto"
	"github.com/noah-isme/taptime-api/internal/models"
	appErrors "github.com/noah-isme/taptime-api/pkg/errors"
)

var companyCodePattern = regexp.MustCompile(`^COMP[A-Z0-9]{6}$`)

func TestWizardStepClamps(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	w := NewWizard()
	for i := 0; i < 1000; i++ {
		if rng.Intn(2) == 0 {
			NextStep(w)
		} else {
			PreviousStep(w)
		}
		require.GreaterOrEqual(t, w.Step, models.WizardFirstStep)
		require.LessOrEqual(t, w.Step, models.WizardLastStep)
	}

	for i := 0; i < 10; i++ {
		NextStep(w)
	}
	assert.Equal(t, models.WizardLastStep, w.Step)
	for i := 0; i < 10; i++ {
		PreviousStep(w)
	}
	assert.Equal(t, models.WizardFirstStep, w.Step)
}

func TestSetFieldsIsAtomic(t *testing.T) {
	w := NewWizard()
	require.NoError(t, SetFields(w, map[string]interface{}{"companyName": "Acme", "privacyPolicy": true}))
	assert.Equal(t, "Acme", w.Form.CompanyName)
	assert.True(t, w.Form.PrivacyPolicy)

	err := SetFields(w, map[string]interface{}{"companyName": "Other", "favouriteColour": "red"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Equal(t, "Acme", w.Form.CompanyName)

	err = SetFields(w, map[string]interface{}{"privacyPolicy": "yes"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	err = SetFields(w, map[string]interface{}{"industry": "mining"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	require.NoError(t, SetFields(w, map[string]interface{}{"industry": "finance"}))
	assert.Equal(t, "finance", w.Form.Industry)
	assert.Equal(t, "Acme", w.Form.CompanyName)
}

func TestApplyLocation(t *testing.T) {
	w := NewWizard()
	assert.True(t, ApplyLocation(w, models.GeolocationResult{OK: true, Latitude: 14.5995, Longitude: 120.98421234}))
	assert.Equal(t, "14.599500", w.Form.Latitude)
	assert.Equal(t, "120.984212", w.Form.Longitude)

	assert.False(t, ApplyLocation(w, models.GeolocationResult{OK: false, Error: "denied"}))
	assert.False(t, ApplyLocation(w, models.GeolocationResult{OK: true, Latitude: 91}))
	assert.Equal(t, "14.599500", w.Form.Latitude)
}

func TestGenerateCompanyCode(t *testing.T) {
	svc := NewRegistrationService(nil, nil, nil, rand.New(rand.NewSource(1)))
	for i := 0; i < 500; i++ {
		assert.Regexp(t, companyCodePattern, svc.GenerateCompanyCode())
	}
}

func TestRegistrationFlow(t *testing.T) {
	ctx := context.Background()
	sessions := newTestSessions(t)
	id := newTestSession(t, sessions)
	dispatch(t, sessions, id, Accept{}, Register{})
	svc := NewRegistrationService(sessions, nil, nil, rand.New(rand.NewSource(3)))

	_, _, err := svc.Submit(ctx, id)
	assert.ErrorIs(t, err, appErrors.ErrPreconditionFailed)

	_, err = svc.UpdateFields(ctx, id, dto.UpdateFieldsRequest{Fields: map[string]interface{}{
		"adminFullName": "Maria Santos",
		"adminCode":     "9876",
	}})
	require.NoError(t, err)

	view, err := svc.DetectLocation(ctx, id, dto.LocationRequest{OK: false, Error: "permission denied"})
	require.NoError(t, err)
	assert.Empty(t, view.Form.Latitude)

	view, err = svc.DetectLocation(ctx, id, dto.LocationRequest{OK: true, Latitude: 14.5, Longitude: 121})
	require.NoError(t, err)
	assert.Equal(t, "14.500000", view.Form.Latitude)

	for i := 0; i < 6; i++ {
		view, err = svc.Next(ctx, id)
		require.NoError(t, err)
	}
	assert.True(t, view.CanSubmit)

	session, notice, err := svc.Submit(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "registration.complete", notice.Key)
	assert.Equal(t, models.ScreenRegistrationComplete, session.Nav.Screen)
	assert.Nil(t, session.Wizard)
	require.NotNil(t, session.Nav.Registration)
	assert.Regexp(t, companyCodePattern, session.Nav.Registration.CompanyCode)

	file, err := svc.Credentials(ctx, id, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	text := string(file)
	assert.True(t, strings.HasPrefix(text, "TapTime Account Credentials\n"))
	assert.Contains(t, text, "Admin Name: Maria Santos\n")
	assert.Contains(t, text, "Admin Code: 9876\n")
	assert.Contains(t, text, "Generated on: 2024-05-01")

	session = dispatch(t, sessions, id, GoToDashboard{})
	assert.Equal(t, models.ScreenDashboard, session.Nav.Screen)
	assert.Equal(t, models.RoleHRAdmin, session.Nav.User.Role)
	assert.Equal(t, "Maria Santos", session.Nav.User.Name)
	assert.Equal(t, "hash:9876", session.Nav.User.CodeHash)
	assert.Equal(t, models.ViewOverview, session.Dashboard.View)
}

func TestSubmitRequiresAdminIdentity(t *testing.T) {
	ctx := context.Background()
	sessions := newTestSessions(t)
	id := newTestSession(t, sessions)
	dispatch(t, sessions, id, Accept{}, Register{})
	svc := NewRegistrationService(sessions, nil, nil, nil)
	for i := 0; i < 4; i++ {
		_, err := svc.Next(ctx, id)
		require.NoError(t, err)
	}

	_, _, err := svc.Submit(ctx, id)
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestWizardRequiresRegistrationScreen(t *testing.T) {
	sessions := newTestSessions(t)
	id := newTestSession(t, sessions)
	svc := NewRegistrationService(sessions, nil, nil, nil)

	_, err := svc.Next(context.Background(), id)
	assert.ErrorIs(t, err, appErrors.ErrPreconditionFailed)
}
