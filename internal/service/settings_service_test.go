package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/taptime-api/internal/dto"
	"github.com/noah-isme/taptime-api/internal/models"
	appErrors "github.com/noah-isme/taptime-api/pkg/errors"
)

func TestSettingsPartialUpdate(t *testing.T) {
	ctx := context.Background()
	sessions := newTestSessions(t)
	svc := NewSettingsService(sessions, nil, nil)
	id := mountView(t, sessions, models.ViewSettings)

	settings, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.WorkModePersonal, settings.WorkMode)

	mode := models.WorkModeOffLocation
	off := false
	settings, err = svc.Update(ctx, id, dto.UpdateSettingsRequest{WorkMode: &mode, WifiVerification: &off})
	require.NoError(t, err)
	assert.Equal(t, models.Settings{
		WorkMode:         models.WorkModeOffLocation,
		LocationTracking: true,
		WifiVerification: false,
		AutoSave:         true,
	}, *settings)

	bad := models.WorkMode("remote")
	_, err = svc.Update(ctx, id, dto.UpdateSettingsRequest{WorkMode: &bad})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}
