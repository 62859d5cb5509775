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

func TestAttendanceBoardGroupsByDepartment(t *testing.T) {
	ctx := context.Background()
	sessions := newTestSessions(t)
	svc := NewAttendanceService(sessions, nil, nil)
	id := mountView(t, sessions, models.ViewAttendance)

	view, err := svc.Board(ctx, id)
	require.NoError(t, err)
	require.Len(t, view.Groups, 4)
	assert.Equal(t, "Finance", view.Groups[0].Department)
	assert.Equal(t, "red", view.Groups[0].Color)
	assert.Len(t, view.Groups[0].Records, 2)
	assert.Equal(t, map[models.AttendanceStatus]int{
		models.AttendancePresent:     3,
		models.AttendanceAbsent:      1,
		models.AttendanceOnLeave:     1,
		models.AttendanceTravelOrder: 1,
	}, view.Counts)
	assert.False(t, view.LocationEditable)
}

func TestAttendanceLocationEditing(t *testing.T) {
	ctx := context.Background()
	sessions := newTestSessions(t)
	svc := NewAttendanceService(sessions, nil, nil)
	id := mountView(t, sessions, models.ViewAttendance)
	pin := dto.UpdateLocationRequest{Lat: 14.6, Lng: 121.0}

	_, err := svc.UpdateLocation(ctx, id, "1", pin)
	assert.ErrorIs(t, err, appErrors.ErrPreconditionFailed)

	view, err := svc.SetLocationEditing(ctx, id, true)
	require.NoError(t, err)
	assert.True(t, view.LocationEditable)

	record, err := svc.UpdateLocation(ctx, id, "1", pin)
	require.NoError(t, err)
	assert.Equal(t, models.Coordinates{Lat: 14.6, Lng: 121.0}, record.Location)

	_, err = svc.UpdateLocation(ctx, id, "42", pin)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	_, err = svc.UpdateLocation(ctx, id, "1", dto.UpdateLocationRequest{Lat: 91})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}
