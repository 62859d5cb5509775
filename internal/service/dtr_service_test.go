package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/taptime-api/internal/dto"
	"github.com/noah-isme/taptime-api/internal/models"
	appErrors "github.com/noah-isme/taptime-api/pkg/errors"
)

func newTestDTR(t *testing.T) (*DTRService, string) {
	t.Helper()
	sessions := newTestSessions(t)
	id := mountView(t, sessions, models.ViewDTR)
	return NewDTRService(sessions, NewExportService(nil, nil, ExportConfig{}, nil), nil, nil), id
}

func TestWorkedHours(t *testing.T) {
	total, undertime, err := WorkedHours("08:15", "12:00", "13:00", "17:00")
	require.NoError(t, err)
	assert.Equal(t, 7.75, total)
	assert.Equal(t, 0.25, undertime)

	total, undertime, err = WorkedHours("07:00", "12:00", "13:00", "18:00")
	require.NoError(t, err)
	assert.Equal(t, 10.0, total)
	assert.Zero(t, undertime)

	_, _, err = WorkedHours("12:00", "08:00", "13:00", "17:00")
	require.Error(t, err)
}

func TestDTRBoardTotals(t *testing.T) {
	svc, id := newTestDTR(t)

	view, err := svc.Board(context.Background(), id)
	require.NoError(t, err)
	assert.Len(t, view.Board.Entries, 5)
	assert.Equal(t, 39.25, view.TotalHours)
	assert.Equal(t, 0.75, view.TotalUndertime)
	assert.False(t, view.CanDownload)
	assert.Len(t, view.Employees, 4)
}

func TestDTRSelect(t *testing.T) {
	ctx := context.Background()
	svc, id := newTestDTR(t)

	view, err := svc.Select(ctx, id, dto.DTRSelection{Department: "Finance", Employee: "John Doe"})
	require.NoError(t, err)
	assert.True(t, view.CanDownload)
	require.Len(t, view.Employees, 1)

	_, err = svc.Select(ctx, id, dto.DTRSelection{Department: "HR", Employee: "John Doe"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	view, err = svc.Select(ctx, id, dto.DTRSelection{Department: "Finance", Employee: "John Doe", StartDate: "2025-10-02", EndDate: "2025-10-03"})
	require.NoError(t, err)
	assert.Len(t, view.Board.Entries, 2)
	assert.Equal(t, 15.25, view.TotalHours)

	_, err = svc.Select(ctx, id, dto.DTRSelection{StartDate: "2025-10-05", EndDate: "2025-10-01"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestDTRUpdateEntryRequiresEditing(t *testing.T) {
	ctx := context.Background()
	svc, id := newTestDTR(t)
	punches := dto.UpdateDTREntryRequest{AMTimeIn: "08:30", AMTimeOut: "12:00", PMTimeIn: "13:00", PMTimeOut: "17:00"}

	_, err := svc.UpdateEntry(ctx, id, "2025-10-01", punches)
	assert.ErrorIs(t, err, appErrors.ErrPreconditionFailed)

	_, err = svc.SetEditing(ctx, id, true)
	require.NoError(t, err)

	entry, err := svc.UpdateEntry(ctx, id, "2025-10-01", punches)
	require.NoError(t, err)
	assert.Equal(t, 7.5, entry.TotalHours)
	assert.Equal(t, 0.5, entry.Undertime)

	_, err = svc.UpdateEntry(ctx, id, "2025-12-25", punches)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	_, err = svc.UpdateEntry(ctx, id, "2025-10-01", dto.UpdateDTREntryRequest{AMTimeIn: "8am"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	view, err := svc.Board(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 38.75, view.TotalHours)
}

func TestDTRExport(t *testing.T) {
	ctx := context.Background()
	svc, id := newTestDTR(t)
	now := time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC)

	_, err := svc.Export(ctx, id, now)
	assert.ErrorIs(t, err, appErrors.ErrPreconditionFailed)

	_, err = svc.Select(ctx, id, dto.DTRSelection{Employee: "Jane Smith", StartDate: "2025-10-01", EndDate: "2025-10-01"})
	require.NoError(t, err)
	file, err := svc.Export(ctx, id, now)
	require.NoError(t, err)
	assert.Equal(t, "DTR_Jane Smith_2025-10-15.csv", file.FileName)
	assert.Equal(t,
		"Date,AM Time In,AM Time Out,PM Time In,PM Time Out,Total Hours,Undertime\n2025-10-01,08:00,12:00,13:00,17:00,8,0",
		string(file.Data))
}
