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

func TestDurationLabel(t *testing.T) {
	assert.Equal(t, "15 days/year", DurationLabel(15, models.UnitDays))
	assert.Equal(t, "8 weeks", DurationLabel(8, models.UnitWeeks))
}

func TestUsageBands(t *testing.T) {
	cases := []struct {
		used, total int
		pct         float64
		band        dto.UsageBand
	}{
		{3, 15, 20, dto.UsageLow},
		{5, 10, 50, dto.UsageMedium},
		{4, 5, 80, dto.UsageHigh},
		{2, 3, 66.7, dto.UsageMedium},
		{1, 0, 0, dto.UsageLow},
	}
	for _, tc := range cases {
		pct, band := Usage(models.LeaveUsage{UsedDays: tc.used, TotalDays: tc.total})
		assert.Equal(t, tc.pct, pct)
		assert.Equal(t, tc.band, band)
	}
}

func TestLeaveTypesAndBenefits(t *testing.T) {
	ctx := context.Background()
	sessions := newTestSessions(t)
	svc := NewLeaveService(sessions, nil, nil)
	id := mountView(t, sessions, models.ViewLeaves)

	view, err := svc.View(ctx, id)
	require.NoError(t, err)
	assert.Len(t, view.LeaveTypes, 6)
	assert.Len(t, view.Benefits, 4)
	require.Len(t, view.History, 4)
	assert.Equal(t, 20.0, view.History[0].Percentage)

	lt, err := svc.AddLeaveType(ctx, id, dto.CreateLeaveTypeRequest{Name: "Paternity Leave", DurationValue: 2, Unit: models.UnitWeeks})
	require.NoError(t, err)
	assert.Equal(t, "2 weeks", lt.Duration)

	_, err = svc.AddLeaveType(ctx, id, dto.CreateLeaveTypeRequest{Name: "Zero"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	require.NoError(t, svc.DeleteLeaveType(ctx, id, "1"))
	assert.ErrorIs(t, svc.DeleteLeaveType(ctx, id, "1"), appErrors.ErrNotFound)

	benefit, err := svc.AddBenefit(ctx, id, dto.CreateBenefitRequest{Name: "HMO", Description: "Health card"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteBenefit(ctx, id, benefit.ID))
	assert.ErrorIs(t, svc.DeleteBenefit(ctx, id, benefit.ID), appErrors.ErrNotFound)

	view, err = svc.View(ctx, id)
	require.NoError(t, err)
	assert.Len(t, view.LeaveTypes, 6)
	assert.Equal(t, "2", view.LeaveTypes[0].ID)
	assert.Len(t, view.Benefits, 4)
}
