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

func TestTaskBoardCountsAndTabs(t *testing.T) {
	ctx := context.Background()
	sessions := newTestSessions(t)
	svc := NewTaskService(sessions, nil, nil)
	id := mountView(t, sessions, models.ViewTasks)

	board, err := svc.Board(ctx, id, reviewFilter())
	require.NoError(t, err)
	assert.Equal(t, 4, board.Total)
	assert.Equal(t, dto.TaskCounts{Pending: 2, InProgress: 1, Completed: 1}, board.Counts)
	require.Len(t, board.Tabs, 4)
	for _, tab := range board.Tabs {
		assert.Equal(t, 1, tab.Count, tab.Division)
	}

	records, err := svc.Board(ctx, id, reviewFilter("division", string(models.DivisionRecords)))
	require.NoError(t, err)
	require.Len(t, records.Tasks, 1)
	assert.Equal(t, "Update Employee Records", records.Tasks[0].Title)
	assert.Equal(t, 4, records.Total)
}

func TestTaskCreateAndAdvance(t *testing.T) {
	ctx := context.Background()
	sessions := newTestSessions(t)
	svc := NewTaskService(sessions, nil, nil)
	id := mountView(t, sessions, models.ViewTasks)

	task, err := svc.Create(ctx, id, dto.CreateTaskRequest{
		Title:      "Audit leave balances",
		Division:   models.DivisionAdministrative,
		AssignedTo: "Jane Smith, Tom Brown",
		DueDate:    "2025-11-01",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, task.Status)
	assert.Equal(t, models.PriorityMedium, task.Priority)
	assert.Equal(t, []string{"Jane Smith", "Tom Brown"}, task.AssignedTo)

	started, err := svc.Advance(ctx, id, task.ID, "start")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, started.Status)

	_, err = svc.Advance(ctx, id, task.ID, "start")
	assert.ErrorIs(t, err, appErrors.ErrConflict)

	done, err := svc.Advance(ctx, id, task.ID, "complete")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, done.Status)

	board, err := svc.Board(ctx, id, reviewFilter("status", "completed"))
	require.NoError(t, err)
	assert.Len(t, board.Tasks, 2)
	assert.Equal(t, 5, board.Total)
}

func TestTaskCreateValidation(t *testing.T) {
	ctx := context.Background()
	sessions := newTestSessions(t)
	svc := NewTaskService(sessions, nil, nil)
	id := mountView(t, sessions, models.ViewTasks)

	_, err := svc.Create(ctx, id, dto.CreateTaskRequest{Division: models.DivisionRecords})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	_, err = svc.Create(ctx, id, dto.CreateTaskRequest{Title: "x", Division: "Payroll"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	_, err = svc.Create(ctx, id, dto.CreateTaskRequest{Title: "x", Division: models.DivisionRecords, Priority: "urgent"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}
