package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/taptime-api/internal/dto"
	"github.com/noah-isme/taptime-api/internal/models"
	appErrors "github.com/noah-isme/taptime-api/pkg/errors"
	"github.com/noah-isme/taptime-api/pkg/jobs"
)

type recordingQueue struct {
	jobs []jobs.Job
	err  error
}

func (q *recordingQueue) Enqueue(job jobs.Job) error {
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, job)
	return nil
}

func newTestReports(t *testing.T) (*ReportService, *recordingQueue, string) {
	t.Helper()
	sessions := newTestSessions(t)
	id := signIn(t, sessions, models.RoleHRDivision, models.DivisionRecords)
	svc := NewReportService(sessions, newExportServiceForTest(t), nil, nil, ReportServiceConfig{ResultTTL: time.Hour})
	queue := &recordingQueue{}
	svc.AttachQueue(queue)
	return svc, queue, id
}

func TestReportLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, queue, id := newTestReports(t)

	job, notice, err := svc.Create(ctx, id, dto.CreateReportRequest{Type: models.ReportPayroll, Department: "Finance"})
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusQueued, job.Status)
	assert.Equal(t, models.ReportFormatCSV, job.Params.Format)
	assert.Equal(t, "report.queued", notice.Key)
	require.Len(t, queue.jobs, 1)

	require.NoError(t, svc.Handle(ctx, queue.jobs[0]))

	done, err := svc.Get(id, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusFinished, done.Status)
	require.NotEmpty(t, done.DownloadURL)
	assert.True(t, strings.HasPrefix(done.FileName, "Payroll_Report_"))

	token := done.DownloadURL[strings.LastIndex(done.DownloadURL, "/")+1:]
	file, err := svc.Download(token)
	require.NoError(t, err)
	assert.Contains(t, string(file.Data), "John Doe,Finance")
	assert.NotContains(t, string(file.Data), "Jane Smith")

	_, err = svc.Download("bogus.token.value.sig")
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	_, err = svc.Get("other-session", job.ID)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.Len(t, svc.List(id), 1)
	assert.Empty(t, svc.List("other-session"))
}

func TestReportRequiresRecordsPanel(t *testing.T) {
	sessions := newTestSessions(t)
	id := signIn(t, sessions, models.RoleHRDivision, models.DivisionAdministrative)
	svc := NewReportService(sessions, NewExportService(nil, nil, ExportConfig{}, nil), nil, nil, ReportServiceConfig{})
	svc.AttachQueue(&recordingQueue{})

	_, _, err := svc.Create(context.Background(), id, dto.CreateReportRequest{Type: models.ReportDTR})
	assert.ErrorIs(t, err, appErrors.ErrPreconditionFailed)
}

func TestReportValidationAndEnqueueFailure(t *testing.T) {
	ctx := context.Background()
	svc, queue, id := newTestReports(t)

	_, _, err := svc.Create(ctx, id, dto.CreateReportRequest{Type: "Grades"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	queue.err = assert.AnError
	_, _, err = svc.Create(ctx, id, dto.CreateReportRequest{Type: models.ReportLeave})
	assert.ErrorIs(t, err, appErrors.ErrInternal)

	reports := svc.List(id)
	require.Len(t, reports, 1)
	assert.Equal(t, models.ReportStatusFailed, reports[0].Status)
	assert.NotEmpty(t, reports[0].ErrorMessage)
}

func TestReportDownloadNotReady(t *testing.T) {
	ctx := context.Background()
	svc, queue, id := newTestReports(t)

	job, _, err := svc.Create(ctx, id, dto.CreateReportRequest{Type: models.ReportAttendance, Format: models.ReportFormatPDF})
	require.NoError(t, err)
	require.Len(t, queue.jobs, 1)

	result, err := svc.exports.Publish(job.ID, &ExportFile{FileName: "early.pdf", Data: []byte("x")})
	require.NoError(t, err)
	_, err = svc.Download(result.Token)
	assert.ErrorIs(t, err, appErrors.ErrConflict)

	svc.MarkFailed(queue.jobs[0], assert.AnError)
	failed, err := svc.Get(id, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusFailed, failed.Status)
}

func TestReportCleanupDropsExpired(t *testing.T) {
	ctx := context.Background()
	svc, queue, id := newTestReports(t)

	_, _, err := svc.Create(ctx, id, dto.CreateReportRequest{Type: models.ReportDTR, Employee: "Jane Smith"})
	require.NoError(t, err)
	require.NoError(t, svc.Handle(ctx, queue.jobs[0]))

	assert.Zero(t, svc.cleanupExpired())
	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	assert.Equal(t, 1, svc.cleanupExpired())
	assert.Empty(t, svc.List(id))
}

func TestReportDatasets(t *testing.T) {
	data, title := ReportDataset(models.ReportParams{Type: models.ReportDTR, Employee: "Jane Smith"})
	assert.Equal(t, "DTR_Report", title)
	assert.Len(t, data.Rows, 5)
	assert.Equal(t, "Employee", data.Headers[0])

	data, _ = ReportDataset(models.ReportParams{Type: models.ReportAttendance, Department: "HR"})
	assert.Len(t, data.Rows, 2)

	data, title = ReportDataset(models.ReportParams{Type: models.ReportLeave})
	assert.Equal(t, "Leave_Report", title)
	assert.Len(t, data.Rows, 4)
}
