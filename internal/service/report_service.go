package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/taptime-api/internal/dto"
	"github.com/noah-isme/taptime-api/internal/models"
	"github.com/noah-isme/taptime-api/internal/seed"
	appErrors "github.com/noah-isme/taptime-api/pkg/errors"
	"github.com/noah-isme/taptime-api/pkg/export"
	"github.com/noah-isme/taptime-api/pkg/jobs"
)

type jobDispatcher interface {
	Enqueue(job jobs.Job) error
}

// ReportServiceConfig governs result retention.
type ReportServiceConfig struct {
	ResultTTL       time.Duration
	CleanupInterval time.Duration
}

// ReportService generates Records division reports on the background queue.
// Jobs live in process memory and are scoped to the session that requested them.
type ReportService struct {
	panelBase
	exports *ExportService
	queue   jobDispatcher
	cfg     ReportServiceConfig

	mu   sync.RWMutex
	jobs map[string]*models.ReportJob
	now  func() time.Time
}

// NewReportService constructs the report service. Attach a queue before creating jobs.
func NewReportService(sessions *SessionService, exports *ExportService, validate *validator.Validate, logger *zap.Logger, cfg ReportServiceConfig) *ReportService {
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	return &ReportService{
		panelBase: newPanelBase(sessions, validate, logger),
		exports:   exports,
		cfg:       cfg,
		jobs:      make(map[string]*models.ReportJob),
		now:       time.Now,
	}
}

// AttachQueue sets the dispatcher whose handler is s.Handle.
func (s *ReportService) AttachQueue(queue jobDispatcher) {
	s.queue = queue
}

// Create validates the request against a mounted Records panel and enqueues generation.
func (s *ReportService) Create(ctx context.Context, sessionID string, req dto.CreateReportRequest) (*models.ReportJob, *models.Notice, error) {
	if err := s.validate(req, "invalid report request"); err != nil {
		return nil, nil, err
	}
	if !req.Type.Valid() {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported report type %q", req.Type))
	}
	if err := s.read(ctx, sessionID, models.ViewRecords, func(*models.PanelState) error { return nil }); err != nil {
		return nil, nil, err
	}
	if s.queue == nil {
		return nil, nil, appErrors.Clone(appErrors.ErrInternal, "report queue unavailable")
	}

	format := req.Format
	if format == "" {
		format = models.ReportFormatCSV
	}
	job := &models.ReportJob{
		ID:        s.newID(),
		SessionID: sessionID,
		Params: models.ReportParams{
			Type:       req.Type,
			Format:     format,
			Department: req.Department,
			Employee:   req.Employee,
		},
		Status:    models.ReportStatusQueued,
		CreatedAt: s.now().UTC(),
	}

	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Kind: string(job.Params.Type)}); err != nil {
		s.fail(job.ID, err)
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue report job")
	}
	s.metrics().RecordReportJob(string(job.Params.Type), string(models.ReportStatusQueued))

	snapshot, _ := s.lookup(job.ID)
	notice := &models.Notice{Key: "report.queued", Level: "info", Data: map[string]interface{}{"Report": string(req.Type)}}
	return snapshot, notice, nil
}

// Handle is the queue handler. A returned error schedules a retry.
func (s *ReportService) Handle(ctx context.Context, job jobs.Job) error {
	record, ok := s.lookup(job.ID)
	if !ok {
		s.logger.Debug("report job no longer tracked", zap.String("job_id", job.ID))
		return nil
	}
	s.set(job.ID, func(r *models.ReportJob) { r.Status = models.ReportStatusProcessing })

	data, title := ReportDataset(record.Params)
	base := fmt.Sprintf("%s_%s", title, record.CreatedAt.Format(dateLayout))
	file, err := s.exports.Render(record.Params.Format, data, title, base)
	if err != nil {
		return err
	}
	result, err := s.exports.Publish(record.ID, file)
	if err != nil {
		return err
	}

	finished := s.now().UTC()
	expires := result.ExpiresAt
	s.set(job.ID, func(r *models.ReportJob) {
		r.Status = models.ReportStatusFinished
		r.FileName = file.FileName
		r.StoragePath = result.RelativePath
		r.DownloadURL = result.URL
		r.ExpiresAt = &expires
		r.ErrorMessage = ""
		r.FinishedAt = &finished
	})
	s.metrics().RecordReportJob(string(record.Params.Type), string(models.ReportStatusFinished))
	s.logger.Info("report generated", zap.String("job_id", record.ID), zap.String("type", string(record.Params.Type)))
	return nil
}

// MarkFailed is the queue failure hook, run once retries are exhausted.
func (s *ReportService) MarkFailed(job jobs.Job, err error) {
	s.fail(job.ID, err)
}

func (s *ReportService) fail(id string, err error) {
	record, ok := s.lookup(id)
	if !ok {
		return
	}
	finished := s.now().UTC()
	s.set(id, func(r *models.ReportJob) {
		r.Status = models.ReportStatusFailed
		r.ErrorMessage = err.Error()
		r.FinishedAt = &finished
	})
	s.metrics().RecordReportJob(string(record.Params.Type), string(models.ReportStatusFailed))
	s.logger.Warn("report generation failed", zap.String("job_id", id), zap.Error(err))
}

func (s *ReportService) lookup(id string) (*models.ReportJob, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.jobs[id]
	if !ok {
		return nil, false
	}
	copied := *record
	return &copied, true
}

func (s *ReportService) set(id string, fn func(*models.ReportJob)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if record, ok := s.jobs[id]; ok {
		fn(record)
	}
}

// List returns the session's reports, newest first.
func (s *ReportService) List(sessionID string) []models.ReportJob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ReportJob, 0)
	for _, record := range s.jobs {
		if record.SessionID == sessionID {
			out = append(out, *record)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Get returns one of the session's reports.
func (s *ReportService) Get(sessionID, id string) (*models.ReportJob, error) {
	record, ok := s.lookup(id)
	if !ok || record.SessionID != sessionID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "report not found")
	}
	return record, nil
}

// Download resolves a signed token to the stored file.
func (s *ReportService) Download(token string) (*ExportFile, error) {
	jobID, relPath, _, err := s.exports.ParseToken(token, false)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrForbidden.Code, appErrors.ErrForbidden.Status, "invalid or expired download token")
	}
	record, ok := s.lookup(jobID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "report not found")
	}
	if record.Status != models.ReportStatusFinished {
		return nil, appErrors.Clone(appErrors.ErrConflict, "report not ready")
	}
	if record.StoragePath != relPath {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "token mismatch")
	}
	data, err := s.exports.Read(relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read report file")
	}
	return &ExportFile{FileName: record.FileName, ContentType: ContentType(record.Params.Format), Data: data}, nil
}

// StartCleanup purges expired reports periodically until ctx is done.
func (s *ReportService) StartCleanup(ctx context.Context) {
	if s.cfg.CleanupInterval <= 0 {
		return
	}
	ticker := time.NewTicker(s.cfg.CleanupInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.cleanupExpired()
			}
		}
	}()
}

func (s *ReportService) cleanupExpired() int {
	cutoff := s.now().Add(-s.cfg.ResultTTL)
	var expired []models.ReportJob
	s.mu.Lock()
	for id, record := range s.jobs {
		if record.FinishedAt != nil && record.FinishedAt.Before(cutoff) {
			expired = append(expired, *record)
			delete(s.jobs, id)
		}
	}
	s.mu.Unlock()

	for _, record := range expired {
		if record.StoragePath == "" {
			continue
		}
		if err := s.exports.Delete(record.StoragePath); err != nil {
			s.logger.Warn("cleanup delete failed", zap.String("job_id", record.ID), zap.Error(err))
		}
	}
	if _, err := s.exports.Cleanup(s.cfg.ResultTTL); err != nil {
		s.logger.Warn("filesystem cleanup failed", zap.Error(err))
	}
	return len(expired)
}

func matchesReport(params models.ReportParams, department, employee string) bool {
	return Matches(params.Department, department) && Matches(params.Employee, employee)
}

// ReportDataset builds the rows of a report from the demo data, narrowed by department and employee.
func ReportDataset(params models.ReportParams) (export.Dataset, string) {
	switch params.Type {
	case models.ReportDTR:
		data := export.NewDataset(append([]string{"Employee"}, dtrHeaders...)...)
		for _, e := range seed.DTREmployees() {
			if !matchesReport(params, e.Department, e.Name) {
				continue
			}
			for _, entry := range seed.DTREntries() {
				data.AddRow(e.Name, entry.Date, entry.AMTimeIn, entry.AMTimeOut, entry.PMTimeIn, entry.PMTimeOut, entry.TotalHours, entry.Undertime)
			}
		}
		return data, "DTR_Report"
	case models.ReportPayroll:
		records := Filter(seed.Payroll(), func(r models.PayrollRecord) bool { return matchesReport(params, r.Department, r.Name) })
		return PayrollDataset(records), "Payroll_Report"
	case models.ReportAttendance:
		data := export.NewDataset("Name", "Department", "Status", "Latitude", "Longitude")
		for _, r := range seed.Attendance() {
			if matchesReport(params, r.Department, r.Name) {
				data.AddRow(r.Name, r.Department, r.Status.Label(), r.Location.Lat, r.Location.Lng)
			}
		}
		return data, "Attendance_Summary"
	default:
		data := export.NewDataset("Employee", "Department", "Leave Type", "Total Days", "Used Days", "Remaining Days")
		for _, u := range seed.LeaveHistory() {
			if matchesReport(params, u.Department, u.EmployeeName) {
				data.AddRow(u.EmployeeName, u.Department, u.LeaveType, u.TotalDays, u.UsedDays, u.RemainingDays)
			}
		}
		return data, "Leave_Report"
	}
}
