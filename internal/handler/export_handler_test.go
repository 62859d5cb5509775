package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/taptime-api/internal/dto"
	"github.com/noah-isme/taptime-api/internal/models"
	"github.com/noah-isme/taptime-api/internal/service"
	appErrors "github.com/noah-isme/taptime-api/pkg/errors"
)

type fakePayrollSrv struct {
	format models.ReportFormat
	file   *service.ExportFile
	err    error
}

func (f *fakePayrollSrv) View(context.Context, string, dto.PayrollQuery) (*dto.PayrollView, error) {
	return &dto.PayrollView{}, f.err
}

func (f *fakePayrollSrv) Toggle(context.Context, string, string, dto.PayrollQuery) (*dto.PayrollView, error) {
	return &dto.PayrollView{}, f.err
}

func (f *fakePayrollSrv) SelectAll(context.Context, string, dto.PayrollQuery) (*dto.PayrollView, error) {
	return &dto.PayrollView{}, f.err
}

func (f *fakePayrollSrv) Export(_ context.Context, _ string, format models.ReportFormat, _ time.Time) (*service.ExportFile, error) {
	f.format = format
	return f.file, f.err
}

type fakeReportSrv struct {
	files map[string]*service.ExportFile
}

func (f *fakeReportSrv) Create(context.Context, string, dto.CreateReportRequest) (*models.ReportJob, *models.Notice, error) {
	return nil, nil, appErrors.ErrInternal
}

func (f *fakeReportSrv) List(string) []models.ReportJob { return nil }

func (f *fakeReportSrv) Get(string, string) (*models.ReportJob, error) {
	return nil, appErrors.ErrNotFound
}

func (f *fakeReportSrv) Download(token string) (*service.ExportFile, error) {
	file, ok := f.files[token]
	if !ok {
		return nil, appErrors.ErrNotFound
	}
	return file, nil
}

func TestPayrollHandlerExportSendsAttachment(t *testing.T) {
	srv := &fakePayrollSrv{file: &service.ExportFile{
		FileName:    "payroll-2026-10-15.csv",
		ContentType: "text/csv",
		Data:        []byte("Employee,Net Pay\n"),
	}}
	h := NewPayrollHandler(srv)

	c, rec := newSessionContext(http.MethodGet, "/panels/payroll/export?format=%20CSV", nil)
	h.Export(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.ReportFormatCSV, srv.format)
	assert.Equal(t, `attachment; filename="payroll-2026-10-15.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "Employee,Net Pay\n", rec.Body.String())
}

func TestPayrollHandlerExportPropagatesErrors(t *testing.T) {
	srv := &fakePayrollSrv{err: appErrors.Clone(appErrors.ErrValidation, "unsupported export format")}
	h := NewPayrollHandler(srv)

	c, rec := newSessionContext(http.MethodGet, "/panels/payroll/export?format=doc", nil)
	h.Export(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unsupported export format")
}

func TestReportHandlerDownloadByToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewReportHandler(&fakeReportSrv{files: map[string]*service.ExportFile{
		"good": {FileName: "records.pdf", ContentType: "application/pdf", Data: []byte("%PDF")},
	}}, nil)

	r := gin.New()
	r.GET("/reports/download/:token", h.Download)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/download/good", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF", rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/download/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
