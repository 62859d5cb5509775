package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/noah-isme/taptime-api/internal/models"
	"github.com/noah-isme/taptime-api/pkg/export"
	"github.com/noah-isme/taptime-api/pkg/storage"
)

func newExportServiceForTest(t *testing.T) *ExportService {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("secret", time.Hour)
	return NewExportService(store, signer, ExportConfig{APIPrefix: "/api/v1", ResultTTL: time.Hour}, nil)
}

func sampleDataset() export.Dataset {
	data := export.NewDataset("Name", "Hours")
	data.AddRow("John Doe", 7.75)
	data.AddRow("Jane Smith", 8.0)
	return data
}

func TestExportServiceRenderFormats(t *testing.T) {
	svc := NewExportService(nil, nil, ExportConfig{}, nil)

	file, err := svc.Render(models.ReportFormatCSV, sampleDataset(), "Hours", "hours")
	require.NoError(t, err)
	assert.Equal(t, "hours.csv", file.FileName)
	assert.Equal(t, export.CSVContentType, file.ContentType)
	assert.Equal(t, "Name,Hours\nJohn Doe,7.75\nJane Smith,8", string(file.Data))

	file, err = svc.Render(models.ReportFormatPDF, sampleDataset(), "Hours", "hours")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF")))

	file, err = svc.Render(models.ReportFormatXLSX, sampleDataset(), "Hours", "hours")
	require.NoError(t, err)
	assert.Equal(t, "hours.xlsx", file.FileName)
	book, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer book.Close()
	value, err := book.GetCellValue("Hours", "A2")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", value)

	_, err = svc.Render("docx", sampleDataset(), "Hours", "hours")
	require.Error(t, err)
}

func TestExportServicePublishAndResolve(t *testing.T) {
	svc := newExportServiceForTest(t)
	file, err := svc.Render(models.ReportFormatCSV, sampleDataset(), "", "DTR Report")
	require.NoError(t, err)

	result, err := svc.Publish("job-1", file)
	require.NoError(t, err)
	assert.Equal(t, "job-1/DTR_Report.csv", result.RelativePath)
	assert.Contains(t, result.URL, "/api/v1/reports/download/")

	jobID, relPath, _, err := svc.ParseToken(result.Token, false)
	require.NoError(t, err)
	assert.Equal(t, "job-1", jobID)

	data, err := svc.Read(relPath)
	require.NoError(t, err)
	assert.Equal(t, file.Data, data)
}

func TestExportServiceWithoutStorage(t *testing.T) {
	svc := NewExportService(nil, nil, ExportConfig{}, nil)
	_, err := svc.Publish("job-1", &ExportFile{FileName: "a.csv"})
	require.Error(t, err)
	_, _, _, err = svc.ParseToken("a.b.c.d", false)
	require.Error(t, err)
}
