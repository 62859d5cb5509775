package service

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/taptime-api/internal/models"
	appErrors "github.com/noah-isme/taptime-api/pkg/errors"
	"github.com/noah-isme/taptime-api/pkg/export"
	"github.com/noah-isme/taptime-api/pkg/storage"
)

type fileStorage interface {
	Save(relPath string, data []byte) (string, error)
	Read(relPath string) ([]byte, error)
	Delete(relPath string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

type xlsxRenderer interface {
	Render(data export.Dataset, sheet string) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
}

// ExportFile is a rendered download.
type ExportFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ExportResult captures a stored file and its signed download link.
type ExportResult struct {
	RelativePath string
	Token        string
	URL          string
	ExpiresAt    time.Time
}

// ExportService renders datasets and, when storage is configured, persists them behind signed URLs.
type ExportService struct {
	storage fileStorage
	signer  *storage.SignedURLSigner
	csv     csvRenderer
	pdf     pdfRenderer
	xlsx    xlsxRenderer
	logger  *zap.Logger
	cfg     ExportConfig
}

// NewExportService constructs an ExportService. store and signer may be nil for render-only use.
func NewExportService(store fileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if cfg.APIPrefix == "" {
		cfg.APIPrefix = "/api/v1"
	}
	return &ExportService{
		storage: store,
		signer:  signer,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		xlsx:    export.NewXLSXExporter(),
		logger:  logger,
		cfg:     cfg,
	}
}

// ContentType maps a report format to its MIME type.
func ContentType(format models.ReportFormat) string {
	switch format {
	case models.ReportFormatPDF:
		return export.PDFContentType
	case models.ReportFormatXLSX:
		return export.XLSXContentType
	default:
		return export.CSVContentType
	}
}

// Render encodes data in format. baseName gets the format's extension appended.
func (s *ExportService) Render(format models.ReportFormat, data export.Dataset, title, baseName string) (*ExportFile, error) {
	if format == "" {
		format = models.ReportFormatCSV
	}
	var (
		payload []byte
		err     error
	)
	switch format {
	case models.ReportFormatCSV:
		payload, err = s.csv.Render(data)
	case models.ReportFormatPDF:
		payload, err = s.pdf.Render(data, title)
	case models.ReportFormatXLSX:
		payload, err = s.xlsx.Render(data, sheetName(title))
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	return &ExportFile{
		FileName:    fmt.Sprintf("%s.%s", baseName, format),
		ContentType: ContentType(format),
		Data:        payload,
	}, nil
}

// Publish stores file under a job-scoped path and signs a download link for it.
func (s *ExportService) Publish(jobID string, file *ExportFile) (*ExportResult, error) {
	if s.storage == nil || s.signer == nil {
		return nil, fmt.Errorf("export storage not configured")
	}
	relPath, err := s.storage.Save(jobID+"/"+sanitizeFilename(file.FileName), file.Data)
	if err != nil {
		return nil, err
	}
	token, expiresAt, err := s.signer.Generate(jobID, relPath)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		RelativePath: relPath,
		Token:        token,
		URL:          fmt.Sprintf("%s/reports/download/%s", strings.TrimRight(s.cfg.APIPrefix, "/"), token),
		ExpiresAt:    expiresAt,
	}, nil
}

// ParseToken validates download token metadata.
func (s *ExportService) ParseToken(token string, allowExpired bool) (jobID, relPath string, expiresAt time.Time, err error) {
	if s.signer == nil {
		return "", "", time.Time{}, storage.ErrTokenSignature
	}
	return s.signer.Parse(token, allowExpired)
}

// Read loads a stored file.
func (s *ExportService) Read(relPath string) ([]byte, error) {
	if s.storage == nil {
		return nil, fmt.Errorf("export storage not configured")
	}
	return s.storage.Read(relPath)
}

// Delete removes a stored export file.
func (s *ExportService) Delete(relPath string) error {
	if s.storage == nil {
		return nil
	}
	return s.storage.Delete(relPath)
}

// Cleanup removes files older than ttl (defaults to configured ResultTTL when ttl <= 0).
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if s.storage == nil {
		return nil, nil
	}
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	return s.storage.CleanupOlderThan(ttl)
}

func sheetName(title string) string {
	if title == "" {
		return ""
	}
	if len(title) > 31 {
		return title[:31]
	}
	return title
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".", "__", "_")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}
