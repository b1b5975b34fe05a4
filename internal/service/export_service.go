package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/lab-portal-api/internal/dto"
	appErrors "github.com/noah-isme/lab-portal-api/pkg/errors"
	"github.com/noah-isme/lab-portal-api/pkg/export"
	"github.com/noah-isme/lab-portal-api/pkg/query"
)

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// Column layouts of the exportable tables.
var (
	NotificationColumns = []export.Column{
		{Header: "Message", Field: "text"},
		{Header: "Type", Field: "type_label"},
		{Header: "Priority", Field: "priority"},
		{Header: "Due Date", Field: "due_date"},
		{Header: "Status", Field: "due_status"},
		{Header: "Added By", Field: "added_by_name"},
	}
	SubmissionColumns = []export.Column{
		{Header: "Project", Field: "name"},
		{Header: "Lead Author", Field: "lead_author.name"},
		{Header: "Venue", Field: "venue"},
		{Header: "Submitted", Field: "date_of_submission"},
		{Header: "Next Deadline", Field: "next_deadline"},
	}
	VenueColumns = []export.Column{
		{Header: "Venue", Field: "venue"},
		{Header: "Year", Field: "year"},
		{Header: "Location", Field: "location"},
		{Header: "Abstract", Field: "abstract_submission"},
		{Header: "Paper", Field: "paper_submission"},
		{Header: "Conference", Field: "main_conference_start"},
		{Header: "Status", Field: "status"},
	}
	SupervisionColumns = []export.Column{
		{Header: "Student", Field: "student.name"},
		{Header: "Thesis", Field: "thesis_title"},
		{Header: "Joining", Field: "joining"},
		{Header: "Funding", Field: "funding_source"},
		{Header: "Stipend", Field: "stipend"},
	}
)

var unsafeFilename = regexp.MustCompile(`[^a-z0-9]+`)

// ExportService renders derived table views as downloadable files.
type ExportService struct {
	csv    csvRenderer
	pdf    pdfRenderer
	now    func() time.Time
	logger *zap.Logger
}

// NewExportService constructs an ExportService. Nil renderers use the defaults.
func NewExportService(logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{csv: csv, pdf: pdf, now: time.Now, logger: logger}
}

// ParseExportFormat validates the requested export format. Empty means CSV.
func ParseExportFormat(raw string) (dto.ExportFormat, error) {
	switch dto.ExportFormat(strings.ToLower(strings.TrimSpace(raw))) {
	case "", dto.ExportCSV:
		return dto.ExportCSV, nil
	case dto.ExportPDF:
		return dto.ExportPDF, nil
	default:
		return "", appErrors.Clone(appErrors.ErrUnsupportedFormat, fmt.Sprintf("unsupported export format %q", raw))
	}
}

// ExportRecords renders records in their derived order using the given columns.
func ExportRecords[T query.Record](s *ExportService, format dto.ExportFormat, title string, records []T, columns []export.Column) (*dto.ExportFile, error) {
	return s.Render(format, title, export.FromRecords(records, columns))
}

// Render encodes data in the requested format.
func (s *ExportService) Render(format dto.ExportFormat, title string, data export.Dataset) (*dto.ExportFile, error) {
	var (
		body        []byte
		err         error
		contentType string
	)
	switch format {
	case dto.ExportCSV:
		body, err = s.csv.Render(data)
		contentType = "text/csv"
	case dto.ExportPDF:
		body, err = s.pdf.Render(data, title)
		contentType = "application/pdf"
	default:
		return nil, appErrors.Clone(appErrors.ErrUnsupportedFormat, fmt.Sprintf("unsupported export format %q", format))
	}
	if err != nil {
		s.logger.Error("export render failed", zap.String("title", title), zap.String("format", string(format)), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	return &dto.ExportFile{
		Filename:    s.filename(title, format),
		ContentType: contentType,
		Body:        body,
	}, nil
}

func (s *ExportService) filename(title string, format dto.ExportFormat) string {
	base := strings.Trim(unsafeFilename.ReplaceAllString(strings.ToLower(title), "_"), "_")
	if base == "" {
		base = "export"
	}
	return fmt.Sprintf("%s_%s.%s", base, s.now().UTC().Format("20060102_150405"), format)
}
