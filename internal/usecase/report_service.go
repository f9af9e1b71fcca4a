package usecase

import (
	"context"
	"fmt"
	"strings"

	"adscope/internal/domain"
	"adscope/internal/ingest"
	"adscope/pkg/logger"
	"adscope/pkg/metrics"

	"github.com/google/uuid"
)

// SchemaError reports every required column missing from an upload, in
// schema order, not just the first one.
type SchemaError struct {
	MissingColumns []string
}

func (e *SchemaError) Error() string {
	return "missing required columns: " + strings.Join(e.MissingColumns, ", ")
}

// ReportService handles report uploads and session lifecycle
type ReportService struct {
	sessions domain.SessionRepository
	logger   *logger.Logger
	metrics  *metrics.Metrics
}

// NewReportService creates a new report service
func NewReportService(
	sessions domain.SessionRepository,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *ReportService {
	return &ReportService{
		sessions: sessions,
		logger:   logger,
		metrics:  metrics,
	}
}

// outcome of a successful upload.
type UploadResult struct {
	SessionID string           `json:"session_id"`
	FileType  string           `json:"file_type"`
	RowCount  int              `json:"row_count"`
	Columns   []string         `json:"columns"`
	DateRange domain.DateRange `json:"date_range,omitempty"`
	Campaigns []string         `json:"campaigns"`
	Message   string           `json:"message"`
}

// outcome of a dry-run structure check.
type ValidationReport struct {
	Valid          bool     `json:"valid"`
	Columns        []string `json:"columns,omitempty"`
	RowCount       int      `json:"row_count"`
	FileType       string   `json:"file_type,omitempty"`
	MissingColumns []string `json:"missing_columns,omitempty"`
}

// UploadSearchTermReport parses, normalizes, validates and stores a
// search term report, returning a fresh session ID.
func (s *ReportService) UploadSearchTermReport(ctx context.Context, content []byte, filename string) (*UploadResult, error) {
	log := s.logger.WithContext(ctx)

	table, err := ingest.Parse(content, filename)
	if err != nil {
		s.metrics.RecordUpload("search_term_report", "rejected", 0)
		return nil, err
	}

	headers := ingest.NormalizeHeaders(table[0])
	if missing := ingest.MissingColumns(headers); len(missing) > 0 {
		s.metrics.RecordUpload("search_term_report", "rejected", 0)
		return nil, &SchemaError{MissingColumns: missing}
	}

	ds := ingest.BuildDataset(headers, table[1:])

	sessionID := uuid.New().String()
	if err := s.sessions.StoreDataset(ctx, sessionID, ds); err != nil {
		return nil, fmt.Errorf("failed to store dataset: %w", err)
	}

	s.metrics.RecordUpload("search_term_report", "success", len(ds.Rows))
	s.metrics.SetActiveSessions(s.sessions.Count(ctx))

	log.WithFields(map[string]any{
		"session_id": sessionID,
		"filename":   filename,
		"rows":       len(ds.Rows),
	}).Info("Search term report uploaded")

	return &UploadResult{
		SessionID: sessionID,
		FileType:  "search_term_report",
		RowCount:  len(ds.Rows),
		Columns:   ds.Columns,
		DateRange: DatasetDateRange(ds.Rows),
		Campaigns: UniqueCampaigns(ds.Rows),
		Message:   fmt.Sprintf("Successfully uploaded %s with %d rows", filename, len(ds.Rows)),
	}, nil
}

// UploadBulkFile stores an optional bulk operations table used for
// resolving platform IDs; it reuses the caller's session when given.
func (s *ReportService) UploadBulkFile(ctx context.Context, content []byte, filename, sessionID string) (*UploadResult, error) {
	table, err := ingest.Parse(content, filename)
	if err != nil {
		s.metrics.RecordUpload("bulk_file", "rejected", 0)
		return nil, err
	}

	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	if err := s.sessions.StoreBulkTable(ctx, sessionID, table); err != nil {
		return nil, fmt.Errorf("failed to store bulk table: %w", err)
	}

	rowCount := len(table) - 1
	s.metrics.RecordUpload("bulk_file", "success", rowCount)

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"session_id": sessionID,
		"filename":   filename,
		"rows":       rowCount,
	}).Info("Bulk operations file uploaded")

	return &UploadResult{
		SessionID: sessionID,
		FileType:  "bulk_file",
		RowCount:  rowCount,
		Columns:   table[0],
		Campaigns: tableCampaigns(table),
		Message:   fmt.Sprintf("Successfully uploaded bulk file %s", filename),
	}, nil
}

// ValidateFile checks structure without storing anything.
func (s *ReportService) ValidateFile(ctx context.Context, content []byte, filename string) (*ValidationReport, error) {
	fileType, err := ingest.DetectFileType(filename)
	if err != nil {
		return nil, err
	}

	table, err := ingest.Parse(content, filename)
	if err != nil {
		return nil, err
	}

	headers := ingest.NormalizeHeaders(table[0])
	missing := ingest.MissingColumns(headers)

	return &ValidationReport{
		Valid:          len(missing) == 0,
		Columns:        headers,
		RowCount:       len(table) - 1,
		FileType:       string(fileType),
		MissingColumns: missing,
	}, nil
}

// DeleteSession drops the dataset and all derived session state.
func (s *ReportService) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.metrics.SetActiveSessions(s.sessions.Count(ctx))
	return nil
}

// campaigns named in a raw bulk table, first-seen order.
func tableCampaigns(table [][]string) []string {
	col := -1
	for i, h := range table[0] {
		if strings.EqualFold(strings.TrimSpace(h), domain.ColCampaignName) {
			col = i
			break
		}
	}
	if col < 0 {
		return []string{}
	}

	seen := make(map[string]bool)
	campaigns := []string{}
	for _, record := range table[1:] {
		if col >= len(record) {
			continue
		}
		name := record[col]
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		campaigns = append(campaigns, name)
	}
	return campaigns
}
