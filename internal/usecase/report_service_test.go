package usecase

import (
	"context"
	"testing"

	"adscope/internal/infrastructure"
	"adscope/pkg/logger"
	"adscope/pkg/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMetrics = metrics.New()

func newTestSessions() *infrastructure.SessionRepository {
	return infrastructure.NewSessionRepository(logger.New("error"))
}

const sampleReport = `Date,Campaign Name,Ad Group Name,Targeting,Match Type,Customer Search Term,Impressions,Clicks,Spend,7 Day Total Sales,Total Advertising Cost of Sales (ACOS)
2024-01-10,Camp A,AG 1,dog toys,broad,squeaky dog toy,1000,50,$25.00,$20.00,125%
2024-01-11,Camp B,AG 2,cat tree,phrase,tall cat tree,500,5,$8.00,$40.00,20%
`

func TestUploadSearchTermReport(t *testing.T) {
	sessions := newTestSessions()
	svc := NewReportService(sessions, logger.New("error"), testMetrics)

	result, err := svc.UploadSearchTermReport(context.Background(), []byte(sampleReport), "report.csv")
	require.NoError(t, err)

	assert.NotEmpty(t, result.SessionID)
	assert.Equal(t, "search_term_report", result.FileType)
	assert.Equal(t, 2, result.RowCount)
	assert.Equal(t, []string{"Camp A", "Camp B"}, result.Campaigns)
	require.NotNil(t, result.DateRange.Start)
	assert.Equal(t, "2024-01-10", *result.DateRange.Start)

	ds, err := sessions.GetDataset(context.Background(), result.SessionID)
	require.NoError(t, err)
	require.Len(t, ds.Rows, 2)
	assert.Equal(t, 25.0, ds.Rows[0].Spend)
	require.NotNil(t, ds.Rows[0].ACOS)
	assert.Equal(t, 125.0, *ds.Rows[0].ACOS)
}

func TestUploadSearchTermReportMissingColumns(t *testing.T) {
	svc := NewReportService(newTestSessions(), logger.New("error"), testMetrics)

	content := []byte("Campaign Name,Clicks\nCamp A,10\n")
	_, err := svc.UploadSearchTermReport(context.Background(), content, "report.csv")

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, schemaErr.MissingColumns, "Ad Group Name")
	assert.Contains(t, schemaErr.MissingColumns, "Customer Search Term")
	assert.NotContains(t, schemaErr.MissingColumns, "Campaign Name")
}

func TestUploadSearchTermReportBadExtension(t *testing.T) {
	svc := NewReportService(newTestSessions(), logger.New("error"), testMetrics)

	_, err := svc.UploadSearchTermReport(context.Background(), []byte("x"), "report.pdf")
	assert.Error(t, err)
}

func TestValidateFile(t *testing.T) {
	svc := NewReportService(newTestSessions(), logger.New("error"), testMetrics)

	t.Run("valid report", func(t *testing.T) {
		report, err := svc.ValidateFile(context.Background(), []byte(sampleReport), "report.csv")
		require.NoError(t, err)
		assert.True(t, report.Valid)
		assert.Equal(t, 2, report.RowCount)
		assert.Equal(t, "csv", report.FileType)
		assert.Empty(t, report.MissingColumns)
	})

	t.Run("incomplete schema", func(t *testing.T) {
		report, err := svc.ValidateFile(context.Background(), []byte("Campaign Name\nCamp A\n"), "report.csv")
		require.NoError(t, err)
		assert.False(t, report.Valid)
		assert.NotEmpty(t, report.MissingColumns)
	})
}

func TestUploadBulkFile(t *testing.T) {
	sessions := newTestSessions()
	svc := NewReportService(sessions, logger.New("error"), testMetrics)

	content := []byte("Campaign Name,Entity\nCamp A,Campaign\nCamp A,Ad Group\nCamp B,Campaign\n")
	result, err := svc.UploadBulkFile(context.Background(), content, "bulk.csv", "existing-session")
	require.NoError(t, err)

	assert.Equal(t, "existing-session", result.SessionID)
	assert.Equal(t, 3, result.RowCount)
	assert.Equal(t, []string{"Camp A", "Camp B"}, result.Campaigns)

	table, err := sessions.GetBulkTable(context.Background(), "existing-session")
	require.NoError(t, err)
	assert.Len(t, table, 4)
}

func TestDeleteSession(t *testing.T) {
	sessions := newTestSessions()
	svc := NewReportService(sessions, logger.New("error"), testMetrics)

	result, err := svc.UploadSearchTermReport(context.Background(), []byte(sampleReport), "report.csv")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSession(context.Background(), result.SessionID))
	assert.Equal(t, 0, sessions.Count(context.Background()))
}
