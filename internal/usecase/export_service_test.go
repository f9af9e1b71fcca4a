package usecase

import (
	"bytes"
	"context"
	"testing"
	"time"

	"adscope/internal/domain"
	"adscope/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xuri/excelize/v2"
)

func seededExportService(t *testing.T, results []domain.FlaggedTerm) *ExportService {
	t.Helper()

	sessions := newTestSessions()
	require.NoError(t, sessions.StoreResults(context.Background(), "s1", results))
	return NewExportService(sessions, logger.New("error"), testMetrics)
}

func flaggedFixture() []domain.FlaggedTerm {
	return []domain.FlaggedTerm{
		{ID: 0, CampaignName: "Camp A", AdGroupName: "AG 1", CustomerSearchTerm: "cheap dog toy", IsASIN: false},
		{ID: 3, CampaignName: "Camp A", AdGroupName: "AG 1", CustomerSearchTerm: "b01abcdef0", IsASIN: true},
		{ID: 7, CampaignName: "Camp B", AdGroupName: "AG 2", CustomerSearchTerm: "free dog toy", IsASIN: false},
	}
}

func TestExportNegatives(t *testing.T) {
	svc := seededExportService(t, flaggedFixture())

	file, err := svc.ExportNegatives(context.Background(), "s1", nil, false)
	require.NoError(t, err)

	assert.Contains(t, file.Filename, "negative_keywords_")
	assert.Contains(t, file.Filename, ".xlsx")
	assert.Equal(t, xlsxContentType, file.ContentType)

	f, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer f.Close()

	keywords, err := f.GetRows("Negative Keywords")
	require.NoError(t, err)
	assert.Len(t, keywords, 3) // header + 2 keyword terms

	products, err := f.GetRows("Negative Products")
	require.NoError(t, err)
	assert.Len(t, products, 2) // header + 1 asin term
}

func TestExportNegativesSelection(t *testing.T) {
	svc := seededExportService(t, flaggedFixture())

	file, err := svc.ExportNegatives(context.Background(), "s1", []int{7}, false)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer f.Close()

	keywords, err := f.GetRows("Negative Keywords")
	require.NoError(t, err)
	require.Len(t, keywords, 2)
	assert.Equal(t, "free dog toy", keywords[1][6])
}

func TestExportNegativesNoMatchingSelection(t *testing.T) {
	svc := seededExportService(t, flaggedFixture())

	_, err := svc.ExportNegatives(context.Background(), "s1", []int{99}, false)
	assert.ErrorIs(t, err, ErrNoneSelected)

	_, err = svc.ExportNegatives(context.Background(), "s1", []int{}, false)
	assert.ErrorIs(t, err, ErrNoneSelected)
}

func TestExportNegativesNoResults(t *testing.T) {
	svc := NewExportService(newTestSessions(), logger.New("error"), testMetrics)

	_, err := svc.ExportNegatives(context.Background(), "unknown", nil, false)
	assert.ErrorIs(t, err, domain.ErrNoResults)
}

func TestExportNegativesCSV(t *testing.T) {
	svc := seededExportService(t, flaggedFixture())

	file, err := svc.ExportNegativesCSV(context.Background(), "s1", nil, false)
	require.NoError(t, err)

	assert.Contains(t, file.Filename, ".csv")
	assert.Equal(t, "text/csv", file.ContentType)

	lines := bytes.Split(bytes.TrimSpace(file.Data), []byte("\n"))
	assert.Len(t, lines, 4) // header + 3 flagged terms
}

func TestPreviewNegatives(t *testing.T) {
	svc := seededExportService(t, flaggedFixture())

	preview, err := svc.PreviewNegatives(context.Background(), "s1", nil, true)
	require.NoError(t, err)

	assert.Equal(t, 3, preview.TotalSelected)
	assert.Equal(t, 2, preview.NegativeKeywords)
	assert.Equal(t, 1, preview.NegativeASINs)
	assert.Equal(t, "Negative Phrase", preview.MatchType)
	assert.Len(t, preview.Items, 3)
}

func TestExportAutoCampaignValidation(t *testing.T) {
	svc := NewExportService(newTestSessions(), logger.New("error"), testMetrics)

	cfg := domain.AutoCampaignConfig{
		CampaignName: "Launch",
		StartDate:    time.Now(),
		AdGroups: []domain.AdGroupConfig{
			{AdGroupName: "AG 1", DefaultBid: 0.50, CloseMatch: true},
			{AdGroupName: "", DefaultBid: 0.01},
		},
	}

	_, err := svc.ExportAutoCampaign(context.Background(), cfg)

	var cfgErr *ConfigValidationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, []string{
		"Ad Group 2: Ad group name is required",
		"Ad Group 2: Default bid must be at least $0.02",
		"Ad Group 2: At least one targeting type must be enabled",
	}, cfgErr.Errors)
	assert.Contains(t, cfgErr.Error(), "; ")
}

func TestExportAutoCampaign(t *testing.T) {
	svc := NewExportService(newTestSessions(), logger.New("error"), testMetrics)

	cfg := domain.AutoCampaignConfig{
		CampaignName:    "Summer Launch/Dogs",
		DailyBudget:     20.0,
		BiddingStrategy: domain.BiddingDynamicDown,
		StartDate:       time.Now(),
		AdGroups: []domain.AdGroupConfig{
			{AdGroupName: "AG 1", DefaultBid: 0.50, CloseMatch: true, LooseMatch: true},
		},
	}

	file, err := svc.ExportAutoCampaign(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "auto_campaign_Summer_Launch_Dogs.xlsx", file.Filename)

	f, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sponsored Products")
	require.NoError(t, err)
	assert.Len(t, rows, 5) // header + campaign + ad group + 2 targeting
}

func TestExportManualCampaign(t *testing.T) {
	svc := NewExportService(newTestSessions(), logger.New("error"), testMetrics)

	cfg := domain.ManualCampaignConfig{
		CampaignName:    "Manual Launch",
		DailyBudget:     15.0,
		BiddingStrategy: domain.BiddingFixed,
		StartDate:       time.Now(),
		AdGroups: []domain.ManualAdGroupConfig{
			{
				AdGroupName: "AG 1",
				DefaultBid:  0.60,
				Keywords:    []domain.KeywordConfig{{Keyword: "dog bed"}},
			},
		},
	}

	file, err := svc.ExportManualCampaign(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "manual_campaign_Manual_Launch.xlsx", file.Filename)

	f, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sponsored Products Campaigns")
	require.NoError(t, err)
	assert.Len(t, rows, 4) // header + campaign + ad group + keyword
}

func TestExportManualCampaignValidation(t *testing.T) {
	svc := NewExportService(newTestSessions(), logger.New("error"), testMetrics)

	_, err := svc.ExportManualCampaign(context.Background(), domain.ManualCampaignConfig{
		CampaignName: " ",
		StartDate:    time.Now(),
	})

	var cfgErr *ConfigValidationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, []string{
		"Campaign name is required",
		"At least one ad group is required",
	}, cfgErr.Errors)
}

func TestSafeFilename(t *testing.T) {
	assert.Equal(t, "My_Campaign_2024", safeFilename("My Campaign/2024"))

	long := safeFilename("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	assert.Len(t, long, 50)
}
