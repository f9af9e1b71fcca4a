package bulk

import (
	"bytes"
	"testing"

	"adscope/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xuri/excelize/v2"
)

func openWorkbook(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func sheetRows(t *testing.T, f *excelize.File, sheet string) [][]string {
	t.Helper()
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestGenerateNegativesPartitionsByASIN(t *testing.T) {
	items := []domain.FlaggedTerm{
		{CampaignName: "Camp A", AdGroupName: "AG 1", CustomerSearchTerm: "cheap dog toy", IsASIN: false},
		{CampaignName: "Camp A", AdGroupName: "AG 1", CustomerSearchTerm: "b01abcdef0", IsASIN: true},
		{CampaignName: "Camp B", AdGroupName: "AG 2", CustomerSearchTerm: "free shipping", IsASIN: false},
	}

	data, err := GenerateNegatives(items, false)
	require.NoError(t, err)

	f := openWorkbook(t, data)
	assert.ElementsMatch(t, []string{SheetNegativeKeywords, SheetNegativeProducts}, f.GetSheetList())

	keywords := sheetRows(t, f, SheetNegativeKeywords)
	require.Len(t, keywords, 3) // header + 2
	assert.Equal(t, NegativeKeywordColumns, keywords[0])
	assert.Equal(t, "Keyword", keywords[1][0])
	assert.Equal(t, "cheap dog toy", keywords[1][6])
	assert.Equal(t, "Negative Exact", keywords[1][7])
	assert.Equal(t, "Create", keywords[1][8])
	assert.Equal(t, "Enabled", keywords[1][9])

	products := sheetRows(t, f, SheetNegativeProducts)
	require.Len(t, products, 2) // header + 1
	assert.Equal(t, NegativeProductColumns, products[0])
	assert.Equal(t, "Product Targeting", products[1][0])
	assert.Equal(t, `asin="B01ABCDEF0"`, products[1][6])
}

func TestGenerateNegativesPhraseToggle(t *testing.T) {
	items := []domain.FlaggedTerm{
		{CampaignName: "Camp A", AdGroupName: "AG 1", CustomerSearchTerm: "cheap dog toy", IsASIN: false},
	}

	data, err := GenerateNegatives(items, true)
	require.NoError(t, err)

	f := openWorkbook(t, data)
	keywords := sheetRows(t, f, SheetNegativeKeywords)
	require.Len(t, keywords, 2)
	assert.Equal(t, "Negative Phrase", keywords[1][7])
}

func TestGenerateNegativesEmptyInputHeadersOnly(t *testing.T) {
	data, err := GenerateNegatives(nil, false)
	require.NoError(t, err)

	f := openWorkbook(t, data)
	assert.Equal(t, []string{SheetNegativeKeywords}, f.GetSheetList())

	keywords := sheetRows(t, f, SheetNegativeKeywords)
	require.Len(t, keywords, 1)
	assert.Equal(t, NegativeKeywordColumns, keywords[0])
}

func TestGenerateNegativesOnlyASINs(t *testing.T) {
	items := []domain.FlaggedTerm{
		{CampaignName: "Camp A", AdGroupName: "AG 1", CustomerSearchTerm: "b09xyzwv10", IsASIN: true},
	}

	data, err := GenerateNegatives(items, false)
	require.NoError(t, err)

	f := openWorkbook(t, data)
	assert.Equal(t, []string{SheetNegativeProducts}, f.GetSheetList())
}

func TestGenerateNegativesCSV(t *testing.T) {
	items := []domain.FlaggedTerm{
		{CampaignName: "Camp A", AdGroupName: "AG 1", CustomerSearchTerm: "cheap dog toy", IsASIN: false},
		{CampaignName: "Camp A", AdGroupName: "AG 1", CustomerSearchTerm: "b01abcdef0", IsASIN: true},
	}

	data, err := GenerateNegativesCSV(items, false)
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Contains(t, string(lines[1]), "cheap dog toy")
	assert.Contains(t, string(lines[2]), `asin=""B01ABCDEF0""`)
}
