package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xuri/excelize/v2"
)

func TestDetectFileType(t *testing.T) {
	ft, err := DetectFileType("report.csv")
	require.NoError(t, err)
	assert.Equal(t, FileTypeCSV, ft)

	ft, err = DetectFileType("Search Term Report.XLSX")
	require.NoError(t, err)
	assert.Equal(t, FileTypeXLSX, ft)

	_, err = DetectFileType("legacy.xls")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "legacy xls")

	_, err = DetectFileType("report.pdf")
	assert.Error(t, err)
}

func TestParseCSV(t *testing.T) {
	content := []byte("Campaign Name,Clicks\nCamp A,10\nCamp B,20\n")

	table, err := Parse(content, "report.csv")
	require.NoError(t, err)
	require.Len(t, table, 3)
	assert.Equal(t, []string{"Campaign Name", "Clicks"}, table[0])
	assert.Equal(t, []string{"Camp B", "20"}, table[2])
}

func TestParseCSVSniffsDelimiter(t *testing.T) {
	content := []byte("Campaign Name;Clicks\nCamp A;10\n")

	table, err := Parse(content, "report.csv")
	require.NoError(t, err)
	require.Len(t, table, 2)
	assert.Equal(t, []string{"Campaign Name", "Clicks"}, table[0])
}

func TestParseRaggedCSV(t *testing.T) {
	content := []byte("A,B,C\n1,2\n1,2,3,4\n")

	table, err := Parse(content, "report.csv")
	require.NoError(t, err)
	assert.Len(t, table, 3)
}

func TestParseEmptyFile(t *testing.T) {
	_, err := Parse([]byte(""), "report.csv")
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestParseSpreadsheet(t *testing.T) {
	content := workbookBytes(t, [][]interface{}{
		{"Campaign Name", "Clicks"},
		{"Camp A", 10},
	})

	table, err := Parse(content, "report.xlsx")
	require.NoError(t, err)
	require.Len(t, table, 2)
	assert.Equal(t, []string{"Campaign Name", "Clicks"}, table[0])
	assert.Equal(t, []string{"Camp A", "10"}, table[1])
}

func TestParseSniffsMislabeledSpreadsheet(t *testing.T) {
	content := workbookBytes(t, [][]interface{}{
		{"Campaign Name", "Clicks"},
		{"Camp A", 10},
	})

	// a workbook uploaded with a .csv name still parses as a workbook
	table, err := Parse(content, "report.csv")
	require.NoError(t, err)
	require.Len(t, table, 2)
	assert.Equal(t, []string{"Campaign Name", "Clicks"}, table[0])
}

func workbookBytes(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}
