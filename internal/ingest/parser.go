package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/h2non/filetype"
	"github.com/jfyne/csvd"
	"github.com/xuri/excelize/v2"
)

type FileType string

const (
	FileTypeCSV  FileType = "csv"
	FileTypeXLSX FileType = "xlsx"
)

// ErrEmptyFile signals a parsed file with no rows at all.
var ErrEmptyFile = errors.New("file contains no rows")

// DetectFileType picks a parser from the filename extension. Legacy
// OLE-container .xls is rejected here: the spreadsheet reader only
// handles the xlsx format.
func DetectFileType(filename string) (FileType, error) {
	parts := strings.Split(strings.ToLower(filename), ".")
	ext := parts[len(parts)-1]
	switch ext {
	case "csv":
		return FileTypeCSV, nil
	case "xlsx":
		return FileTypeXLSX, nil
	case "xls":
		return "", fmt.Errorf("legacy xls files are not supported, re-save as CSV or XLSX")
	default:
		return "", fmt.Errorf("unsupported file type: %s, upload a CSV or XLSX file", ext)
	}
}

// Parse reads raw upload bytes into a rectangular string table, header row
// first. The extension picks the parser, but content sniffing wins when a
// mislabeled .csv is really a spreadsheet container.
func Parse(content []byte, filename string) ([][]string, error) {
	ft, err := DetectFileType(filename)
	if err != nil {
		return nil, err
	}

	if kind, _ := filetype.Match(content); kind.Extension == "xlsx" {
		ft = FileTypeXLSX
	}

	var table [][]string
	switch ft {
	case FileTypeXLSX:
		table, err = parseSpreadsheet(content)
	default:
		table, err = parseCSV(content)
	}
	if err != nil {
		return nil, err
	}
	if len(table) == 0 {
		return nil, ErrEmptyFile
	}
	return table, nil
}

// reads sheet 0 of a workbook.
func parseSpreadsheet(content []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func parseCSV(content []byte) ([][]string, error) {
	reader := csvd.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	return rows, nil
}
