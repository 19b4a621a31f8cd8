package importer

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/partsdesk/pricedb/internal/utils"
)

// sheet is the in-memory form of one tabular input file: a header row and the
// data rows below it, all cells as strings.
type sheet struct {
	Header []string
	Rows   [][]string
}

// readSheet loads a tabular file, dispatching on extension: .xlsx/.xlsm go
// through excelize, everything else is treated as CSV.
func readSheet(path string) (*sheet, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return readXLSX(path)
	default:
		return readCSV(path)
	}
}

func readXLSX(path string) (*sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, utils.ErrEmptySheet
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read worksheet %q: %w", sheets[0], err)
	}
	return splitHeader(rows)
}

func readCSV(path string) (*sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return splitHeader(rows)
}

func splitHeader(rows [][]string) (*sheet, error) {
	if len(rows) == 0 {
		return nil, utils.ErrEmptySheet
	}
	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}
	return &sheet{Header: header, Rows: rows[1:]}, nil
}

// cell returns the trimmed value of column i in the row, tolerating short rows
// (XLSX readers drop trailing empty cells).
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// isEmptyRow reports whether every cell of the row is blank.
func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
