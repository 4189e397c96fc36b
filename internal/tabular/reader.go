// Package tabular reads master data files into rows of named fields.
// Column names are normalized (trimmed, lower-cased) and cell values
// trimmed, so downstream code can address fields like "card code" without
// caring how the spreadsheet was typed up.
package tabular

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row is one source record: normalized column name -> trimmed cell value.
type Row map[string]string

// ReadFile loads an .xlsx or .csv master file. The first line is the
// header; rows shorter than the header are padded with empty strings so
// optional trailing fields never fail a row.
func ReadFile(path string) ([]Row, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return readXLSX(path)
	case ".csv":
		return readCSV(path)
	default:
		return nil, fmt.Errorf("unsupported master file format: %s", path)
	}
}

func readXLSX(path string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets: %s", path)
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return fromRecords(records), nil
}

func readCSV(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return fromRecords(records), nil
}

func fromRecords(records [][]string) []Row {
	if len(records) == 0 {
		return nil
	}

	header := make([]string, len(records[0]))
	for i, name := range records[0] {
		header[i] = strings.ToLower(strings.TrimSpace(name))
	}

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(Row, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			var v string
			if i < len(rec) {
				v = strings.TrimSpace(rec[i])
			}
			row[name] = v
		}
		rows = append(rows, row)
	}
	return rows
}
