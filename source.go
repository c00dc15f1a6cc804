package gtable

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadCSV reads a CSV document whose first record is the header. Numeric
// fields become int64 or float64 and empty fields are missing.
func ReadCSV(r io.Reader) (*RowFrame, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: csv has no header", ErrFrameShape)
	}
	return recordsFrame(records)
}

// ReadXLSX reads a worksheet whose first row is the header. An empty sheet
// name reads the first sheet.
func ReadXLSX(path, sheet string) (*RowFrame, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", ErrFrameShape)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q has no header", ErrFrameShape, sheet)
	}
	return recordsFrame(rows)
}

// recordsFrame builds a frame from string records. Short records are padded
// with missing values.
func recordsFrame(records [][]string) (*RowFrame, error) {
	header := records[0]
	rows := make([][]any, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) > len(header) {
			return nil, fmt.Errorf("%w: record %d has %d fields for %d columns", ErrFrameShape, i+1, len(rec), len(header))
		}
		row := make([]any, len(header))
		for j, field := range rec {
			row[j] = parseField(field)
		}
		rows = append(rows, row)
	}
	return NewRowFrame(header, rows)
}

func parseField(s string) any {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	if n, err := strconv.ParseInt(t, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(t, 64); err == nil {
		return f
	}
	return s
}
