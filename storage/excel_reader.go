package storage

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExcelSource reads a dataset from one sheet of an .xlsx workbook.
type ExcelSource struct {
	path  string
	sheet string
}

// NewExcelSource creates a source for the workbook at path. An empty sheet
// selects the first sheet in the workbook.
func NewExcelSource(path, sheet string) *ExcelSource {
	return &ExcelSource{path: path, sheet: sheet}
}

// Describe returns the workbook path and sheet.
func (e *ExcelSource) Describe() string {
	if e.sheet == "" {
		return e.path
	}
	return e.path + "#" + e.sheet
}

// Load reads every row of the selected sheet. Rows shorter than the header
// (excelize trims trailing empty cells) are padded.
func (e *ExcelSource) Load(ctx context.Context) ([]string, [][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	f, err := excelize.OpenFile(e.path)
	if err != nil {
		return nil, nil, fmt.Errorf("excel: open %q: %w", e.path, err)
	}
	defer func() { _ = f.Close() }()

	sheet := e.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil, fmt.Errorf("excel: %q: no sheets found", e.path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("excel: read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil, ErrEmptyDataset
	}

	header := rows[0]
	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < len(header) {
			padded := make([]string, len(header))
			copy(padded, row)
			row = padded
		}
		data = append(data, row)
	}
	return header, data, nil
}
