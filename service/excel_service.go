package service

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/docmindhq/docmind-be/types"
)

// ExcelService reads spreadsheet bytes. Parsing is delegated to excelize;
// this layer validates input and translates errors.
type ExcelService struct{}

func NewExcelService() *ExcelService {
	return &ExcelService{}
}

// ListSheets returns the workbook's sheet names in workbook order.
func (s *ExcelService) ListSheets(data []byte) ([]string, error) {
	f, err := s.open(data)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

// SheetRows returns all cell values of the named sheet as a 2D slice.
func (s *ExcelService) SheetRows(data []byte, sheet string) ([][]string, error) {
	f, err := s.open(data)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to access sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// SheetRecords maps each data row onto the header row, one record per row.
// The first row is the header; an empty sheet or blank header is an error.
func (s *ExcelService) SheetRecords(data []byte, sheet string) ([]map[string]string, error) {
	rows, err := s.SheetRows(data, sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("sheet %q is empty or has no header row", sheet)
	}

	header := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(row) {
				record[name] = row[i]
			} else {
				record[name] = ""
			}
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *ExcelService) open(data []byte) (*excelize.File, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no spreadsheet bytes provided", types.ErrUnsupportedFormat)
	}
	if !isZip(data) {
		return nil, fmt.Errorf("%w: not an xlsx container", types.ErrUnsupportedFormat)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrCorruptFile, err)
	}
	return f, nil
}

func isZip(b []byte) bool {
	return len(b) >= 4 && b[0] == 'P' && b[1] == 'K' && b[2] == 3 && b[3] == 4
}
