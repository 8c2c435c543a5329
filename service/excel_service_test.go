package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/docmindhq/docmind-be/types"
)

func buildWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "Inventory"))
	_, err := f.NewSheet("Empty")
	require.NoError(t, err)

	cells := map[string]any{
		"A1": "part", "B1": "quantity", "C1": "location",
		"A2": "valve", "B2": 12, "C2": "deck 3",
		"A3": "gasket", "B3": 40,
	}
	for ref, value := range cells {
		require.NoError(t, f.SetCellValue("Inventory", ref, value))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestListSheets(t *testing.T) {
	svc := NewExcelService()
	sheets, err := svc.ListSheets(buildWorkbook(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"Inventory", "Empty"}, sheets)
}

func TestSheetRows(t *testing.T) {
	svc := NewExcelService()
	rows, err := svc.SheetRows(buildWorkbook(t), "Inventory")
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"part", "quantity", "location"}, rows[0])
	assert.Equal(t, "valve", rows[1][0])
	assert.Equal(t, "12", rows[1][1])
}

func TestSheetRowsUnknownSheet(t *testing.T) {
	svc := NewExcelService()
	_, err := svc.SheetRows(buildWorkbook(t), "NoSuchSheet")
	assert.Error(t, err)
}

func TestSheetRecords(t *testing.T) {
	svc := NewExcelService()
	records, err := svc.SheetRecords(buildWorkbook(t), "Inventory")
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "valve", records[0]["part"])
	assert.Equal(t, "deck 3", records[0]["location"])
	assert.Equal(t, "gasket", records[1]["part"])
	// Missing trailing cell maps to an empty value, not a missing key.
	assert.Equal(t, "", records[1]["location"])
}

func TestSheetRecordsEmptySheet(t *testing.T) {
	svc := NewExcelService()
	_, err := svc.SheetRecords(buildWorkbook(t), "Empty")
	assert.Error(t, err)
}

func TestExcelRejectsEmptyInput(t *testing.T) {
	svc := NewExcelService()
	_, err := svc.ListSheets(nil)
	assert.ErrorIs(t, err, types.ErrUnsupportedFormat)
}

func TestExcelRejectsNonXlsxBytes(t *testing.T) {
	svc := NewExcelService()
	_, err := svc.ListSheets([]byte("%PDF-1.4 not a spreadsheet"))
	assert.ErrorIs(t, err, types.ErrUnsupportedFormat)
}

func TestExcelCorruptArchive(t *testing.T) {
	svc := NewExcelService()
	// Valid zip magic, truncated archive.
	_, err := svc.ListSheets([]byte("PK\x03\x04truncated"))
	assert.ErrorIs(t, err, types.ErrCorruptFile)
}
