package rounding

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const exportSheetName = "Rounding Sheet"

// ExportXLSX renders the session's resolved rounding sheet as an XLSX
// workbook: one header row of field labels in sheet column order, then one
// row per patient with edits overlaid on persisted values.
func (s *DraftStore) ExportXLSX() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create worksheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Patient"}
	for _, field := range Fields {
		headers = append(headers, field.Label)
	}
	if err := writeRow(f, 1, headers); err != nil {
		return nil, err
	}

	for i, patient := range s.Patients() {
		row := []string{patient.Demographics.Name}
		for _, field := range FieldOrder {
			row = append(row, s.FieldValue(patient.ID, field))
		}
		if err := writeRow(f, i+2, row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", rowNum, err)
	}
	if err := f.SetSheetRow(exportSheetName, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}
