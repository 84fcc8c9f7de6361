package excel

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

// WriteCSV writes a header row followed by the records
func WriteCSV(w io.Writer, headers []string, records [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return err
	}
	for _, rec := range records {
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes a single-sheet workbook with a header row followed by the
// records. Every cell is written as text.
func WriteXLSX(w io.Writer, headers []string, records [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSheetRow(f, 1, headers); err != nil {
		return err
	}
	for i, rec := range records {
		if err := writeSheetRow(f, i+2, rec); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheetRow(f *excelize.File, rowIdx int, values []string) error {
	for c, v := range values {
		cell, err := excelize.CoordinatesToCellName(c+1, rowIdx)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(sheetName, cell, v); err != nil {
			return err
		}
	}
	return nil
}
