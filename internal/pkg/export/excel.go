package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// WriteExcel renders the table as a single-sheet workbook: a title block,
// the header row in bold, data rows and a totals row.
func WriteExcel(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Report"
	f.SetSheetName("Sheet1", sheet)

	f.SetCellValue(sheet, "A1", t.Title)
	f.SetCellValue(sheet, "A2", "Period: "+t.Period)
	f.SetCellValue(sheet, "A3", "Generated: "+t.Generated)

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return fmt.Errorf("failed to create title style: %w", err)
	}
	f.SetCellStyle(sheet, "A1", "A1", titleStyle)

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	headerRow := 5
	for i, header := range t.Header {
		cell, err := excelize.CoordinatesToCellName(i+1, headerRow)
		if err != nil {
			return fmt.Errorf("failed to resolve header cell: %w", err)
		}
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	rowNum := headerRow + 1
	for _, row := range t.Rows {
		for i, value := range row {
			cell, err := excelize.CoordinatesToCellName(i+1, rowNum)
			if err != nil {
				return fmt.Errorf("failed to resolve data cell: %w", err)
			}
			f.SetCellValue(sheet, cell, value)
		}
		rowNum++
	}

	if len(t.Totals) > 0 {
		for i, value := range t.Totals {
			cell, err := excelize.CoordinatesToCellName(i+1, rowNum)
			if err != nil {
				return fmt.Errorf("failed to resolve totals cell: %w", err)
			}
			f.SetCellValue(sheet, cell, value)
			f.SetCellStyle(sheet, cell, cell, boldStyle)
		}
	}

	if len(t.Header) > 0 {
		lastCol, err := excelize.ColumnNumberToName(len(t.Header))
		if err != nil {
			return fmt.Errorf("failed to resolve last column: %w", err)
		}
		if err := f.SetColWidth(sheet, "A", lastCol, 18); err != nil {
			return fmt.Errorf("failed to set column widths: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
