package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf/v2"
)

// WritePDF renders the table as a landscape A4 document: centered title,
// period line, shaded header row and a bold totals row. Columns share the
// printable width evenly.
func WritePDF(w io.Writer, t Table) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, t.Title, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Period: "+t.Period, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, "Generated: "+t.Generated, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(t.Header))

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for _, header := range t.Header {
		pdf.CellFormat(colWidth, 8, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range t.Rows {
		for _, value := range row {
			pdf.CellFormat(colWidth, 7, value, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(t.Totals) > 0 {
		pdf.SetFont("Helvetica", "B", 9)
		for _, value := range t.Totals {
			pdf.CellFormat(colWidth, 7, value, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}
