package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV renders the table as RFC 4180 CSV. Fields containing commas,
// quotes or newlines are quoted by the encoder rather than rewritten.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	if len(t.Totals) > 0 {
		if err := cw.Write(t.Totals); err != nil {
			return fmt.Errorf("failed to write csv totals: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
