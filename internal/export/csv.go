package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"codeberg.org/snonux/cardcsv/internal/batch"
)

// CSVWriter writes one [source, english] row per record. No header row is
// written and fields are only quoted when they need to be.
type CSVWriter struct {
	w io.Writer
}

// NewCSVWriter creates a CSV writer on top of w
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: w}
}

// WriteBatch writes all records and flushes
func (c *CSVWriter) WriteBatch(b *batch.RecordBatch) error {
	writer := csv.NewWriter(c.w)

	for i, record := range b.All() {
		if err := writer.Write([]string{record.Source, record.English}); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i+1, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}
