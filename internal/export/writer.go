package export

import (
	"fmt"
	"strings"

	"codeberg.org/snonux/cardcsv/internal/batch"
)

// Format selects the output encoding
type Format string

const (
	FormatCSV    Format = "csv"
	FormatSQLite Format = "sqlite"
)

// RecordWriter persists a whole batch in one go
type RecordWriter interface {
	WriteBatch(b *batch.RecordBatch) error
}

// ParseFormat validates a user supplied format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatSQLite:
		return f, nil
	case "":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want csv or sqlite)", s)
	}
}
