package export

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/cardcsv/internal/batch"
)

func sampleBatch() *batch.RecordBatch {
	return batch.NewRecordBatch([]batch.Record{
		{Source: "hola", English: "hello"},
		{Source: "adios", English: "goodbye"},
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"csv", FormatCSV, false},
		{"CSV", FormatCSV, false},
		{" sqlite ", FormatSQLite, false},
		{"", FormatCSV, false},
		{"xlsx", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCSVWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVWriter(&buf).WriteBatch(sampleBatch()))

	assert.Equal(t, "hola,hello\nadios,goodbye\n", buf.String())
}

func TestCSVWriter_Quoting(t *testing.T) {
	b := batch.NewRecordBatch([]batch.Record{
		{Source: "sí, señor", English: `yes, "sir"`},
		{Source: "el niño", English: "the boy"},
	})

	var buf bytes.Buffer
	require.NoError(t, NewCSVWriter(&buf).WriteBatch(b))

	assert.Equal(t, "\"sí, señor\",\"yes, \"\"sir\"\"\"\nel niño,the boy\n", buf.String())
}

func TestCSVWriter_EmptyBatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVWriter(&buf).WriteBatch(batch.NewRecordBatch(nil)))
	assert.Empty(t, buf.String())
}

func TestCSVWriter_RoundTrip(t *testing.T) {
	var records []batch.Record
	for _, word := range strings.Fields("uno dos tres cuatro cinco") {
		records = append(records, batch.Record{Source: word, English: "en " + word + ", ok"})
	}

	var buf bytes.Buffer
	require.NoError(t, NewCSVWriter(&buf).WriteBatch(batch.NewRecordBatch(records)))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(records))
	for i, row := range rows {
		assert.Equal(t, []string{records[i].Source, records[i].English}, row)
	}
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("no space left") }

func TestCSVWriter_WriteFailure(t *testing.T) {
	err := NewCSVWriter(brokenWriter{}).WriteBatch(sampleBatch())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no space left")
}

func TestSQLiteWriter(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "deck.db")
	require.NoError(t, NewSQLiteWriter(dbPath).WriteBatch(sampleBatch()))

	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	defer db.Close()

	rows, err := db.Query(`SELECT ID, LANG1, LANG2 FROM FC ORDER BY ID`)
	require.NoError(t, err)
	defer rows.Close()

	type row struct {
		id           int
		lang1, lang2 string
	}
	var got []row
	for rows.Next() {
		var r row
		require.NoError(t, rows.Scan(&r.id, &r.lang1, &r.lang2))
		got = append(got, r)
	}
	require.NoError(t, rows.Err())

	assert.Equal(t, []row{
		{1, "hello", "hola"},
		{2, "goodbye", "adios"},
	}, got)

	var state int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM FCS`).Scan(&state))
	assert.Zero(t, state)
}

func TestSQLiteWriter_ReplacesExistingFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "deck.db")
	if err := os.WriteFile(dbPath, []byte("not a database"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	require.NoError(t, NewSQLiteWriter(dbPath).WriteBatch(sampleBatch()))
	require.NoError(t, NewSQLiteWriter(dbPath).WriteBatch(sampleBatch()))

	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM FC`).Scan(&count))
	assert.Equal(t, 2, count)
}

func TestSQLiteWriter_UnwritableLocation(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "missing", "deck.db")

	err := NewSQLiteWriter(dbPath).WriteBatch(sampleBatch())
	require.ErrorIs(t, err, batch.ErrIO)

	var ioErr *batch.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, dbPath, ioErr.Path)
}
