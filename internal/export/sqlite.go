package export

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"codeberg.org/snonux/cardcsv/internal/batch"
)

// SQLiteWriter stores records in the flashcard deck database layout:
// FC holds the cards (LANG1 = english, LANG2 = source) and FCS holds
// per-card learning state, which starts out empty.
type SQLiteWriter struct {
	path string
}

// NewSQLiteWriter creates a writer for the database file at path. An
// existing file is replaced.
func NewSQLiteWriter(path string) *SQLiteWriter {
	return &SQLiteWriter{path: path}
}

// WriteBatch creates a fresh database and inserts all records in a single
// transaction
func (s *SQLiteWriter) WriteBatch(b *batch.RecordBatch) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return &batch.IOError{Op: "replace database", Path: s.path, Err: err}
	}

	db, err := sql.Open("sqlite3", s.path)
	if err != nil {
		return &batch.IOError{Op: "open database", Path: s.path, Err: err}
	}
	defer db.Close()

	if err := createTables(db); err != nil {
		return &batch.IOError{Op: "create tables in", Path: s.path, Err: err}
	}

	if err := insertCards(db, b); err != nil {
		return &batch.IOError{Op: "insert cards into", Path: s.path, Err: err}
	}

	return nil
}

// createTables creates the deck schema
func createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE FC (
			ID integer PRIMARY KEY,
			LANG1 text,
			LANG2 text
		)`,
		`CREATE TABLE FCS (
			LANG1 text PRIMARY KEY,
			LEVEL integer,
			COUNT integer
		)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}

	return nil
}

func insertCards(db *sql.DB, b *batch.RecordBatch) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO FC (ID, LANG1, LANG2) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, record := range b.All() {
		if _, err := stmt.Exec(i+1, record.English, record.Source); err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}
	}

	return tx.Commit()
}
