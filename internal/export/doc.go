// Package export writes parsed flashcard records to their destination
// formats: a two-column CSV file and a SQLite flashcard deck.
package export
