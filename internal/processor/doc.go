// Package processor contains the conversion driver. It reads and parses the
// flashcard listing, optionally archives the previous output, and hands the
// parsed batch to the selected record writer. Nothing is written unless the
// whole input parsed cleanly.
package processor
