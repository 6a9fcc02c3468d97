package batch

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"
)

const (
	sourcePrefix  = "s="
	englishPrefix = "e="
	separator     = "--"
	commentPrefix = "#"

	// MaxLineSize is the longest input line accepted, in bytes
	MaxLineSize = 1024 * 1024
)

// Options tunes how strictly the parser treats its input
type Options struct {
	// StrictDuplicates rejects a second s= or e= line inside one record.
	// When false the later value overwrites the earlier one.
	StrictDuplicates bool
	// AllowComments skips lines starting with '#'
	AllowComments bool
}

// ReadBatchFile parses a flashcard listing from disk.
//
// File format:
//
//	HEADER
//	s=hola
//	e=hello
//	--
//	e=goodbye
//	s=adios
//	--
//
// The first line is a header and always skipped. Fields may appear in
// either order and a line of two or more dashes closes a record.
func ReadBatchFile(filename string, opts Options) (*RecordBatch, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, &IOError{Op: "open batch file", Path: filename, Err: err}
	}
	defer file.Close()

	b, err := ParseReader(file, opts)
	if err != nil {
		var ioErr *IOError
		if errors.As(err, &ioErr) && ioErr.Path == "" {
			ioErr.Path = filename
		}
		return nil, err
	}
	return b, nil
}

// ParseReader splits r into lines and parses them
func ParseReader(r io.Reader, opts Options) (*RecordBatch, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)

	read := 0
	lines := func(yield func(string) bool) {
		for scanner.Scan() {
			read++
			if !yield(scanner.Text()) {
				return
			}
		}
	}

	b, err := Parse(lines, opts)
	// A read failure truncates the input, so it wins over any parse error.
	// Scanning stopped on the line after the last one handed out.
	if scanErr := scanner.Err(); scanErr != nil {
		return nil, &IOError{Op: "read batch file", Line: read + 1, Err: scanErr}
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Parse groups lines into records. Parsing stops at the first error; no
// partial batch is returned.
func Parse(lines iter.Seq[string], opts Options) (*RecordBatch, error) {
	p := &parser{opts: opts}
	for line := range lines {
		if err := p.feed(line); err != nil {
			return nil, err
		}
	}
	if err := p.finish(); err != nil {
		return nil, err
	}
	return NewRecordBatch(p.records), nil
}

type parser struct {
	opts     Options
	lineNo   int
	lastLine string
	current  pendingRecord
	records  []Record
}

func (p *parser) feed(raw string) error {
	p.lineNo++
	p.lastLine = raw

	// Header
	if p.lineNo == 1 {
		return nil
	}

	line := strings.TrimSpace(raw)
	switch {
	case line == "":
		return nil
	case strings.HasPrefix(line, sourcePrefix):
		if p.opts.StrictDuplicates && p.current.hasSource {
			return p.fail(KindDuplicateField, "source", raw)
		}
		p.current.source = strings.TrimSpace(line[len(sourcePrefix):])
		p.current.hasSource = true
	case strings.HasPrefix(line, englishPrefix):
		if p.opts.StrictDuplicates && p.current.hasEnglish {
			return p.fail(KindDuplicateField, "english", raw)
		}
		p.current.english = strings.TrimSpace(line[len(englishPrefix):])
		p.current.hasEnglish = true
	case strings.HasPrefix(line, separator):
		return p.closeRecord(raw)
	case p.opts.AllowComments && strings.HasPrefix(line, commentPrefix):
		return nil
	default:
		return p.fail(KindMalformedLine, "", raw)
	}
	return nil
}

func (p *parser) finish() error {
	return p.closeRecord(p.lastLine)
}

// closeRecord emits the pending record. Closing an empty record is a no-op.
func (p *parser) closeRecord(raw string) error {
	if p.current.empty() {
		return nil
	}
	if !p.current.complete() {
		return p.fail(KindIncompleteRecord, p.missingField(), raw)
	}
	p.records = append(p.records, p.current.record())
	p.current.reset()
	return nil
}

func (p *parser) missingField() string {
	switch {
	case p.current.source == "" && p.current.english == "":
		return "source and english"
	case p.current.source == "":
		return "source"
	default:
		return "english"
	}
}

func (p *parser) fail(kind ErrorKind, field, raw string) error {
	return &ParseError{Kind: kind, Line: p.lineNo, Content: raw, Field: field}
}

// String is used in debug logging
func (o Options) String() string {
	return fmt.Sprintf("strict_duplicates=%t allow_comments=%t", o.StrictDuplicates, o.AllowComments)
}
