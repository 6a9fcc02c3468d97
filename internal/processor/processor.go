package processor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"codeberg.org/snonux/cardcsv/internal/archive"
	"codeberg.org/snonux/cardcsv/internal/batch"
	"codeberg.org/snonux/cardcsv/internal/cli"
	"codeberg.org/snonux/cardcsv/internal/export"
)

// Processor runs one conversion
type Processor struct {
	flags  *cli.Flags
	logger *zap.Logger
	out    io.Writer
}

// NewProcessor creates a new processor. A nil logger disables diagnostics.
func NewProcessor(flags *cli.Flags, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{
		flags:  flags,
		logger: logger,
		out:    os.Stdout,
	}
}

// SetOutput redirects progress messages, mainly for tests
func (p *Processor) SetOutput(w io.Writer) {
	p.out = w
}

// Convert parses lines from in and writes the batch to out. It returns the
// number of records written.
func Convert(in io.Reader, out export.RecordWriter, opts batch.Options) (int, error) {
	b, err := batch.ParseReader(in, opts)
	if err != nil {
		return 0, err
	}
	if err := out.WriteBatch(b); err != nil {
		return 0, err
	}
	return b.Len(), nil
}

// Run converts the configured input file into the configured output file
func (p *Processor) Run() (int, error) {
	format, err := export.ParseFormat(p.flags.Format)
	if err != nil {
		return 0, err
	}

	log := p.logger.With(
		zap.String("input", p.flags.InputPath),
		zap.String("output", p.flags.OutputPath),
		zap.String("format", string(format)),
	)
	opts := p.options()
	log.Debug("parsing input", zap.Stringer("options", opts))

	in, err := os.Open(p.flags.InputPath)
	if err != nil {
		return 0, &batch.IOError{Op: "open batch file", Path: p.flags.InputPath, Err: err}
	}
	defer in.Close()

	out := &outputWriter{p: p, format: format, log: log}
	n, err := Convert(in, out, opts)
	if err != nil {
		return 0, p.inputError(err, log)
	}
	log.Debug("wrote output", zap.Int("records", n))

	fmt.Fprintf(p.out, "Wrote %d records to %s\n", n, p.flags.OutputPath)
	return n, nil
}

// Check parses the input file without writing anything
func (p *Processor) Check() (int, error) {
	log := p.logger.With(zap.String("input", p.flags.InputPath))

	b, err := batch.ReadBatchFile(p.flags.InputPath, p.options())
	if err != nil {
		return 0, p.inputError(err, log)
	}
	log.Debug("parsed input", zap.Int("records", b.Len()))

	fmt.Fprintf(p.out, "%s: %d records OK\n", p.flags.InputPath, b.Len())
	return b.Len(), nil
}

func (p *Processor) options() batch.Options {
	return batch.Options{
		StrictDuplicates: p.flags.StrictDuplicates,
		AllowComments:    p.flags.AllowComments,
	}
}

// inputError prefixes parse errors with the input path and fills in the
// path of read errors
func (p *Processor) inputError(err error, log *zap.Logger) error {
	var perr *batch.ParseError
	if errors.As(err, &perr) {
		log.Debug("parse failed", zap.Int("line", perr.Line), zap.Stringer("kind", perr.Kind))
		return fmt.Errorf("%s: %w", p.flags.InputPath, err)
	}
	var ioErr *batch.IOError
	if errors.As(err, &ioErr) && ioErr.Path == "" {
		ioErr.Path = p.flags.InputPath
	}
	return err
}

// outputWriter touches the output location only once a batch has parsed
type outputWriter struct {
	p      *Processor
	format export.Format
	log    *zap.Logger
}

func (w *outputWriter) WriteBatch(b *batch.RecordBatch) error {
	w.log.Debug("parsed input", zap.Int("records", b.Len()))

	if err := w.p.prepareOutput(); err != nil {
		return err
	}
	return w.p.write(w.format, b)
}

// prepareOutput creates the output directory and archives an old output
// file when requested
func (p *Processor) prepareOutput() error {
	dir := filepath.Dir(p.flags.OutputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &batch.IOError{Op: "create output directory", Path: dir, Err: err}
	}

	if !p.flags.Archive {
		return nil
	}

	archived, err := archive.ArchiveFile(p.flags.OutputPath)
	if err != nil {
		return &batch.IOError{Op: "archive previous output", Path: p.flags.OutputPath, Err: err}
	}
	if archived != "" {
		fmt.Fprintf(p.out, "Previous output archived to: %s\n", archived)
	}
	return nil
}

func (p *Processor) write(format export.Format, b *batch.RecordBatch) error {
	if format == export.FormatSQLite {
		return export.NewSQLiteWriter(p.flags.OutputPath).WriteBatch(b)
	}

	file, err := os.Create(p.flags.OutputPath)
	if err != nil {
		return &batch.IOError{Op: "create output file", Path: p.flags.OutputPath, Err: err}
	}

	if err := export.NewCSVWriter(file).WriteBatch(b); err != nil {
		file.Close()
		return &batch.IOError{Op: "write output file", Path: p.flags.OutputPath, Err: err}
	}

	if err := file.Close(); err != nil {
		return &batch.IOError{Op: "close output file", Path: p.flags.OutputPath, Err: err}
	}
	return nil
}
