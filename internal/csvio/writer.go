package csvio

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"strings"

	pkgerrors "github.com/tabfuse/tabfuse/pkg/errors"
	"github.com/tabfuse/tabfuse/pkg/tables"
)

// UnmatchedSourceColumn is the first column of an unmatched output file,
// holding the name of the source each row came from.
const UnmatchedSourceColumn = "source"

// WriteTable writes the merged table to path in the given dialect, header
// first.
func WriteTable(path string, dialect Dialect, t *tables.Table) error {
	return writeFile(path, dialect, t.Columns(), t.Records())
}

// WriteUnmatched writes the unmatched table to path, each row prefixed
// with its originating source name.
func WriteUnmatched(path string, dialect Dialect, u *tables.Unmatched) error {
	columns := u.Columns()
	header := append([]string{UnmatchedSourceColumn}, columns...)

	records := make([][]string, 0, u.Len())
	for _, unmatched := range u.Rows() {
		record := make([]string, 0, len(header))
		record = append(record, unmatched.Source)
		for _, col := range columns {
			record = append(record, unmatched.Row.Value(col))
		}
		records = append(records, record)
	}
	return writeFile(path, dialect, header, records)
}

func writeFile(path string, dialect Dialect, header []string, records [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return pkgerrors.NewIOError("create", path, err)
	}
	if err := WriteRecords(file, dialect, header, records); err != nil {
		file.Close()
		return pkgerrors.NewIOError("write", path, err)
	}
	if err := file.Close(); err != nil {
		return pkgerrors.NewIOError("close", path, err)
	}
	return nil
}

// WriteRecords writes a header and records to w with the dialect's
// delimiter, quoting, and line-ending conventions.
func WriteRecords(w io.Writer, dialect Dialect, header []string, records [][]string) error {
	rw := newRecordWriter(w, dialect)
	if len(header) > 0 {
		if err := rw.Write(header); err != nil {
			return err
		}
	}
	for _, record := range records {
		if err := rw.Write(record); err != nil {
			return err
		}
	}
	rw.Flush()
	return rw.Error()
}

// recordWriter is the subset of csv.Writer the dialects need; the
// quote-all dialect supplies its own implementation.
type recordWriter interface {
	Write(record []string) error
	Flush()
	Error() error
}

func newRecordWriter(w io.Writer, dialect Dialect) recordWriter {
	if dialect.QuoteAll {
		return newQuoteAllWriter(w, dialect)
	}
	cw := csv.NewWriter(w)
	cw.Comma = dialect.Comma
	cw.UseCRLF = dialect.CRLF
	return cw
}

// quoteAllWriter quotes every field unconditionally, doubling embedded
// quotes. encoding/csv has no quote-all mode.
type quoteAllWriter struct {
	w       *bufio.Writer
	comma   string
	newline string
	err     error
}

func newQuoteAllWriter(w io.Writer, dialect Dialect) *quoteAllWriter {
	newline := "\n"
	if dialect.CRLF {
		newline = "\r\n"
	}
	return &quoteAllWriter{
		w:       bufio.NewWriter(w),
		comma:   string(dialect.Comma),
		newline: newline,
	}
}

func (q *quoteAllWriter) Write(record []string) error {
	if q.err != nil {
		return q.err
	}
	for i, field := range record {
		if i > 0 {
			q.w.WriteString(q.comma)
		}
		q.w.WriteByte('"')
		q.w.WriteString(strings.ReplaceAll(field, `"`, `""`))
		q.w.WriteByte('"')
	}
	_, q.err = q.w.WriteString(q.newline)
	return q.err
}

func (q *quoteAllWriter) Flush() {
	if q.err == nil {
		q.err = q.w.Flush()
	}
}

func (q *quoteAllWriter) Error() error {
	return q.err
}
