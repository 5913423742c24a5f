// Package csvio reads and writes the delimited files a merge run
// consumes and produces: encoding-aware readers with configurable header
// position and ignored rows, delimiter sniffing, and the three output
// dialects (unix, excel, excel_tab).
package csvio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	pkgerrors "github.com/tabfuse/tabfuse/pkg/errors"
)

// Options controls how a source file is read.
type Options struct {
	// HeaderRow is the 0-based physical record index of the header.
	HeaderRow int

	// IgnoredRows are 0-based physical record indices to skip. Records
	// before the header are data unless listed here. Negative indices
	// never match anything.
	IgnoredRows []int

	// Encoding names the file's text encoding. Empty means UTF-8.
	Encoding string

	// Delimiter is the field separator. Zero means sniff it from the
	// start of the file.
	Delimiter rune
}

// Reader streams the data records of one source file as column-keyed
// maps. It satisfies the merge engine's row reader contract: Next
// returns io.EOF after the last record.
type Reader struct {
	file    *os.File
	path    string
	csv     *csv.Reader
	delim   rune
	headers []string
	ignored map[int]struct{}

	// pending holds data records found before the header row.
	pending [][]string
	pos     int
}

// Open opens a source file for record streaming. It resolves the
// encoding, sniffs the delimiter when none is configured, and consumes
// records up to and including the header. The caller owns Close.
func Open(path string, opts Options) (*Reader, error) {
	if opts.HeaderRow < 0 {
		return nil, pkgerrors.NewValidationError("header_row", opts.HeaderRow, "must not be negative")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, pkgerrors.NewIOError("open", path, err)
	}

	decoded, err := decodingReader(file, opts.Encoding)
	if err != nil {
		file.Close()
		return nil, err
	}
	buffered := bufio.NewReaderSize(decoded, sniffSampleSize)

	delim := opts.Delimiter
	if delim == 0 {
		sample, _ := buffered.Peek(sniffSampleSize)
		delim = sniffDelimiter(string(sample))
	}

	cr := csv.NewReader(buffered)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	r := &Reader{
		file:    file,
		path:    path,
		csv:     cr,
		delim:   delim,
		ignored: make(map[int]struct{}, len(opts.IgnoredRows)),
	}
	for _, row := range opts.IgnoredRows {
		if row >= 0 {
			r.ignored[row] = struct{}{}
		}
	}

	if err := r.readThroughHeader(opts.HeaderRow); err != nil {
		file.Close()
		return nil, err
	}
	return r, nil
}

// readThroughHeader consumes records up to the header, buffering the
// non-ignored ones so Next can replay them as data.
func (r *Reader) readThroughHeader(headerRow int) error {
	for pos := 0; ; pos++ {
		record, err := r.csv.Read()
		if errors.Is(err, io.EOF) {
			return pkgerrors.NewParseError("csv", r.path,
				fmt.Sprintf("header row %d not found: file has only %d records", headerRow, pos), nil)
		}
		if err != nil {
			return pkgerrors.NewParseError("csv", r.path, err.Error(), err)
		}
		if pos == headerRow {
			r.headers = record
			r.pos = pos + 1
			return nil
		}
		if _, skip := r.ignored[pos]; !skip {
			r.pending = append(r.pending, record)
		}
	}
}

// Headers returns the source's column headers in file order.
func (r *Reader) Headers() []string {
	out := make([]string, len(r.headers))
	copy(out, r.headers)
	return out
}

// Delimiter returns the field separator in effect, sniffed or configured.
func (r *Reader) Delimiter() rune {
	return r.delim
}

// Next returns the next data record keyed by header name, skipping
// ignored records. Short records pad missing columns with empty strings;
// cells beyond the header count are dropped. Next returns io.EOF when
// the file is exhausted.
func (r *Reader) Next() (map[string]string, error) {
	if len(r.pending) > 0 {
		record := r.pending[0]
		r.pending = r.pending[1:]
		return r.keyed(record), nil
	}
	for {
		record, err := r.csv.Read()
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		if err != nil {
			return nil, pkgerrors.NewParseError("csv", r.path, err.Error(), err)
		}
		pos := r.pos
		r.pos++
		if _, skip := r.ignored[pos]; skip {
			continue
		}
		return r.keyed(record), nil
	}
}

func (r *Reader) keyed(record []string) map[string]string {
	m := make(map[string]string, len(r.headers))
	for i, header := range r.headers {
		if i < len(record) {
			m[header] = record[i]
		} else {
			m[header] = ""
		}
	}
	return m
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	if err := r.file.Close(); err != nil {
		return pkgerrors.NewIOError("close", r.path, err)
	}
	return nil
}
