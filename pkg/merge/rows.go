package merge

import "io"

// RowReader yields raw source records keyed by source column name.
// Next returns io.EOF after the last record.
type RowReader interface {
	Next() (map[string]string, error)
}

// sliceReader adapts an in-memory record slice into a RowReader.
type sliceReader struct {
	records []map[string]string
	pos     int
}

// RowsFromMaps wraps records in a RowReader. Useful for tests and for
// callers that already hold their data in memory.
func RowsFromMaps(records []map[string]string) RowReader {
	return &sliceReader{records: records}
}

func (s *sliceReader) Next() (map[string]string, error) {
	if s.pos >= len(s.records) {
		return nil, io.EOF
	}
	record := s.records[s.pos]
	s.pos++
	return record, nil
}
